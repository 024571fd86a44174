package rank

import "sort"

// Entry is one row of a ranked list.
type Entry struct {
	Node  string
	Score float64
}

// Top returns the k highest-scored entries of the mapping, score
// descending with node ID ascending as tiebreaker, so results are
// reproducible across runs. The result has length min(k, len(scores));
// k <= 0 yields an empty list. The input mapping is not mutated.
func Top(scores map[string]float64, k int) []Entry {
	if k <= 0 {
		return nil
	}

	entries := make([]Entry, 0, len(scores))
	for id, score := range scores {
		entries = append(entries, Entry{Node: id, Score: score})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].Node < entries[j].Node
	})

	if k > len(entries) {
		return entries
	}
	return entries[:k]
}

// All returns every entry of the mapping in ranked order, the default when
// a caller does not limit the list.
func All(scores map[string]float64) []Entry {
	return Top(scores, len(scores))
}
