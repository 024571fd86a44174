package rank

import (
	"fmt"

	"github.com/papapumpkin/linkrank/internal/graph"
)

// Distribution estimates PageRank by propagating a probability mass vector
// over the graph for the given number of rounds. Every node starts at 1/n;
// each round builds a fresh distribution in which every node with out-edges
// splits its current mass evenly across its targets (duplicate edges count
// separately, so a repeated link gets a double share).
//
// A dangling node's mass has nowhere to go and is dropped, so with dangling
// nodes present the distribution's total shrinks across rounds. That is a
// property of the simplified algorithm and is deliberately not compensated
// with redistribution.
//
// Rounds are strictly sequential; within a round the per-node contributions
// are independent and additive, so processing order does not affect the
// result. The graph is never mutated.
func Distribution(g *graph.Graph, iterations int) (map[string]float64, error) {
	if iterations < 1 {
		return nil, fmt.Errorf("%w: iterations must be >= 1, got %d", ErrInvalidArgument, iterations)
	}

	nodes := g.Nodes()
	n := len(nodes)
	if n == 0 {
		return nil, fmt.Errorf("%w: no nodes to distribute over", ErrEmptyGraph)
	}

	prob := make(map[string]float64, n)
	initial := 1.0 / float64(n)
	for _, id := range nodes {
		prob[id] = initial
	}

	for iter := 0; iter < iterations; iter++ {
		next := make(map[string]float64, n)
		for _, id := range nodes {
			next[id] = 0
		}
		for _, u := range nodes {
			degree := g.OutDegree(u)
			if degree == 0 {
				continue
			}
			share := prob[u] / float64(degree)
			for _, v := range g.OutEdges(u) {
				next[v] += share
			}
		}
		prob = next
	}
	return prob, nil
}
