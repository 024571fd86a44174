package rank

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/papapumpkin/linkrank/internal/graph"
)

// StochasticOptions configures the random-walk estimator.
type StochasticOptions struct {
	Walks   int   // number of independent random walks; must be ≥ 1
	Steps   int   // link follows per walk; must be ≥ 0
	Workers int   // parallel walkers; values < 1 mean a single worker
	Seed    int64 // base seed; 0 derives one from the wall clock
}

// Stochastic estimates PageRank by visit frequency: it performs
// opts.Walks independent random walks of opts.Steps uniform transitions
// each, starting from a uniformly chosen node, and credits each walk's
// final node with 1/Walks.
//
// A walk that reaches a dangling node stays on it for its remaining steps,
// so the dangling node is the one credited.
//
// Walks are split across opts.Workers goroutines, each with its own
// rand.Rand derived from opts.Seed, and the per-worker visit counts are
// summed before normalization. Results are deterministic for a fixed seed
// and worker count. The graph is never mutated.
func Stochastic(g *graph.Graph, opts StochasticOptions) (map[string]float64, error) {
	if opts.Walks < 1 {
		return nil, fmt.Errorf("%w: walks must be >= 1, got %d", ErrInvalidArgument, opts.Walks)
	}
	if opts.Steps < 0 {
		return nil, fmt.Errorf("%w: steps must be >= 0, got %d", ErrInvalidArgument, opts.Steps)
	}

	nodes := g.Nodes()
	if len(nodes) == 0 {
		return nil, fmt.Errorf("%w: no nodes to walk", ErrEmptyGraph)
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > opts.Walks {
		workers = opts.Walks
	}

	// Split walks as evenly as possible; the first remainder workers take
	// one extra walk.
	share := opts.Walks / workers
	remainder := opts.Walks % workers

	partials := make([]map[string]int, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		walks := share
		if i < remainder {
			walks++
		}
		wg.Add(1)
		go func(slot, walks int, seed int64) {
			defer wg.Done()
			partials[slot] = runWalks(g, nodes, walks, opts.Steps, rand.New(rand.NewSource(seed)))
		}(i, walks, seed+int64(i))
	}
	wg.Wait()

	scores := make(map[string]float64, len(nodes))
	for _, id := range nodes {
		scores[id] = 0
	}
	unit := 1.0 / float64(opts.Walks)
	for _, counts := range partials {
		for id, n := range counts {
			scores[id] += float64(n) * unit
		}
	}
	return scores, nil
}

// runWalks performs the given number of random walks and returns how often
// each node was a walk's final position.
func runWalks(g *graph.Graph, nodes []string, walks, steps int, r *rand.Rand) map[string]int {
	counts := make(map[string]int)
	for i := 0; i < walks; i++ {
		current := nodes[r.Intn(len(nodes))]
		for s := 0; s < steps; s++ {
			targets := g.OutEdges(current)
			if len(targets) == 0 {
				// Dangling node: the walker stays put, so the
				// remaining steps cannot change the outcome.
				break
			}
			current = targets[r.Intn(len(targets))]
		}
		counts[current]++
	}
	return counts
}
