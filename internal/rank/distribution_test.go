package rank

import (
	"errors"
	"math"
	"testing"

	"github.com/papapumpkin/linkrank/internal/graph"
)

const tolerance = 1e-9

func approx(a, b float64) bool {
	return math.Abs(a-b) <= tolerance
}

func sum(scores map[string]float64) float64 {
	total := 0.0
	for _, v := range scores {
		total += v
	}
	return total
}

func TestDistribution_InvalidArguments(t *testing.T) {
	t.Parallel()
	g := graph.New()
	g.AddEdge("a", "b")

	for _, iterations := range []int{0, -1, -100} {
		_, err := Distribution(g, iterations)
		if !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("Distribution(iterations=%d): got %v, want ErrInvalidArgument", iterations, err)
		}
	}
}

func TestDistribution_EmptyGraph(t *testing.T) {
	t.Parallel()
	_, err := Distribution(graph.New(), 1)
	if !errors.Is(err, ErrEmptyGraph) {
		t.Errorf("got %v, want ErrEmptyGraph", err)
	}
}

// TestDistribution_ThreeNodeTrace pins the exact single-round result for
// the graph a→b, b→a, b→c. Starting uniform at 1/3 each: a receives half
// of b's mass (1/6), b receives all of a's mass (1/3), c receives the
// other half of b's mass (1/6). c's own 1/3 is dropped because c has no
// out-edges, leaving a total of 2/3.
func TestDistribution_ThreeNodeTrace(t *testing.T) {
	t.Parallel()
	g := graph.New()
	g.AddEdge("a", "b")
	g.AddEdge("b", "a")
	g.AddEdge("b", "c")

	scores, err := Distribution(g, 1)
	if err != nil {
		t.Fatalf("Distribution: %v", err)
	}

	want := map[string]float64{
		"a": 1.0 / 6,
		"b": 1.0 / 3,
		"c": 1.0 / 6,
	}
	for node, w := range want {
		if !approx(scores[node], w) {
			t.Errorf("scores[%s] = %v, want %v", node, scores[node], w)
		}
	}
	if !approx(sum(scores), 2.0/3) {
		t.Errorf("sum = %v, want 2/3", sum(scores))
	}
}

func TestDistribution_MassConservation(t *testing.T) {
	t.Parallel()

	// Every node has out-edges, so no mass is ever dropped.
	g := graph.New()
	g.AddEdge("a", "b")
	g.AddEdge("b", "c")
	g.AddEdge("c", "a")
	g.AddEdge("c", "b")

	for _, iterations := range []int{1, 2, 5, 50} {
		scores, err := Distribution(g, iterations)
		if err != nil {
			t.Fatalf("Distribution(%d): %v", iterations, err)
		}
		if !approx(sum(scores), 1.0) {
			t.Errorf("after %d iterations sum = %v, want 1.0", iterations, sum(scores))
		}
	}
}

func TestDistribution_DanglingMassLoss(t *testing.T) {
	t.Parallel()

	// c is dangling; its mass is dropped each round it holds any.
	g := graph.New()
	g.AddEdge("a", "b")
	g.AddEdge("b", "a")
	g.AddEdge("b", "c")

	previous := 1.0
	for iterations := 1; iterations <= 6; iterations++ {
		scores, err := Distribution(g, iterations)
		if err != nil {
			t.Fatalf("Distribution(%d): %v", iterations, err)
		}
		total := sum(scores)
		if total > previous+tolerance {
			t.Errorf("after %d iterations sum = %v, exceeds previous %v (mass gained)", iterations, total, previous)
		}
		previous = total
	}
	// b feeds c every round, so mass keeps draining.
	if previous >= 2.0/3 {
		t.Errorf("sum after 6 iterations = %v, want strictly below 2/3", previous)
	}
}

// TestDistribution_DuplicateEdgesWeighted verifies the multigraph policy:
// a repeated edge receives a proportionally larger share of the mass.
func TestDistribution_DuplicateEdgesWeighted(t *testing.T) {
	t.Parallel()
	g := graph.New()
	g.AddEdge("a", "b")
	g.AddEdge("a", "b")
	g.AddEdge("a", "c")

	scores, err := Distribution(g, 1)
	if err != nil {
		t.Fatalf("Distribution: %v", err)
	}

	// a starts at 1/3 with out-degree 3; b gets two shares, c one.
	if !approx(scores["b"], 2.0/9) {
		t.Errorf("scores[b] = %v, want 2/9", scores["b"])
	}
	if !approx(scores["c"], 1.0/9) {
		t.Errorf("scores[c] = %v, want 1/9", scores["c"])
	}
	if !approx(scores["a"], 0) {
		t.Errorf("scores[a] = %v, want 0", scores["a"])
	}
}

func TestDistribution_DoesNotMutateGraph(t *testing.T) {
	t.Parallel()
	g := graph.New()
	g.AddEdge("a", "b")
	g.AddEdge("b", "a")

	if _, err := Distribution(g, 10); err != nil {
		t.Fatalf("Distribution: %v", err)
	}
	if g.NodeCount() != 2 || g.EdgeCount() != 2 {
		t.Errorf("graph changed: %d nodes, %d edges", g.NodeCount(), g.EdgeCount())
	}
}
