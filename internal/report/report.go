// Package report formats ranking results for human consumption: graph
// statistics, ranked lists, and the timing comparison between the two
// estimation methods.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/papapumpkin/linkrank/internal/rank"
)

// Stats prints node and edge counts for a loaded graph.
func Stats(w io.Writer, source string, nodes, edges int) {
	fmt.Fprintf(w, "%s: %d nodes, %d edges\n", source, nodes, edges)
}

// RankedList prints one line per entry: the score as a percentage with two
// decimals, a tab, and the node identifier.
func RankedList(w io.Writer, entries []rank.Entry) {
	for _, e := range entries {
		fmt.Fprintf(w, "%.2f\t%s\n", 100*e.Score, e.Node)
	}
}

// Timing prints how long an estimation took.
func Timing(w io.Writer, d time.Duration) {
	fmt.Fprintf(w, "Calculation took %.2f seconds.\n", d.Seconds())
}

// Speedup prints the ratio between the two methods' run times. Guarded
// against a zero distribution time, which sub-millisecond runs can produce.
func Speedup(w io.Writer, stochastic, distribution time.Duration) {
	if distribution <= 0 {
		return
	}
	ratio := stochastic.Seconds() / distribution.Seconds()
	fmt.Fprintf(w, "The probabilistic method was %.0f times faster.\n", ratio)
}
