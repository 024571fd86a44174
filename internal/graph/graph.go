// Package graph provides the directed link graph that the PageRank
// estimators run over. Nodes are page identifiers (URLs in practice) and
// edges are hyperlinks. The graph is append-only during construction and
// treated as immutable afterwards, so it is safe to share read-only across
// concurrent estimator runs.
package graph

import (
	"errors"
	"fmt"
)

// ErrUnknownNode is returned when an operation references a node that was
// never added to the graph.
var ErrUnknownNode = errors.New("unknown node")

// Graph is a directed multigraph keyed by string node identifiers.
//
// Duplicate edges are recorded, not deduplicated: a link that appears twice
// in the input doubles its weight in degree-based computations. Out-edge
// order and node order both follow first insertion, so iteration is
// deterministic for a given input.
type Graph struct {
	// order holds node IDs in first-appearance order.
	order []string
	// adjacency maps node ID → outgoing targets, duplicates included.
	adjacency map[string][]string
	edges     int
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		adjacency: make(map[string][]string),
	}
}

// AddEdge records a directed edge source → target. Both endpoints are
// inserted as nodes if they are not already present. Duplicate edges are
// accepted and recorded again.
func (g *Graph) AddEdge(source, target string) {
	g.ensureNode(source)
	g.ensureNode(target)
	g.adjacency[source] = append(g.adjacency[source], target)
	g.edges++
}

// ensureNode registers id as a node if it has not been seen before.
func (g *Graph) ensureNode(id string) {
	if _, ok := g.adjacency[id]; ok {
		return
	}
	g.adjacency[id] = nil
	g.order = append(g.order, id)
}

// HasNode reports whether id is a node of the graph.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.adjacency[id]
	return ok
}

// Nodes returns all node IDs in first-insertion order. The returned slice
// is shared; callers must not mutate it.
func (g *Graph) Nodes() []string {
	return g.order
}

// OutEdges returns the outgoing targets of id in insertion order, with
// duplicates. The result is nil for dangling or unknown nodes; use HasNode
// to distinguish the two. The returned slice is shared; callers must not
// mutate it.
func (g *Graph) OutEdges(id string) []string {
	return g.adjacency[id]
}

// OutDegree returns the number of outgoing edges of id, counting
// duplicates. Unknown and dangling nodes both report 0.
func (g *Graph) OutDegree(id string) int {
	return len(g.adjacency[id])
}

// Lookup returns the outgoing targets of id, or ErrUnknownNode if the node
// was never added.
func (g *Graph) Lookup(id string) ([]string, error) {
	targets, ok := g.adjacency[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownNode, id)
	}
	return targets, nil
}

// NodeCount returns the number of distinct nodes.
func (g *Graph) NodeCount() int {
	return len(g.order)
}

// EdgeCount returns the number of recorded edges, duplicates included.
func (g *Graph) EdgeCount() int {
	return g.edges
}
