// Package rank implements two independent PageRank estimators over a link
// graph — a Monte-Carlo random-walk estimator and an iterative
// probability-distribution estimator — plus top-k selection over their
// score mappings.
//
// Both estimators implement the simplified textbook variants: no damping
// factor, no teleportation, and no redistribution of mass from dangling
// nodes. The dangling-node behavior of each estimator is documented on the
// estimator itself.
package rank

import "errors"

// ErrInvalidArgument is returned when an iteration or step count is out of
// its valid range.
var ErrInvalidArgument = errors.New("invalid argument")

// ErrEmptyGraph is returned when an estimator needs a uniform choice over
// nodes but the graph has none.
var ErrEmptyGraph = errors.New("empty graph")
