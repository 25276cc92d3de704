// Package resulttree implements the two-phase result accumulator: a
// mutable Builder tree populated during decode, frozen by ToResult into an
// immutable Result tree that a renderer can walk repeatedly.
package resulttree
