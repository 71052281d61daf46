// Package trie implements the NoiseStore: a prefix-trie over the
// relation's dimensions storing, for every tuple still reachable from
// present∪potential, its noise value — and the scoped propagation that
// keeps every attribute's ν_P/ν_PP counters in sync as the enumerator
// commits elements present or absent.
//
// Each trie level corresponds to one dimension, in internal order. A
// level's children are held in a tube: a dense, array-indexed
// implementation, or a sparse, map-indexed one. Every tube starts sparse
// and is upgraded to dense by the insertion that brings its occupancy to
// DensityThreshold; insertions only happen while the store is built, so
// the choice is never revisited mid-mining (spec.md §9 design note). A crisp store collapses
// every leaf noise value to a single bit, trading generality for memory
// when the input relation is known to be 0/1-valued.
package trie
