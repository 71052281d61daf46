// Package irrelevancy computes the per-dimension noise thresholds that
// drive min-size-element pruning (spec.md §4.5): given a node's current
// attribute sizes and the miner's configured minArea/minSize/maxSize
// bounds, an element of present∪potential whose ν_PP already exceeds its
// dimension's threshold cannot survive in any feasible descendant
// pattern and can be erased into absent immediately.
//
// Thresholds combines a per-dimension epsilon budget with an area-based
// correction term comparing the pattern's current maximal shape against
// its minimal feasible shape. Symmetric (clique) dimensions collapse to
// one shared bound before the non-symmetric dimensions' corrections are
// computed against them.
//
// All ceiling subexpressions the formula calls for go through the single
// ceilNoise rounding helper in threshold.go, the "single well-defined
// rounding convention" spec.md §9 leaves as an open question.
package irrelevancy
