// Package attribute classifies the elements of one relation dimension
// into present, potential, and absent regions and drives the local
// decisions (irrelevancy, tau-contiguity, appeal, closedness) the
// enumerator needs at every recursion node.
//
// An Attribute owns three regions, each its own slice of *Value:
// present, potential, and absent, plus an "irrelevant" slice holding
// elements taken out of potential and waiting to be erased into absent. Two specializations extend it: Metric (adds tau-contiguity
// over an ordered label domain) and Symmetric (adds a twin attribute
// index for clique dimensions, whose P/T/A always mirror each other).
//
// Attribute is deep-cloned on every left branch of the enumerator's
// recursion (spec.md §3 lifecycle); Clone is the single allocation-heavy
// operation in the hot path, so regions are stored as slices rather than
// linked lists.
package attribute
