// Package measure implements the pluggable constraint set a pattern must
// satisfy: size and area bounds, group-cover bounds (plain and the
// cross-group association kin — ratio, Piatetsky-Shapiro, leverage,
// force, Yule's Q and Y), utility, and slope. Every Measure is cloned at
// each left-branch recursion alongside the attribute slice it inspects,
// and is asked only the question relevant to the branch direction: adding
// elements tests ViolationAfterAdding, removing tests
// ViolationAfterRemoving (spec.md §4.3).
package measure
