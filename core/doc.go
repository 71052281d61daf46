// Package core defines the shared data model mined by the rest of this
// module: elements, dimensions, noisy tuples, and the Relation that a
// Parser collaborator produces and a Preprocessor collaborator reduces.
//
// A Relation is an n-dimensional tensor whose cells carry a membership
// degree in [0,1]. Internally every membership is stored as an integer
// Noise in [0, NoisePerUnit], where NoisePerUnit is a package-level scale
// (math.MaxUint32 unless a caller assigns it; see its doc). Absent tuples implicitly carry full noise (NoisePerUnit); a
// present tuple with membership m carries NoisePerUnit*(1-m).
//
// core has no notion of search, pruning, or measures — those live in
// attribute, trie, measure, and enumerator. It is the narrow interface
// boundary between the out-of-scope parser/pre-processor and the mining
// engine.
package core
