// Package miner is the facade wiring a Parser's core.Relation through
// preprocessing, the trie.Store and enumerator.Tree, into an emit.Sink —
// the same role the teacher's top-level package plays gluing its core
// data model and algorithms packages together for callers. Parsing,
// preprocessing, output formatting, and agglomeration stay collaborators
// reached through small interfaces (Parser, Preprocessor, emit.Sink,
// Agglomerator): this package owns only the wiring, never a file format
// or a measure's math.
package miner
