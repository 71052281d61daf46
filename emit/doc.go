// Package emit formats and delivers mined patterns, the counterpart of
// original_source/Tree.cpp's direct-to-outputFile printing and its
// agglomeration-node alternative (spec.md §6 "Output: pattern stream").
//
// Sink is the single extension point: enumerator.Tree depends only on
// Sink.Emit, never on a concrete writer, so a caller can swap LineSink's
// direct-to-io.Writer behavior for one that agglomerates patterns in
// memory (mirroring Tree::validPattern's branch between immediate output
// and `new Node(...)`).
package emit
