// Package enumerator implements the depth-first branch-and-bound search
// that finds every closed error-tolerant n-set (spec.md §4.4), the direct
// counterpart of original_source/Tree.cpp's Tree::peel/leftSubtree/
// rightSubtree recursion.
//
// Tree owns nothing the recursion doesn't share: one emit.Sink every leaf
// reports to, and the per-dimension configuration needed to rebuild
// irrelevancy thresholds along the way. Everything that branching mutates —
// the *trie.Store, the []*attribute.Attribute slice, the *measure.Suite —
// is instead a parameter threaded down the call stack: cloned once per
// left branch, mutated in place for the right. The Store clone matters as
// much as the attribute clone does: the original's Tree::data is a single
// trie mutated destructively (tuples pruned out of present∪potential are
// deleted, not just hidden), and without a clone the right branch would
// see the left branch's entire internal exploration baked into the trie
// rather than just the ancestor path's decisions. peel needs no Tree-wide
// mutable fields to thread the "did this subtree's closedness get
// compromised" flag either: it is returned up the call stack instead of
// stored on the receiver, since Go has no copy-constructor-per-recursion-
// node idiom to lean on the way the original's per-node Tree objects did.
package enumerator
