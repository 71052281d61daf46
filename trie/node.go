package trie

import "github.com/cerf/etnset/core"

// node is one trie level. At every depth but the last, children indexes the
// next dimension's nodes; at the last dimension, leaves holds noise values
// directly, since there is nothing further to branch on.
type node struct {
	children tube
	leaves   leafTube
}

// clone deep-copies n and everything reachable from it. Used by Store.Clone
// to give a left branch its own copy of the remaining search space, so its
// prune calls cannot affect the sibling right branch's view (doc.go).
func (n *node) clone() *node {
	if n == nil {
		return nil
	}
	out := &node{}
	if n.children != nil {
		out.children = n.children.clone()
	}
	if n.leaves != nil {
		out.leaves = n.leaves.clone()
	}
	return out
}

// insert walks coords from depth, creating nodes lazily, and records noise
// at the leaf. cardinalities[d] and crisp parameterize tube/leafTube
// construction per level.
func insert(n *node, depth int, coords []int, noise core.Noise, cardinalities []int, crisp bool) {
	last := len(cardinalities) - 1
	if depth == last {
		if n.leaves == nil {
			n.leaves = newLeafTube(cardinalities[depth], crisp)
		}
		n.leaves.set(coords[depth], noise)
		n.leaves = maybeDensifyLeaf(n.leaves)
		return
	}
	if n.children == nil {
		n.children = newTube(cardinalities[depth])
	}
	id := coords[depth]
	child, ok := n.children.get(id)
	if !ok {
		child = &node{}
		n.children.set(id, child)
	}
	insert(child, depth+1, coords, noise, cardinalities, crisp)
	n.children = maybeDensify(n.children)
}

// walkMatchingDim visits every tuple whose coordinate at targetDim equals
// targetValue, passing its full coordinate vector and noise. coords is
// reused across calls — visit must not retain it.
func walkMatchingDim(n *node, depth, nDims, targetDim, targetValue int, coords []int, visit func(coords []int, noise core.Noise)) {
	last := nDims - 1
	if depth == last {
		if n.leaves == nil {
			return
		}
		if targetDim == depth {
			if v, ok := n.leaves.get(targetValue); ok {
				coords[depth] = targetValue
				visit(coords, v)
			}
			return
		}
		n.leaves.each(func(id int, v core.Noise) {
			coords[depth] = id
			visit(coords, v)
		})
		return
	}
	if n.children == nil {
		return
	}
	if targetDim == depth {
		if child, ok := n.children.get(targetValue); ok {
			coords[depth] = targetValue
			walkMatchingDim(child, depth+1, nDims, targetDim, targetValue, coords, visit)
		}
		return
	}
	n.children.each(func(id int, child *node) {
		coords[depth] = id
		walkMatchingDim(child, depth+1, nDims, targetDim, targetValue, coords, visit)
	})
}

// prune removes every tuple whose coordinate at targetDim equals
// targetValue, and reports whether n has become entirely empty so the
// caller can drop its own entry for n.
func prune(n *node, depth, nDims, targetDim, targetValue int) bool {
	last := nDims - 1
	if depth == last {
		if n.leaves == nil {
			return true
		}
		if targetDim == depth {
			n.leaves.delete(targetValue)
		} else {
			var ids []int
			n.leaves.each(func(id int, _ core.Noise) { ids = append(ids, id) })
			for _, id := range ids {
				n.leaves.delete(id)
			}
		}
		return n.leaves.len() == 0
	}
	if n.children == nil {
		return true
	}
	switch {
	case targetDim == depth:
		if child, ok := n.children.get(targetValue); ok {
			if prune(child, depth+1, nDims, targetDim, targetValue) {
				n.children.delete(targetValue)
			}
		}
	case targetDim > depth:
		var empty []int
		n.children.each(func(id int, child *node) {
			if prune(child, depth+1, nDims, targetDim, targetValue) {
				empty = append(empty, id)
			}
		})
		for _, id := range empty {
			n.children.delete(id)
		}
	default: // targetDim < depth: already matched higher up, drop the whole subtree
		var all []int
		n.children.each(func(id int, _ *node) { all = append(all, id) })
		for _, id := range all {
			n.children.delete(id)
		}
	}
	return n.children.len() == 0
}
