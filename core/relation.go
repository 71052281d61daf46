package core

import "sort"

// Permutation describes the external→internal dimension reordering chosen
// once at construction time: dimensions are visited smallest-cardinality
// first so the trie's root has the smallest fan-out, minimizing redundant
// traversals (spec.md §9).
type Permutation struct {
	// ExternalToInternal[d] is the internal id of external dimension d.
	ExternalToInternal []int
	// InternalToExternal[d] is the external id of internal dimension d.
	InternalToExternal []int
}

// HyperplaneOf returns dimension d's stored tuple list: the slice a
// Preprocessor populates and trie.Store.SetHyperplane consumes wholesale
// to build the initial trie (spec.md §4.1 setHyperplane).
func (r Relation) HyperplaneOf(d int) []NoisyTuple { return r.Hyperplanes[d] }

// Reorder computes the increasing-cardinality dimension permutation for r
// and returns both the permutation and r rewritten into internal order.
// Symmetric (clique) dimensions are kept contiguous and ordered by their
// lowest-numbered member, since the engine requires every clique dimension
// to occupy one contiguous internal id range (spec.md §4.4: "If attribute
// is symmetric, it always is the first one").
func (r Relation) Reorder() (Permutation, Relation) {
	n := len(r.Dims)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		ci, cj := r.Dims[order[i]].Cardinality, r.Dims[order[j]].Cardinality
		if ci != cj {
			return ci < cj
		}
		return r.Dims[order[i]].Symmetric && !r.Dims[order[j]].Symmetric
	})
	perm := Permutation{
		InternalToExternal: order,
		ExternalToInternal: make([]int, n),
	}
	for internal, external := range order {
		perm.ExternalToInternal[external] = internal
	}
	newDims := make([]DimensionSpec, n)
	newHyperplanes := make([][]NoisyTuple, n)
	for internal, external := range order {
		newDims[internal] = r.Dims[external]
		if external < len(r.Hyperplanes) {
			hp := make([]NoisyTuple, len(r.Hyperplanes[external]))
			for i, t := range r.Hyperplanes[external] {
				if len(t.Elements) != n {
					hp[i] = t
					continue
				}
				elems := make([]int, n)
				for in, ex := range order {
					elems[in] = t.Elements[ex]
				}
				hp[i] = NoisyTuple{Elements: elems, Noise: t.Noise}
			}
			newHyperplanes[internal] = hp
		}
	}
	return perm, Relation{Dims: newDims, Hyperplanes: newHyperplanes}
}
