package measure

import "github.com/cerf/etnset/attribute"

// MinUtility rejects a pattern whose summed per-element utility, over one
// designated dimension, falls below a minimum. Utility values are
// external (parsed from a utility-value file per spec.md §6) and supplied
// once at construction, keyed by internal element id. Monotone: only
// removal can shrink the summed utility of present∪potential.
type MinUtility struct {
	Dim     int
	Utility []float64 // by internal element id in Dim
	Min     float64
}

func (m *MinUtility) Clone() Measure { c := *m; return &c }
func (m *MinUtility) Monotone() bool { return true }

func (m *MinUtility) ViolationAfterAdding(int, []int, []*attribute.Attribute) bool { return false }

func (m *MinUtility) ViolationAfterRemoving(dim int, elems []int, attrs []*attribute.Attribute) bool {
	if dim != m.Dim {
		return false
	}
	total := m.sumOverPresentAndPotential(attrs[dim])
	for _, e := range elems {
		total -= m.Utility[e]
	}
	return total < m.Min
}

func (m *MinUtility) sumOverPresentAndPotential(a *attribute.Attribute) float64 {
	var total float64
	for _, v := range a.Present() {
		total += m.Utility[v.DataID]
	}
	for _, v := range a.Potential() {
		total += m.Utility[v.DataID]
	}
	return total
}
