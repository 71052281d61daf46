package measure

import "github.com/cerf/etnset/attribute"

// Measure is one constraint a pattern must satisfy throughout mining.
// Implementations hold only their own incremental state, so Clone is a
// shallow struct copy unless a field is itself a mutable collection.
type Measure interface {
	// Clone returns an independent copy for a left-branch child.
	Clone() Measure

	// Monotone reports whether this measure is antimonotone with respect
	// to removal: once violated by shrinking a dimension, it stays
	// violated (the Min* family). Non-monotone measures (Max* and mixed
	// group-cover kin) are evaluated on the adding side instead. The
	// enumerator stably sorts monotone measures first, since they prune
	// earlier and more cheaply (spec.md §4.3).
	Monotone() bool

	// ViolationAfterAdding reports whether moving elems of dim from
	// potential to present would violate this measure. Called only by
	// the left (present) branch.
	ViolationAfterAdding(dim int, elems []int, attrs []*attribute.Attribute) bool

	// ViolationAfterRemoving reports whether moving elems of dim from
	// potential to absent would violate this measure. Called only by the
	// right (absent) branch and by the min-size-element pruning pass.
	ViolationAfterRemoving(dim int, elems []int, attrs []*attribute.Attribute) bool
}

// Suite is an ordered collection of measures, stably partitioned once at
// construction so monotone measures are tested first.
type Suite struct {
	measures []Measure
}

// NewSuite stably partitions ms so every Monotone measure precedes every
// non-monotone one, preserving relative order within each group.
func NewSuite(ms []Measure) *Suite {
	monotone := make([]Measure, 0, len(ms))
	rest := make([]Measure, 0, len(ms))
	for _, m := range ms {
		if m.Monotone() {
			monotone = append(monotone, m)
		} else {
			rest = append(rest, m)
		}
	}
	return &Suite{measures: append(monotone, rest...)}
}

// All returns the ordered measure list.
func (s *Suite) All() []Measure { return s.measures }

// Clone deep-copies every measure for a left-branch child.
func (s *Suite) Clone() *Suite {
	out := make([]Measure, len(s.measures))
	for i, m := range s.measures {
		out[i] = m.Clone()
	}
	return &Suite{measures: out}
}

// ViolationAfterAdding reports whether any measure in the suite rejects
// adding elems of dim to present.
func (s *Suite) ViolationAfterAdding(dim int, elems []int, attrs []*attribute.Attribute) bool {
	for _, m := range s.measures {
		if m.ViolationAfterAdding(dim, elems, attrs) {
			return true
		}
	}
	return false
}

// ViolationAfterRemoving reports whether any measure in the suite rejects
// removing elems of dim from potential into absent.
func (s *Suite) ViolationAfterRemoving(dim int, elems []int, attrs []*attribute.Attribute) bool {
	violated, _ := s.ViolationAfterRemovingPreventingClosedness(dim, elems, attrs)
	return violated
}

// ViolationAfterRemovingPreventingClosedness is ViolationAfterRemoving's
// right-branch variant: it also reports whether the measure that tripped
// is non-monotone. A non-monotone measure's removal violation means the
// absent element it rejected could still have proven an ancestor pattern
// closed, so the enumerator must carry that forward as a soft flag
// instead of silently abandoning the branch (spec.md §4.3, §4.4 step 6).
func (s *Suite) ViolationAfterRemovingPreventingClosedness(dim int, elems []int, attrs []*attribute.Attribute) (violated, nonMonotone bool) {
	for _, m := range s.measures {
		if m.ViolationAfterRemoving(dim, elems, attrs) {
			return true, !m.Monotone()
		}
	}
	return false, false
}
