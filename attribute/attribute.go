package attribute

import (
	"strconv"

	"github.com/cerf/etnset/core"
)

// AppealMode selects how GetAppeal scores a candidate branching element,
// mirroring the original's compile-time ENUMERATION_PROCESS flag as a
// package variable instead, since Go has no conditional compilation:
//
//	0: the potential element minimizing the noise it introduces in the
//	   potential region of the search space (default).
//	1: the element minimizing noise in the present region, tie-broken by
//	   potential noise.
var AppealMode = 0

// Attribute classifies one relation dimension's elements into present,
// potential, and absent regions (spec.md §3). Variant behavior (metric
// tau-contiguity, symmetric/clique pairing) is selected by the Metric and
// Symmetric flags rather than by subtyping, the same flag-driven design
// core.Graph itself uses for directed/weighted/multi/loop variants.
type Attribute struct {
	id             int
	epsilonNoise   core.Noise
	closedRequired bool

	// Metric dimensions enforce tau-contiguity: in LabelValues order, no
	// two consecutive present elements may lie more than Tau apart.
	Metric      bool
	Tau         float64
	labelValues []float64 // by internal element id

	// Symmetric dimensions share their classification with a twin
	// dimension (a clique). TwinID is the twin's index into the owning
	// []*Attribute slice; twin is resolved by RewireTwins after every
	// clone, never serialized directly (spec.md §9: index, not pointer).
	Symmetric bool
	TwinID    int
	twin      *Attribute

	labels []string // by internal element id, printing only

	present    []*Value
	potential  []*Value
	absent     []*Value
	irrelevant []*Value // flagged for erasure; already taken out of potential

	chosen *Value

	// tauContiguityViolated is set by FindIrrelevantValuesAndCheckTauContiguity
	// or FindPresentAndPotentialIrrelevantValuesAndCheckTauContiguity and
	// consumed by Unclosed/the caller in the same recursion step.
	tauContiguityViolated bool

	// extensionPreventingClosedness is set when a metric dimension's
	// Unclosed check only soft-fails (spec.md §4.2 Unclosed: "metric dims
	// flag it softly").
	extensionPreventingClosedness bool
}

// New builds an Attribute for one internal dimension, with every element
// id in [0, spec.Cardinality) starting potential.
func New(id int, spec core.DimensionSpec) *Attribute {
	a := &Attribute{
		id:             id,
		epsilonNoise:   core.EpsilonNoise(spec.Epsilon),
		closedRequired: !spec.Unclosed,
		Metric:         spec.Tau != 0,
		Tau:            spec.Tau,
		Symmetric:      spec.Symmetric,
		labels:         spec.Labels,
		labelValues:    spec.LabelValues,
		potential:      make([]*Value, spec.Cardinality),
	}
	for e := 0; e < spec.Cardinality; e++ {
		label := ""
		if e < len(spec.Labels) {
			label = spec.Labels[e]
		}
		a.potential[e] = &Value{DataID: e, Label: label}
	}
	return a
}

// ID returns the internal dimension id this Attribute classifies.
func (a *Attribute) ID() int { return a.id }

// EpsilonNoise returns the compiled noise budget epsilon_d * N.
func (a *Attribute) EpsilonNoise() core.Noise { return a.epsilonNoise }

// Present, Potential, and Absent return read-only views of each region.
// Callers must not retain these slices across mutating calls.
func (a *Attribute) Present() []*Value   { return a.present }
func (a *Attribute) Potential() []*Value { return a.potential }
func (a *Attribute) Absent() []*Value    { return a.absent }
func (a *Attribute) Irrelevant() []*Value { return a.irrelevant }

// SizeOfPresent, SizeOfPresentAndPotential, and GlobalSize are the sizes
// the irrelevancy threshold computation (package irrelevancy) needs.
func (a *Attribute) SizeOfPresent() int { return len(a.present) }
func (a *Attribute) SizeOfPresentAndPotential() int {
	return len(a.present) + len(a.potential)
}
func (a *Attribute) GlobalSize() int {
	return len(a.present) + len(a.potential) + len(a.absent)
}

// PotentialEmpty reports whether T_d is empty (a necessary leaf condition).
func (a *Attribute) PotentialEmpty() bool { return len(a.potential) == 0 }

// IrrelevantEmpty reports whether no element is flagged irrelevant and
// waiting to be erased into absent.
func (a *Attribute) IrrelevantEmpty() bool { return len(a.irrelevant) == 0 }

// Finalizable reports true iff the whole of potential can be promoted to
// present at once without any element going over the epsilon budget:
// every present and potential element's ν_PP is within budget, and ν_PP
// is the value its ν_P takes once every coordinate touching it is
// present. Computed directly from the noise counters rather than from
// the irrelevant region, which FindIrrelevantValuesAndCheckTauContiguity
// always drains back to empty before peel is re-entered.
func (a *Attribute) Finalizable() bool {
	for _, v := range a.present {
		if v.PresentAndPotentialNoise > a.epsilonNoise {
			return false
		}
	}
	for _, v := range a.potential {
		if v.PresentAndPotentialNoise > a.epsilonNoise {
			return false
		}
	}
	return true
}

// PresentNoiseExceeded reports whether any element already classified
// present has had its present-noise pushed past the epsilon budget by a
// later sibling commit (spec.md §3 invariant 2, §8 invariant 1): a
// present element whose ν_P exceeds epsilon*N makes the whole node
// infeasible, not merely ineligible for future promotion the way an
// over-budget potential element is. Must be checked after every commit
// that can add present-noise (trie.Store.SetPresent/SetSymmetricPresent),
// since FindIrrelevantValuesAndCheckTauContiguity only re-scans potential.
func (a *Attribute) PresentNoiseExceeded() bool {
	for _, v := range a.present {
		if v.PresentNoise > a.epsilonNoise {
			return true
		}
	}
	return false
}

// Twin returns the paired symmetric attribute, or nil if none is wired.
func (a *Attribute) Twin() *Attribute { return a.twin }

// RewireTwins resolves TwinID into a live pointer for every Symmetric
// attribute in attrs. Called once after every clone of the full attribute
// slice, since the twin pointer cannot survive a deep copy verbatim.
func RewireTwins(attrs []*Attribute) {
	for _, a := range attrs {
		if a.Symmetric {
			a.twin = attrs[a.TwinID]
		}
	}
}

// GetChosenValue returns the pivot element fixed by the last ChooseValue
// call.
func (a *Attribute) GetChosenValue() *Value { return a.chosen }

// ChooseValue fixes the most appealing potential element (computed by the
// last GetAppeal call) as the branching pivot. Panics if potential is
// empty — callers must only branch on attributes with !PotentialEmpty().
func (a *Attribute) ChooseValue() *Value {
	idx := a.appealingIndex()
	a.chosen = a.potential[idx]
	return a.chosen
}

// Clone performs the deep copy required at every left-branch recursion:
// fresh *Value instances (since their noise counters diverge per node),
// fresh region slices, irrelevant/chosen reset. Twin pointers are left nil
// — callers must invoke RewireTwins on the cloned slice once every sibling
// Attribute has been cloned.
func (a *Attribute) Clone() *Attribute {
	clone := *a
	clone.present = cloneValues(a.present)
	clone.potential = cloneValues(a.potential)
	clone.absent = cloneValues(a.absent)
	clone.irrelevant = nil
	clone.chosen = nil
	clone.twin = nil
	clone.tauContiguityViolated = false
	clone.extensionPreventingClosedness = false
	return &clone
}

func cloneValues(vs []*Value) []*Value {
	if len(vs) == 0 {
		return nil
	}
	out := make([]*Value, len(vs))
	for i, v := range vs {
		cp := *v
		out[i] = &cp
	}
	return out
}

// PrintValue renders a Value using the attribute's external label.
func (a *Attribute) PrintValue(v *Value) string {
	if v.Label != "" {
		return v.Label
	}
	return strconv.Itoa(v.DataID)
}
