package attribute

import (
	"sort"

	"github.com/cerf/etnset/core"
)

// SetChosenValuePresent moves the pivot fixed by ChooseValue from
// potential into present.
func (a *Attribute) SetChosenValuePresent() {
	a.present = append(a.present, a.chosen)
	a.potential = removeValue(a.potential, a.chosen)
}

// SetChosenValueAbsent moves the pivot fixed by ChooseValue from potential
// into absent. isPreventingClosedness carries the sibling branch's
// closedness flag forward (spec.md §4.4 step 6): once any branch at this
// element has seen a non-monotone removal violation, the resulting absent
// element can no longer prove its ancestor closed.
func (a *Attribute) SetChosenValueAbsent(isPreventingClosedness bool) {
	a.absent = append(a.absent, a.chosen)
	a.potential = removeValue(a.potential, a.chosen)
	if isPreventingClosedness {
		a.extensionPreventingClosedness = true
	}
}

func removeValue(vs []*Value, target *Value) []*Value {
	out := vs[:0:0]
	for _, v := range vs {
		if v != target {
			out = append(out, v)
		}
	}
	return out
}

// FindIrrelevantValuesAndCheckTauContiguity flags every potential element
// whose present-noise already exceeds the epsilon budget (it can never be
// promoted to present without violating invariant 2) by moving it into
// the irrelevant region, and — for metric attributes — reports whether
// present, sorted by label, now has two consecutive entries farther apart
// than Tau (tau-contiguity is unrecoverable once that happens; the bound
// is on the gap between neighbors, not present's overall span).
func (a *Attribute) FindIrrelevantValuesAndCheckTauContiguity() bool {
	remaining := a.potential[:0:0]
	for _, v := range a.potential {
		if v.PresentNoise > a.epsilonNoise {
			a.irrelevant = append(a.irrelevant, v)
		} else {
			remaining = append(remaining, v)
		}
	}
	a.potential = remaining
	if a.Metric && len(a.present) > 1 {
		if a.maxAdjacentGap(a.presentLabels()) > a.Tau {
			a.tauContiguityViolated = true
		}
	}
	return a.tauContiguityViolated
}

// FindPresentAndPotentialIrrelevantValuesAndCheckTauContiguity is the
// min-size-element-pruning variant (spec.md §4.5): it tests ν_PP against
// an externally supplied threshold (rather than ν_P against epsilon) and
// returns the newly-irrelevant ids so the caller can test
// violationAfterRemoving before committing them. For metric attributes an
// adjacent-gap overrun only sets the soft ExtensionPreventingClosedness
// flag, never a hard violation — §4.2's Unclosed docs the same asymmetry.
func (a *Attribute) FindPresentAndPotentialIrrelevantValuesAndCheckTauContiguity(threshold core.Noise) (violated bool, newlyIrrelevantIDs []int) {
	remaining := a.potential[:0:0]
	for _, v := range a.potential {
		if v.PresentAndPotentialNoise > threshold {
			a.irrelevant = append(a.irrelevant, v)
			newlyIrrelevantIDs = append(newlyIrrelevantIDs, v.DataID)
		} else {
			remaining = append(remaining, v)
		}
	}
	a.potential = remaining
	if a.Metric && len(a.present)+len(a.potential) > 1 {
		if a.maxAdjacentGap(a.presentAndPotentialLabels()) > a.Tau {
			a.extensionPreventingClosedness = true
		}
	}
	return false, newlyIrrelevantIDs
}

// EraseIrrelevantValues moves every value flagged irrelevant into absent
// and returns their DataIDs, so the caller can propagate the move into
// the NoiseStore.
func (a *Attribute) EraseIrrelevantValues() []int {
	if len(a.irrelevant) == 0 {
		return nil
	}
	ids := make([]int, len(a.irrelevant))
	for i, v := range a.irrelevant {
		ids[i] = v.DataID
	}
	a.absent = append(a.absent, a.irrelevant...)
	a.irrelevant = nil
	return ids
}

// PresentAndPotentialCleanAbsent is EraseIrrelevantValues under the name
// spec.md §4.5 uses at the min-size-pruning call site; both drain the
// same irrelevant region built by the two Find* methods above.
func (a *Attribute) PresentAndPotentialCleanAbsent() []int { return a.EraseIrrelevantValues() }

// Unclosed reports whether some absent element is still adjoinable
// (ν_PP(e) <= epsilon*N), which would make the current present set
// non-maximal — unless this dimension was declared Unclosed. For a
// metric dimension, an adjoinable absent element only sets the soft
// ExtensionPreventingClosedness flag rather than failing the branch
// outright (spec.md §4.4 step 1).
func (a *Attribute) Unclosed() bool {
	if !a.closedRequired {
		return false
	}
	for _, v := range a.absent {
		if v.PresentAndPotentialNoise <= a.epsilonNoise {
			if a.Metric {
				a.extensionPreventingClosedness = true
				return false
			}
			return true
		}
	}
	return false
}

// ExtensionPreventingClosedness reports the soft flag Unclosed and the
// tau-contiguity checks set for metric dimensions.
func (a *Attribute) ExtensionPreventingClosedness() bool {
	return a.extensionPreventingClosedness
}

// Finalize moves every remaining potential element into present (used
// once every attribute is Finalizable) and returns their DataIDs so the
// caller can run violationAfterAdding against the whole batch at once.
func (a *Attribute) Finalize() []int {
	if len(a.potential) == 0 {
		return nil
	}
	ids := make([]int, len(a.potential))
	for i, v := range a.potential {
		ids[i] = v.DataID
	}
	a.present = append(a.present, a.potential...)
	a.potential = nil
	return ids
}

// TauFarValueDataIDs computes, for the attribute whose chosen pivot is
// about to be set absent, which additional potential elements become
// unreachable (too far, in label order, from the remaining present span)
// once the pivot leaves — always just the pivot itself for non-metric
// attributes.
func (a *Attribute) TauFarValueDataIDs() []int {
	ids := []int{a.chosen.DataID}
	if !a.Metric || len(a.present) == 0 {
		return ids
	}
	lo, hi := a.presentLabelRange()
	for _, v := range a.potential {
		if v == a.chosen {
			continue
		}
		lbl := a.labelValues[v.DataID]
		if lbl < lo-a.Tau || lbl > hi+a.Tau {
			ids = append(ids, v.DataID)
		}
	}
	return ids
}

// SetChosenByID fixes the pivot to whichever potential element carries
// the given DataID, mirroring a parent's already-chosen value across a
// left-branch Clone (where ChooseValue's own appeal recomputation would
// be redundant work, not a different answer).
func (a *Attribute) SetChosenByID(id int) {
	for _, v := range a.potential {
		if v.DataID == id {
			a.chosen = v
			return
		}
	}
}

// SetPresentByID moves the potential element with the given DataID into
// present. A symmetric dimension's present and absent regions must stay
// identical to its twin's at every recursion node (spec.md §8 invariant
// 5), so the enumerator calls this on the twin whenever the other side
// of the pair commits a present move for id — unlike SetChosenValuePresent,
// id need not be this attribute's own chosen pivot. No-op if id is not in
// potential (already mirrored).
func (a *Attribute) SetPresentByID(id int) {
	for i, v := range a.potential {
		if v.DataID == id {
			a.present = append(a.present, v)
			a.potential = append(a.potential[:i:i], a.potential[i+1:]...)
			return
		}
	}
}

// SetAbsentByID is SetPresentByID's absent counterpart, used to mirror a
// twin's absent commit.
func (a *Attribute) SetAbsentByID(id int, isPreventingClosedness bool) {
	for i, v := range a.potential {
		if v.DataID == id {
			a.absent = append(a.absent, v)
			a.potential = append(a.potential[:i:i], a.potential[i+1:]...)
			if isPreventingClosedness {
				a.extensionPreventingClosedness = true
			}
			return
		}
	}
}

// RemoveFromPotential moves every potential element whose DataID appears
// in ids into absent, without touching extensionPreventingClosedness —
// the non-chosen tau-far elements TauFarValueDataIDs returns alongside
// the pivot take this path, while the pivot itself goes through
// SetChosenValueAbsent so the closedness flag is only threaded once.
func (a *Attribute) RemoveFromPotential(ids []int) {
	if len(ids) == 0 {
		return
	}
	drop := make(map[int]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	remaining := a.potential[:0:0]
	for _, v := range a.potential {
		if drop[v.DataID] {
			a.absent = append(a.absent, v)
		} else {
			remaining = append(remaining, v)
		}
	}
	a.potential = remaining
}

// presentLabelRange returns the current present region's label boundary
// (min, max), the edge TauFarValueDataIDs measures a candidate's distance
// from — not a width bound in itself, since a contiguous chain of
// within-tau steps can span further than tau end to end (spec.md §8 S4).
func (a *Attribute) presentLabelRange() (lo, hi float64) {
	lo, hi = a.labelValues[a.present[0].DataID], a.labelValues[a.present[0].DataID]
	for _, v := range a.present[1:] {
		l := a.labelValues[v.DataID]
		if l < lo {
			lo = l
		}
		if l > hi {
			hi = l
		}
	}
	return lo, hi
}

// presentLabels returns every present element's label value.
func (a *Attribute) presentLabels() []float64 {
	out := make([]float64, len(a.present))
	for i, v := range a.present {
		out[i] = a.labelValues[v.DataID]
	}
	return out
}

// presentAndPotentialLabels returns every present-or-potential element's
// label value.
func (a *Attribute) presentAndPotentialLabels() []float64 {
	out := make([]float64, 0, len(a.present)+len(a.potential))
	for _, v := range a.present {
		out = append(out, a.labelValues[v.DataID])
	}
	for _, v := range a.potential {
		out = append(out, a.labelValues[v.DataID])
	}
	return out
}

// maxAdjacentGap sorts labels and returns the largest difference between
// label-order-consecutive entries — tau-contiguity's actual invariant
// (spec.md §8 S4: `{10,20,30}` is allowed under tau=10 despite a total
// span of 20, because each consecutive step is only 10; `{10,30}` alone
// is not, because skipping the absent 20 leaves a single 20-wide step).
// A present/potential region built one within-tau step at a time can
// never violate this even as its total span grows past tau.
func (a *Attribute) maxAdjacentGap(labels []float64) float64 {
	if len(labels) < 2 {
		return 0
	}
	sorted := append([]float64(nil), labels...)
	sort.Float64s(sorted)
	var maxGap float64
	for i := 1; i < len(sorted); i++ {
		if gap := sorted[i] - sorted[i-1]; gap > maxGap {
			maxGap = gap
		}
	}
	return maxGap
}
