package enumerator

import (
	"github.com/cerf/etnset/attribute"
	"github.com/cerf/etnset/core"
	"github.com/cerf/etnset/emit"
	"github.com/cerf/etnset/irrelevancy"
	"github.com/cerf/etnset/measure"
	"github.com/cerf/etnset/trie"
)

// Tree drives the DFS enumeration over one relation. It is built once per
// mining run and its Mine method is called once with the root attribute
// state (every element potential) and the root Store; the recursion itself
// happens inside peel, which takes both the Store and the attribute state
// as parameters rather than reading them off the receiver (see doc.go).
// Every call frame's Store is its own value: leftSubtree clones it before
// recursing so the left branch's pruning cannot leak into the right
// branch explored afterward at the same frame.
type Tree struct {
	dims []core.DimensionSpec

	minArea        int
	minSizePruning bool

	sink          emit.Sink
	externalOrder []int
}

// NewTree builds a Tree that mines using dims for per-dimension
// configuration. minArea is the pattern's minimum area (spec.md §4.5);
// when minSizePruning is true the right branch additionally runs the
// min-size-element irrelevancy pass (package irrelevancy) before
// recursing, the ENUMERATION_PROCESS-gated optimization the original
// makes available via a compile flag. sink receives every closed pattern
// found, in externalOrder (see emit.Pattern).
func NewTree(dims []core.DimensionSpec, minArea int, minSizePruning bool, sink emit.Sink, externalOrder []int) *Tree {
	return &Tree{
		dims:           dims,
		minArea:        minArea,
		minSizePruning: minSizePruning,
		sink:           sink,
		externalOrder:  externalOrder,
	}
}

// Mine runs the full enumeration starting from store and attrs (every
// element of every dimension potential) and measures, emitting every
// closed pattern found to the Tree's sink. store, attrs, and measures are
// consumed: callers must not reuse them afterward. store's dimensionality
// must match dims.
func (t *Tree) Mine(store *trie.Store, attrs []*attribute.Attribute, measures *measure.Suite) error {
	if store.NDims() != len(t.dims) {
		return ErrDimensionMismatch
	}
	attribute.RewireTwins(attrs)
	_, err := t.peel(store, attrs, measures)
	return err
}

// dominated is a reserved extension point for a heuristic that recognizes
// a branch whose every leaf is already covered by an earlier result; the
// original ships it unconditionally returning false with no heuristic
// implemented, and this port keeps that stub rather than invent one.
func (t *Tree) dominated([]*attribute.Attribute) bool { return false }

// peel is the recursive core: spec.md §4.4 steps 1-6. It reports whether
// this call's subtree contains an enumerated element that could prevent
// an ancestor pattern from being provably closed — the value the original
// stores as Tree::isEnumeratedElementPotentiallyPreventingClosedness and
// returns to its caller via leftSubtree's result and the final fold at
// the end of peel.
func (t *Tree) peel(store *trie.Store, attrs []*attribute.Attribute, measures *measure.Suite) (preventingClosedness bool, err error) {
	// Step 1: unclosed check. A non-metric dimension with an adjoinable
	// absent element makes the present set provably non-maximal; abandon
	// outright. A metric dimension only soft-flags (Unclosed sets
	// extensionPreventingClosedness itself and returns false).
	for _, a := range attrs {
		if a.Unclosed() {
			return false, nil
		}
	}
	softFlag := false
	for _, a := range attrs {
		if a.ExtensionPreventingClosedness() {
			softFlag = true
			break
		}
	}

	// Step 2: finalizability. When every dimension can take the whole of
	// its potential into present with every element staying within
	// budget, each dimension is finalized (potential -> present) in one
	// batch, then checked against the measure suite.
	allFinalizable := true
	for _, a := range attrs {
		if !a.Finalizable() {
			allFinalizable = false
			break
		}
	}
	if allFinalizable {
		violated := false
		for d, a := range attrs {
			ids := a.Finalize()
			if len(ids) > 0 && measures.ViolationAfterAdding(d, ids, attrs) {
				violated = true
			}
		}
		if violated {
			// Any violation here sets the flag unconditionally,
			// regardless of which measure tripped (spec.md §4.3).
			return true, nil
		}
		if t.dominated(attrs) {
			return softFlag, nil
		}
	}

	// Step 3: leaf. Every dimension's potential is empty: present is
	// maximal and passed every measure, so it is a valid pattern.
	allPotentialEmpty := true
	for _, a := range attrs {
		if !a.PotentialEmpty() {
			allPotentialEmpty = false
			break
		}
	}
	if allPotentialEmpty {
		if err := t.emit(attrs); err != nil {
			return false, err
		}
		return true, nil
	}

	// Step 4: pick the branching pivot, the non-empty-potential attribute
	// with the highest appeal.
	pivot := -1
	var bestAppeal float64
	for d, a := range attrs {
		if a.PotentialEmpty() {
			continue
		}
		appeal := a.GetAppeal()
		if pivot == -1 || appeal > bestAppeal {
			pivot, bestAppeal = d, appeal
		}
	}
	attrs[pivot].ChooseValue()

	// Step 5: left branch (pivot present), on a cloned Store, a cloned
	// attribute slice, and a cloned measure suite.
	leftFlag, err := t.leftSubtree(store, attrs, measures, pivot)
	if err != nil {
		return false, err
	}

	// Step 6: right branch (pivot, and any tau-far siblings, absent),
	// continuing on the SAME Store, attribute slice, and measure suite —
	// it is a tail continuation of this call, not a new child.
	rightFlag, err := t.rightSubtree(store, attrs, measures, pivot, leftFlag)
	if err != nil {
		return false, err
	}

	return softFlag || leftFlag || rightFlag, nil
}

func (t *Tree) emit(attrs []*attribute.Attribute) error {
	dims := make([][]int, len(attrs))
	for d, a := range attrs {
		ids := make([]int, len(a.Present()))
		for i, v := range a.Present() {
			ids[i] = v.DataID
		}
		dims[d] = ids
	}
	return t.sink.Emit(emit.Pattern{Dims: dims, ExternalOrder: t.externalOrder})
}

// leftSubtree tests the pivot's addition against a cloned measure suite
// (childMeasures) before ever constructing the cloned attribute slice —
// the original's childMeasures is pure measure-level and never itself
// touches isEnumeratedElementPotentiallyPreventingClosedness. On success
// it clones the Store too: the clone is what this branch's own further
// recursion prunes, so none of that pruning is visible once control
// returns to rightSubtree back at the parent frame, which continues on
// the untouched parent Store. It then commits the pivot present on the
// clones, propagates the noise effect through the cloned Store, drains
// any newly-irrelevant elements the epsilon threshold exposes, and
// recurses.
func (t *Tree) leftSubtree(store *trie.Store, attrs []*attribute.Attribute, measures *measure.Suite, pivot int) (bool, error) {
	pivotValue := attrs[pivot].GetChosenValue().DataID

	childMeasures := measures.Clone()
	if childMeasures.ViolationAfterAdding(pivot, []int{pivotValue}, attrs) {
		return false, nil
	}

	childStore := store.Clone()
	childAttrs := cloneAttrs(attrs)
	attribute.RewireTwins(childAttrs)
	childAttrs[pivot].SetChosenByID(pivotValue)
	childAttrs[pivot].SetChosenValuePresent()
	if childAttrs[pivot].Symmetric {
		// A clique dimension's twin must see the same present move at the
		// same recursion node (spec.md §8 invariant 5).
		childAttrs[childAttrs[pivot].TwinID].SetPresentByID(pivotValue)
	}

	if err := t.commitPresent(childStore, pivot, pivotValue, childAttrs); err != nil {
		return false, err
	}

	// commitPresent can credit newly-qualifying noise into any sibling
	// dimension's already-present elements, not only pivot's own
	// dimension; re-validate every dimension's present region before
	// continuing, since an over-budget present element is infeasible,
	// not merely un-promotable (spec.md §3 invariant 2).
	for _, a := range childAttrs {
		if a.PresentNoiseExceeded() {
			return false, nil
		}
	}

	for _, a := range childAttrs {
		if a.FindIrrelevantValuesAndCheckTauContiguity() {
			return false, nil
		}
	}
	for d, a := range childAttrs {
		ids := a.EraseIrrelevantValues()
		if len(ids) == 0 {
			continue
		}
		if err := t.commitAbsentIDs(childStore, d, ids, childAttrs); err != nil {
			return false, err
		}
	}

	return t.peel(childStore, childAttrs, childMeasures)
}

// rightSubtree drops the pivot (and, for a metric dimension, any
// potential element now too far in label order from the shrunk present
// span) into absent. A non-monotone measure's removal violation aborts
// the branch but still carries the flag forward, since that absent
// element could still have proven an ancestor closed (spec.md §4.4 step
// 6); a monotone violation aborts silently.
func (t *Tree) rightSubtree(store *trie.Store, attrs []*attribute.Attribute, measures *measure.Suite, pivot int, leftFlag bool) (bool, error) {
	a := attrs[pivot]
	removeIDs := a.TauFarValueDataIDs()

	violated, nonMonotone := measures.ViolationAfterRemovingPreventingClosedness(pivot, removeIDs, attrs)
	if violated {
		// Abandoned before any state is committed: a monotone violation
		// here can never un-violate deeper in this subtree, so nothing
		// about it can still prove an ancestor closed. A non-monotone
		// one could have, so its flag still propagates up even though
		// the branch itself goes unexplored.
		return nonMonotone, nil
	}
	if t.dominated(attrs) {
		return false, nil
	}

	for _, id := range removeIDs {
		if err := t.commitAbsent(store, pivot, id, attrs); err != nil {
			return false, err
		}
	}
	a.SetChosenValueAbsent(leftFlag)
	a.RemoveFromPotential(removeIDs[1:])
	if a.Symmetric {
		// Mirror the same invariant as leftSubtree's present move.
		attrs[a.TwinID].SetAbsentByID(removeIDs[0], leftFlag)
	}

	if t.minSizePruning {
		if !irrelevancy.Clean(attrs, t.dims, t.minArea, store, measures) {
			return false, nil
		}
	}

	return t.peel(store, attrs, measures)
}

// commitPresent assumes attrs[dim]'s own region move (potential -> present)
// has already happened and attrs[dim]'s twin has already been mirrored by
// the caller when symmetric; it propagates the noise effect of that move
// through store, covering both dim and its twin's hyperplanes for a
// symmetric dimension (the pair shares the clique's self-loop exclusion,
// per Store.SetSymmetricPresent).
func (t *Tree) commitPresent(store *trie.Store, dim, id int, attrs []*attribute.Attribute) error {
	a := attrs[dim]
	if a.Symmetric {
		return store.SetSymmetricPresent(dim, a.TwinID, id, attrs)
	}
	return store.SetPresent(dim, id, attrs)
}

// commitAbsent is commitPresent's absent counterpart.
func (t *Tree) commitAbsent(store *trie.Store, dim, id int, attrs []*attribute.Attribute) error {
	a := attrs[dim]
	if a.Symmetric {
		return store.SetSymmetricAbsent(dim, a.TwinID, id, attrs)
	}
	return store.SetAbsent(dim, id, attrs)
}

func (t *Tree) commitAbsentIDs(store *trie.Store, dim int, ids []int, attrs []*attribute.Attribute) error {
	for _, id := range ids {
		if err := t.commitAbsent(store, dim, id, attrs); err != nil {
			return err
		}
	}
	return nil
}

func cloneAttrs(attrs []*attribute.Attribute) []*attribute.Attribute {
	out := make([]*attribute.Attribute, len(attrs))
	for i, a := range attrs {
		out[i] = a.Clone()
	}
	return out
}
