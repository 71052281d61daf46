package irrelevancy

import (
	"github.com/cerf/etnset/attribute"
	"github.com/cerf/etnset/core"
	"github.com/cerf/etnset/measure"
	"github.com/cerf/etnset/trie"
)

// Clean runs spec.md §4.5's procedure to a fixed point: recompute
// thresholds, flag newly present∪potential-irrelevant elements per
// attribute, test violationAfterRemoving against each flagged batch
// before committing it, and erase whatever survives into absent via the
// NoiseStore — repeating, since erasing shrinks some attribute's
// potential region, which can lower every dimension's threshold and
// surface further irrelevant elements next round. Returns false the
// moment any batch violates a measure, telling the caller to prune the
// node without finishing the pass.
func Clean(attrs []*attribute.Attribute, dims []core.DimensionSpec, minArea int, store *trie.Store, suite *measure.Suite) bool {
	for {
		thresholds := Thresholds(attrs, dims, minArea)
		anyNew := false
		for d, a := range attrs {
			_, newIDs := a.FindPresentAndPotentialIrrelevantValuesAndCheckTauContiguity(thresholds[d])
			if len(newIDs) == 0 {
				continue
			}
			anyNew = true
			if suite.ViolationAfterRemoving(d, newIDs, attrs) {
				return false
			}
		}
		if !anyNew {
			return true
		}
		for d, a := range attrs {
			ids := a.EraseIrrelevantValues()
			for _, id := range ids {
				eraseOne(store, attrs, d, id)
			}
		}
	}
}

// eraseOne propagates one newly-absent element id into the NoiseStore,
// mirroring it across the twin dimension when d is symmetric. The error
// SetAbsent/SetSymmetricAbsent return only ever signals an out-of-range
// dimension id, which Clean never passes, so it is discarded.
func eraseOne(store *trie.Store, attrs []*attribute.Attribute, d, id int) {
	if attrs[d].Symmetric {
		if twin := attrs[d].Twin(); twin != nil {
			_ = store.SetSymmetricAbsent(d, twin.ID(), id, attrs)
			return
		}
	}
	_ = store.SetAbsent(d, id, attrs)
}
