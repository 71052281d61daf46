package attribute

import "github.com/cerf/etnset/core"

// GetAppeal scores how promising it is to branch on this attribute next.
// The enumerator picks, among attributes with non-empty potential, the one
// with the highest appeal (spec.md §4.4 step 4). Higher appeal means a
// smaller noise cost for the upcoming branch, i.e. this dimension's best
// candidate element is the least risky one to decide next.
func (a *Attribute) GetAppeal() float64 {
	_, cost := a.bestCandidate()
	return -cost
}

// appealingIndex returns the index within potential of the element
// GetAppeal scored, so ChooseValue can fix it as the pivot.
func (a *Attribute) appealingIndex() int {
	idx, _ := a.bestCandidate()
	return idx
}

// bestCandidate implements both AppealMode variants (spec.md §4.2):
//
//	mode 0: minimize the noise the candidate introduces into the
//	        potential region, i.e. ν_PP(e) - ν_P(e).
//	mode 1: minimize ν_P(e), tie-broken by ν_PP(e).
func (a *Attribute) bestCandidate() (idx int, cost float64) {
	bestIdx := 0
	var bestKey, bestTie core.Noise
	for i, v := range a.potential {
		var key, tie core.Noise
		if AppealMode == 1 {
			key, tie = v.PresentNoise, v.PresentAndPotentialNoise
		} else {
			key, tie = v.PresentAndPotentialNoise-v.PresentNoise, v.PresentAndPotentialNoise
		}
		if i == 0 || key < bestKey || (key == bestKey && tie < bestTie) {
			bestIdx, bestKey, bestTie = i, key, tie
		}
	}
	return bestIdx, float64(bestKey)
}
