package attribute

import "github.com/cerf/etnset/core"

// IsPresentID reports whether element id currently classifies as present.
// Used by the NoiseStore while propagating a present commitment to decide,
// for each sibling coordinate, whether every other dimension of a tuple is
// already present (spec.md §4.1 setPresent).
func (a *Attribute) IsPresentID(id int) bool {
	for _, v := range a.present {
		if v.DataID == id {
			return true
		}
	}
	return false
}

// findValue locates id in whichever region currently holds it. Present,
// potential, and absent are mutually exclusive at all times, so at most one
// call succeeds.
func (a *Attribute) findValue(id int) *Value {
	for _, v := range a.present {
		if v.DataID == id {
			return v
		}
	}
	for _, v := range a.potential {
		if v.DataID == id {
			return v
		}
	}
	for _, v := range a.absent {
		if v.DataID == id {
			return v
		}
	}
	return nil
}

// AddPresentNoise adds n to element id's present-noise counter ν_P. Called
// by the NoiseStore once it determines a tuple now qualifies (every other
// dimension of the tuple is present too).
func (a *Attribute) AddPresentNoise(id int, n core.Noise) {
	if v := a.findValue(id); v != nil {
		v.PresentNoise += n
	}
}

// AddPresentAndPotentialNoise adds n to element id's ν_PP counter. Called
// once per relation tuple before enumeration begins (trie.SeedNoise): at
// the root every coordinate is potential, so "every other dimension is
// present or potential" trivially holds for every tuple, and ν_PP(e)
// starts as the sum of every tuple's noise that touches e.
func (a *Attribute) AddPresentAndPotentialNoise(id int, n core.Noise) {
	if v := a.findValue(id); v != nil {
		v.PresentAndPotentialNoise += n
	}
}

// SubtractPresentAndPotentialNoise removes n from element id's ν_PP
// counter, and from ν_P too when it was counted there. Called by the
// NoiseStore when a tuple is pruned out of present∪potential entirely.
func (a *Attribute) SubtractPresentAndPotentialNoise(id int, n core.Noise, alsoPresent bool) {
	v := a.findValue(id)
	if v == nil {
		return
	}
	v.PresentAndPotentialNoise -= n
	if alsoPresent && v.PresentNoise >= n {
		v.PresentNoise -= n
	}
}
