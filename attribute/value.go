package attribute

import "github.com/cerf/etnset/core"

// Value is one element id of a dimension, carrying the incrementally
// maintained noise counters spec.md §3 defines:
//
//	PresentNoise            ν_P(e)  — noise summed over tuples whose other
//	                                  coordinates are all already present.
//	PresentAndPotentialNoise ν_PP(e) — same, but other coordinates may be
//	                                  present or still potential.
//
// Invariant 1 (spec.md §3): PresentNoise <= PresentAndPotentialNoise,
// maintained by construction since every present-only tuple is also a
// present-and-potential tuple.
type Value struct {
	// DataID is the internal element id this Value represents.
	DataID int

	// Label is the external label, used only for printing.
	Label string

	PresentNoise            core.Noise
	PresentAndPotentialNoise core.Noise
}
