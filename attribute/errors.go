package attribute

import "errors"

// Sentinel errors for attribute construction and access.
var (
	// ErrNoLabels indicates a dimension was constructed with a cardinality
	// that does not match the number of supplied labels.
	ErrNoLabels = errors.New("attribute: cardinality does not match label count")

	// ErrNotMetric indicates a tau-contiguity operation was requested on a
	// non-metric attribute.
	ErrNotMetric = errors.New("attribute: not a metric attribute")

	// ErrNoTwin indicates a symmetric operation was requested before the
	// twin attribute was wired via RewireTwins.
	ErrNoTwin = errors.New("attribute: symmetric attribute has no twin wired")

	// ErrPotentialEmpty indicates ChooseValue was called with nothing left
	// in the potential region.
	ErrPotentialEmpty = errors.New("attribute: potential region is empty")
)
