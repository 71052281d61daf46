package core

import "errors"

// Sentinel errors for the data model.
var (
	// ErrDimensionMismatch indicates a tuple, epsilon vector, or size vector
	// supplied more or fewer coefficients than the relation has dimensions.
	ErrDimensionMismatch = errors.New("core: dimension count mismatch")

	// ErrCliqueAndTau indicates a dimension was declared both symmetric
	// (clique) and almost-contiguous (tau != 0); the two are incompatible.
	ErrCliqueAndTau = errors.New("core: dimension cannot be both a clique dimension and metric/tau-noisy")

	// ErrEmptyRelation indicates pre-processing (or parsing) left no tuples
	// at all in some dimension. This is not an error condition for mining
	// (mining simply yields no patterns); callers that require tuples may
	// use it to short-circuit.
	ErrEmptyRelation = errors.New("core: relation has no elements in at least one dimension")
)
