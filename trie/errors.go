package trie

import "errors"

// Sentinel errors for NoiseStore construction and access.
var (
	// ErrDimensionCount indicates a Store was asked to operate on a
	// dimension id outside [0, NDims).
	ErrDimensionCount = errors.New("trie: dimension id out of range")

	// ErrEmptyTuple indicates an inserted tuple did not carry one element
	// id per dimension.
	ErrEmptyTuple = errors.New("trie: tuple arity does not match store dimensionality")
)
