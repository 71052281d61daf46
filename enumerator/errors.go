package enumerator

import "errors"

// ErrDimensionMismatch indicates NewTree was given attribute and
// dimension-spec slices of different lengths.
var ErrDimensionMismatch = errors.New("enumerator: attrs and dims length mismatch")
