package measure

import "errors"

var (
	// ErrTooManyRatios indicates a group-cover matrix row named more
	// columns than there are configured groups.
	ErrTooManyRatios = errors.New("measure: matrix row provides more entries than there are groups")

	// ErrGroupOutOfRange indicates a group id outside the configured group
	// table.
	ErrGroupOutOfRange = errors.New("measure: group id out of range")

	// ErrDimensionOutOfRange indicates a MinSize/MaxSize entry referenced
	// a dimension id outside the relation.
	ErrDimensionOutOfRange = errors.New("measure: dimension id out of range")
)
