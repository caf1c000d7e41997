package terrain

import "errors"

var (
	// ErrEmptyHeights indicates the input heights have no rows or no columns.
	ErrEmptyHeights = errors.New("terrain: heights must have at least one row and one column")
	// ErrNonRectangular indicates rows of differing lengths.
	ErrNonRectangular = errors.New("terrain: all rows must have the same length")
	// ErrHeightRange indicates a column height that does not fit the grid.
	ErrHeightRange = errors.New("terrain: column height out of range")
	// ErrBadParams indicates invalid generation parameters.
	ErrBadParams = errors.New("terrain: invalid generation parameters")
)
