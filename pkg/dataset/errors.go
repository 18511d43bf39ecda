package dataset

import "errors"

// Predefined errors for the dataset package.
var (
	// ErrEmptyName indicates a column was declared without a name.
	ErrEmptyName = errors.New("column name must not be empty")

	// ErrDuplicateColumn indicates two columns share the same name.
	ErrDuplicateColumn = errors.New("duplicate column name")

	// ErrLengthMismatch indicates columns (or row labels) disagree on row count.
	ErrLengthMismatch = errors.New("columns must have equal length")

	// ErrMixedTypes indicates a column mixes values of different element types.
	ErrMixedTypes = errors.New("column values must share one element type")

	// ErrUnsupportedType indicates a value or Arrow type outside the supported set.
	ErrUnsupportedType = errors.New("unsupported element type")
)
