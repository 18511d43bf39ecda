package rules

import "errors"

// Predefined errors for the rules package.
var (
	// ErrInvalidSpec indicates a malformed validation specification: an
	// unknown check operator, a bad argument shape, an invalid composite
	// uniqueness group, or an unparseable rules document.
	ErrInvalidSpec = errors.New("invalid validation spec")

	// ErrIncompatibleColumn indicates a check was evaluated against a column
	// whose dtype it cannot operate on, such as a string operator on a
	// numeric column.
	ErrIncompatibleColumn = errors.New("check incompatible with column dtype")
)
