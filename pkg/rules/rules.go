package rules

import (
	"github.com/framecheck/framecheck/pkg/dataset"
)

// Predicate is a custom column check. It receives the column under
// validation and returns a validity mask aligned with the column: mask[i]
// reports whether row i passes. A returned error marks the whole check as
// failed to execute rather than failing individual rows.
type Predicate func(dataset.Column) ([]bool, error)

// Checks maps a check name to its argument. The name is either a builtin
// operator with its argument value, or any name with a Predicate value for
// custom checks.
type Checks map[string]any

// Def is the rich per-selector column specification. Zero value means
// presence-only validation: nil Nullable and Required default to true.
type Def struct {
	// DType is the expected semantic element type; empty skips the check.
	DType string

	// Nullable permits null values when true. Defaults to true.
	Nullable *bool

	// Unique requires all non-null values to be distinct.
	Unique bool

	// Required makes a selector with no matching columns a violation.
	// Defaults to true.
	Required *bool

	// Checks are value-level checks applied to every matched column.
	Checks Checks
}

// Columns is the closed sum of column specification shapes. Exactly three
// exported shapes exist: Names, DTypes, and Defs; YAML documents produce a
// fourth internal shape that preserves document order.
type Columns interface {
	normalize() ([]Rule, error)
}

// Names is the bare-list shape: each entry is a selector whose matching
// columns must exist. Order is preserved.
type Names []string

// DTypes is the selector-to-dtype shape. Selectors normalize in
// lexicographic order.
type DTypes map[string]string

// Defs is the selector-to-specification shape. Selectors normalize in
// lexicographic order.
type Defs map[string]Def

// Set is one complete validation specification.
type Set struct {
	// Columns describes per-column expectations; nil means none.
	Columns Columns

	// CompositeUnique lists groups of literal column names whose value
	// tuples must be distinct. Every group needs at least two columns.
	CompositeUnique [][]string

	// Strict rejects dataset columns not matched by any selector. Nil
	// inherits the caller's setting.
	Strict *bool

	// Lazy collects every issue instead of stopping at the first. Nil
	// inherits the caller's setting.
	Lazy *bool
}

// Rule is one normalized validation rule, produced by Set.Normalize.
type Rule struct {
	// Selector is the literal name or r/.../ pattern the rule applies to.
	Selector string

	// DType is the expected dtype; empty skips the dtype check.
	DType string

	// Nullable permits nulls in matched columns.
	Nullable bool

	// Unique requires distinct non-null values in matched columns.
	Unique bool

	// Required makes zero matches a violation.
	Required bool

	// Checks are the value checks to run against matched columns, in
	// specification order.
	Checks []Check
}

// Bool returns a pointer to v. Convenience for the *bool specification
// fields.
func Bool(v bool) *bool { return &v }
