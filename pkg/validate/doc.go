// Package validate is the validation engine: it executes a normalized rule
// set against a dataset and reports every violation as a structured issue.
//
// # Architecture
//
// A Validator is built once per specification with New, which normalizes
// the rule set, pre-compiles every r/.../ selector, and freezes the
// execution settings. Validation itself is a pure, synchronous pass over
// the dataset: Validate takes a per-call snapshot of the column layout,
// resolves every selector against it, and runs the phases in a fixed
// order:
//
//  1. shape (row count constraints, when configured)
//  2. column rules: existence for every rule first, then dtype,
//     nullability, and uniqueness per matched column in specification
//     order
//  3. strict mode (unexpected columns)
//  4. value checks, in specification order
//  5. composite uniqueness
//  6. row-level validation (when a row schema is configured)
//
// In fail-fast mode (the default) the first issue ends the run; in lazy
// mode every phase runs and the report carries all issues in phase order.
// The same Validator is safe for concurrent use: no state survives a call.
//
// # Usage
//
//	v, err := validate.New(&rules.Set{
//		Columns: rules.Defs{
//			"id":    {DType: "int64", Nullable: rules.Bool(false), Unique: true},
//			"score": {DType: "float64", Checks: rules.Checks{"between": []any{0, 100}}},
//		},
//	}, validate.WithLazy(true))
//	if err != nil {
//		// malformed specification: rules.ErrInvalidSpec or pattern.ErrInvalidPattern
//	}
//
//	report := v.Validate(ds)
//	if !report.Valid() {
//		log.Println(report) // Report implements error
//	}
//
// # Error Handling
//
// Specification problems (unknown operators, bad arguments, malformed
// patterns) surface from New as Go errors and never mix with data
// findings. Data findings always travel in the Report: Valid reports the
// outcome, Issues carries the structured findings, and Error renders the
// human-readable account.
package validate
