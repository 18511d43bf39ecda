// Package rules declares validation specifications for columnar datasets and
// normalizes them into the ordered rule list the engine executes.
//
// A Set couples a column specification with composite-uniqueness groups and
// set-level switches. The column specification comes in three shapes, all
// implementing the closed Columns interface:
//
//   - Names: a bare list of selectors, presence-only validation
//   - DTypes: selector to expected dtype
//   - Defs: selector to a rich per-column specification (dtype, nullability,
//     uniqueness, requiredness, value checks)
//
// Selectors are literal column names or r/<pattern>/ regular expressions in
// every shape. Value checks are either one of the builtin operators (gt, ge,
// lt, le, eq, ne, between, isin, notin, notnull, str_regex, str_startswith,
// str_endswith, str_contains, str_length) or a custom Predicate function.
//
// # Normalization
//
// Set.Normalize flattens the shapes into []Rule, resolving defaults
// (nullable and required default to true, unique to false) and validating
// every check operator and argument up front. Go maps carry no declaration
// order, so map-shaped specifications normalize in lexicographic selector
// order; Names keeps list order and YAML documents keep document order.
//
// # YAML
//
// ParseYAML and LoadFile read the same specification from a YAML document:
//
//	columns:
//	  id:
//	    dtype: int64
//	    unique: true
//	  name: string
//	  r/^score_/:
//	    dtype: float64
//	    checks:
//	      between: [0, 100]
//	composite_unique:
//	  - [region, code]
//	strict: true
//
// # Error Handling
//
// Malformed specifications (unknown operator, bad argument shape, invalid
// composite group, unparseable YAML) are reported as ErrInvalidSpec joined
// with detail. Argument problems surface at normalization, never during
// validation of data.
package rules
