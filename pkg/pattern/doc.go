// Package pattern resolves column selectors against dataset column lists.
//
// A selector is either a literal column name or a regular expression wrapped
// as r/<pattern>/. Regex selectors match anywhere in the column name and
// expand to every matching column in dataset order; literal selectors expand
// to themselves when present. Compiled expressions are cached process-wide,
// so repeated validation of hot paths does not recompile.
//
// # Error Handling
//
// Malformed selectors (empty pattern, invalid regex syntax) are reported as
// ErrInvalidPattern joined with the compiler detail. An empty pattern is
// rejected outright: r// would otherwise match every column.
package pattern
