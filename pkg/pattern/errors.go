package pattern

import "errors"

// ErrInvalidPattern indicates a malformed r/.../ selector: empty pattern or
// invalid regular expression syntax.
var ErrInvalidPattern = errors.New("invalid column pattern")
