package rules

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/framecheck/framecheck/pkg/dataset"
)

// Builtin check operators.
const (
	OpGT            = "gt"
	OpGE            = "ge"
	OpLT            = "lt"
	OpLE            = "le"
	OpEQ            = "eq"
	OpNE            = "ne"
	OpBetween       = "between"
	OpIsIn          = "isin"
	OpNotIn         = "notin"
	OpNotNull       = "notnull"
	OpStrRegex      = "str_regex"
	OpStrStartsWith = "str_startswith"
	OpStrEndsWith   = "str_endswith"
	OpStrContains   = "str_contains"
	OpStrLength     = "str_length"
)

// Check is one normalized value check: either a builtin operator with a
// validated argument or a custom predicate. Checks are built during
// normalization; the zero value is not usable.
type Check struct {
	// Name is the operator name, or the caller-chosen name of a custom
	// check.
	Name string

	// Arg is the operator argument as specified; nil for custom checks
	// and argument-less operators.
	Arg any

	fn             Predicate
	list           []any
	lo, hi         any
	re             *regexp.Regexp
	minLen, maxLen int
}

// IsCustom reports whether the check runs a caller-supplied predicate.
func (c Check) IsCustom() bool { return c.fn != nil }

// buildCheck validates one checks-map entry and produces the normalized
// Check. Custom predicates pass through untouched; builtin operators get
// their arguments validated and precompiled here so that evaluation can
// never hit an argument error.
func buildCheck(name string, arg any) (Check, error) {
	switch fn := arg.(type) {
	case Predicate:
		return Check{Name: name, fn: fn}, nil
	case func(dataset.Column) ([]bool, error):
		return Check{Name: name, fn: fn}, nil
	}

	switch name {
	case OpGT, OpGE, OpLT, OpLE:
		if !orderable(arg) {
			return Check{}, specErrorf("check %q needs a numeric, string, or time argument, got %T", name, arg)
		}
		return Check{Name: name, Arg: arg}, nil

	case OpEQ, OpNE:
		if arg == nil || !equatable(arg) {
			return Check{}, specErrorf("check %q needs a scalar argument, got %T", name, arg)
		}
		return Check{Name: name, Arg: arg}, nil

	case OpBetween:
		pair, ok := toSlice(arg)
		if !ok || len(pair) != 2 {
			return Check{}, specErrorf("check %q needs a two-element [low, high] argument", name)
		}
		if !orderable(pair[0]) || !orderable(pair[1]) {
			return Check{}, specErrorf("check %q bounds must be numeric, string, or time values", name)
		}
		return Check{Name: name, Arg: arg, lo: pair[0], hi: pair[1]}, nil

	case OpIsIn, OpNotIn:
		list, ok := toSlice(arg)
		if !ok {
			return Check{}, specErrorf("check %q needs a list argument, got %T", name, arg)
		}
		return Check{Name: name, Arg: arg, list: list}, nil

	case OpNotNull:
		// Argument carries no meaning; accept the conventional true/nil.
		return Check{Name: name}, nil

	case OpStrRegex:
		s, ok := arg.(string)
		if !ok {
			return Check{}, specErrorf("check %q needs a pattern string, got %T", name, arg)
		}
		// The pattern must match from the start of the value; a match
		// further in does not count.
		re, err := regexp.Compile("^(?:" + s + ")")
		if err != nil {
			return Check{}, errors.Join(ErrInvalidSpec, fmt.Errorf("check %q: %w", name, err))
		}
		return Check{Name: name, Arg: arg, re: re}, nil

	case OpStrStartsWith, OpStrEndsWith, OpStrContains:
		if _, ok := arg.(string); !ok {
			return Check{}, specErrorf("check %q needs a string argument, got %T", name, arg)
		}
		return Check{Name: name, Arg: arg}, nil

	case OpStrLength:
		pair, ok := toSlice(arg)
		if !ok || len(pair) != 2 {
			return Check{}, specErrorf("check %q needs a two-element [min, max] argument", name)
		}
		lo, okLo := toInt(pair[0])
		hi, okHi := toInt(pair[1])
		if !okLo || !okHi {
			return Check{}, specErrorf("check %q bounds must be integers", name)
		}
		return Check{Name: name, Arg: arg, minLen: int(lo), maxLen: int(hi)}, nil

	default:
		return Check{}, specErrorf("unknown check %q", name)
	}
}

// Evaluate runs the check against a column and returns a validity mask
// aligned with it: mask[i] reports whether row i passes. Null values never
// pass a builtin check. ErrIncompatibleColumn is returned when the column's
// dtype cannot support the operator at all; custom predicate results are
// returned as-is.
func (c Check) Evaluate(col dataset.Column) ([]bool, error) {
	if c.fn != nil {
		return c.fn(col)
	}

	n := col.Len()
	mask := make([]bool, n)

	switch c.Name {
	case OpNotNull:
		for i := 0; i < n; i++ {
			mask[i] = !col.IsNull(i)
		}

	case OpGT, OpGE, OpLT, OpLE:
		if err := c.requireOrderable(col); err != nil {
			return nil, err
		}
		for i := 0; i < n; i++ {
			if col.IsNull(i) {
				continue
			}
			cmp, ok := orderValues(col.Value(i), c.Arg)
			if !ok {
				continue
			}
			switch c.Name {
			case OpGT:
				mask[i] = cmp > 0
			case OpGE:
				mask[i] = cmp >= 0
			case OpLT:
				mask[i] = cmp < 0
			case OpLE:
				mask[i] = cmp <= 0
			}
		}

	case OpBetween:
		if err := c.requireOrderable(col); err != nil {
			return nil, err
		}
		for i := 0; i < n; i++ {
			if col.IsNull(i) {
				continue
			}
			low, okLo := orderValues(col.Value(i), c.lo)
			high, okHi := orderValues(col.Value(i), c.hi)
			mask[i] = okLo && okHi && low >= 0 && high <= 0
		}

	case OpEQ:
		if err := c.requireComparable(col); err != nil {
			return nil, err
		}
		for i := 0; i < n; i++ {
			mask[i] = !col.IsNull(i) && equalValues(col.Value(i), c.Arg)
		}

	case OpNE:
		if err := c.requireComparable(col); err != nil {
			return nil, err
		}
		for i := 0; i < n; i++ {
			mask[i] = !col.IsNull(i) && !equalValues(col.Value(i), c.Arg)
		}

	case OpIsIn, OpNotIn:
		want := c.Name == OpIsIn
		for i := 0; i < n; i++ {
			if col.IsNull(i) {
				continue
			}
			v := col.Value(i)
			found := false
			for _, item := range c.list {
				if equalValues(v, item) {
					found = true
					break
				}
			}
			mask[i] = found == want
		}

	case OpStrRegex, OpStrStartsWith, OpStrEndsWith, OpStrContains, OpStrLength:
		if col.DType() != dataset.String {
			return nil, errors.Join(ErrIncompatibleColumn,
				fmt.Errorf("check %q requires a string column, got dtype %s", c.Name, col.DType()))
		}
		for i := 0; i < n; i++ {
			if col.IsNull(i) {
				continue
			}
			s, ok := col.Value(i).(string)
			if !ok {
				continue
			}
			switch c.Name {
			case OpStrRegex:
				mask[i] = c.re.MatchString(s)
			case OpStrStartsWith:
				mask[i] = strings.HasPrefix(s, c.Arg.(string))
			case OpStrEndsWith:
				mask[i] = strings.HasSuffix(s, c.Arg.(string))
			case OpStrContains:
				mask[i] = strings.Contains(s, c.Arg.(string))
			case OpStrLength:
				length := utf8.RuneCountInString(s)
				mask[i] = length >= c.minLen && length <= c.maxLen
			}
		}

	default:
		return nil, specErrorf("unknown check %q", c.Name)
	}

	return mask, nil
}

func (c Check) requireOrderable(col dataset.Column) error {
	if orderedCompatible(col.DType(), c.Arg, c.lo, c.hi) {
		return nil
	}
	return errors.Join(ErrIncompatibleColumn,
		fmt.Errorf("check %q cannot order dtype %s against its argument", c.Name, col.DType()))
}

func (c Check) requireComparable(col dataset.Column) error {
	if equalCompatible(col.DType(), c.Arg) {
		return nil
	}
	return errors.Join(ErrIncompatibleColumn,
		fmt.Errorf("check %q cannot compare dtype %s against %T", c.Name, col.DType(), c.Arg))
}

func specErrorf(format string, args ...any) error {
	return errors.Join(ErrInvalidSpec, fmt.Errorf(format, args...))
}

// Value class machinery. Checks compare within a class only: the numeric
// class spans all integer and float widths, times span date and timestamp
// dtypes.

type valueClass int

const (
	classUnknown valueClass = iota
	classNumeric
	classString
	classBool
	classBinary
	classTime
)

func classOfDType(dt dataset.DType) valueClass {
	switch dt {
	case dataset.Int8, dataset.Int16, dataset.Int32, dataset.Int64,
		dataset.Uint8, dataset.Uint16, dataset.Uint32, dataset.Uint64,
		dataset.Float32, dataset.Float64:
		return classNumeric
	case dataset.String:
		return classString
	case dataset.Bool:
		return classBool
	case dataset.Binary:
		return classBinary
	case dataset.Date32, dataset.Date64, dataset.Timestamp:
		return classTime
	default:
		return classUnknown
	}
}

func classOfValue(v any) valueClass {
	switch v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return classNumeric
	case string:
		return classString
	case bool:
		return classBool
	case []byte:
		return classBinary
	case time.Time:
		return classTime
	default:
		return classUnknown
	}
}

func orderable(v any) bool {
	switch classOfValue(v) {
	case classNumeric, classString, classTime:
		return true
	default:
		return false
	}
}

func equatable(v any) bool {
	return classOfValue(v) != classUnknown
}

// orderedCompatible reports whether all given argument values can be
// ordered against values of the column dtype. Unset arguments (nil) are
// ignored.
func orderedCompatible(dt dataset.DType, args ...any) bool {
	colClass := classOfDType(dt)
	if colClass != classNumeric && colClass != classString && colClass != classTime {
		return false
	}
	for _, a := range args {
		if a == nil {
			continue
		}
		if classOfValue(a) != colClass {
			return false
		}
	}
	return true
}

func equalCompatible(dt dataset.DType, arg any) bool {
	colClass := classOfDType(dt)
	return colClass != classUnknown && colClass == classOfValue(arg)
}

// orderValues compares two values of the same class. The boolean reports
// comparability; NaN is incomparable against everything including itself.
func orderValues(v, w any) (int, bool) {
	if vf, ok := toFloat(v); ok {
		wf, ok := toFloat(w)
		if !ok {
			return 0, false
		}
		switch {
		case vf < wf:
			return -1, true
		case vf > wf:
			return 1, true
		case vf == wf:
			return 0, true
		default: // NaN on either side
			return 0, false
		}
	}
	switch x := v.(type) {
	case string:
		if y, ok := w.(string); ok {
			return strings.Compare(x, y), true
		}
	case time.Time:
		if y, ok := w.(time.Time); ok {
			switch {
			case x.Before(y):
				return -1, true
			case x.After(y):
				return 1, true
			default:
				return 0, true
			}
		}
	}
	return 0, false
}

// equalValues reports cross-width equality within a class: int64(5) equals
// 5.0, times compare with Equal, binary with bytes.Equal.
func equalValues(v, w any) bool {
	if v == nil || w == nil {
		return false
	}
	if vi, okV := toInt(v); okV {
		if wi, okW := toInt(w); okW {
			return vi == wi
		}
	}
	if vf, ok := toFloat(v); ok {
		wf, ok := toFloat(w)
		return ok && vf == wf
	}
	switch x := v.(type) {
	case string:
		y, ok := w.(string)
		return ok && x == y
	case bool:
		y, ok := w.(bool)
		return ok && x == y
	case time.Time:
		y, ok := w.(time.Time)
		return ok && x.Equal(y)
	case []byte:
		y, ok := w.([]byte)
		return ok && bytes.Equal(x, y)
	}
	return false
}

func toInt(v any) (int64, bool) {
	switch x := v.(type) {
	case int:
		return int64(x), true
	case int8:
		return int64(x), true
	case int16:
		return int64(x), true
	case int32:
		return int64(x), true
	case int64:
		return x, true
	case uint:
		return int64(x), x <= 1<<62
	case uint8:
		return int64(x), true
	case uint16:
		return int64(x), true
	case uint32:
		return int64(x), true
	case uint64:
		if x > 1<<62 {
			return 0, false
		}
		return int64(x), true
	default:
		return 0, false
	}
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case int:
		return float64(x), true
	case int8:
		return float64(x), true
	case int16:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint8:
		return float64(x), true
	case uint16:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	case float32:
		return float64(x), true
	case float64:
		return x, true
	default:
		return 0, false
	}
}

// toSlice widens the common slice spellings of check arguments to []any.
func toSlice(v any) ([]any, bool) {
	switch x := v.(type) {
	case []any:
		return x, true
	case []int:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = e
		}
		return out, true
	case []int64:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = e
		}
		return out, true
	case []float64:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = e
		}
		return out, true
	case []string:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = e
		}
		return out, true
	default:
		return nil, false
	}
}
