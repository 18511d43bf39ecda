package rowschema

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// Rule is a single field check: Check receives the field value and whether
// the field was present in the record, and reports validity.
type Rule struct {
	Check   func(value any, present bool) bool
	Message string
}

// Field couples a field name with its rules.
type Field struct {
	Name  string
	Rules []Rule
}

// F declares a field with its rules.
func F(name string, rules ...Rule) Field {
	return Field{Name: name, Rules: rules}
}

// FieldSchema is the rule-built Schema. It validates fields in declaration
// order and implements both Schema and BulkSchema.
type FieldSchema struct {
	fields []Field
}

// NewSchema builds a FieldSchema from field declarations.
func NewSchema(fields ...Field) *FieldSchema {
	return &FieldSchema{fields: fields}
}

// ValidateRecord runs every field's rules against the record.
func (s *FieldSchema) ValidateRecord(rec Record) []FieldError {
	var errs []FieldError
	for _, field := range s.fields {
		value, present := rec[field.Name]
		for _, rule := range field.Rules {
			if !rule.Check(value, present) {
				errs = append(errs, FieldError{Field: field.Name, Message: rule.Message})
			}
		}
	}
	return errs
}

// ValidateRecords validates the batch record by record, keeping only the
// failures.
func (s *FieldSchema) ValidateRecords(recs []Record) []RecordFailure {
	var failures []RecordFailure
	for i, rec := range recs {
		if errs := s.ValidateRecord(rec); len(errs) > 0 {
			failures = append(failures, RecordFailure{Index: i, Errors: errs})
		}
	}
	return failures
}

// valueRule wraps a check so that absent and nil values pass. Optional
// fields validate only when a value is present; Required is the one rule
// that rejects absence.
func valueRule(message string, check func(v any) bool) Rule {
	return Rule{
		Message: message,
		Check: func(v any, present bool) bool {
			if !present || v == nil {
				return true
			}
			return check(v)
		},
	}
}

// Required rejects absent and null fields.
func Required() Rule {
	return Rule{
		Message: "field is required",
		Check: func(v any, present bool) bool {
			return present && v != nil
		},
	}
}

// Int requires an integer value of any width.
func Int() Rule {
	return valueRule("must be an integer", func(v any) bool {
		switch v.(type) {
		case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
			return true
		default:
			return false
		}
	})
}

// Float requires a numeric value; integers qualify.
func Float() Rule {
	return valueRule("must be a number", func(v any) bool {
		_, ok := asFloat(v)
		return ok
	})
}

// Str requires a string value.
func Str() Rule {
	return valueRule("must be a string", func(v any) bool {
		_, ok := v.(string)
		return ok
	})
}

// Boolean requires a bool value.
func Boolean() Rule {
	return valueRule("must be a boolean", func(v any) bool {
		_, ok := v.(bool)
		return ok
	})
}

// Min requires a numeric value of at least min.
func Min(min float64) Rule {
	return valueRule(fmt.Sprintf("must be at least %v", min), func(v any) bool {
		f, ok := asFloat(v)
		return ok && f >= min
	})
}

// Max requires a numeric value of at most max.
func Max(max float64) Rule {
	return valueRule(fmt.Sprintf("must be at most %v", max), func(v any) bool {
		f, ok := asFloat(v)
		return ok && f <= max
	})
}

// MinLen requires a string of at least n runes.
func MinLen(n int) Rule {
	return valueRule(fmt.Sprintf("must be at least %d characters", n), func(v any) bool {
		s, ok := v.(string)
		return ok && utf8.RuneCountInString(s) >= n
	})
}

// MaxLen requires a string of at most n runes.
func MaxLen(n int) Rule {
	return valueRule(fmt.Sprintf("must be at most %d characters", n), func(v any) bool {
		s, ok := v.(string)
		return ok && utf8.RuneCountInString(s) <= n
	})
}

// NotEmpty requires a string with non-whitespace content.
func NotEmpty() Rule {
	return valueRule("must not be empty", func(v any) bool {
		s, ok := v.(string)
		return ok && strings.TrimSpace(s) != ""
	})
}

// OneOf requires the value to equal one of the allowed values. Numeric
// comparison crosses widths, so int64(2) matches an allowed 2.
func OneOf(allowed ...any) Rule {
	return valueRule(fmt.Sprintf("must be one of %v", allowed), func(v any) bool {
		for _, a := range allowed {
			if looseEqual(v, a) {
				return true
			}
		}
		return false
	})
}

// Match requires a string matching the pattern anywhere. The pattern is
// compiled once at declaration; an invalid pattern produces a rule that
// fails every value and says why.
func Match(pattern string) Rule {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return valueRule(fmt.Sprintf("invalid pattern %q: %v", pattern, err), func(any) bool {
			return false
		})
	}
	return valueRule(fmt.Sprintf("must match %q", pattern), func(v any) bool {
		s, ok := v.(string)
		return ok && re.MatchString(s)
	})
}

func asFloat(v any) (float64, bool) {
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

func looseEqual(v, w any) bool {
	if vf, ok := asFloat(v); ok {
		wf, ok := asFloat(w)
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
	default:
		return false
	}
}
