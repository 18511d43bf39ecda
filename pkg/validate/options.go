package validate

import (
	"fmt"

	"github.com/framecheck/framecheck/pkg/rowschema"
)

// Option configures a Validator during New. Options run after the rule
// set's own Strict and Lazy settings and therefore win over them.
type Option func(*Validator) error

// WithStrict controls strict mode: when enabled, dataset columns not
// matched by any selector become an issue.
func WithStrict(strict bool) Option {
	return func(v *Validator) error {
		v.strict = strict
		return nil
	}
}

// WithLazy controls lazy aggregation: when enabled, every phase runs and
// all issues are collected instead of stopping at the first.
func WithLazy(lazy bool) Option {
	return func(v *Validator) error {
		v.lazy = lazy
		return nil
	}
}

// WithMaxSamples caps how many failing values a check issue lists.
func WithMaxSamples(n int) Option {
	return func(v *Validator) error {
		if n < 0 {
			return fmt.Errorf("max samples must not be negative, got %d", n)
		}
		v.maxSamples = n
		return nil
	}
}

// WithMaxRowErrors caps how many failing rows row-level validation
// collects.
func WithMaxRowErrors(n int) Option {
	return func(v *Validator) error {
		if n < 1 {
			return fmt.Errorf("max row errors must be at least 1, got %d", n)
		}
		v.maxRowErrors = n
		return nil
	}
}

// WithEarlyTermination controls whether the iterative row scan stops once
// the row error budget is filled. Disabling it scans every row for exact
// totals.
func WithEarlyTermination(enabled bool) Option {
	return func(v *Validator) error {
		v.earlyTermination = enabled
		return nil
	}
}

// WithRowSchema enables row-level validation with the given schema.
func WithRowSchema(schema rowschema.Schema) Option {
	return func(v *Validator) error {
		v.schema = schema
		return nil
	}
}

// WithFunction attaches a function name to report messages.
func WithFunction(name string) Option {
	return func(v *Validator) error {
		v.function = name
		return nil
	}
}

// WithParam marks the validated dataset as the named parameter in report
// messages.
func WithParam(name string) Option {
	return func(v *Validator) error {
		v.param = name
		return nil
	}
}

// WithReturnValue marks the validated dataset as a return value in report
// messages.
func WithReturnValue() Option {
	return func(v *Validator) error {
		v.returnValue = true
		return nil
	}
}

// WithMinRows requires at least n rows.
func WithMinRows(n int) Option {
	return func(v *Validator) error {
		if n < 0 {
			return fmt.Errorf("min rows must not be negative, got %d", n)
		}
		v.shape.minRows = &n
		return nil
	}
}

// WithMaxRows requires at most n rows.
func WithMaxRows(n int) Option {
	return func(v *Validator) error {
		if n < 0 {
			return fmt.Errorf("max rows must not be negative, got %d", n)
		}
		v.shape.maxRows = &n
		return nil
	}
}

// WithExactRows requires exactly n rows.
func WithExactRows(n int) Option {
	return func(v *Validator) error {
		if n < 0 {
			return fmt.Errorf("exact rows must not be negative, got %d", n)
		}
		v.shape.exactRows = &n
		return nil
	}
}

// WithAllowEmpty controls whether a zero-row dataset passes. Empty
// datasets are allowed by default.
func WithAllowEmpty(allow bool) Option {
	return func(v *Validator) error {
		v.shape.allowEmpty = allow
		return nil
	}
}
