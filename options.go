package framecheck

import (
	"errors"
	"log/slog"

	"github.com/framecheck/framecheck/pkg/rowschema"
	"github.com/framecheck/framecheck/pkg/rules"
)

// Option configures a Guard during NewGuard.
type Option func(*guardSpec) error

// overrides stages the mode settings explicitly set on the guard. A nil
// field means "fall through to the rule set, then the environment".
type overrides struct {
	strict       *bool
	lazy         *bool
	maxSamples   *int
	maxRowErrors *int
}

type guardSpec struct {
	hasInput  bool
	inParam   string
	inSet     *rules.Set
	inSchema  rowschema.Schema
	hasOutput bool
	outSet    *rules.Set
	outSchema rowschema.Schema

	logger *slog.Logger
	overrides
}

// WithInput declares the column contract of the named parameter.
func WithInput(param string, set *rules.Set) Option {
	return func(s *guardSpec) error {
		if s.hasInput {
			return errors.New("input contract already configured")
		}
		s.hasInput = true
		s.inParam = param
		s.inSet = set
		return nil
	}
}

// WithOutput declares the column contract of the return value.
func WithOutput(set *rules.Set) Option {
	return func(s *guardSpec) error {
		if s.hasOutput {
			return errors.New("output contract already configured")
		}
		s.hasOutput = true
		s.outSet = set
		return nil
	}
}

// WithInputRowSchema enables row-level validation of the parameter
// dataset.
func WithInputRowSchema(schema rowschema.Schema) Option {
	return func(s *guardSpec) error {
		s.inSchema = schema
		return nil
	}
}

// WithOutputRowSchema enables row-level validation of the returned
// dataset.
func WithOutputRowSchema(schema rowschema.Schema) Option {
	return func(s *guardSpec) error {
		s.outSchema = schema
		return nil
	}
}

// WithStrict overrides strict mode for this guard's validations.
func WithStrict(strict bool) Option {
	return func(s *guardSpec) error {
		s.strict = &strict
		return nil
	}
}

// WithLazy overrides lazy aggregation for this guard's validations.
func WithLazy(lazy bool) Option {
	return func(s *guardSpec) error {
		s.lazy = &lazy
		return nil
	}
}

// WithMaxSamples overrides the per-check failing value sample cap.
func WithMaxSamples(n int) Option {
	return func(s *guardSpec) error {
		s.maxSamples = &n
		return nil
	}
}

// WithMaxRowErrors overrides the row-level validation error budget.
func WithMaxRowErrors(n int) Option {
	return func(s *guardSpec) error {
		s.maxRowErrors = &n
		return nil
	}
}

// WithLogger attaches a logger; In and Out then describe every dataset at
// debug level before validating. A nil logger is ignored.
func WithLogger(logger *slog.Logger) Option {
	return func(s *guardSpec) error {
		if logger != nil {
			s.logger = logger
		}
		return nil
	}
}
