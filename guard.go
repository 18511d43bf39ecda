package framecheck

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/framecheck/framecheck/pkg/dataset"
	"github.com/framecheck/framecheck/pkg/rules"
	"github.com/framecheck/framecheck/pkg/validate"
)

// Guard validates the datasets crossing one function boundary. Declare it
// once per function, then call In on parameters and Out on results; the
// report messages name the function so failures read like the call site.
//
// A Guard is immutable after NewGuard and safe for concurrent use.
type Guard struct {
	function string
	logger   *slog.Logger
	in       *validate.Validator
	inParam  string
	out      *validate.Validator
}

// NewGuard builds the guard for one function boundary. Specification
// problems (malformed rules, invalid patterns, bad option values) surface
// here, never from In or Out.
func NewGuard(function string, opts ...Option) (*Guard, error) {
	if function == "" {
		return nil, errors.New("function name must not be empty")
	}
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}

	spec := &guardSpec{}
	for _, opt := range opts {
		if err := opt(spec); err != nil {
			return nil, err
		}
	}

	g := &Guard{function: function, logger: spec.logger, inParam: spec.inParam}

	if spec.hasInput || spec.inSchema != nil {
		vopts := resolveOptions(cfg, spec.inSet, spec.overrides)
		vopts = append(vopts, validate.WithFunction(function))
		if spec.inParam != "" {
			vopts = append(vopts, validate.WithParam(spec.inParam))
		}
		if spec.inSchema != nil {
			vopts = append(vopts, validate.WithRowSchema(spec.inSchema))
		}
		g.in, err = validate.New(spec.inSet, vopts...)
		if err != nil {
			return nil, err
		}
	}

	if spec.hasOutput || spec.outSchema != nil {
		vopts := resolveOptions(cfg, spec.outSet, spec.overrides)
		vopts = append(vopts, validate.WithFunction(function), validate.WithReturnValue())
		if spec.outSchema != nil {
			vopts = append(vopts, validate.WithRowSchema(spec.outSchema))
		}
		g.out, err = validate.New(spec.outSet, vopts...)
		if err != nil {
			return nil, err
		}
	}

	return g, nil
}

// MustNewGuard is like NewGuard but panics on specification errors.
// Intended for guards declared at package level.
func MustNewGuard(function string, opts ...Option) *Guard {
	g, err := NewGuard(function, opts...)
	if err != nil {
		panic(err)
	}
	return g
}

// resolveOptions settles the effective mode settings: explicit guard
// options win over the rule set's flags, which win over the environment
// defaults.
func resolveOptions(cfg Config, set *rules.Set, over overrides) []validate.Option {
	strict := cfg.Strict
	if set != nil && set.Strict != nil {
		strict = *set.Strict
	}
	if over.strict != nil {
		strict = *over.strict
	}

	lazy := cfg.Lazy
	if set != nil && set.Lazy != nil {
		lazy = *set.Lazy
	}
	if over.lazy != nil {
		lazy = *over.lazy
	}

	maxSamples := cfg.MaxSamples
	if over.maxSamples != nil {
		maxSamples = *over.maxSamples
	}
	maxRowErrors := cfg.MaxRowErrors
	if over.maxRowErrors != nil {
		maxRowErrors = *over.maxRowErrors
	}

	return []validate.Option{
		validate.WithStrict(strict),
		validate.WithLazy(lazy),
		validate.WithMaxSamples(maxSamples),
		validate.WithMaxRowErrors(maxRowErrors),
	}
}

// In validates a parameter dataset. The returned error is the
// *validate.Report when validation found issues.
func (g *Guard) In(ds dataset.Dataset) error {
	if ds == nil {
		return errors.Join(ErrNilDataset, fmt.Errorf("function %q parameter %q", g.function, g.inParam))
	}
	g.logDataset("in", ds)
	if g.in == nil {
		return nil
	}
	if report := g.in.Validate(ds); !report.Valid() {
		return report
	}
	return nil
}

// Out validates a returned dataset. The returned error is the
// *validate.Report when validation found issues.
func (g *Guard) Out(ds dataset.Dataset) error {
	if ds == nil {
		return errors.Join(ErrNilDataset, fmt.Errorf("function %q return value", g.function))
	}
	g.logDataset("out", ds)
	if g.out == nil {
		return nil
	}
	if report := g.out.Validate(ds); !report.Valid() {
		return report
	}
	return nil
}

// Transform wraps a dataset-to-dataset function with both boundary
// checks: the input is validated before fn runs, the result after it.
func (g *Guard) Transform(fn func(dataset.Dataset) (dataset.Dataset, error)) func(dataset.Dataset) (dataset.Dataset, error) {
	return func(ds dataset.Dataset) (dataset.Dataset, error) {
		if err := g.In(ds); err != nil {
			return nil, err
		}
		out, err := fn(ds)
		if err != nil {
			return nil, err
		}
		if err := g.Out(out); err != nil {
			return nil, err
		}
		return out, nil
	}
}
