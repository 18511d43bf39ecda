package validate

import (
	"regexp"

	"github.com/framecheck/framecheck/pkg/dataset"
	"github.com/framecheck/framecheck/pkg/pattern"
	"github.com/framecheck/framecheck/pkg/rowschema"
	"github.com/framecheck/framecheck/pkg/rules"
)

// Execution defaults.
const (
	DefaultMaxRowErrors = 5
	DefaultMaxSamples   = 5
)

// compiledRule couples a normalized rule with its pre-compiled selector
// pattern; re is nil for literal selectors.
type compiledRule struct {
	rules.Rule
	re *regexp.Regexp
}

type shapeSpec struct {
	minRows    *int
	maxRows    *int
	exactRows  *int
	allowEmpty bool
}

func (s shapeSpec) active() bool {
	return s.minRows != nil || s.maxRows != nil || s.exactRows != nil || !s.allowEmpty
}

// Validator executes one validation specification. Build it once with New
// and reuse it freely: Validate keeps no state between calls and is safe
// for concurrent use.
type Validator struct {
	rules     []compiledRule
	composite [][]string
	schema    rowschema.Schema
	shape     shapeSpec

	strict           bool
	lazy             bool
	maxSamples       int
	maxRowErrors     int
	earlyTermination bool

	function    string
	param       string
	returnValue bool
	subject     string
}

// New builds a Validator from a rule set. The set is normalized and every
// r/.../ selector compiled here, so specification problems surface as
// errors from New (rules.ErrInvalidSpec, pattern.ErrInvalidPattern) and
// never as data findings. A nil set validates nothing but still supports
// shape, strict, and row-level options.
func New(set *rules.Set, opts ...Option) (*Validator, error) {
	if set == nil {
		set = &rules.Set{}
	}

	normalized, err := set.Normalize()
	if err != nil {
		return nil, err
	}

	v := &Validator{
		rules:            make([]compiledRule, 0, len(normalized)),
		composite:        set.CompositeUnique,
		shape:            shapeSpec{allowEmpty: true},
		maxSamples:       DefaultMaxSamples,
		maxRowErrors:     DefaultMaxRowErrors,
		earlyTermination: true,
	}
	for _, rule := range normalized {
		cr := compiledRule{Rule: rule}
		if pattern.IsPattern(rule.Selector) {
			re, err := pattern.Compile(rule.Selector)
			if err != nil {
				return nil, err
			}
			cr.re = re
		}
		v.rules = append(v.rules, cr)
	}

	if set.Strict != nil {
		v.strict = *set.Strict
	}
	if set.Lazy != nil {
		v.lazy = *set.Lazy
	}
	for _, opt := range opts {
		if err := opt(v); err != nil {
			return nil, err
		}
	}
	v.subject = subjectString(v.function, v.param, v.returnValue)
	return v, nil
}

// MustNew is like New but panics on specification errors. Intended for
// static specifications declared at package level.
func MustNew(set *rules.Set, opts ...Option) *Validator {
	v, err := New(set, opts...)
	if err != nil {
		panic(err)
	}
	return v
}

// Validate runs the specification against the dataset and reports the
// findings. The returned report is never nil; check Valid. The dataset is
// borrowed read-only for the duration of the call.
func (v *Validator) Validate(ds dataset.Dataset) *Report {
	ctx := newCallContext(ds)
	res := v.resolve(ctx)
	report := &Report{rows: ctx.rows, RowScanComplete: true, subject: v.subject}

	if v.shape.active() {
		v.validateShape(ctx, report)
		if v.done(report) {
			return report
		}
	}

	v.validateColumns(ds, ctx, res, report)
	if v.done(report) {
		return report
	}

	if v.strict {
		v.validateStrict(ctx, res, report)
		if v.done(report) {
			return report
		}
	}

	v.validateChecks(ds, res, report)
	if v.done(report) {
		return report
	}

	v.validateComposite(ds, ctx, report)
	if v.done(report) {
		return report
	}

	if v.schema != nil {
		v.validateRows(ds, ctx, report)
	}
	return report
}

// done reports whether the run should stop: fail-fast mode ends at the
// first issue.
func (v *Validator) done(report *Report) bool {
	return !v.lazy && len(report.Issues) > 0
}
