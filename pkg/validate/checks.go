package validate

import (
	"errors"
	"fmt"

	"github.com/framecheck/framecheck/pkg/dataset"
	"github.com/framecheck/framecheck/pkg/rules"
)

// validateChecks runs the value check phase: per rule in specification
// order, per matched column in dataset order, per check in declaration
// order. A check that cannot run against the column surfaces as an issue,
// never as a Go error.
func (v *Validator) validateChecks(ds dataset.Dataset, res resolution, report *Report) {
	for i, rule := range v.rules {
		for _, name := range res.matches[i] {
			col, ok := ds.Column(name)
			if !ok {
				continue
			}
			for _, check := range rule.Checks {
				mask, err := runCheck(check, col)
				if err != nil {
					if errors.Is(err, rules.ErrIncompatibleColumn) {
						report.Issues = append(report.Issues,
							incompatibleCheckIssue(name, v.subject, check.Name, string(col.DType())))
					} else {
						report.Issues = append(report.Issues,
							customCheckErrorIssue(name, v.subject, check.Name, err))
					}
					if v.done(report) {
						return
					}
					continue
				}

				count, samples := tallyFailures(col, mask, v.maxSamples)
				if count > 0 {
					report.Issues = append(report.Issues,
						checkViolationIssue(name, v.subject, check.Name, count, samples))
					if v.done(report) {
						return
					}
				}
			}
		}
	}
}

// runCheck evaluates one check and contains predicate misbehavior: a panic
// becomes an error, as does a result mask of the wrong length.
func runCheck(check rules.Check, col dataset.Column) (mask []bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			mask, err = nil, fmt.Errorf("panic: %v", r)
		}
	}()
	mask, err = check.Evaluate(col)
	if err != nil {
		return nil, err
	}
	if len(mask) != col.Len() {
		return nil, fmt.Errorf("predicate returned %d results for %d rows", len(mask), col.Len())
	}
	return mask, nil
}

// tallyFailures counts the false entries of the mask and collects the
// first failing values as samples.
func tallyFailures(col dataset.Column, mask []bool, maxSamples int) (int, []any) {
	count := 0
	var samples []any
	for i, pass := range mask {
		if pass {
			continue
		}
		count++
		if len(samples) < maxSamples {
			samples = append(samples, col.Value(i))
		}
	}
	return count, samples
}
