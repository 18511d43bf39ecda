package validate

import (
	"fmt"
	"sort"

	"github.com/framecheck/framecheck/pkg/dataset"
)

// validateColumns runs the column phase in two passes: existence for every
// rule first, so missing selectors always lead the report, then dtype,
// nullability, and uniqueness per rule in specification order over each
// matched column in dataset order. In fail-fast mode the phase returns at
// the first issue.
func (v *Validator) validateColumns(ds dataset.Dataset, ctx callContext, res resolution, report *Report) {
	for i, rule := range v.rules {
		if len(res.matches[i]) == 0 && rule.Required {
			report.Issues = append(report.Issues, missingColumnIssue(rule.Selector, v.subject, ctx.columns))
			if v.done(report) {
				return
			}
		}
	}

	for i, rule := range v.rules {
		for _, name := range res.matches[i] {
			col, ok := ds.Column(name)
			if !ok {
				continue
			}

			if rule.DType != "" && string(col.DType()) != rule.DType {
				report.Issues = append(report.Issues,
					wrongDtypeIssue(name, v.subject, string(col.DType()), rule.DType))
				if v.done(report) {
					return
				}
			}

			if !rule.Nullable {
				if nulls := col.NullCount(); nulls > 0 {
					report.Issues = append(report.Issues, nullabilityIssue(name, v.subject, nulls))
					if v.done(report) {
						return
					}
				}
			}

			if rule.Unique {
				if dups := duplicateValues(col); dups > 0 {
					report.Issues = append(report.Issues, uniquenessIssue(name, v.subject, dups))
					if v.done(report) {
						return
					}
				}
			}
		}
	}
}

// validateStrict emits one issue naming every dataset column no selector
// matched, sorted for stable output.
func (v *Validator) validateStrict(ctx callContext, res resolution, report *Report) {
	var unexpected []string
	for _, col := range ctx.columns {
		if _, ok := res.matched[col]; !ok {
			unexpected = append(unexpected, col)
		}
	}
	if len(unexpected) == 0 {
		return
	}
	sort.Strings(unexpected)
	report.Issues = append(report.Issues, unexpectedColumnsIssue(v.subject, unexpected))
}

// validateShape checks the row count constraints in a fixed order:
// emptiness, exact, min, max.
func (v *Validator) validateShape(ctx callContext, report *Report) {
	n := ctx.rows
	s := v.shape

	if !s.allowEmpty && n == 0 {
		report.Issues = append(report.Issues, shapeIssue(v.subject, "is empty but allow_empty=False"))
		if v.done(report) {
			return
		}
	}
	if s.exactRows != nil && n != *s.exactRows {
		report.Issues = append(report.Issues,
			shapeIssue(v.subject, shapeDetail("exact_rows", n, *s.exactRows)))
		if v.done(report) {
			return
		}
	}
	if s.minRows != nil && n < *s.minRows {
		report.Issues = append(report.Issues,
			shapeIssue(v.subject, shapeDetail("min_rows", n, *s.minRows)))
		if v.done(report) {
			return
		}
	}
	if s.maxRows != nil && n > *s.maxRows {
		report.Issues = append(report.Issues,
			shapeIssue(v.subject, shapeDetail("max_rows", n, *s.maxRows)))
	}
}

func shapeDetail(constraint string, rows, want int) string {
	return fmt.Sprintf("has %d rows but %s=%d", rows, constraint, want)
}
