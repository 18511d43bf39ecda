package validate

import (
	"fmt"
	"strings"

	"github.com/framecheck/framecheck/pkg/rowschema"
)

// Kind classifies a validation issue.
type Kind string

// Issue kinds, in the order the phases can produce them.
const (
	KindShape               Kind = "shape"
	KindMissingColumn       Kind = "missing_column"
	KindWrongDtype          Kind = "wrong_dtype"
	KindNullability         Kind = "nullability"
	KindUniqueness          Kind = "uniqueness"
	KindUnexpectedColumn    Kind = "unexpected_column"
	KindCheckViolation      Kind = "check_violation"
	KindCustomCheckError    Kind = "custom_check_error"
	KindCompositeUniqueness Kind = "composite_uniqueness"
	KindRowValidation       Kind = "row_validation"
)

// Issue is one structured validation finding. Message is self-contained
// and human-readable; the other fields carry the structure for callers
// that branch on findings programmatically.
type Issue struct {
	// Kind classifies the finding.
	Kind Kind

	// Columns names the columns involved, when column-scoped.
	Columns []string

	// Row identifies the failing row for row-level findings.
	Row string

	// Check names the failed check for check findings.
	Check string

	// Count is the number of violating values, rows, or combinations.
	Count int

	// Samples holds the first failing values for check findings.
	Samples []any

	// Fields carries per-field errors for row-level findings.
	Fields []rowschema.FieldError

	// Message is the rendered account of the finding.
	Message string
}

// quotedList renders names the way reports show them: ['a', 'b'].
func quotedList(names []string) string {
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = "'" + n + "'"
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// valueList renders sample values: strings quoted, nulls as null.
func valueList(values []any) string {
	parts := make([]string, len(values))
	for i, v := range values {
		switch x := v.(type) {
		case nil:
			parts[i] = "null"
		case string:
			parts[i] = "'" + x + "'"
		default:
			parts[i] = fmt.Sprintf("%v", x)
		}
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// groupDesc renders a composite group: 'a' + 'b'.
func groupDesc(group []string) string {
	parts := make([]string, len(group))
	for i, n := range group {
		parts[i] = "'" + n + "'"
	}
	return strings.Join(parts, " + ")
}

func missingColumnIssue(selector, subject string, columns []string) Issue {
	return Issue{
		Kind:    KindMissingColumn,
		Columns: []string{selector},
		Message: fmt.Sprintf("Missing columns: %s%s. Got columns: %s",
			quotedList([]string{selector}), subject, quotedList(columns)),
	}
}

func wrongDtypeIssue(col, subject, actual, expected string) Issue {
	return Issue{
		Kind:    KindWrongDtype,
		Columns: []string{col},
		Message: fmt.Sprintf("Column %s%s has wrong dtype. Was %s, expected %s",
			col, subject, actual, expected),
	}
}

func nullabilityIssue(col, subject string, nulls int) Issue {
	return Issue{
		Kind:    KindNullability,
		Columns: []string{col},
		Count:   nulls,
		Message: fmt.Sprintf("Column '%s'%s contains %d null values but nullable=False",
			col, subject, nulls),
	}
}

func uniquenessIssue(col, subject string, dups int) Issue {
	return Issue{
		Kind:    KindUniqueness,
		Columns: []string{col},
		Count:   dups,
		Message: fmt.Sprintf("Column '%s'%s contains %d duplicate values but unique=True",
			col, subject, dups),
	}
}

func unexpectedColumnsIssue(subject string, unexpected []string) Issue {
	return Issue{
		Kind:    KindUnexpectedColumn,
		Columns: unexpected,
		Count:   len(unexpected),
		Message: fmt.Sprintf("Dataset%s contained unexpected column(s): %s",
			subject, strings.Join(unexpected, ", ")),
	}
}

func checkViolationIssue(col, subject, check string, count int, samples []any) Issue {
	return Issue{
		Kind:    KindCheckViolation,
		Columns: []string{col},
		Check:   check,
		Count:   count,
		Samples: samples,
		Message: fmt.Sprintf("Column '%s'%s failed check %s: %d values failed. Examples: %s",
			col, subject, check, count, valueList(samples)),
	}
}

func incompatibleCheckIssue(col, subject, check, dtype string) Issue {
	return Issue{
		Kind:    KindCheckViolation,
		Columns: []string{col},
		Check:   check,
		Message: fmt.Sprintf("Column '%s'%s failed check %s: not applicable to dtype %s",
			col, subject, check, dtype),
	}
}

func customCheckErrorIssue(col, subject, check string, err error) Issue {
	return Issue{
		Kind:    KindCustomCheckError,
		Columns: []string{col},
		Check:   check,
		Message: fmt.Sprintf("Column '%s'%s custom check %s failed to execute: %v",
			col, subject, check, err),
	}
}

func compositeMissingIssue(group, missing []string, subject string) Issue {
	return Issue{
		Kind:    KindCompositeUniqueness,
		Columns: group,
		Message: fmt.Sprintf("composite_unique references missing columns %s in combination [%s]%s",
			quotedList(missing), groupDesc(group), subject),
	}
}

func compositeDuplicateIssue(group []string, subject string, dups int) Issue {
	return Issue{
		Kind:    KindCompositeUniqueness,
		Columns: group,
		Count:   dups,
		Message: fmt.Sprintf("Columns %s%s contain %d duplicate combinations but composite_unique is set",
			groupDesc(group), subject, dups),
	}
}

func rowIssue(label string, fieldErrs []rowschema.FieldError) Issue {
	parts := make([]string, len(fieldErrs))
	for i, fe := range fieldErrs {
		if fe.Field != "" {
			parts[i] = fe.Field + ": " + fe.Message
		} else {
			parts[i] = fe.Message
		}
	}
	return Issue{
		Kind:    KindRowValidation,
		Row:     label,
		Fields:  fieldErrs,
		Count:   len(fieldErrs),
		Message: fmt.Sprintf("Row %s: %s", label, strings.Join(parts, "; ")),
	}
}

func shapeIssue(subject, detail string) Issue {
	return Issue{
		Kind:    KindShape,
		Message: fmt.Sprintf("Dataset%s %s", subject, detail),
	}
}
