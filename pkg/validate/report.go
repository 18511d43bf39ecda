package validate

import (
	"fmt"
	"strings"
)

// Report is the outcome of one validation run. It implements error so that
// a failed run can travel as a regular Go error; callers that want the
// structure read Issues directly.
type Report struct {
	// Issues holds every finding in phase order. Empty means the dataset
	// passed.
	Issues []Issue

	// RowFailures is the number of failing rows found by row-level
	// validation. When RowScanComplete is false the scan stopped early and
	// this is a lower bound.
	RowFailures int

	// RowScanComplete reports whether row-level validation scanned every
	// row.
	RowScanComplete bool

	rows    int
	rowMore int
	subject string
}

// Valid reports whether the run found no issues.
func (r *Report) Valid() bool {
	return r == nil || len(r.Issues) == 0
}

// Error renders the report as the human-readable account. A lone issue
// renders as its bare message; several are newline-joined with a "- "
// prefix each. Row-level findings collapse into a single multi-line
// entry.
func (r *Report) Error() string {
	if r.Valid() {
		return "no validation issues"
	}

	entries := r.renderEntries()
	if len(entries) == 1 {
		return entries[0]
	}
	for i, e := range entries {
		entries[i] = "- " + e
	}
	return strings.Join(entries, "\n")
}

func (r *Report) renderEntries() []string {
	var entries []string
	rowsRendered := false
	for _, issue := range r.Issues {
		if issue.Kind == KindRowValidation {
			if !rowsRendered {
				entries = append(entries, r.renderRowBlock())
				rowsRendered = true
			}
			continue
		}
		entries = append(entries, issue.Message)
	}
	return entries
}

// renderRowBlock assembles the row-level findings into one multi-line
// account: a header with the failure total, the collected rows with their
// field errors, and a truncation note when not every failing row is shown.
func (r *Report) renderRowBlock() string {
	lines := []string{
		fmt.Sprintf("Row validation failed for %d out of %d rows:", r.RowFailures, r.rows),
		"",
	}
	for _, issue := range r.Issues {
		if issue.Kind != KindRowValidation {
			continue
		}
		lines = append(lines, fmt.Sprintf("  Row %s:", issue.Row))
		for _, fe := range issue.Fields {
			if fe.Field != "" {
				lines = append(lines, fmt.Sprintf("    - %s: %s", fe.Field, fe.Message))
			} else {
				lines = append(lines, fmt.Sprintf("    - %s", fe.Message))
			}
		}
		lines = append(lines, "")
	}
	if r.RowScanComplete {
		if r.rowMore > 0 {
			lines = append(lines, fmt.Sprintf("  ... and %d more row(s) with errors", r.rowMore))
		}
	} else {
		lines = append(lines, fmt.Sprintf("  ... stopped scanning early (at least %d more row(s) with errors)", r.rowMore))
	}
	return strings.Join(lines, "\n") + r.subject
}
