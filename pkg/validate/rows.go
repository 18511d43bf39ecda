package validate

import (
	"math"

	"github.com/framecheck/framecheck/pkg/dataset"
	"github.com/framecheck/framecheck/pkg/rowschema"
)

// validateRows runs the configured row schema over the dataset. Schemas
// that implement rowschema.BulkSchema receive every record in one call;
// otherwise rows are validated one at a time, stopping early once enough
// failures are collected. The max row errors budget applies in both
// fail-fast and lazy mode; the rendered report shows the kept rows as one
// block either way.
func (v *Validator) validateRows(ds dataset.Dataset, ctx callContext, report *Report) {
	keep := v.maxRowErrors

	if bulk, ok := v.schema.(rowschema.BulkSchema); ok {
		v.validateRowsBulk(ds, ctx, bulk, keep, report)
		return
	}
	v.validateRowsScan(ds, ctx, keep, report)
}

// validateRowsBulk hands the whole dataset to the schema at once. The scan
// is always complete, so failure counts are exact.
func (v *Validator) validateRowsBulk(ds dataset.Dataset, ctx callContext, bulk rowschema.BulkSchema, keep int, report *Report) {
	records := make([]rowschema.Record, ctx.rows)
	for i := 0; i < ctx.rows; i++ {
		records[i] = normalizedRecord(ds, i)
	}

	failures := bulk.ValidateRecords(records)
	for i, f := range failures {
		if i == keep {
			break
		}
		report.Issues = append(report.Issues, rowIssue(dataset.Label(ds, f.Index), f.Errors))
	}

	report.RowFailures = len(failures)
	report.RowScanComplete = true
	if len(failures) > keep {
		report.rowMore = len(failures) - keep
	}
}

// validateRowsScan validates records one at a time. With early termination
// on, scanning stops as soon as the kept findings fill up, and the
// remaining rows count as potential failures; with it off every row is
// scanned and the failure total is exact.
func (v *Validator) validateRowsScan(ds dataset.Dataset, ctx callContext, keep int, report *Report) {
	collected, scanned, total := 0, 0, 0
	for i := 0; i < ctx.rows; i++ {
		scanned++
		fieldErrs := v.schema.ValidateRecord(normalizedRecord(ds, i))
		if len(fieldErrs) == 0 {
			continue
		}
		total++
		if collected < keep {
			report.Issues = append(report.Issues, rowIssue(dataset.Label(ds, i), fieldErrs))
			collected++
		}
		if v.earlyTermination && collected == keep {
			break
		}
	}

	report.RowFailures = total
	report.RowScanComplete = scanned == ctx.rows
	report.rowMore = (ctx.rows - scanned) + (total - collected)
}

// normalizedRecord materializes one row with NaN floats mapped to nil, so
// row schemas see missing values uniformly.
func normalizedRecord(ds dataset.Dataset, i int) rowschema.Record {
	rec := dataset.Record(ds, i)
	for k, v := range rec {
		if isNaN(v) {
			rec[k] = nil
		}
	}
	return rec
}

func isNaN(v any) bool {
	switch x := v.(type) {
	case float64:
		return math.IsNaN(x)
	case float32:
		return math.IsNaN(float64(x))
	}
	return false
}
