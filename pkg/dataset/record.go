package dataset

import (
	"fmt"
	"strings"
)

// Record materializes row i as a name-to-value map. Null values appear as
// nil entries so that downstream consumers can distinguish "null" from
// "absent column".
func Record(ds Dataset, i int) map[string]any {
	names := ds.Columns()
	rec := make(map[string]any, len(names))
	for _, name := range names {
		col, ok := ds.Column(name)
		if !ok {
			continue
		}
		rec[name] = col.Value(i)
	}
	return rec
}

// Records materializes the whole dataset as a slice of row maps, in row
// order. Intended for bulk row validation; large datasets pay the full
// materialization cost up front.
func Records(ds Dataset) []map[string]any {
	rows := ds.NumRows()
	out := make([]map[string]any, rows)
	for i := 0; i < rows; i++ {
		out[i] = Record(ds, i)
	}
	return out
}

// Describe renders a one-line summary of the dataset shape for logging:
// the column names, optionally with their dtypes.
func Describe(ds Dataset, withDTypes bool) string {
	names := ds.Columns()
	if !withDTypes {
		return fmt.Sprintf("columns: [%s]", strings.Join(names, ", "))
	}
	parts := make([]string, 0, len(names))
	for _, name := range names {
		if col, ok := ds.Column(name); ok {
			parts = append(parts, fmt.Sprintf("%s: %s", name, col.DType()))
		}
	}
	return fmt.Sprintf("columns: [%s]", strings.Join(parts, ", "))
}

// Label resolves the display identifier of row i: the dataset's own label
// when it implements Labeled, the ordinal position otherwise.
func Label(ds Dataset, i int) string {
	if l, ok := ds.(Labeled); ok {
		return l.RowLabel(i)
	}
	return fmt.Sprintf("%d", i)
}
