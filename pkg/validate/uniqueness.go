package validate

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/framecheck/framecheck/pkg/dataset"
)

// duplicateValues counts the values of a column that participate in any
// duplicate group, counting every occurrence: [1, 2, 2, 3] has 2. Nulls
// count as equal to each other, as do NaNs.
func duplicateValues(col dataset.Column) int {
	n := col.Len()
	keys := make([]string, n)
	for i := 0; i < n; i++ {
		keys[i] = canonKey(col.Value(i))
	}
	return duplicateKeys(keys)
}

// validateComposite runs the composite uniqueness phase: per group, first
// the referenced columns must exist, then the value tuples must be
// distinct.
func (v *Validator) validateComposite(ds dataset.Dataset, ctx callContext, report *Report) {
	for _, group := range v.composite {
		var missing []string
		for _, name := range group {
			if _, ok := ctx.columnSet[name]; !ok {
				missing = append(missing, name)
			}
		}
		if len(missing) > 0 {
			report.Issues = append(report.Issues, compositeMissingIssue(group, missing, v.subject))
			if v.done(report) {
				return
			}
			continue
		}

		if dups := duplicateTuples(ds, group, ctx.rows); dups > 0 {
			report.Issues = append(report.Issues, compositeDuplicateIssue(group, v.subject, dups))
			if v.done(report) {
				return
			}
		}
	}
}

// duplicateTuples counts the rows whose value tuple over the group occurs
// more than once, counting every occurrence. Null equals null within a
// tuple position.
func duplicateTuples(ds dataset.Dataset, group []string, rows int) int {
	cols := make([]dataset.Column, len(group))
	for i, name := range group {
		col, ok := ds.Column(name)
		if !ok {
			return 0
		}
		cols[i] = col
	}

	keys := make([]string, rows)
	var b strings.Builder
	for i := 0; i < rows; i++ {
		b.Reset()
		for _, col := range cols {
			part := canonKey(col.Value(i))
			fmt.Fprintf(&b, "%d:%s", len(part), part)
		}
		keys[i] = b.String()
	}
	return duplicateKeys(keys)
}

func duplicateKeys(keys []string) int {
	counts := make(map[string]int, len(keys))
	for _, k := range keys {
		counts[k]++
	}
	total := 0
	for _, c := range counts {
		if c > 1 {
			total += c
		}
	}
	return total
}

// canonKey renders a value as a type-tagged key for duplicate detection.
// The tag keeps values of different classes distinct; NaN maps to a fixed
// key so that NaN duplicates NaN.
func canonKey(v any) string {
	switch x := v.(type) {
	case nil:
		return "n|"
	case bool:
		return "b|" + strconv.FormatBool(x)
	case int8:
		return "i|" + strconv.FormatInt(int64(x), 10)
	case int16:
		return "i|" + strconv.FormatInt(int64(x), 10)
	case int32:
		return "i|" + strconv.FormatInt(int64(x), 10)
	case int64:
		return "i|" + strconv.FormatInt(x, 10)
	case uint8:
		return "u|" + strconv.FormatUint(uint64(x), 10)
	case uint16:
		return "u|" + strconv.FormatUint(uint64(x), 10)
	case uint32:
		return "u|" + strconv.FormatUint(uint64(x), 10)
	case uint64:
		return "u|" + strconv.FormatUint(x, 10)
	case float32:
		return floatKey(float64(x))
	case float64:
		return floatKey(x)
	case string:
		return "s|" + x
	case []byte:
		return "y|" + string(x)
	case time.Time:
		return "t|" + x.UTC().Format(time.RFC3339Nano)
	default:
		return fmt.Sprintf("?|%v", x)
	}
}

func floatKey(f float64) string {
	if math.IsNaN(f) {
		return "f|nan"
	}
	return "f|" + strconv.FormatFloat(f, 'g', -1, 64)
}
