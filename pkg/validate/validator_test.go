package validate_test

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/framecheck/framecheck/pkg/dataset"
	"github.com/framecheck/framecheck/pkg/pattern"
	"github.com/framecheck/framecheck/pkg/rowschema"
	"github.com/framecheck/framecheck/pkg/rules"
	"github.com/framecheck/framecheck/pkg/validate"
)

// recordOnlySchema hides the bulk entry point so tests exercise the
// iterative row scan.
type recordOnlySchema struct {
	inner rowschema.Schema
}

func (s recordOnlySchema) ValidateRecord(rec rowschema.Record) []rowschema.FieldError {
	return s.inner.ValidateRecord(rec)
}

func mustValidate(t *testing.T, set *rules.Set, ds dataset.Dataset, opts ...validate.Option) *validate.Report {
	t.Helper()

	v, err := validate.New(set, opts...)
	require.NoError(t, err)
	return v.Validate(ds)
}

func TestValidateValid(t *testing.T) {
	t.Parallel()

	t.Run("dataset satisfying every rule", func(t *testing.T) {
		t.Parallel()

		ds := dataset.MustNew([]dataset.ColumnDef{
			dataset.Col("id", 1, 2, 3),
			dataset.Col("name", "ada", "bob", "cid"),
			dataset.Col("score", 10.0, 20.0, 30.0),
		})
		set := &rules.Set{
			Columns: rules.Defs{
				"id":    {DType: "int64", Unique: true, Nullable: rules.Bool(false)},
				"name":  {DType: "string"},
				"score": {Checks: rules.Checks{"between": []float64{0, 100}}},
			},
			CompositeUnique: [][]string{{"id", "name"}},
		}

		report := mustValidate(t, set, ds)
		assert.True(t, report.Valid())
		assert.Empty(t, report.Issues)
		assert.Equal(t, "no validation issues", report.Error())
	})

	t.Run("nil report counts as valid", func(t *testing.T) {
		t.Parallel()

		var report *validate.Report
		assert.True(t, report.Valid())
	})

	t.Run("nil rule set validates anything", func(t *testing.T) {
		t.Parallel()

		ds := dataset.MustNew([]dataset.ColumnDef{dataset.Col("whatever", 1)})
		report := mustValidate(t, nil, ds)
		assert.True(t, report.Valid())
	})
}

func TestValidateMissingColumns(t *testing.T) {
	t.Parallel()

	t.Run("required selector without a match", func(t *testing.T) {
		t.Parallel()

		ds := dataset.MustNew([]dataset.ColumnDef{dataset.Col("A", 1, 2)})
		report := mustValidate(t, &rules.Set{Columns: rules.Names{"B"}}, ds)

		require.Len(t, report.Issues, 1)
		issue := report.Issues[0]
		assert.Equal(t, validate.KindMissingColumn, issue.Kind)
		assert.Equal(t, []string{"B"}, issue.Columns)
		assert.Equal(t, "Missing columns: ['B']. Got columns: ['A']", issue.Message)
	})

	t.Run("optional selector without a match passes", func(t *testing.T) {
		t.Parallel()

		ds := dataset.MustNew([]dataset.ColumnDef{dataset.Col("A", 1, 2)})
		set := &rules.Set{Columns: rules.Defs{
			"B": {DType: "int64", Required: rules.Bool(false), Checks: rules.Checks{"gt": 0}},
		}}

		assert.True(t, mustValidate(t, set, ds).Valid())
	})

	t.Run("required regex selector without a match", func(t *testing.T) {
		t.Parallel()

		ds := dataset.MustNew([]dataset.ColumnDef{dataset.Col("Brand", "alfa")})
		report := mustValidate(t, &rules.Set{Columns: rules.Names{`r/^xyz_/`}}, ds)

		require.Len(t, report.Issues, 1)
		assert.Equal(t, "Missing columns: ['r/^xyz_/']. Got columns: ['Brand']", report.Issues[0].Message)
	})

	t.Run("missing selectors lead the report regardless of rule order", func(t *testing.T) {
		t.Parallel()

		ds := dataset.MustNew([]dataset.ColumnDef{dataset.Col("alpha", "x")})
		set := &rules.Set{
			Columns: rules.Defs{
				"alpha":   {DType: "int64"},
				"zz_gone": {},
			},
			Lazy: rules.Bool(true),
		}
		report := mustValidate(t, set, ds)

		require.Len(t, report.Issues, 2)
		assert.Equal(t, validate.KindMissingColumn, report.Issues[0].Kind)
		assert.Equal(t, []string{"zz_gone"}, report.Issues[0].Columns)
		assert.Equal(t, validate.KindWrongDtype, report.Issues[1].Kind)
	})

	t.Run("fail-fast surfaces the missing selector before per-column issues", func(t *testing.T) {
		t.Parallel()

		ds := dataset.MustNew([]dataset.ColumnDef{dataset.Col("alpha", "x")})
		set := &rules.Set{Columns: rules.Defs{
			"alpha":   {DType: "int64"},
			"zz_gone": {},
		}}
		report := mustValidate(t, set, ds)

		require.Len(t, report.Issues, 1)
		assert.Equal(t, validate.KindMissingColumn, report.Issues[0].Kind)
	})
}

func TestValidateDtype(t *testing.T) {
	t.Parallel()

	ds := dataset.MustNew([]dataset.ColumnDef{dataset.Col("price", "9.99", "1.50")})
	report := mustValidate(t, &rules.Set{Columns: rules.DTypes{"price": "float64"}}, ds)

	require.Len(t, report.Issues, 1)
	issue := report.Issues[0]
	assert.Equal(t, validate.KindWrongDtype, issue.Kind)
	assert.Equal(t, []string{"price"}, issue.Columns)
	assert.Equal(t, "Column price has wrong dtype. Was string, expected float64", issue.Message)
}

func TestValidateNullability(t *testing.T) {
	t.Parallel()

	ds := dataset.MustNew([]dataset.ColumnDef{dataset.AnyCol("price", 1.0, nil, 3.0)})
	set := &rules.Set{Columns: rules.Defs{"price": {Nullable: rules.Bool(false)}}}
	report := mustValidate(t, set, ds)

	require.Len(t, report.Issues, 1)
	issue := report.Issues[0]
	assert.Equal(t, validate.KindNullability, issue.Kind)
	assert.Equal(t, 1, issue.Count)
	assert.Equal(t, "Column 'price' contains 1 null values but nullable=False", issue.Message)
}

func TestValidateUniqueness(t *testing.T) {
	t.Parallel()

	t.Run("every duplicate occurrence counts", func(t *testing.T) {
		t.Parallel()

		ds := dataset.MustNew([]dataset.ColumnDef{dataset.Col("id", 1, 2, 2, 3)})
		set := &rules.Set{Columns: rules.Defs{"id": {Unique: true}}}
		report := mustValidate(t, set, ds)

		require.Len(t, report.Issues, 1)
		issue := report.Issues[0]
		assert.Equal(t, validate.KindUniqueness, issue.Kind)
		assert.Equal(t, 2, issue.Count)
		assert.Equal(t, "Column 'id' contains 2 duplicate values but unique=True", issue.Message)
	})

	t.Run("null duplicates null", func(t *testing.T) {
		t.Parallel()

		ds := dataset.MustNew([]dataset.ColumnDef{dataset.AnyCol("id", nil, nil, 1)})
		set := &rules.Set{Columns: rules.Defs{"id": {Unique: true}}}
		report := mustValidate(t, set, ds)

		require.Len(t, report.Issues, 1)
		assert.Equal(t, 2, report.Issues[0].Count)
	})

	t.Run("NaN duplicates NaN", func(t *testing.T) {
		t.Parallel()

		ds := dataset.MustNew([]dataset.ColumnDef{dataset.Col("x", math.NaN(), math.NaN(), 1.0)})
		set := &rules.Set{Columns: rules.Defs{"x": {Unique: true}}}
		report := mustValidate(t, set, ds)

		require.Len(t, report.Issues, 1)
		assert.Equal(t, 2, report.Issues[0].Count)
	})

	t.Run("distinct values pass", func(t *testing.T) {
		t.Parallel()

		ds := dataset.MustNew([]dataset.ColumnDef{dataset.Col("id", 1, 2, 3)})
		set := &rules.Set{Columns: rules.Defs{"id": {Unique: true}}}
		assert.True(t, mustValidate(t, set, ds).Valid())
	})
}

func TestValidateCompositeUniqueness(t *testing.T) {
	t.Parallel()

	t.Run("duplicate tuples counted with every occurrence", func(t *testing.T) {
		t.Parallel()

		ds := dataset.MustNew([]dataset.ColumnDef{
			dataset.Col("first", "a", "a", "b"),
			dataset.Col("last", "x", "x", "y"),
		})
		set := &rules.Set{CompositeUnique: [][]string{{"first", "last"}}}
		report := mustValidate(t, set, ds)

		require.Len(t, report.Issues, 1)
		issue := report.Issues[0]
		assert.Equal(t, validate.KindCompositeUniqueness, issue.Kind)
		assert.Equal(t, []string{"first", "last"}, issue.Columns)
		assert.Equal(t, 2, issue.Count)
		assert.Equal(t, "Columns 'first' + 'last' contain 2 duplicate combinations but composite_unique is set", issue.Message)
	})

	t.Run("per-column duplicates with distinct tuples pass", func(t *testing.T) {
		t.Parallel()

		ds := dataset.MustNew([]dataset.ColumnDef{
			dataset.Col("first", "a", "a"),
			dataset.Col("last", "x", "y"),
		})
		set := &rules.Set{CompositeUnique: [][]string{{"first", "last"}}}
		assert.True(t, mustValidate(t, set, ds).Valid())
	})

	t.Run("tuple boundaries never bleed across columns", func(t *testing.T) {
		t.Parallel()

		ds := dataset.MustNew([]dataset.ColumnDef{
			dataset.Col("first", "a|b", "a"),
			dataset.Col("last", "c", "b|c"),
		})
		set := &rules.Set{CompositeUnique: [][]string{{"first", "last"}}}
		assert.True(t, mustValidate(t, set, ds).Valid())
	})

	t.Run("all-null tuples duplicate each other", func(t *testing.T) {
		t.Parallel()

		ds := dataset.MustNew([]dataset.ColumnDef{
			dataset.AnyCol("a", nil, nil, 1),
			dataset.AnyCol("b", nil, nil, 2),
		})
		set := &rules.Set{CompositeUnique: [][]string{{"a", "b"}}}
		report := mustValidate(t, set, ds)

		require.Len(t, report.Issues, 1)
		assert.Equal(t, 2, report.Issues[0].Count)
	})

	t.Run("group referencing a missing column", func(t *testing.T) {
		t.Parallel()

		ds := dataset.MustNew([]dataset.ColumnDef{dataset.Col("first", "a")})
		set := &rules.Set{CompositeUnique: [][]string{{"first", "city"}}}
		report := mustValidate(t, set, ds)

		require.Len(t, report.Issues, 1)
		assert.Equal(t, validate.KindCompositeUniqueness, report.Issues[0].Kind)
		assert.Equal(t, "composite_unique references missing columns ['city'] in combination ['first' + 'city']", report.Issues[0].Message)
	})
}

func TestValidateChecks(t *testing.T) {
	t.Parallel()

	t.Run("between reports count and first-seen samples", func(t *testing.T) {
		t.Parallel()

		ds := dataset.MustNew([]dataset.ColumnDef{dataset.Col("score", 50, 150, -10)})
		set := &rules.Set{Columns: rules.Defs{"score": {Checks: rules.Checks{"between": []int{0, 100}}}}}
		report := mustValidate(t, set, ds)

		require.Len(t, report.Issues, 1)
		issue := report.Issues[0]
		assert.Equal(t, validate.KindCheckViolation, issue.Kind)
		assert.Equal(t, "between", issue.Check)
		assert.Equal(t, 2, issue.Count)
		assert.Equal(t, []any{int64(150), int64(-10)}, issue.Samples)
		assert.Equal(t, "Column 'score' failed check between: 2 values failed. Examples: [150, -10]", issue.Message)
	})

	t.Run("sample list is capped but the count is not", func(t *testing.T) {
		t.Parallel()

		ds := dataset.MustNew([]dataset.ColumnDef{dataset.Col("score", 150, 200, 300)})
		set := &rules.Set{Columns: rules.Defs{"score": {Checks: rules.Checks{"lt": 100}}}}
		report := mustValidate(t, set, ds, validate.WithMaxSamples(1))

		require.Len(t, report.Issues, 1)
		assert.Equal(t, 3, report.Issues[0].Count)
		assert.Equal(t, []any{int64(150)}, report.Issues[0].Samples)
	})

	t.Run("string samples render quoted", func(t *testing.T) {
		t.Parallel()

		ds := dataset.MustNew([]dataset.ColumnDef{dataset.Col("status", "draft", "live", "zz")})
		set := &rules.Set{Columns: rules.Defs{"status": {Checks: rules.Checks{"isin": []string{"draft", "live"}}}}}
		report := mustValidate(t, set, ds)

		require.Len(t, report.Issues, 1)
		assert.Equal(t, "Column 'status' failed check isin: 1 values failed. Examples: ['zz']", report.Issues[0].Message)
	})

	t.Run("all checks on a column run in lazy mode", func(t *testing.T) {
		t.Parallel()

		ds := dataset.MustNew([]dataset.ColumnDef{dataset.AnyCol("v", nil, 2, -3)})
		set := &rules.Set{
			Columns: rules.Defs{"v": {Checks: rules.Checks{"gt": 0, "notnull": true}}},
			Lazy:    rules.Bool(true),
		}
		report := mustValidate(t, set, ds)

		require.Len(t, report.Issues, 2)
		assert.Equal(t, "gt", report.Issues[0].Check)
		assert.Equal(t, 2, report.Issues[0].Count)
		assert.Equal(t, []any{nil, int64(-3)}, report.Issues[0].Samples)
		assert.Equal(t, "notnull", report.Issues[1].Check)
		assert.Equal(t, 1, report.Issues[1].Count)
		assert.Equal(t, "Column 'v' failed check notnull: 1 values failed. Examples: [null]", report.Issues[1].Message)
	})

	t.Run("string check on a numeric column degrades to an issue", func(t *testing.T) {
		t.Parallel()

		ds := dataset.MustNew([]dataset.ColumnDef{dataset.Col("n", 1, 2)})
		set := &rules.Set{Columns: rules.Defs{"n": {Checks: rules.Checks{"str_contains": "x"}}}}
		report := mustValidate(t, set, ds)

		require.Len(t, report.Issues, 1)
		assert.Equal(t, validate.KindCheckViolation, report.Issues[0].Kind)
		assert.Equal(t, "Column 'n' failed check str_contains: not applicable to dtype int64", report.Issues[0].Message)
	})

	t.Run("custom predicate failures report like builtins", func(t *testing.T) {
		t.Parallel()

		even := rules.Predicate(func(col dataset.Column) ([]bool, error) {
			mask := make([]bool, col.Len())
			for i := range mask {
				v, _ := col.Value(i).(int64)
				mask[i] = v%2 == 0
			}
			return mask, nil
		})
		ds := dataset.MustNew([]dataset.ColumnDef{dataset.Col("n", 2, 3, 4, 5)})
		set := &rules.Set{Columns: rules.Defs{"n": {Checks: rules.Checks{"even": even}}}}
		report := mustValidate(t, set, ds)

		require.Len(t, report.Issues, 1)
		issue := report.Issues[0]
		assert.Equal(t, validate.KindCheckViolation, issue.Kind)
		assert.Equal(t, "even", issue.Check)
		assert.Equal(t, 2, issue.Count)
		assert.Equal(t, []any{int64(3), int64(5)}, issue.Samples)
	})

	t.Run("custom predicate error becomes an issue", func(t *testing.T) {
		t.Parallel()

		failing := rules.Predicate(func(dataset.Column) ([]bool, error) {
			return nil, errors.New("backend offline")
		})
		ds := dataset.MustNew([]dataset.ColumnDef{dataset.Col("n", 1)})
		set := &rules.Set{Columns: rules.Defs{"n": {Checks: rules.Checks{"reachable": failing}}}}
		report := mustValidate(t, set, ds)

		require.Len(t, report.Issues, 1)
		assert.Equal(t, validate.KindCustomCheckError, report.Issues[0].Kind)
		assert.Equal(t, "Column 'n' custom check reachable failed to execute: backend offline", report.Issues[0].Message)
	})

	t.Run("custom predicate panic is contained", func(t *testing.T) {
		t.Parallel()

		panicking := rules.Predicate(func(dataset.Column) ([]bool, error) {
			panic("boom")
		})
		ds := dataset.MustNew([]dataset.ColumnDef{dataset.Col("n", 1)})
		set := &rules.Set{Columns: rules.Defs{"n": {Checks: rules.Checks{"explosive": panicking}}}}
		report := mustValidate(t, set, ds)

		require.Len(t, report.Issues, 1)
		assert.Equal(t, validate.KindCustomCheckError, report.Issues[0].Kind)
		assert.Contains(t, report.Issues[0].Message, "panic: boom")
	})

	t.Run("custom predicate mask of the wrong length becomes an issue", func(t *testing.T) {
		t.Parallel()

		short := rules.Predicate(func(dataset.Column) ([]bool, error) {
			return []bool{true}, nil
		})
		ds := dataset.MustNew([]dataset.ColumnDef{dataset.Col("n", 1, 2, 3)})
		set := &rules.Set{Columns: rules.Defs{"n": {Checks: rules.Checks{"short": short}}}}
		report := mustValidate(t, set, ds)

		require.Len(t, report.Issues, 1)
		assert.Equal(t, validate.KindCustomCheckError, report.Issues[0].Kind)
		assert.Contains(t, report.Issues[0].Message, "returned 1 results for 3 rows")
	})
}

func TestValidateRegexSelectors(t *testing.T) {
	t.Parallel()

	t.Run("pattern matches apply rules in dataset column order", func(t *testing.T) {
		t.Parallel()

		ds := dataset.MustNew([]dataset.ColumnDef{
			dataset.Col("Brand", "alfa", "saab"),
			dataset.AnyCol("Price_1", 100, nil),
			dataset.AnyCol("Price_2", nil, 200),
		})
		set := &rules.Set{
			Columns: rules.Defs{`r/Price_\d+/`: {Nullable: rules.Bool(false)}},
			Lazy:    rules.Bool(true),
		}
		report := mustValidate(t, set, ds)

		require.Len(t, report.Issues, 2)
		assert.Equal(t, []string{"Price_1"}, report.Issues[0].Columns)
		assert.Equal(t, []string{"Price_2"}, report.Issues[1].Columns)
	})

	t.Run("pattern matching is idempotent across calls", func(t *testing.T) {
		t.Parallel()

		ds := dataset.MustNew([]dataset.ColumnDef{
			dataset.Col("Price_1", 1),
			dataset.Col("Price_2", 2),
		})
		v, err := validate.New(&rules.Set{Columns: rules.DTypes{`r/Price_\d+/`: "string"}, Lazy: rules.Bool(true)})
		require.NoError(t, err)

		first := v.Validate(ds)
		second := v.Validate(ds)
		assert.Equal(t, first.Issues, second.Issues)
		require.Len(t, second.Issues, 2)
	})

	t.Run("empty pattern is rejected at construction", func(t *testing.T) {
		t.Parallel()

		_, err := validate.New(&rules.Set{Columns: rules.Names{"r//"}})
		assert.ErrorIs(t, err, pattern.ErrInvalidPattern)
	})

	t.Run("malformed pattern is rejected at construction", func(t *testing.T) {
		t.Parallel()

		_, err := validate.New(&rules.Set{Columns: rules.Names{"r/[unclosed/"}})
		assert.ErrorIs(t, err, pattern.ErrInvalidPattern)
	})
}

func TestValidateStrict(t *testing.T) {
	t.Parallel()

	t.Run("unmatched columns produce one aggregated issue", func(t *testing.T) {
		t.Parallel()

		ds := dataset.MustNew([]dataset.ColumnDef{
			dataset.Col("C", 1),
			dataset.Col("A", 2),
			dataset.Col("B", 3),
		})
		report := mustValidate(t, &rules.Set{Columns: rules.Names{"A"}}, ds, validate.WithStrict(true))

		require.Len(t, report.Issues, 1)
		issue := report.Issues[0]
		assert.Equal(t, validate.KindUnexpectedColumn, issue.Kind)
		assert.Equal(t, []string{"B", "C"}, issue.Columns)
		assert.Equal(t, "Dataset contained unexpected column(s): B, C", issue.Message)
	})

	t.Run("strict flag on the rule set", func(t *testing.T) {
		t.Parallel()

		ds := dataset.MustNew([]dataset.ColumnDef{dataset.Col("A", 1), dataset.Col("B", 2)})
		set := &rules.Set{Columns: rules.Names{"A"}, Strict: rules.Bool(true)}
		report := mustValidate(t, set, ds)

		require.Len(t, report.Issues, 1)
		assert.Equal(t, validate.KindUnexpectedColumn, report.Issues[0].Kind)
	})

	t.Run("option overrides the rule set flag", func(t *testing.T) {
		t.Parallel()

		ds := dataset.MustNew([]dataset.ColumnDef{dataset.Col("A", 1), dataset.Col("B", 2)})
		set := &rules.Set{Columns: rules.Names{"A"}, Strict: rules.Bool(true)}
		assert.True(t, mustValidate(t, set, ds, validate.WithStrict(false)).Valid())
	})

	t.Run("regex matches count as covered", func(t *testing.T) {
		t.Parallel()

		ds := dataset.MustNew([]dataset.ColumnDef{
			dataset.Col("tag_a", 1),
			dataset.Col("tag_b", 2),
		})
		report := mustValidate(t, &rules.Set{Columns: rules.Names{`r/^tag_/`}}, ds, validate.WithStrict(true))
		assert.True(t, report.Valid())
	})
}

func TestValidateModes(t *testing.T) {
	t.Parallel()

	brokenSet := func() *rules.Set {
		// gone is missing, id has the wrong dtype; map rules run in
		// lexicographic order.
		return &rules.Set{Columns: rules.Defs{
			"gone": {},
			"id":   {DType: "string"},
		}}
	}
	ds := dataset.MustNew([]dataset.ColumnDef{dataset.Col("id", 1, 2)})

	t.Run("fail-fast stops at the first issue", func(t *testing.T) {
		t.Parallel()

		report := mustValidate(t, brokenSet(), ds)
		require.Len(t, report.Issues, 1)
		assert.Equal(t, validate.KindMissingColumn, report.Issues[0].Kind)
	})

	t.Run("lazy collects issues from every phase", func(t *testing.T) {
		t.Parallel()

		report := mustValidate(t, brokenSet(), ds, validate.WithLazy(true))
		require.Len(t, report.Issues, 2)
		assert.Equal(t, validate.KindMissingColumn, report.Issues[0].Kind)
		assert.Equal(t, validate.KindWrongDtype, report.Issues[1].Kind)
	})

	t.Run("lazy flag on the rule set", func(t *testing.T) {
		t.Parallel()

		set := brokenSet()
		set.Lazy = rules.Bool(true)
		report := mustValidate(t, set, ds)
		assert.Len(t, report.Issues, 2)
	})

	t.Run("phases report in a fixed order", func(t *testing.T) {
		t.Parallel()

		wide := dataset.MustNew([]dataset.ColumnDef{
			dataset.Col("id", 1, 1),
			dataset.Col("extra", 5, 5),
		})
		set := &rules.Set{
			Columns: rules.Defs{
				"gone": {},
				"id":   {DType: "string", Checks: rules.Checks{"gt": 10}},
			},
			CompositeUnique: [][]string{{"id", "extra"}},
		}
		schema := recordOnlySchema{inner: rowschema.NewSchema(rowschema.F("age", rowschema.Required()))}
		report := mustValidate(t, set, wide,
			validate.WithLazy(true),
			validate.WithStrict(true),
			validate.WithMinRows(3),
			validate.WithRowSchema(schema),
		)

		kinds := make([]validate.Kind, 0, len(report.Issues))
		for _, issue := range report.Issues {
			kinds = append(kinds, issue.Kind)
		}
		assert.Equal(t, []validate.Kind{
			validate.KindShape,
			validate.KindMissingColumn,
			validate.KindWrongDtype,
			validate.KindUnexpectedColumn,
			validate.KindCheckViolation,
			validate.KindCompositeUniqueness,
			validate.KindRowValidation,
			validate.KindRowValidation,
		}, kinds)
	})
}

func TestValidateRows(t *testing.T) {
	t.Parallel()

	requireAge := func() rowschema.Schema {
		return rowschema.NewSchema(rowschema.F("age", rowschema.Required()))
	}

	t.Run("early termination stops the scan and reports a lower bound", func(t *testing.T) {
		t.Parallel()

		vals := make([]any, 100)
		for i := range vals {
			vals[i] = i
		}
		ds := dataset.MustNew([]dataset.ColumnDef{dataset.AnyCol("n", vals...)})
		report := mustValidate(t, nil, ds,
			validate.WithLazy(true),
			validate.WithMaxRowErrors(3),
			validate.WithRowSchema(recordOnlySchema{inner: requireAge()}),
		)

		require.Len(t, report.Issues, 3)
		assert.Equal(t, 3, report.RowFailures)
		assert.False(t, report.RowScanComplete)
		for i, issue := range report.Issues {
			assert.Equal(t, validate.KindRowValidation, issue.Kind)
			assert.Equal(t, fmt.Sprintf("%d", i), issue.Row)
			assert.Equal(t, []rowschema.FieldError{{Field: "age", Message: "field is required"}}, issue.Fields)
		}
		assert.Contains(t, report.Error(), "stopped scanning early (at least 97 more row(s) with errors)")
	})

	t.Run("disabled early termination scans everything for exact totals", func(t *testing.T) {
		t.Parallel()

		vals := make([]any, 10)
		for i := range vals {
			vals[i] = i
		}
		ds := dataset.MustNew([]dataset.ColumnDef{dataset.AnyCol("n", vals...)})
		report := mustValidate(t, nil, ds,
			validate.WithLazy(true),
			validate.WithMaxRowErrors(3),
			validate.WithEarlyTermination(false),
			validate.WithRowSchema(recordOnlySchema{inner: requireAge()}),
		)

		require.Len(t, report.Issues, 3)
		assert.Equal(t, 10, report.RowFailures)
		assert.True(t, report.RowScanComplete)
		assert.Contains(t, report.Error(), "and 7 more row(s) with errors")
		assert.NotContains(t, report.Error(), "stopped scanning early")
	})

	t.Run("bulk schemas see the whole dataset in one call", func(t *testing.T) {
		t.Parallel()

		vals := make([]any, 10)
		for i := range vals {
			vals[i] = i
		}
		ds := dataset.MustNew([]dataset.ColumnDef{dataset.AnyCol("n", vals...)})
		report := mustValidate(t, nil, ds,
			validate.WithLazy(true),
			validate.WithMaxRowErrors(3),
			validate.WithRowSchema(requireAge()),
		)

		require.Len(t, report.Issues, 3)
		assert.Equal(t, 10, report.RowFailures)
		assert.True(t, report.RowScanComplete)
		assert.Contains(t, report.Error(), "and 7 more row(s) with errors")
	})

	t.Run("only failing rows are reported", func(t *testing.T) {
		t.Parallel()

		ds := dataset.MustNew([]dataset.ColumnDef{dataset.Col("age", 5, -2, 7, -1)})
		schema := rowschema.NewSchema(rowschema.F("age", rowschema.Min(0)))
		report := mustValidate(t, nil, ds,
			validate.WithRowSchema(recordOnlySchema{inner: schema}),
		)

		require.Len(t, report.Issues, 2)
		assert.Equal(t, "1", report.Issues[0].Row)
		assert.Equal(t, "3", report.Issues[1].Row)
		assert.Equal(t, 2, report.RowFailures)
		assert.True(t, report.RowScanComplete)
	})

	t.Run("row labels from the dataset are used", func(t *testing.T) {
		t.Parallel()

		ds := dataset.MustNew(
			[]dataset.ColumnDef{dataset.Col("age", 5, -2)},
			dataset.WithLabels("alpha", "beta"),
		)
		schema := rowschema.NewSchema(rowschema.F("age", rowschema.Min(0)))
		report := mustValidate(t, nil, ds,
			validate.WithRowSchema(recordOnlySchema{inner: schema}),
		)

		require.Len(t, report.Issues, 1)
		assert.Equal(t, "beta", report.Issues[0].Row)
		assert.Contains(t, report.Error(), "Row beta:")
	})

	t.Run("NaN values count as missing", func(t *testing.T) {
		t.Parallel()

		ds := dataset.MustNew([]dataset.ColumnDef{dataset.Col("score", math.NaN(), 1.5)})

		required := rowschema.NewSchema(rowschema.F("score", rowschema.Required()))
		report := mustValidate(t, nil, ds,
			validate.WithRowSchema(recordOnlySchema{inner: required}),
		)
		require.Len(t, report.Issues, 1)
		assert.Equal(t, "0", report.Issues[0].Row)

		optional := rowschema.NewSchema(rowschema.F("score", rowschema.Float()))
		report = mustValidate(t, nil, ds,
			validate.WithRowSchema(recordOnlySchema{inner: optional}),
		)
		assert.True(t, report.Valid())
	})

	t.Run("fail-fast skips row validation after earlier issues", func(t *testing.T) {
		t.Parallel()

		ds := dataset.MustNew([]dataset.ColumnDef{dataset.Col("age", -2)})
		set := &rules.Set{Columns: rules.DTypes{"age": "string"}}
		schema := rowschema.NewSchema(rowschema.F("age", rowschema.Min(0)))
		report := mustValidate(t, set, ds,
			validate.WithRowSchema(recordOnlySchema{inner: schema}),
		)

		require.Len(t, report.Issues, 1)
		assert.Equal(t, validate.KindWrongDtype, report.Issues[0].Kind)
		assert.Zero(t, report.RowFailures)
	})

	t.Run("empty dataset skips the scan cleanly", func(t *testing.T) {
		t.Parallel()

		ds := dataset.MustNew([]dataset.ColumnDef{dataset.Col[int64]("age")})
		report := mustValidate(t, nil, ds,
			validate.WithRowSchema(recordOnlySchema{inner: requireAge()}),
		)
		assert.True(t, report.Valid())
		assert.Zero(t, report.RowFailures)
	})
}

func TestValidateShapeConstraints(t *testing.T) {
	t.Parallel()

	threeRows := dataset.MustNew([]dataset.ColumnDef{dataset.Col("n", 1, 2, 3)})
	empty := dataset.MustNew([]dataset.ColumnDef{dataset.Col[int64]("n")})

	t.Run("empty dataset rejected when not allowed", func(t *testing.T) {
		t.Parallel()

		report := mustValidate(t, nil, empty, validate.WithAllowEmpty(false))
		require.Len(t, report.Issues, 1)
		assert.Equal(t, validate.KindShape, report.Issues[0].Kind)
		assert.Equal(t, "Dataset is empty but allow_empty=False", report.Issues[0].Message)
	})

	t.Run("min rows", func(t *testing.T) {
		t.Parallel()

		report := mustValidate(t, nil, threeRows, validate.WithMinRows(5))
		require.Len(t, report.Issues, 1)
		assert.Equal(t, "Dataset has 3 rows but min_rows=5", report.Issues[0].Message)
	})

	t.Run("max rows", func(t *testing.T) {
		t.Parallel()

		report := mustValidate(t, nil, threeRows, validate.WithMaxRows(2))
		require.Len(t, report.Issues, 1)
		assert.Equal(t, "Dataset has 3 rows but max_rows=2", report.Issues[0].Message)
	})

	t.Run("exact rows", func(t *testing.T) {
		t.Parallel()

		report := mustValidate(t, nil, threeRows, validate.WithExactRows(4))
		require.Len(t, report.Issues, 1)
		assert.Equal(t, "Dataset has 3 rows but exact_rows=4", report.Issues[0].Message)
	})

	t.Run("satisfied constraints pass", func(t *testing.T) {
		t.Parallel()

		report := mustValidate(t, nil, threeRows,
			validate.WithMinRows(1),
			validate.WithMaxRows(10),
			validate.WithAllowEmpty(false),
		)
		assert.True(t, report.Valid())
	})

	t.Run("lazy mode reports every violated constraint", func(t *testing.T) {
		t.Parallel()

		report := mustValidate(t, nil, empty,
			validate.WithLazy(true),
			validate.WithAllowEmpty(false),
			validate.WithMinRows(1),
		)
		assert.Len(t, report.Issues, 2)
	})
}

func TestValidateSubjectContext(t *testing.T) {
	t.Parallel()

	t.Run("function and parameter", func(t *testing.T) {
		t.Parallel()

		ds := dataset.MustNew([]dataset.ColumnDef{dataset.Col("A", 1)})
		report := mustValidate(t, &rules.Set{Columns: rules.Names{"B"}}, ds,
			validate.WithFunction("load_data"),
			validate.WithParam("df"),
		)

		require.Len(t, report.Issues, 1)
		assert.Equal(t,
			"Missing columns: ['B'] in function 'load_data' parameter 'df'. Got columns: ['A']",
			report.Issues[0].Message)
	})

	t.Run("function and return value", func(t *testing.T) {
		t.Parallel()

		ds := dataset.MustNew([]dataset.ColumnDef{dataset.AnyCol("price", 1.0, nil)})
		set := &rules.Set{Columns: rules.Defs{"price": {Nullable: rules.Bool(false)}}}
		report := mustValidate(t, set, ds,
			validate.WithFunction("transform"),
			validate.WithReturnValue(),
		)

		require.Len(t, report.Issues, 1)
		assert.Equal(t,
			"Column 'price' in function 'transform' return value contains 1 null values but nullable=False",
			report.Issues[0].Message)
	})

	t.Run("row block carries the context suffix", func(t *testing.T) {
		t.Parallel()

		ds := dataset.MustNew([]dataset.ColumnDef{dataset.Col("age", -1)})
		schema := rowschema.NewSchema(rowschema.F("age", rowschema.Min(0)))
		report := mustValidate(t, nil, ds,
			validate.WithFunction("load"),
			validate.WithRowSchema(recordOnlySchema{inner: schema}),
		)

		assert.Contains(t, report.Error(), " in function 'load'")
	})
}

func TestValidateIdempotence(t *testing.T) {
	t.Parallel()

	ds := dataset.MustNew([]dataset.ColumnDef{
		dataset.Col("id", 1, 2, 2),
		dataset.AnyCol("price", 1.0, nil, 3.0),
	})
	set := &rules.Set{Columns: rules.Defs{
		"id":    {Unique: true},
		"price": {Nullable: rules.Bool(false)},
	}}
	v, err := validate.New(set, validate.WithLazy(true))
	require.NoError(t, err)

	first := v.Validate(ds)
	second := v.Validate(ds)

	assert.Equal(t, first.Issues, second.Issues)
	assert.Equal(t, first.Error(), second.Error())
	require.Len(t, second.Issues, 2)
}

func TestNewRejectsBadConfiguration(t *testing.T) {
	t.Parallel()

	t.Run("unknown check operator", func(t *testing.T) {
		t.Parallel()

		_, err := validate.New(&rules.Set{Columns: rules.Defs{"n": {Checks: rules.Checks{"frobnicate": 1}}}})
		assert.ErrorIs(t, err, rules.ErrInvalidSpec)
	})

	t.Run("invalid check argument", func(t *testing.T) {
		t.Parallel()

		_, err := validate.New(&rules.Set{Columns: rules.Defs{"n": {Checks: rules.Checks{"gt": true}}}})
		assert.ErrorIs(t, err, rules.ErrInvalidSpec)
	})

	t.Run("composite group below two columns", func(t *testing.T) {
		t.Parallel()

		_, err := validate.New(&rules.Set{CompositeUnique: [][]string{{"only"}}})
		assert.ErrorIs(t, err, rules.ErrInvalidSpec)
	})

	t.Run("negative sample cap", func(t *testing.T) {
		t.Parallel()

		_, err := validate.New(nil, validate.WithMaxSamples(-1))
		assert.Error(t, err)
	})

	t.Run("row error budget below one", func(t *testing.T) {
		t.Parallel()

		_, err := validate.New(nil, validate.WithMaxRowErrors(0))
		assert.Error(t, err)
	})

	t.Run("negative shape bounds", func(t *testing.T) {
		t.Parallel()

		_, err := validate.New(nil, validate.WithMinRows(-1))
		assert.Error(t, err)
		_, err = validate.New(nil, validate.WithExactRows(-1))
		assert.Error(t, err)
	})

	t.Run("MustNew panics on configuration errors", func(t *testing.T) {
		t.Parallel()

		assert.Panics(t, func() {
			validate.MustNew(&rules.Set{Columns: rules.Names{"r//"}})
		})
	})
}
