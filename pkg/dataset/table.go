package dataset

import (
	"errors"
	"fmt"
	"time"
)

// Element constrains the scalar types accepted by the typed column
// constructor. Plain int and uint are canonicalized to their 64-bit forms.
type Element interface {
	bool |
		int | int8 | int16 | int32 | int64 |
		uint | uint8 | uint16 | uint32 | uint64 |
		float32 | float64 |
		string | []byte | time.Time
}

// Table is the native in-memory Dataset backend. It stores canonical Go
// scalars per column and optional row labels. A Table is immutable after
// construction and safe for concurrent reads.
type Table struct {
	names  []string
	byName map[string]int
	cols   []*column
	rows   int
	labels []string
}

type column struct {
	dtype  DType
	values []any
	nulls  int
}

func (c *column) DType() DType      { return c.dtype }
func (c *column) Len() int          { return len(c.values) }
func (c *column) NullCount() int    { return c.nulls }
func (c *column) IsNull(i int) bool { return c.values[i] == nil }
func (c *column) Value(i int) any   { return c.values[i] }

// ColumnDef describes one column for New. Use Col or AnyCol to build one;
// construction problems surface when the definition is handed to New.
type ColumnDef struct {
	name string
	col  *column
	err  error
}

// Option configures a Table during New.
type Option func(*Table) error

// WithLabels attaches row labels to the table. The label count must match
// the row count.
func WithLabels(labels ...string) Option {
	return func(t *Table) error {
		if len(labels) != t.rows {
			return errors.Join(ErrLengthMismatch, fmt.Errorf("%d labels for %d rows", len(labels), t.rows))
		}
		t.labels = labels
		return nil
	}
}

// Col builds a typed column definition with no nulls. The dtype is derived
// from T even when the column is empty.
func Col[T Element](name string, values ...T) ColumnDef {
	var zero T
	_, dtype, err := canonScalar(zero)
	if err != nil {
		return ColumnDef{name: name, err: err}
	}
	vals := make([]any, len(values))
	for i, v := range values {
		cv, _, err := canonScalar(v)
		if err != nil {
			return ColumnDef{name: name, err: errors.Join(err, fmt.Errorf("column %q position %d", name, i))}
		}
		vals[i] = cv
	}
	return ColumnDef{name: name, col: &column{dtype: dtype, values: vals}}
}

// AnyCol builds a column definition from loosely typed values where nil
// marks a null. The dtype is inferred from the first non-nil value; every
// later value must agree with it. A column with no non-nil value has no
// dtype to infer and is rejected.
func AnyCol(name string, values ...any) ColumnDef {
	col := &column{values: make([]any, len(values))}
	for i, v := range values {
		if v == nil {
			col.nulls++
			continue
		}
		cv, dtype, err := canonScalar(v)
		if err != nil {
			return ColumnDef{name: name, err: errors.Join(err, fmt.Errorf("column %q position %d", name, i))}
		}
		if col.dtype == "" {
			col.dtype = dtype
		} else if col.dtype != dtype {
			return ColumnDef{name: name, err: errors.Join(ErrMixedTypes,
				fmt.Errorf("column %q position %d: %s after %s", name, i, dtype, col.dtype))}
		}
		col.values[i] = cv
	}
	if col.dtype == "" {
		return ColumnDef{name: name, err: errors.Join(ErrMixedTypes,
			fmt.Errorf("column %q has no non-null value to infer a dtype from", name))}
	}
	return ColumnDef{name: name, col: col}
}

// New builds an immutable Table from column definitions. All columns must
// carry unique non-empty names and agree on length.
func New(cols []ColumnDef, opts ...Option) (*Table, error) {
	t := &Table{byName: make(map[string]int, len(cols))}
	for i, def := range cols {
		if def.err != nil {
			return nil, def.err
		}
		if def.name == "" {
			return nil, errors.Join(ErrEmptyName, fmt.Errorf("column at position %d", i))
		}
		if _, exists := t.byName[def.name]; exists {
			return nil, errors.Join(ErrDuplicateColumn, fmt.Errorf("column %q", def.name))
		}
		if i == 0 {
			t.rows = def.col.Len()
		} else if def.col.Len() != t.rows {
			return nil, errors.Join(ErrLengthMismatch,
				fmt.Errorf("column %q has %d rows, want %d", def.name, def.col.Len(), t.rows))
		}
		t.byName[def.name] = len(t.cols)
		t.names = append(t.names, def.name)
		t.cols = append(t.cols, def.col)
	}
	for _, opt := range opts {
		if err := opt(t); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// MustNew is like New but panics on error. Intended for static test data
// and package-level fixtures.
func MustNew(cols []ColumnDef, opts ...Option) *Table {
	t, err := New(cols, opts...)
	if err != nil {
		panic(err)
	}
	return t
}

// Columns returns the column names in declaration order.
func (t *Table) Columns() []string { return t.names }

// Column resolves a column by name.
func (t *Table) Column(name string) (Column, bool) {
	i, ok := t.byName[name]
	if !ok {
		return nil, false
	}
	return t.cols[i], true
}

// NumRows returns the number of rows.
func (t *Table) NumRows() int { return t.rows }

// RowLabel returns the label attached to row i, or its ordinal position
// when the table carries no labels. Implements Labeled.
func (t *Table) RowLabel(i int) string {
	if t.labels != nil {
		return t.labels[i]
	}
	return fmt.Sprintf("%d", i)
}

// canonScalar maps a supported Go value onto its canonical stored form and
// dtype. int and uint collapse to int64 and uint64.
func canonScalar(v any) (any, DType, error) {
	switch x := v.(type) {
	case bool:
		return x, Bool, nil
	case int:
		return int64(x), Int64, nil
	case int8:
		return x, Int8, nil
	case int16:
		return x, Int16, nil
	case int32:
		return x, Int32, nil
	case int64:
		return x, Int64, nil
	case uint:
		return uint64(x), Uint64, nil
	case uint8:
		return x, Uint8, nil
	case uint16:
		return x, Uint16, nil
	case uint32:
		return x, Uint32, nil
	case uint64:
		return x, Uint64, nil
	case float32:
		return x, Float32, nil
	case float64:
		return x, Float64, nil
	case string:
		return x, String, nil
	case []byte:
		return x, Binary, nil
	case time.Time:
		return x, Timestamp, nil
	default:
		return nil, "", errors.Join(ErrUnsupportedType, fmt.Errorf("%T", v))
	}
}
