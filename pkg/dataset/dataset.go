package dataset

// DType names the semantic element type of a column. Two dtypes are equal
// exactly when their names are equal; differing widths (int32 vs int64) are
// distinct types.
type DType string

// Supported element types.
const (
	Bool      DType = "bool"
	Int8      DType = "int8"
	Int16     DType = "int16"
	Int32     DType = "int32"
	Int64     DType = "int64"
	Uint8     DType = "uint8"
	Uint16    DType = "uint16"
	Uint32    DType = "uint32"
	Uint64    DType = "uint64"
	Float32   DType = "float32"
	Float64   DType = "float64"
	String    DType = "string"
	Binary    DType = "binary"
	Date32    DType = "date32"
	Date64    DType = "date64"
	Timestamp DType = "timestamp"
)

// Dataset is a read-only columnar view over tabular data. Implementations
// must keep Columns in a stable order; the engine treats it as the
// authoritative column order for reporting.
//
// A Dataset is borrowed for the duration of a validation call and never
// retained or mutated.
type Dataset interface {
	// Columns returns all column names in dataset order.
	Columns() []string

	// Column resolves a column by name. The second return reports presence.
	Column(name string) (Column, bool)

	// NumRows returns the number of rows.
	NumRows() int
}

// Column is a read-only view over the values of a single column.
type Column interface {
	// DType returns the semantic element type.
	DType() DType

	// Len returns the number of values, including nulls.
	Len() int

	// NullCount returns how many values are null.
	NullCount() int

	// IsNull reports whether the value at position i is null.
	IsNull(i int) bool

	// Value returns the value at position i as a Go-native scalar,
	// or nil when the value is null.
	Value(i int) any
}

// Labeled is an optional Dataset extension for sources whose rows carry
// meaningful identifiers (an index, a primary key rendering). Reports use
// the label where available and fall back to the ordinal position.
type Labeled interface {
	RowLabel(i int) string
}
