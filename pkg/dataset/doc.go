// Package dataset defines the read-only columnar view the validation engine
// operates on, together with two interchangeable backends: a native in-memory
// table and an adapter over Apache Arrow records and tables.
//
// The package deliberately exposes a tiny capability surface. A Dataset lists
// its columns in order, resolves a column by name, and reports its row count;
// a Column reports its semantic element type, length, null count, and
// per-position values. Everything the engine does is expressed against these
// two interfaces, so any columnar source can participate by implementing them.
//
// # Architecture
//
// Element types are identified by DType, a closed set of semantic names
// ("int64", "string", "timestamp", ...). Type identity is name equality:
// int32 and int64 are different dtypes and no implicit widening happens at
// the dataset layer. Values surface as Go-native scalars through
// Column.Value, with nil standing in for null.
//
// The native backend (Table) stores canonical scalars and is built through
// column constructors. The Arrow backend wraps arrow.Record and arrow.Table
// without copying or retaining buffers: the caller keeps the underlying
// Arrow data alive for as long as the returned Dataset is in use.
//
// # Usage
//
//	import "github.com/framecheck/framecheck/pkg/dataset"
//
//	tbl, err := dataset.New([]dataset.ColumnDef{
//		dataset.Col("id", 1, 2, 3),
//		dataset.Col("name", "alice", "bob", "carol"),
//		dataset.AnyCol("score", 9.5, nil, 7.25),
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	col, ok := tbl.Column("score")
//	if ok {
//		fmt.Println(col.DType(), col.NullCount()) // float64 1
//	}
//
// Wrapping an Arrow record:
//
//	ds, err := dataset.FromRecord(rec)
//
// # Error Handling
//
// Constructors validate their input and return sentinel errors
// (ErrEmptyName, ErrDuplicateColumn, ErrLengthMismatch, ErrMixedTypes,
// ErrUnsupportedType) joined with position detail, so callers can branch
// with errors.Is while logs keep the specifics.
package dataset
