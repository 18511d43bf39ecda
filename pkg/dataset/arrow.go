package dataset

import (
	"errors"
	"fmt"
	"sort"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
)

// arrowDataset adapts Arrow-backed data to the Dataset interface. It borrows
// the underlying arrays: no Retain/Release happens here, the caller keeps
// the record or table alive while the view is in use.
type arrowDataset struct {
	names  []string
	byName map[string]int
	cols   []Column
	rows   int
}

func (d *arrowDataset) Columns() []string { return d.names }

func (d *arrowDataset) Column(name string) (Column, bool) {
	i, ok := d.byName[name]
	if !ok {
		return nil, false
	}
	return d.cols[i], true
}

func (d *arrowDataset) NumRows() int { return d.rows }

func (d *arrowDataset) add(name string, col Column) error {
	if name == "" {
		return errors.Join(ErrEmptyName, fmt.Errorf("column at position %d", len(d.cols)))
	}
	if _, exists := d.byName[name]; exists {
		return errors.Join(ErrDuplicateColumn, fmt.Errorf("column %q", name))
	}
	d.byName[name] = len(d.cols)
	d.names = append(d.names, name)
	d.cols = append(d.cols, col)
	return nil
}

// FromRecord wraps a single Arrow record batch as a Dataset. All column
// types must belong to the supported set; anything else is rejected with
// ErrUnsupportedType naming the column.
func FromRecord(rec arrow.Record) (Dataset, error) {
	ds := &arrowDataset{
		byName: make(map[string]int, int(rec.NumCols())),
		rows:   int(rec.NumRows()),
	}
	for i := 0; i < int(rec.NumCols()); i++ {
		name := rec.ColumnName(i)
		arr := rec.Column(i)
		dtype, err := dtypeOfArrow(arr.DataType())
		if err != nil {
			return nil, errors.Join(err, fmt.Errorf("column %q", name))
		}
		if err := ds.add(name, &arrowColumn{dtype: dtype, arr: arr}); err != nil {
			return nil, err
		}
	}
	return ds, nil
}

// FromTable wraps an Arrow table as a Dataset, walking each column's chunks
// in place rather than materializing a single record.
func FromTable(tbl arrow.Table) (Dataset, error) {
	ds := &arrowDataset{
		byName: make(map[string]int, int(tbl.NumCols())),
		rows:   int(tbl.NumRows()),
	}
	for i := 0; i < int(tbl.NumCols()); i++ {
		col := tbl.Column(i)
		dtype, err := dtypeOfArrow(col.DataType())
		if err != nil {
			return nil, errors.Join(err, fmt.Errorf("column %q", col.Name()))
		}
		chunks := col.Data().Chunks()
		cc := &chunkedColumn{
			dtype:  dtype,
			chunks: chunks,
			starts: make([]int, len(chunks)),
			length: col.Len(),
			nulls:  col.NullN(),
		}
		offset := 0
		for k, chunk := range chunks {
			cc.starts[k] = offset
			offset += chunk.Len()
		}
		if err := ds.add(col.Name(), cc); err != nil {
			return nil, err
		}
	}
	return ds, nil
}

// arrowColumn views a single contiguous Arrow array.
type arrowColumn struct {
	dtype DType
	arr   arrow.Array
}

func (c *arrowColumn) DType() DType      { return c.dtype }
func (c *arrowColumn) Len() int          { return c.arr.Len() }
func (c *arrowColumn) NullCount() int    { return c.arr.NullN() }
func (c *arrowColumn) IsNull(i int) bool { return c.arr.IsNull(i) }
func (c *arrowColumn) Value(i int) any   { return arrowValue(c.arr, i) }

// chunkedColumn views an Arrow table column split across chunks.
type chunkedColumn struct {
	dtype  DType
	chunks []arrow.Array
	starts []int
	length int
	nulls  int
}

func (c *chunkedColumn) DType() DType   { return c.dtype }
func (c *chunkedColumn) Len() int       { return c.length }
func (c *chunkedColumn) NullCount() int { return c.nulls }

func (c *chunkedColumn) IsNull(i int) bool {
	chunk, pos := c.locate(i)
	return chunk.IsNull(pos)
}

func (c *chunkedColumn) Value(i int) any {
	chunk, pos := c.locate(i)
	return arrowValue(chunk, pos)
}

func (c *chunkedColumn) locate(i int) (arrow.Array, int) {
	k := sort.Search(len(c.starts), func(k int) bool { return c.starts[k] > i }) - 1
	return c.chunks[k], i - c.starts[k]
}

// dtypeOfArrow maps an Arrow type onto the dataset dtype set. Large string
// and binary variants collapse onto their plain counterparts; everything
// outside the set is unsupported.
func dtypeOfArrow(dt arrow.DataType) (DType, error) {
	switch dt.ID() {
	case arrow.BOOL:
		return Bool, nil
	case arrow.INT8:
		return Int8, nil
	case arrow.INT16:
		return Int16, nil
	case arrow.INT32:
		return Int32, nil
	case arrow.INT64:
		return Int64, nil
	case arrow.UINT8:
		return Uint8, nil
	case arrow.UINT16:
		return Uint16, nil
	case arrow.UINT32:
		return Uint32, nil
	case arrow.UINT64:
		return Uint64, nil
	case arrow.FLOAT32:
		return Float32, nil
	case arrow.FLOAT64:
		return Float64, nil
	case arrow.STRING, arrow.LARGE_STRING:
		return String, nil
	case arrow.BINARY, arrow.LARGE_BINARY:
		return Binary, nil
	case arrow.DATE32:
		return Date32, nil
	case arrow.DATE64:
		return Date64, nil
	case arrow.TIMESTAMP:
		return Timestamp, nil
	default:
		return "", errors.Join(ErrUnsupportedType, fmt.Errorf("arrow type %s", dt.Name()))
	}
}

// arrowValue extracts the value at pos as a canonical Go scalar, nil for
// null. Dates and timestamps surface as time.Time.
func arrowValue(a arrow.Array, pos int) any {
	if a.IsNull(pos) {
		return nil
	}
	switch a.DataType().ID() {
	case arrow.BOOL:
		return a.(*array.Boolean).Value(pos)
	case arrow.INT8:
		return a.(*array.Int8).Value(pos)
	case arrow.INT16:
		return a.(*array.Int16).Value(pos)
	case arrow.INT32:
		return a.(*array.Int32).Value(pos)
	case arrow.INT64:
		return a.(*array.Int64).Value(pos)
	case arrow.UINT8:
		return a.(*array.Uint8).Value(pos)
	case arrow.UINT16:
		return a.(*array.Uint16).Value(pos)
	case arrow.UINT32:
		return a.(*array.Uint32).Value(pos)
	case arrow.UINT64:
		return a.(*array.Uint64).Value(pos)
	case arrow.FLOAT32:
		return a.(*array.Float32).Value(pos)
	case arrow.FLOAT64:
		return a.(*array.Float64).Value(pos)
	case arrow.STRING:
		return a.(*array.String).Value(pos)
	case arrow.LARGE_STRING:
		return a.(*array.LargeString).Value(pos)
	case arrow.BINARY:
		return a.(*array.Binary).Value(pos)
	case arrow.LARGE_BINARY:
		return a.(*array.LargeBinary).Value(pos)
	case arrow.DATE32:
		return a.(*array.Date32).Value(pos).ToTime()
	case arrow.DATE64:
		return a.(*array.Date64).Value(pos).ToTime()
	case arrow.TIMESTAMP:
		ts := a.(*array.Timestamp)
		unit := ts.DataType().(*arrow.TimestampType).Unit
		return ts.Value(pos).ToTime(unit)
	default:
		return nil
	}
}
