package source

// arrow.go converts between core tables and Apache Arrow tables.
//
// Integer, unsigned, floating point and decimal arrays become numeric
// columns. Every other Arrow type becomes a text column using the array's
// string rendering, booleans included.

import (
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/JonMunkholm/colcheck/internal/core"
)

// FromArrow copies an Arrow table into a core table. The Arrow table is not
// retained or released.
func FromArrow(tbl arrow.Table) (*core.Table, error) {
	schema := tbl.Schema()
	builders := make([]*columnBuilder, tbl.NumCols())

	for i := 0; i < int(tbl.NumCols()); i++ {
		b := &columnBuilder{name: schema.Field(i).Name}
		for _, chunk := range tbl.Column(i).Data().Chunks() {
			appendArrowArray(b, chunk)
		}
		builders[i] = b
	}

	return buildTable(builders)
}

func appendArrowArray(b *columnBuilder, arr arrow.Array) {
	for i := 0; i < arr.Len(); i++ {
		if arr.IsNull(i) {
			b.appendNull()
			continue
		}
		if v, ok := arrowFloat(arr, i); ok {
			b.appendNum(v)
			continue
		}
		b.appendText(arr.ValueStr(i))
	}
}

// arrowFloat returns the numeric value at pos for numeric array types.
func arrowFloat(col arrow.Array, pos int) (float64, bool) {
	switch col.DataType().ID() {
	case arrow.INT8:
		return float64(col.(*array.Int8).Value(pos)), true
	case arrow.INT16:
		return float64(col.(*array.Int16).Value(pos)), true
	case arrow.INT32:
		return float64(col.(*array.Int32).Value(pos)), true
	case arrow.INT64:
		return float64(col.(*array.Int64).Value(pos)), true
	case arrow.UINT8:
		return float64(col.(*array.Uint8).Value(pos)), true
	case arrow.UINT16:
		return float64(col.(*array.Uint16).Value(pos)), true
	case arrow.UINT32:
		return float64(col.(*array.Uint32).Value(pos)), true
	case arrow.UINT64:
		return float64(col.(*array.Uint64).Value(pos)), true
	case arrow.FLOAT16:
		return float64(col.(*array.Float16).Value(pos).Float32()), true
	case arrow.FLOAT32:
		return float64(col.(*array.Float32).Value(pos)), true
	case arrow.FLOAT64:
		return col.(*array.Float64).Value(pos), true
	case arrow.DECIMAL128:
		scale := col.DataType().(*arrow.Decimal128Type).Scale
		return col.(*array.Decimal128).Value(pos).ToFloat64(scale), true
	default:
		return 0, false
	}
}

// ToArrow builds an Arrow table from t. Numeric columns become nullable
// float64 fields and text columns nullable strings. The caller must Release
// the result.
func ToArrow(t *core.Table, mem memory.Allocator) arrow.Table {
	if mem == nil {
		mem = memory.NewGoAllocator()
	}

	cols := t.Columns()
	fields := make([]arrow.Field, len(cols))
	columns := make([]arrow.Column, len(cols))

	for i, col := range cols {
		fields[i] = arrowField(col)

		arr := buildArrowArray(mem, col)
		defer arr.Release()

		chunked := arrow.NewChunked(fields[i].Type, []arrow.Array{arr})
		defer chunked.Release()

		columns[i] = *arrow.NewColumn(fields[i], chunked)
	}

	schema := arrow.NewSchema(fields, nil)
	return array.NewTable(schema, columns, int64(t.NumRows()))
}

func arrowField(col core.Column) arrow.Field {
	if col.IsNumeric() {
		return arrow.Field{Name: col.Name, Type: arrow.PrimitiveTypes.Float64, Nullable: true}
	}
	return arrow.Field{Name: col.Name, Type: arrow.BinaryTypes.String, Nullable: true}
}

func buildArrowArray(mem memory.Allocator, col core.Column) arrow.Array {
	if col.IsNumeric() {
		b := array.NewFloat64Builder(mem)
		defer b.Release()
		for _, c := range col.Cells {
			if c.IsMissing() {
				b.AppendNull()
			} else {
				b.Append(c.Float64)
			}
		}
		return b.NewArray()
	}

	b := array.NewStringBuilder(mem)
	defer b.Release()
	for _, c := range col.Cells {
		if c.IsMissing() {
			b.AppendNull()
		} else {
			b.Append(c.String)
		}
	}
	return b.NewArray()
}
