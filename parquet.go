package sqlframe

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/apache/arrow/go/v18/arrow"
	"github.com/apache/arrow/go/v18/arrow/array"
	"github.com/apache/arrow/go/v18/arrow/memory"
	"github.com/apache/arrow/go/v18/parquet"
	pqfile "github.com/apache/arrow/go/v18/parquet/file"
	"github.com/apache/arrow/go/v18/parquet/pqarrow"

	"github.com/nao1215/sqlframe/domain/model"
)

// parquetRowGroupSize is the number of rows per row group when writing
const parquetRowGroupSize = 1024

// readParquet decodes a parquet stream. Parquet needs random access, so the
// stream is buffered in memory first.
func readParquet(reader io.Reader) (*Table, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read parquet data: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrEmptyData
	}

	pqReader, err := pqfile.NewParquetReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create parquet reader: %w", err)
	}
	defer pqReader.Close()

	arrowReader, err := pqarrow.NewFileReader(pqReader, pqarrow.ArrowReadProperties{}, memory.DefaultAllocator)
	if err != nil {
		return nil, fmt.Errorf("failed to create arrow reader: %w", err)
	}

	tbl, err := arrowReader.ReadTable(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to read table: %w", err)
	}
	defer tbl.Release()

	schema := tbl.Schema()
	header := make(model.Header, schema.NumFields())
	for i, field := range schema.Fields() {
		header[i] = field.Name
	}
	if len(header) == 0 {
		return nil, ErrEmptyData
	}

	tableReader := array.NewTableReader(tbl, 0)
	defer tableReader.Release()

	rows := make([]model.Row, 0, tbl.NumRows())
	for tableReader.Next() {
		batch := tableReader.Record()
		for i := range int(batch.NumRows()) {
			row := make(model.Row, batch.NumCols())
			for j, col := range batch.Columns() {
				row[j] = arrowValue(col, i)
			}
			rows = append(rows, row)
		}
	}
	if err := tableReader.Err(); err != nil {
		return nil, fmt.Errorf("error reading table records: %w", err)
	}

	return model.NewTable(header, rows)
}

// arrowValue extracts row i of col as a Go value matching what the SQLite
// driver would return for the same column.
func arrowValue(col arrow.Array, i int) any {
	if col.IsNull(i) {
		return nil
	}

	switch a := col.(type) {
	case *array.Boolean:
		if a.Value(i) {
			return int64(1)
		}
		return int64(0)
	case *array.Int8:
		return int64(a.Value(i))
	case *array.Int16:
		return int64(a.Value(i))
	case *array.Int32:
		return int64(a.Value(i))
	case *array.Int64:
		return a.Value(i)
	case *array.Uint8:
		return int64(a.Value(i))
	case *array.Uint16:
		return int64(a.Value(i))
	case *array.Uint32:
		return int64(a.Value(i))
	case *array.Uint64:
		return int64(a.Value(i)) //nolint:gosec // sqlite integers are 64-bit signed
	case *array.Float32:
		return float64(a.Value(i))
	case *array.Float64:
		return a.Value(i)
	case *array.String:
		return a.Value(i)
	case *array.LargeString:
		return a.Value(i)
	case *array.Binary:
		return append([]byte(nil), a.Value(i)...)
	case *array.LargeBinary:
		return append([]byte(nil), a.Value(i)...)
	case *array.Timestamp:
		unit := a.DataType().(*arrow.TimestampType).Unit
		return a.Value(i).ToTime(unit).UTC()
	default:
		return col.ValueStr(i)
	}
}

// arrowType maps an inferred column type to the arrow type used when writing
func arrowType(ct model.ColumnType) arrow.DataType {
	switch ct {
	case model.ColumnTypeInteger:
		return arrow.PrimitiveTypes.Int64
	case model.ColumnTypeReal:
		return arrow.PrimitiveTypes.Float64
	case model.ColumnTypeBlob:
		return arrow.BinaryTypes.Binary
	default:
		return arrow.BinaryTypes.String
	}
}

// writeParquet encodes t as a single parquet file. Column types come from
// the table's values; every column is nullable.
func writeParquet(writer io.Writer, t *Table) error {
	columns := t.ColumnInfo()
	fields := make([]arrow.Field, len(columns))
	for i, ci := range columns {
		fields[i] = arrow.Field{Name: ci.Name, Type: arrowType(ci.Type), Nullable: true}
	}
	schema := arrow.NewSchema(fields, nil)

	builder := array.NewRecordBuilder(memory.DefaultAllocator, schema)
	defer builder.Release()

	for _, row := range t.Rows() {
		for j, v := range row {
			if err := appendArrowValue(builder.Field(j), v); err != nil {
				return fmt.Errorf("column %s: %w", columns[j].Name, err)
			}
		}
	}

	record := builder.NewRecord()
	defer record.Release()

	tbl := array.NewTableFromRecords(schema, []arrow.Record{record})
	defer tbl.Release()

	return pqarrow.WriteTable(tbl, writer, parquetRowGroupSize,
		parquet.NewWriterProperties(), pqarrow.DefaultWriterProps())
}

var errUnexpectedBuilder = errors.New("unexpected arrow builder")

// appendArrowValue appends v to b, converting it to the builder's type.
func appendArrowValue(b array.Builder, v any) error {
	if v == nil {
		b.AppendNull()
		return nil
	}

	switch fb := b.(type) {
	case *array.Int64Builder:
		if bv, ok := v.(bool); ok {
			if bv {
				fb.Append(1)
			} else {
				fb.Append(0)
			}
			return nil
		}
		n, ok := model.AsInt64(v)
		if !ok {
			return fmt.Errorf("cannot store %T as INTEGER", v)
		}
		fb.Append(n)
	case *array.Float64Builder:
		f, ok := model.AsFloat64(v)
		if !ok {
			return fmt.Errorf("cannot store %T as REAL", v)
		}
		fb.Append(f)
	case *array.BinaryBuilder:
		if bv, ok := v.([]byte); ok {
			fb.Append(bv)
			return nil
		}
		fb.Append([]byte(model.FormatCell(v)))
	case *array.StringBuilder:
		fb.Append(model.FormatCell(v))
	default:
		return fmt.Errorf("%w: %T", errUnexpectedBuilder, b)
	}
	return nil
}
