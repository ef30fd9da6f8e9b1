package plot

import (
	"fmt"
	"io"
	"math"

	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
	"github.com/apache/arrow/go/v17/arrow/memory"
	"github.com/apache/arrow/go/v17/parquet"
	"github.com/apache/arrow/go/v17/parquet/compress"
	"github.com/apache/arrow/go/v17/parquet/pqarrow"
)

// Record builds an Arrow record from column-oriented data, one nullable
// float64 field per column. NaN gaps become nulls. Columns without a label
// are named column_<index>. The caller must Release the record.
func Record(labels []string, cols [][]float64) (arrow.Record, error) {
	fields := make([]arrow.Field, len(cols))
	for j := range cols {
		name := fmt.Sprintf("column_%d", j)
		if j < len(labels) && labels[j] != "" {
			name = labels[j]
		}
		if j > 0 && len(cols[j]) != len(cols[0]) {
			return nil, fmt.Errorf("column %q has %d values, want %d", name, len(cols[j]), len(cols[0]))
		}
		fields[j] = arrow.Field{Name: name, Type: arrow.PrimitiveTypes.Float64, Nullable: true}
	}

	b := array.NewRecordBuilder(memory.NewGoAllocator(), arrow.NewSchema(fields, nil))
	defer b.Release()

	for j, col := range cols {
		fb := b.Field(j).(*array.Float64Builder)
		fb.Reserve(len(col))
		for _, v := range col {
			if math.IsNaN(v) {
				fb.AppendNull()
			} else {
				fb.Append(v)
			}
		}
	}

	return b.NewRecord(), nil
}

// WriteParquet writes column-oriented data to w as a Snappy compressed Parquet file.
func WriteParquet(w io.Writer, labels []string, cols [][]float64) error {
	rec, err := Record(labels, cols)
	if err != nil {
		return fmt.Errorf("failed to build record: %w", err)
	}
	defer rec.Release()

	props := parquet.NewWriterProperties(parquet.WithCompression(compress.Codecs.Snappy))
	arrowProps := pqarrow.NewArrowWriterProperties(pqarrow.WithStoreSchema())

	writer, err := pqarrow.NewFileWriter(rec.Schema(), w, props, arrowProps)
	if err != nil {
		return fmt.Errorf("failed to create parquet writer: %w", err)
	}
	if err := writer.Write(rec); err != nil {
		writer.Close()
		return fmt.Errorf("failed to write record to parquet: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close parquet writer: %w", err)
	}
	return nil
}
