package plot

import (
	"bytes"
	"context"
	"math"
	"testing"

	"github.com/apache/arrow/go/v17/arrow/array"
	"github.com/apache/arrow/go/v17/arrow/memory"
	"github.com/apache/arrow/go/v17/parquet/file"
	"github.com/apache/arrow/go/v17/parquet/pqarrow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord(t *testing.T) {
	rows, labels := Rows([]Series{
		{Attack: "a", Label: "OK", Points: []Point{{0, 1}, {2, 3}}},
		{Attack: "a", Label: "ERROR", Points: []Point{{1, 9}}},
	})
	cols := PivotData(rows)

	rec, err := Record(labels, cols)
	require.NoError(t, err)
	defer rec.Release()

	assert.EqualValues(t, 3, rec.NumRows())
	require.EqualValues(t, 3, rec.NumCols())
	assert.Equal(t, "Seconds", rec.ColumnName(0))
	assert.Equal(t, "a: ERROR", rec.ColumnName(1))

	errs := rec.Column(1).(*array.Float64)
	assert.True(t, errs.IsNull(0))
	assert.Equal(t, 9.0, errs.Value(1))
	assert.True(t, errs.IsNull(2))
}

func TestRecord_EmptyPivotNamesColumns(t *testing.T) {
	rows, labels := Rows(nil)
	rec, err := Record(labels, PivotData(rows))
	require.NoError(t, err)
	defer rec.Release()

	assert.EqualValues(t, 0, rec.NumRows())
	assert.Equal(t, "column_1", rec.ColumnName(1))
}

func TestRecord_RejectsRaggedColumns(t *testing.T) {
	_, err := Record([]string{"x", "y"}, [][]float64{{1, 2}, {1}})
	assert.Error(t, err)
}

func TestWriteParquet(t *testing.T) {
	cols := [][]float64{{0, 1, 2}, {10, math.NaN(), 30}}

	var buf bytes.Buffer
	require.NoError(t, WriteParquet(&buf, []string{"Seconds", "a: OK"}, cols))

	rdr, err := file.NewParquetReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer rdr.Close()

	fr, err := pqarrow.NewFileReader(rdr, pqarrow.ArrowReadProperties{}, memory.DefaultAllocator)
	require.NoError(t, err)

	tbl, err := fr.ReadTable(context.Background())
	require.NoError(t, err)
	defer tbl.Release()

	assert.EqualValues(t, 3, tbl.NumRows())
	assert.EqualValues(t, 2, tbl.NumCols())
	assert.Equal(t, "a: OK", tbl.Schema().Field(1).Name)
	assert.EqualValues(t, 1, tbl.Column(1).NullN())
}
