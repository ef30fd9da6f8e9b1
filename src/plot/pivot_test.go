package plot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPivotData_Empty(t *testing.T) {
	for name, in := range map[string][][]float64{
		"nil":   nil,
		"empty": {},
	} {
		t.Run(name, func(t *testing.T) {
			got := PivotData(in)
			require.Len(t, got, 2)
			assert.NotNil(t, got[0])
			assert.NotNil(t, got[1])
			assert.Empty(t, got[0])
			assert.Empty(t, got[1])
		})
	}
}

func TestPivotData_Shape(t *testing.T) {
	rows := [][]float64{
		{0, 1, 2},
		{1, 10, 20},
		{2, 100, 200},
		{3, 1000, 2000},
	}

	cols := PivotData(rows)

	require.Len(t, cols, 3)
	for j, col := range cols {
		require.Len(t, col, len(rows), "column %d", j)
		for i := range rows {
			assert.Equal(t, rows[i][j], col[i], "cols[%d][%d]", j, i)
		}
	}
}

func TestPivotData_DoesNotMutateOrAlias(t *testing.T) {
	rows := [][]int{{1, 2}, {3, 4}}
	snapshot := [][]int{{1, 2}, {3, 4}}

	cols := PivotData(rows)
	cols[0][0] = 99

	assert.Equal(t, snapshot, rows)
}

func TestPivotData_Misaligned(t *testing.T) {
	rows := [][]string{
		{"a0", "b0"},
		{"a1", "b1", "extra"},
		{"a2"},
		{"a3", "b3"},
	}

	cols := PivotData(rows)

	require.Len(t, cols, 2)
	assert.Equal(t, []string{"a0", "a1", "a2", "a3"}, cols[0])
	assert.Equal(t, []string{"b0", "b1", "b3"}, cols[1])
}

func TestPivotData_SingleColumn(t *testing.T) {
	cols := PivotData([][]int{{7}, {8}})
	assert.Equal(t, [][]int{{7, 8}}, cols)
}
