package plot

// PivotData converts row-oriented data into the column-oriented layout the chart
// renderer consumes: column j holds rows[0][j], rows[1][j], ... in row order.
//
// The column count comes from the first row. Values past it in longer rows are
// dropped; shorter rows add nothing to the columns they lack.
//
// Empty input yields two empty columns rather than zero. Chart callers always
// expect an X column plus at least one Y column, so keep that shape.
func PivotData[T any](rows [][]T) [][]T {
	if len(rows) == 0 {
		return [][]T{{}, {}}
	}

	numCols := len(rows[0])
	cols := make([][]T, numCols)
	for j := range cols {
		cols[j] = make([]T, 0, len(rows))
	}

	for _, row := range rows {
		for j := 0; j < numCols && j < len(row); j++ {
			cols[j] = append(cols[j], row[j])
		}
	}

	return cols
}
