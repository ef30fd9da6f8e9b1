package plot

import (
	"math"
	"sort"
	"strings"
)

// A Point in a line chart: X is seconds elapsed, Y latency in milliseconds.
type Point struct{ X, Y float64 }

// Series is one overlaid line: the points of an attack sharing a label.
type Series struct {
	Attack string  `json:"attack" yaml:"attack"`
	Label  string  `json:"label" yaml:"label"`
	Points []Point `json:"points" yaml:"points"`
}

// Name is the legend text of the series.
func (s Series) Name() string { return s.Attack + ": " + s.Label }

// ErrorLabel partitions results into OK and ERROR lines by their error text.
func ErrorLabel(errText string) string {
	if errText == "" {
		return "OK"
	}
	return "ERROR"
}

// Rows lays the series out as row-oriented data, one row per point:
// [x, y_0, ..., y_n] with NaN in every column but the point's own series.
// Series are ordered by attack then label, rows by X. The returned labels
// name each column, starting with "Seconds".
func Rows(series []Series) ([][]float64, []string) {
	sorted := make([]Series, len(series))
	copy(sorted, series)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Attack+sorted[i].Label < sorted[j].Attack+sorted[j].Label
	})

	var count int
	for _, s := range sorted {
		count += len(s.Points)
	}

	size := 1 + len(sorted)
	labels := make([]string, size)
	labels[0] = "Seconds"
	rows := make([][]float64, 0, count)

	for i, s := range sorted {
		labels[i+1] = s.Name()
		for _, p := range s.Points {
			row := make([]float64, size)
			for j := range row {
				row[j] = math.NaN()
			}
			row[0], row[i+1] = p.X, p.Y
			rows = append(rows, row)
		}
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i][0] < rows[j][0] })

	return rows, labels
}

var (
	failures = []string{
		"#EE7860",
		"#DD624E",
		"#CA4E3E",
		"#B63A30",
		"#9F2823",
		"#881618",
		"#6F050E",
	}
	successes = []string{
		"#E9D758",
		"#297373",
		"#39393A",
		"#A1CDF4",
		"#593C8F",
		"#171738",
		"#A1674A",
	}
)

// LabelColors assigns a hex color per label: reds for labels containing
// ERROR, the success palette otherwise. Each palette cycles independently.
func LabelColors(labels []string) []string {
	colors := make([]string, 0, len(labels))

	var failure, success int
	for _, label := range labels {
		var color string
		if strings.Contains(label, "ERROR") {
			color = failures[failure%len(failures)]
			failure++
		} else {
			color = successes[success%len(successes)]
			success++
		}
		colors = append(colors, color)
	}

	return colors
}
