// Package plot turns labeled latency series into a rendered line chart.
//
// Series are laid out as row-oriented data points, pivoted into columns and
// drawn with go-chart. The rendered image is exposed as an export.Surface so
// it can be saved with the export package.
package plot

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"math"
	"strings"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/tsenart/vegeta/src/export"
	"github.com/tsenart/vegeta/src/logger"
)

const (
	defaultWidth = 1100
	xTickCount   = 8
	yTickCount   = 6

	// smallest latency on a log axis, in milliseconds (1μs)
	logFloor = 0.001
)

var errNoData = errors.New("plot: no data points")

// Chart is a latency-over-time line chart. It's not safe for concurrent use.
type Chart struct {
	title     string
	width     int
	height    int
	threshold int
	logScale  bool
	series    []Series

	labels []string
	cols   [][]float64
	img    image.Image
}

// Opt is a functional option type for Chart.
type Opt func(*Chart)

// Title sets the chart title.
func Title(title string) Opt {
	return func(c *Chart) { c.title = title }
}

// Size sets the canvas width; height follows ChartDimensions.
func Size(width int) Opt {
	return func(c *Chart) { c.width, c.height = ChartDimensions(width) }
}

// DownsampleTo limits every series to threshold points. Zero disables it.
func DownsampleTo(threshold int) Opt {
	return func(c *Chart) { c.threshold = threshold }
}

// LogScale toggles the logarithmic latency axis. It's on by default.
func LogScale(on bool) Opt {
	return func(c *Chart) { c.logScale = on }
}

// New returns a Chart with the given Opts applied.
func New(opts ...Opt) *Chart {
	c := &Chart{logScale: true}
	c.width, c.height = ChartDimensions(defaultWidth)
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Add queues s for the next Render.
func (c *Chart) Add(s Series) { c.series = append(c.series, s) }

// Render draws the chart. On failure the canvas still holds a blank image
// with a notice, and the error is returned.
func (c *Chart) Render() error {
	defer logger.TimeTrack(time.Now(), "render chart")

	series := make([]Series, 0, len(c.series))
	for _, s := range c.series {
		points, err := Downsample(s.Points, c.threshold)
		if err != nil {
			c.fallback("Invalid downsample threshold")
			return fmt.Errorf("series %s: %w", s.Name(), err)
		}
		series = append(series, Series{Attack: s.Attack, Label: s.Label, Points: points})
	}

	rows, labels := Rows(series)
	c.labels, c.cols = labels, PivotData(rows)
	if len(rows) == 0 {
		c.fallback("No data")
		return errNoData
	}

	ch := c.build()
	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		logger.Warnf("chart render error: %v; showing blank fallback", err)
		c.fallback("Chart could not be rendered")
		return fmt.Errorf("render chart: %w", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		c.fallback("Chart could not be rendered")
		return fmt.Errorf("decode chart: %w", err)
	}
	c.img = img
	return nil
}

func (c *Chart) build() *chart.Chart {
	colors := LabelColors(c.labels[1:])
	xs := c.cols[0]

	maxX, minY, maxY := 0.0, math.Inf(1), 0.0
	for k := 1; k < len(c.cols); k++ {
		for i, y := range c.cols[k] {
			if math.IsNaN(y) {
				continue
			}
			maxX, maxY = math.Max(maxX, xs[i]), math.Max(maxY, y)
			if y > 0 {
				minY = math.Min(minY, y)
			}
		}
	}
	yAxis, scale := c.yAxis(minY, maxY)

	var series []chart.Series
	for k := 1; k < len(c.cols); k++ {
		var sx, sy []float64
		for i, y := range c.cols[k] {
			if math.IsNaN(y) {
				continue
			}
			sx, sy = append(sx, xs[i]), append(sy, scale(y))
		}
		if len(sx) == 0 {
			continue
		}
		series = append(series, chart.ContinuousSeries{
			Name: c.labels[k],
			Style: chart.Style{
				StrokeColor: drawing.ColorFromHex(strings.TrimPrefix(colors[k-1], "#")),
				StrokeWidth: 1.3,
				DotColor:    drawing.ColorFromHex(strings.TrimPrefix(colors[k-1], "#")),
				DotWidth:    dotWidth(len(sx)),
			},
			XValues: sx,
			YValues: sy,
		})
	}

	// a single instant still gets a one second wide axis
	if maxX <= 0 {
		maxX = 1
	}
	var xTicks []chart.Tick
	for _, v := range TimeAxisTicks(maxX, xTickCount) {
		xTicks = append(xTicks, chart.Tick{Value: v, Label: FormatSeconds(v)})
	}

	ch := &chart.Chart{
		Title:      c.title,
		Width:      c.width,
		Height:     c.height,
		Background: chart.Style{Padding: chart.Box{Top: 14, Left: 16, Right: 12, Bottom: 28}},
		XAxis: chart.XAxis{
			Name:           "Seconds elapsed",
			ValueFormatter: secondsTickFormatter,
			Range:          &chart.ContinuousRange{Min: 0, Max: maxX},
			Ticks:          xTicks,
		},
		YAxis:  yAxis,
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(ch)}
	return ch
}

// yAxis lays out the latency axis for values in [minY, maxY] and returns the
// mapping from a latency to its plotted value. minY is the smallest positive
// latency, +Inf when there is none.
func (c *Chart) yAxis(minY, maxY float64) (chart.YAxis, func(float64) float64) {
	axis := chart.YAxis{Name: "Latency (ms)", ValueFormatter: DurationTickFormatter}

	if !c.logScale {
		for _, v := range NumericTicks(0, maxY, yTickCount) {
			axis.Ticks = append(axis.Ticks, chart.Tick{Value: v, Label: FormatDuration(v)})
		}
		axis.Range = &chart.ContinuousRange{Min: axis.Ticks[0].Value, Max: axis.Ticks[len(axis.Ticks)-1].Value}
		return axis, func(y float64) float64 { return y }
	}

	if math.IsInf(minY, 1) {
		minY, maxY = logFloor, logFloor
	}
	ticks := LogTicks(minY, math.Max(maxY, minY))
	for _, v := range ticks {
		axis.Ticks = append(axis.Ticks, chart.Tick{Value: log10(v), Label: FormatDuration(v)})
	}
	axis.ValueFormatter = logDurationTickFormatter
	axis.Range = &chart.ContinuousRange{Min: axis.Ticks[0].Value, Max: axis.Ticks[len(axis.Ticks)-1].Value}

	// zero latencies sit on the bottom decade
	floor := ticks[0]
	return axis, func(y float64) float64 { return math.Log10(math.Max(y, floor)) }
}

// dotWidth marks the points of sparse series, which a line alone would hide.
func dotWidth(n int) float64 {
	if n > 2 {
		return 0
	}
	return 3
}

func logDurationTickFormatter(v interface{}) string {
	f, ok := v.(float64)
	if !ok {
		return NoValue
	}
	return FormatDuration(math.Pow(10, f))
}

func secondsTickFormatter(v interface{}) string {
	f, _ := v.(float64)
	return FormatSeconds(f)
}

func (c *Chart) fallback(notice string) {
	c.img = drawNotice(blank(c.width, c.height), notice)
}

// Canvas returns the rendered surface, or nil before Render and on a nil Chart.
func (c *Chart) Canvas() export.Surface {
	if c == nil {
		return nil
	}
	return export.NewImageSurface(c.img)
}

// Image returns the rendered image, or nil before Render.
func (c *Chart) Image() image.Image { return c.img }

// Columns returns the column labels and column-oriented data of the last Render.
func (c *Chart) Columns() ([]string, [][]float64) { return c.labels, c.cols }
