package plot

import (
	"bytes"
	"image"
	"image/png"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsenart/vegeta/src/export"
)

func syntheticSeries(attack, label string, n int, seed int64) Series {
	rng := rand.New(rand.NewSource(seed))
	s := Series{Attack: attack, Label: label, Points: make([]Point, n)}
	for i := range s.Points {
		s.Points[i] = Point{X: float64(i) / 100, Y: 5 + rng.ExpFloat64()*20}
	}
	return s
}

func TestChart_CanvasNilBeforeRender(t *testing.T) {
	c := New()
	assert.Nil(t, c.Canvas())
	assert.Nil(t, c.Image())
}

func TestChart_Render(t *testing.T) {
	c := New(Title("TestChart"), Size(900), DownsampleTo(200))
	c.Add(syntheticSeries("500QPS", "OK", 2000, 1))
	c.Add(syntheticSeries("500QPS", "ERROR", 300, 2))

	require.NoError(t, c.Render())

	w, h := ChartDimensions(900)
	require.NotNil(t, c.Image())
	assert.Equal(t, image.Rect(0, 0, w, h), c.Image().Bounds())

	labels, cols := c.Columns()
	assert.Equal(t, []string{"Seconds", "500QPS: ERROR", "500QPS: OK"}, labels)
	require.Len(t, cols, 3)
	assert.Len(t, cols[0], 400, "each series downsampled to 200 points")

	var buf bytes.Buffer
	require.NoError(t, c.Canvas().EncodePNG(&buf))
	_, err := png.Decode(&buf)
	require.NoError(t, err)
}

func TestChart_RenderEmptyFallsBack(t *testing.T) {
	c := New()

	err := c.Render()
	assert.ErrorIs(t, err, errNoData)

	require.NotNil(t, c.Canvas(), "fallback canvas expected")
	w, h := ChartDimensions(defaultWidth)
	assert.Equal(t, image.Rect(0, 0, w, h), c.Image().Bounds())

	labels, cols := c.Columns()
	assert.Equal(t, []string{"Seconds"}, labels)
	assert.Len(t, cols, 2)
}

func TestChart_RenderBadThreshold(t *testing.T) {
	c := New(DownsampleTo(2))
	c.Add(syntheticSeries("a", "OK", 10, 1))

	assert.ErrorIs(t, c.Render(), errThreshold)
	assert.NotNil(t, c.Canvas())
}

func TestChart_ExportsThroughExporter(t *testing.T) {
	c := New()
	c.Add(syntheticSeries("a", "OK", 50, 3))
	require.NoError(t, c.Render())

	dir := t.TempDir()
	blobs := export.NewMemoryBlobs()
	var failures []error
	e := export.New(blobs, &export.DirTrigger{Dir: dir, Blobs: blobs}, export.OnError(func(err error) { failures = append(failures, err) }))
	e.ExportPNG(c, "chart.png")
	e.Wait()

	assert.Empty(t, failures)
	assert.FileExists(t, dir+"/chart.png")
}

func TestChart_RenderSingleInstant(t *testing.T) {
	cases := map[string][]Point{
		"one point":     {{X: 0, Y: 12}},
		"shared x":      {{X: 0, Y: 12}, {X: 0, Y: 14}, {X: 0, Y: 9}},
		"shared late x": {{X: 3, Y: 12}, {X: 3, Y: 12}},
		"zero latency":  {{X: 0, Y: 0}},
	}
	for name, points := range cases {
		for _, log := range []bool{true, false} {
			c := New(LogScale(log))
			c.Add(Series{Attack: "a", Label: "OK", Points: points})
			require.NoError(t, c.Render(), "%s (log=%v)", name, log)
			require.NotNil(t, c.Canvas(), name)
		}
	}
}

func TestChart_LogLatencyAxis(t *testing.T) {
	c := New()
	c.Add(Series{Attack: "a", Label: "OK", Points: []Point{{X: 0, Y: 0.5}, {X: 1, Y: 12}}})
	c.Add(Series{Attack: "a", Label: "ERROR", Points: []Point{{X: 2, Y: 30000}}})
	require.NoError(t, c.Render())

	ch := c.build()
	assert.Equal(t, -1.0, ch.YAxis.Range.GetMin())
	assert.Equal(t, 5.0, ch.YAxis.Range.GetMax())
	assert.Equal(t, " 100μs      ", ch.YAxis.Ticks[0].Label)
	assert.Equal(t, " 100 s      ", ch.YAxis.Ticks[len(ch.YAxis.Ticks)-1].Label)

	lin := New(LogScale(false))
	lin.Add(Series{Attack: "a", Label: "OK", Points: []Point{{X: 0, Y: 0.5}, {X: 1, Y: 12}}})
	require.NoError(t, lin.Render())
	assert.Equal(t, 0.0, lin.build().YAxis.Range.GetMin())
}

func TestChart_NilCanvas(t *testing.T) {
	var c *Chart
	assert.Nil(t, c.Canvas())

	blobs := export.NewMemoryBlobs()
	e := export.New(blobs, &export.DirTrigger{Dir: t.TempDir(), Blobs: blobs})
	assert.NotPanics(t, func() { e.ExportPNG(c, "") })
	e.Wait()
	assert.Zero(t, blobs.Len())
}

func TestDrawNotice(t *testing.T) {
	img := blank(200, 100)
	out := drawNotice(img, "No data")
	require.NotNil(t, out)

	// The notice box darkens/lightens pixels around the centre.
	changed := false
	for x := 60; x < 140 && !changed; x++ {
		if out.At(x, 50) != img.At(x, 50) {
			changed = true
		}
	}
	assert.True(t, changed, "expected notice pixels near the centre")
	assert.Equal(t, img, drawNotice(img, "  "), "blank text is a no-op")
}

func TestDurationTicksMatchAxisValues(t *testing.T) {
	for _, v := range NumericTicks(0, 2500, 6) {
		assert.False(t, math.IsNaN(v))
		assert.NotEqual(t, NoValue, FormatDuration(v))
	}
}
