package plot

import (
	"math"
	"strconv"
)

// Chart size bounds. Height follows a ~3:1 aspect ratio within [minHeight, maxHeight].
const (
	minWidth  = 800
	minHeight = 280
	maxHeight = 520
)

// ChartDimensions clamps a desired canvas width and derives the matching height.
func ChartDimensions(rawW int) (int, int) {
	w := rawW
	if w < minWidth {
		w = minWidth
	}
	h := int(float32(w) * 0.33)
	if h < minHeight {
		h = minHeight
	}
	if h > maxHeight {
		h = maxHeight
	}
	return w, h
}

// niceStep rounds raw up to the closest 1, 2, 2.5 or 5 times a power of ten.
func niceStep(raw float64) float64 {
	mag := pow10Floor(raw)
	switch norm := raw / mag; {
	case norm <= 1:
		return mag
	case norm <= 2:
		return 2 * mag
	case norm <= 2.5:
		return 2.5 * mag
	case norm <= 5:
		return 5 * mag
	default:
		return 10 * mag
	}
}

// TimeAxisTicks returns up to n evenly stepped tick positions in [0, maxSeconds],
// ending exactly on maxSeconds. Degenerate domains yield {0, maxSeconds}.
func TimeAxisTicks(maxSeconds float64, n int) []float64 {
	if n < 2 || maxSeconds <= 0 || math.IsNaN(maxSeconds) || math.IsInf(maxSeconds, 0) {
		return []float64{0, maxSeconds}
	}
	step := niceStep(maxSeconds / float64(n-1))

	var out []float64
	for v := 0.0; v < maxSeconds; v += step {
		out = append(out, round6(v))
	}
	// drop a regular tick crowding the final one
	if n := len(out); n > 1 && maxSeconds-out[n-1] < step*0.25 {
		out = out[:n-1]
	}
	return append(out, round6(maxSeconds))
}

// NumericTicks spans [min, max] with about n ticks using the same step ladder,
// picking whichever candidate step lands closest to n ticks.
func NumericTicks(min, max float64, n int) []float64 {
	if n < 2 || math.IsNaN(min) || math.IsNaN(max) {
		return nil
	}
	if max <= min {
		max = min + 1
	}
	span := max - min
	mag := pow10Floor(span / float64(n-1))

	best, bestScore := mag, math.MaxFloat64
	for _, c := range []float64{1, 2, 2.5, 5, 10} {
		step := c * mag
		count := math.Max(math.Ceil(span/step)+1, 2)
		if diff := math.Abs(count - float64(n)); diff < bestScore {
			best, bestScore = step, diff
		}
	}

	start := math.Floor(min/best) * best
	end := math.Ceil(max/best) * best
	var out []float64
	for v := start; v <= end+best*0.5; v += best {
		out = append(out, round6(v))
	}
	if len(out) < 2 {
		out = []float64{min, max}
	}
	return out
}

// LogTicks returns the powers of ten enclosing [min, max]. Both bounds must be
// positive and finite; the result always spans at least one decade.
func LogTicks(min, max float64) []float64 {
	if min <= 0 || max < min || math.IsInf(max, 0) || math.IsNaN(min) || math.IsNaN(max) {
		return nil
	}
	lo := math.Floor(log10(min))
	hi := math.Ceil(log10(max))
	if hi <= lo {
		hi = lo + 1
	}
	out := make([]float64, 0, int(hi-lo)+1)
	for e := lo; e <= hi; e++ {
		out = append(out, math.Pow(10, e))
	}
	return out
}

// FormatSeconds labels an elapsed-time tick compactly.
func FormatSeconds(v float64) string {
	av := math.Abs(v)
	switch {
	case av >= 100:
		return strconv.FormatInt(int64(math.Round(v)), 10)
	case av >= 10:
		return strconv.FormatFloat(v, 'f', 1, 64)
	case av >= 1 || av == 0:
		return strconv.FormatFloat(v, 'f', 2, 64)
	default:
		return strconv.FormatFloat(v, 'f', 3, 64)
	}
}

// pow10Floor returns 10^floor(log10(x)), or 1 for non-positive x.
func pow10Floor(x float64) float64 {
	if x <= 0 {
		return 1
	}
	return math.Pow(10, math.Floor(math.Log10(x)))
}

// log10 snaps results within rounding error of an integer, so exact powers
// of ten stay on their own decade.
func log10(x float64) float64 {
	l := math.Log10(x)
	if r := math.Round(l); math.Abs(l-r) < 1e-9 {
		return r
	}
	return l
}

func round6(v float64) float64 { return math.Round(v*1e6) / 1e6 }
