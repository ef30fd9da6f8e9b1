package plot

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"time"
)

// NoValue is the tick label rendered for an absent or invalid duration.
// It spans the same nine columns as a short label so ticks stay aligned.
const NoValue = "     -   "

// FormatDuration renders a latency given in milliseconds as a fixed-width
// axis tick label: a numeral right-aligned to four columns, a two column unit
// (μs, ms or " s") and six trailing spaces that keep adjacent ticks apart.
//
// Values under 10 in the chosen unit keep one decimal. NaN marks a missing
// value; NaN, negative and infinite inputs all render as NoValue.
func FormatDuration(ms float64) string {
	if math.IsNaN(ms) || math.IsInf(ms, 0) || ms < 0 {
		return NoValue
	}

	var (
		value float64
		unit  string
	)

	switch {
	case ms < 1:
		value, unit = ms*1000, "μs"
	case ms < 1000:
		value, unit = ms, "ms"
	default:
		value, unit = ms/1000, " s"
	}

	prec := 0
	if value < 10 {
		prec = 1
	}

	return fmt.Sprintf("%4s%s      ", toFixed(value, prec), unit)
}

// FormatDurationPtr is FormatDuration for optional values; nil renders NoValue.
func FormatDurationPtr(ms *float64) string {
	if ms == nil {
		return NoValue
	}
	return FormatDuration(*ms)
}

// DurationTickFormatter is a go-chart ValueFormatter for latency axes whose
// values are milliseconds.
func DurationTickFormatter(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return NoValue
	case float64:
		return FormatDuration(t)
	case *float64:
		return FormatDurationPtr(t)
	case float32:
		return FormatDuration(float64(t))
	case int:
		return FormatDuration(float64(t))
	case int64:
		return FormatDuration(float64(t))
	case time.Duration:
		return FormatDuration(float64(t) / float64(time.Millisecond))
	default:
		return NoValue
	}
}

// toFixed formats a non-negative v with prec decimals. strconv breaks exact
// ties to even, labels round them up.
func toFixed(v float64, prec int) string {
	const bits = 128
	scale := math.Pow10(prec)

	scaled := new(big.Float).SetPrec(bits).SetFloat64(v)
	scaled.Mul(scaled, new(big.Float).SetPrec(bits).SetFloat64(scale))
	whole, _ := scaled.Int(nil)
	frac := new(big.Float).SetPrec(bits).SetInt(whole)
	frac.Sub(scaled, frac)

	if frac.Cmp(big.NewFloat(0.5)) == 0 {
		next, _ := new(big.Float).SetInt(whole).Float64()
		v = (next + 1) / scale
	}

	return strconv.FormatFloat(v, 'f', prec, 64)
}
