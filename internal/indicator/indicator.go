// Package indicator computes named indicator output series from a
// closing-price series. Every Compute returns slices of the same length as
// the input; entries before an indicator's window has filled carry the
// Unavailable sentinel instead of a value.
package indicator

import (
	"math"

	"github.com/rxtech-lab/argo-strategy/internal/types"
)

// Indicator is one technical indicator kind. Implementations are stateless;
// all configuration arrives through the params argument so one registered
// instance can serve any number of concurrent runs.
type Indicator interface {
	// Name returns the indicator kind.
	Name() types.IndicatorType
	// Fields returns the output lines this indicator produces.
	Fields() []types.IndicatorField
	// Compute calculates every output line over the closing-price series.
	// Each returned slice has the same length as closes.
	Compute(closes []float64, params types.IndicatorParams) (map[types.IndicatorField][]float64, error)
}

// Unavailable returns the sentinel for "no value at this bar yet".
func Unavailable() float64 {
	return math.NaN()
}

// Available reports whether v is a real indicator value rather than the
// not-yet-available sentinel.
func Available(v float64) bool {
	return !math.IsNaN(v)
}

// unavailableSeries allocates a series of n sentinel entries.
func unavailableSeries(n int) []float64 {
	values := make([]float64, n)
	for i := range values {
		values[i] = Unavailable()
	}

	return values
}

// smaSeries computes a simple moving average over values. Entries where the
// window has not filled, or where any window member is unavailable, stay
// unavailable.
func smaSeries(values []float64, period int) []float64 {
	out := unavailableSeries(len(values))

	for i := period - 1; i < len(values); i++ {
		sum := 0.0
		ok := true

		for j := i - period + 1; j <= i; j++ {
			if !Available(values[j]) {
				ok = false

				break
			}

			sum += values[j]
		}

		if ok {
			out[i] = sum / float64(period)
		}
	}

	return out
}

// emaSeries computes an exponential moving average over values. The first
// output is the simple average of the first full window of available values;
// later outputs use the standard smoothing factor 2/(period+1). A leading
// unavailable prefix in the input (e.g. a MACD line) is skipped.
func emaSeries(values []float64, period int) []float64 {
	out := unavailableSeries(len(values))

	first := -1

	for i, v := range values {
		if Available(v) {
			first = i

			break
		}
	}

	if first < 0 || len(values)-first < period {
		return out
	}

	seed := 0.0
	for i := first; i < first+period; i++ {
		seed += values[i]
	}

	seed /= float64(period)
	out[first+period-1] = seed

	k := 2.0 / (float64(period) + 1.0)
	prev := seed

	for i := first + period; i < len(values); i++ {
		prev = (values[i]-prev)*k + prev
		out[i] = prev
	}

	return out
}
