package indicator

import (
	"github.com/rxtech-lab/argo-strategy/internal/types"
	"github.com/rxtech-lab/argo-strategy/pkg/errors"
)

const defaultRSIPeriod = 14

// RSI implements the Relative Strength Index with Wilder smoothing.
type RSI struct{}

// NewRSI creates a new RSI indicator.
func NewRSI() Indicator {
	return &RSI{}
}

// Name returns the name of the indicator.
func (r *RSI) Name() types.IndicatorType {
	return types.IndicatorTypeRSI
}

// Fields returns the output lines of the indicator.
func (r *RSI) Fields() []types.IndicatorField {
	return []types.IndicatorField{types.IndicatorFieldValue}
}

// Compute calculates the RSI line. The first value appears at index period
// (period price changes are needed); earlier entries are unavailable.
func (r *RSI) Compute(closes []float64, params types.IndicatorParams) (map[types.IndicatorField][]float64, error) {
	period := params.Period
	if period == 0 {
		period = defaultRSIPeriod
	}

	if period < 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidPeriod, "rsi: period must be a positive integer, got %d", period)
	}

	out := unavailableSeries(len(closes))
	if len(closes) <= period {
		return map[types.IndicatorField][]float64{types.IndicatorFieldValue: out}, nil
	}

	avgGain := 0.0
	avgLoss := 0.0

	for i := 1; i <= period; i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			avgGain += change
		} else {
			avgLoss -= change
		}
	}

	avgGain /= float64(period)
	avgLoss /= float64(period)
	out[period] = rsiFromAverages(avgGain, avgLoss)

	for i := period + 1; i < len(closes); i++ {
		change := closes[i] - closes[i-1]

		gain := 0.0
		loss := 0.0

		if change > 0 {
			gain = change
		} else {
			loss = -change
		}

		// Wilder smoothing
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
		out[i] = rsiFromAverages(avgGain, avgLoss)
	}

	return map[types.IndicatorField][]float64{types.IndicatorFieldValue: out}, nil
}

func rsiFromAverages(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		return 100.0
	}

	rs := avgGain / avgLoss

	return 100.0 - 100.0/(1.0+rs)
}
