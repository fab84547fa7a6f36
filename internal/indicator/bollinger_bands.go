package indicator

import (
	"math"

	"github.com/rxtech-lab/argo-strategy/internal/types"
	"github.com/rxtech-lab/argo-strategy/pkg/errors"
)

const (
	defaultBollingerPeriod     = 20
	defaultBollingerMultiplier = 2.0
)

// BollingerBands implements the volatility band indicator with upper, middle
// and lower output lines.
type BollingerBands struct{}

// NewBollingerBands creates a new Bollinger Bands indicator.
func NewBollingerBands() Indicator {
	return &BollingerBands{}
}

// Name returns the name of the indicator.
func (b *BollingerBands) Name() types.IndicatorType {
	return types.IndicatorTypeBollingerBands
}

// Fields returns the output lines of the indicator.
func (b *BollingerBands) Fields() []types.IndicatorField {
	return []types.IndicatorField{
		types.IndicatorFieldUpper,
		types.IndicatorFieldMiddle,
		types.IndicatorFieldLower,
	}
}

// Compute calculates the bands. The middle line is a simple moving average;
// upper and lower are the middle line plus/minus the standard deviation of
// the window scaled by the multiplier.
func (b *BollingerBands) Compute(closes []float64, params types.IndicatorParams) (map[types.IndicatorField][]float64, error) {
	period := params.Period
	if period == 0 {
		period = defaultBollingerPeriod
	}

	if period < 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidPeriod, "bollinger_bands: period must be a positive integer, got %d", period)
	}

	multiplier := params.StdDevMultiplier
	if multiplier == 0 {
		multiplier = defaultBollingerMultiplier
	}

	if multiplier < 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidParameter, "bollinger_bands: std dev multiplier must be positive, got %f", multiplier)
	}

	middle := smaSeries(closes, period)
	upper := unavailableSeries(len(closes))
	lower := unavailableSeries(len(closes))

	for i := period - 1; i < len(closes); i++ {
		if !Available(middle[i]) {
			continue
		}

		variance := 0.0
		for j := i - period + 1; j <= i; j++ {
			diff := closes[j] - middle[i]
			variance += diff * diff
		}

		stdDev := math.Sqrt(variance / float64(period))
		upper[i] = middle[i] + multiplier*stdDev
		lower[i] = middle[i] - multiplier*stdDev
	}

	return map[types.IndicatorField][]float64{
		types.IndicatorFieldUpper:  upper,
		types.IndicatorFieldMiddle: middle,
		types.IndicatorFieldLower:  lower,
	}, nil
}
