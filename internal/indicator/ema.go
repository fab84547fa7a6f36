package indicator

import (
	"github.com/rxtech-lab/argo-strategy/internal/types"
	"github.com/rxtech-lab/argo-strategy/pkg/errors"
)

const defaultEMAPeriod = 20

// EMA implements the exponential moving average.
type EMA struct{}

// NewEMA creates a new EMA indicator.
func NewEMA() Indicator {
	return &EMA{}
}

// Name returns the name of the indicator.
func (e *EMA) Name() types.IndicatorType {
	return types.IndicatorTypeEMA
}

// Fields returns the output lines of the indicator.
func (e *EMA) Fields() []types.IndicatorField {
	return []types.IndicatorField{types.IndicatorFieldValue}
}

// Compute calculates the exponential moving-average line. The first value is
// the simple average of the first window; later values use the smoothing
// factor 2/(period+1).
func (e *EMA) Compute(closes []float64, params types.IndicatorParams) (map[types.IndicatorField][]float64, error) {
	period := params.Period
	if period == 0 {
		period = defaultEMAPeriod
	}

	if period < 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidPeriod, "ema: period must be a positive integer, got %d", period)
	}

	return map[types.IndicatorField][]float64{
		types.IndicatorFieldValue: emaSeries(closes, period),
	}, nil
}
