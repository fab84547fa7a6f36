package indicator

import (
	"github.com/rxtech-lab/argo-strategy/internal/types"
	"github.com/rxtech-lab/argo-strategy/pkg/errors"
)

const defaultSMAPeriod = 20

// SMA implements the simple moving average.
type SMA struct{}

// NewSMA creates a new SMA indicator.
func NewSMA() Indicator {
	return &SMA{}
}

// Name returns the name of the indicator.
func (s *SMA) Name() types.IndicatorType {
	return types.IndicatorTypeSMA
}

// Fields returns the output lines of the indicator.
func (s *SMA) Fields() []types.IndicatorField {
	return []types.IndicatorField{types.IndicatorFieldValue}
}

// Compute calculates the moving-average line. Entries before the window has
// filled are unavailable.
func (s *SMA) Compute(closes []float64, params types.IndicatorParams) (map[types.IndicatorField][]float64, error) {
	period := params.Period
	if period == 0 {
		period = defaultSMAPeriod
	}

	if period < 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidPeriod, "sma: period must be a positive integer, got %d", period)
	}

	return map[types.IndicatorField][]float64{
		types.IndicatorFieldValue: smaSeries(closes, period),
	}, nil
}
