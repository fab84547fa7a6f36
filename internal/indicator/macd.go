package indicator

import (
	"github.com/rxtech-lab/argo-strategy/internal/types"
	"github.com/rxtech-lab/argo-strategy/pkg/errors"
)

const (
	defaultMACDFastPeriod   = 12
	defaultMACDSlowPeriod   = 26
	defaultMACDSignalPeriod = 9
)

// MACD implements moving-average convergence/divergence with three output
// lines: the macd line, the signal line, and the histogram.
type MACD struct{}

// NewMACD creates a new MACD indicator.
func NewMACD() Indicator {
	return &MACD{}
}

// Name returns the name of the indicator.
func (m *MACD) Name() types.IndicatorType {
	return types.IndicatorTypeMACD
}

// Fields returns the output lines of the indicator.
func (m *MACD) Fields() []types.IndicatorField {
	return []types.IndicatorField{
		types.IndicatorFieldMACD,
		types.IndicatorFieldSignal,
		types.IndicatorFieldHistogram,
	}
}

// Compute calculates all three MACD lines. The macd line is the fast EMA
// minus the slow EMA where both are available; the signal line is an EMA of
// the macd line. The histogram is macd minus signal where both are
// available, and 0 elsewhere.
func (m *MACD) Compute(closes []float64, params types.IndicatorParams) (map[types.IndicatorField][]float64, error) {
	fast := params.FastPeriod
	if fast == 0 {
		fast = defaultMACDFastPeriod
	}

	slow := params.SlowPeriod
	if slow == 0 {
		slow = defaultMACDSlowPeriod
	}

	signalPeriod := params.SignalPeriod
	if signalPeriod == 0 {
		signalPeriod = defaultMACDSignalPeriod
	}

	if fast < 0 || slow < 0 || signalPeriod < 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidPeriod, "macd: periods must be positive integers, got fast=%d slow=%d signal=%d", fast, slow, signalPeriod)
	}

	if fast >= slow {
		return nil, errors.Newf(errors.ErrCodeInvalidParameter, "macd: fast period %d must be smaller than slow period %d", fast, slow)
	}

	fastEMA := emaSeries(closes, fast)
	slowEMA := emaSeries(closes, slow)

	macdLine := unavailableSeries(len(closes))
	for i := range closes {
		if Available(fastEMA[i]) && Available(slowEMA[i]) {
			macdLine[i] = fastEMA[i] - slowEMA[i]
		}
	}

	signalLine := emaSeries(macdLine, signalPeriod)

	histogram := make([]float64, len(closes))
	for i := range closes {
		if Available(macdLine[i]) && Available(signalLine[i]) {
			histogram[i] = macdLine[i] - signalLine[i]
		}
	}

	return map[types.IndicatorField][]float64{
		types.IndicatorFieldMACD:      macdLine,
		types.IndicatorFieldSignal:    signalLine,
		types.IndicatorFieldHistogram: histogram,
	}, nil
}
