package types

type IndicatorType string

const (
	IndicatorTypeSMA            IndicatorType = "sma"
	IndicatorTypeEMA            IndicatorType = "ema"
	IndicatorTypeRSI            IndicatorType = "rsi"
	IndicatorTypeMACD           IndicatorType = "macd"
	IndicatorTypeBollingerBands IndicatorType = "bollinger_bands"
)

// IndicatorField names one output line of an indicator. Single-line
// indicators (SMA, EMA, RSI) expose IndicatorFieldValue; MACD exposes
// macd/signal/histogram; Bollinger Bands exposes upper/middle/lower.
type IndicatorField string

const (
	IndicatorFieldValue     IndicatorField = "value"
	IndicatorFieldMACD      IndicatorField = "macd"
	IndicatorFieldSignal    IndicatorField = "signal"
	IndicatorFieldHistogram IndicatorField = "histogram"
	IndicatorFieldUpper     IndicatorField = "upper"
	IndicatorFieldMiddle    IndicatorField = "middle"
	IndicatorFieldLower     IndicatorField = "lower"
)

// IndicatorParams is the full parameter set an indicator can be configured
// with. It is a small fixed struct rather than a formatted string so that it
// can be part of a comparable cache key. Indicators read only the fields they
// care about; zero values select the indicator's defaults.
type IndicatorParams struct {
	// Period is the lookback window for single-line indicators and the
	// middle band of Bollinger Bands.
	Period int `yaml:"period,omitempty" json:"period,omitempty" jsonschema:"title=Period,minimum=0"`
	// FastPeriod, SlowPeriod and SignalPeriod configure MACD.
	FastPeriod   int `yaml:"fast_period,omitempty" json:"fast_period,omitempty" jsonschema:"title=Fast Period,minimum=0"`
	SlowPeriod   int `yaml:"slow_period,omitempty" json:"slow_period,omitempty" jsonschema:"title=Slow Period,minimum=0"`
	SignalPeriod int `yaml:"signal_period,omitempty" json:"signal_period,omitempty" jsonschema:"title=Signal Period,minimum=0"`
	// StdDevMultiplier configures the width of Bollinger Bands.
	StdDevMultiplier float64 `yaml:"std_dev_multiplier,omitempty" json:"std_dev_multiplier,omitempty" jsonschema:"title=Standard Deviation Multiplier,minimum=0"`
}

// IndicatorRef identifies one indicator output line: which indicator, with
// which parameters, and which of its fields.
type IndicatorRef struct {
	Kind   IndicatorType   `yaml:"kind" json:"kind" jsonschema:"title=Indicator Kind"`
	Params IndicatorParams `yaml:"params,omitempty" json:"params,omitempty" jsonschema:"title=Indicator Parameters"`
	Field  IndicatorField  `yaml:"field,omitempty" json:"field,omitempty" jsonschema:"title=Indicator Field"`
}
