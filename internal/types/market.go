package types

import "time"

// Bar is a single OHLCV sample for one symbol/timeframe.
type Bar struct {
	Time   time.Time `csv:"time" yaml:"time"`
	Open   float64   `csv:"open" yaml:"open"`
	High   float64   `csv:"high" yaml:"high"`
	Low    float64   `csv:"low" yaml:"low"`
	Close  float64   `csv:"close" yaml:"close"`
	Volume float64   `csv:"volume" yaml:"volume"`
}

// PriceField selects one price component of a bar.
type PriceField string

const (
	PriceFieldOpen  PriceField = "open"
	PriceFieldHigh  PriceField = "high"
	PriceFieldLow   PriceField = "low"
	PriceFieldClose PriceField = "close"
)

// Value returns the selected price component of the bar.
// Unknown fields fall back to the close price.
func (f PriceField) Value(bar Bar) float64 {
	switch f {
	case PriceFieldOpen:
		return bar.Open
	case PriceFieldHigh:
		return bar.High
	case PriceFieldLow:
		return bar.Low
	case PriceFieldClose:
		return bar.Close
	default:
		return bar.Close
	}
}

// IsValid reports whether the field names a known price component.
func (f PriceField) IsValid() bool {
	switch f {
	case PriceFieldOpen, PriceFieldHigh, PriceFieldLow, PriceFieldClose:
		return true
	default:
		return false
	}
}

// Closes extracts the closing-price series from a bar series.
func Closes(bars []Bar) []float64 {
	closes := make([]float64, len(bars))
	for i, bar := range bars {
		closes[i] = bar.Close
	}

	return closes
}
