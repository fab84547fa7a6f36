package types

import "time"

// Side is the direction of a simulated trade.
type Side string

const (
	SideBuy  Side = "buy"
	SideSell Side = "sell"
)

// IsValid reports whether the side is buy or sell.
func (s Side) IsValid() bool {
	return s == SideBuy || s == SideSell
}

// ExitReason records why a simulated position was closed.
type ExitReason string

const (
	ExitReasonTakeProfit ExitReason = "take_profit"
	ExitReasonStopLoss   ExitReason = "stop_loss"
	ExitReasonTimeout    ExitReason = "timeout"
)

// ExitUnit selects how take-profit and stop-loss magnitudes are interpreted.
type ExitUnit string

const (
	// ExitUnitPercent interprets the magnitude as percent of the entry price.
	ExitUnitPercent ExitUnit = "percent"
	// ExitUnitPrice interprets the magnitude as an absolute price increment.
	ExitUnitPrice ExitUnit = "price"
)

// ExitLevel is one exit threshold: a magnitude plus its unit.
type ExitLevel struct {
	Value float64  `yaml:"value" json:"value" validate:"gt=0" jsonschema:"title=Value,minimum=0"`
	Unit  ExitUnit `yaml:"unit" json:"unit" validate:"required,oneof=percent price" jsonschema:"title=Unit,enum=percent,enum=price"`
}

// EntryTiming is the rule for which bar's price opens a position after a
// signal. Next-bar open is the only supported mode; entering on the signal
// bar's own close would look ahead.
type EntryTiming string

const (
	EntryTimingNextBarOpen EntryTiming = "next_bar_open"
)

// TradeEvent is one completed simulated trade.
type TradeEvent struct {
	EntryTime  time.Time  `yaml:"entry_time" json:"entry_time"`
	EntryPrice float64    `yaml:"entry_price" json:"entry_price"`
	ExitTime   time.Time  `yaml:"exit_time" json:"exit_time"`
	ExitPrice  float64    `yaml:"exit_price" json:"exit_price"`
	ExitReason ExitReason `yaml:"exit_reason" json:"exit_reason"`
	Side       Side       `yaml:"side" json:"side"`
	// PnlPercent is the realized profit/loss in percent of the entry price,
	// after the round-trip trading cost has been deducted.
	PnlPercent float64 `yaml:"pnl_percent" json:"pnl_percent"`
}

// HoldingDuration returns how long the position was held.
func (t TradeEvent) HoldingDuration() time.Duration {
	return t.ExitTime.Sub(t.EntryTime)
}
