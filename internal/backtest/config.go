package backtest

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-strategy/internal/types"
	"github.com/rxtech-lab/argo-strategy/pkg/errors"
)

// Config describes one backtest run: the instrument, the simulated date
// range, the trade side, and the exit model. The bar series and the compiled
// condition tree are passed to Run separately so one Config can drive many
// runs.
type Config struct {
	Symbol string `yaml:"symbol" json:"symbol" validate:"required" jsonschema:"title=Symbol,description=Instrument identifier the bar series belongs to"`
	// StartTime/EndTime bound the simulated range. Bars before StartTime are
	// still used as indicator lookback.
	StartTime optional.Option[time.Time] `yaml:"start_time" json:"start_time" jsonschema:"title=Start Time"`
	EndTime   optional.Option[time.Time] `yaml:"end_time" json:"end_time" jsonschema:"title=End Time"`
	// Interval is the bar timeframe label (e.g. 1h). Informational; the bar
	// series itself defines the spacing.
	Interval string `yaml:"interval,omitempty" json:"interval,omitempty" jsonschema:"title=Interval"`

	Side types.Side `yaml:"side" json:"side" validate:"required,oneof=buy sell" jsonschema:"title=Side,enum=buy,enum=sell"`
	// EntryTiming defaults to next_bar_open, the only supported mode.
	EntryTiming types.EntryTiming `yaml:"entry_timing,omitempty" json:"entry_timing,omitempty" validate:"omitempty,oneof=next_bar_open" jsonschema:"title=Entry Timing,enum=next_bar_open"`

	TakeProfit types.ExitLevel `yaml:"take_profit" json:"take_profit" jsonschema:"title=Take Profit"`
	StopLoss   types.ExitLevel `yaml:"stop_loss" json:"stop_loss" jsonschema:"title=Stop Loss"`
	// MaxHoldingMinutes closes a position at the current close once reached.
	MaxHoldingMinutes int `yaml:"max_holding_minutes" json:"max_holding_minutes" validate:"gt=0" jsonschema:"title=Max Holding Minutes,minimum=1"`
	// TradingCostPercent is the round-trip cost deducted from every trade's
	// realized pnl percent.
	TradingCostPercent float64 `yaml:"trading_cost_percent" json:"trading_cost_percent" validate:"gte=0" jsonschema:"title=Trading Cost Percent,minimum=0"`
}

// UnmarshalYAML implements custom unmarshaling for Config so the optional
// start/end times can be written as plain timestamps.
func (c *Config) UnmarshalYAML(unmarshal func(interface{}) error) error {
	type plain struct {
		Symbol             string            `yaml:"symbol"`
		StartTime          *time.Time        `yaml:"start_time"`
		EndTime            *time.Time        `yaml:"end_time"`
		Interval           string            `yaml:"interval"`
		Side               types.Side        `yaml:"side"`
		EntryTiming        types.EntryTiming `yaml:"entry_timing"`
		TakeProfit         types.ExitLevel   `yaml:"take_profit"`
		StopLoss           types.ExitLevel   `yaml:"stop_loss"`
		MaxHoldingMinutes  int               `yaml:"max_holding_minutes"`
		TradingCostPercent float64           `yaml:"trading_cost_percent"`
	}

	var config plain
	if err := unmarshal(&config); err != nil {
		return err
	}

	c.Symbol = config.Symbol
	c.Interval = config.Interval
	c.Side = config.Side
	c.EntryTiming = config.EntryTiming
	c.TakeProfit = config.TakeProfit
	c.StopLoss = config.StopLoss
	c.MaxHoldingMinutes = config.MaxHoldingMinutes
	c.TradingCostPercent = config.TradingCostPercent

	if config.StartTime != nil {
		c.StartTime = optional.Some(*config.StartTime)
	}

	if config.EndTime != nil {
		c.EndTime = optional.Some(*config.EndTime)
	}

	return nil
}

// Validate checks the config once before a simulation starts. A failing
// config is rejected as a whole; no partial result is ever produced from it.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeBacktestConfigError, "invalid backtest config", err)
	}

	if c.TakeProfit.Value <= 0 {
		return errors.Newf(errors.ErrCodeInvalidTakeProfit, "take profit must be positive, got %f", c.TakeProfit.Value)
	}

	if c.StopLoss.Value <= 0 {
		return errors.Newf(errors.ErrCodeInvalidStopLoss, "stop loss must be positive, got %f", c.StopLoss.Value)
	}

	if c.StartTime.IsSome() && c.EndTime.IsSome() && c.EndTime.Unwrap().Before(c.StartTime.Unwrap()) {
		return errors.Newf(errors.ErrCodeInvalidDateRange, "end time %s is before start time %s",
			c.EndTime.Unwrap().Format(time.RFC3339), c.StartTime.Unwrap().Format(time.RFC3339))
	}

	return nil
}

// entryTiming returns the effective entry timing; an empty value selects
// next-bar open.
func (c *Config) entryTiming() types.EntryTiming {
	if c.EntryTiming == "" {
		return types.EntryTimingNextBarOpen
	}

	return c.EntryTiming
}
