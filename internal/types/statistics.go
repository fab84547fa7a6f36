package types

import (
	"fmt"
	"os"
	"time"

	"github.com/moznion/go-optional"
	"gopkg.in/yaml.v3"
)

// TradeHoldingTime summarizes how long trades were held.
type TradeHoldingTime struct {
	// Minimum holding time of a trade in seconds
	Min int `yaml:"min" json:"min"`
	// Maximum holding time of a trade in seconds
	Max int `yaml:"max" json:"max"`
	// Average holding time of a trade in seconds
	Avg int `yaml:"avg" json:"avg"`
}

// Statistics is the aggregate view over an ordered trade list. All percent
// values are in the same unit as the configured take-profit/stop-loss, i.e.
// percent of the entry price.
type Statistics struct {
	// Count of all trades.
	TotalTrades int `yaml:"total_trades" json:"total_trades"`
	// Count of trades with positive cost-adjusted pnl.
	WinningTrades int `yaml:"winning_trades" json:"winning_trades"`
	// Count of trades with negative cost-adjusted pnl.
	LosingTrades int `yaml:"losing_trades" json:"losing_trades"`
	// Count of trades closed by the holding-time limit. Shown for display
	// only; timeout trades are classified as winning or losing by their
	// realized sign like any other trade.
	TimeoutTrades int `yaml:"timeout_trades" json:"timeout_trades"`
	// Win rate = winning trades / total trades.
	WinRate float64 `yaml:"win_rate" json:"win_rate"`
	// Sum of all positive trade pnl.
	TotalProfit float64 `yaml:"total_profit" json:"total_profit"`
	// Absolute sum of all negative trade pnl.
	TotalLoss float64 `yaml:"total_loss" json:"total_loss"`
	// ProfitFactor = TotalProfit / TotalLoss. None when TotalLoss is zero.
	ProfitFactor optional.Option[float64] `yaml:"-" json:"profit_factor,omitempty"`
	// Mean pnl over all trades.
	AveragePnl float64 `yaml:"average_pnl" json:"average_pnl"`
	// Expectancy is the average per-trade pnl in percent.
	Expectancy float64 `yaml:"expectancy" json:"expectancy"`
	// Largest peak-to-trough decline of the cumulative pnl curve walked in
	// trade-close order.
	MaxDrawdown float64 `yaml:"max_drawdown" json:"max_drawdown"`
	// Holding time of all trades.
	HoldingTime TradeHoldingTime `yaml:"holding_time" json:"holding_time"`
}

// MarshalYAML flattens the optional profit factor to a nullable value so the
// written result reads `profit_factor: null` instead of an opaque struct.
func (s Statistics) MarshalYAML() (any, error) {
	type plain struct {
		TotalTrades   int              `yaml:"total_trades"`
		WinningTrades int              `yaml:"winning_trades"`
		LosingTrades  int              `yaml:"losing_trades"`
		TimeoutTrades int              `yaml:"timeout_trades"`
		WinRate       float64          `yaml:"win_rate"`
		TotalProfit   float64          `yaml:"total_profit"`
		TotalLoss     float64          `yaml:"total_loss"`
		ProfitFactor  *float64         `yaml:"profit_factor"`
		AveragePnl    float64          `yaml:"average_pnl"`
		Expectancy    float64          `yaml:"expectancy"`
		MaxDrawdown   float64          `yaml:"max_drawdown"`
		HoldingTime   TradeHoldingTime `yaml:"holding_time"`
	}

	out := plain{
		TotalTrades:   s.TotalTrades,
		WinningTrades: s.WinningTrades,
		LosingTrades:  s.LosingTrades,
		TimeoutTrades: s.TimeoutTrades,
		WinRate:       s.WinRate,
		TotalProfit:   s.TotalProfit,
		TotalLoss:     s.TotalLoss,
		ProfitFactor:  nil,
		AveragePnl:    s.AveragePnl,
		Expectancy:    s.Expectancy,
		MaxDrawdown:   s.MaxDrawdown,
		HoldingTime:   s.HoldingTime,
	}

	if s.ProfitFactor.IsSome() {
		value := s.ProfitFactor.Unwrap()
		out.ProfitFactor = &value
	}

	return out, nil
}

// BacktestResult is the complete outcome of one simulation run: the ordered
// trade list plus aggregate statistics. Immutable after the run completes.
type BacktestResult struct {
	// ID is the unique identifier for this backtest run.
	ID string `yaml:"id" json:"id"`
	// Timestamp is when this backtest run was executed.
	Timestamp time.Time `yaml:"timestamp" json:"timestamp"`
	// Symbol of the traded instrument.
	Symbol string `yaml:"symbol" json:"symbol"`
	// Trades in close order.
	Trades []TradeEvent `yaml:"trades" json:"trades"`
	// Statistics aggregated from the trade list.
	Statistics Statistics `yaml:"statistics" json:"statistics"`
}

// WriteResult writes the backtest result to a YAML file.
func WriteResult(path string, result BacktestResult) error {
	data, err := yaml.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal backtest result to YAML: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write backtest result to file: %w", err)
	}

	return nil
}
