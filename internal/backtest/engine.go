// Package backtest simulates trades from a compiled condition tree over a
// historical bar series and aggregates the outcome into statistics.
package backtest

import (
	"time"

	"github.com/google/uuid"
	"github.com/rxtech-lab/argo-strategy/internal/condition"
	"github.com/rxtech-lab/argo-strategy/internal/indicator"
	"github.com/rxtech-lab/argo-strategy/internal/logger"
	"github.com/rxtech-lab/argo-strategy/internal/types"
	"github.com/rxtech-lab/argo-strategy/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ProgressCallback reports how many bars of the simulated range have been
// processed. Used by the CLI to drive a progress bar.
type ProgressCallback func(processed, total int)

// Engine runs backtest simulations. One Engine can serve many runs; each Run
// call owns its own indicator cache and condition run state, so concurrent
// Run calls over different bar series are safe.
type Engine struct {
	log      *logger.Logger
	registry indicator.IndicatorRegistry
}

// NewEngine creates a backtest engine with the default indicator registry.
func NewEngine(log *logger.Logger) *Engine {
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &Engine{
		log:      log,
		registry: indicator.NewDefaultIndicatorRegistry(),
	}
}

// openPosition tracks the single position a run may hold at a time.
type openPosition struct {
	entryTime  time.Time
	entryPrice float64
	takeProfit float64
	stopLoss   float64
}

// Run simulates the strategy over the bar series and returns the completed
// result. The bar series must be ordered ascending by timestamp with no
// duplicates and cover the configured range plus indicator lookback.
func (e *Engine) Run(config Config, bars []types.Bar, tree *condition.Tree) (*types.BacktestResult, error) {
	return e.RunWithProgress(config, bars, tree, nil)
}

// RunWithProgress is Run with a progress callback invoked once per processed
// bar.
func (e *Engine) RunWithProgress(config Config, bars []types.Bar, tree *condition.Tree, progress ProgressCallback) (*types.BacktestResult, error) {
	if tree == nil {
		return nil, errors.New(errors.ErrCodeBacktestNoTree, "no condition tree provided")
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	if len(bars) == 0 {
		return nil, errors.New(errors.ErrCodeEmptyBarSeries, "bar series is empty")
	}

	for i := 1; i < len(bars); i++ {
		if !bars[i].Time.After(bars[i-1].Time) {
			return nil, errors.Newf(errors.ErrCodeUnorderedSeries, "bar series must be strictly ascending by timestamp, violated at index %d", i)
		}
	}

	startIndex, endIndex := e.rangeIndices(config, bars)
	if startIndex > endIndex {
		return nil, errors.New(errors.ErrCodeInvalidDateRange, "no bars inside the configured date range")
	}

	// Per-run state: never shared with another run.
	cache := indicator.NewCache(e.registry)
	ctx := condition.NewContext(bars, cache, e.log)
	state := condition.NewRunState(tree)

	maxHolding := time.Duration(config.MaxHoldingMinutes) * time.Minute
	total := endIndex - startIndex + 1

	var trades []types.TradeEvent

	var position *openPosition

	pendingEntry := false

	for i := startIndex; i <= endIndex; i++ {
		bar := bars[i]

		// A signal from the previous bar opens a position at this bar's open.
		if pendingEntry {
			position = e.openAt(config, bar)
			pendingEntry = false
		}

		if position != nil {
			if event, closed := e.checkExit(config, position, bar, maxHolding); closed {
				trades = append(trades, event)
				position = nil
			}
		}

		// The tree is evaluated on every bar in range, even while a position
		// is open, so stateful operators keep advancing.
		ctx.Index = i
		signal := tree.Evaluate(ctx, state)

		if signal && position == nil && i < endIndex {
			pendingEntry = true
		}

		if progress != nil {
			progress(i-startIndex+1, total)
		}
	}

	// A position that survives the last bar is closed there; no trade is
	// left dangling in the result.
	if position != nil {
		trades = append(trades, e.closeAt(config, position, bars[endIndex].Time, bars[endIndex].Close, types.ExitReasonTimeout))
	}

	result := &types.BacktestResult{
		ID:         uuid.NewString(),
		Timestamp:  time.Now(),
		Symbol:     config.Symbol,
		Trades:     trades,
		Statistics: ComputeStatistics(trades),
	}

	e.log.Info("backtest run completed",
		zap.String("id", result.ID),
		zap.String("symbol", config.Symbol),
		zap.String("entry_timing", string(config.entryTiming())),
		zap.Int("bars", total),
		zap.Int("trades", result.Statistics.TotalTrades),
		zap.Float64("win_rate", result.Statistics.WinRate),
	)

	return result, nil
}

// rangeIndices maps the optional start/end times to bar indices. Bars before
// the start index still feed indicator computation as lookback.
func (e *Engine) rangeIndices(config Config, bars []types.Bar) (int, int) {
	startIndex := 0

	if config.StartTime.IsSome() {
		start := config.StartTime.Unwrap()
		for startIndex < len(bars) && bars[startIndex].Time.Before(start) {
			startIndex++
		}
	}

	endIndex := len(bars) - 1

	if config.EndTime.IsSome() {
		end := config.EndTime.Unwrap()
		for endIndex >= 0 && bars[endIndex].Time.After(end) {
			endIndex--
		}
	}

	return startIndex, endIndex
}

// openAt opens a position at the bar's open price and derives the exit
// levels from the entry price, the configured units, and the trade side.
func (e *Engine) openAt(config Config, bar types.Bar) *openPosition {
	entry := bar.Open
	takeProfitDelta := exitDelta(config.TakeProfit, entry)
	stopLossDelta := exitDelta(config.StopLoss, entry)

	position := &openPosition{
		entryTime:  bar.Time,
		entryPrice: entry,
	}

	if config.Side == types.SideBuy {
		position.takeProfit = entry + takeProfitDelta
		position.stopLoss = entry - stopLossDelta
	} else {
		position.takeProfit = entry - takeProfitDelta
		position.stopLoss = entry + stopLossDelta
	}

	e.log.Debug("position opened",
		zap.Time("entry_time", position.entryTime),
		zap.Float64("entry_price", position.entryPrice),
		zap.Float64("take_profit", position.takeProfit),
		zap.Float64("stop_loss", position.stopLoss),
	)

	return position
}

// checkExit closes the position if the bar touches the take-profit level,
// touches the stop-loss level, or exhausts the holding-time limit, in that
// priority order.
func (e *Engine) checkExit(config Config, position *openPosition, bar types.Bar, maxHolding time.Duration) (types.TradeEvent, bool) {
	touchedTakeProfit := bar.High >= position.takeProfit
	touchedStopLoss := bar.Low <= position.stopLoss

	if config.Side == types.SideSell {
		touchedTakeProfit = bar.Low <= position.takeProfit
		touchedStopLoss = bar.High >= position.stopLoss
	}

	switch {
	case touchedTakeProfit:
		return e.closeAt(config, position, bar.Time, position.takeProfit, types.ExitReasonTakeProfit), true
	case touchedStopLoss:
		return e.closeAt(config, position, bar.Time, position.stopLoss, types.ExitReasonStopLoss), true
	case bar.Time.Sub(position.entryTime) >= maxHolding:
		return e.closeAt(config, position, bar.Time, bar.Close, types.ExitReasonTimeout), true
	default:
		return types.TradeEvent{}, false
	}
}

func (e *Engine) closeAt(config Config, position *openPosition, exitTime time.Time, exitPrice float64, reason types.ExitReason) types.TradeEvent {
	event := types.TradeEvent{
		EntryTime:  position.entryTime,
		EntryPrice: position.entryPrice,
		ExitTime:   exitTime,
		ExitPrice:  exitPrice,
		ExitReason: reason,
		Side:       config.Side,
		PnlPercent: pnlPercent(config.Side, position.entryPrice, exitPrice, config.TradingCostPercent),
	}

	e.log.Debug("position closed",
		zap.Time("exit_time", event.ExitTime),
		zap.Float64("exit_price", event.ExitPrice),
		zap.String("reason", string(event.ExitReason)),
		zap.Float64("pnl_percent", event.PnlPercent),
	)

	return event
}

// exitDelta converts an exit level to a price distance from the entry price.
func exitDelta(level types.ExitLevel, entryPrice float64) float64 {
	if level.Unit == types.ExitUnitPercent {
		return entryPrice * level.Value / 100.0
	}

	return level.Value
}

// pnlPercent computes the realized profit/loss in percent of the entry
// price, reduced by the round-trip trading cost.
func pnlPercent(side types.Side, entryPrice, exitPrice, costPercent float64) float64 {
	entry := decimal.NewFromFloat(entryPrice)
	exit := decimal.NewFromFloat(exitPrice)

	var gross decimal.Decimal
	if side == types.SideBuy {
		gross = exit.Sub(entry).Div(entry).Mul(decimal.NewFromInt(100))
	} else {
		gross = entry.Sub(exit).Div(entry).Mul(decimal.NewFromInt(100))
	}

	net, _ := gross.Sub(decimal.NewFromFloat(costPercent)).Float64()

	return net
}
