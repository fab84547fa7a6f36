package backtest

import (
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-strategy/internal/types"
)

// ComputeStatistics reduces an ordered trade list to aggregate statistics.
// Trades are classified as winning or losing by the sign of their
// cost-adjusted pnl; timeout exits are counted separately for display but
// classified like any other trade.
func ComputeStatistics(trades []types.TradeEvent) types.Statistics {
	stats := types.Statistics{
		TotalTrades:  len(trades),
		ProfitFactor: optional.None[float64](),
	}

	if len(trades) == 0 {
		return stats
	}

	var (
		totalProfit float64
		totalLoss   float64
		totalPnl    float64

		cumulative  float64
		peak        float64
		maxDrawdown float64

		minHolding int
		maxHolding int
		sumHolding int
	)

	for i, trade := range trades {
		switch {
		case trade.PnlPercent > 0:
			stats.WinningTrades++
			totalProfit += trade.PnlPercent
		case trade.PnlPercent < 0:
			stats.LosingTrades++
			totalLoss -= trade.PnlPercent
		}

		if trade.ExitReason == types.ExitReasonTimeout {
			stats.TimeoutTrades++
		}

		totalPnl += trade.PnlPercent

		// Drawdown over the cumulative pnl curve in trade-close order.
		cumulative += trade.PnlPercent
		if cumulative > peak {
			peak = cumulative
		}

		if drawdown := peak - cumulative; drawdown > maxDrawdown {
			maxDrawdown = drawdown
		}

		holding := int(trade.HoldingDuration().Seconds())
		if i == 0 || holding < minHolding {
			minHolding = holding
		}

		if holding > maxHolding {
			maxHolding = holding
		}

		sumHolding += holding
	}

	stats.WinRate = float64(stats.WinningTrades) / float64(stats.TotalTrades)
	stats.TotalProfit = totalProfit
	stats.TotalLoss = totalLoss

	if totalLoss > 0 {
		stats.ProfitFactor = optional.Some(totalProfit / totalLoss)
	}

	stats.AveragePnl = totalPnl / float64(stats.TotalTrades)
	stats.Expectancy = stats.AveragePnl
	stats.MaxDrawdown = maxDrawdown
	stats.HoldingTime = types.TradeHoldingTime{
		Min: minHolding,
		Max: maxHolding,
		Avg: sumHolding / stats.TotalTrades,
	}

	return stats
}
