package types

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/moznion/go-optional"
	"github.com/stretchr/testify/suite"
	"gopkg.in/yaml.v3"
)

type StatisticsTestSuite struct {
	suite.Suite
}

func TestStatisticsSuite(t *testing.T) {
	suite.Run(t, new(StatisticsTestSuite))
}

func (suite *StatisticsTestSuite) TestMarshalYAMLWithProfitFactor() {
	stats := Statistics{
		TotalTrades:  2,
		ProfitFactor: optional.Some(1.5),
	}

	data, err := yaml.Marshal(stats)
	suite.Require().NoError(err)
	suite.Contains(string(data), "profit_factor: 1.5")
}

func (suite *StatisticsTestSuite) TestMarshalYAMLWithoutProfitFactor() {
	stats := Statistics{
		TotalTrades:  1,
		ProfitFactor: optional.None[float64](),
	}

	data, err := yaml.Marshal(stats)
	suite.Require().NoError(err)
	suite.Contains(string(data), "profit_factor: null")
}

func (suite *StatisticsTestSuite) TestWriteResult() {
	entry := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	result := BacktestResult{
		ID:        "run-1",
		Timestamp: entry,
		Symbol:    "BTCUSDT",
		Trades: []TradeEvent{
			{
				EntryTime:  entry,
				EntryPrice: 100,
				ExitTime:   entry.Add(time.Minute),
				ExitPrice:  102,
				ExitReason: ExitReasonTakeProfit,
				Side:       SideBuy,
				PnlPercent: 2,
			},
		},
		Statistics: Statistics{
			TotalTrades:   1,
			WinningTrades: 1,
			WinRate:       1,
			TotalProfit:   2,
			ProfitFactor:  optional.None[float64](),
		},
	}

	path := filepath.Join(suite.T().TempDir(), "result.yaml")
	suite.Require().NoError(WriteResult(path, result))

	data, err := os.ReadFile(path)
	suite.Require().NoError(err)

	var decoded struct {
		ID     string `yaml:"id"`
		Symbol string `yaml:"symbol"`
		Trades []struct {
			ExitReason string  `yaml:"exit_reason"`
			PnlPercent float64 `yaml:"pnl_percent"`
		} `yaml:"trades"`
		Statistics struct {
			TotalTrades  int      `yaml:"total_trades"`
			ProfitFactor *float64 `yaml:"profit_factor"`
		} `yaml:"statistics"`
	}
	suite.Require().NoError(yaml.Unmarshal(data, &decoded))

	suite.Equal("run-1", decoded.ID)
	suite.Equal("BTCUSDT", decoded.Symbol)
	suite.Require().Len(decoded.Trades, 1)
	suite.Equal("take_profit", decoded.Trades[0].ExitReason)
	suite.InDelta(2.0, decoded.Trades[0].PnlPercent, 1e-9)
	suite.Equal(1, decoded.Statistics.TotalTrades)
	suite.Nil(decoded.Statistics.ProfitFactor)
}
