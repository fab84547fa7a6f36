package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-strategy/internal/backtest"
	"github.com/rxtech-lab/argo-strategy/internal/datasource"
	"github.com/rxtech-lab/argo-strategy/internal/logger"
	"github.com/rxtech-lab/argo-strategy/internal/types"
	"github.com/rxtech-lab/argo-strategy/pkg/strategy"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"
)

// backtestAction loads the bar file and the strategy definition, runs the
// simulation, and writes the result file.
func backtestAction(ctx context.Context, cmd *cli.Command) error {
	dataPath := cmd.String("data")
	strategyPath := cmd.String("strategy")
	outputPath := cmd.String("output")
	symbol := cmd.String("symbol")

	appLogger, err := logger.NewLogger()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer appLogger.Sync() //nolint:errcheck

	definition, err := strategy.Load(strategyPath)
	if err != nil {
		return fmt.Errorf("failed to load strategy: %w", err)
	}

	tree, err := definition.Compile(appLogger)
	if err != nil {
		return fmt.Errorf("failed to compile strategy conditions: %w", err)
	}

	loader, err := datasource.NewDuckDBLoader(appLogger)
	if err != nil {
		return fmt.Errorf("failed to create bar loader: %w", err)
	}
	defer loader.Close() //nolint:errcheck

	bars, err := loader.LoadBars(dataPath)
	if err != nil {
		return fmt.Errorf("failed to load bars: %w", err)
	}

	startTime := optional.None[time.Time]()
	if cmd.IsSet("start") {
		startTime = optional.Some(cmd.Timestamp("start"))
	}

	endTime := optional.None[time.Time]()
	if cmd.IsSet("end") {
		endTime = optional.Some(cmd.Timestamp("end"))
	}

	config := definition.BacktestConfig(symbol, startTime, endTime)

	bar := progressbar.Default(int64(len(bars)))
	bar.Describe(fmt.Sprintf("Backtesting %s on %s", definition.Name, symbol))

	engine := backtest.NewEngine(appLogger)

	result, err := engine.RunWithProgress(config, bars, tree, func(processed, total int) {
		bar.ChangeMax(total)
		bar.Set(processed) //nolint:errcheck
	})
	if err != nil {
		return fmt.Errorf("backtest failed: %w", err)
	}

	if err := types.WriteResult(outputPath, *result); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}

	printSummary(result, outputPath)

	return nil
}

func printSummary(result *types.BacktestResult, outputPath string) {
	stats := result.Statistics

	fmt.Printf("\n=== Backtest %s ===\n", result.ID)
	fmt.Printf("Trades:        %d (%d wins / %d losses / %d timeouts)\n",
		stats.TotalTrades, stats.WinningTrades, stats.LosingTrades, stats.TimeoutTrades)
	fmt.Printf("Win rate:      %.2f%%\n", stats.WinRate*100)

	if stats.ProfitFactor.IsSome() {
		fmt.Printf("Profit factor: %.2f\n", stats.ProfitFactor.Unwrap())
	} else {
		fmt.Printf("Profit factor: n/a (no losing trades)\n")
	}

	fmt.Printf("Expectancy:    %.4f%% per trade\n", stats.Expectancy)
	fmt.Printf("Max drawdown:  %.4f%%\n", stats.MaxDrawdown)
	fmt.Printf("Result:        %s\n", outputPath)
}

func main() {
	cmd := &cli.Command{
		Name:  "backtest",
		Usage: "Run a strategy backtest over a bar file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "data",
				Aliases:  []string{"d"},
				Usage:    "Path to the bar file (csv or parquet)",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "strategy",
				Aliases:  []string{"s"},
				Usage:    "Path to the strategy definition YAML file",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "symbol",
				Usage:    "Symbol the bar file belongs to",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Path of the result YAML file",
				Value:   "result.yaml",
			},
			&cli.TimestampFlag{
				Name:  "start",
				Usage: "Start of the simulated range in `YYYY-MM-DD` format",
				Config: cli.TimestampConfig{
					Layouts: []string{"2006-01-02"},
				},
			},
			&cli.TimestampFlag{
				Name:  "end",
				Usage: "End of the simulated range in `YYYY-MM-DD` format",
				Config: cli.TimestampConfig{
					Layouts: []string{"2006-01-02"},
				},
			},
		},
		Action: backtestAction,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
