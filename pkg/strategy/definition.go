// Package strategy loads and validates user-authored strategy definitions:
// the entry condition tree plus the exit settings that drive a backtest.
package strategy

import (
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-strategy/internal/backtest"
	"github.com/rxtech-lab/argo-strategy/internal/condition"
	"github.com/rxtech-lab/argo-strategy/internal/logger"
	"github.com/rxtech-lab/argo-strategy/internal/types"
	"github.com/rxtech-lab/argo-strategy/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Definition is one strategy version as authored by the user: a condition
// tree for entries and the exit model. It is immutable once constructed; the
// engine never validates ownership or storage concerns, only structure.
type Definition struct {
	Name        string `yaml:"name" json:"name" validate:"required" jsonschema:"title=Name"`
	Description string `yaml:"description,omitempty" json:"description,omitempty" jsonschema:"title=Description"`

	// Entry is the condition tree evaluated bar by bar.
	Entry types.ConditionNode `yaml:"entry" json:"entry" jsonschema:"title=Entry Conditions"`

	Side        types.Side        `yaml:"side" json:"side" validate:"required,oneof=buy sell" jsonschema:"title=Side,enum=buy,enum=sell"`
	EntryTiming types.EntryTiming `yaml:"entry_timing,omitempty" json:"entry_timing,omitempty" validate:"omitempty,oneof=next_bar_open" jsonschema:"title=Entry Timing,enum=next_bar_open"`

	TakeProfit         types.ExitLevel `yaml:"take_profit" json:"take_profit" jsonschema:"title=Take Profit"`
	StopLoss           types.ExitLevel `yaml:"stop_loss" json:"stop_loss" jsonschema:"title=Stop Loss"`
	MaxHoldingMinutes  int             `yaml:"max_holding_minutes" json:"max_holding_minutes" validate:"gt=0" jsonschema:"title=Max Holding Minutes,minimum=1"`
	TradingCostPercent float64         `yaml:"trading_cost_percent" json:"trading_cost_percent" validate:"gte=0" jsonschema:"title=Trading Cost Percent,minimum=0"`
}

// Load reads a strategy definition from a YAML file and validates it.
func Load(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeStrategyLoadFailed, err, "failed to read strategy file %s", path)
	}

	var definition Definition
	if err := yaml.Unmarshal(data, &definition); err != nil {
		return nil, errors.Wrapf(errors.ErrCodeStrategyLoadFailed, err, "failed to parse strategy file %s", path)
	}

	if err := definition.Validate(); err != nil {
		return nil, err
	}

	return &definition, nil
}

// Validate checks the definition's fields and the structure of its condition
// tree. Structural tree violations are reported here, at construction time,
// so they never reach a per-bar evaluation loop.
func (d *Definition) Validate() error {
	validate := validator.New()
	if err := validate.Struct(d); err != nil {
		return errors.Wrap(errors.ErrCodeStrategyConfigError, "invalid strategy definition", err)
	}

	if _, err := condition.Compile(d.Entry, logger.NewNopLogger()); err != nil {
		return err
	}

	return nil
}

// Compile compiles the entry condition tree for evaluation. Degraded-config
// warnings are emitted through the given logger.
func (d *Definition) Compile(log *logger.Logger) (*condition.Tree, error) {
	return condition.Compile(d.Entry, log)
}

// BacktestConfig assembles a backtest config for this definition over the
// given symbol and date range.
func (d *Definition) BacktestConfig(symbol string, startTime, endTime optional.Option[time.Time]) backtest.Config {
	return backtest.Config{
		Symbol:             symbol,
		StartTime:          startTime,
		EndTime:            endTime,
		Side:               d.Side,
		EntryTiming:        d.EntryTiming,
		TakeProfit:         d.TakeProfit,
		StopLoss:           d.StopLoss,
		MaxHoldingMinutes:  d.MaxHoldingMinutes,
		TradingCostPercent: d.TradingCostPercent,
	}
}
