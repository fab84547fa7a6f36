package condition

import (
	"time"

	"github.com/rxtech-lab/argo-strategy/internal/indicator"
	"github.com/rxtech-lab/argo-strategy/internal/types"
)

// barsFromCloses builds a minute-bar series whose close prices are the given
// values. A period-1 SMA over such a series equals the close itself, which
// lets tests steer leaf conditions through the close prices alone.
func barsFromCloses(closes ...float64) []types.Bar {
	bars := make([]types.Bar, len(closes))
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, c := range closes {
		bars[i] = types.Bar{
			Time:   base.Add(time.Duration(i) * time.Minute),
			Open:   c,
			High:   c + 1,
			Low:    c - 1,
			Close:  c,
			Volume: 1000,
		}
	}

	return bars
}

// closeLeaf compares the close price (via a period-1 SMA) against a fixed
// value.
func closeLeaf(op types.CompareOperator, value float64) types.ConditionNode {
	return types.ConditionNode{
		Leaf: &types.IndicatorCondition{
			Left:     types.IndicatorRef{Kind: types.IndicatorTypeSMA, Params: types.IndicatorParams{Period: 1}},
			Operator: op,
			Value:    &value,
		},
	}
}

func newTestCache() *indicator.Cache {
	return indicator.NewCache(indicator.NewDefaultIndicatorRegistry())
}

// evalSeries evaluates the tree bar by bar over a fresh run and returns the
// per-bar results.
func evalSeries(tree *Tree, bars []types.Bar) []bool {
	cache := newTestCache()
	ctx := NewContext(bars, cache, nil)
	state := NewRunState(tree)

	results := make([]bool, len(bars))
	for i := range bars {
		ctx.Index = i
		results[i] = tree.Evaluate(ctx, state)
	}

	return results
}
