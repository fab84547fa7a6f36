package condition

import (
	"testing"

	"github.com/rxtech-lab/argo-strategy/internal/types"
	"github.com/stretchr/testify/suite"
)

type IfThenTestSuite struct {
	suite.Suite
}

func TestIfThenSuite(t *testing.T) {
	suite.Run(t, new(IfThenTestSuite))
}

// ifThenTree arms when the close reaches 100 and confirms when it drops to 10
// or below.
func (suite *IfThenTestSuite) ifThenTree(maxBarsToWait int) *Tree {
	trigger := closeLeaf(types.CompareGreaterOrEqual, 100)
	confirm := closeLeaf(types.CompareLessOrEqual, 10)

	tree, err := Compile(types.ConditionNode{
		Group: &types.ConditionGroup{
			Operator:      types.GroupOperatorIfThen,
			Trigger:       &trigger,
			Confirm:       &confirm,
			MaxBarsToWait: maxBarsToWait,
		},
	}, nil)
	suite.Require().NoError(err)

	return tree
}

func (suite *IfThenTestSuite) TestFiresOnConfirmWithinWindow() {
	tree := suite.ifThenTree(2)

	// Trigger at bar 1, confirm two bars later, exactly at the window edge.
	results := evalSeries(tree, barsFromCloses(50, 100, 50, 10, 50))
	suite.Equal([]bool{false, false, false, true, false}, results)
}

func (suite *IfThenTestSuite) TestConfirmOnTriggerBar() {
	trigger := closeLeaf(types.CompareGreaterOrEqual, 100)
	confirm := closeLeaf(types.CompareGreaterOrEqual, 100)

	tree, err := Compile(types.ConditionNode{
		Group: &types.ConditionGroup{
			Operator:      types.GroupOperatorIfThen,
			Trigger:       &trigger,
			Confirm:       &confirm,
			MaxBarsToWait: 3,
		},
	}, nil)
	suite.Require().NoError(err)

	// Confirm already holds on the bar that triggers; the group fires there.
	results := evalSeries(tree, barsFromCloses(50, 100))
	suite.Equal([]bool{false, true}, results)
}

func (suite *IfThenTestSuite) TestTimeoutDisarmsWithoutFiring() {
	tree := suite.ifThenTree(2)

	// Trigger at bar 0; the confirm only arrives 4 bars later, past the
	// window, so the node is idle again and nothing fires.
	results := evalSeries(tree, barsFromCloses(100, 50, 50, 50, 10))
	suite.Equal([]bool{false, false, false, false, false}, results)
}

func (suite *IfThenTestSuite) TestRetriggerWhileArmedIsIgnored() {
	tree := suite.ifThenTree(1)

	// The trigger keeps holding while armed; the window stays anchored to the
	// first trigger bar, so the confirm at bar 3 arrives too late.
	results := evalSeries(tree, barsFromCloses(100, 100, 100, 10))
	suite.Equal([]bool{false, false, false, false}, results)
}

func (suite *IfThenTestSuite) TestRearmsAfterCompletedCycle() {
	tree := suite.ifThenTree(1)

	// Two full trigger/confirm cycles.
	results := evalSeries(tree, barsFromCloses(100, 10, 100, 10))
	suite.Equal([]bool{false, true, false, true}, results)
}

func (suite *IfThenTestSuite) TestZeroWaitWindow() {
	tree := suite.ifThenTree(0)

	// With a zero window the confirm must hold on the trigger bar itself.
	results := evalSeries(tree, barsFromCloses(100, 10))
	suite.Equal([]bool{false, false}, results)
}

func (suite *IfThenTestSuite) TestResetClearsArmedState() {
	tree := suite.ifThenTree(5)
	bars := barsFromCloses(100, 50, 10)

	cache := newTestCache()
	ctx := NewContext(bars, cache, nil)
	state := NewRunState(tree)

	ctx.Index = 0
	suite.False(tree.Evaluate(ctx, state))
	suite.True(state.ifThen[0].armed)

	state.Reset()
	suite.False(state.ifThen[0].armed)

	// After the reset the confirm at bar 2 finds the node idle.
	ctx.Index = 2
	suite.False(tree.Evaluate(ctx, state))
}
