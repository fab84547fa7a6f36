package condition

import (
	"math"

	"github.com/rxtech-lab/argo-strategy/internal/indicator"
	"github.com/rxtech-lab/argo-strategy/internal/types"
	"go.uber.org/zap"
)

// equalityTolerance absorbs rounding noise from indicator math; the eq
// operator never uses exact float equality.
const equalityTolerance = 1e-4

// Evaluate returns the tree's boolean signal at the context's current bar,
// advancing the run state of every stateful node it visits. A leaf with an
// unavailable or misconfigured operand evaluates to false, never to an error.
func (t *Tree) Evaluate(ctx *Context, state *RunState) bool {
	return evalNode(&t.root, ctx, state)
}

func evalNode(node *compiledNode, ctx *Context, state *RunState) bool {
	if node.leaf != nil {
		return evalLeaf(node.leaf, ctx)
	}

	return evalGroup(node.group, ctx, state)
}

func evalGroup(group *compiledGroup, ctx *Context, state *RunState) bool {
	switch group.operator {
	case types.GroupOperatorAnd:
		// Every child is evaluated even after the outcome is decided:
		// stateful descendants must observe every bar.
		result := true

		for i := range group.children {
			if !evalNode(&group.children[i], ctx, state) {
				result = false
			}
		}

		return result
	case types.GroupOperatorOr:
		result := false

		for i := range group.children {
			if evalNode(&group.children[i], ctx, state) {
				result = true
			}
		}

		return result
	case types.GroupOperatorNot:
		return !evalNode(&group.children[0], ctx, state)
	case types.GroupOperatorIfThen:
		return evalIfThen(group, ctx, state)
	case types.GroupOperatorSequence:
		return evalSequence(group, ctx, state)
	default:
		// Compile rejects unknown operators; degrade to non-match if one
		// slips through.
		ctx.Logger.Warn("unknown group operator during evaluation", zap.String("operator", string(group.operator)))

		return false
	}
}

// evalIfThen runs the two-stage trigger state machine: idle until the trigger
// fires, then armed until the confirm fires (group result true for that bar)
// or the wait window runs out. Re-triggering while armed is ignored so the
// window stays anchored to the first trigger bar.
func evalIfThen(group *compiledGroup, ctx *Context, state *RunState) bool {
	if group.degraded {
		return false
	}

	st := &state.ifThen[group.stateIndex]

	// The trigger is evaluated on every bar, even while armed, so stateful
	// sub-nodes inside it keep advancing. Its result is ignored while armed.
	triggered := evalNode(group.trigger, ctx, state)

	if !st.armed {
		if !triggered {
			return false
		}

		st.armed = true
		st.triggeredAt = ctx.Index
	}

	if ctx.Index-st.triggeredAt > group.maxBarsToWait {
		// Wait window exhausted; back to idle without consulting confirm.
		st.armed = false

		return false
	}

	if evalNode(group.confirm, ctx, state) {
		st.armed = false

		return true
	}

	return false
}

// evalSequence runs the ordered multi-step state machine. A cycle resets
// when the gap since the previously completed step exceeds the limit; the
// first step of a fresh cycle is exempt from the gap check, so a completed
// cycle leaves no memory behind.
func evalSequence(group *compiledGroup, ctx *Context, state *RunState) bool {
	st := &state.sequence[group.stateIndex]

	if st.nextStep > 0 && ctx.Index-st.lastStepBar > group.maxBarsBetweenSteps {
		st.nextStep = 0
		st.lastStepBar = -1
	}

	if !evalNode(&group.steps[st.nextStep], ctx, state) {
		return false
	}

	st.lastStepBar = ctx.Index
	st.nextStep++

	if st.nextStep == len(group.steps) {
		st.nextStep = 0

		return true
	}

	return false
}

func evalLeaf(cond *types.IndicatorCondition, ctx *Context) bool {
	left, ok := resolveLeft(cond, ctx, ctx.Index)
	if !ok {
		return false
	}

	right, ok := resolveRight(cond, ctx, ctx.Index)
	if !ok {
		return false
	}

	switch cond.Operator {
	case types.CompareLessThan:
		return left < right
	case types.CompareLessOrEqual:
		return left <= right
	case types.CompareEqual:
		return math.Abs(left-right) <= equalityTolerance
	case types.CompareGreaterOrEqual:
		return left >= right
	case types.CompareGreaterThan:
		return left > right
	case types.CompareCrossAbove, types.CompareCrossBelow:
		return evalCrossing(cond, ctx, left, right)
	default:
		ctx.Logger.Warn("unknown comparison operator", zap.String("operator", string(cond.Operator)))

		return false
	}
}

// evalCrossing checks the two-bar crossing condition. There is no crossing
// decision at bar 0, and both operands must have been available on the
// previous bar.
func evalCrossing(cond *types.IndicatorCondition, ctx *Context, left, right float64) bool {
	if ctx.Index == 0 {
		return false
	}

	prevLeft, ok := resolveLeft(cond, ctx, ctx.Index-1)
	if !ok {
		return false
	}

	prevRight, ok := resolveRight(cond, ctx, ctx.Index-1)
	if !ok {
		return false
	}

	if cond.Operator == types.CompareCrossAbove {
		return prevLeft < prevRight && left > right
	}

	return prevLeft > prevRight && left < right
}

func resolveLeft(cond *types.IndicatorCondition, ctx *Context, index int) (float64, bool) {
	return resolveIndicator(cond.Left, ctx, index)
}

func resolveRight(cond *types.IndicatorCondition, ctx *Context, index int) (float64, bool) {
	switch {
	case cond.Value != nil:
		return *cond.Value, true
	case cond.RightIndicator != nil:
		return resolveIndicator(*cond.RightIndicator, ctx, index)
	case cond.PriceField != "":
		return cond.PriceField.Value(ctx.Bars[index]), true
	default:
		ctx.Logger.Warn("leaf condition has no right operand")

		return 0, false
	}
}

// resolveIndicator looks up one indicator value through the per-run cache.
// An unknown indicator kind or an unavailable value degrades to non-match.
func resolveIndicator(ref types.IndicatorRef, ctx *Context, index int) (float64, bool) {
	value, err := ctx.Cache.Value(ref, ctx.Closes, index)
	if err != nil {
		ctx.Logger.Warn("failed to resolve indicator value, condition treated as non-matching",
			zap.String("kind", string(ref.Kind)),
			zap.String("field", string(ref.Field)),
			zap.Int("index", index),
			zap.Error(err),
		)

		return 0, false
	}

	if !indicator.Available(value) {
		return 0, false
	}

	return value, true
}
