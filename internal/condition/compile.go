// Package condition evaluates a strategy's condition tree over a bar series.
// A tree definition (types.ConditionNode) is compiled once into an immutable
// Tree; every run over a bar series carries its own RunState, so independent
// runs over the same compiled tree are safe.
package condition

import (
	"github.com/rxtech-lab/argo-strategy/internal/logger"
	"github.com/rxtech-lab/argo-strategy/internal/types"
	"github.com/rxtech-lab/argo-strategy/pkg/errors"
	"go.uber.org/zap"
)

// Tree is a compiled, immutable condition tree. All mutable per-run state
// lives in a RunState arena keyed by node index.
type Tree struct {
	root          compiledNode
	ifThenCount   int
	sequenceCount int
}

type compiledNode struct {
	leaf  *types.IndicatorCondition
	group *compiledGroup
}

type compiledGroup struct {
	operator types.GroupOperator

	children []compiledNode

	trigger       *compiledNode
	confirm       *compiledNode
	maxBarsToWait int

	steps               []compiledNode
	maxBarsBetweenSteps int

	// stateIndex is this node's slot in the RunState arena (if_then and
	// sequence nodes only).
	stateIndex int

	// degraded marks an if_then node missing its trigger or confirm
	// sub-expression. A degraded node never fires; one misconfigured group
	// must not abort a batch evaluation.
	degraded bool
}

type compiler struct {
	log           *logger.Logger
	ifThenCount   int
	sequenceCount int
}

// Compile validates a condition-tree definition and produces an immutable
// Tree. Structural invariant violations (NOT without exactly one child,
// AND/OR with no children, SEQUENCE with no steps, a leaf without exactly one
// right operand) fail fast here so they never reach the per-bar loop. An
// if_then group missing its trigger or confirm compiles to a node that never
// fires, with a warning.
func Compile(node types.ConditionNode, log *logger.Logger) (*Tree, error) {
	if log == nil {
		log = logger.NewNopLogger()
	}

	c := &compiler{log: log}

	root, err := c.compileNode(node)
	if err != nil {
		return nil, err
	}

	return &Tree{
		root:          root,
		ifThenCount:   c.ifThenCount,
		sequenceCount: c.sequenceCount,
	}, nil
}

func (c *compiler) compileNode(node types.ConditionNode) (compiledNode, error) {
	if node.IsLeaf() == node.IsGroup() {
		return compiledNode{}, errors.New(errors.ErrCodeInvalidConditionTree, "condition node must hold exactly one of leaf or group")
	}

	if node.IsLeaf() {
		if err := validateLeaf(node.Leaf); err != nil {
			return compiledNode{}, err
		}

		return compiledNode{leaf: node.Leaf}, nil
	}

	group, err := c.compileGroup(node.Group)
	if err != nil {
		return compiledNode{}, err
	}

	return compiledNode{group: group}, nil
}

func (c *compiler) compileGroup(group *types.ConditionGroup) (*compiledGroup, error) {
	switch group.Operator {
	case types.GroupOperatorAnd, types.GroupOperatorOr:
		return c.compileChildren(group)
	case types.GroupOperatorNot:
		if len(group.Children) != 1 {
			return nil, errors.Newf(errors.ErrCodeInvalidConditionTree, "not group must have exactly one child, got %d", len(group.Children))
		}

		return c.compileChildren(group)
	case types.GroupOperatorIfThen:
		return c.compileIfThen(group)
	case types.GroupOperatorSequence:
		return c.compileSequence(group)
	default:
		return nil, errors.Newf(errors.ErrCodeUnknownGroupOperator, "unknown group operator %q", group.Operator)
	}
}

func (c *compiler) compileChildren(group *types.ConditionGroup) (*compiledGroup, error) {
	if len(group.Children) == 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidConditionTree, "%s group must have at least one child", group.Operator)
	}

	children := make([]compiledNode, 0, len(group.Children))

	for _, child := range group.Children {
		compiled, err := c.compileNode(child)
		if err != nil {
			return nil, err
		}

		children = append(children, compiled)
	}

	return &compiledGroup{
		operator: group.Operator,
		children: children,
	}, nil
}

func (c *compiler) compileIfThen(group *types.ConditionGroup) (*compiledGroup, error) {
	if group.MaxBarsToWait < 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidConditionTree, "if_then max_bars_to_wait must not be negative, got %d", group.MaxBarsToWait)
	}

	compiled := &compiledGroup{
		operator:      types.GroupOperatorIfThen,
		maxBarsToWait: group.MaxBarsToWait,
		stateIndex:    c.ifThenCount,
	}
	c.ifThenCount++

	if group.Trigger == nil || group.Confirm == nil {
		// Degraded configuration, not a structural error: the node simply
		// never fires.
		compiled.degraded = true
		c.log.Warn("if_then group missing trigger or confirm, it will never fire",
			zap.Bool("has_trigger", group.Trigger != nil),
			zap.Bool("has_confirm", group.Confirm != nil),
		)

		return compiled, nil
	}

	trigger, err := c.compileNode(*group.Trigger)
	if err != nil {
		return nil, err
	}

	confirm, err := c.compileNode(*group.Confirm)
	if err != nil {
		return nil, err
	}

	compiled.trigger = &trigger
	compiled.confirm = &confirm

	return compiled, nil
}

func (c *compiler) compileSequence(group *types.ConditionGroup) (*compiledGroup, error) {
	if len(group.Steps) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidConditionTree, "sequence group must have at least one step")
	}

	if group.MaxBarsBetweenSteps < 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidConditionTree, "sequence max_bars_between_steps must not be negative, got %d", group.MaxBarsBetweenSteps)
	}

	steps := make([]compiledNode, 0, len(group.Steps))

	for _, step := range group.Steps {
		compiled, err := c.compileNode(step)
		if err != nil {
			return nil, err
		}

		steps = append(steps, compiled)
	}

	compiled := &compiledGroup{
		operator:            types.GroupOperatorSequence,
		steps:               steps,
		maxBarsBetweenSteps: group.MaxBarsBetweenSteps,
		stateIndex:          c.sequenceCount,
	}
	c.sequenceCount++

	return compiled, nil
}

func validateLeaf(leaf *types.IndicatorCondition) error {
	if leaf.Left.Kind == "" {
		return errors.New(errors.ErrCodeInvalidConditionLeaf, "leaf condition missing left indicator kind")
	}

	if !leaf.Operator.IsValid() {
		return errors.Newf(errors.ErrCodeInvalidOperator, "unknown comparison operator %q", leaf.Operator)
	}

	operands := 0
	if leaf.Value != nil {
		operands++
	}

	if leaf.RightIndicator != nil {
		operands++
	}

	if leaf.PriceField != "" {
		if !leaf.PriceField.IsValid() {
			return errors.Newf(errors.ErrCodeInvalidConditionLeaf, "unknown price field %q", leaf.PriceField)
		}

		operands++
	}

	if operands != 1 {
		return errors.Newf(errors.ErrCodeInvalidConditionLeaf, "leaf condition must have exactly one right operand, got %d", operands)
	}

	return nil
}
