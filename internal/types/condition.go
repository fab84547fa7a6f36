package types

// CompareOperator compares a left operand against a right operand at one bar.
// The crossing operators additionally look at the previous bar.
type CompareOperator string

const (
	CompareLessThan       CompareOperator = "lt"
	CompareLessOrEqual    CompareOperator = "lte"
	CompareEqual          CompareOperator = "eq"
	CompareGreaterOrEqual CompareOperator = "gte"
	CompareGreaterThan    CompareOperator = "gt"
	CompareCrossAbove     CompareOperator = "cross_above"
	CompareCrossBelow     CompareOperator = "cross_below"
)

// IsValid reports whether the operator is one of the supported comparisons.
func (op CompareOperator) IsValid() bool {
	switch op {
	case CompareLessThan, CompareLessOrEqual, CompareEqual,
		CompareGreaterOrEqual, CompareGreaterThan,
		CompareCrossAbove, CompareCrossBelow:
		return true
	default:
		return false
	}
}

// GroupOperator combines child conditions of a ConditionGroup.
type GroupOperator string

const (
	GroupOperatorAnd GroupOperator = "and"
	GroupOperatorOr  GroupOperator = "or"
	GroupOperatorNot GroupOperator = "not"
	// GroupOperatorIfThen is a two-stage trigger: once the trigger
	// sub-expression is true, the confirm sub-expression must become true
	// within a bounded number of bars.
	GroupOperatorIfThen GroupOperator = "if_then"
	// GroupOperatorSequence requires its steps to become true in order, each
	// within a bounded bar gap of the previous step.
	GroupOperatorSequence GroupOperator = "sequence"
)

// IndicatorCondition is one leaf comparison. The left operand is always an
// indicator output line. Exactly one of Value, RightIndicator, or PriceField
// must be set as the right operand.
type IndicatorCondition struct {
	Left     IndicatorRef    `yaml:"left" json:"left" jsonschema:"title=Left Operand"`
	Operator CompareOperator `yaml:"operator" json:"operator" jsonschema:"title=Comparison Operator"`

	// Value is a fixed numeric right operand.
	Value *float64 `yaml:"value,omitempty" json:"value,omitempty" jsonschema:"title=Fixed Value"`
	// RightIndicator is another indicator output line as the right operand.
	RightIndicator *IndicatorRef `yaml:"right_indicator,omitempty" json:"right_indicator,omitempty" jsonschema:"title=Right Indicator"`
	// PriceField is a price component of the current bar as the right operand.
	PriceField PriceField `yaml:"price_field,omitempty" json:"price_field,omitempty" jsonschema:"title=Price Field"`
}

// ConditionGroup is a recursive combination of conditions. For and/or/not the
// Children list is used; if_then uses Trigger/Confirm/MaxBarsToWait; sequence
// uses Steps/MaxBarsBetweenSteps. The definition is immutable: all run state
// for if_then and sequence nodes lives in a separate per-run state arena.
type ConditionGroup struct {
	Operator GroupOperator   `yaml:"operator" json:"operator" jsonschema:"title=Group Operator"`
	Children []ConditionNode `yaml:"children,omitempty" json:"children,omitempty" jsonschema:"title=Children"`

	Trigger       *ConditionNode `yaml:"trigger,omitempty" json:"trigger,omitempty" jsonschema:"title=Trigger"`
	Confirm       *ConditionNode `yaml:"confirm,omitempty" json:"confirm,omitempty" jsonschema:"title=Confirm"`
	MaxBarsToWait int            `yaml:"max_bars_to_wait,omitempty" json:"max_bars_to_wait,omitempty" jsonschema:"title=Max Bars To Wait,minimum=0"`

	Steps               []ConditionNode `yaml:"steps,omitempty" json:"steps,omitempty" jsonschema:"title=Steps"`
	MaxBarsBetweenSteps int             `yaml:"max_bars_between_steps,omitempty" json:"max_bars_between_steps,omitempty" jsonschema:"title=Max Bars Between Steps,minimum=0"`
}

// ConditionNode is a tagged union: exactly one of Leaf or Group is set.
type ConditionNode struct {
	Leaf  *IndicatorCondition `yaml:"leaf,omitempty" json:"leaf,omitempty" jsonschema:"title=Leaf Condition"`
	Group *ConditionGroup     `yaml:"group,omitempty" json:"group,omitempty" jsonschema:"title=Condition Group"`
}

// IsLeaf reports whether the node holds a leaf condition.
func (n ConditionNode) IsLeaf() bool {
	return n.Leaf != nil
}

// IsGroup reports whether the node holds a condition group.
func (n ConditionNode) IsGroup() bool {
	return n.Group != nil
}
