package condition

// ifThenState tracks one if_then node inside one run. The node is either
// idle (armed == false) or armed since the bar recorded in triggeredAt.
type ifThenState struct {
	armed       bool
	triggeredAt int
}

// sequenceState tracks one sequence node inside one run: the index of the
// next step to satisfy and the bar at which the previous step completed.
type sequenceState struct {
	nextStep    int
	lastStepBar int
}

// RunState holds the mutable state of every stateful node in a compiled tree
// for exactly one evaluation run over one bar series. It must never be shared
// across runs, strategies, or series; create a fresh one (or Reset) per run.
type RunState struct {
	ifThen   []ifThenState
	sequence []sequenceState
}

// NewRunState creates zeroed state sized for the given tree.
func NewRunState(tree *Tree) *RunState {
	state := &RunState{
		ifThen:   make([]ifThenState, tree.ifThenCount),
		sequence: make([]sequenceState, tree.sequenceCount),
	}
	state.Reset()

	return state
}

// Reset returns every stateful node to its initial idle state.
func (s *RunState) Reset() {
	for i := range s.ifThen {
		s.ifThen[i] = ifThenState{armed: false, triggeredAt: 0}
	}

	for i := range s.sequence {
		s.sequence[i] = sequenceState{nextStep: 0, lastStepBar: -1}
	}
}
