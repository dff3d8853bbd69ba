// Package timestep implements timesteps of the agent-environment interaction
package timestep

import (
	"fmt"

	"github.com/samuelfneumann/gomonte/environment"
)

// PlaceholderReward is the reward recorded on the first step of an
// episode. No transition has occurred yet when the first step is
// recorded, so the value is a fixed sentinel and is never included in
// return computations.
const PlaceholderReward float64 = -1

// NoAction marks a step on which no action was taken, such as the
// arrival at a terminal state.
const NoAction environment.Action = -1

// StepType denotes the type of step that a TimeStep can be, either a
// first environmental step, a middle step, or a last step
type StepType int

const (
	First StepType = iota
	Mid
	Last
)

func (s StepType) String() string {
	switch s {
	case First:
		return "First"
	case Last:
		return "Last"
	default:
		return "Mid"
	}
}

// TimeStep packages together a single timestep in an environment. The
// Reward field holds the reward received for transitioning *into*
// State; the Action field holds the action selected *in* State. A Last
// step records the arrival at a terminal state and therefore has
// Action == NoAction.
type TimeStep struct {
	StepType
	State  environment.State
	Action environment.Action
	Reward float64
	Number int
}

// New returns a new TimeStep
func New(t StepType, s environment.State, a environment.Action, r float64,
	n int) TimeStep {
	return TimeStep{t, s, a, r, n}
}

// First returns whether a TimeStep is the first in an episode
func (t TimeStep) First() bool {
	return t.StepType == First
}

// Mid returns whether a TimeStep is a middle step in an episode
func (t TimeStep) Mid() bool {
	return t.StepType == Mid
}

// Last returns whether a TimeStep is the last step in an episode
func (t TimeStep) Last() bool {
	return t.StepType == Last
}

func (t TimeStep) String() string {
	str := "TimeStep | Type: %v  |  State: %v  |  Action: %v  |  " +
		"Reward:  %.2f  |  Step Number:  %v"

	return fmt.Sprintf(str, t.StepType, t.State, t.Action, t.Reward, t.Number)
}

// Episode is an ordered sequence of TimeSteps from a starting
// (state, action) pair to the arrival at a terminal state
type Episode []TimeStep

// Returns computes the discounted return at every index of the
// episode. Returns[i] holds the discounted sum of the rewards at
// indices i and onward, each discounted by one extra power of gamma:
//
//	Returns[i] = Σ_{k=i}^{len-1} gamma^(k-i+1) · Reward[k]
//
// computed right-to-left with the recurrence G ← gamma·(G + Reward[k]).
// The return observed by a visit at index i is therefore Returns[i+1],
// which excludes the reward recorded on the visited step itself (and,
// for i == 0, the placeholder reward). ReturnFrom packages that
// convention.
func (e Episode) Returns(gamma float64) []float64 {
	returns := make([]float64, len(e))

	G := 0.0
	for i := len(e) - 1; i >= 0; i-- {
		G = gamma * (G + e[i].Reward)
		returns[i] = G
	}
	return returns
}

// ReturnFrom computes the discounted return observed by a visit at
// index i of the episode: the rewards strictly after index i,
// accumulated with the same recurrence as Returns. Visits on the final
// step observe a zero return.
func (e Episode) ReturnFrom(i int, gamma float64) float64 {
	if i+1 >= len(e) {
		return 0.0
	}
	return e.Returns(gamma)[i+1]
}

// Return computes the episode's total undiscounted reward, excluding
// the first step's placeholder
func (e Episode) Return() float64 {
	total := 0.0
	for i := 1; i < len(e); i++ {
		total += e[i].Reward
	}
	return total
}
