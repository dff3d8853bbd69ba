// Package environment outlines the interfaces and structs needed to
// implement concrete tabular environments
package environment

// State is an opaque identifier for a state in a finite MDP. States
// must be enumerated as (0, 1, 2, ... N) where N is the maximum
// possible state.
type State int

// Action is an opaque identifier for an action in a finite MDP.
// Actions must be enumerated as (0, 1, 2, ... N) where N is the
// maximum possible action. The same action set is available in every
// non-terminal state.
type Action int

// Transition records a single deterministic environmental transition:
// taking Action in State leads to Next with reward Reward.
type Transition struct {
	State  State
	Action Action
	Next   State
	Reward float64
}

// Environment implements a finite MDP with deterministic dynamics.
// The environment is fully enumerable: all states, actions, and
// transitions can be listed up front so that value tables can be
// constructed over the complete (state, action) key set.
type Environment interface {
	// States returns all states in the environment, terminal states
	// included
	States() []State

	// Actions returns the actions available in every non-terminal
	// state
	Actions() []Action

	// Transitions enumerates every (state, action) transition from
	// the non-terminal states
	Transitions() []Transition

	// Step applies action a in state s, returning the next state and
	// the reward for the transition. Step is a total function over
	// non-terminal states and panics if s is terminal.
	Step(s State, a Action) (State, float64)

	// Terminal returns whether s is a terminal state
	Terminal(s State) bool

	// Discount returns the environment's discount factor in (0, 1]
	Discount() float64
}
