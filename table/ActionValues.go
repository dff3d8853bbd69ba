// Package table implements value tables over enumerable state and
// action sets
package table

import (
	"fmt"

	"github.com/samuelfneumann/gomonte/environment"
)

// Sentinel is the default initial action value for unvisited
// (state, action) pairs. A large negative initial estimate discourages
// a greedy policy from re-selecting a pair before it has real data,
// steering episodes away from loops. This is optimistic-negative
// initialization, a heuristic rather than a formal optimism scheme.
const Sentinel float64 = -1000

// StateAction is a composite key identifying a single (state, action)
// pair
type StateAction struct {
	State  environment.State
	Action environment.Action
}

// ActionValues maps each (state, action) pair to a scalar estimate of
// its value. The key set is fixed at construction: looking up a key
// outside the enumerated pairs is a programmer error and panics.
type ActionValues map[StateAction]float64

// NewActionValues creates a new ActionValues table with one entry per
// enumerated transition, each initialized to sentinel
func NewActionValues(transitions []environment.Transition,
	sentinel float64) ActionValues {
	q := make(ActionValues, len(transitions))
	for _, tr := range transitions {
		q[StateAction{tr.State, tr.Action}] = sentinel
	}
	return q
}

// At returns the value estimate for taking action a in state s
func (q ActionValues) At(s environment.State, a environment.Action) float64 {
	value, ok := q[StateAction{s, a}]
	if !ok {
		panic(fmt.Sprintf("at: no action value for state %v action %v", s, a))
	}
	return value
}

// Set records a new value estimate for taking action a in state s
func (q ActionValues) Set(s environment.State, a environment.Action,
	value float64) {
	key := StateAction{s, a}
	if _, ok := q[key]; !ok {
		panic(fmt.Sprintf("set: no action value for state %v action %v", s, a))
	}
	q[key] = value
}

// Contains returns whether the table has an entry for taking action a
// in state s
func (q ActionValues) Contains(s environment.State,
	a environment.Action) bool {
	_, ok := q[StateAction{s, a}]
	return ok
}
