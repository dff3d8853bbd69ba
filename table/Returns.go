package table

import (
	"github.com/samuelfneumann/gomonte/environment"
	"gonum.org/v1/gonum/stat"
)

// Returns accumulates the observed discounted returns for each
// (state, action) pair. Value estimates are the running mean of the
// accumulated returns.
type Returns map[StateAction][]float64

// NewReturns creates a new Returns table with an empty sequence of
// observations for every enumerated transition
func NewReturns(transitions []environment.Transition) Returns {
	r := make(Returns, len(transitions))
	for _, tr := range transitions {
		r[StateAction{tr.State, tr.Action}] = nil
	}
	return r
}

// Append records an observed return for taking action a in state s
func (r Returns) Append(s environment.State, a environment.Action, G float64) {
	key := StateAction{s, a}
	r[key] = append(r[key], G)
}

// Mean returns the mean observed return for taking action a in state s
func (r Returns) Mean(s environment.State, a environment.Action) float64 {
	return stat.Mean(r[StateAction{s, a}], nil)
}

// StateReturns accumulates the observed discounted returns for each
// state, used by the prediction routines
type StateReturns map[environment.State][]float64

// NewStateReturns creates a new StateReturns table with an empty
// sequence of observations for every state
func NewStateReturns(states []environment.State) StateReturns {
	r := make(StateReturns, len(states))
	for _, s := range states {
		r[s] = nil
	}
	return r
}

// Append records an observed return for state s
func (r StateReturns) Append(s environment.State, G float64) {
	r[s] = append(r[s], G)
}

// Mean returns the mean observed return for state s
func (r StateReturns) Mean(s environment.State) float64 {
	return stat.Mean(r[s], nil)
}
