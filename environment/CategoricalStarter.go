package environment

import (
	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/stat/distuv"
)

// Starter implements a distribution of starting states and samples
// starting states for episodes
type Starter interface {
	Start() State
}

// CategoricalStarter returns starting states sampled from a uniform
// categorical distribution over a fixed state set
type CategoricalStarter struct {
	states []State
	seed   uint64
	rand   distuv.Categorical
}

// NewCategoricalStarter returns a new CategoricalStarter sampling
// uniformly from states
func NewCategoricalStarter(states []State, seed uint64) CategoricalStarter {
	source := rand.NewSource(seed)

	weights := make([]float64, len(states))
	for i := range weights {
		weights[i] = 1.0 / float64(len(weights))
	}

	return CategoricalStarter{states, seed, distuv.NewCategorical(weights, source)}
}

// Start returns a starting state
func (c CategoricalStarter) Start() State {
	return c.states[int(c.rand.Rand())]
}

// ExploringStarter samples uniform starting (state, action) pairs. It
// guarantees that every pair has nonzero probability of beginning an
// episode, the exploring-starts precondition for Monte Carlo control.
type ExploringStarter struct {
	states     []State
	actions    []Action
	seed       uint64
	stateRand  distuv.Categorical
	actionRand distuv.Categorical
}

// NewExploringStarter returns a new ExploringStarter sampling
// uniformly over the environment's full state and action sets
func NewExploringStarter(env Environment, seed uint64) ExploringStarter {
	source := rand.NewSource(seed)

	states := env.States()
	stateWeights := make([]float64, len(states))
	for i := range stateWeights {
		stateWeights[i] = 1.0 / float64(len(stateWeights))
	}

	actions := env.Actions()
	actionWeights := make([]float64, len(actions))
	for i := range actionWeights {
		actionWeights[i] = 1.0 / float64(len(actionWeights))
	}

	return ExploringStarter{
		states:     states,
		actions:    actions,
		seed:       seed,
		stateRand:  distuv.NewCategorical(stateWeights, source),
		actionRand: distuv.NewCategorical(actionWeights, source),
	}
}

// Start returns a starting state
func (e ExploringStarter) Start() State {
	return e.states[int(e.stateRand.Rand())]
}

// StartPair returns a starting (state, action) pair
func (e ExploringStarter) StartPair() (State, Action) {
	return e.Start(), e.actions[int(e.actionRand.Rand())]
}
