// Package policy implements tabular policies over enumerable state
// and action sets
package policy

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"

	"github.com/samuelfneumann/gomonte/environment"
	"github.com/samuelfneumann/gomonte/utils/floatutils"
	"github.com/samuelfneumann/gomonte/utils/matutils"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Tolerance is the floating point tolerance within which a state's
// action probabilities must sum to 1
const Tolerance float64 = 1e-9

// Policy maps each state to a probability distribution over actions.
// The distribution is stored as a dense matrix with one row per state
// and one column per action, so probabilities are looked up by the
// (state, action) enumeration directly rather than by positional
// aliasing between separate action and probability lists.
type Policy struct {
	probs  *mat.Dense // rows = states, cols = actions
	seed   uint64
	source rand.Source
	rnd    *rand.Rand
}

// newPolicy constructs an empty policy over the argument environment's
// state and action sets. The environment's states and actions must be
// enumerated starting from 0 so that they can index the probability
// matrix.
func newPolicy(env environment.Environment, seed uint64) (*Policy, error) {
	states := env.States()
	for i, s := range states {
		if int(s) != i {
			return nil, fmt.Errorf("policy: states must be enumerated " +
				"starting from 0")
		}
	}

	actions := env.Actions()
	for i, a := range actions {
		if int(a) != i {
			return nil, fmt.Errorf("policy: actions must be enumerated " +
				"starting from 0")
		}
	}

	source := rand.NewSource(seed)
	return &Policy{
		probs:  mat.NewDense(len(states), len(actions), nil),
		seed:   seed,
		source: source,
		rnd:    rand.New(source),
	}, nil
}

// NumStates returns the number of states the policy is defined over
func (p *Policy) NumStates() int {
	r, _ := p.probs.Dims()
	return r
}

// NumActions returns the number of actions the policy is defined over
func (p *Policy) NumActions() int {
	_, c := p.probs.Dims()
	return c
}

// Prob returns the probability of selecting action a in state s
func (p *Policy) Prob(s environment.State, a environment.Action) float64 {
	p.check(s)
	return p.probs.At(int(s), int(a))
}

// Probs returns a copy of the action probability vector for state s
func (p *Policy) Probs(s environment.State) []float64 {
	p.check(s)
	row := make([]float64, p.NumActions())
	copy(row, p.probs.RawRowView(int(s)))
	return row
}

// SetProbs sets the action probability vector for state s. The vector
// must have one entry per action, all entries non-negative and summing
// to 1 within Tolerance.
func (p *Policy) SetProbs(s environment.State, probs []float64) error {
	p.check(s)
	if err := validRow(s, probs, p.NumActions()); err != nil {
		return err
	}
	p.probs.SetRow(int(s), probs)
	return nil
}

// Validate checks that every state's action probabilities form a valid
// probability distribution
func (p *Policy) Validate() error {
	for s := 0; s < p.NumStates(); s++ {
		row := p.probs.RawRowView(s)
		if err := validRow(environment.State(s), row, p.NumActions()); err != nil {
			return err
		}
	}
	return nil
}

// SelectAction samples an action for state s from the policy's
// distribution
func (p *Policy) SelectAction(s environment.State) environment.Action {
	p.check(s)
	dist := distuv.NewCategorical(p.probs.RawRowView(int(s)), p.source)
	return environment.Action(dist.Rand())
}

// GreedyAction returns the action with the highest probability in
// state s. Ties are broken by the lowest action index in the fixed
// ordering.
func (p *Policy) GreedyAction(s environment.State) environment.Action {
	p.check(s)
	return environment.Action(matutils.MaxVec(p.probs.RowView(int(s))))
}

// Perturbed returns a copy of the action probability vector for state
// s with exploration mass moved away from the highest-probability
// action: the greedy action's probability is reduced by up to delta,
// and the removed mass is split evenly between two other actions
// chosen uniformly at random. The perturbed vector still sums to 1.
//
// Sampling from the perturbed vector guarantees non-zero probability
// away from the greedy action, which prevents episodes from stalling
// in cycles under a deterministic greedy policy. A delta of 0 returns
// the state's distribution unchanged.
func (p *Policy) Perturbed(s environment.State, delta float64) []float64 {
	row := p.Probs(s)
	numActions := len(row)
	if delta <= 0 || numActions < 2 {
		return row
	}

	greedy := floatutils.ArgMax(row)
	removed := row[greedy] - floatutils.Clip(row[greedy]-delta, 0, 1)
	row[greedy] -= removed

	if numActions == 2 {
		row[1-greedy] += removed
		return row
	}

	// Two distinct non-greedy actions each receive half the removed
	// mass
	first := p.otherAction(greedy, -1, numActions)
	second := p.otherAction(greedy, first, numActions)
	row[first] += removed / 2
	row[second] += removed / 2

	return row
}

// otherAction returns an action index chosen uniformly at random,
// excluding the actions skip and skip2
func (p *Policy) otherAction(skip, skip2, numActions int) int {
	for {
		a := p.rnd.Intn(numActions)
		if a != skip && a != skip2 {
			return a
		}
	}
}

// check panics if state s is outside the policy's enumerated states
func (p *Policy) check(s environment.State) {
	if int(s) < 0 || int(s) >= p.NumStates() {
		panic(fmt.Sprintf("policy: state %v outside enumerated states", s))
	}
}

// validRow checks that a probability vector has the right length, no
// negative entries, and sums to 1 within Tolerance
func validRow(s environment.State, row []float64, numActions int) error {
	if len(row) != numActions {
		return fmt.Errorf("policy: state %v has %d probabilities for %d "+
			"actions", s, len(row), numActions)
	}
	for a, prob := range row {
		if prob < 0 {
			return fmt.Errorf("policy: state %v action %d has negative "+
				"probability %v", s, a, prob)
		}
	}
	if sum := floats.Sum(row); math.Abs(sum-1.0) > Tolerance {
		return fmt.Errorf("policy: state %v probabilities sum to %v, not 1",
			s, sum)
	}
	return nil
}
