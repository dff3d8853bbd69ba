// Package episode implements episode generation for tabular
// environments
package episode

import (
	"errors"
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/samuelfneumann/gomonte/environment"
	"github.com/samuelfneumann/gomonte/policy"
	"github.com/samuelfneumann/gomonte/timestep"
	"gonum.org/v1/gonum/stat/distuv"
)

const (
	// DefaultMaxSteps is the default safety step bound on episode
	// length
	DefaultMaxSteps int = 10_000

	// DefaultDelta is the default exploration perturbation applied to
	// the policy's action distribution at each step
	DefaultDelta float64 = 0.2
)

// ErrOverrun indicates that episode generation exceeded the safety
// step bound before reaching a terminal state. No truncated episode is
// returned alongside it.
var ErrOverrun = errors.New("episode: safety step bound exceeded")

// Generator generates episodes in a tabular environment under a
// policy.
//
// At each step the generator samples the next action from the
// policy's distribution perturbed by delta (see policy.Perturbed), so
// that even a deterministic greedy policy keeps non-zero probability
// mass away from its greedy action. The perturbation is the primary
// guard against episodes cycling forever under a non-converged greedy
// policy; the step bound is a hard safety valve behind it.
type Generator struct {
	env      environment.Environment
	delta    float64
	maxSteps int
	source   rand.Source
}

// NewGenerator returns a new episode Generator. Episodes longer than
// maxSteps timesteps fail with ErrOverrun.
func NewGenerator(env environment.Environment, delta float64, maxSteps int,
	seed uint64) (*Generator, error) {
	if delta < 0 {
		return nil, fmt.Errorf("generator: delta must be non-negative, "+
			"got %v", delta)
	}
	if maxSteps <= 0 {
		return nil, fmt.Errorf("generator: maxSteps must be positive, "+
			"got %d", maxSteps)
	}

	return &Generator{env, delta, maxSteps, rand.NewSource(seed)}, nil
}

// WithStart generates an episode under pol beginning with the forced
// (start, first) pair, regardless of the probability pol places on
// first. The first timestep carries the placeholder reward since no
// transition has occurred yet; each following timestep records the
// state transitioned into, the reward for that transition, and the
// action selected in the new state. The final timestep records the
// arrival at a terminal state and has no action.
//
// If start is itself terminal, the episode is a single actionless
// timestep and no transitions are taken.
func (g *Generator) WithStart(pol *policy.Policy, start environment.State,
	first environment.Action) (timestep.Episode, error) {
	if err := pol.Validate(); err != nil {
		return nil, err
	}

	if g.env.Terminal(start) {
		return timestep.Episode{
			timestep.New(timestep.Last, start, timestep.NoAction,
				timestep.PlaceholderReward, 0),
		}, nil
	}

	ep := timestep.Episode{
		timestep.New(timestep.First, start, first, timestep.PlaceholderReward,
			0),
	}

	state, action := start, first
	for n := 1; n < g.maxSteps; n++ {
		next, reward := g.env.Step(state, action)

		if g.env.Terminal(next) {
			ep = append(ep, timestep.New(timestep.Last, next,
				timestep.NoAction, reward, n))
			return ep, nil
		}

		dist := distuv.NewCategorical(pol.Perturbed(next, g.delta), g.source)
		nextAction := environment.Action(dist.Rand())

		ep = append(ep, timestep.New(timestep.Mid, next, nextAction, reward,
			n))
		state, action = next, nextAction
	}

	return nil, ErrOverrun
}

// Run generates an episode under pol beginning at start, with the
// first action sampled from pol's (perturbed) distribution for start
func (g *Generator) Run(pol *policy.Policy,
	start environment.State) (timestep.Episode, error) {
	if g.env.Terminal(start) {
		return timestep.Episode{
			timestep.New(timestep.Last, start, timestep.NoAction,
				timestep.PlaceholderReward, 0),
		}, nil
	}

	dist := distuv.NewCategorical(pol.Perturbed(start, g.delta), g.source)
	first := environment.Action(dist.Rand())

	return g.WithStart(pol, start, first)
}
