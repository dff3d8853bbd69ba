package montecarlo

import (
	"errors"
	"fmt"
	"time"

	"github.com/samuelfneumann/gomonte/environment"
	"github.com/samuelfneumann/gomonte/episode"
	"github.com/samuelfneumann/gomonte/experiment/trackers"
	"github.com/samuelfneumann/gomonte/policy"
	"github.com/samuelfneumann/gomonte/table"
	"github.com/samuelfneumann/gomonte/timestep"
	"github.com/samuelfneumann/gomonte/utils/progressbar"
)

// Config represents a configuration for the ExploringStarts control
// loop
type Config struct {
	// Iterations is the number of episodes to alternate between
	// evaluation and improvement. There is no convergence check: the
	// caller controls the iteration count.
	Iterations int

	// Delta is the exploration perturbation applied to the greedy
	// policy during episode generation. Zero selects
	// episode.DefaultDelta, so an unperturbed greedy run is not
	// expressible here; use an episode.Generator with delta 0 directly
	// for that.
	Delta float64

	// MaxSteps bounds episode length. Zero selects
	// episode.DefaultMaxSteps.
	MaxSteps int

	// Sentinel is the initial action value for unvisited
	// (state, action) pairs. Zero selects table.Sentinel, so a literal
	// zero initial value is not expressible here; initialize a
	// table.ActionValues with table.NewActionValues for that.
	Sentinel float64

	// ShowProgress displays a progress bar over iterations
	ShowProgress bool
}

// Validate ensures that the Config is valid
func (c Config) Validate() error {
	if c.Iterations < 0 {
		return fmt.Errorf("iterations cannot be lower than 0")
	}
	if c.Delta < 0 {
		return fmt.Errorf("delta cannot be lower than 0")
	}
	if c.MaxSteps < 0 {
		return fmt.Errorf("max steps cannot be lower than 0")
	}
	return nil
}

// delta returns the configured exploration perturbation
func (c Config) delta() float64 {
	if c.Delta == 0 {
		return episode.DefaultDelta
	}
	return c.Delta
}

// maxSteps returns the configured safety step bound
func (c Config) maxSteps() int {
	if c.MaxSteps == 0 {
		return episode.DefaultMaxSteps
	}
	return c.MaxSteps
}

// sentinel returns the configured initial action value
func (c Config) sentinel() float64 {
	if c.Sentinel == 0 {
		return table.Sentinel
	}
	return c.Sentinel
}

// ExploringStarts estimates the optimal action values and a
// near-optimal policy by Monte Carlo control with exploring starts.
//
// Each iteration starts an episode from a uniformly sampled
// (state, action) pair, generates the episode under the current
// policy, folds the episode's first-visit returns into the action
// values, and rebuilds the policy greedily with respect to the updated
// values. Improvement follows every single episode, so evaluation is
// optimistic rather than run to convergence between improvement steps.
type ExploringStarts struct {
	env      environment.Environment
	config   Config
	seed     uint64
	starter  environment.ExploringStarter
	gen      *episode.Generator
	trackers []trackers.Tracker
}

// New returns a new ExploringStarts control loop on env. Any trackers
// are sent each completed episode.
func New(env environment.Environment, config Config, seed uint64,
	t ...trackers.Tracker) (*ExploringStarts, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("exploringstarts: invalid config: %v", err)
	}

	gen, err := episode.NewGenerator(env, config.delta(), config.maxSteps(),
		seed)
	if err != nil {
		return nil, fmt.Errorf("exploringstarts: %v", err)
	}

	starter := environment.NewExploringStarter(env, seed)

	return &ExploringStarts{env, config, seed, starter, gen, t}, nil
}

// Run runs the control loop for the configured number of iterations,
// returning the estimated action values and the final greedy policy.
// Episodes exceeding the step bound are skipped without aborting the
// loop; the policy is left unchanged for such iterations.
func (e *ExploringStarts) Run() (table.ActionValues, *policy.Policy, error) {
	q := table.NewActionValues(e.env.Transitions(), e.config.sentinel())
	returns := table.NewReturns(e.env.Transitions())
	gamma := e.env.Discount()

	pol, err := policy.NewArbitrary(e.env, e.seed)
	if err != nil {
		return nil, nil, fmt.Errorf("run: %v", err)
	}

	var bar *progressbar.ProgressBar
	if e.config.ShowProgress {
		bar = progressbar.New(65, e.config.Iterations, time.Second)
		bar.Display()
		defer bar.Close()
	}

	for i := 0; i < e.config.Iterations; i++ {
		if bar != nil {
			bar.Increment()
		}

		start, first := e.starter.StartPair()
		ep, err := e.gen.WithStart(pol, start, first)
		if errors.Is(err, episode.ErrOverrun) {
			continue
		} else if err != nil {
			return nil, nil, fmt.Errorf("run: %v", err)
		}

		e.update(q, returns, ep, gamma)
		e.track(ep)

		pol, err = policy.NewGreedy(e.env, q, e.seed)
		if err != nil {
			return nil, nil, fmt.Errorf("run: %v", err)
		}
	}

	return q, pol, nil
}

// update applies the first-visit update rule for every (state, action)
// pair in a completed episode. First visits are keyed by position in
// the episode, so repeated occurrences of a pair each refer to their
// own index even when their recorded rewards coincide.
func (e *ExploringStarts) update(q table.ActionValues, returns table.Returns,
	ep timestep.Episode, gamma float64) {
	G := ep.Returns(gamma)
	visited := make(map[table.StateAction]bool)

	for i, step := range ep {
		// The terminal-arrival step carries no action and is never a
		// visit
		if step.Last() {
			continue
		}

		key := table.StateAction{State: step.State, Action: step.Action}
		if visited[key] {
			continue
		}
		visited[key] = true

		ret := 0.0
		if i+1 < len(G) {
			ret = G[i+1]
		}

		returns.Append(step.State, step.Action, ret)
		q.Set(step.State, step.Action, returns.Mean(step.State, step.Action))
	}
}

// track sends a completed episode to each tracker
func (e *ExploringStarts) track(ep timestep.Episode) {
	for _, t := range e.trackers {
		t.Track(ep)
	}
}

// Save saves all the data cached by the trackers to disk
func (e *ExploringStarts) Save() {
	for _, t := range e.trackers {
		t.Save()
	}
}
