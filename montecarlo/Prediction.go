// Package montecarlo implements Monte Carlo estimation of value
// functions and near-optimal policies for finite MDPs
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

// PredictionConfig represents a configuration for Monte Carlo
// prediction
type PredictionConfig struct {
	// Episodes is the number of episodes to sample
	Episodes int

	// EveryVisit selects the every-visit update rule, which updates a
	// state's value at every occurrence of the state in an episode.
	// The default (first-visit) updates only at the first occurrence.
	EveryVisit bool

	// MaxSteps bounds episode length. Zero selects
	// episode.DefaultMaxSteps.
	MaxSteps int

	// ShowProgress displays a progress bar over episodes
	ShowProgress bool
}

// Validate ensures that the PredictionConfig is valid
func (c PredictionConfig) Validate() error {
	if c.Episodes < 0 {
		return fmt.Errorf("episodes cannot be lower than 0")
	}
	if c.MaxSteps < 0 {
		return fmt.Errorf("max steps cannot be lower than 0")
	}
	return nil
}

// Prediction estimates the state-value function of a fixed policy by
// sampling episodes and averaging the discounted returns observed at
// each state. Episodes start from states sampled uniformly over the
// environment's full state set.
type Prediction struct {
	env      environment.Environment
	pol      *policy.Policy
	config   PredictionConfig
	starter  environment.Starter
	gen      *episode.Generator
	trackers []trackers.Tracker
}

// NewPrediction returns a new Prediction for estimating the value of
// pol in env. If pol is nil, the equiprobable random policy is
// evaluated. Any trackers are sent each completed episode.
func NewPrediction(env environment.Environment, pol *policy.Policy,
	config PredictionConfig, seed uint64,
	t ...trackers.Tracker) (*Prediction, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("prediction: invalid config: %v", err)
	}

	if pol == nil {
		var err error
		pol, err = policy.NewRandom(env, seed)
		if err != nil {
			return nil, fmt.Errorf("prediction: %v", err)
		}
	} else if err := pol.Validate(); err != nil {
		return nil, fmt.Errorf("prediction: %v", err)
	}

	maxSteps := config.MaxSteps
	if maxSteps == 0 {
		maxSteps = episode.DefaultMaxSteps
	}

	// The policy under evaluation is fixed, so episodes are sampled
	// from its exact distribution with no exploration perturbation
	gen, err := episode.NewGenerator(env, 0, maxSteps, seed)
	if err != nil {
		return nil, fmt.Errorf("prediction: %v", err)
	}

	starter := environment.NewCategoricalStarter(env.States(), seed)

	return &Prediction{env, pol, config, starter, gen, t}, nil
}

// Run samples episodes and returns the estimated state values
// together with the per-state sequences of observed returns. Values
// of states never visited, terminal states included, stay zero.
// Episodes exceeding the step bound are skipped without aborting the
// run.
func (p *Prediction) Run() (*table.StateValues, table.StateReturns, error) {
	v := table.NewStateValues(len(p.env.States()))
	returns := table.NewStateReturns(p.env.States())
	gamma := p.env.Discount()

	var bar *progressbar.ProgressBar
	if p.config.ShowProgress {
		bar = progressbar.New(65, p.config.Episodes, time.Second)
		bar.Display()
		defer bar.Close()
	}

	for i := 0; i < p.config.Episodes; i++ {
		if bar != nil {
			bar.Increment()
		}

		ep, err := p.gen.Run(p.pol, p.starter.Start())
		if errors.Is(err, episode.ErrOverrun) {
			continue
		} else if err != nil {
			return nil, nil, fmt.Errorf("run: %v", err)
		}

		p.update(v, returns, ep, gamma)
		p.track(ep)
	}

	return v, returns, nil
}

// update applies the first-visit (or every-visit) update rule for
// every state in a completed episode
func (p *Prediction) update(v *table.StateValues, returns table.StateReturns,
	ep timestep.Episode, gamma float64) {
	G := ep.Returns(gamma)
	visited := make(map[environment.State]bool)

	for i, step := range ep {
		// The terminal-arrival step is never a visit
		if step.Last() {
			continue
		}

		if !p.config.EveryVisit {
			if visited[step.State] {
				continue
			}
			visited[step.State] = true
		}

		ret := 0.0
		if i+1 < len(G) {
			ret = G[i+1]
		}

		returns.Append(step.State, ret)
		v.Set(step.State, returns.Mean(step.State))
	}
}

// track sends a completed episode to each tracker
func (p *Prediction) track(ep timestep.Episode) {
	for _, t := range p.trackers {
		t.Track(ep)
	}
}

// Save saves all the data cached by the trackers to disk
func (p *Prediction) Save() {
	for _, t := range p.trackers {
		t.Save()
	}
}
