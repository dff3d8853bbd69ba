package episode

import (
	"errors"
	"testing"

	"github.com/samuelfneumann/gomonte/environment"
	"github.com/samuelfneumann/gomonte/environment/gridworld"
	"github.com/samuelfneumann/gomonte/policy"
	"github.com/samuelfneumann/gomonte/timestep"
)

// loopEnv is a two state environment with no terminal states, so no
// episode in it can ever finish
type loopEnv struct{}

func (loopEnv) States() []environment.State {
	return []environment.State{0, 1}
}

func (loopEnv) Actions() []environment.Action {
	return []environment.Action{0, 1}
}

func (loopEnv) Transitions() []environment.Transition {
	var transitions []environment.Transition
	for _, s := range (loopEnv{}).States() {
		for _, a := range (loopEnv{}).Actions() {
			next, reward := (loopEnv{}).Step(s, a)
			transitions = append(transitions, environment.Transition{
				State:  s,
				Action: a,
				Next:   next,
				Reward: reward,
			})
		}
	}
	return transitions
}

func (loopEnv) Step(s environment.State,
	a environment.Action) (environment.State, float64) {
	return 1 - s, -1
}

func (loopEnv) Terminal(environment.State) bool { return false }

func (loopEnv) Discount() float64 { return 0.9 }

func newTestGridWorld(t *testing.T) *gridworld.GridWorld {
	t.Helper()

	g, err := gridworld.New(4, 4, []environment.State{0, 15}, -1, 0.9)
	if err != nil {
		t.Fatalf("could not create gridworld: %v", err)
	}
	return g
}

func TestWithStartReachesTerminal(t *testing.T) {
	env := newTestGridWorld(t)

	pol, err := policy.NewRandom(env, 1923)
	if err != nil {
		t.Fatalf("could not create policy: %v", err)
	}

	gen, err := NewGenerator(env, DefaultDelta, DefaultMaxSteps, 1923)
	if err != nil {
		t.Fatalf("could not create generator: %v", err)
	}

	ep, err := gen.WithStart(pol, 5, gridworld.Up)
	if err != nil {
		t.Fatalf("could not generate episode: %v", err)
	}

	first := ep[0]
	if !first.First() || first.State != 5 || first.Action != gridworld.Up {
		t.Errorf("episode does not begin with the forced pair: %v", first)
	}
	if first.Reward != timestep.PlaceholderReward {
		t.Errorf("expected placeholder reward on first step, got %v",
			first.Reward)
	}

	last := ep[len(ep)-1]
	if !last.Last() {
		t.Error("episode does not end with a Last step")
	}
	if !env.Terminal(last.State) {
		t.Errorf("episode ends in non-terminal state %v", last.State)
	}
	if last.Action != timestep.NoAction {
		t.Error("terminal-arrival step should carry no action")
	}

	for i, step := range ep {
		if step.Number != i {
			t.Errorf("step %d numbered %d", i, step.Number)
		}
	}
}

func TestWithStartDeterministicTransition(t *testing.T) {
	env := newTestGridWorld(t)

	pol, err := policy.NewRandom(env, 1923)
	if err != nil {
		t.Fatalf("could not create policy: %v", err)
	}

	gen, err := NewGenerator(env, DefaultDelta, DefaultMaxSteps, 1923)
	if err != nil {
		t.Fatalf("could not create generator: %v", err)
	}

	// Left from state 1 transitions straight into terminal state 0
	ep, err := gen.WithStart(pol, 1, gridworld.Left)
	if err != nil {
		t.Fatalf("could not generate episode: %v", err)
	}
	if len(ep) != 2 {
		t.Fatalf("expected a 2 step episode, got %d steps", len(ep))
	}
	if ep[1].State != 0 || ep[1].Reward != -1 {
		t.Errorf("expected arrival at state 0 with reward -1, got %v", ep[1])
	}
}

func TestWithStartOverrun(t *testing.T) {
	env := loopEnv{}

	pol, err := policy.NewRandom(env, 1923)
	if err != nil {
		t.Fatalf("could not create policy: %v", err)
	}

	maxSteps := 10
	gen, err := NewGenerator(env, DefaultDelta, maxSteps, 1923)
	if err != nil {
		t.Fatalf("could not create generator: %v", err)
	}

	ep, err := gen.WithStart(pol, 0, 0)
	if !errors.Is(err, ErrOverrun) {
		t.Fatalf("expected ErrOverrun, got %v", err)
	}
	if ep != nil {
		t.Error("expected no truncated episode alongside ErrOverrun")
	}
}

func TestWithStartTerminalStart(t *testing.T) {
	env := newTestGridWorld(t)

	pol, err := policy.NewRandom(env, 1923)
	if err != nil {
		t.Fatalf("could not create policy: %v", err)
	}

	gen, err := NewGenerator(env, DefaultDelta, DefaultMaxSteps, 1923)
	if err != nil {
		t.Fatalf("could not create generator: %v", err)
	}

	ep, err := gen.WithStart(pol, 0, gridworld.Up)
	if err != nil {
		t.Fatalf("could not generate episode: %v", err)
	}
	if len(ep) != 1 || !ep[0].Last() || ep[0].Action != timestep.NoAction {
		t.Errorf("expected a single actionless step, got %v", ep)
	}
}

func TestNewGeneratorValidation(t *testing.T) {
	env := newTestGridWorld(t)

	if _, err := NewGenerator(env, -0.1, DefaultMaxSteps, 1923); err == nil {
		t.Error("expected error for negative delta")
	}
	if _, err := NewGenerator(env, DefaultDelta, 0, 1923); err == nil {
		t.Error("expected error for non-positive step bound")
	}
}

func TestRunSamplesFirstAction(t *testing.T) {
	env := newTestGridWorld(t)

	pol, err := policy.NewRandom(env, 1923)
	if err != nil {
		t.Fatalf("could not create policy: %v", err)
	}

	gen, err := NewGenerator(env, 0, DefaultMaxSteps, 1923)
	if err != nil {
		t.Fatalf("could not create generator: %v", err)
	}

	ep, err := gen.Run(pol, 5)
	if err != nil {
		t.Fatalf("could not generate episode: %v", err)
	}
	if ep[0].State != 5 || ep[0].Action == timestep.NoAction {
		t.Errorf("expected first step in state 5 with a sampled action, "+
			"got %v", ep[0])
	}
}
