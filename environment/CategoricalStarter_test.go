package environment

import "testing"

// Both starters implement the Starter interface
var (
	_ Starter = CategoricalStarter{}
	_ Starter = ExploringStarter{}
)

type chainEnv struct{}

func (chainEnv) States() []State   { return []State{0, 1, 2} }
func (chainEnv) Actions() []Action { return []Action{0, 1} }

func (chainEnv) Transitions() []Transition {
	return []Transition{
		{State: 1, Action: 0, Next: 0, Reward: -1},
		{State: 1, Action: 1, Next: 2, Reward: -1},
	}
}

func (chainEnv) Step(s State, a Action) (State, float64) {
	if a == 0 {
		return s - 1, -1
	}
	return s + 1, -1
}

func (chainEnv) Terminal(s State) bool { return s == 0 || s == 2 }

func (chainEnv) Discount() float64 { return 0.9 }

func TestCategoricalStarterStaysInStateSet(t *testing.T) {
	states := []State{0, 1, 2}
	starter := NewCategoricalStarter(states, 1923)

	for i := 0; i < 100; i++ {
		s := starter.Start()
		if int(s) < 0 || int(s) >= len(states) {
			t.Fatalf("sampled state %v outside state set", s)
		}
	}
}

func TestExploringStarterStaysInPairSet(t *testing.T) {
	starter := NewExploringStarter(chainEnv{}, 1923)

	for i := 0; i < 100; i++ {
		s, a := starter.StartPair()
		if int(s) < 0 || int(s) > 2 {
			t.Fatalf("sampled state %v outside state set", s)
		}
		if int(a) < 0 || int(a) > 1 {
			t.Fatalf("sampled action %v outside action set", a)
		}
	}
}

func TestStartersDeterministicWithSeed(t *testing.T) {
	first := NewCategoricalStarter([]State{0, 1, 2}, 1923)
	second := NewCategoricalStarter([]State{0, 1, 2}, 1923)

	for i := 0; i < 20; i++ {
		if a, b := first.Start(), second.Start(); a != b {
			t.Fatalf("same seed sampled %v and %v", a, b)
		}
	}
}
