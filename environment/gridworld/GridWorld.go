// Package gridworld implements 2D gridworld environments
package gridworld

import (
	"fmt"

	"github.com/samuelfneumann/gomonte/environment"
	"github.com/samuelfneumann/gomonte/utils/matutils"
	"gonum.org/v1/gonum/mat"
)

// Actions available in every non-terminal state
const (
	Left environment.Action = iota
	Right
	Up
	Down
)

// Actions is the fixed ordering of the gridworld action set
var Actions []environment.Action = []environment.Action{Left, Right, Up, Down}

// GridWorld implements a deterministic gridworld over a flattened
// r x c grid of states. Every transition earns the step reward,
// including the transition into a terminal state, and moves off the
// grid leave the state unchanged. Terminal states have no outgoing
// transitions.
type GridWorld struct {
	r, c       int
	terminals  map[environment.State]bool
	stepReward float64
	discount   float64
}

// New creates a new gridworld with r rows, c columns, the argument
// terminal states, reward stepReward on every transition, and
// discount factor discount
func New(r, c int, terminals []environment.State, stepReward,
	discount float64) (*GridWorld, error) {
	if r < 1 || c < 1 {
		return nil, fmt.Errorf("gridworld: non-positive dimensions (%d, %d)",
			r, c)
	}
	if discount <= 0 || discount > 1 {
		return nil, fmt.Errorf("gridworld: discount %v not in (0, 1]",
			discount)
	}

	terminalSet := make(map[environment.State]bool, len(terminals))
	for _, s := range terminals {
		if int(s) < 0 || int(s) >= r*c {
			return nil, fmt.Errorf("gridworld: terminal state %v outside "+
				"grid of %d states", s, r*c)
		}
		terminalSet[s] = true
	}

	return &GridWorld{r, c, terminalSet, stepReward, discount}, nil
}

// Dims gets the rows and columns of the GridWorld
func (g *GridWorld) Dims() (r, c int) {
	return g.r, g.c
}

// States returns all states in the gridworld, terminal states included
func (g *GridWorld) States() []environment.State {
	states := make([]environment.State, g.r*g.c)
	for i := range states {
		states[i] = environment.State(i)
	}
	return states
}

// Actions returns the actions available in every non-terminal state
func (g *GridWorld) Actions() []environment.Action {
	return Actions
}

// Transitions enumerates every (state, action) transition from the
// non-terminal states
func (g *GridWorld) Transitions() []environment.Transition {
	var transitions []environment.Transition
	for _, s := range g.States() {
		if g.Terminal(s) {
			continue
		}
		for _, a := range Actions {
			next, reward := g.Step(s, a)
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

// Step applies action a in state s, returning the next state and the
// reward for the transition. Step panics if s is terminal, since
// terminal states have no outgoing transitions.
func (g *GridWorld) Step(s environment.State,
	a environment.Action) (environment.State, float64) {
	if g.Terminal(s) {
		panic(fmt.Sprintf("step: no transitions from terminal state %v", s))
	}

	x, y := g.coordinates(s)

	// Move the current position
	switch a {
	case Left:
		if newX := x - 1; newX >= 0 {
			x = newX
		}

	case Right:
		if newX := x + 1; newX < g.c {
			x = newX
		}

	case Up:
		if newY := y + 1; newY < g.r {
			y = newY
		}

	case Down:
		if newY := y - 1; newY >= 0 {
			y = newY
		}

	default:
		panic(fmt.Sprintf("step: unknown action %v", a))
	}

	return environment.State(y*g.c + x), g.stepReward
}

// Terminal returns whether s is a terminal state
func (g *GridWorld) Terminal(s environment.State) bool {
	return g.terminals[s]
}

// Discount returns the gridworld's discount factor
func (g *GridWorld) Discount() float64 {
	return g.discount
}

// coordinates converts a state into its (x, y) grid coordinates
func (g *GridWorld) coordinates(s environment.State) (int, int) {
	y := int(s) / g.c
	x := int(s) - y*g.c
	return x, y
}

func (g *GridWorld) String() string {
	str := "GridWorld | Terminals:\n%v\nBounds: (%d, %d)  |  Discount: %v"

	terminals := mat.NewDense(g.r, g.c, nil)
	for s := range g.terminals {
		x, y := g.coordinates(s)
		terminals.Set(y, x, 1.0)
	}

	return fmt.Sprintf(str, matutils.Format(terminals), g.r, g.c, g.discount)
}
