package table

import (
	"fmt"

	"github.com/samuelfneumann/gomonte/environment"
	"gonum.org/v1/gonum/mat"
)

// StateValues maps each state to a scalar estimate of its value.
// Values are backed by a dense vector indexed by state, initialized to
// zero. Terminal states are never updated by the prediction routines,
// so their value stays at the conventional zero.
type StateValues struct {
	values *mat.VecDense
}

// NewStateValues creates a new StateValues table over numStates
// states, all initialized to zero
func NewStateValues(numStates int) *StateValues {
	return &StateValues{mat.NewVecDense(numStates, nil)}
}

// At returns the value estimate for state s
func (v *StateValues) At(s environment.State) float64 {
	v.check(s)
	return v.values.AtVec(int(s))
}

// Set records a new value estimate for state s
func (v *StateValues) Set(s environment.State, value float64) {
	v.check(s)
	v.values.SetVec(int(s), value)
}

// Len returns the number of states in the table
func (v *StateValues) Len() int {
	return v.values.Len()
}

// Vec returns the table's backing vector
func (v *StateValues) Vec() mat.Vector {
	return v.values
}

// Grid returns the state values reshaped into an r x c matrix, for
// environments whose states lay out on a grid
func (v *StateValues) Grid(r, c int) (*mat.Dense, error) {
	if r*c != v.values.Len() {
		return nil, fmt.Errorf("grid: cannot reshape %d values to (%d, %d)",
			v.values.Len(), r, c)
	}
	return mat.NewDense(r, c, mat.Col(nil, 0, v.values)), nil
}

func (v *StateValues) check(s environment.State) {
	if int(s) < 0 || int(s) >= v.values.Len() {
		panic(fmt.Sprintf("statevalues: state %v outside enumerated states", s))
	}
}
