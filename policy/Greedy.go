package policy

import (
	"github.com/samuelfneumann/gomonte/environment"
	"github.com/samuelfneumann/gomonte/table"
	"github.com/samuelfneumann/gomonte/utils/floatutils"
)

// NewGreedy returns the deterministic greedy policy with respect to
// the action values q: in each state, the highest-valued action gets
// probability 1 and all other actions get probability 0. Ties are
// broken by the lowest action index in the fixed ordering.
//
// States with no entries in q (terminal states, which have no
// outgoing transitions) are given the equiprobable distribution. No
// action is ever selected in a terminal state, so the choice only
// keeps the policy valid over the full state set.
func NewGreedy(env environment.Environment, q table.ActionValues,
	seed uint64) (*Policy, error) {
	p, err := newPolicy(env, seed)
	if err != nil {
		return nil, err
	}

	actions := env.Actions()
	values := make([]float64, len(actions))

	for _, s := range env.States() {
		row := make([]float64, len(actions))

		if !q.Contains(s, actions[0]) {
			for a := range row {
				row[a] = 1.0 / float64(len(actions))
			}
			p.probs.SetRow(int(s), row)
			continue
		}

		for i, a := range actions {
			values[i] = q.At(s, a)
		}
		row[floatutils.ArgMax(values)] = 1.0
		p.probs.SetRow(int(s), row)
	}
	return p, nil
}
