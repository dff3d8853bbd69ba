package policy

import "github.com/samuelfneumann/gomonte/environment"

// NewRandom returns the equiprobable random policy: every action has
// probability 1/|actions| in every state
func NewRandom(env environment.Environment, seed uint64) (*Policy, error) {
	p, err := newPolicy(env, seed)
	if err != nil {
		return nil, err
	}

	prob := 1.0 / float64(p.NumActions())
	row := make([]float64, p.NumActions())
	for a := range row {
		row[a] = prob
	}

	for s := 0; s < p.NumStates(); s++ {
		p.probs.SetRow(s, row)
	}
	return p, nil
}
