package policy

import (
	"sort"

	"golang.org/x/exp/rand"

	"github.com/samuelfneumann/gomonte/environment"
	"gonum.org/v1/gonum/stat/distuv"
)

// NewArbitrary returns a policy whose action probability vector for
// each state is drawn uniformly from the probability simplex: |A|-1
// independent uniform(0, 1) samples are sorted, and the successive
// gaps between them (plus the final remainder) form the probabilities
// over actions in the fixed ordering.
func NewArbitrary(env environment.Environment, seed uint64) (*Policy, error) {
	p, err := newPolicy(env, seed)
	if err != nil {
		return nil, err
	}

	uniform := distuv.Uniform{Min: 0, Max: 1, Src: rand.NewSource(seed)}

	numActions := p.NumActions()
	for s := 0; s < p.NumStates(); s++ {
		p.probs.SetRow(s, simplexSample(uniform, numActions))
	}
	return p, nil
}

// simplexSample draws a probability vector of length k uniformly from
// the k-1 dimensional probability simplex
func simplexSample(uniform distuv.Uniform, k int) []float64 {
	if k == 1 {
		return []float64{1.0}
	}

	cuts := make([]float64, k-1)
	for i := range cuts {
		cuts[i] = uniform.Rand()
	}
	sort.Float64s(cuts)

	probs := make([]float64, k)
	previous := 0.0
	for i, cut := range cuts {
		probs[i] = cut - previous
		previous = cut
	}
	probs[k-1] = 1.0 - previous

	return probs
}
