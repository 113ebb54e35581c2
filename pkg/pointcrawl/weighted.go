package pointcrawl

import (
	"fmt"
	"math/rand/v2"
	"sort"
)

// Choice is one outcome of a Weighted distribution.
type Choice[T any] struct {
	Value  T
	Weight int
}

// Weighted is a discrete distribution over a fixed set of outcomes.
type Weighted[T any] struct {
	values []T
	cum    []int
}

// NewWeighted builds a distribution. Weights must be positive.
func NewWeighted[T any](choices ...Choice[T]) (*Weighted[T], error) {
	if len(choices) == 0 {
		return nil, fmt.Errorf("weighted distribution needs at least one choice")
	}
	w := &Weighted[T]{
		values: make([]T, len(choices)),
		cum:    make([]int, len(choices)),
	}
	total := 0
	for i, c := range choices {
		if c.Weight <= 0 {
			return nil, fmt.Errorf("choice %d has weight %d, want > 0", i, c.Weight)
		}
		total += c.Weight
		w.values[i] = c.Value
		w.cum[i] = total
	}
	return w, nil
}

// Total returns the sum of all weights.
func (w *Weighted[T]) Total() int { return w.cum[len(w.cum)-1] }

// Pick draws one outcome.
func (w *Weighted[T]) Pick(rng *rand.Rand) T {
	r := rng.IntN(w.Total())
	i := sort.Search(len(w.cum), func(i int) bool { return w.cum[i] > r })
	return w.values[i]
}
