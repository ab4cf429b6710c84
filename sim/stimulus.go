package sim

import (
	"fmt"
	"math/rand"
)

// A StimulusSource supplies one input current per neuron per timestep. The
// core treats it as an opaque source of non-negative integers; the returned
// slice must have one entry per neuron.
type StimulusSource interface {
	Sample() []int
}

// A BernoulliSource delivers, independently per neuron per timestep, the
// configured magnitude with the configured probability and zero otherwise.
// This approximates a Poisson spike train input.
type BernoulliSource struct {
	n         int
	prob      float64
	magnitude int
	rng       *rand.Rand
}

// NewBernoulliSource creates a BernoulliSource. The seed makes the stimulus
// sequence reproducible across runs.
func NewBernoulliSource(
	n int,
	prob float64,
	magnitude int,
	seed int64,
) (*BernoulliSource, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: N must be positive, got %d", ErrConfig, n)
	}

	if prob < 0 || prob > 1 {
		return nil, fmt.Errorf("%w: input probability must be in [0, 1], got %f",
			ErrConfig, prob)
	}

	if magnitude < 0 {
		return nil, fmt.Errorf("%w: input magnitude must be non-negative, got %d",
			ErrConfig, magnitude)
	}

	return &BernoulliSource{
		n:         n,
		prob:      prob,
		magnitude: magnitude,
		rng:       rand.New(rand.NewSource(seed)),
	}, nil
}

// Sample draws one current per neuron.
func (s *BernoulliSource) Sample() []int {
	currents := make([]int, s.n)
	for i := range currents {
		if s.rng.Float64() < s.prob {
			currents[i] = s.magnitude
		}
	}

	return currents
}

// A FixedSource replays a predetermined sequence of current vectors. After
// the sequence is exhausted it keeps returning the last vector. It is mainly
// useful in tests and for replaying recorded stimuli.
type FixedSource struct {
	steps [][]int
	next  int
}

// NewFixedSource creates a FixedSource from the given per-timestep vectors.
func NewFixedSource(steps ...[]int) *FixedSource {
	return &FixedSource{steps: steps}
}

// Sample returns the next vector in the sequence.
func (s *FixedSource) Sample() []int {
	if len(s.steps) == 0 {
		return nil
	}

	step := s.steps[s.next]
	if s.next < len(s.steps)-1 {
		s.next++
	}

	return step
}
