package sim

// A TerminationPredicate decides whether a completed timestep counts toward
// run termination. It is evaluated exactly once per timestep.
type TerminationPredicate func(TimestepResult) bool

// AnySpiked returns a predicate that qualifies a timestep when at least one
// neuron in the population spiked.
func AnySpiked() TerminationPredicate {
	return func(r TimestepResult) bool {
		return r.SpikeCount > 0
	}
}

// AllOfSubset returns a predicate that qualifies a timestep only when every
// designated neuron spiked in that same timestep. It models coincidence
// detection between a small number of neurons.
func AllOfSubset(indices ...int) TerminationPredicate {
	subset := make([]int, len(indices))
	copy(subset, indices)

	return func(r TimestepResult) bool {
		for _, i := range subset {
			if i < 0 || i >= len(r.Spikes) || !r.Spikes[i] {
				return false
			}
		}

		return true
	}
}
