package sim

import "fmt"

// A TimestepResult reports the aggregate outcome of one population sweep. It
// is produced fresh each timestep and is not retained by the core.
type TimestepResult struct {
	// Time is the index of the completed timestep.
	Time int

	// Spikes holds one flag per neuron, aligned by index.
	Spikes []bool

	// SpikeCount is the number of neurons that spiked this timestep.
	SpikeCount int

	// MeanPotential is the arithmetic mean of all post-update potentials.
	// Spiking neurons contribute their reset value, not the pre-reset one.
	MeanPotential float64
}

// SpikeInfo describes a single spike event.
type SpikeInfo struct {
	Time      int
	Neuron    int
	Potential int
}

// A Stepper applies the update rule to every neuron of a population exactly
// once, mutating the potentials in place and aggregating the outcome. A
// length mismatch between the currents and the population is an error
// wrapping ErrInputLength.
type Stepper interface {
	Step(pop *Population, currents []int) (TimestepResult, error)
}

// A SerialStepper updates neurons one after another in index order.
type SerialStepper struct {
	rule LIFRule
}

// NewSerialStepper creates a SerialStepper for the given rule.
func NewSerialStepper(rule LIFRule) *SerialStepper {
	return &SerialStepper{rule: rule}
}

// Step runs one population sweep.
func (s *SerialStepper) Step(
	pop *Population,
	currents []int,
) (TimestepResult, error) {
	if len(currents) != pop.Size() {
		return TimestepResult{}, fmt.Errorf("%w: got %d currents for %d neurons",
			ErrInputLength, len(currents), pop.Size())
	}

	result := TimestepResult{
		Spikes: make([]bool, pop.Size()),
	}

	uSum := 0
	for i := range pop.u {
		newU, spiked := s.rule.Step(pop.u[i], currents[i])
		pop.u[i] = newU

		uSum += newU
		if spiked {
			result.Spikes[i] = true
			result.SpikeCount++
		}
	}

	result.MeanPotential = float64(uSum) / float64(pop.Size())

	return result, nil
}
