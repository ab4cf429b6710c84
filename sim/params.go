package sim

import (
	"errors"
	"fmt"
)

// ErrConfig indicates that the simulation parameters are invalid. A run with
// invalid parameters never starts.
var ErrConfig = errors.New("invalid simulation configuration")

// ErrInputLength indicates that a stimulus source delivered a current
// sequence whose length does not match the population size. This is a
// collaborator contract violation and aborts the run.
var ErrInputLength = errors.New("input current count does not match population size")

// Params bundles the parameters of one simulation run. Params are immutable
// for the lifetime of the run.
type Params struct {
	// N is the number of neurons in the population.
	N int

	// UTh is the spike threshold. A neuron whose updated potential reaches
	// UTh fires and resets to URest.
	UTh int

	// URest is the resting and reset potential.
	URest int

	// Tau is the leak time constant. Must be positive.
	Tau int

	// InputProb is the probability that a neuron receives a nonzero input
	// current in a timestep.
	InputProb float64

	// InputMagnitude is the input current delivered when the Bernoulli draw
	// succeeds.
	InputMagnitude int

	// SpikeStopCount is the number of qualifying timesteps after which the
	// run terminates. Zero means the run is unbounded.
	SpikeStopCount int
}

// DefaultParams returns the parameter set of the reference 100-neuron run.
func DefaultParams() Params {
	return Params{
		N:              100,
		UTh:            20,
		URest:          0,
		Tau:            50,
		InputProb:      0.5,
		InputMagnitude: 10,
		SpikeStopCount: 50,
	}
}

// Validate checks that the parameters can drive a run. It returns an error
// wrapping ErrConfig if any parameter is out of range.
func (p Params) Validate() error {
	if p.N <= 0 {
		return fmt.Errorf("%w: N must be positive, got %d", ErrConfig, p.N)
	}

	if p.Tau <= 0 {
		return fmt.Errorf("%w: tau must be positive, got %d", ErrConfig, p.Tau)
	}

	if p.InputProb < 0 || p.InputProb > 1 {
		return fmt.Errorf("%w: input probability must be in [0, 1], got %f",
			ErrConfig, p.InputProb)
	}

	if p.InputMagnitude < 0 {
		return fmt.Errorf("%w: input magnitude must be non-negative, got %d",
			ErrConfig, p.InputMagnitude)
	}

	if p.SpikeStopCount < 0 {
		return fmt.Errorf("%w: spike stop count must be non-negative, got %d",
			ErrConfig, p.SpikeStopCount)
	}

	if p.URest >= p.UTh {
		return fmt.Errorf("%w: resting potential %d must be below threshold %d",
			ErrConfig, p.URest, p.UTh)
	}

	return nil
}

// Rule returns the update rule described by the parameters.
func (p Params) Rule() LIFRule {
	return LIFRule{UTh: p.UTh, URest: p.URest, Tau: p.Tau}
}

// Unbounded tells if the run has no termination policy.
func (p Params) Unbounded() bool {
	return p.SpikeStopCount == 0
}
