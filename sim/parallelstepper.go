package sim

import (
	"fmt"
	"runtime"
	"sync"
)

// A ParallelStepper updates neurons with multiple goroutines. Each neuron's
// update reads only its own prior potential and its own input current, so
// the sweep can be sharded freely. The per-shard partial sums are combined
// after all shards finish; addition is commutative, so the aggregate is
// identical to a serial sweep.
type ParallelStepper struct {
	rule       LIFRule
	numWorkers int
}

// NewParallelStepper creates a ParallelStepper that uses one worker per
// available CPU.
func NewParallelStepper(rule LIFRule) *ParallelStepper {
	return &ParallelStepper{
		rule:       rule,
		numWorkers: runtime.GOMAXPROCS(0),
	}
}

type shardResult struct {
	uSum       int
	spikeCount int
}

// Step runs one population sweep across all workers and blocks until every
// neuron is updated. No currents for the next timestep are touched before
// this returns.
func (s *ParallelStepper) Step(
	pop *Population,
	currents []int,
) (TimestepResult, error) {
	if len(currents) != pop.Size() {
		return TimestepResult{}, fmt.Errorf("%w: got %d currents for %d neurons",
			ErrInputLength, len(currents), pop.Size())
	}

	n := pop.Size()
	numShards := s.numWorkers
	if numShards > n {
		numShards = n
	}

	result := TimestepResult{
		Spikes: make([]bool, n),
	}

	partials := make([]shardResult, numShards)

	var wg sync.WaitGroup
	for shard := 0; shard < numShards; shard++ {
		wg.Add(1)

		go func(shard int) {
			defer wg.Done()

			begin := shard * n / numShards
			end := (shard + 1) * n / numShards

			partial := shardResult{}
			for i := begin; i < end; i++ {
				newU, spiked := s.rule.Step(pop.u[i], currents[i])
				pop.u[i] = newU

				partial.uSum += newU
				if spiked {
					result.Spikes[i] = true
					partial.spikeCount++
				}
			}

			partials[shard] = partial
		}(shard)
	}
	wg.Wait()

	uSum := 0
	for _, p := range partials {
		uSum += p.uSum
		result.SpikeCount += p.spikeCount
	}

	result.MeanPotential = float64(uSum) / float64(n)

	return result, nil
}
