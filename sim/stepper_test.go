package sim

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("SerialStepper", func() {
	var (
		rule    LIFRule
		pop     *Population
		stepper *SerialStepper
	)

	BeforeEach(func() {
		rule = LIFRule{UTh: 20, URest: 0, Tau: 50}
		pop = NewPopulation(3, 0)
		stepper = NewSerialStepper(rule)
	})

	It("should reject mismatched input length", func() {
		_, err := stepper.Step(pop, []int{10})

		Expect(err).To(MatchError(ErrInputLength))
	})

	It("should update every neuron exactly once and aggregate", func() {
		pop.u = []int{5, 15, 0}

		result, err := stepper.Step(pop, []int{0, 10, 0})

		Expect(err).ToNot(HaveOccurred())
		Expect(pop.Potentials()).To(Equal([]int{5, 0, 0}))
		Expect(result.Spikes).To(Equal([]bool{false, true, false}))
		Expect(result.SpikeCount).To(Equal(1))
		Expect(result.MeanPotential).To(BeNumerically("~", 5.0/3.0, 1e-12))
	})

	It("should count the reset value in the mean, not the pre-reset value", func() {
		pop.u = []int{19, 0, 0}

		result, err := stepper.Step(pop, []int{10, 5, 0})

		Expect(err).ToNot(HaveOccurred())
		Expect(pop.Potential(0)).To(Equal(0))
		Expect(result.MeanPotential).To(BeNumerically("~", 5.0/3.0, 1e-12))
	})

	It("should keep potentials in [u_rest, u_th)", func() {
		pop = NewPopulation(50, 0)
		stepper = NewSerialStepper(rule)

		currents := make([]int, 50)
		for i := range currents {
			currents[i] = i % 11
		}

		for step := 0; step < 200; step++ {
			_, err := stepper.Step(pop, currents)
			Expect(err).ToNot(HaveOccurred())

			for i := 0; i < pop.Size(); i++ {
				Expect(pop.Potential(i)).To(BeNumerically(">=", 0))
				Expect(pop.Potential(i)).To(BeNumerically("<", 20))
			}
		}
	})
})

var _ = Describe("ParallelStepper", func() {
	It("should reject mismatched input length", func() {
		stepper := NewParallelStepper(LIFRule{UTh: 20, URest: 0, Tau: 50})
		pop := NewPopulation(3, 0)

		_, err := stepper.Step(pop, []int{10})

		Expect(err).To(MatchError(ErrInputLength))
	})

	It("should produce the same results as the serial stepper", func() {
		rule := LIFRule{UTh: 20, URest: 0, Tau: 50}
		serial := NewSerialStepper(rule)
		parallel := NewParallelStepper(rule)

		serialPop := NewPopulation(100, 0)
		parallelPop := NewPopulation(100, 0)

		for step := 0; step < 100; step++ {
			currents := make([]int, 100)
			for i := range currents {
				currents[i] = (i + step) % 13
			}

			serialResult, err := serial.Step(serialPop, currents)
			Expect(err).ToNot(HaveOccurred())

			parallelResult, err := parallel.Step(parallelPop, currents)
			Expect(err).ToNot(HaveOccurred())

			Expect(parallelResult).To(Equal(serialResult))
			Expect(parallelPop.Potentials()).To(Equal(serialPop.Potentials()))
		}
	})

	It("should handle populations smaller than the worker count", func() {
		stepper := NewParallelStepper(LIFRule{UTh: 20, URest: 0, Tau: 50})
		pop := NewPopulation(1, 0)

		result, err := stepper.Step(pop, []int{20})

		Expect(err).ToNot(HaveOccurred())
		Expect(result.SpikeCount).To(Equal(1))
		Expect(result.MeanPotential).To(Equal(0.0))
	})
})
