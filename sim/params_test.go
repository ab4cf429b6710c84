package sim

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Params", func() {
	var params Params

	BeforeEach(func() {
		params = DefaultParams()
	})

	It("should accept the default parameters", func() {
		Expect(params.Validate()).To(Succeed())
	})

	It("should reject non-positive tau", func() {
		params.Tau = 0
		Expect(params.Validate()).To(MatchError(ErrConfig))

		params.Tau = -1
		Expect(params.Validate()).To(MatchError(ErrConfig))
	})

	It("should reject non-positive population size", func() {
		params.N = 0
		Expect(params.Validate()).To(MatchError(ErrConfig))
	})

	It("should reject probabilities outside [0, 1]", func() {
		params.InputProb = -0.1
		Expect(params.Validate()).To(MatchError(ErrConfig))

		params.InputProb = 1.1
		Expect(params.Validate()).To(MatchError(ErrConfig))
	})

	It("should reject negative input magnitude", func() {
		params.InputMagnitude = -1
		Expect(params.Validate()).To(MatchError(ErrConfig))
	})

	It("should reject a resting potential at or above the threshold", func() {
		params.URest = params.UTh
		Expect(params.Validate()).To(MatchError(ErrConfig))
	})

	It("should treat a zero stop count as unbounded", func() {
		params.SpikeStopCount = 0

		Expect(params.Validate()).To(Succeed())
		Expect(params.Unbounded()).To(BeTrue())
	})
})

var _ = Describe("Population", func() {
	It("should start all neurons at the resting potential", func() {
		pop := NewPopulation(4, -65)

		Expect(pop.Size()).To(Equal(4))
		for i := 0; i < pop.Size(); i++ {
			Expect(pop.Potential(i)).To(Equal(-65))
		}
	})

	It("should copy potentials instead of exposing internal state", func() {
		pop := NewPopulation(2, 0)

		out := pop.Potentials()
		out[0] = 99

		Expect(pop.Potential(0)).To(Equal(0))
	})

	It("should keep independent instances independent", func() {
		a := NewPopulation(2, 0)
		b := NewPopulation(2, 0)

		a.u[0] = 7

		Expect(b.Potential(0)).To(Equal(0))
	})
})
