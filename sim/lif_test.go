package sim

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("LIFRule", func() {
	var rule LIFRule

	BeforeEach(func() {
		rule = LIFRule{UTh: 20, URest: 0, Tau: 50}
	})

	It("should integrate input without leaking below tau", func() {
		u, spiked := rule.Step(0, 10)

		Expect(u).To(Equal(10))
		Expect(spiked).To(BeFalse())
	})

	It("should spike and reset when crossing the threshold", func() {
		u, spiked := rule.Step(10, 10)

		Expect(u).To(Equal(0))
		Expect(spiked).To(BeTrue())
	})

	It("should stay at rest with zero input", func() {
		u, spiked := rule.Step(0, 0)

		Expect(u).To(Equal(0))
		Expect(spiked).To(BeFalse())
	})

	It("should apply the truncating leak for potentials at or above tau", func() {
		wideRule := LIFRule{UTh: 200, URest: 0, Tau: 50}

		u, spiked := wideRule.Step(100, 0)

		Expect(u).To(Equal(98))
		Expect(spiked).To(BeFalse())
	})

	It("should be deterministic for a fixed input sequence", func() {
		trace := []int{}
		u := 0
		for i := 0; i < 4; i++ {
			var spiked bool
			u, spiked = rule.Step(u, 10)
			trace = append(trace, u)
			if spiked {
				Expect(u).To(Equal(0))
			}
		}

		Expect(trace).To(Equal([]int{10, 0, 10, 0}))
	})
})
