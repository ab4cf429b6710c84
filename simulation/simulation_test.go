package simulation

import (
	"bytes"
	"os"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/spikelab/neurotics/sim"
)

var _ = Describe("Simulation", func() {
	var s *Simulation

	AfterEach(func() {
		if s != nil {
			s.Terminate()
			os.Remove("neurotics_run_" + s.ID() + ".sqlite3")
			s = nil
		}
	})

	It("should build with the reference parameters", func() {
		s = MakeBuilder().WithoutMonitoring().Build()

		Expect(s.ID()).ToNot(BeEmpty())
		Expect(s.Runner()).ToNot(BeNil())
		Expect(s.GetDataRecorder()).ToNot(BeNil())
		Expect(s.GetMonitor()).To(BeNil())
		Expect(s.Runner().Params()).To(Equal(sim.DefaultParams()))
	})

	It("should run a small population to completion", func() {
		params := sim.Params{
			N:              5,
			UTh:            20,
			URest:          0,
			Tau:            50,
			InputProb:      1.0,
			InputMagnitude: 10,
			SpikeStopCount: 3,
		}

		buf := &bytes.Buffer{}
		s = MakeBuilder().
			WithoutMonitoring().
			WithParams(params).
			WithSeed(42).
			WithCSVOutput(buf).
			Build()

		Expect(s.Run()).To(Succeed())
		Expect(s.Runner().State()).To(Equal(sim.StateStopped))

		// With probability one, every neuron spikes on every second step.
		Expect(s.Runner().CurrentTime()).To(Equal(6))
		Expect(s.GetAnalyzer().QualifyingSteps()).To(Equal(3))

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		Expect(lines[0]).To(Equal("time,u_mean,spikesum"))
		Expect(lines).To(HaveLen(7))
	})

	It("should produce identical runs for identical seeds", func() {
		params := sim.Params{
			N:              10,
			UTh:            20,
			URest:          0,
			Tau:            50,
			InputProb:      0.5,
			InputMagnitude: 10,
			SpikeStopCount: 5,
		}

		run := func() string {
			buf := &bytes.Buffer{}
			inner := MakeBuilder().
				WithoutMonitoring().
				WithParams(params).
				WithSeed(7).
				WithCSVOutput(buf).
				Build()
			defer func() {
				inner.Terminate()
				os.Remove("neurotics_run_" + inner.ID() + ".sqlite3")
			}()

			Expect(inner.Run()).To(Succeed())

			return buf.String()
		}

		Expect(run()).To(Equal(run()))
	})

	It("should support the coincidence-gated variant", func() {
		params := sim.Params{
			N:              2,
			UTh:            20,
			URest:          0,
			Tau:            50,
			InputProb:      1.0,
			InputMagnitude: 10,
			SpikeStopCount: 2,
		}

		s = MakeBuilder().
			WithoutMonitoring().
			WithParams(params).
			WithCoincidenceSubset(0, 1).
			Build()

		Expect(s.Run()).To(Succeed())
		Expect(s.Runner().State()).To(Equal(sim.StateStopped))
	})

	It("should panic when a monitor port is set without monitoring", func() {
		Expect(func() {
			MakeBuilder().WithoutMonitoring().WithMonitorPort(8080).Build()
		}).To(Panic())
	})

	It("should panic on invalid parameters", func() {
		params := sim.DefaultParams()
		params.Tau = 0

		Expect(func() {
			MakeBuilder().WithoutMonitoring().WithParams(params).Build()
		}).To(Panic())
	})
})
