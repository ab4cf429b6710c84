package sim

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
)

var _ = Describe("Runner", func() {
	var (
		mockCtrl *gomock.Controller
		source   *MockStimulusSource
		reporter *MockTimestepReporter
		actuator *MockSpikeActuator
		params   Params
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		source = NewMockStimulusSource(mockCtrl)
		reporter = NewMockTimestepReporter(mockCtrl)
		actuator = NewMockSpikeActuator(mockCtrl)

		params = Params{
			N:              3,
			UTh:            20,
			URest:          0,
			Tau:            50,
			InputProb:      0.5,
			InputMagnitude: 10,
			SpikeStopCount: 1,
		}
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should reject invalid parameters", func() {
		params.Tau = 0

		_, err := NewRunner(params, source)

		Expect(err).To(MatchError(ErrConfig))
	})

	It("should stop at the first spiking timestep when stop count is 1", func() {
		runner, err := NewRunner(params, source)
		Expect(err).ToNot(HaveOccurred())
		runner.RegisterReporter(reporter)
		runner.RegisterActuator(actuator)

		source.EXPECT().Sample().Return([]int{20, 0, 0})
		reporter.EXPECT().Report(0, 0.0, 1)
		actuator.EXPECT().OnSpike(0, 0, 0)

		err = runner.Run()

		Expect(err).ToNot(HaveOccurred())
		Expect(runner.State()).To(Equal(StateStopped))
		Expect(runner.CurrentTime()).To(Equal(1))
	})

	It("should not count silent timesteps toward termination", func() {
		runner, err := NewRunner(params, source)
		Expect(err).ToNot(HaveOccurred())
		runner.RegisterReporter(reporter)

		gomock.InOrder(
			source.EXPECT().Sample().Return([]int{0, 0, 0}),
			source.EXPECT().Sample().Return([]int{20, 0, 0}),
		)
		gomock.InOrder(
			reporter.EXPECT().Report(0, 0.0, 0),
			reporter.EXPECT().Report(1, 0.0, 1),
		)

		err = runner.Run()

		Expect(err).ToNot(HaveOccurred())
		Expect(runner.CurrentTime()).To(Equal(2))
	})

	It("should emit spike events in ascending neuron index order", func() {
		runner, err := NewRunner(params, source)
		Expect(err).ToNot(HaveOccurred())
		runner.RegisterActuator(actuator)

		source.EXPECT().Sample().Return([]int{20, 0, 20})
		gomock.InOrder(
			actuator.EXPECT().OnSpike(0, 0, 0),
			actuator.EXPECT().OnSpike(0, 2, 0),
		)

		err = runner.Run()

		Expect(err).ToNot(HaveOccurred())
	})

	It("should gate termination on subset coincidence", func() {
		runner, err := NewRunner(params, source)
		Expect(err).ToNot(HaveOccurred())
		runner.SetPredicate(AllOfSubset(0, 1))
		runner.RegisterReporter(reporter)

		gomock.InOrder(
			source.EXPECT().Sample().Return([]int{20, 0, 0}),
			source.EXPECT().Sample().Return([]int{20, 20, 0}),
		)
		gomock.InOrder(
			reporter.EXPECT().Report(0, 0.0, 1),
			reporter.EXPECT().Report(1, 0.0, 2),
		)

		err = runner.Run()

		Expect(err).ToNot(HaveOccurred())
		Expect(runner.State()).To(Equal(StateStopped))
		Expect(runner.CurrentTime()).To(Equal(2))
	})

	It("should abort when the stimulus violates its contract", func() {
		runner, err := NewRunner(params, source)
		Expect(err).ToNot(HaveOccurred())
		runner.RegisterReporter(reporter)

		source.EXPECT().Sample().Return([]int{20})

		err = runner.Run()

		Expect(err).To(MatchError(ErrInputLength))
		Expect(runner.State()).To(Equal(StateStopped))
		Expect(runner.CurrentTime()).To(Equal(0))
	})

	It("should honor external cancellation before stepping", func() {
		params.SpikeStopCount = 0
		runner, err := NewRunner(params, source)
		Expect(err).ToNot(HaveOccurred())

		runner.Stop()
		err = runner.Run()

		Expect(err).ToNot(HaveOccurred())
		Expect(runner.State()).To(Equal(StateStopped))
		Expect(runner.CurrentTime()).To(Equal(0))
	})

	It("should invoke hooks around each timestep", func() {
		runner, err := NewRunner(params, source)
		Expect(err).ToNot(HaveOccurred())

		var positions []*HookPos
		hook := NewMockHook(mockCtrl)
		hook.EXPECT().
			Func(gomock.Any()).
			Do(func(ctx HookCtx) {
				positions = append(positions, ctx.Pos)
			}).
			AnyTimes()
		runner.AcceptHook(hook)

		source.EXPECT().Sample().Return([]int{20, 0, 0})

		err = runner.Run()

		Expect(err).ToNot(HaveOccurred())
		Expect(positions).To(Equal([]*HookPos{
			HookPosBeforeStep,
			HookPosSpike,
			HookPosAfterStep,
		}))
	})

	It("should call run end handlers with the final time", func() {
		runner, err := NewRunner(params, source)
		Expect(err).ToNot(HaveOccurred())

		endTime := -1
		runner.RegisterRunEndHandler(runEndFunc(func(t int) {
			endTime = t
		}))

		source.EXPECT().Sample().Return([]int{20, 0, 0})

		err = runner.Run()

		Expect(err).ToNot(HaveOccurred())
		Expect(endTime).To(Equal(1))
	})
})

type runEndFunc func(finalTime int)

func (f runEndFunc) Handle(finalTime int) {
	f(finalTime)
}
