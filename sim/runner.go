package sim

import (
	"log"
	"sync"
)

// A TimestepReporter receives the per-timestep summary. It is invoked exactly
// once per completed timestep, in increasing time order, with no gaps.
type TimestepReporter interface {
	Report(time int, meanPotential float64, spikeCount int)
}

// A SpikeActuator is notified once per spiking neuron per timestep, in
// ascending neuron-index order within the timestep. The reported potential is
// the post-reset value.
type SpikeActuator interface {
	OnSpike(time, neuron, potential int)
}

// A RunEndHandler is a handler that is called after the run ends.
type RunEndHandler interface {
	Handle(finalTime int)
}

// RunnerState is the state of the Runner's two-state machine.
type RunnerState int

const (
	// StateRunning is the initial state. Timesteps advance while in this
	// state.
	StateRunning RunnerState = iota

	// StateStopped is the terminal state. It is entered when the termination
	// policy is satisfied or when the run is cancelled externally.
	StateStopped
)

// A Runner drives the timestep loop over a population it exclusively owns.
// Each iteration samples the stimulus, sweeps the population, reports the
// summary, actuates spikes, and applies the termination policy. Cancellation
// only takes effect at timestep boundaries, so the population is never left
// half-updated.
type Runner struct {
	HookableBase

	params    Params
	pop       *Population
	stepper   Stepper
	source    StimulusSource
	predicate TerminationPredicate

	timeLock sync.RWMutex
	time     int

	stateLock sync.Mutex
	state     RunnerState
	remaining int
	stopReq   bool

	isPaused     bool
	isPausedLock sync.Mutex
	pauseLock    sync.Mutex

	singleRunLock sync.Mutex

	reporters      []TimestepReporter
	actuators      []SpikeActuator
	runEndHandlers []RunEndHandler
}

// NewRunner creates a Runner with a fresh population at the resting
// potential, a serial stepper, and the any-neuron-spiked termination
// predicate. The parameters are validated before anything is allocated.
func NewRunner(params Params, source StimulusSource) (*Runner, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	r := &Runner{
		params:    params,
		pop:       NewPopulation(params.N, params.URest),
		stepper:   NewSerialStepper(params.Rule()),
		source:    source,
		predicate: AnySpiked(),
		state:     StateRunning,
		remaining: params.SpikeStopCount,
	}

	return r, nil
}

// SetStepper replaces the stepper. It must not be called after Run.
func (r *Runner) SetStepper(s Stepper) {
	r.mustNotHaveStepped()
	r.stepper = s
}

// SetPredicate replaces the termination predicate. It must not be called
// after Run.
func (r *Runner) SetPredicate(p TerminationPredicate) {
	r.mustNotHaveStepped()
	r.predicate = p
}

func (r *Runner) mustNotHaveStepped() {
	if r.CurrentTime() > 0 {
		log.Panic("cannot reconfigure a runner that has started stepping")
	}
}

// RegisterReporter registers a reporter that receives the per-timestep
// summary.
func (r *Runner) RegisterReporter(rep TimestepReporter) {
	r.reporters = append(r.reporters, rep)
}

// RegisterActuator registers an actuator that receives spike events.
func (r *Runner) RegisterActuator(a SpikeActuator) {
	r.actuators = append(r.actuators, a)
}

// RegisterRunEndHandler registers a handler that performs some actions after
// the run is finished.
func (r *Runner) RegisterRunEndHandler(h RunEndHandler) {
	r.runEndHandlers = append(r.runEndHandlers, h)
}

// Params returns the immutable parameters of the run.
func (r *Runner) Params() Params {
	return r.params
}

// Population returns the population owned by the runner.
func (r *Runner) Population() *Population {
	return r.pop
}

// CurrentTime returns the index of the next timestep to run.
func (r *Runner) CurrentTime() int {
	r.timeLock.RLock()
	t := r.time
	r.timeLock.RUnlock()
	return t
}

// State returns the current state of the run.
func (r *Runner) State() RunnerState {
	r.stateLock.Lock()
	defer r.stateLock.Unlock()

	return r.state
}

// RemainingQualifyingSteps returns how many qualifying timesteps are left
// before the run terminates. For an unbounded run it is always zero.
func (r *Runner) RemainingQualifyingSteps() int {
	r.stateLock.Lock()
	defer r.stateLock.Unlock()

	return r.remaining
}

// Run drives timesteps until the termination policy is satisfied or Stop is
// called. It returns an error only when a stimulus source violates its
// contract, which aborts the run without reporting the failed timestep.
func (r *Runner) Run() error {
	r.singleRunLock.Lock()
	defer r.singleRunLock.Unlock()

	for r.shouldContinue() {
		r.pauseLock.Lock()
		err := r.step()
		r.pauseLock.Unlock()

		if err != nil {
			r.enterStopped()
			r.finished()
			return err
		}
	}

	r.finished()

	return nil
}

func (r *Runner) shouldContinue() bool {
	r.stateLock.Lock()
	defer r.stateLock.Unlock()

	if r.stopReq {
		r.state = StateStopped
	}

	return r.state == StateRunning
}

func (r *Runner) step() error {
	currents := r.source.Sample()

	hookCtx := HookCtx{
		Domain: r,
		Pos:    HookPosBeforeStep,
	}
	r.InvokeHook(hookCtx)

	result, err := r.stepper.Step(r.pop, currents)
	if err != nil {
		return err
	}

	now := r.CurrentTime()
	result.Time = now

	for _, rep := range r.reporters {
		rep.Report(now, result.MeanPotential, result.SpikeCount)
	}

	r.emitSpikes(result)
	r.applyTerminationPolicy(result)

	hookCtx.Pos = HookPosAfterStep
	hookCtx.Item = result
	r.InvokeHook(hookCtx)

	r.advanceTime()

	return nil
}

func (r *Runner) emitSpikes(result TimestepResult) {
	for i, spiked := range result.Spikes {
		if !spiked {
			continue
		}

		info := SpikeInfo{
			Time:      result.Time,
			Neuron:    i,
			Potential: r.pop.Potential(i),
		}

		for _, a := range r.actuators {
			a.OnSpike(info.Time, info.Neuron, info.Potential)
		}

		hookCtx := HookCtx{
			Domain: r,
			Pos:    HookPosSpike,
			Item:   info,
		}
		r.InvokeHook(hookCtx)
	}
}

func (r *Runner) applyTerminationPolicy(result TimestepResult) {
	if r.params.Unbounded() {
		return
	}

	if !r.predicate(result) {
		return
	}

	r.stateLock.Lock()
	r.remaining--
	if r.remaining == 0 {
		r.state = StateStopped
	}
	r.stateLock.Unlock()
}

func (r *Runner) advanceTime() {
	r.timeLock.Lock()
	r.time++
	r.timeLock.Unlock()
}

func (r *Runner) enterStopped() {
	r.stateLock.Lock()
	r.state = StateStopped
	r.stateLock.Unlock()
}

// Stop requests external cancellation. The run transitions to StateStopped at
// the next timestep boundary; a timestep in flight completes fully first.
func (r *Runner) Stop() {
	r.stateLock.Lock()
	r.stopReq = true
	r.stateLock.Unlock()
}

// Pause prevents the Runner from starting more timesteps until Continue is
// called.
func (r *Runner) Pause() {
	r.isPausedLock.Lock()
	defer r.isPausedLock.Unlock()

	if r.isPaused {
		return
	}

	r.pauseLock.Lock()
	r.isPaused = true
}

// Continue allows a paused Runner to make progress again.
func (r *Runner) Continue() {
	r.isPausedLock.Lock()
	defer r.isPausedLock.Unlock()

	if !r.isPaused {
		return
	}

	r.pauseLock.Unlock()
	r.isPaused = false
}

func (r *Runner) finished() {
	now := r.CurrentTime()
	for _, h := range r.runEndHandlers {
		h.Handle(now)
	}
}
