package sim

import (
	"log"
)

// A LogHook is a hook that is responsible for recording information from the
// simulation
type LogHook interface {
	Hook
}

// LogHookBase provides the common logic for all LogHooks
type LogHookBase struct {
	*log.Logger
}

// SpikeLogger is a hook that prints every spike event
type SpikeLogger struct {
	LogHookBase
}

// NewSpikeLogger returns a new SpikeLogger which will write into the logger
func NewSpikeLogger(logger *log.Logger) *SpikeLogger {
	l := new(SpikeLogger)
	l.Logger = logger
	return l
}

// Func writes the spike information into the logger
func (l *SpikeLogger) Func(ctx HookCtx) {
	if ctx.Pos != HookPosSpike {
		return
	}

	info, ok := ctx.Item.(SpikeInfo)
	if !ok {
		return
	}

	l.Printf("t=%d, neuron %d fired, reset to %d",
		info.Time, info.Neuron, info.Potential)
}

// StepLogger is a hook that prints the per-timestep summary
type StepLogger struct {
	LogHookBase
}

// NewStepLogger returns a new StepLogger which will write into the logger
func NewStepLogger(logger *log.Logger) *StepLogger {
	l := new(StepLogger)
	l.Logger = logger
	return l
}

// Func writes the timestep summary into the logger
func (l *StepLogger) Func(ctx HookCtx) {
	if ctx.Pos != HookPosAfterStep {
		return
	}

	result, ok := ctx.Item.(TimestepResult)
	if !ok {
		return
	}

	l.Printf("t=%d, u_mean=%.2f, spikes=%d",
		result.Time, result.MeanPotential, result.SpikeCount)
}
