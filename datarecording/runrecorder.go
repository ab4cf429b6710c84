package datarecording

import (
	"github.com/spikelab/neurotics/sim"
)

// TimestepEntry is one row of the timesteps table.
type TimestepEntry struct {
	Time          int
	MeanPotential float64
	SpikeCount    int
}

// SpikeEntry is one row of the spikes table.
type SpikeEntry struct {
	Time      int
	Neuron    int
	Potential int
}

// RunEntry is the single row of the run table, describing the parameters the
// run was configured with.
type RunEntry struct {
	RunID          string
	N              int
	UTh            int
	URest          int
	Tau            int
	InputProb      float64
	InputMagnitude int
	SpikeStopCount int
}

// Table names used by the RunRecorder.
const (
	RunTable      = "run"
	TimestepTable = "timesteps"
	SpikeTable    = "spikes"
)

// A RunRecorder records a whole run into a DataRecorder. It acts as both a
// timestep reporter and a spike actuator, and flushes when the run ends.
type RunRecorder struct {
	recorder DataRecorder
}

// NewRunRecorder creates the run, timesteps, and spikes tables and writes the
// run row.
func NewRunRecorder(
	recorder DataRecorder,
	runID string,
	params sim.Params,
) *RunRecorder {
	r := &RunRecorder{recorder: recorder}

	recorder.CreateTable(RunTable, RunEntry{})
	recorder.CreateTable(TimestepTable, TimestepEntry{})
	recorder.CreateTable(SpikeTable, SpikeEntry{})

	recorder.InsertData(RunTable, RunEntry{
		RunID:          runID,
		N:              params.N,
		UTh:            params.UTh,
		URest:          params.URest,
		Tau:            params.Tau,
		InputProb:      params.InputProb,
		InputMagnitude: params.InputMagnitude,
		SpikeStopCount: params.SpikeStopCount,
	})

	return r
}

// Report records the per-timestep summary row.
func (r *RunRecorder) Report(time int, meanPotential float64, spikeCount int) {
	r.recorder.InsertData(TimestepTable, TimestepEntry{
		Time:          time,
		MeanPotential: meanPotential,
		SpikeCount:    spikeCount,
	})
}

// OnSpike records one spike event row.
func (r *RunRecorder) OnSpike(time, neuron, potential int) {
	r.recorder.InsertData(SpikeTable, SpikeEntry{
		Time:      time,
		Neuron:    neuron,
		Potential: potential,
	})
}

// Handle flushes the recorder when the run ends.
func (r *RunRecorder) Handle(_ int) {
	r.recorder.Flush()
}

// AttachTo registers the recorder with a runner as reporter, actuator, and
// run end handler.
func (r *RunRecorder) AttachTo(runner *sim.Runner) {
	runner.RegisterReporter(r)
	runner.RegisterActuator(r)
	runner.RegisterRunEndHandler(r)
}
