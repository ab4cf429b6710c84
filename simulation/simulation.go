// Package simulation wires the simulation core, data recording, analysis,
// and monitoring together for one run.
package simulation

import (
	"github.com/spikelab/neurotics/analysis"
	"github.com/spikelab/neurotics/datarecording"
	"github.com/spikelab/neurotics/monitoring"
	"github.com/spikelab/neurotics/sim"
)

// A Simulation provides the services required to run one LIF population
// simulation.
type Simulation struct {
	id string

	runner       *sim.Runner
	source       sim.StimulusSource
	dataRecorder datarecording.DataRecorder
	monitor      *monitoring.Monitor
	analyzer     *analysis.SpikeAnalyzer
}

// ID returns the unique ID of the simulation.
func (s *Simulation) ID() string {
	return s.id
}

// Runner returns the runner that drives the simulation.
func (s *Simulation) Runner() *sim.Runner {
	return s.runner
}

// StimulusSource returns the stimulus source used in the simulation.
func (s *Simulation) StimulusSource() sim.StimulusSource {
	return s.source
}

// GetDataRecorder returns the data recorder used in the simulation.
func (s *Simulation) GetDataRecorder() datarecording.DataRecorder {
	return s.dataRecorder
}

// GetMonitor returns the monitor used in the simulation. It is nil when
// monitoring is disabled.
func (s *Simulation) GetMonitor() *monitoring.Monitor {
	return s.monitor
}

// GetAnalyzer returns the spike analyzer attached to the run.
func (s *Simulation) GetAnalyzer() *analysis.SpikeAnalyzer {
	return s.analyzer
}

// Run drives the timestep loop to completion.
func (s *Simulation) Run() error {
	return s.runner.Run()
}

// Stop requests cancellation at the next timestep boundary.
func (s *Simulation) Stop() {
	s.runner.Stop()
}

// Terminate terminates the simulation, flushing and closing the recorder.
func (s *Simulation) Terminate() {
	s.dataRecorder.Close()
}
