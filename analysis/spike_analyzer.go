// Package analysis renders spike-train summaries of a run. The analyzer
// receives the timestep and spike events from a runner and forwards one entry
// per timestep to a backend, keeping aggregate statistics along the way.
package analysis

import (
	"github.com/spikelab/neurotics/sim"
)

// A SpikeAnalyzerEntry is one per-timestep record, matching the reference
// time,u_mean,spikesum CSV layout.
type SpikeAnalyzerEntry struct {
	Time          int
	MeanPotential float64
	SpikeSum      int
}

// A SpikeAnalyzer observes a run and reports per-timestep spike statistics
// through a backend.
type SpikeAnalyzer struct {
	backend Backend

	totalSpikes     int
	qualifyingSteps int
	steps           int
}

// Report forwards one timestep summary to the backend.
func (a *SpikeAnalyzer) Report(time int, meanPotential float64, spikeCount int) {
	a.steps++
	a.totalSpikes += spikeCount
	if spikeCount > 0 {
		a.qualifyingSteps++
	}

	a.backend.AddDataEntry(SpikeAnalyzerEntry{
		Time:          time,
		MeanPotential: meanPotential,
		SpikeSum:      spikeCount,
	})
}

// Handle flushes the backend when the run ends.
func (a *SpikeAnalyzer) Handle(_ int) {
	a.backend.Flush()
}

// AttachTo registers the analyzer with a runner.
func (a *SpikeAnalyzer) AttachTo(runner *sim.Runner) {
	runner.RegisterReporter(a)
	runner.RegisterRunEndHandler(a)
}

// TotalSpikes returns the number of spikes seen so far across all timesteps.
func (a *SpikeAnalyzer) TotalSpikes() int {
	return a.totalSpikes
}

// QualifyingSteps returns the number of timesteps with at least one spike.
func (a *SpikeAnalyzer) QualifyingSteps() int {
	return a.qualifyingSteps
}

// MeanSpikesPerStep returns the average spike count per completed timestep.
func (a *SpikeAnalyzer) MeanSpikesPerStep() float64 {
	if a.steps == 0 {
		return 0
	}

	return float64(a.totalSpikes) / float64(a.steps)
}

// SpikeAnalyzerBuilder is a builder that can build a SpikeAnalyzer.
type SpikeAnalyzerBuilder struct {
	backend     Backend
	backendType string
	dbFilename  string
}

// MakeSpikeAnalyzerBuilder creates a new SpikeAnalyzerBuilder.
func MakeSpikeAnalyzerBuilder() SpikeAnalyzerBuilder {
	return SpikeAnalyzerBuilder{
		backendType: "csv",
		dbFilename:  "spikes",
	}
}

// WithCSVBackend sets the backend to a CSV file with the given name, without
// the .csv suffix.
func (b SpikeAnalyzerBuilder) WithCSVBackend(
	filename string,
) SpikeAnalyzerBuilder {
	b.backendType = "csv"
	b.dbFilename = filename
	return b
}

// WithSQLiteBackend sets the backend to a SQLite database with the given
// name, without the .sqlite3 suffix.
func (b SpikeAnalyzerBuilder) WithSQLiteBackend(
	filename string,
) SpikeAnalyzerBuilder {
	b.backendType = "sqlite"
	b.dbFilename = filename
	return b
}

// WithBackend sets a custom backend. It overrides the backend type selection.
func (b SpikeAnalyzerBuilder) WithBackend(backend Backend) SpikeAnalyzerBuilder {
	b.backend = backend
	return b
}

// Build creates a SpikeAnalyzer.
func (b SpikeAnalyzerBuilder) Build() *SpikeAnalyzer {
	backend := b.backend

	if backend == nil {
		switch b.backendType {
		case "csv":
			backend = NewCSVBackend(b.dbFilename)
		case "sqlite":
			backend = NewSQLiteBackend(b.dbFilename)
		default:
			panic("unknown backend type " + b.backendType)
		}
	}

	return &SpikeAnalyzer{backend: backend}
}
