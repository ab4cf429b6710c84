package simulation

import (
	"io"

	"github.com/rs/xid"

	"github.com/spikelab/neurotics/analysis"
	"github.com/spikelab/neurotics/datarecording"
	"github.com/spikelab/neurotics/monitoring"
	"github.com/spikelab/neurotics/sim"
)

// Builder can be used to build a simulation.
type Builder struct {
	params          sim.Params
	seed            int64
	parallelStepper bool
	subset          []int
	monitorOn       bool
	monitorPort     int
	outputFileName  string
	csvWriter       io.Writer
}

// MakeBuilder creates a new builder with the reference parameter set.
func MakeBuilder() Builder {
	return Builder{
		params:    sim.DefaultParams(),
		monitorOn: true,
	}
}

// WithParams sets the simulation parameters.
func (b Builder) WithParams(params sim.Params) Builder {
	b.params = params
	return b
}

// WithSeed sets the seed of the stimulus source.
func (b Builder) WithSeed(seed int64) Builder {
	b.seed = seed
	return b
}

// WithParallelStepper sets the simulation to sweep the population with
// multiple workers.
func (b Builder) WithParallelStepper() Builder {
	b.parallelStepper = true
	return b
}

// WithCoincidenceSubset switches the termination policy to require every
// neuron of the subset to spike in the same timestep.
func (b Builder) WithCoincidenceSubset(indices ...int) Builder {
	b.subset = indices
	return b
}

// WithoutMonitoring sets the simulation to not use monitoring.
func (b Builder) WithoutMonitoring() Builder {
	b.monitorOn = false
	return b
}

// WithMonitorPort sets the port number for the monitoring server.
func (b Builder) WithMonitorPort(port int) Builder {
	b.monitorPort = port
	return b
}

// WithOutputFileName sets the custom output file name for the data recorder.
func (b Builder) WithOutputFileName(filename string) Builder {
	b.outputFileName = filename
	return b
}

// WithCSVOutput streams the per-timestep CSV summary to the given writer in
// addition to recording the run.
func (b Builder) WithCSVOutput(w io.Writer) Builder {
	b.csvWriter = w
	return b
}

func (b Builder) parametersMustBeValid() {
	if !b.monitorOn && b.monitorPort != 0 {
		panic("monitor port cannot be set when monitoring is disabled")
	}

	if err := b.params.Validate(); err != nil {
		panic(err)
	}
}

// Build builds the simulation.
func (b Builder) Build() *Simulation {
	b.parametersMustBeValid()

	s := &Simulation{
		id: xid.New().String(),
	}

	outputPath := b.outputFileName
	if outputPath == "" {
		outputPath = "neurotics_run_" + s.id
	}
	s.dataRecorder = datarecording.New(outputPath)

	source, err := sim.NewBernoulliSource(
		b.params.N,
		b.params.InputProb,
		b.params.InputMagnitude,
		b.seed,
	)
	if err != nil {
		panic(err)
	}
	s.source = source

	s.runner, err = sim.NewRunner(b.params, source)
	if err != nil {
		panic(err)
	}

	if b.parallelStepper {
		s.runner.SetStepper(sim.NewParallelStepper(b.params.Rule()))
	}

	if len(b.subset) > 0 {
		s.runner.SetPredicate(sim.AllOfSubset(b.subset...))
	}

	runRecorder := datarecording.NewRunRecorder(s.dataRecorder, s.id, b.params)
	runRecorder.AttachTo(s.runner)

	analyzerBuilder := analysis.MakeSpikeAnalyzerBuilder()
	if b.csvWriter != nil {
		analyzerBuilder = analyzerBuilder.
			WithBackend(analysis.NewCSVBackendWithWriter(b.csvWriter))
	} else {
		analyzerBuilder = analyzerBuilder.
			WithBackend(analysis.NewSQLiteBackendWithRecorder(s.dataRecorder))
	}
	s.analyzer = analyzerBuilder.Build()
	s.analyzer.AttachTo(s.runner)

	if b.monitorOn {
		s.monitor = monitoring.NewMonitor()
		if b.monitorPort > 0 {
			s.monitor.WithPortNumber(b.monitorPort)
		}
		s.monitor.RegisterRunner(s.runner)
		s.monitor.StartServer()
	}

	return s
}
