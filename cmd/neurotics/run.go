package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/spikelab/neurotics/sim"
	"github.com/spikelab/neurotics/simulation"
)

var runFlags = struct {
	numNeurons     int
	threshold      int
	rest           int
	tau            int
	inputProb      float64
	inputMagnitude int
	stopCount      int
	unbounded      bool
	coincidence    []int
	seed           int64
	parallel       bool
	monitor        bool
	monitorPort    int
	dashboard      bool
	output         string
	interval       time.Duration
	logSpikes      bool
}{}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a simulation, printing one CSV summary line per timestep.",
	Run: func(_ *cobra.Command, _ []string) {
		runSimulation()
	},
}

//nolint:funlen // flag registration is long but trivial.
func init() {
	f := runCmd.Flags()

	defaults := sim.DefaultParams()

	f.IntVarP(&runFlags.numNeurons, "num-neurons", "n", defaults.N,
		"number of neurons in the population")
	f.IntVar(&runFlags.threshold, "threshold", defaults.UTh,
		"spike threshold u_th")
	f.IntVar(&runFlags.rest, "rest", defaults.URest,
		"resting and reset potential u_rest")
	f.IntVar(&runFlags.tau, "tau", defaults.Tau,
		"leak time constant")
	f.Float64Var(&runFlags.inputProb, "input-prob", defaults.InputProb,
		"probability of nonzero input current per neuron per timestep")
	f.IntVar(&runFlags.inputMagnitude, "input-magnitude",
		defaults.InputMagnitude,
		"input current delivered on a successful draw")
	f.IntVar(&runFlags.stopCount, "stop-count", defaults.SpikeStopCount,
		"number of qualifying timesteps before the run stops")
	f.BoolVar(&runFlags.unbounded, "unbounded", false,
		"run until interrupted, ignoring the stop count")
	f.IntSliceVar(&runFlags.coincidence, "coincidence", nil,
		"neuron indices that must all spike in the same timestep "+
			"for it to qualify")
	f.Int64Var(&runFlags.seed, "seed", 0,
		"stimulus seed (NEUROTICS_SEED overrides when unset)")
	f.BoolVar(&runFlags.parallel, "parallel", false,
		"sweep the population with multiple workers")
	f.BoolVar(&runFlags.monitor, "monitor", false,
		"start the monitoring server")
	f.IntVar(&runFlags.monitorPort, "monitor-port", 0,
		"port of the monitoring server, 0 for a random port")
	f.BoolVar(&runFlags.dashboard, "dashboard", false,
		"open the monitoring dashboard in the browser")
	f.StringVarP(&runFlags.output, "output", "o", "",
		"base name of the SQLite recording file")
	f.DurationVar(&runFlags.interval, "interval", 0,
		"real-time delay between timesteps")
	f.BoolVar(&runFlags.logSpikes, "log-spikes", false,
		"log every spike event to stderr")

	rootCmd.AddCommand(runCmd)
}

func runSimulation() {
	params := sim.Params{
		N:              runFlags.numNeurons,
		UTh:            runFlags.threshold,
		URest:          runFlags.rest,
		Tau:            runFlags.tau,
		InputProb:      runFlags.inputProb,
		InputMagnitude: runFlags.inputMagnitude,
		SpikeStopCount: runFlags.stopCount,
	}
	if runFlags.unbounded {
		params.SpikeStopCount = 0
	}

	if err := params.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		atexit.Exit(1)
	}

	builder := simulation.MakeBuilder().
		WithParams(params).
		WithSeed(seedFromFlagOrEnv()).
		WithCSVOutput(os.Stdout)

	if runFlags.parallel {
		builder = builder.WithParallelStepper()
	}
	if len(runFlags.coincidence) > 0 {
		builder = builder.WithCoincidenceSubset(runFlags.coincidence...)
	}
	if runFlags.output != "" {
		builder = builder.WithOutputFileName(runFlags.output)
	}
	if runFlags.monitor {
		if runFlags.monitorPort > 0 {
			builder = builder.WithMonitorPort(runFlags.monitorPort)
		}
	} else {
		builder = builder.WithoutMonitoring()
	}

	s := builder.Build()
	defer s.Terminate()

	if runFlags.dashboard && s.GetMonitor() != nil {
		s.GetMonitor().OpenDashboard()
	}

	if runFlags.logSpikes {
		logger := log.New(os.Stderr, "", 0)
		s.Runner().AcceptHook(sim.NewSpikeLogger(logger))
	}

	if runFlags.interval > 0 {
		s.Runner().AcceptHook(stepPacer{interval: runFlags.interval})
	}

	stopOnInterrupt(s)

	if err := s.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		s.Terminate()
		atexit.Exit(1)
	}
}

func seedFromFlagOrEnv() int64 {
	if runFlags.seed != 0 {
		return runFlags.seed
	}

	env := os.Getenv("NEUROTICS_SEED")
	if env == "" {
		return time.Now().UnixNano()
	}

	seed, err := strconv.ParseInt(env, 10, 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid NEUROTICS_SEED %q\n", env)
		atexit.Exit(1)
	}

	return seed
}

// stepPacer is a hook that inserts a real-time delay after each timestep so
// that a run can be watched live. The simulation core itself never sleeps.
type stepPacer struct {
	interval time.Duration
}

func (p stepPacer) Func(ctx sim.HookCtx) {
	if ctx.Pos != sim.HookPosAfterStep {
		return
	}

	time.Sleep(p.interval)
}

func stopOnInterrupt(s *simulation.Simulation) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)

	go func() {
		<-c
		fmt.Fprintln(os.Stderr, "interrupted, stopping at timestep boundary")
		s.Stop()
	}()
}
