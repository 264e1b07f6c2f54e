package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	sim "github.com/inference-sim/sched-sim/sim"
)

var (
	// CLI flags shared by run and compare
	policyName   string        // Scheduling policy
	seed         int64         // Seed for the round-robin suspend/resume draws
	timeQuantum  int           // Round-robin quantum in ticks
	suspendProb  float64       // Running -> Waiting probability per tick (rr)
	resumeProb   float64       // Waiting -> Ready probability per tick (rr)
	maxTicks     int64         // Horizon; 0 runs until every process terminates
	logLevel     string        // Log verbosity level
	scenarioPath string        // YAML scenario file
	processFlags []string      // Inline processes as arrival:burst
	interactive  bool          // Prompt for processes on stdin
	pace         time.Duration // Wall-clock delay between ticks

	// Output flags for run
	resultsPath  string // JSON results file
	traceOutPath string // CSV span file
	showGantt    bool   // Print the text Gantt chart
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "sched-sim",
	Short: "Tick-driven CPU scheduling simulator",
}

// runCmd executes one simulation using a scenario file, flags or stdin
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one scheduling simulation",
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevel(logLevel)

		in, err := resolveInput(cmd, os.Stdin, os.Stdout)
		if errors.Is(err, sim.ErrInputAborted) {
			logrus.Warnf("Simulation canceled: %v", err)
			return
		}
		if err != nil {
			logrus.Fatalf("Invalid input: %v", err)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		opts := []sim.Option{}
		if pace > 0 {
			opts = append(opts, sim.WithPace(pace), sim.WithObserver(newLiveView(os.Stdout)))
		}

		startTime := time.Now()
		res, err := sim.Execute(ctx, in.Config, in.Declared, in.Specs, opts...)
		if err != nil {
			if res == nil {
				logrus.Fatalf("Simulation rejected: %v", err)
			}
			logrus.Fatalf("Simulation failed at tick %d: %v", res.Ticks, err)
		}
		logrus.Infof("Simulation %s finished in %s", res.RunID, time.Since(startTime))

		if res.Status == sim.StatusAborted {
			logrus.Warnf("Simulation canceled: %s", res.Error)
			return
		}

		renderOutcomes(os.Stdout, res)
		if showGantt {
			renderGantt(os.Stdout, res.Spans, res.Ticks)
		}
		if res.Metrics != nil {
			res.Metrics.Print()
		} else {
			logrus.Warnf("Run stopped with status %s after %d ticks; no aggregate metrics", res.Status, res.Ticks)
		}

		if resultsPath != "" {
			if err := res.SaveResults(resultsPath); err != nil {
				logrus.Fatalf("Saving results: %v", err)
			}
		}
		if traceOutPath != "" {
			path, err := writeTraceCSV(traceOutPath, res.Spans)
			if err != nil {
				logrus.Fatalf("Writing trace: %v", err)
			}
			logrus.Infof("Wrote %d spans to %s", len(res.Spans), path)
		}

		logrus.Info("Simulation complete.")
	},
}

func setLogLevel(name string) {
	level, err := logrus.ParseLevel(name)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", name)
	}
	logrus.SetLevel(level)
}

// Execute runs the CLI root command and flushes exit handlers.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		atexit.Exit(1)
	}
	atexit.Exit(0)
}

// registerInputFlags adds the flags every simulating command shares.
func registerInputFlags(c *cobra.Command) {
	c.Flags().StringVar(&policyName, "policy", sim.PolicyFCFS, "Scheduling policy (fcfs, sjf, rr)")
	c.Flags().Int64Var(&seed, "seed", 42, "Seed for round-robin suspend/resume draws")
	c.Flags().IntVar(&timeQuantum, "quantum", sim.DefaultTimeQuantum, "Round-robin time quantum (in ticks)")
	c.Flags().Float64Var(&suspendProb, "suspend-prob", sim.DefaultSuspendProbability, "Round-robin per-tick suspend probability")
	c.Flags().Float64Var(&resumeProb, "resume-prob", sim.DefaultResumeProbability, "Round-robin per-tick resume probability")
	c.Flags().Int64Var(&maxTicks, "max-ticks", 0, "Simulation horizon (in ticks); 0 runs to completion")
	c.Flags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	c.Flags().StringVar(&scenarioPath, "scenario", "", "YAML scenario file; explicit flags override its values")
	c.Flags().StringArrayVar(&processFlags, "process", nil, "Process as arrival:burst (repeatable, PIDs numbered from 1)")
	c.Flags().BoolVar(&interactive, "interactive", false, "Prompt for the process count and each arrival/burst on stdin")
}

// init sets up CLI flags and subcommands
func init() {
	registerInputFlags(runCmd)
	runCmd.Flags().DurationVar(&pace, "pace", 0, "Wall-clock delay between ticks, e.g. 1s; shows a live view")
	runCmd.Flags().StringVar(&resultsPath, "results", "", "Write the run result as JSON to this path")
	runCmd.Flags().StringVar(&traceOutPath, "trace-out", "", "Write dispatch spans as CSV to this path")
	runCmd.Flags().BoolVar(&showGantt, "gantt", true, "Print a text Gantt chart")

	// Attach subcommands to `root`
	rootCmd.AddCommand(runCmd)
}
