package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	sim "github.com/inference-sim/sched-sim/sim"
)

// runInput is everything a simulating command needs besides its outputs.
type runInput struct {
	Config   sim.SimConfig
	Declared int // declared process count, 0 = len(Specs)
	Specs    []sim.ProcessSpec
}

// resolveInput builds the run input from exactly one process source
// (--scenario, --process or --interactive). With a scenario file, only flags
// the user set explicitly override the file's values.
func resolveInput(cmd *cobra.Command, stdin io.Reader, stdout io.Writer) (*runInput, error) {
	sources := 0
	for _, set := range []bool{scenarioPath != "", len(processFlags) > 0, interactive} {
		if set {
			sources++
		}
	}
	if sources != 1 {
		return nil, errors.New("exactly one of --scenario, --process or --interactive is required")
	}

	in := &runInput{Config: sim.DefaultSimConfig(policyName)}
	fromFile := scenarioPath != ""
	if fromFile {
		sc, err := sim.LoadScenario(scenarioPath)
		if err != nil {
			return nil, err
		}
		in.Config = sc.SimConfig()
		in.Declared = sc.Processes.Count
		in.Specs = sc.Processes.List
	}
	applyFlags(cmd, &in.Config, fromFile)

	switch {
	case len(processFlags) > 0:
		specs, err := parseProcessFlags(processFlags)
		if err != nil {
			return nil, err
		}
		in.Specs = specs
	case interactive:
		declared, specs, err := promptProcesses(stdin, stdout)
		if err != nil {
			return nil, err
		}
		in.Declared, in.Specs = declared, specs
	}
	return in, nil
}

// applyFlags copies flag values into cfg. When onlyChanged is set, flags left
// at their defaults do not override cfg.
func applyFlags(cmd *cobra.Command, cfg *sim.SimConfig, onlyChanged bool) {
	use := func(name string) bool {
		return !onlyChanged || cmd.Flags().Changed(name)
	}
	if use("policy") || cfg.Policy == "" {
		cfg.Policy = policyName
	}
	if use("seed") {
		cfg.Seed = seed
	}
	if use("quantum") {
		cfg.TimeQuantum = timeQuantum
	}
	if use("suspend-prob") {
		cfg.SuspendProbability = suspendProb
	}
	if use("resume-prob") {
		cfg.ResumeProbability = resumeProb
	}
	if use("max-ticks") {
		cfg.MaxTicks = maxTicks
	}
}

// parseProcessFlags turns "arrival:burst" values into descriptors numbered
// from PID 1 in flag order.
func parseProcessFlags(values []string) ([]sim.ProcessSpec, error) {
	pairs := make([][2]int64, 0, len(values))
	for _, v := range values {
		arrival, burst, ok := strings.Cut(v, ":")
		if !ok {
			return nil, fmt.Errorf("--process %q: want arrival:burst", v)
		}
		a, err := strconv.ParseInt(strings.TrimSpace(arrival), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("--process %q: arrival: %w", v, err)
		}
		b, err := strconv.ParseInt(strings.TrimSpace(burst), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("--process %q: burst: %w", v, err)
		}
		pairs = append(pairs, [2]int64{a, b})
	}
	return sim.SequentialSpecs(pairs), nil
}

// promptProcesses asks for a process count and then each arrival and burst
// time. Running out of input part-way returns the declared count and the
// processes read so far, which the simulator reports as an aborted run.
// Running out before the count is known returns sim.ErrInputAborted.
func promptProcesses(r io.Reader, w io.Writer) (int, []sim.ProcessSpec, error) {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)

	next := func(prompt string) (int64, bool, error) {
		fmt.Fprint(w, prompt)
		if !scanner.Scan() {
			fmt.Fprintln(w)
			return 0, false, scanner.Err()
		}
		v, err := strconv.ParseInt(scanner.Text(), 10, 64)
		if err != nil {
			return 0, false, fmt.Errorf("%q is not an integer", scanner.Text())
		}
		return v, true, nil
	}

	count, ok, err := next("Number of processes: ")
	if err != nil {
		return 0, nil, err
	}
	if !ok {
		return 0, nil, fmt.Errorf("%w: no number of processes provided", sim.ErrInputAborted)
	}
	if count < 1 {
		return 0, nil, fmt.Errorf("number of processes must be positive, got %d", count)
	}

	var pairs [][2]int64
	for i := 1; i <= int(count); i++ {
		arrival, ok, err := next(fmt.Sprintf("Process %d arrival time: ", i))
		if err != nil {
			return 0, nil, err
		}
		if !ok {
			break
		}
		burst, ok, err := next(fmt.Sprintf("Process %d burst time: ", i))
		if err != nil {
			return 0, nil, err
		}
		if !ok {
			break
		}
		pairs = append(pairs, [2]int64{arrival, burst})
		fmt.Fprintf(w, "Added Process %d: Arrival=%d, Burst=%d\n", i, arrival, burst)
	}
	return int(count), sim.SequentialSpecs(pairs), nil
}
