package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/inference-sim/sched-sim/sim"
)

// compareCmd runs every policy on the same input and prints one table
var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Run every scheduling policy on the same processes",
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevel(logLevel)

		in, err := resolveInput(cmd, os.Stdin, os.Stdout)
		if errors.Is(err, sim.ErrInputAborted) {
			logrus.Warnf("Comparison canceled: %v", err)
			return
		}
		if err != nil {
			logrus.Fatalf("Invalid input: %v", err)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		results, err := compareAll(ctx, in.Config, in.Declared, in.Specs)
		if err != nil {
			logrus.Fatalf("Comparison failed: %v", err)
		}
		renderComparison(os.Stdout, results)
	},
}

// compareAll runs cfg once per policy, in PolicyNames order. cfg.Policy is
// ignored. Every run shares the seed, so round-robin stays reproducible.
func compareAll(ctx context.Context, cfg sim.SimConfig, declared int, specs []sim.ProcessSpec) ([]*sim.RunResult, error) {
	results := make([]*sim.RunResult, 0, len(sim.PolicyNames()))
	for _, name := range sim.PolicyNames() {
		c := cfg
		c.Policy = name
		res, err := sim.Execute(ctx, c, declared, specs)
		if err != nil {
			return nil, err
		}
		logrus.Infof("%s: %s after %d ticks", name, res.Status, res.Ticks)
		results = append(results, res)
	}
	return results, nil
}

func init() {
	registerInputFlags(compareCmd)
	rootCmd.AddCommand(compareCmd)
}
