package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	sim "github.com/inference-sim/sched-sim/sim"
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert process lists and saved results to scenario YAML",
	Long:  "Convert a CSV process list or a saved results file into a scenario YAML file. Output is written to stdout for piping into run --scenario.",
}

// --- sched-sim convert csv ---

var (
	csvPath   string
	csvPolicy string
	csvSeed   int64
)

var convertCSVCmd = &cobra.Command{
	Use:   "csv",
	Short: "Convert a CSV process list (arrival,burst or pid,arrival,burst) to a scenario",
	Run: func(cmd *cobra.Command, args []string) {
		f, err := os.Open(csvPath)
		if err != nil {
			logrus.Fatalf("Opening CSV: %v", err)
		}
		defer f.Close()
		specs, err := sim.ReadProcessCSV(f)
		if err != nil {
			logrus.Fatalf("CSV conversion failed: %v", err)
		}
		sc := &sim.Scenario{
			Policy:    csvPolicy,
			Seed:      csvSeed,
			Processes: sim.ProcessList{Count: len(specs), List: specs},
		}
		if err := sc.Validate(); err != nil {
			logrus.Fatalf("Converted scenario is invalid: %v", err)
		}
		writeScenario(os.Stdout, sc)
	},
}

// --- sched-sim convert results ---

var resultsInPath string

var convertResultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Rebuild the scenario that produced a saved results file",
	Run: func(cmd *cobra.Command, args []string) {
		res, err := sim.LoadResults(resultsInPath)
		if err != nil {
			logrus.Fatalf("Loading results: %v", err)
		}
		sc, err := sim.ScenarioFromResult(res)
		if err != nil {
			logrus.Fatalf("Results conversion failed: %v", err)
		}
		writeScenario(os.Stdout, sc)
	},
}

// writeScenario marshals a Scenario to YAML.
func writeScenario(w io.Writer, sc *sim.Scenario) {
	data, err := yaml.Marshal(sc)
	if err != nil {
		logrus.Fatalf("YAML marshal failed: %v", err)
	}
	_, _ = fmt.Fprint(w, string(data))
}

func init() {
	convertCSVCmd.Flags().StringVar(&csvPath, "file", "", "Path to CSV process list")
	convertCSVCmd.Flags().StringVar(&csvPolicy, "policy", sim.PolicyFCFS, "Policy to record in the scenario")
	convertCSVCmd.Flags().Int64Var(&csvSeed, "seed", 42, "Seed to record in the scenario")
	_ = convertCSVCmd.MarkFlagRequired("file")

	convertResultsCmd.Flags().StringVar(&resultsInPath, "file", "", "Path to a results JSON file written by run --results")
	_ = convertResultsCmd.MarkFlagRequired("file")

	convertCmd.AddCommand(convertCSVCmd)
	convertCmd.AddCommand(convertResultsCmd)

	rootCmd.AddCommand(convertCmd)
}
