// Package testutil provides shared test infrastructure for the scheduler
// simulator. It holds the golden trace dataset types and assertion helpers
// used across sim/ and cmd/ test packages.
package testutil

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"testing"
)

// GoldenDataset represents the structure of testdata/golden_traces.json.
type GoldenDataset struct {
	Tests []GoldenTestCase `json:"tests"`
}

// GoldenTestCase is one hand-verified workload. Round-robin cases assume
// quantum 1 and both probabilities 0, which makes them deterministic.
type GoldenTestCase struct {
	Name      string          `json:"name"`
	Policy    string          `json:"policy"`
	Processes []GoldenProcess `json:"processes"`
	Trace     []GoldenEntry   `json:"trace"`

	// Completions maps PID (as a JSON object key) to completion tick.
	Completions map[string]int64 `json:"completions"`

	AvgWaitingTime    float64 `json:"avg_waiting_time"`
	AvgTurnaroundTime float64 `json:"avg_turnaround_time"`
	IdleTicks         int64   `json:"idle_ticks"`
}

// GoldenProcess is one input process.
type GoldenProcess struct {
	PID     int   `json:"pid"`
	Arrival int64 `json:"arrival"`
	Burst   int64 `json:"burst"`
}

// GoldenEntry is one expected dispatch.
type GoldenEntry struct {
	PID   int   `json:"pid"`
	Start int64 `json:"start"`
}

// CompletionOf returns the expected completion tick for pid.
func (tc GoldenTestCase) CompletionOf(t *testing.T, pid int) int64 {
	t.Helper()
	c, ok := tc.Completions[strconv.Itoa(pid)]
	if !ok {
		t.Fatalf("%s: no expected completion for P%d", tc.Name, pid)
	}
	return c
}

// LoadGoldenDataset loads the golden dataset from the testdata directory.
// The path is resolved relative to this source file: sim/internal/testutil/ → testdata/.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	// Navigate from sim/internal/testutil/ to repo root testdata/
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", "golden_traces.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read golden dataset: %v", err)
	}

	var dataset GoldenDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		t.Fatalf("Failed to parse golden dataset: %v", err)
	}

	return &dataset
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}

// AssertTimingIdentities checks turnaround = completion - arrival and
// waiting = turnaround - burst for one finished process.
func AssertTimingIdentities(t *testing.T, pid int, arrival, burst, completion, turnaround, waiting int64) {
	t.Helper()
	if turnaround != completion-arrival {
		t.Errorf("P%d: turnaround %d != completion %d - arrival %d", pid, turnaround, completion, arrival)
	}
	if waiting != turnaround-burst {
		t.Errorf("P%d: waiting %d != turnaround %d - burst %d", pid, waiting, turnaround, burst)
	}
	if waiting < 0 {
		t.Errorf("P%d: negative waiting time %d", pid, waiting)
	}
}
