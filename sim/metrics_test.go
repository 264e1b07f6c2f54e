package sim

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completed(pid int, arrival, burst, completion, firstRun int64) ProcessOutcome {
	turnaround := completion - arrival
	return ProcessOutcome{
		PID:            pid,
		State:          StateTerminated,
		ArrivalTime:    arrival,
		BurstTime:      burst,
		Completed:      true,
		CompletionTime: completion,
		TurnaroundTime: turnaround,
		WaitingTime:    turnaround - burst,
		ResponseTime:   firstRun - arrival,
	}
}

func TestComputeMetrics_Averages(t *testing.T) {
	// GIVEN the FCFS example outcomes: P1(0,3) done at 3, P2(1,2) done at 5
	outcomes := []ProcessOutcome{completed(1, 0, 3, 3, 0), completed(2, 1, 2, 5, 3)}

	// WHEN metrics are computed over 5 busy ticks
	m, err := ComputeMetrics(outcomes, CPUAccounting{Ticks: 5, BusyTicks: 5, Dispatches: 2})
	require.NoError(t, err)

	// THEN averages, makespan and utilization follow from the outcomes
	assert.Equal(t, 2, m.Processes)
	assert.InDelta(t, 1.0, m.AvgWaitingTime, 1e-9)
	assert.InDelta(t, 3.5, m.AvgTurnaroundTime, 1e-9)
	assert.InDelta(t, 1.0, m.AvgResponseTime, 1e-9)
	assert.Equal(t, int64(2), m.MaxWaitingTime)
	assert.Equal(t, int64(5), m.Makespan)
	assert.InDelta(t, 1.0, m.CPUUtilization, 1e-9)
	assert.InDelta(t, 0.4, m.Throughput, 1e-9)
	assert.InDelta(t, 3.5, m.P50Turnaround, 1e-9)
	assert.Equal(t, 2, m.Dispatches)
}

func TestComputeMetrics_IdleTicksLowerUtilization(t *testing.T) {
	outcomes := []ProcessOutcome{completed(1, 0, 2, 2, 0), completed(2, 5, 1, 6, 5)}

	m, err := ComputeMetrics(outcomes, CPUAccounting{Ticks: 6, BusyTicks: 3, IdleTicks: 3})
	require.NoError(t, err)

	assert.InDelta(t, 0.5, m.CPUUtilization, 1e-9)
	assert.Equal(t, int64(3), m.IdleTicks)
}

func TestComputeMetrics_Errors(t *testing.T) {
	_, err := ComputeMetrics(nil, CPUAccounting{})
	assert.Error(t, err)

	unfinished := ProcessOutcome{PID: 3, State: StateWaiting, BurstTime: 2, Remaining: 1}
	_, err = ComputeMetrics([]ProcessOutcome{completed(1, 0, 1, 1, 0), unfinished}, CPUAccounting{Ticks: 2})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "process 3")
}

func TestMetrics_Print(t *testing.T) {
	// GIVEN computed metrics
	m, err := ComputeMetrics([]ProcessOutcome{completed(1, 0, 3, 3, 0)}, CPUAccounting{Ticks: 3, BusyTicks: 3})
	require.NoError(t, err)

	// WHEN printed to a captured stdout
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w
	m.Print()
	w.Close()
	os.Stdout = old
	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)

	// THEN the header and averages are present
	out := buf.String()
	assert.Contains(t, out, "=== Simulation Metrics ===")
	assert.Contains(t, out, "Average Waiting Time   : 0.00 ticks")
	assert.Contains(t, out, "CPU Utilization        : 100.00%")
}
