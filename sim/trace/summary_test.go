package trace

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize_NilTrace_ZeroValues(t *testing.T) {
	// GIVEN a nil trace
	// WHEN summarized
	summary := Summarize(nil)

	// THEN every counter is zero and the map is usable
	assert.Equal(t, 0, summary.Dispatches)
	assert.Equal(t, 0, summary.ContextSwitches)
	assert.Equal(t, int64(0), summary.BusyTicks)
	assert.Equal(t, int64(0), summary.IdleTicks)
	assert.NotNil(t, summary.DispatchesByPID)
}

func TestSummarize_EmptyTrace_ZeroValues(t *testing.T) {
	summary := Summarize(NewExecutionTrace())

	assert.Equal(t, 0, summary.Dispatches)
	assert.Equal(t, 0, summary.UniqueProcesses)
	assert.Empty(t, summary.DispatchesByPID)
}

func TestSummarize_PopulatedTrace_CorrectCounts(t *testing.T) {
	// GIVEN P1 P1 P2 idle P1 P3
	tr := record([]int{1, 1, 2, Idle, 1, 3})

	// WHEN summarized
	summary := Summarize(tr)

	// THEN dispatches, busy/idle ticks and per-PID counts match
	assert.Equal(t, 4, summary.Dispatches)
	assert.Equal(t, int64(5), summary.BusyTicks)
	assert.Equal(t, int64(1), summary.IdleTicks)
	assert.Equal(t, 3, summary.UniqueProcesses)
	assert.Equal(t, map[int]int{1: 2, 2: 1, 3: 1}, summary.DispatchesByPID)
	// 1->2, 2->(idle)->1, 1->3
	assert.Equal(t, 3, summary.ContextSwitches)
}

func TestSummarize_SameProcessAcrossIdle_NoContextSwitch(t *testing.T) {
	tr := record([]int{1, Idle, 1})

	summary := Summarize(tr)

	assert.Equal(t, 0, summary.ContextSwitches)
	assert.Equal(t, 2, summary.Dispatches)
}
