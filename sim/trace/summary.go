package trace

// TraceSummary aggregates statistics from an ExecutionTrace.
type TraceSummary struct {
	Dispatches      int         `json:"dispatches"`
	ContextSwitches int         `json:"context_switches"`
	BusyTicks       int64       `json:"busy_ticks"`
	IdleTicks       int64       `json:"idle_ticks"`
	UniqueProcesses int         `json:"unique_processes"`
	DispatchesByPID map[int]int `json:"dispatches_by_pid"` // PID -> number of dispatch spans
}

// Summarize computes aggregate statistics from an ExecutionTrace.
// A context switch is counted whenever the CPU passes from one process to a
// different one, with or without idle ticks in between.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(t *ExecutionTrace) *TraceSummary {
	summary := &TraceSummary{
		DispatchesByPID: make(map[int]int),
	}
	if t == nil {
		return summary
	}

	summary.Dispatches = len(t.entries)
	for _, e := range t.entries {
		summary.DispatchesByPID[e.PID]++
	}
	summary.UniqueProcesses = len(summary.DispatchesByPID)

	last := Idle
	for _, pid := range t.timeline {
		if pid == Idle {
			summary.IdleTicks++
			continue
		}
		summary.BusyTicks++
		if last != Idle && last != pid {
			summary.ContextSwitches++
		}
		last = pid
	}
	return summary
}
