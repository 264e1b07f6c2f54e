package trace

import "fmt"

// ExecutionTrace is the append-only dispatch log of one run, plus the
// per-tick CPU timeline the Gantt spans are derived from.
type ExecutionTrace struct {
	entries  []Entry
	timeline []int // timeline[t] = PID that ran during tick t, Idle if none
}

// NewExecutionTrace creates an ExecutionTrace ready for recording.
func NewExecutionTrace() *ExecutionTrace {
	return &ExecutionTrace{
		entries:  make([]Entry, 0),
		timeline: make([]int, 0),
	}
}

// Record appends a dispatch entry. Entries must arrive in non-decreasing
// tick order.
func (t *ExecutionTrace) Record(e Entry) {
	if n := len(t.entries); n > 0 && e.StartTick < t.entries[n-1].StartTick {
		panic(fmt.Sprintf("Record: entry at tick %d after entry at tick %d", e.StartTick, t.entries[n-1].StartTick))
	}
	t.entries = append(t.entries, e)
}

// Occupy records who held the CPU during tick. Ticks must be recorded
// consecutively starting at 0.
func (t *ExecutionTrace) Occupy(tick int64, pid int) {
	if tick != int64(len(t.timeline)) {
		panic(fmt.Sprintf("Occupy: expected tick %d, got %d", len(t.timeline), tick))
	}
	t.timeline = append(t.timeline, pid)
}

// Entries returns a copy of the dispatch entries in recording order.
func (t *ExecutionTrace) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Len returns the number of dispatch entries.
func (t *ExecutionTrace) Len() int {
	return len(t.entries)
}

// Timeline returns a copy of the per-tick CPU owner list.
func (t *ExecutionTrace) Timeline() []int {
	out := make([]int, len(t.timeline))
	copy(out, t.timeline)
	return out
}

// Spans returns one span per dispatch entry. A span runs from the entry's
// start tick while the same process keeps the CPU and no newer dispatch of
// it begins, so a process suspended and re-dispatched on the next tick
// yields two spans.
func (t *ExecutionTrace) Spans() []Span {
	spans := make([]Span, 0, len(t.entries))
	for i, e := range t.entries {
		limit := int64(len(t.timeline))
		if i+1 < len(t.entries) && t.entries[i+1].StartTick < limit {
			limit = t.entries[i+1].StartTick
		}
		end := e.StartTick
		for end < limit && t.timeline[end] == e.PID {
			end++
		}
		spans = append(spans, Span{PID: e.PID, Start: e.StartTick, End: end})
	}
	return spans
}
