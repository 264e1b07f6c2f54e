// Package trace records which process occupied the CPU and when.
// This package has no dependencies on sim/; it stores pure data types.
package trace

// Entry marks the start of a contiguous dispatch span: the tick at which a
// process moved into Running from a non-Running state.
type Entry struct {
	PID       int   `json:"pid"`
	StartTick int64 `json:"start_tick"`
}

// Span is a contiguous stretch of CPU time owned by one process.
// End is exclusive.
type Span struct {
	PID   int   `json:"pid"`
	Start int64 `json:"start"`
	End   int64 `json:"end"`
}

// Len returns the number of ticks the span covers.
func (s Span) Len() int64 {
	return s.End - s.Start
}

// Idle is the timeline marker for a tick in which no process ran.
const Idle = 0
