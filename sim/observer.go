package sim

import "github.com/inference-sim/sched-sim/sim/trace"

// TickReport is what observers receive after every tick.
// All slices are copies; observers may keep them.
type TickReport struct {
	Clock     int64             // tick that just executed
	Ran       int               // PID that held the CPU, 0 if idle
	Snapshots []ProcessSnapshot // every process, ordered by PID
	Trace     []trace.Entry     // dispatch entries so far
}

// TickObserver consumes per-tick reports, e.g. a renderer or a recorder.
// OnTick must not block for long: the driver calls it synchronously.
type TickObserver interface {
	OnTick(report TickReport)
}

// TickObserverFunc adapts a function to TickObserver.
type TickObserverFunc func(report TickReport)

func (f TickObserverFunc) OnTick(report TickReport) { f(report) }
