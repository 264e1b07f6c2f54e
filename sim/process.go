// Defines the Process struct that models a single simulated process and the
// closed set of life-cycle states it moves through.

package sim

import (
	"fmt"
)

// ProcessState represents the lifecycle state of a process.
type ProcessState string

const (
	StateReady      ProcessState = "Ready"
	StateRunning    ProcessState = "Running"
	StateWaiting    ProcessState = "Waiting"
	StateTerminated ProcessState = "Terminated"
)

// legalTransitions is the full transition table. Running -> Running is the
// continued-execution case; Running -> Ready is a preemption applied by the
// driver when another process is dispatched.
var legalTransitions = map[ProcessState]map[ProcessState]bool{
	StateReady: {
		StateRunning: true,
	},
	StateRunning: {
		StateRunning:    true,
		StateTerminated: true,
		StateWaiting:    true,
		StateReady:      true,
	},
	StateWaiting: {
		StateReady: true,
	},
	StateTerminated: {},
}

// IsLegalTransition reports whether from -> to appears in the transition table.
func IsLegalTransition(from, to ProcessState) bool {
	return legalTransitions[from][to]
}

// ProcessSpec is the external descriptor a process is created from.
type ProcessSpec struct {
	PID         int   `yaml:"pid" json:"pid"`
	ArrivalTime int64 `yaml:"arrival" json:"arrival_time"`
	BurstTime   int64 `yaml:"burst" json:"burst_time"`
}

// Process models a single process's lifecycle in the simulation.
// Only the Simulator mutates a Process; everything else sees ProcessSnapshot.
type Process struct {
	PID   int
	State ProcessState

	ArrivalTime   int64 // Tick at which the process becomes eligible
	BurstTime     int64 // Total CPU demand in ticks
	RemainingTime int64 // CPU ticks still owed

	FirstRunTime   int64 // Tick of first dispatch, -1 until dispatched
	CompletionTime int64 // Tick after the last executed tick
	TurnaroundTime int64 // CompletionTime - ArrivalTime
	WaitingTime    int64 // TurnaroundTime - BurstTime
}

// NewProcess creates a Ready process from a descriptor.
func NewProcess(spec ProcessSpec) *Process {
	return &Process{
		PID:           spec.PID,
		State:         StateReady,
		ArrivalTime:   spec.ArrivalTime,
		BurstTime:     spec.BurstTime,
		RemainingTime: spec.BurstTime,
		FirstRunTime:  -1,
	}
}

// Snapshot returns a read-only copy of the externally visible fields.
func (p *Process) Snapshot() ProcessSnapshot {
	return ProcessSnapshot{
		PID:           p.PID,
		State:         p.State,
		ArrivalTime:   p.ArrivalTime,
		BurstTime:     p.BurstTime,
		RemainingTime: p.RemainingTime,
	}
}

// Outcome returns the final timing record for the process.
func (p *Process) Outcome() ProcessOutcome {
	o := ProcessOutcome{
		PID:         p.PID,
		State:       p.State,
		ArrivalTime: p.ArrivalTime,
		BurstTime:   p.BurstTime,
		Remaining:   p.RemainingTime,
		Completed:   p.State == StateTerminated,
	}
	if o.Completed {
		o.CompletionTime = p.CompletionTime
		o.TurnaroundTime = p.TurnaroundTime
		o.WaitingTime = p.WaitingTime
		o.ResponseTime = p.FirstRunTime - p.ArrivalTime
	}
	return o
}

func (p Process) String() string {
	return fmt.Sprintf("Process: (PID: %d, State: %s, Arrival: %d, Burst: %d, Remaining: %d)",
		p.PID, p.State, p.ArrivalTime, p.BurstTime, p.RemainingTime)
}

// ProcessSnapshot is the per-tick view handed to policies and observers.
type ProcessSnapshot struct {
	PID           int          `json:"pid"`
	State         ProcessState `json:"state"`
	ArrivalTime   int64        `json:"arrival_time"`
	BurstTime     int64        `json:"burst_time"`
	RemainingTime int64        `json:"remaining_time"`
}

// Dispatchable reports whether a policy may pick this process to run.
func (s ProcessSnapshot) Dispatchable() bool {
	return s.State == StateReady || s.State == StateRunning
}

// ProcessOutcome is the final per-process record of a run.
// Timing fields are zero unless Completed is true.
type ProcessOutcome struct {
	PID            int          `json:"pid"`
	State          ProcessState `json:"state"`
	ArrivalTime    int64        `json:"arrival_time"`
	BurstTime      int64        `json:"burst_time"`
	Remaining      int64        `json:"remaining_time"`
	Completed      bool         `json:"completed"`
	CompletionTime int64        `json:"completion_time"`
	TurnaroundTime int64        `json:"turnaround_time"`
	WaitingTime    int64        `json:"waiting_time"`
	ResponseTime   int64        `json:"response_time"`
}
