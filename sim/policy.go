package sim

import (
	"fmt"
)

// Transition is a state change a policy asks the driver to apply.
// Policies never write process fields; the Simulator validates every
// Transition against the transition table before applying it.
type Transition struct {
	PID  int
	From ProcessState
	To   ProcessState
}

// Policy chooses which process occupies the CPU for one tick.
//
// Select receives the eligible set (arrived, not Terminated) ordered by PID
// and returns at most one PID. ok=false leaves the CPU idle for the tick.
//
// AfterTick runs once the driver has executed the tick. ran is the PID that
// executed (0 if idle) and procs holds post-tick snapshots of every process,
// ordered by PID. The returned transitions are applied in order.
type Policy interface {
	Name() string
	Select(clock int64, eligible []ProcessSnapshot) (pid int, ok bool)
	AfterTick(clock int64, ran int, procs []ProcessSnapshot) []Transition
}

// NewPolicy creates a Policy by name from cfg.
// Valid names: "fcfs", "sjf", "rr" (plus the aliases accepted by
// CanonicalPolicy). rng supplies the round-robin suspend and resume streams;
// it is ignored by the deterministic policies.
func NewPolicy(cfg SimConfig, rng *PartitionedRNG) (Policy, error) {
	name, err := CanonicalPolicy(cfg.Policy)
	if err != nil {
		return nil, err
	}
	switch name {
	case PolicyFCFS:
		return &FCFSPolicy{}, nil
	case PolicySJF:
		return &SJFPolicy{}, nil
	case PolicyRoundRobin:
		if rng == nil {
			rng = NewPartitionedRNG(NewSimulationKey(cfg.Seed))
		}
		return NewRoundRobinPolicy(cfg.TimeQuantum, cfg.SuspendProbability, cfg.ResumeProbability,
			rng.ForSubsystem(SubsystemSuspend), rng.ForSubsystem(SubsystemResume)), nil
	default:
		panic(fmt.Sprintf("unhandled policy %q", name))
	}
}

// findSnapshot returns the snapshot for pid.
func findSnapshot(procs []ProcessSnapshot, pid int) (ProcessSnapshot, bool) {
	for _, p := range procs {
		if p.PID == pid {
			return p, true
		}
	}
	return ProcessSnapshot{}, false
}

// runningSnapshot returns the Running process among procs, if any.
func runningSnapshot(procs []ProcessSnapshot) (ProcessSnapshot, bool) {
	for _, p := range procs {
		if p.State == StateRunning {
			return p, true
		}
	}
	return ProcessSnapshot{}, false
}
