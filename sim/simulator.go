// sim/simulator.go
package sim

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/sched-sim/sim/trace"
)

// ErrSimulationComplete is returned by Step once every process has terminated.
var ErrSimulationComplete = errors.New("simulation already complete")

// TickResult describes what one Step did.
type TickResult struct {
	Clock       int64        // tick that executed
	Ran         int          // PID that held the CPU, 0 if idle
	Dispatched  bool         // Ran entered Running this tick (a trace entry was recorded)
	Preempted   int          // PID moved Running -> Ready to make room, 0 if none
	Terminated  bool         // Ran finished this tick
	Transitions []Transition // policy follow-ups applied after execution
}

// Option customizes a Simulator.
type Option func(*Simulator)

// WithPolicy replaces the policy built from SimConfig.Policy.
func WithPolicy(p Policy) Option {
	return func(s *Simulator) { s.policy = p }
}

// WithRNG supplies the partitioned RNG used to build the round-robin policy.
func WithRNG(rng *PartitionedRNG) Option {
	return func(s *Simulator) { s.rng = rng }
}

// WithPace makes Run wait d between ticks. Step itself never waits.
func WithPace(d time.Duration) Option {
	return func(s *Simulator) { s.pace = d }
}

// WithObserver registers a TickObserver.
func WithObserver(o TickObserver) Option {
	return func(s *Simulator) { s.observers = append(s.observers, o) }
}

// Simulator is the tick driver. It owns every Process and is the only code
// that mutates them; policies see snapshots and answer with decisions.
// Thread-safety: NOT thread-safe. Drive it from a single goroutine.
type Simulator struct {
	Config SimConfig

	clock     int64
	policy    Policy
	rng       *PartitionedRNG
	observers []TickObserver
	pace      time.Duration

	processes []*Process // ordered by PID
	byPID     map[int]*Process
	running   *Process

	trace       *trace.ExecutionTrace
	terminated  int
	busyTicks   int64
	idleTicks   int64
	preemptions int
	failure     error
}

// NewSimulator validates cfg and specs and builds a Simulator at tick 0.
// specs must already be complete: use Execute to turn an aborted input into
// a result.
func NewSimulator(cfg SimConfig, specs []ProcessSpec, opts ...Option) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := ValidateProcesses(len(specs), specs); err != nil {
		return nil, err
	}
	cfg.Policy, _ = CanonicalPolicy(cfg.Policy)

	s := &Simulator{
		Config: cfg,
		byPID:  make(map[int]*Process, len(specs)),
		trace:  trace.NewExecutionTrace(),
	}
	for _, spec := range sortSpecsByPID(specs) {
		p := NewProcess(spec)
		s.processes = append(s.processes, p)
		s.byPID[p.PID] = p
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = NewPartitionedRNG(NewSimulationKey(cfg.Seed))
	}
	if s.policy == nil {
		p, err := NewPolicy(cfg, s.rng)
		if err != nil {
			return nil, err
		}
		s.policy = p
	}
	return s, nil
}

// Clock returns the next tick to execute.
func (sim *Simulator) Clock() int64 { return sim.clock }

// Policy returns the active policy.
func (sim *Simulator) Policy() Policy { return sim.policy }

// Done reports whether every process has terminated.
func (sim *Simulator) Done() bool { return sim.terminated == len(sim.processes) }

// Trace returns a copy of the dispatch entries recorded so far.
func (sim *Simulator) Trace() []trace.Entry { return sim.trace.Entries() }

// Spans returns the dispatch spans recorded so far.
func (sim *Simulator) Spans() []trace.Span { return sim.trace.Spans() }

// Snapshots returns a copy of every process, ordered by PID.
func (sim *Simulator) Snapshots() []ProcessSnapshot {
	out := make([]ProcessSnapshot, len(sim.processes))
	for i, p := range sim.processes {
		out[i] = p.Snapshot()
	}
	return out
}

// Step executes exactly one tick and never blocks. After an
// InvariantViolation the simulator is poisoned and keeps returning it.
func (sim *Simulator) Step() (TickResult, error) {
	if sim.failure != nil {
		return TickResult{}, sim.failure
	}
	if sim.Done() {
		return TickResult{Clock: sim.clock}, ErrSimulationComplete
	}

	now := sim.clock
	res := TickResult{Clock: now}

	pid, ok := sim.policy.Select(now, sim.eligible(now))
	if ok {
		if err := sim.execute(now, pid, &res); err != nil {
			return res, sim.fail(err)
		}
	} else {
		if sim.running != nil {
			return res, sim.fail(&InvariantViolation{Clock: now, PID: sim.running.PID,
				Detail: "policy left the CPU idle while a process is Running"})
		}
		sim.idleTicks++
		sim.trace.Occupy(now, trace.Idle)
		logrus.Debugf("[tick %07d] CPU idle", now)
	}

	for _, t := range sim.policy.AfterTick(now, res.Ran, sim.Snapshots()) {
		if err := sim.applyPolicyTransition(now, t); err != nil {
			return res, sim.fail(err)
		}
		res.Transitions = append(res.Transitions, t)
	}

	if err := sim.checkExclusivity(now); err != nil {
		return res, sim.fail(err)
	}

	sim.notify(now, res.Ran)
	sim.clock++
	return res, nil
}

// Run steps until every process terminates, ctx is cancelled, or the horizon
// is reached. Cancellation is checked before each tick; the partial result
// is returned with a nil error.
func (sim *Simulator) Run(ctx context.Context) (*RunResult, error) {
	logrus.Infof("Starting %s simulation with %d processes", sim.policy.Name(), len(sim.processes))
	var pacer <-chan time.Time
	if sim.pace > 0 {
		ticker := time.NewTicker(sim.pace)
		defer ticker.Stop()
		pacer = ticker.C
	}
	for !sim.Done() {
		if err := ctx.Err(); err != nil {
			return sim.cancelled(err), nil
		}
		if sim.Config.MaxTicks > 0 && sim.clock >= sim.Config.MaxTicks {
			logrus.Warnf("[tick %07d] Simulation horizon reached", sim.clock)
			return sim.Result(StatusHorizon), nil
		}
		if pacer != nil {
			select {
			case <-ctx.Done():
				return sim.cancelled(ctx.Err()), nil
			case <-pacer:
			}
		}
		if _, err := sim.Step(); err != nil {
			logrus.Errorf("[tick %07d] Simulation failed: %v", sim.clock, err)
			res := sim.Result(StatusFailed)
			res.Error = err.Error()
			return res, err
		}
	}
	logrus.Infof("[tick %07d] Simulation ended", sim.clock)
	return sim.Result(StatusCompleted), nil
}

func (sim *Simulator) cancelled(err error) *RunResult {
	logrus.Warnf("[tick %07d] Simulation cancelled: %v", sim.clock, err)
	return sim.Result(StatusCancelled)
}

// Result assembles a RunResult for the current state. Metrics are only
// computed for StatusCompleted.
func (sim *Simulator) Result(status RunStatus) *RunResult {
	outcomes := make([]ProcessOutcome, len(sim.processes))
	for i, p := range sim.processes {
		outcomes[i] = p.Outcome()
	}
	summary := trace.Summarize(sim.trace)
	res := &RunResult{
		RunID:    newRunID(),
		Policy:   sim.policy.Name(),
		Seed:     sim.Config.Seed,
		Config:   sim.Config,
		Status:   status,
		Ticks:    sim.clock,
		Outcomes: outcomes,
		Trace:    sim.trace.Entries(),
		Spans:    sim.trace.Spans(),
		Summary:  summary,
	}
	if status == StatusCompleted {
		m, err := ComputeMetrics(outcomes, CPUAccounting{
			Ticks:       sim.clock,
			BusyTicks:   sim.busyTicks,
			IdleTicks:   sim.idleTicks,
			Dispatches:  summary.Dispatches,
			Preemptions: sim.preemptions,
		})
		if err != nil {
			logrus.Errorf("computing metrics: %v", err)
		}
		res.Metrics = m
	}
	return res
}

// eligible returns snapshots of arrived, non-terminated processes by PID.
func (sim *Simulator) eligible(now int64) []ProcessSnapshot {
	out := make([]ProcessSnapshot, 0, len(sim.processes))
	for _, p := range sim.processes {
		if p.ArrivalTime <= now && p.State != StateTerminated {
			out = append(out, p.Snapshot())
		}
	}
	return out
}

// execute runs pid for one tick.
func (sim *Simulator) execute(now int64, pid int, res *TickResult) error {
	p, ok := sim.byPID[pid]
	if !ok {
		return &InvariantViolation{Clock: now, PID: pid, Detail: "policy selected an unknown process"}
	}
	if p.ArrivalTime > now {
		return &InvariantViolation{Clock: now, PID: pid, Detail: "policy selected a process that has not arrived"}
	}
	if !p.Snapshot().Dispatchable() {
		return &InvariantViolation{Clock: now, PID: pid,
			Detail: fmt.Sprintf("policy selected a %s process", p.State)}
	}

	if sim.running != nil && sim.running != p {
		prev := sim.running
		if err := sim.transition(now, prev, StateReady); err != nil {
			return err
		}
		sim.running = nil
		sim.preemptions++
		res.Preempted = prev.PID
		logrus.Infof("[tick %07d] P%d preempted", now, prev.PID)
	}

	if p.State == StateReady {
		if err := sim.transition(now, p, StateRunning); err != nil {
			return err
		}
		sim.trace.Record(trace.Entry{PID: p.PID, StartTick: now})
		if p.FirstRunTime < 0 {
			p.FirstRunTime = now
		}
		res.Dispatched = true
		logrus.Infof("[tick %07d] P%d dispatched (remaining %d)", now, p.PID, p.RemainingTime)
	} else if err := sim.transition(now, p, StateRunning); err != nil {
		return err
	}
	sim.running = p

	p.RemainingTime--
	if p.RemainingTime < 0 {
		return &InvariantViolation{Clock: now, PID: p.PID, Detail: "remaining time went negative"}
	}
	sim.busyTicks++
	sim.trace.Occupy(now, p.PID)
	res.Ran = p.PID

	if p.RemainingTime == 0 {
		if err := sim.transition(now, p, StateTerminated); err != nil {
			return err
		}
		p.CompletionTime = now + 1
		p.TurnaroundTime = p.CompletionTime - p.ArrivalTime
		p.WaitingTime = p.TurnaroundTime - p.BurstTime
		sim.running = nil
		sim.terminated++
		res.Terminated = true
		logrus.Infof("[tick %07d] P%d terminated (turnaround %d, waiting %d)",
			now, p.PID, p.TurnaroundTime, p.WaitingTime)
	}
	return nil
}

// applyPolicyTransition is the only way a policy changes process state.
// Policies may suspend the running process or resume a waiting one.
func (sim *Simulator) applyPolicyTransition(now int64, t Transition) error {
	p, ok := sim.byPID[t.PID]
	if !ok {
		return &InvariantViolation{Clock: now, PID: t.PID, Detail: "transition for an unknown process"}
	}
	if p.State != t.From {
		return &InvariantViolation{Clock: now, PID: t.PID,
			Detail: fmt.Sprintf("stale transition %s -> %s, process is %s", t.From, t.To, p.State)}
	}
	allowed := (t.From == StateRunning && t.To == StateWaiting) ||
		(t.From == StateWaiting && t.To == StateReady)
	if !allowed {
		return &InvariantViolation{Clock: now, PID: t.PID,
			Detail: fmt.Sprintf("policies may not request %s -> %s", t.From, t.To)}
	}
	if err := sim.transition(now, p, t.To); err != nil {
		return err
	}
	if t.To == StateWaiting && sim.running == p {
		sim.running = nil
	}
	logrus.Infof("[tick %07d] P%d %s -> %s", now, p.PID, t.From, t.To)
	return nil
}

// transition validates from -> to against the transition table and applies it.
func (sim *Simulator) transition(now int64, p *Process, to ProcessState) error {
	if p.State == StateTerminated {
		return &InvariantViolation{Clock: now, PID: p.PID,
			Detail: fmt.Sprintf("terminated process received transition to %s", to)}
	}
	if !IsLegalTransition(p.State, to) {
		return &InvariantViolation{Clock: now, PID: p.PID,
			Detail: fmt.Sprintf("illegal transition %s -> %s", p.State, to)}
	}
	p.State = to
	return nil
}

// checkExclusivity enforces the single-CPU rule.
func (sim *Simulator) checkExclusivity(now int64) error {
	var running []int
	for _, p := range sim.processes {
		if p.State == StateRunning {
			running = append(running, p.PID)
		}
	}
	if len(running) > 1 {
		sort.Ints(running)
		return &InvariantViolation{Clock: now,
			Detail: fmt.Sprintf("%d processes Running at once: %v", len(running), running)}
	}
	return nil
}

func (sim *Simulator) notify(now int64, ran int) {
	if logrus.IsLevelEnabled(logrus.DebugLevel) {
		for _, snap := range sim.Snapshots() {
			logrus.Debugf("[tick %07d] P%d %-10s remaining=%d", now, snap.PID, snap.State, snap.RemainingTime)
		}
	}
	if len(sim.observers) == 0 {
		return
	}
	report := TickReport{
		Clock:     now,
		Ran:       ran,
		Snapshots: sim.Snapshots(),
		Trace:     sim.trace.Entries(),
	}
	for _, o := range sim.observers {
		o.OnTick(report)
	}
}

func (sim *Simulator) fail(err error) error {
	sim.failure = err
	return err
}
