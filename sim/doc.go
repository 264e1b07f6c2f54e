// Package sim provides the tick-driven CPU scheduling simulator.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - process.go: Process lifecycle (Ready → Running → Waiting / Terminated) and the transition table
//   - policy.go: the Policy contract: select one PID per tick, request follow-up transitions
//   - simulator.go: the tick driver, the only code that mutates process state
//
// # Architecture
//
// Policies (policy_fcfs.go, policy_sjf.go, policy_roundrobin.go) see
// ProcessSnapshot copies and answer with a PID or a Transition. The
// Simulator validates every decision against the transition table and the
// single-CPU rule, records dispatches in sim/trace, and reports each tick to
// registered TickObservers. Step never blocks. Run adds context cancellation, the MaxTicks horizon and
// optional wall-clock pacing (WithPace).
//
// Round-robin randomness comes from PartitionedRNG (rng.go): the suspend and
// resume draws use isolated streams derived from one seed, so a seed fully
// determines a run.
//
// # Errors
//
//   - *ConfigurationError: rejected before the first tick
//   - ErrInputAborted: the input was incomplete; Execute reports StatusAborted
//   - *InvariantViolation: an engine bug; the run stops with StatusFailed
package sim
