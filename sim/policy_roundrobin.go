package sim

import (
	"sort"

	"github.com/sirupsen/logrus"
)

// RoundRobinPolicy dispatches from an explicit FIFO ReadyQueue.
//
// A process joins the queue the first tick it is eligible (arrival order,
// ties by PID). The head runs for up to Quantum ticks. After each executed
// tick the runner either terminates and leaves the queue, is suspended with
// probability SuspendProbability (and stays out of the queue), or, once its
// quantum is spent, goes to the back of the queue. Every Waiting process then
// resumes with probability ResumeProbability and re-enters at the back.
type RoundRobinPolicy struct {
	Quantum            int
	SuspendProbability float64
	ResumeProbability  float64

	suspendRNG RandSource
	resumeRNG  RandSource

	queue    ReadyQueue
	admitted map[int]bool
	current  int // PID holding the CPU for the rest of its quantum, 0 if none
	used     int // ticks of the current quantum already consumed
}

// NewRoundRobinPolicy builds a round-robin policy with injected random sources.
// Panics if quantum < 1 or a source is nil.
func NewRoundRobinPolicy(quantum int, suspendP, resumeP float64, suspend, resume RandSource) *RoundRobinPolicy {
	if quantum < 1 {
		panic("NewRoundRobinPolicy: quantum must be at least 1")
	}
	if suspend == nil || resume == nil {
		panic("NewRoundRobinPolicy: random sources must not be nil")
	}
	return &RoundRobinPolicy{
		Quantum:            quantum,
		SuspendProbability: suspendP,
		ResumeProbability:  resumeP,
		suspendRNG:         suspend,
		resumeRNG:          resume,
		admitted:           make(map[int]bool),
	}
}

func (r *RoundRobinPolicy) Name() string { return PolicyRoundRobin }

// Queue returns the ready queue contents, front first.
func (r *RoundRobinPolicy) Queue() []int {
	return r.queue.Items()
}

func (r *RoundRobinPolicy) Select(_ int64, eligible []ProcessSnapshot) (int, bool) {
	r.admit(eligible)

	if r.current != 0 {
		if p, ok := findSnapshot(eligible, r.current); ok && p.State == StateRunning {
			return r.current, true
		}
		r.current, r.used = 0, 0
	}

	for r.queue.Len() > 0 {
		pid, _ := r.queue.Dequeue()
		p, ok := findSnapshot(eligible, pid)
		if !ok || !p.Dispatchable() {
			logrus.Warnf("round-robin: dropping stale queue entry P%d", pid)
			continue
		}
		r.current, r.used = pid, 0
		return pid, true
	}
	return 0, false
}

// admit enqueues newly eligible processes in arrival order, ties by PID.
func (r *RoundRobinPolicy) admit(eligible []ProcessSnapshot) {
	var fresh []ProcessSnapshot
	for _, p := range eligible {
		if !r.admitted[p.PID] && p.State == StateReady {
			fresh = append(fresh, p)
		}
	}
	sort.SliceStable(fresh, func(i, j int) bool {
		if fresh[i].ArrivalTime != fresh[j].ArrivalTime {
			return fresh[i].ArrivalTime < fresh[j].ArrivalTime
		}
		return fresh[i].PID < fresh[j].PID
	})
	for _, p := range fresh {
		r.admitted[p.PID] = true
		r.queue.Enqueue(p.PID)
	}
}

func (r *RoundRobinPolicy) AfterTick(_ int64, ran int, procs []ProcessSnapshot) []Transition {
	var out []Transition
	suspended := 0

	if ran != 0 {
		r.used++
		p, _ := findSnapshot(procs, ran)
		switch {
		case p.State == StateTerminated:
			r.current, r.used = 0, 0
		case r.suspendRNG.Float64() < r.SuspendProbability:
			out = append(out, Transition{PID: ran, From: StateRunning, To: StateWaiting})
			suspended = ran
			r.current, r.used = 0, 0
		case r.used >= r.Quantum:
			r.queue.Enqueue(ran)
			r.current, r.used = 0, 0
		}
	}

	// procs is ordered by PID, which fixes the order of resume draws.
	for _, p := range procs {
		if p.State != StateWaiting && p.PID != suspended {
			continue
		}
		if r.resumeRNG.Float64() < r.ResumeProbability {
			out = append(out, Transition{PID: p.PID, From: StateWaiting, To: StateReady})
			r.queue.Enqueue(p.PID)
		}
	}
	return out
}
