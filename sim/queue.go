// Implements the ReadyQueue, the explicit FIFO the round-robin policy
// dispatches from.

package sim

import (
	"fmt"
	"strings"
)

// ReadyQueue is a FIFO of process IDs. A PID appears at most once.
type ReadyQueue struct {
	queue []int
}

// Enqueue adds a process to the back of the queue.
// Enqueueing a PID that is already queued panics: it would let one process
// hold two turns.
func (rq *ReadyQueue) Enqueue(pid int) {
	if rq.Contains(pid) {
		panic(fmt.Sprintf("Enqueue: pid %d already queued", pid))
	}
	rq.queue = append(rq.queue, pid)
}

// Dequeue removes and returns the PID at the front of the queue.
// Returns false if the queue is empty.
func (rq *ReadyQueue) Dequeue() (int, bool) {
	if len(rq.queue) == 0 {
		return 0, false
	}
	pid := rq.queue[0]
	rq.queue = rq.queue[1:]
	return pid, true
}

// Peek returns the PID at the front of the queue without removing it.
func (rq *ReadyQueue) Peek() (int, bool) {
	if len(rq.queue) == 0 {
		return 0, false
	}
	return rq.queue[0], true
}

// Remove deletes pid wherever it is in the queue. Returns false if absent.
func (rq *ReadyQueue) Remove(pid int) bool {
	for i, q := range rq.queue {
		if q == pid {
			rq.queue = append(rq.queue[:i], rq.queue[i+1:]...)
			return true
		}
	}
	return false
}

// Contains reports whether pid is queued.
func (rq *ReadyQueue) Contains(pid int) bool {
	for _, q := range rq.queue {
		if q == pid {
			return true
		}
	}
	return false
}

// Len returns the number of queued processes.
func (rq *ReadyQueue) Len() int {
	return len(rq.queue)
}

// Items returns a copy of the queue contents, front first.
func (rq *ReadyQueue) Items() []int {
	out := make([]int, len(rq.queue))
	copy(out, rq.queue)
	return out
}

func (rq *ReadyQueue) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, pid := range rq.queue {
		sb.WriteString(fmt.Sprintf("P%d", pid))
		if i < len(rq.queue)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}
