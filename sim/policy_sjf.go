package sim

// SJFPolicy is preemptive shortest-remaining-time-first, recomputed every tick.
// Ties go to the earlier arrival, then the lower PID, so a Running process is
// only displaced by a strictly shorter job or an equal one that arrived first.
// Warning: long jobs can starve under a steady stream of short arrivals.
type SJFPolicy struct{}

func (s *SJFPolicy) Name() string { return PolicySJF }

func (s *SJFPolicy) Select(_ int64, eligible []ProcessSnapshot) (int, bool) {
	var best ProcessSnapshot
	found := false
	for _, p := range eligible {
		if !p.Dispatchable() {
			continue
		}
		if !found || shorterJob(p, best) {
			best = p
			found = true
		}
	}
	return best.PID, found
}

func (s *SJFPolicy) AfterTick(_ int64, _ int, _ []ProcessSnapshot) []Transition {
	return nil
}

// shorterJob orders by remaining time, then arrival time, then PID.
func shorterJob(a, b ProcessSnapshot) bool {
	if a.RemainingTime != b.RemainingTime {
		return a.RemainingTime < b.RemainingTime
	}
	if a.ArrivalTime != b.ArrivalTime {
		return a.ArrivalTime < b.ArrivalTime
	}
	return a.PID < b.PID
}
