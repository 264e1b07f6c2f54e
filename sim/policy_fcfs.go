package sim

// FCFSPolicy is non-preemptive first-come-first-served.
// The Running process keeps the CPU until it terminates; otherwise the
// earliest arrival wins, ties broken by ascending PID.
type FCFSPolicy struct{}

func (f *FCFSPolicy) Name() string { return PolicyFCFS }

func (f *FCFSPolicy) Select(_ int64, eligible []ProcessSnapshot) (int, bool) {
	if cur, ok := runningSnapshot(eligible); ok {
		return cur.PID, true
	}
	var best ProcessSnapshot
	found := false
	for _, p := range eligible {
		if !p.Dispatchable() {
			continue
		}
		if !found || p.ArrivalTime < best.ArrivalTime ||
			(p.ArrivalTime == best.ArrivalTime && p.PID < best.PID) {
			best = p
			found = true
		}
	}
	return best.PID, found
}

func (f *FCFSPolicy) AfterTick(_ int64, _ int, _ []ProcessSnapshot) []Transition {
	return nil
}
