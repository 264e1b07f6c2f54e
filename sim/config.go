package sim

import (
	"fmt"
	"sort"
	"strings"
)

const (
	// DefaultTimeQuantum is the round-robin quantum in ticks.
	DefaultTimeQuantum = 1
	// DefaultSuspendProbability is the per-tick chance the running process
	// moves to Waiting under round-robin.
	DefaultSuspendProbability = 0.2
	// DefaultResumeProbability is the per-tick chance a waiting process
	// becomes Ready again under round-robin.
	DefaultResumeProbability = 0.3
)

// Canonical policy names.
const (
	PolicyFCFS       = "fcfs"
	PolicySJF        = "sjf"
	PolicyRoundRobin = "rr"
)

// policyAliases maps every accepted spelling (lower-cased) to its canonical name.
var policyAliases = map[string]string{
	"fcfs":        PolicyFCFS,
	"sjf":         PolicySJF,
	"srt":         PolicySJF,
	"rr":          PolicyRoundRobin,
	"roundrobin":  PolicyRoundRobin,
	"round-robin": PolicyRoundRobin,
}

// PolicyNames returns the canonical policy names in a stable order.
func PolicyNames() []string {
	return []string{PolicyFCFS, PolicySJF, PolicyRoundRobin}
}

// CanonicalPolicy resolves a user-supplied policy name.
// Matching is case-insensitive, so "FCFS" and "RoundRobin" are accepted.
func CanonicalPolicy(name string) (string, error) {
	canonical, ok := policyAliases[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return "", configErrorf("policy", "unknown policy %q; valid policies: %v", name, PolicyNames())
	}
	return canonical, nil
}

// SimConfig groups everything that shapes a run except the process list.
type SimConfig struct {
	Policy             string  `json:"policy"`              // fcfs, sjf or rr (aliases accepted)
	TimeQuantum        int     `json:"time_quantum"`        // round-robin quantum in ticks (>= 1)
	Seed               int64   `json:"seed"`                // master seed for the round-robin streams
	SuspendProbability float64 `json:"suspend_probability"` // Running -> Waiting chance per tick (rr only)
	ResumeProbability  float64 `json:"resume_probability"`  // Waiting -> Ready chance per tick (rr only)
	MaxTicks           int64   `json:"max_ticks,omitempty"` // horizon; 0 means run until every process terminates
}

// DefaultSimConfig returns the default configuration for policy.
func DefaultSimConfig(policy string) SimConfig {
	return SimConfig{
		Policy:             policy,
		TimeQuantum:        DefaultTimeQuantum,
		SuspendProbability: DefaultSuspendProbability,
		ResumeProbability:  DefaultResumeProbability,
	}
}

// Validate checks policy name and parameter ranges.
func (c *SimConfig) Validate() error {
	if _, err := CanonicalPolicy(c.Policy); err != nil {
		return err
	}
	if c.TimeQuantum < 1 {
		return configErrorf("time_quantum", "must be at least 1, got %d", c.TimeQuantum)
	}
	if c.SuspendProbability < 0 || c.SuspendProbability > 1 {
		return configErrorf("suspend_probability", "must be within [0, 1], got %f", c.SuspendProbability)
	}
	if c.ResumeProbability < 0 || c.ResumeProbability > 1 {
		return configErrorf("resume_probability", "must be within [0, 1], got %f", c.ResumeProbability)
	}
	if c.MaxTicks < 0 {
		return configErrorf("max_ticks", "must be non-negative, got %d", c.MaxTicks)
	}
	return nil
}

// ValidateProcesses checks a process list against its declared count.
// A declared count of 0 means "as many as supplied". Fewer descriptors than
// declared returns ErrInputAborted; every other problem is a
// *ConfigurationError.
func ValidateProcesses(declared int, specs []ProcessSpec) error {
	if declared < 0 {
		return configErrorf("count", "process count must be positive, got %d", declared)
	}
	if declared == 0 {
		declared = len(specs)
	}
	if declared == 0 {
		return configErrorf("count", "process count must be positive, got 0")
	}
	if len(specs) < declared {
		return fmt.Errorf("%w: got %d of %d processes", ErrInputAborted, len(specs), declared)
	}
	if len(specs) > declared {
		return configErrorf("count", "declared %d processes but %d were supplied", declared, len(specs))
	}
	seen := make(map[int]bool, len(specs))
	for i, s := range specs {
		if s.PID <= 0 {
			return configErrorf(fmt.Sprintf("processes[%d].pid", i), "must be positive, got %d", s.PID)
		}
		if seen[s.PID] {
			return configErrorf(fmt.Sprintf("processes[%d].pid", i), "duplicate pid %d", s.PID)
		}
		seen[s.PID] = true
		if s.ArrivalTime < 0 {
			return configErrorf(fmt.Sprintf("processes[%d].arrival", i), "must be non-negative, got %d", s.ArrivalTime)
		}
		if s.BurstTime < 1 {
			return configErrorf(fmt.Sprintf("processes[%d].burst", i), "must be positive, got %d", s.BurstTime)
		}
	}
	return nil
}

// SequentialSpecs numbers arrival/burst pairs as PIDs 1..n, matching the order
// the interactive prompt reads them.
func SequentialSpecs(pairs [][2]int64) []ProcessSpec {
	specs := make([]ProcessSpec, len(pairs))
	for i, p := range pairs {
		specs[i] = ProcessSpec{PID: i + 1, ArrivalTime: p[0], BurstTime: p[1]}
	}
	return specs
}

// sortSpecsByPID returns a PID-ordered copy.
func sortSpecsByPID(specs []ProcessSpec) []ProcessSpec {
	out := make([]ProcessSpec, len(specs))
	copy(out, specs)
	sort.SliceStable(out, func(i, j int) bool { return out[i].PID < out[j].PID })
	return out
}
