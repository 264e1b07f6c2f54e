// Derives run-wide scheduling metrics from final process outcomes:
// waiting, turnaround and response times, CPU utilization and throughput.

package sim

import (
	"fmt"
)

// CPUAccounting carries the driver's CPU counters into ComputeMetrics.
type CPUAccounting struct {
	Ticks       int64 // ticks executed
	BusyTicks   int64 // ticks in which some process ran
	IdleTicks   int64 // ticks in which the CPU was idle
	Dispatches  int   // trace entries
	Preemptions int   // Running -> Ready transitions applied by the driver
}

// Metrics aggregates statistics about a completed run.
type Metrics struct {
	Processes         int     `json:"processes"`
	AvgWaitingTime    float64 `json:"avg_waiting_time"`
	AvgTurnaroundTime float64 `json:"avg_turnaround_time"`
	AvgResponseTime   float64 `json:"avg_response_time"`
	P50Turnaround     float64 `json:"p50_turnaround_time"`
	P95Turnaround     float64 `json:"p95_turnaround_time"`
	MaxWaitingTime    int64   `json:"max_waiting_time"`
	Makespan          int64   `json:"makespan"`
	BusyTicks         int64   `json:"busy_ticks"`
	IdleTicks         int64   `json:"idle_ticks"`
	CPUUtilization    float64 `json:"cpu_utilization"`
	Throughput        float64 `json:"throughput"` // processes per tick
	Dispatches        int     `json:"dispatches"`
	Preemptions       int     `json:"preemptions"`
}

// ComputeMetrics is a pure function of the final outcomes and CPU counters.
// Every outcome must be Completed.
func ComputeMetrics(outcomes []ProcessOutcome, acct CPUAccounting) (*Metrics, error) {
	if len(outcomes) == 0 {
		return nil, fmt.Errorf("no processes to aggregate")
	}
	waits := make([]int64, 0, len(outcomes))
	turnarounds := make([]int64, 0, len(outcomes))
	responses := make([]int64, 0, len(outcomes))
	m := &Metrics{
		Processes:   len(outcomes),
		BusyTicks:   acct.BusyTicks,
		IdleTicks:   acct.IdleTicks,
		Dispatches:  acct.Dispatches,
		Preemptions: acct.Preemptions,
	}
	for _, o := range outcomes {
		if !o.Completed {
			return nil, fmt.Errorf("process %d has not terminated", o.PID)
		}
		waits = append(waits, o.WaitingTime)
		turnarounds = append(turnarounds, o.TurnaroundTime)
		responses = append(responses, o.ResponseTime)
		m.MaxWaitingTime = max(m.MaxWaitingTime, o.WaitingTime)
		m.Makespan = max(m.Makespan, o.CompletionTime)
	}

	m.AvgWaitingTime = CalculateMean(waits)
	m.AvgTurnaroundTime = CalculateMean(turnarounds)
	m.AvgResponseTime = CalculateMean(responses)
	m.P50Turnaround = CalculatePercentile(turnarounds, 50)
	m.P95Turnaround = CalculatePercentile(turnarounds, 95)
	if acct.Ticks > 0 {
		m.CPUUtilization = float64(acct.BusyTicks) / float64(acct.Ticks)
	}
	if m.Makespan > 0 {
		m.Throughput = float64(m.Processes) / float64(m.Makespan)
	}
	return m, nil
}

// Print displays aggregated metrics at the end of the simulation.
func (m *Metrics) Print() {
	fmt.Println("=== Simulation Metrics ===")
	fmt.Printf("Processes              : %d\n", m.Processes)
	fmt.Printf("Average Waiting Time   : %.2f ticks\n", m.AvgWaitingTime)
	fmt.Printf("Average Turnaround Time: %.2f ticks\n", m.AvgTurnaroundTime)
	fmt.Printf("Average Response Time  : %.2f ticks\n", m.AvgResponseTime)
	fmt.Printf("Turnaround p50 / p95   : %.2f / %.2f ticks\n", m.P50Turnaround, m.P95Turnaround)
	fmt.Printf("Makespan               : %d ticks\n", m.Makespan)
	fmt.Printf("CPU Utilization        : %.2f%%\n", m.CPUUtilization*100)
	fmt.Printf("Throughput             : %.3f processes/tick\n", m.Throughput)
	fmt.Printf("Dispatches / Preempted : %d / %d\n", m.Dispatches, m.Preemptions)
}
