package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	sim "github.com/inference-sim/sched-sim/sim"
	"github.com/inference-sim/sched-sim/sim/trace"
)

// renderOutcomes prints the per-process schedule table. Averages go in the
// footer when the run completed.
func renderOutcomes(w io.Writer, res *sim.RunResult) {
	_, _ = fmt.Fprintf(w, "Schedule table (%s, %s)\n", res.Policy, res.Status)
	rows := make([][]string, 0, len(res.Outcomes))
	for _, o := range res.Outcomes {
		row := []string{
			strconv.Itoa(o.PID),
			strconv.FormatInt(o.ArrivalTime, 10),
			strconv.FormatInt(o.BurstTime, 10),
			string(o.State),
		}
		if o.Completed {
			row = append(row,
				strconv.FormatInt(o.ResponseTime, 10),
				strconv.FormatInt(o.WaitingTime, 10),
				strconv.FormatInt(o.TurnaroundTime, 10),
				strconv.FormatInt(o.CompletionTime, 10))
		} else {
			row = append(row, "-", "-", "-", fmt.Sprintf("(%d left)", o.Remaining))
		}
		rows = append(rows, row)
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"PID", "Arrival", "Burst", "State", "Response", "Wait", "Turnaround", "Exit"})
	table.AppendBulk(rows)
	if m := res.Metrics; m != nil {
		table.SetFooter([]string{"", "", "", "",
			fmt.Sprintf("Average\n%.2f", m.AvgResponseTime),
			fmt.Sprintf("Average\n%.2f", m.AvgWaitingTime),
			fmt.Sprintf("Average\n%.2f", m.AvgTurnaroundTime),
			fmt.Sprintf("Throughput\n%.2f/t", m.Throughput)})
	}
	table.Render()
}

// renderComparison prints one row per policy run on the same input.
func renderComparison(w io.Writer, results []*sim.RunResult) {
	_, _ = fmt.Fprintln(w, "Policy comparison")
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Policy", "Status", "Avg Wait", "Avg Turnaround", "Avg Response", "Makespan", "CPU Util", "Dispatches", "Preemptions"})
	for _, res := range results {
		m := res.Metrics
		if m == nil {
			table.Append([]string{res.Policy, string(res.Status), "-", "-", "-", strconv.FormatInt(res.Ticks, 10), "-", "-", "-"})
			continue
		}
		table.Append([]string{
			res.Policy,
			string(res.Status),
			fmt.Sprintf("%.2f", m.AvgWaitingTime),
			fmt.Sprintf("%.2f", m.AvgTurnaroundTime),
			fmt.Sprintf("%.2f", m.AvgResponseTime),
			strconv.FormatInt(m.Makespan, 10),
			fmt.Sprintf("%.1f%%", m.CPUUtilization*100),
			strconv.Itoa(m.Dispatches),
			strconv.Itoa(m.Preemptions),
		})
	}
	table.Render()
}

type ganttSegment struct {
	label      string
	start, end int64
}

// renderGantt prints spans as a one-line chart with a tick axis underneath.
// Gaps between spans, and any tail up to ticks, are shown as idle.
func renderGantt(w io.Writer, spans []trace.Span, ticks int64) {
	_, _ = fmt.Fprintln(w, "Gantt chart")
	if len(spans) == 0 {
		_, _ = fmt.Fprintln(w, "(no dispatches)")
		return
	}

	var segments []ganttSegment
	cursor := int64(0)
	for _, s := range spans {
		if s.Start > cursor {
			segments = append(segments, ganttSegment{"idle", cursor, s.Start})
		}
		segments = append(segments, ganttSegment{fmt.Sprintf("P%d", s.PID), s.Start, s.End})
		cursor = s.End
	}
	if ticks > cursor {
		segments = append(segments, ganttSegment{"idle", cursor, ticks})
	}

	var bar, axis strings.Builder
	for _, seg := range segments {
		start := strconv.FormatInt(seg.start, 10)
		width := max(len(seg.label)+3, len(start)+1)
		fmt.Fprintf(&bar, "| %-*s", width-2, seg.label)
		fmt.Fprintf(&axis, "%-*s", width, start)
	}
	bar.WriteString("|")
	axis.WriteString(strconv.FormatInt(segments[len(segments)-1].end, 10))
	_, _ = fmt.Fprintf(w, "%s\n%s\n\n", bar.String(), axis.String())
}

// newLiveView returns an observer printing one status line per tick, for
// paced runs.
func newLiveView(w io.Writer) sim.TickObserver {
	return sim.TickObserverFunc(func(r sim.TickReport) {
		_, _ = fmt.Fprintln(w, formatTick(r))
	})
}

func formatTick(r sim.TickReport) string {
	cpu := "idle"
	if r.Ran != 0 {
		cpu = fmt.Sprintf("P%d", r.Ran)
	}
	var ready, waiting, done []string
	for _, p := range r.Snapshots {
		if p.ArrivalTime > r.Clock {
			continue
		}
		label := fmt.Sprintf("P%d", p.PID)
		switch p.State {
		case sim.StateReady:
			ready = append(ready, label)
		case sim.StateWaiting:
			waiting = append(waiting, label)
		case sim.StateTerminated:
			done = append(done, label)
		}
	}
	return fmt.Sprintf("[tick %07d] CPU: %-4s | ready: [%s] | waiting: [%s] | done: [%s]",
		r.Clock, cpu, strings.Join(ready, " "), strings.Join(waiting, " "), strings.Join(done, " "))
}

// writeTraceCSV writes spans through a trace.CSVWriter and returns the path
// actually used.
func writeTraceCSV(path string, spans []trace.Span) (string, error) {
	writer := trace.NewCSVWriter(path)
	if err := writer.Init(); err != nil {
		return "", err
	}
	for _, s := range spans {
		if err := writer.Write(s); err != nil {
			_ = writer.Close()
			return "", err
		}
	}
	if err := writer.Close(); err != nil {
		return "", err
	}
	return writer.Path(), nil
}
