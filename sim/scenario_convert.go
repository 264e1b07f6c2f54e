package sim

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ReadProcessCSV parses a process list from CSV. Rows are either
// "arrival,burst" (PIDs numbered from 1 in row order) or
// "pid,arrival,burst". A first row that does not parse as numbers is taken
// as a header and skipped.
func ReadProcessCSV(r io.Reader) ([]ProcessSpec, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.Comment = '#'

	var specs []ProcessSpec
	for row := 1; ; row++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading process csv: %w", err)
		}
		values, err := parseCSVInts(record)
		if err != nil {
			if row == 1 {
				continue
			}
			return nil, fmt.Errorf("process csv row %d: %w", row, err)
		}
		switch len(values) {
		case 2:
			specs = append(specs, ProcessSpec{PID: len(specs) + 1, ArrivalTime: values[0], BurstTime: values[1]})
		case 3:
			specs = append(specs, ProcessSpec{PID: int(values[0]), ArrivalTime: values[1], BurstTime: values[2]})
		default:
			return nil, fmt.Errorf("process csv row %d: want 2 or 3 columns, got %d", row, len(values))
		}
	}
	if len(specs) == 0 {
		return nil, fmt.Errorf("process csv has no rows")
	}
	return specs, nil
}

func parseCSVInts(record []string) ([]int64, error) {
	out := make([]int64, len(record))
	for i, field := range record {
		v, err := strconv.ParseInt(strings.TrimSpace(field), 10, 64)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// ScenarioFromResult rebuilds the scenario that produced a saved result, so
// the run can be repeated. Only completed, cancelled and horizon results
// carry the process list.
func ScenarioFromResult(res *RunResult) (*Scenario, error) {
	if len(res.Outcomes) == 0 {
		return nil, fmt.Errorf("result %s has no processes (status %s)", res.RunID, res.Status)
	}
	cfg := res.Config
	if cfg.Policy == "" {
		cfg = DefaultSimConfig(res.Policy)
		cfg.Seed = res.Seed
	}
	quantum := cfg.TimeQuantum
	suspend := cfg.SuspendProbability
	resume := cfg.ResumeProbability
	sc := &Scenario{
		Policy:      cfg.Policy,
		TimeQuantum: &quantum,
		Seed:        cfg.Seed,
		MaxTicks:    cfg.MaxTicks,
		RoundRobin: RoundRobinConfig{
			SuspendProbability: &suspend,
			ResumeProbability:  &resume,
		},
		Processes: ProcessList{Count: len(res.Outcomes)},
	}
	for _, o := range res.Outcomes {
		sc.Processes.List = append(sc.Processes.List, ProcessSpec{PID: o.PID, ArrivalTime: o.ArrivalTime, BurstTime: o.BurstTime})
	}
	return sc, nil
}
