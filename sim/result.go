package sim

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/xid"
	"github.com/sirupsen/logrus"

	"github.com/inference-sim/sched-sim/sim/trace"
)

// RunStatus is the terminal status of a run.
type RunStatus string

const (
	StatusCompleted RunStatus = "completed" // every process terminated
	StatusCancelled RunStatus = "cancelled" // context cancelled at a tick boundary
	StatusHorizon   RunStatus = "horizon"   // MaxTicks reached first
	StatusAborted   RunStatus = "aborted"   // input collaborator gave up; nothing ran
	StatusFailed    RunStatus = "failed"    // invariant violation
)

// RunResult is the typed outcome of a run. Partial results (cancelled,
// horizon) carry outcomes and trace but no Metrics.
type RunResult struct {
	RunID    string              `json:"run_id"`
	Policy   string              `json:"policy"`
	Seed     int64               `json:"seed"`
	Config   SimConfig           `json:"config"`
	Status   RunStatus           `json:"status"`
	Ticks    int64               `json:"ticks"`
	Outcomes []ProcessOutcome    `json:"outcomes"`
	Trace    []trace.Entry       `json:"trace"`
	Spans    []trace.Span        `json:"spans"`
	Summary  *trace.TraceSummary `json:"summary,omitempty"`
	Metrics  *Metrics            `json:"metrics,omitempty"`
	Error    string              `json:"error,omitempty"`
}

func newRunID() string {
	return xid.New().String()
}

// Execute validates the input, runs it to completion and returns the result.
// declared is the number of processes the input collaborator promised
// (0 = len(specs)). An incomplete input yields a StatusAborted result and a
// nil error; configuration problems return a *ConfigurationError.
func Execute(ctx context.Context, cfg SimConfig, declared int, specs []ProcessSpec, opts ...Option) (*RunResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := ValidateProcesses(declared, specs); err != nil {
		if errors.Is(err, ErrInputAborted) {
			logrus.Warnf("Simulation aborted: %v", err)
			policy, _ := CanonicalPolicy(cfg.Policy)
			return &RunResult{
				RunID:  newRunID(),
				Policy: policy,
				Seed:   cfg.Seed,
				Config: cfg,
				Status: StatusAborted,
				Error:  err.Error(),
			}, nil
		}
		return nil, err
	}
	s, err := NewSimulator(cfg, specs, opts...)
	if err != nil {
		return nil, err
	}
	return s.Run(ctx)
}

// WriteJSON writes the result as indented JSON.
func (r *RunResult) WriteJSON(w io.Writer) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling results: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("writing results: %w", err)
	}
	return nil
}

// SaveResults writes the result JSON to path.
func (r *RunResult) SaveResults(path string) error {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("creating results file: %w", err)
	}
	if err := r.WriteJSON(file); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing results file: %w", err)
	}
	logrus.Debugf("Successfully wrote results to '%s'", path)
	return nil
}

// LoadResults reads a result previously written by SaveResults.
func LoadResults(path string) (*RunResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading results: %w", err)
	}
	var r RunResult
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parsing results: %w", err)
	}
	return &r, nil
}
