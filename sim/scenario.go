package sim

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario is a complete run description, loadable from a YAML file.
// Nil pointer fields mean "not set in YAML" and fall back to defaults, so an
// explicit 0 probability is distinct from an omitted one.
type Scenario struct {
	Policy      string           `yaml:"policy"`
	TimeQuantum *int             `yaml:"time_quantum,omitempty"`
	Seed        int64            `yaml:"seed"`
	MaxTicks    int64            `yaml:"max_ticks,omitempty"`
	RoundRobin  RoundRobinConfig `yaml:"round_robin"`
	Processes   ProcessList      `yaml:"processes"`
}

// RoundRobinConfig holds round-robin draw probabilities.
type RoundRobinConfig struct {
	SuspendProbability *float64 `yaml:"suspend_probability,omitempty"`
	ResumeProbability  *float64 `yaml:"resume_probability,omitempty"`
}

// ProcessList is the process input. Count is the number of processes the
// author promised; 0 means "however many are listed".
type ProcessList struct {
	Count int           `yaml:"count,omitempty"`
	List  []ProcessSpec `yaml:"list"`
}

// LoadScenario reads and strictly parses a YAML scenario file.
// Unknown fields are rejected.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario strictly parses scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	var sc Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&sc); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}
	return &sc, nil
}

// SimConfig resolves the scenario into a SimConfig, filling defaults.
func (sc *Scenario) SimConfig() SimConfig {
	cfg := DefaultSimConfig(sc.Policy)
	cfg.Seed = sc.Seed
	cfg.MaxTicks = sc.MaxTicks
	if sc.TimeQuantum != nil {
		cfg.TimeQuantum = *sc.TimeQuantum
	}
	if sc.RoundRobin.SuspendProbability != nil {
		cfg.SuspendProbability = *sc.RoundRobin.SuspendProbability
	}
	if sc.RoundRobin.ResumeProbability != nil {
		cfg.ResumeProbability = *sc.RoundRobin.ResumeProbability
	}
	return cfg
}

// Validate checks the resolved configuration and the process list.
// An incomplete list reports ErrInputAborted.
func (sc *Scenario) Validate() error {
	cfg := sc.SimConfig()
	if err := cfg.Validate(); err != nil {
		return err
	}
	return ValidateProcesses(sc.Processes.Count, sc.Processes.List)
}
