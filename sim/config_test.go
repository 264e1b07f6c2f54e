package sim

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalPolicy_AcceptsAliasesCaseInsensitively(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"fcfs", PolicyFCFS},
		{"FCFS", PolicyFCFS},
		{"sjf", PolicySJF},
		{"SRT", PolicySJF},
		{"rr", PolicyRoundRobin},
		{"RoundRobin", PolicyRoundRobin},
		{" round-robin ", PolicyRoundRobin},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := CanonicalPolicy(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCanonicalPolicy_Unknown_ConfigurationError(t *testing.T) {
	_, err := CanonicalPolicy("lottery")

	require.Error(t, err)
	assert.True(t, IsConfigurationError(err))
	assert.Contains(t, err.Error(), "lottery")
}

func TestDefaultSimConfig_Values(t *testing.T) {
	cfg := DefaultSimConfig("rr")

	assert.Equal(t, "rr", cfg.Policy)
	assert.Equal(t, 1, cfg.TimeQuantum)
	assert.Equal(t, 0.2, cfg.SuspendProbability)
	assert.Equal(t, 0.3, cfg.ResumeProbability)
	assert.Zero(t, cfg.MaxTicks)
	assert.NoError(t, cfg.Validate())
}

func TestSimConfig_Validate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SimConfig)
		field  string
	}{
		{"unknown policy", func(c *SimConfig) { c.Policy = "edf" }, "policy"},
		{"zero quantum", func(c *SimConfig) { c.TimeQuantum = 0 }, "time_quantum"},
		{"negative suspend", func(c *SimConfig) { c.SuspendProbability = -0.1 }, "suspend_probability"},
		{"suspend above one", func(c *SimConfig) { c.SuspendProbability = 1.5 }, "suspend_probability"},
		{"resume above one", func(c *SimConfig) { c.ResumeProbability = 2 }, "resume_probability"},
		{"negative horizon", func(c *SimConfig) { c.MaxTicks = -1 }, "max_ticks"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultSimConfig(PolicyRoundRobin)
			tt.mutate(&cfg)

			err := cfg.Validate()

			var ce *ConfigurationError
			require.True(t, errors.As(err, &ce), "want *ConfigurationError, got %v", err)
			assert.Equal(t, tt.field, ce.Field)
		})
	}
}

func TestSimConfig_Validate_BoundaryProbabilities(t *testing.T) {
	cfg := DefaultSimConfig(PolicyRoundRobin)
	cfg.SuspendProbability = 0
	cfg.ResumeProbability = 1
	assert.NoError(t, cfg.Validate())
}

func TestValidateProcesses(t *testing.T) {
	ok := []ProcessSpec{{PID: 1, ArrivalTime: 0, BurstTime: 3}, {PID: 2, ArrivalTime: 1, BurstTime: 2}}

	t.Run("declared zero means all supplied", func(t *testing.T) {
		assert.NoError(t, ValidateProcesses(0, ok))
	})
	t.Run("exact count", func(t *testing.T) {
		assert.NoError(t, ValidateProcesses(2, ok))
	})
	t.Run("fewer than declared aborts", func(t *testing.T) {
		err := ValidateProcesses(3, ok)
		assert.ErrorIs(t, err, ErrInputAborted)
		assert.False(t, IsConfigurationError(err))
	})
	t.Run("more than declared", func(t *testing.T) {
		assert.True(t, IsConfigurationError(ValidateProcesses(1, ok)))
	})
	t.Run("empty", func(t *testing.T) {
		assert.True(t, IsConfigurationError(ValidateProcesses(0, nil)))
	})
	t.Run("negative count", func(t *testing.T) {
		assert.True(t, IsConfigurationError(ValidateProcesses(-1, ok)))
	})
	t.Run("duplicate pid", func(t *testing.T) {
		specs := []ProcessSpec{{PID: 1, BurstTime: 1}, {PID: 1, BurstTime: 1}}
		assert.True(t, IsConfigurationError(ValidateProcesses(0, specs)))
	})
	t.Run("non-positive pid", func(t *testing.T) {
		specs := []ProcessSpec{{PID: 0, BurstTime: 1}}
		assert.True(t, IsConfigurationError(ValidateProcesses(0, specs)))
	})
	t.Run("negative arrival", func(t *testing.T) {
		specs := []ProcessSpec{{PID: 1, ArrivalTime: -1, BurstTime: 1}}
		assert.True(t, IsConfigurationError(ValidateProcesses(0, specs)))
	})
	t.Run("zero burst", func(t *testing.T) {
		specs := []ProcessSpec{{PID: 1, ArrivalTime: 0, BurstTime: 0}}
		err := ValidateProcesses(0, specs)
		var ce *ConfigurationError
		require.True(t, errors.As(err, &ce))
		assert.Equal(t, "processes[0].burst", ce.Field)
	})
}

func TestSequentialSpecs_NumbersFromOne(t *testing.T) {
	specs := SequentialSpecs([][2]int64{{0, 3}, {1, 2}})

	assert.Equal(t, []ProcessSpec{
		{PID: 1, ArrivalTime: 0, BurstTime: 3},
		{PID: 2, ArrivalTime: 1, BurstTime: 2},
	}, specs)
}

func TestErrors_Messages(t *testing.T) {
	ce := &ConfigurationError{Field: "time_quantum", Reason: "must be at least 1, got 0"}
	assert.Equal(t, "invalid configuration: time_quantum: must be at least 1, got 0", ce.Error())

	iv := &InvariantViolation{Clock: 4, Detail: "2 processes Running at once: [1 2]"}
	assert.Equal(t, "invariant violation at tick 4: 2 processes Running at once: [1 2]", iv.Error())
	iv.PID = 3
	assert.Contains(t, iv.Error(), "(pid 3)")
	assert.True(t, IsInvariantViolation(iv))
	assert.False(t, IsInvariantViolation(ce))
}
