package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculatePercentile(t *testing.T) {
	tests := []struct {
		name string
		data []int64
		p    float64
		want float64
	}{
		{"empty", nil, 50, 0},
		{"single", []int64{7}, 95, 7},
		{"median odd", []int64{5, 1, 3}, 50, 3},
		{"median even interpolates", []int64{4, 1, 3, 2}, 50, 2.5},
		{"p0 is min", []int64{9, 2, 5}, 0, 2},
		{"p100 is max", []int64{9, 2, 5}, 100, 9},
		{"p95 interpolates", []int64{1, 2, 3, 4, 5}, 95, 4.8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, CalculatePercentile(tt.data, tt.p), 1e-9)
		})
	}
}

func TestCalculatePercentile_DoesNotModifyInput(t *testing.T) {
	data := []int64{3, 1, 2}
	CalculatePercentile(data, 50)
	assert.Equal(t, []int64{3, 1, 2}, data)
}

func TestCalculateMean(t *testing.T) {
	assert.Equal(t, 0.0, CalculateMean([]int64{}))
	assert.InDelta(t, 2.0, CalculateMean([]int64{1, 3, 2}), 1e-9)
	assert.InDelta(t, 4.0/3.0, CalculateMean([]float64{1, 3, 0}), 1e-9)
	assert.InDelta(t, 1.5, CalculateMean([]int{1, 2}), 1e-9)
}
