package stats_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yeonchae62/REU-Project/pkg/stats"
)

func TestMoments(t *testing.T) {
	x := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	assert.Equal(t, 40.0, stats.Sum(x))
	assert.Equal(t, 5.0, stats.Mean(x))
	assert.Equal(t, 4.0, stats.Variance(x))
	assert.Equal(t, 2.0, stats.Std(x))

	assert.Zero(t, stats.Mean(nil))
	assert.Zero(t, stats.Std(nil))
}

func TestOrderStatistics(t *testing.T) {
	tests := []struct {
		name   string
		x      []float64
		median float64
		min    float64
		max    float64
	}{
		{name: "odd", x: []float64{3, 1, 2}, median: 2, min: 1, max: 3},
		{name: "even", x: []float64{4, 1, 3, 2}, median: 2.5, min: 1, max: 4},
		{name: "single", x: []float64{7}, median: 7, min: 7, max: 7},
		{name: "empty"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.median, stats.Median(tt.x))
			lo, hi := stats.MinMax(tt.x)
			assert.Equal(t, tt.min, lo)
			assert.Equal(t, tt.max, hi)
		})
	}
}

func TestMedianKeepsInput(t *testing.T) {
	x := []float64{3, 1, 2}
	stats.Median(x)
	assert.Equal(t, []float64{3, 1, 2}, x)
}

func TestPercentile(t *testing.T) {
	x := []float64{10, 20, 30, 40, 50}
	assert.Equal(t, 10.0, stats.Percentile(x, 0))
	assert.Equal(t, 50.0, stats.Percentile(x, 100))
	assert.Equal(t, 30.0, stats.Percentile(x, 50))
	assert.InDelta(t, 20.0, stats.Percentile(x, 25), 1e-12)
	assert.InDelta(t, 14.0, stats.Percentile(x, 10), 1e-12)
}

func TestClip(t *testing.T) {
	x := []float64{10, 20, 30, 40, 50}
	assert.Equal(t, []float64{20, 20, 30, 40, 40}, stats.Clip(x, 25, 75))
	assert.Equal(t, []float64{10, 20, 30, 40, 50}, x)
	assert.Empty(t, stats.Clip(nil, 1, 99))
}
