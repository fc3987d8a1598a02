package series

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xtding233/idle-balance/internal/sampler"
)

func pointsOf(ys ...float64) []sampler.Point {
	out := make([]sampler.Point, len(ys))
	for i, y := range ys {
		out[i] = sampler.Point{X: float64(i), Y: y}
	}
	return out
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name string
		ys   []float64
		want Stats
	}{
		{
			name: "empty",
			want: Stats{},
		},
		{
			name: "single",
			ys:   []float64{7},
			want: Stats{Count: 1, Min: 7, Max: 7, Mean: 7, P50: 7, P90: 7, P99: 7},
		},
		{
			name: "unsorted five",
			ys:   []float64{5, 1, 4, 2, 3},
			want: Stats{
				Count: 5, Min: 1, Max: 5, Mean: 3, Var: 2, StdDev: math.Sqrt(2),
				P50: 3, P90: 4.6, P99: 4.96,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Summarize(pointsOf(tt.ys...))
			assert.Equal(t, tt.want.Count, got.Count)
			assert.Equal(t, tt.want.Min, got.Min)
			assert.Equal(t, tt.want.Max, got.Max)
			assert.InDelta(t, tt.want.Mean, got.Mean, 1e-12)
			assert.InDelta(t, tt.want.Var, got.Var, 1e-12)
			assert.InDelta(t, tt.want.StdDev, got.StdDev, 1e-12)
			assert.InDelta(t, tt.want.P50, got.P50, 1e-12)
			assert.InDelta(t, tt.want.P90, got.P90, 1e-12)
			assert.InDelta(t, tt.want.P99, got.P99, 1e-12)
		})
	}
}

func TestSummarizeDoesNotReorderInput(t *testing.T) {
	pts := pointsOf(3, 1, 2)
	Summarize(pts)
	assert.Equal(t, 3.0, pts[0].Y)
}
