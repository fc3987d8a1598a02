package series

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/xtding233/idle-balance/internal/sampler"
)

// Stats summarizes the Y values of a series.
type Stats struct {
	Count  int     `json:"count" yaml:"count"`
	Min    float64 `json:"min" yaml:"min"`
	Max    float64 `json:"max" yaml:"max"`
	Mean   float64 `json:"mean" yaml:"mean"`
	Var    float64 `json:"var" yaml:"var"`
	StdDev float64 `json:"stdDev" yaml:"stdDev"`
	P50    float64 `json:"p50" yaml:"p50"`
	P90    float64 `json:"p90" yaml:"p90"`
	P99    float64 `json:"p99" yaml:"p99"`
}

// Summarize computes min/max, mean, population variance and linearly
// interpolated percentiles over the points' Y values.
func Summarize(points []sampler.Point) Stats {
	n := len(points)
	if n == 0 {
		return Stats{}
	}
	ys := make([]float64, n)
	for i, p := range points {
		ys[i] = p.Y
	}
	sort.Float64s(ys)

	mean, variance := stat.PopMeanVariance(ys, nil)
	return Stats{
		Count:  n,
		Min:    floats.Min(ys),
		Max:    floats.Max(ys),
		Mean:   mean,
		Var:    variance,
		StdDev: math.Sqrt(variance),
		P50:    percentile(0.50, ys),
		P90:    percentile(0.90, ys),
		P99:    percentile(0.99, ys),
	}
}

// percentile interpolates between closest ranks over sorted ys, so p=0 and
// p=1 hit the extremes.
func percentile(p float64, ys []float64) float64 {
	n := len(ys)
	if n == 1 || p <= 0 {
		return ys[0]
	}
	if p >= 1 {
		return ys[n-1]
	}
	pos := p * float64(n-1)
	i := int(math.Floor(pos))
	if i+1 >= n {
		return ys[i]
	}
	f := pos - float64(i)
	return ys[i]*(1-f) + ys[i+1]*f
}
