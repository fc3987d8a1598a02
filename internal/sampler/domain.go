package sampler

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/xtding233/idle-balance/internal/balance"
)

// MaxPoints bounds every domain. Larger requests fail instead of truncating.
const MaxPoints = 1_000_000

// Kind selects how a Domain spaces its x values.
type Kind string

const (
	KindLinear  Kind = "linear"
	KindLog     Kind = "log"
	KindIndexed Kind = "indexed"
)

// Domain describes the x values a curve is sampled at.
//   - linear:  Start, Start+Step, ... while x < Stop (half-open)
//   - log:     Count points from 10^Start to 10^Stop inclusive
//   - indexed: Indices in the given order
type Domain struct {
	Kind    Kind
	Start   float64
	Stop    float64
	Step    float64
	Count   int
	Indices []int
}

// LinearDomain is the half-open grid [start, stop) with the given step.
func LinearDomain(start, stop, step float64) Domain {
	return Domain{Kind: KindLinear, Start: start, Stop: stop, Step: step}
}

// LogDomain is count log-spaced points between 10^startExp and 10^stopExp.
func LogDomain(startExp, stopExp float64, count int) Domain {
	return Domain{Kind: KindLog, Start: startExp, Stop: stopExp, Count: count}
}

// IndexDomain samples at the given integers in order.
func IndexDomain(indices ...int) Domain {
	return Domain{Kind: KindIndexed, Indices: append([]int(nil), indices...)}
}

// Range returns the indices lo..hi inclusive.
func Range(lo, hi int) []int {
	if hi < lo {
		return nil
	}
	out := make([]int, 0, hi-lo+1)
	for i := lo; i <= hi; i++ {
		out = append(out, i)
	}
	return out
}

func domainErr(op, format string, args ...any) error {
	return &balance.DomainError{Op: op, Msg: fmt.Sprintf(format, args...)}
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Values materializes the domain's x values.
func (d Domain) Values() ([]float64, error) {
	switch d.Kind {
	case KindLinear:
		return linearValues(d.Start, d.Stop, d.Step)
	case KindLog:
		return logValues(d.Start, d.Stop, d.Count)
	case KindIndexed:
		return indexedValues(d.Indices)
	default:
		return nil, domainErr("domain", "unknown domain kind %q", d.Kind)
	}
}

func linearValues(start, stop, step float64) ([]float64, error) {
	const op = "sampleLinear"
	if !finite(start, stop, step) {
		return nil, domainErr(op, "start, stop and step must be finite")
	}
	if step <= 0 {
		return nil, domainErr(op, "step must be > 0, got %v", step)
	}
	if stop < start {
		return nil, domainErr(op, "stop %v is before start %v", stop, start)
	}
	if n := math.Ceil((stop - start) / step); n > MaxPoints {
		return nil, domainErr(op, "domain has %.0f points, limit is %d", n, MaxPoints)
	}
	var xs []float64
	// x is recomputed from i each step so long grids do not drift.
	for i := 0; ; i++ {
		x := start + float64(i)*step
		if x >= stop {
			break
		}
		xs = append(xs, x)
	}
	return xs, nil
}

func logValues(startExp, stopExp float64, count int) ([]float64, error) {
	const op = "sampleLog"
	if !finite(startExp, stopExp) {
		return nil, domainErr(op, "exponents must be finite")
	}
	if count < 2 {
		return nil, domainErr(op, "count must be >= 2, got %d", count)
	}
	if count > MaxPoints {
		return nil, domainErr(op, "count %d exceeds limit %d", count, MaxPoints)
	}
	if stopExp <= startExp {
		return nil, domainErr(op, "stopExp %v must be greater than startExp %v", stopExp, startExp)
	}
	lo, hi := math.Pow(10, startExp), math.Pow(10, stopExp)
	if lo == 0 || math.IsInf(hi, 0) {
		return nil, domainErr(op, "10^%v..10^%v is not representable", startExp, stopExp)
	}
	xs := floats.LogSpan(make([]float64, count), lo, hi)
	xs[0], xs[count-1] = lo, hi
	return xs, nil
}

func indexedValues(indices []int) ([]float64, error) {
	if len(indices) == 0 {
		return nil, domainErr("sampleIndexed", "no indices")
	}
	if len(indices) > MaxPoints {
		return nil, domainErr("sampleIndexed", "%d indices exceed limit %d", len(indices), MaxPoints)
	}
	xs := make([]float64, len(indices))
	for i, v := range indices {
		xs[i] = float64(v)
	}
	return xs, nil
}
