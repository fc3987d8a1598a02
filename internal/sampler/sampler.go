// Package sampler turns balance formulas into finite, ordered (x, y) series.
//
// Sampling is eager and deterministic: the same function over the same
// domain always produces the same points. Invalid domains and formula errors
// fail the whole call; no partial series is ever returned.
package sampler

import (
	"fmt"
	"math"
	"sort"
)

// Point is one sample of a single-valued curve.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// MultiPoint is one sample of a multi-valued curve, keyed by category.
type MultiPoint struct {
	X      float64            `json:"x" yaml:"x"`
	Values map[string]float64 `json:"values" yaml:"values"`
}

// Func is a single-valued curve.
type Func func(x float64) (float64, error)

// MultiFunc is a curve with one value per category.
type MultiFunc func(x float64) (map[string]float64, error)

// IntArg adapts an integer-argument formula. Non-integer x is a domain error.
func IntArg(fn func(n int) (float64, error)) Func {
	return func(x float64) (float64, error) {
		if x != math.Trunc(x) || math.Abs(x) > math.MaxInt32 {
			return 0, domainErr("intArg", "x must be an integer, got %v", x)
		}
		return fn(int(x))
	}
}

// Sample evaluates fn at every x of d.
func Sample(fn Func, d Domain) ([]Point, error) {
	xs, err := d.Values()
	if err != nil {
		return nil, err
	}
	out := make([]Point, len(xs))
	for i, x := range xs {
		y, err := fn(x)
		if err != nil {
			return nil, fmt.Errorf("at x=%v: %w", x, err)
		}
		out[i] = Point{X: x, Y: y}
	}
	return out, nil
}

// SampleLinear samples fn on [start, stop) with the given step.
func SampleLinear(fn Func, start, stop, step float64) ([]Point, error) {
	return Sample(fn, LinearDomain(start, stop, step))
}

// SampleLog samples fn at count log-spaced points from 10^startExp to
// 10^stopExp inclusive.
func SampleLog(fn Func, startExp, stopExp float64, count int) ([]Point, error) {
	return Sample(fn, LogDomain(startExp, stopExp, count))
}

// SampleIndexed samples fn at the given integers in order.
func SampleIndexed(fn Func, indices []int) ([]Point, error) {
	return Sample(fn, IndexDomain(indices...))
}

// SampleMultiSeries evaluates every labeled curve over the same domain.
func SampleMultiSeries(fns map[string]Func, d Domain) (map[string][]Point, error) {
	if len(fns) == 0 {
		return nil, domainErr("sampleMultiSeries", "no curves")
	}
	labels := make([]string, 0, len(fns))
	for l := range fns {
		labels = append(labels, l)
	}
	sort.Strings(labels)

	out := make(map[string][]Point, len(fns))
	for _, l := range labels {
		pts, err := Sample(fns[l], d)
		if err != nil {
			return nil, fmt.Errorf("curve %q: %w", l, err)
		}
		out[l] = pts
	}
	return out, nil
}

// SampleTable evaluates a multi-valued curve over d.
func SampleTable(fn MultiFunc, d Domain) ([]MultiPoint, error) {
	xs, err := d.Values()
	if err != nil {
		return nil, err
	}
	out := make([]MultiPoint, len(xs))
	for i, x := range xs {
		vals, err := fn(x)
		if err != nil {
			return nil, fmt.Errorf("at x=%v: %w", x, err)
		}
		out[i] = MultiPoint{X: x, Values: vals}
	}
	return out, nil
}
