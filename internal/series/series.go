// Package series builds the labeled sample series handed to the chart
// renderer. Each chart is a list of independent series; a series that fails
// is reported and skipped while the rest are still produced.
package series

import (
	"github.com/xtding233/idle-balance/internal/balance"
	"github.com/xtding233/idle-balance/internal/sampler"
)

// Scale is an axis hint for the renderer. Empty means linear.
type Scale string

const (
	ScaleLinear Scale = "linear"
	ScaleLog    Scale = "log"
)

// Series is one labeled curve. Exactly one of Points or Table is set.
// Labels, when present, name the x positions of an indexed series.
type Series struct {
	Name     string               `json:"name" yaml:"name"`
	XLabel   string               `json:"xLabel" yaml:"xLabel"`
	YLabel   string               `json:"yLabel" yaml:"yLabel"`
	XScale   Scale                `json:"xScale,omitempty" yaml:"xScale,omitempty"`
	YScale   Scale                `json:"yScale,omitempty" yaml:"yScale,omitempty"`
	Labels   []string             `json:"labels,omitempty" yaml:"labels,omitempty"`
	Points   []sampler.Point      `json:"points,omitempty" yaml:"points,omitempty"`
	Table    []sampler.MultiPoint `json:"table,omitempty" yaml:"table,omitempty"`
	Warnings []string             `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// Chart groups the series drawn together.
type Chart struct {
	ID     string   `json:"id" yaml:"id"`
	Title  string   `json:"title" yaml:"title"`
	Series []Series `json:"series" yaml:"series"`
}

// Failure records a series that could not be produced.
type Failure struct {
	Chart  string `json:"chart" yaml:"chart"`
	Series string `json:"series" yaml:"series"`
	Err    string `json:"error" yaml:"error"`
}

// Report is the outcome of one generation run, charts in catalog order.
type Report struct {
	Charts   []Chart   `json:"charts" yaml:"charts"`
	Failures []Failure `json:"failures,omitempty" yaml:"failures,omitempty"`
}

// Spec describes how to sample one series. Exactly one of Points or Table
// is non-nil.
type Spec struct {
	Name   string
	XLabel string
	YLabel string
	XScale Scale
	YScale Scale
	Labels []string
	Points func(m *balance.Model) ([]sampler.Point, error)
	Table  func(m *balance.Model) ([]sampler.MultiPoint, error)
}

// sample runs the spec against m, collecting warnings m raises meanwhile.
func (s Spec) sample(m *balance.Model) (Series, error) {
	var warnings []string
	seen := map[string]bool{}
	wm := m.WithHandler(func(w balance.Warning) {
		msg := w.String()
		if !seen[msg] {
			seen[msg] = true
			warnings = append(warnings, msg)
		}
	})

	out := Series{
		Name:   s.Name,
		XLabel: s.XLabel,
		YLabel: s.YLabel,
		XScale: s.XScale,
		YScale: s.YScale,
		Labels: s.Labels,
	}
	var err error
	switch {
	case s.Points != nil:
		out.Points, err = s.Points(wm)
	case s.Table != nil:
		out.Table, err = s.Table(wm)
	default:
		err = &balance.DomainError{Op: "series", Msg: "spec " + s.Name + " has no sampler"}
	}
	if err != nil {
		return Series{}, err
	}
	out.Warnings = warnings
	return out, nil
}
