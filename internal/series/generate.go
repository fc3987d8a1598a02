package series

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/go-logr/logr"
	"golang.org/x/sync/errgroup"

	"github.com/xtding233/idle-balance/internal/balance"
	"github.com/xtding233/idle-balance/internal/logging"
)

// ErrUnknownChart is returned for a chart ID not in the catalog.
var ErrUnknownChart = errors.New("unknown chart")

// Generator samples catalog charts in parallel.
type Generator struct {
	log     logr.Logger
	metrics *Metrics
	limit   int
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithGeneratorLogger sets the logger used for failures and progress.
func WithGeneratorLogger(log logr.Logger) GeneratorOption {
	return func(g *Generator) { g.log = log }
}

// WithMetrics records generation outcomes on m.
func WithMetrics(m *Metrics) GeneratorOption {
	return func(g *Generator) { g.metrics = m }
}

// WithConcurrency bounds the number of series sampled at once. n <= 0 uses
// GOMAXPROCS.
func WithConcurrency(n int) GeneratorOption {
	return func(g *Generator) { g.limit = n }
}

// NewGenerator returns a Generator with the given options applied.
func NewGenerator(opts ...GeneratorOption) *Generator {
	g := &Generator{log: logr.Discard()}
	for _, o := range opts {
		o(g)
	}
	if g.limit <= 0 {
		g.limit = runtime.GOMAXPROCS(0)
	}
	return g
}

type job struct {
	chart, series int
	spec          Spec
}

type result struct {
	series Series
	err    error
	done   bool
}

// Generate builds every catalog chart. A series that fails is listed in
// Report.Failures and left out of its chart; the others are still built.
// The returned error is non-nil only for an invalid plan or a cancelled ctx.
func (g *Generator) Generate(ctx context.Context, m *balance.Model, plan Plan) (*Report, error) {
	return g.generate(ctx, m, plan, Catalog())
}

// GenerateChart builds a single chart by ID.
func (g *Generator) GenerateChart(ctx context.Context, m *balance.Model, plan Plan, id string) (*Report, error) {
	def, err := LookupChart(id)
	if err != nil {
		return nil, err
	}
	return g.generate(ctx, m, plan, []ChartDef{def})
}

func (g *Generator) generate(ctx context.Context, m *balance.Model, plan Plan, defs []ChartDef) (*Report, error) {
	if m == nil {
		return nil, errors.New("generate: nil model")
	}
	if err := plan.Validate(); err != nil {
		return nil, err
	}

	specs := make([][]Spec, len(defs))
	results := make([][]result, len(defs))
	var jobs []job
	for ci, d := range defs {
		specs[ci] = d.Specs(m, plan)
		results[ci] = make([]result, len(specs[ci]))
		for si, s := range specs[ci] {
			jobs = append(jobs, job{chart: ci, series: si, spec: s})
		}
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(g.limit)
	for _, j := range jobs {
		if egCtx.Err() != nil {
			break
		}
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			s, err := j.spec.sample(m)
			results[j.chart][j.series] = result{series: s, err: err, done: true}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report := &Report{Charts: make([]Chart, 0, len(defs))}
	for ci, d := range defs {
		chart := Chart{ID: d.ID, Title: d.Title, Series: make([]Series, 0, len(specs[ci]))}
		for si, r := range results[ci] {
			name := specs[ci][si].Name
			if r.err != nil {
				g.log.Error(r.err, "series failed", "chart", d.ID, "series", name)
				g.metrics.fail(d.ID)
				report.Failures = append(report.Failures, Failure{Chart: d.ID, Series: name, Err: r.err.Error()})
				continue
			}
			if !r.done {
				return nil, fmt.Errorf("generate: series %q of chart %q was not sampled", name, d.ID)
			}
			g.metrics.observe(d.ID, r.series)
			chart.Series = append(chart.Series, r.series)
		}
		g.log.V(logging.DEBUG).Info("chart generated", "chart", d.ID, "series", len(chart.Series))
		report.Charts = append(report.Charts, chart)
	}
	return report, nil
}
