// Command balancegen evaluates the balance model for a tuning scenario and
// writes every chart series as JSON or YAML for the chart renderer.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/xtding233/idle-balance/internal/balance"
	"github.com/xtding233/idle-balance/internal/config"
	"github.com/xtding233/idle-balance/internal/logging"
	"github.com/xtding233/idle-balance/internal/series"
)

// exitFailures is the exit code when output was written but some series failed.
const exitFailures = 2

func main() {
	failed, err := run(context.Background(), os.Args[1:], os.Stdout)
	if err != nil {
		fmt.Fprintln(os.Stderr, "balancegen:", err)
		os.Exit(1)
	}
	if failed {
		os.Exit(exitFailures)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) (bool, error) {
	fs := pflag.NewFlagSet("balancegen", pflag.ContinueOnError)
	config.AddCommonFlags(fs)
	fs.String("chart", "", "generate only this chart ID (default: all)")
	fs.String("format", "json", "output format: json or yaml")
	fs.StringP("out", "o", "-", "output file, - for stdout")
	fs.Int("concurrency", 0, "series sampled in parallel (0 = GOMAXPROCS)")
	fs.Bool("summary", false, "log min/max/mean/percentiles of every series")
	if err := fs.Parse(args); err != nil {
		return false, err
	}
	v, err := config.BindSettings(fs)
	if err != nil {
		return false, err
	}

	log, err := logging.NewLogger(v.GetString(config.KeyLogLevel))
	if err != nil {
		return false, err
	}

	format := v.GetString("format")
	if format != "json" && format != "yaml" {
		return false, fmt.Errorf("unknown format %q (want json or yaml)", format)
	}

	loader := config.NewLoader(v.GetString(config.KeyConfigDir))
	scenario := v.GetString(config.KeyScenario)
	res, err := loader.Resolve(scenario)
	if err != nil {
		return false, fmt.Errorf("load tuning: %w", err)
	}
	model, err := balance.New(res.Tuning, balance.WithLogger(log.WithName("balance")))
	if err != nil {
		return false, fmt.Errorf("build model: %w", err)
	}
	log.V(logging.DEBUG).Info("Tuning loaded", "scenario", scenario, "version", res.Raw.Version,
		"producers", len(res.Tuning.Producers), "versions", res.Tuning.Distillation.Len())

	gen := series.NewGenerator(
		series.WithGeneratorLogger(log.WithName("series")),
		series.WithConcurrency(v.GetInt("concurrency")),
	)
	var report *series.Report
	if id := v.GetString("chart"); id != "" {
		report, err = gen.GenerateChart(ctx, model, res.Plan, id)
	} else {
		report, err = gen.Generate(ctx, model, res.Plan)
	}
	if err != nil {
		return false, err
	}

	if v.GetBool("summary") {
		for _, c := range report.Charts {
			for _, s := range c.Series {
				if s.Points == nil {
					continue
				}
				st := series.Summarize(s.Points)
				log.Info("Series summary", "chart", c.ID, "series", s.Name,
					"count", st.Count, "min", st.Min, "max", st.Max, "mean", st.Mean,
					"p50", st.P50, "p90", st.P90, "p99", st.P99)
			}
		}
	}

	out := stdout
	if path := v.GetString("out"); path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return false, err
		}
		defer f.Close()
		out = f
	}
	if err := write(out, format, report); err != nil {
		return false, fmt.Errorf("write %s: %w", format, err)
	}

	for _, f := range report.Failures {
		log.Info("Series failed", "chart", f.Chart, "series", f.Series, "err", f.Err)
	}
	return len(report.Failures) > 0, nil
}

func write(w io.Writer, format string, report *series.Report) error {
	if format == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return err
		}
		return enc.Close()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
