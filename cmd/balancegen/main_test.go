package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/xtding233/idle-balance/internal/series"
)

func writeScenario(t *testing.T, dir, name, body string) {
	t.Helper()
	path := filepath.Join(dir, "tuning", "scenarios", name+".yaml")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestRunJSON(t *testing.T) {
	var buf bytes.Buffer
	failed, err := run(context.Background(), []string{"--config-dir", t.TempDir(), "--log-level", "error"}, &buf)
	require.NoError(t, err)
	assert.False(t, failed)

	var report series.Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &report))
	assert.Len(t, report.Charts, 6)
	assert.Empty(t, report.Failures)
}

func TestRunYAMLSingleChart(t *testing.T) {
	var buf bytes.Buffer
	_, err := run(context.Background(), []string{
		"--config-dir", t.TempDir(), "--log-level", "error",
		"--format", "yaml", "--chart", series.ChartPrestige, "--summary",
	}, &buf)
	require.NoError(t, err)

	var report series.Report
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &report))
	require.Len(t, report.Charts, 1)
	assert.Equal(t, series.ChartPrestige, report.Charts[0].ID)
}

func TestRunScenarioWithFailingSeries(t *testing.T) {
	dir := t.TempDir()
	writeScenario(t, dir, "infinite", `
charts:
  consume_exponents:
    - {label: "Infinite Guac (0.35)", exponent: 0.35}
`)
	out := filepath.Join(dir, "out.json")
	failed, err := run(context.Background(), []string{
		"--config-dir", dir, "--scenario", "infinite", "--log-level", "error", "-o", out,
	}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.True(t, failed)

	b, err := os.ReadFile(out)
	require.NoError(t, err)
	var report series.Report
	require.NoError(t, json.Unmarshal(b, &report))
	require.Len(t, report.Failures, 1)
	assert.Equal(t, "Consumption Infinite Guac (0.35)", report.Failures[0].Series)
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"bad format", []string{"--format", "xml"}, "unknown format"},
		{"bad log level", []string{"--log-level", "loud"}, "unknown log level"},
		{"missing scenario", []string{"--scenario", "nope"}, "scenario not found"},
		{"unknown chart", []string{"--chart", "nope"}, "unknown chart"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"--config-dir", t.TempDir()}, tt.args...)
			_, err := run(context.Background(), args, &bytes.Buffer{})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
