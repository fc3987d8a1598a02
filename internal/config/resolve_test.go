package config

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xtding233/idle-balance/internal/balance"
	"github.com/xtding233/idle-balance/internal/series"
)

func TestResolveEmptyConfigIsBuiltInTuning(t *testing.T) {
	l := NewLoader(t.TempDir())
	r, err := l.Resolve("")
	require.NoError(t, err)

	def := balance.DefaultTuning()
	assert.Equal(t, def.CostGrowth, r.Tuning.CostGrowth)
	assert.Equal(t, def.Producers, r.Tuning.Producers)
	assert.Equal(t, def.Economy, r.Tuning.Economy)
	assert.Equal(t, def.Benchmarks, r.Tuning.Benchmarks)
	assert.Equal(t, def.Distillation.Costs(), r.Tuning.Distillation.Costs())
	if diff := cmp.Diff(series.DefaultPlan(), r.Plan); diff != "" {
		t.Fatalf("plan mismatch (-want +got):\n%s", diff)
	}

	_, err = balance.New(r.Tuning)
	assert.NoError(t, err)
}

func TestResolveScenario(t *testing.T) {
	l := newTestLoader(t)
	r, err := l.Resolve("hard")
	require.NoError(t, err)

	assert.Equal(t, 1.2, r.Tuning.CostGrowth)
	assert.Equal(t, []balance.ProducerTier{
		{Name: "Sapling", BaseCost: 10, BaseRate: 0.2},
		{Name: "Drone", BaseCost: 2000, BaseRate: 8},
		{Name: "Exchange", BaseCost: 130000, BaseRate: 260},
	}, r.Tuning.Producers)
	assert.Equal(t, 0.9, r.Tuning.Economy.ConsumeExponent)
	assert.Equal(t, 1.0, r.Tuning.Economy.BaseProduction, "omitted economy fields keep built-in values")
	assert.Equal(t, 1000.0, r.Tuning.Prestige.Divisor)
	assert.Equal(t, 1e6, r.Tuning.Prestige.UnlockThreshold)
	assert.Equal(t, []balance.Benchmark{{Name: "Hello World", Bonus: 0.02}}, r.Tuning.Benchmarks)

	assert.Equal(t, 40, r.Plan.OwnedMax)
	assert.Equal(t, 51, r.Plan.LabsMax)
	assert.Equal(t, 1, r.Plan.LabsMin)
	assert.Equal(t, 50, r.Plan.WisdomEarned.Count)
	assert.Equal(t, 6.0, r.Plan.WisdomEarned.StartExp)
	assert.Equal(t, []series.ExponentScenario{{Label: "Base", Exponent: 0.85}}, r.Plan.ConsumeExponents)

	m, err := balance.New(r.Tuning)
	require.NoError(t, err)
	tier, err := m.Tier("Drone")
	require.NoError(t, err)
	c, err := m.Cost(tier, 1)
	require.NoError(t, err)
	assert.InDelta(t, 2400, c, 1e-9)
}

func TestResolveDistillation(t *testing.T) {
	l := NewLoader(t.TempDir())
	writeFile(t, l.Paths().DefaultPath(), `
distillation:
  categories:
    - {name: Speed}
    - {name: Price, kind: discount}
  versions:
    - {cost: 10, bonuses: {Speed: 1.5}}
    - {cost: 20, bonuses: {Price: 0.8}}
`)
	r, err := l.Resolve("")
	require.NoError(t, err)
	m, err := balance.New(r.Tuning)
	require.NoError(t, err)

	ladder := m.Ladder()
	require.Equal(t, 2, ladder.Len())
	v, err := m.CumulativeDistillationBonus(ladder, 2, "Speed")
	require.NoError(t, err)
	assert.Equal(t, 1.5, v)
	v, err = m.CumulativeDistillationBonus(ladder, 2, "Price")
	require.NoError(t, err)
	assert.Equal(t, 0.8, v)
}

func TestResolveRejectsNonMonotoneLadder(t *testing.T) {
	l := NewLoader(t.TempDir())
	writeFile(t, l.Paths().DefaultPath(), `
distillation:
  versions:
    - {cost: 10, bonuses: {APS Mult: 1.5}}
    - {cost: 20, bonuses: {APS Mult: 1.2}}
`)
	_, err := l.Resolve("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "resolve distillation")
	assert.Contains(t, err.Error(), "may not fall")
}

func TestResolveExcludeProducers(t *testing.T) {
	l := newTestLoader(t)
	writeFile(t, l.Paths().ScenarioPath("all"), "charts:\n  exclude_producers: []\n")
	writeFile(t, l.Paths().ScenarioPath("no_drone"), "charts:\n  exclude_producers: [Drone]\n")

	r, err := l.Resolve("")
	require.NoError(t, err)
	assert.Equal(t, []string{"Foundation Model"}, r.Plan.ExcludeProducers, "unset keeps the built-in exclusion")

	r, err = l.Resolve("all")
	require.NoError(t, err)
	assert.Empty(t, r.Plan.ExcludeProducers)
	assert.Equal(t, 40, r.Plan.OwnedMax, "other chart fields still come from the default file")

	r, err = l.Resolve("no_drone")
	require.NoError(t, err)
	assert.Equal(t, []string{"Drone"}, r.Plan.ExcludeProducers)
}

func TestResolveRejectsInvalidRaw(t *testing.T) {
	l := NewLoader(t.TempDir())
	writeFile(t, l.Paths().DefaultPath(), "prestige: {divisor: -1}\n")
	_, err := l.Resolve("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "prestige.divisor must be > 0")
}

func TestShippedTuningMatchesBuiltIn(t *testing.T) {
	l := NewLoader(filepath.Join("..", "..", "configs"))
	r, err := l.Resolve("")
	require.NoError(t, err)

	def := balance.DefaultTuning()
	assert.Equal(t, def.CostGrowth, r.Tuning.CostGrowth)
	assert.Equal(t, def.Producers, r.Tuning.Producers)
	assert.Equal(t, def.Economy, r.Tuning.Economy)
	assert.Equal(t, def.Prestige, r.Tuning.Prestige)
	assert.Equal(t, def.Benchmarks, r.Tuning.Benchmarks)
	assert.Equal(t, def.Distillation.Costs(), r.Tuning.Distillation.Costs())
	assert.Equal(t, def.Distillation.Categories(), r.Tuning.Distillation.Categories())
	if diff := cmp.Diff(series.DefaultPlan(), r.Plan); diff != "" {
		t.Fatalf("plan mismatch (-want +got):\n%s", diff)
	}

	names, err := l.Scenarios()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"hard", "infinite_guac"}, names)
	for _, name := range names {
		_, err := l.Resolve(name)
		assert.NoError(t, err, name)
	}
}
