package series

import (
	"fmt"
	"slices"

	"github.com/xtding233/idle-balance/internal/balance"
	"github.com/xtding233/idle-balance/internal/sampler"
)

// ChartDef names a chart and lists its series for a given model and plan.
type ChartDef struct {
	ID    string
	Title string
	Specs func(m *balance.Model, p Plan) []Spec
}

// Chart IDs in catalog order.
const (
	ChartProducerCosts       = "producer_costs"
	ChartProducerEfficiency  = "producer_efficiency"
	ChartGuacSystem          = "guac_system"
	ChartPrestige            = "prestige"
	ChartMultiplierStacking  = "multiplier_stacking"
	ChartDistillationBonuses = "distillation_bonuses"
)

// Catalog returns every chart definition in output order.
func Catalog() []ChartDef {
	return []ChartDef{
		{ID: ChartProducerCosts, Title: "Producer Cost Scaling", Specs: producerCostSpecs},
		{ID: ChartProducerEfficiency, Title: "Producer Tier Comparison", Specs: producerEfficiencySpecs},
		{ID: ChartGuacSystem, Title: "Guac System", Specs: guacSpecs},
		{ID: ChartPrestige, Title: "Prestige & Distillation Costs", Specs: prestigeSpecs},
		{ID: ChartMultiplierStacking, Title: "Multiplier Stacking", Specs: stackingSpecs},
		{ID: ChartDistillationBonuses, Title: "Cumulative Distillation Bonuses by Model Version", Specs: distillationSpecs},
	}
}

// LookupChart finds a chart definition by ID.
func LookupChart(id string) (ChartDef, error) {
	ids := make([]string, 0, 6)
	for _, d := range Catalog() {
		if d.ID == id {
			return d, nil
		}
		ids = append(ids, d.ID)
	}
	if s := balance.Suggest(id, ids); s != "" {
		return ChartDef{}, fmt.Errorf("%w: chart %q (did you mean %q?)", ErrUnknownChart, id, s)
	}
	return ChartDef{}, fmt.Errorf("%w: chart %q", ErrUnknownChart, id)
}

// producing lists the tiers with a production rate, minus the plan's
// exclusions.
func producing(m *balance.Model, p Plan) []balance.ProducerTier {
	var out []balance.ProducerTier
	for _, t := range m.Producers() {
		if t.Produces() && !slices.Contains(p.ExcludeProducers, t.Name) {
			out = append(out, t)
		}
	}
	return out
}

func producerCostSpecs(m *balance.Model, p Plan) []Spec {
	var specs []Spec
	for _, tier := range producing(m, p) {
		tier := tier
		specs = append(specs, Spec{
			Name:   tier.Name,
			XLabel: "Units Owned",
			YLabel: "Cost (avocados)",
			YScale: ScaleLog,
			Points: func(m *balance.Model) ([]sampler.Point, error) {
				return sampler.SampleLinear(sampler.IntArg(func(n int) (float64, error) {
					return m.Cost(tier, n)
				}), 0, float64(p.OwnedMax), 1)
			},
		})
	}
	return specs
}

func producerEfficiencySpecs(m *balance.Model, p Plan) []Spec {
	tiers := producing(m, p)
	if len(tiers) == 0 {
		return nil
	}
	names := make([]string, len(tiers))
	for i, t := range tiers {
		names[i] = t.Name
	}
	idx := sampler.Range(0, len(tiers)-1)
	byIndex := func(fn func(t balance.ProducerTier) (float64, error)) sampler.Func {
		return sampler.IntArg(func(i int) (float64, error) {
			if i < 0 || i >= len(tiers) {
				return 0, &balance.DomainError{Op: "producerIndex", Msg: fmt.Sprintf("index %d out of range", i)}
			}
			return fn(tiers[i])
		})
	}
	return []Spec{
		{
			Name:   "Base Production Rate",
			XLabel: "Tier",
			YLabel: "Avocados/sec per unit",
			YScale: ScaleLog,
			Labels: names,
			Points: func(*balance.Model) ([]sampler.Point, error) {
				return sampler.SampleIndexed(byIndex(func(t balance.ProducerTier) (float64, error) {
					return t.BaseRate, nil
				}), idx)
			},
		},
		{
			Name:   "Efficiency: Rate / First-Unit Cost",
			XLabel: "Tier",
			YLabel: "APS per avocado spent",
			YScale: ScaleLog,
			Labels: names,
			Points: func(m *balance.Model) ([]sampler.Point, error) {
				return sampler.SampleIndexed(byIndex(m.Efficiency), idx)
			},
		},
	}
}

func guacSpecs(m *balance.Model, p Plan) []Spec {
	e := m.Economy()
	labs := sampler.LinearDomain(float64(p.LabsMin), float64(p.LabsMax), 1)
	specs := []Spec{
		{
			Name:   "Avo consumed/s",
			XLabel: "Number of Guac Labs",
			YLabel: "Rate per second",
			Points: func(m *balance.Model) ([]sampler.Point, error) {
				return sampler.Sample(func(x float64) (float64, error) {
					return m.Consumption(e, x, e.ConsumeExponent)
				}, labs)
			},
		},
		{
			Name:   "Guac produced/s",
			XLabel: "Number of Guac Labs",
			YLabel: "Rate per second",
			Points: func(m *balance.Model) ([]sampler.Point, error) {
				return sampler.Sample(func(x float64) (float64, error) {
					return m.Production(e, x)
				}, labs)
			},
		},
	}
	for _, sc := range p.ConsumeExponents {
		sc := sc
		specs = append(specs, Spec{
			Name:   "Consumption " + sc.Label,
			XLabel: "Number of Guac Labs",
			YLabel: "Avo consumed/s",
			Points: func(m *balance.Model) ([]sampler.Point, error) {
				return sampler.Sample(func(x float64) (float64, error) {
					return m.Consumption(e, x, sc.Exponent)
				}, labs)
			},
		})
	}
	specs = append(specs, Spec{
		Name:   "Guac Multiplier",
		XLabel: "Guacamole Accumulated",
		YLabel: "Guac Multiplier",
		Points: func(m *balance.Model) ([]sampler.Point, error) {
			return sampler.SampleLinear(func(x float64) (float64, error) {
				return m.ResourceMultiplier(e, x)
			}, 0, float64(p.GuacMax), 1)
		},
	})
	return specs
}

func prestigeSpecs(m *balance.Model, p Plan) []Spec {
	pr := m.Prestige()
	ladder := m.Ladder()
	wisdomMult := func(boost float64) func(m *balance.Model) ([]sampler.Point, error) {
		return func(m *balance.Model) ([]sampler.Point, error) {
			return sampler.SampleLinear(sampler.IntArg(func(n int) (float64, error) {
				return m.WisdomMultiplier(int64(n), pr, boost)
			}), 0, float64(p.WisdomPointsMax), 1)
		}
	}
	versions := make([]string, ladder.Len())
	for i := range versions {
		versions[i] = fmt.Sprintf("v%d.0", i+1)
	}
	specs := []Spec{
		{
			Name:   "Wisdom Earned per Prestige",
			XLabel: "Total Avocados This Run",
			YLabel: "Wisdom Earned",
			XScale: ScaleLog,
			Points: func(m *balance.Model) ([]sampler.Point, error) {
				return sampler.SampleLog(func(x float64) (float64, error) {
					w, err := m.WisdomEarned(x, pr)
					return float64(w), err
				}, p.WisdomEarned.StartExp, p.WisdomEarned.StopExp, p.WisdomEarned.Count)
			},
		},
		{
			Name:   fmt.Sprintf("Wisdom Multiplier (+%g/pt)", pr.WisdomMultPerPoint),
			XLabel: "Wisdom Points",
			YLabel: "Multiplier",
			Points: wisdomMult(0),
		},
		{
			Name:   fmt.Sprintf("Wisdom Multiplier with boost (+%g/pt)", pr.WisdomMultPerPoint+p.WisdomBoost),
			XLabel: "Wisdom Points",
			YLabel: "Multiplier",
			Points: wisdomMult(p.WisdomBoost),
		},
	}
	if ladder.Len() == 0 {
		return specs
	}
	return append(specs, Spec{
		Name:   "Distillation Costs",
		XLabel: "Model Version",
		YLabel: "Wisdom Cost",
		YScale: ScaleLog,
		Labels: versions,
		Points: func(m *balance.Model) ([]sampler.Point, error) {
			return sampler.SampleIndexed(sampler.IntArg(func(v int) (float64, error) {
				return m.DistillationCost(ladder, v)
			}), sampler.Range(1, ladder.Len()))
		},
	})
}

func stackingSpecs(m *balance.Model, p Plan) []Spec {
	e := m.Economy()
	pr := m.Prestige()
	var specs []Spec
	for _, w := range p.StackingWisdom {
		w := w
		specs = append(specs, Spec{
			Name:   fmt.Sprintf("Wisdom=%d", w),
			XLabel: "Guacamole Accumulated",
			YLabel: "Total Multiplier (Guac x Wisdom)",
			Points: func(m *balance.Model) ([]sampler.Point, error) {
				wisdom, err := m.WisdomMultiplier(w, pr, 0)
				if err != nil {
					return nil, err
				}
				return sampler.SampleLinear(func(x float64) (float64, error) {
					guac, err := m.ResourceMultiplier(e, x)
					if err != nil {
						return 0, err
					}
					return balance.CombinedMultiplier(guac, wisdom), nil
				}, 0, float64(p.StackingGuacMax), 1)
			},
		})
	}

	bs := m.Benchmarks()
	if len(bs) == 0 {
		return specs
	}
	names := make([]string, len(bs))
	for i, b := range bs {
		names[i] = b.Name
	}
	specs = append(specs, Spec{
		Name:   "Benchmark Global Bonus (Cumulative)",
		XLabel: "Benchmarks Unlocked",
		YLabel: "Global Multiplier from Benchmarks",
		Labels: names,
		Points: func(m *balance.Model) ([]sampler.Point, error) {
			return sampler.SampleIndexed(sampler.IntArg(func(k int) (float64, error) {
				return m.BenchmarkGlobalMultiplier(bs, k)
			}), sampler.Range(1, len(bs)))
		},
	})
	return specs
}

func distillationSpecs(m *balance.Model, _ Plan) []Spec {
	ladder := m.Ladder()
	labels := make([]string, ladder.Len()+1)
	labels[0] = "v0.0 (base)"
	for v := 1; v <= ladder.Len(); v++ {
		labels[v] = fmt.Sprintf("v%d.0", v)
	}
	return []Spec{{
		Name:   "Cumulative Distillation Bonuses",
		XLabel: "Model Version",
		YLabel: "Multiplier Value",
		Labels: labels,
		Table: func(m *balance.Model) ([]sampler.MultiPoint, error) {
			return sampler.SampleTable(func(x float64) (map[string]float64, error) {
				return m.DistillationBonuses(ladder, int(x))
			}, sampler.IndexDomain(sampler.Range(0, ladder.Len())...))
		},
	}}
}
