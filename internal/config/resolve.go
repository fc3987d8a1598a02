package config

import (
	"fmt"

	"github.com/xtding233/idle-balance/internal/balance"
	"github.com/xtding233/idle-balance/internal/series"
)

// Resolved is a merged tuning file turned into model and chart inputs.
type Resolved struct {
	Raw    RawTuning
	Tuning balance.Tuning
	Plan   series.Plan
}

// Resolver loads a scenario and resolves it into model inputs.
type Resolver interface {
	Resolve(scenario string) (Resolved, error)
}

// Resolve loads default → scenario, validates the merged file and fills
// anything it leaves out from the built-in tuning and chart plan.
func (l *Loader) Resolve(scenario string) (Resolved, error) {
	raw, err := l.LoadMerged(scenario)
	if err != nil {
		return Resolved{}, err
	}
	if err := ValidateRaw(raw); err != nil {
		return Resolved{}, err
	}
	t, err := ToTuning(raw)
	if err != nil {
		return Resolved{}, err
	}
	return Resolved{Raw: raw, Tuning: t, Plan: ToPlan(raw.Charts)}, nil
}

// ToTuning converts a validated RawTuning into a balance.Tuning. Sections the
// file omits keep balance.DefaultTuning values; listed producers and
// benchmarks replace the defaults.
func ToTuning(raw RawTuning) (balance.Tuning, error) {
	t := balance.DefaultTuning()
	setF(&t.CostGrowth, raw.CostGrowth)

	if len(raw.Producers) > 0 {
		t.Producers = make([]balance.ProducerTier, 0, len(raw.Producers))
		for _, p := range raw.Producers {
			tier := balance.ProducerTier{Name: p.Name}
			setF(&tier.BaseCost, p.BaseCost)
			setF(&tier.BaseRate, p.BaseRate)
			setF(&tier.ClickBonus, p.ClickBonus)
			t.Producers = append(t.Producers, tier)
		}
	}

	if e := raw.Economy; e != nil {
		setF(&t.Economy.BaseConsumption, e.BaseConsumption)
		setF(&t.Economy.ConsumeExponent, e.ConsumeExponent)
		setF(&t.Economy.ConsumeExponentFloor, e.ConsumeExponentFloor)
		setF(&t.Economy.BaseProduction, e.BaseProduction)
		setF(&t.Economy.ProduceExponent, e.ProduceExponent)
		setF(&t.Economy.MultiplierPerSqrt, e.MultiplierPerSqrt)
	}

	if p := raw.Prestige; p != nil {
		setF(&t.Prestige.UnlockThreshold, p.UnlockThreshold)
		setF(&t.Prestige.Divisor, p.Divisor)
		setF(&t.Prestige.WisdomMultPerPoint, p.WisdomMultPerPoint)
	}

	if d := raw.Distillation; d != nil && len(d.Versions) > 0 {
		cats := balance.DefaultCategories()
		if len(d.Categories) > 0 {
			cats = make([]balance.Category, len(d.Categories))
			for i, c := range d.Categories {
				cats[i] = balance.Category{Name: c.Name, Kind: balance.CategoryKind(c.Kind)}
			}
		}
		versions := make([]balance.VersionSpec, len(d.Versions))
		for i, v := range d.Versions {
			setF(&versions[i].Cost, v.Cost)
			versions[i].Bonuses = v.Bonuses
		}
		ladder, err := balance.NewDistillationLadder(cats, versions)
		if err != nil {
			return balance.Tuning{}, fmt.Errorf("resolve distillation: %w", err)
		}
		t.Distillation = ladder
	}

	if len(raw.Benchmarks) > 0 {
		t.Benchmarks = make([]balance.Benchmark, 0, len(raw.Benchmarks))
		for _, b := range raw.Benchmarks {
			bm := balance.Benchmark{Name: b.Name}
			setF(&bm.Bonus, b.Bonus)
			t.Benchmarks = append(t.Benchmarks, bm)
		}
	}

	return t, nil
}

// ToPlan overlays chart overrides on series.DefaultPlan.
func ToPlan(c *RawCharts) series.Plan {
	p := series.DefaultPlan()
	if c == nil {
		return p
	}
	setI(&p.OwnedMax, c.OwnedMax)
	setI(&p.LabsMin, c.LabsMin)
	setI(&p.LabsMax, c.LabsMax)
	setI(&p.GuacMax, c.GuacMax)
	setI(&p.WisdomPointsMax, c.WisdomPointsMax)
	setI(&p.StackingGuacMax, c.StackingGuacMax)
	setF(&p.WisdomBoost, c.WisdomBoost)
	if len(c.ConsumeExponents) > 0 {
		p.ConsumeExponents = make([]series.ExponentScenario, len(c.ConsumeExponents))
		for i, s := range c.ConsumeExponents {
			p.ConsumeExponents[i].Label = s.Label
			setF(&p.ConsumeExponents[i].Exponent, s.Exponent)
		}
	}
	if w := c.WisdomEarned; w != nil {
		setF(&p.WisdomEarned.StartExp, w.StartExp)
		setF(&p.WisdomEarned.StopExp, w.StopExp)
		setI(&p.WisdomEarned.Count, w.Count)
	}
	if len(c.StackingWisdom) > 0 {
		p.StackingWisdom = append([]int64(nil), c.StackingWisdom...)
	}
	if c.ExcludeProducers != nil {
		p.ExcludeProducers = append([]string{}, *c.ExcludeProducers...)
	}
	return p
}

func setF(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

func setI(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}
