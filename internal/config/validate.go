package config

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// ValidateRaw checks semantic constraints of a RawTuning.
func ValidateRaw(cfg RawTuning) error {
	var errs []string
	bad := func(v float64) bool { return math.IsNaN(v) || math.IsInf(v, 0) }
	nonNeg := func(name string, v *float64) {
		if v != nil && (bad(*v) || *v < 0) {
			errs = append(errs, fmt.Sprintf("%s must be >= 0", name))
		}
	}
	positive := func(name string, v *float64) {
		if v != nil && (bad(*v) || *v <= 0) {
			errs = append(errs, fmt.Sprintf("%s must be > 0", name))
		}
	}

	// cost_growth
	if cfg.CostGrowth != nil && (bad(*cfg.CostGrowth) || *cfg.CostGrowth <= 1) {
		errs = append(errs, "cost_growth must be > 1")
	}

	// producers
	seen := map[string]bool{}
	for i, p := range cfg.Producers {
		if p.Name == "" {
			errs = append(errs, fmt.Sprintf("producers[%d].name is required", i))
			continue
		}
		if seen[p.Name] {
			errs = append(errs, fmt.Sprintf("producers[%d]: duplicate name %q", i, p.Name))
		}
		seen[p.Name] = true
		if p.BaseCost == nil {
			errs = append(errs, fmt.Sprintf("producers[%d].base_cost is required", i))
		}
		if p.BaseRate == nil {
			errs = append(errs, fmt.Sprintf("producers[%d].base_rate is required", i))
		}
		positive(fmt.Sprintf("producers[%d].base_cost", i), p.BaseCost)
		nonNeg(fmt.Sprintf("producers[%d].base_rate", i), p.BaseRate)
		nonNeg(fmt.Sprintf("producers[%d].click_bonus", i), p.ClickBonus)
	}

	// economy
	if e := cfg.Economy; e != nil {
		nonNeg("economy.base_consumption", e.BaseConsumption)
		nonNeg("economy.consume_exponent", e.ConsumeExponent)
		nonNeg("economy.consume_exponent_floor", e.ConsumeExponentFloor)
		nonNeg("economy.base_production", e.BaseProduction)
		nonNeg("economy.produce_exponent", e.ProduceExponent)
		nonNeg("economy.multiplier_per_sqrt", e.MultiplierPerSqrt)
		if e.ConsumeExponent != nil && e.ConsumeExponentFloor != nil && *e.ConsumeExponentFloor > *e.ConsumeExponent {
			errs = append(errs, "economy.consume_exponent_floor must be <= consume_exponent")
		}
	}

	// prestige
	if p := cfg.Prestige; p != nil {
		nonNeg("prestige.unlock_threshold", p.UnlockThreshold)
		positive("prestige.divisor", p.Divisor)
		nonNeg("prestige.wisdom_mult_per_point", p.WisdomMultPerPoint)
	}

	// distillation
	if d := cfg.Distillation; d != nil {
		cats := map[string]bool{}
		for i, c := range d.Categories {
			if c.Name == "" {
				errs = append(errs, fmt.Sprintf("distillation.categories[%d].name is required", i))
			}
			switch c.Kind {
			case "", "bonus", "discount":
			default:
				errs = append(errs, fmt.Sprintf("distillation.categories[%d].kind must be one of: bonus, discount", i))
			}
			cats[c.Name] = true
		}
		for i, v := range d.Versions {
			if v.Cost == nil {
				errs = append(errs, fmt.Sprintf("distillation.versions[%d].cost is required", i))
			}
			nonNeg(fmt.Sprintf("distillation.versions[%d].cost", i), v.Cost)
			names := make([]string, 0, len(v.Bonuses))
			for name := range v.Bonuses {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				val := v.Bonuses[name]
				if bad(val) || val <= 0 {
					errs = append(errs, fmt.Sprintf("distillation.versions[%d].bonuses[%q] must be > 0", i, name))
				}
				if len(d.Categories) > 0 && !cats[name] {
					errs = append(errs, fmt.Sprintf("distillation.versions[%d].bonuses[%q] names no category", i, name))
				}
			}
		}
		if len(d.Categories) > 0 && len(d.Versions) == 0 {
			errs = append(errs, "distillation.versions is required when categories are set")
		}
	}

	// benchmarks
	seenB := map[string]bool{}
	for i, b := range cfg.Benchmarks {
		if b.Name == "" {
			errs = append(errs, fmt.Sprintf("benchmarks[%d].name is required", i))
		} else if seenB[b.Name] {
			errs = append(errs, fmt.Sprintf("benchmarks[%d]: duplicate name %q", i, b.Name))
		}
		seenB[b.Name] = true
		if b.Bonus == nil {
			errs = append(errs, fmt.Sprintf("benchmarks[%d].bonus is required", i))
		}
		nonNeg(fmt.Sprintf("benchmarks[%d].bonus", i), b.Bonus)
	}

	// charts
	if c := cfg.Charts; c != nil {
		for _, f := range []struct {
			name string
			v    *int
		}{
			{"charts.owned_max", c.OwnedMax},
			{"charts.labs_min", c.LabsMin},
			{"charts.labs_max", c.LabsMax},
			{"charts.guac_max", c.GuacMax},
			{"charts.wisdom_points_max", c.WisdomPointsMax},
			{"charts.stacking_guac_max", c.StackingGuacMax},
		} {
			if f.v != nil && *f.v < 0 {
				errs = append(errs, fmt.Sprintf("%s must be >= 0", f.name))
			}
		}
		if c.LabsMin != nil && c.LabsMax != nil && *c.LabsMin > *c.LabsMax {
			errs = append(errs, "charts.labs_min must be <= labs_max")
		}
		for i, s := range c.ConsumeExponents {
			if s.Label == "" {
				errs = append(errs, fmt.Sprintf("charts.consume_exponents[%d].label is required", i))
			}
			if s.Exponent == nil {
				errs = append(errs, fmt.Sprintf("charts.consume_exponents[%d].exponent is required", i))
			}
		}
		if w := c.WisdomEarned; w != nil {
			if w.Count != nil && *w.Count < 2 {
				errs = append(errs, "charts.wisdom_earned.count must be >= 2")
			}
			if w.StartExp != nil && w.StopExp != nil && *w.StopExp <= *w.StartExp {
				errs = append(errs, "charts.wisdom_earned.stop_exp must be > start_exp")
			}
		}
		nonNeg("charts.wisdom_boost", c.WisdomBoost)
		for i, w := range c.StackingWisdom {
			if w < 0 {
				errs = append(errs, fmt.Sprintf("charts.stacking_wisdom[%d] must be >= 0", i))
			}
		}
		if c.ExcludeProducers != nil {
			for i, name := range *c.ExcludeProducers {
				if name == "" {
					errs = append(errs, fmt.Sprintf("charts.exclude_producers[%d] must not be empty", i))
				}
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
