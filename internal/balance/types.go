package balance

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// DefaultCostGrowth is the geometric cost growth shared by every producer tier.
const DefaultCostGrowth = 1.15

// ProducerTier is a purchasable unit type. BaseRate 0 marks tiers with no
// direct production (click bonus or utility tiers).
type ProducerTier struct {
	Name       string  `json:"name" yaml:"name"`
	BaseCost   float64 `json:"baseCost" yaml:"baseCost"`
	BaseRate   float64 `json:"baseRate" yaml:"baseRate"`
	ClickBonus float64 `json:"clickBonus,omitempty" yaml:"clickBonus,omitempty"`
}

// Produces reports whether the tier yields avocados on its own.
func (t ProducerTier) Produces() bool { return t.BaseRate > 0 }

// EconomyConfig describes the guac economy. Upgrades lower the consume
// exponent toward ConsumeExponentFloor, never below it.
type EconomyConfig struct {
	BaseConsumption      float64 `json:"baseConsumption" yaml:"baseConsumption"`
	ConsumeExponent      float64 `json:"consumeExponent" yaml:"consumeExponent"`
	ConsumeExponentFloor float64 `json:"consumeExponentFloor" yaml:"consumeExponentFloor"`
	BaseProduction       float64 `json:"baseProduction" yaml:"baseProduction"`
	ProduceExponent      float64 `json:"produceExponent" yaml:"produceExponent"`
	MultiplierPerSqrt    float64 `json:"multiplierPerSqrt" yaml:"multiplierPerSqrt"`
}

// PrestigeConfig controls the run output → wisdom conversion.
type PrestigeConfig struct {
	UnlockThreshold    float64 `json:"unlockThreshold" yaml:"unlockThreshold"`
	Divisor            float64 `json:"divisor" yaml:"divisor"`
	WisdomMultPerPoint float64 `json:"wisdomMultPerPoint" yaml:"wisdomMultPerPoint"`
}

// Benchmark is a one-time unlock adding Bonus to the benchmark global factor.
type Benchmark struct {
	Name  string  `json:"name" yaml:"name"`
	Bonus float64 `json:"bonus" yaml:"bonus"`
}

// CategoryKind tells which direction a distillation category may move.
type CategoryKind string

const (
	// KindBonus categories only grow with version.
	KindBonus CategoryKind = "bonus"
	// KindDiscount categories only shrink with version (e.g. "Cost Mult").
	KindDiscount CategoryKind = "discount"
)

// Category is one column of the distillation bonus table.
type Category struct {
	Name string       `json:"name" yaml:"name"`
	Kind CategoryKind `json:"kind" yaml:"kind"`
}

// VersionSpec is the load-time description of one distillation version.
// Bonuses are cumulative values; a category left out keeps the value it had
// at the previous version.
type VersionSpec struct {
	Cost    float64
	Bonuses map[string]float64
}

// NeutralBonus is every category's value at version 0.
const NeutralBonus = 1.0

// DistillationLadder holds versions 1..N with costs and the cumulative bonus
// table. Row 0 of the table is the neutral baseline.
type DistillationLadder struct {
	categories []Category
	index      map[string]int
	costs      []float64   // costs[v-1]
	table      [][]float64 // table[v][category]
}

// NewDistillationLadder validates versions against categories and fills
// omitted values forward from the previous version.
func NewDistillationLadder(categories []Category, versions []VersionSpec) (*DistillationLadder, error) {
	var errs []string
	l := &DistillationLadder{
		categories: append([]Category(nil), categories...),
		index:      make(map[string]int, len(categories)),
		costs:      make([]float64, len(versions)),
		table:      make([][]float64, len(versions)+1),
	}
	for i, c := range l.categories {
		if c.Name == "" {
			errs = append(errs, fmt.Sprintf("categories[%d].name is required", i))
			continue
		}
		if _, dup := l.index[c.Name]; dup {
			errs = append(errs, fmt.Sprintf("duplicate category %q", c.Name))
			continue
		}
		switch c.Kind {
		case "":
			l.categories[i].Kind = KindBonus
		case KindBonus, KindDiscount:
		default:
			errs = append(errs, fmt.Sprintf("category %q kind must be bonus or discount, got %q", c.Name, c.Kind))
		}
		l.index[c.Name] = i
	}

	base := make([]float64, len(l.categories))
	for i := range base {
		base[i] = NeutralBonus
	}
	l.table[0] = base

	for v, spec := range versions {
		version := v + 1
		if math.IsNaN(spec.Cost) || math.IsInf(spec.Cost, 0) || spec.Cost < 0 {
			errs = append(errs, fmt.Sprintf("version %d cost must be finite and >= 0, got %v", version, spec.Cost))
		}
		l.costs[v] = spec.Cost

		row := append([]float64(nil), l.table[v]...)
		names := make([]string, 0, len(spec.Bonuses))
		for name := range spec.Bonuses {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			val := spec.Bonuses[name]
			ci, ok := l.index[name]
			if !ok {
				errs = append(errs, fmt.Sprintf("version %d references unknown category %q", version, name))
				continue
			}
			if math.IsNaN(val) || math.IsInf(val, 0) || val <= 0 {
				errs = append(errs, fmt.Sprintf("version %d %q must be finite and > 0, got %v", version, name, val))
				continue
			}
			row[ci] = val
		}
		for ci, c := range l.categories {
			prev := l.table[v][ci]
			switch {
			case c.Kind == KindDiscount && row[ci] > prev:
				errs = append(errs, fmt.Sprintf("version %d %q is a discount and may not rise (%v -> %v)", version, c.Name, prev, row[ci]))
			case c.Kind != KindDiscount && row[ci] < prev:
				errs = append(errs, fmt.Sprintf("version %d %q is cumulative and may not fall (%v -> %v)", version, c.Name, prev, row[ci]))
			}
		}
		l.table[version] = row
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid distillation ladder: %s", strings.Join(errs, "; "))
	}
	return l, nil
}

// Len is the number of purchasable versions N.
func (l *DistillationLadder) Len() int {
	if l == nil {
		return 0
	}
	return len(l.costs)
}

// Categories returns the ladder's categories in declaration order.
func (l *DistillationLadder) Categories() []Category {
	if l == nil {
		return nil
	}
	return append([]Category(nil), l.categories...)
}

// CategoryNames returns category names in declaration order.
func (l *DistillationLadder) CategoryNames() []string {
	if l == nil {
		return nil
	}
	out := make([]string, len(l.categories))
	for i, c := range l.categories {
		out[i] = c.Name
	}
	return out
}

// Costs returns a copy of the version costs, index 0 holding version 1.
func (l *DistillationLadder) Costs() []float64 {
	if l == nil {
		return nil
	}
	return append([]float64(nil), l.costs...)
}

// costsNonDecreasing reports whether costs follow the usual ascending convention.
func (l *DistillationLadder) costsNonDecreasing() bool {
	for i := 1; i < len(l.costs); i++ {
		if l.costs[i] < l.costs[i-1] {
			return false
		}
	}
	return true
}

// Tuning is the full, read-only balance configuration.
type Tuning struct {
	CostGrowth   float64
	Producers    []ProducerTier
	Economy      EconomyConfig
	Prestige     PrestigeConfig
	Distillation *DistillationLadder
	Benchmarks   []Benchmark
}

// Validate checks every invariant and reports all violations at once.
func (t Tuning) Validate() error {
	var errs []string
	bad := func(v float64) bool { return math.IsNaN(v) || math.IsInf(v, 0) }

	if bad(t.CostGrowth) || t.CostGrowth <= 1 {
		errs = append(errs, fmt.Sprintf("costGrowth must be finite and > 1, got %v", t.CostGrowth))
	}

	seen := make(map[string]bool, len(t.Producers))
	for i, p := range t.Producers {
		if p.Name == "" {
			errs = append(errs, fmt.Sprintf("producers[%d].name is required", i))
		} else if seen[p.Name] {
			errs = append(errs, fmt.Sprintf("duplicate producer %q", p.Name))
		}
		seen[p.Name] = true
		if bad(p.BaseCost) || p.BaseCost <= 0 {
			errs = append(errs, fmt.Sprintf("producer %q baseCost must be finite and > 0, got %v", p.Name, p.BaseCost))
		}
		if bad(p.BaseRate) || p.BaseRate < 0 {
			errs = append(errs, fmt.Sprintf("producer %q baseRate must be finite and >= 0, got %v", p.Name, p.BaseRate))
		}
		if bad(p.ClickBonus) || p.ClickBonus < 0 {
			errs = append(errs, fmt.Sprintf("producer %q clickBonus must be finite and >= 0, got %v", p.Name, p.ClickBonus))
		}
	}

	e := t.Economy
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"economy.baseConsumption", e.BaseConsumption},
		{"economy.consumeExponent", e.ConsumeExponent},
		{"economy.consumeExponentFloor", e.ConsumeExponentFloor},
		{"economy.baseProduction", e.BaseProduction},
		{"economy.produceExponent", e.ProduceExponent},
		{"economy.multiplierPerSqrt", e.MultiplierPerSqrt},
	} {
		if bad(f.v) || f.v < 0 {
			errs = append(errs, fmt.Sprintf("%s must be finite and >= 0, got %v", f.name, f.v))
		}
	}
	if e.ConsumeExponentFloor > e.ConsumeExponent {
		errs = append(errs, fmt.Sprintf("economy.consumeExponentFloor (%v) must be <= consumeExponent (%v)",
			e.ConsumeExponentFloor, e.ConsumeExponent))
	}

	p := t.Prestige
	if bad(p.Divisor) || p.Divisor <= 0 {
		errs = append(errs, fmt.Sprintf("prestige.divisor must be finite and > 0, got %v", p.Divisor))
	}
	if bad(p.UnlockThreshold) || p.UnlockThreshold < 0 {
		errs = append(errs, fmt.Sprintf("prestige.unlockThreshold must be finite and >= 0, got %v", p.UnlockThreshold))
	}
	if bad(p.WisdomMultPerPoint) || p.WisdomMultPerPoint < 0 {
		errs = append(errs, fmt.Sprintf("prestige.wisdomMultPerPoint must be finite and >= 0, got %v", p.WisdomMultPerPoint))
	}

	if t.Distillation == nil {
		errs = append(errs, "distillation ladder is required")
	}

	seenB := make(map[string]bool, len(t.Benchmarks))
	for i, b := range t.Benchmarks {
		if b.Name == "" {
			errs = append(errs, fmt.Sprintf("benchmarks[%d].name is required", i))
		} else if seenB[b.Name] {
			errs = append(errs, fmt.Sprintf("duplicate benchmark %q", b.Name))
		}
		seenB[b.Name] = true
		if bad(b.Bonus) || b.Bonus < 0 {
			errs = append(errs, fmt.Sprintf("benchmark %q bonus must be finite and >= 0, got %v", b.Name, b.Bonus))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("tuning validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
