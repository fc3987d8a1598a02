package series

import (
	"fmt"
	"strings"
)

// ExponentScenario is one consume-exponent curve on the guac chart.
type ExponentScenario struct {
	Label    string  `yaml:"label" json:"label"`
	Exponent float64 `yaml:"exponent" json:"exponent"`
}

// LogRange is a log-spaced domain, 10^StartExp .. 10^StopExp.
type LogRange struct {
	StartExp float64 `yaml:"startExp" json:"startExp"`
	StopExp  float64 `yaml:"stopExp" json:"stopExp"`
	Count    int     `yaml:"count" json:"count"`
}

// Plan holds the domain parameters of every chart. Upper bounds are
// exclusive, matching the half-open linear grids.
type Plan struct {
	OwnedMax         int                `yaml:"ownedMax" json:"ownedMax"`
	LabsMin          int                `yaml:"labsMin" json:"labsMin"`
	LabsMax          int                `yaml:"labsMax" json:"labsMax"`
	GuacMax          int                `yaml:"guacMax" json:"guacMax"`
	ConsumeExponents []ExponentScenario `yaml:"consumeExponents" json:"consumeExponents"`
	WisdomEarned     LogRange           `yaml:"wisdomEarned" json:"wisdomEarned"`
	WisdomPointsMax  int                `yaml:"wisdomPointsMax" json:"wisdomPointsMax"`
	WisdomBoost      float64            `yaml:"wisdomBoost" json:"wisdomBoost"`
	StackingGuacMax  int                `yaml:"stackingGuacMax" json:"stackingGuacMax"`
	StackingWisdom   []int64            `yaml:"stackingWisdom" json:"stackingWisdom"`
	// ExcludeProducers names tiers left off the producer charts.
	ExcludeProducers []string           `yaml:"excludeProducers" json:"excludeProducers"`
}

// DefaultPlan mirrors the balance review charts.
func DefaultPlan() Plan {
	return Plan{
		OwnedMax: 50,
		LabsMin:  1,
		LabsMax:  101,
		GuacMax:  2001,
		ConsumeExponents: []ExponentScenario{
			{Label: "Base (0.85)", Exponent: 0.85},
			{Label: "With upgrades (0.75)", Exponent: 0.75},
			{Label: "Heavy invest (0.60)", Exponent: 0.60},
			{Label: "Floor (0.50)", Exponent: 0.50},
		},
		WisdomEarned:    LogRange{StartExp: 6, StopExp: 11, Count: 500},
		WisdomPointsMax: 101,
		WisdomBoost:     0.05,
		StackingGuacMax: 501,
		StackingWisdom:  []int64{0, 5, 10, 20, 50},

		ExcludeProducers: []string{"Foundation Model"},
	}
}

// Validate checks plan-level structure. Domain bounds themselves are checked
// by the sampler when each series is built.
func (p Plan) Validate() error {
	var errs []string
	labels := map[string]bool{}
	for i, s := range p.ConsumeExponents {
		if s.Label == "" {
			errs = append(errs, fmt.Sprintf("consumeExponents[%d].label is required", i))
		} else if labels[s.Label] {
			errs = append(errs, fmt.Sprintf("duplicate consume exponent label %q", s.Label))
		}
		labels[s.Label] = true
	}
	for i, w := range p.StackingWisdom {
		if w < 0 {
			errs = append(errs, fmt.Sprintf("stackingWisdom[%d] must be >= 0, got %d", i, w))
		}
	}
	for i, name := range p.ExcludeProducers {
		if name == "" {
			errs = append(errs, fmt.Sprintf("excludeProducers[%d] must not be empty", i))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("plan validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
