package config

// RawTuning is a tuning file as written on disk. Pointer fields are optional
// so an overlay only has to name what it changes.
type RawTuning struct {
	Version      string           `yaml:"version"`
	Notes        string           `yaml:"notes,omitempty"`
	CostGrowth   *float64         `yaml:"cost_growth,omitempty"`
	Producers    []RawProducer    `yaml:"producers,omitempty"`
	Economy      *RawEconomy      `yaml:"economy,omitempty"`
	Prestige     *RawPrestige     `yaml:"prestige,omitempty"`
	Distillation *RawDistillation `yaml:"distillation,omitempty"`
	Benchmarks   []RawBenchmark   `yaml:"benchmarks,omitempty"`
	Charts       *RawCharts       `yaml:"charts,omitempty"`
}

// RawProducer overlays by name: a scenario entry changes only the fields it
// sets on the producer of the same name, or appends a new producer.
type RawProducer struct {
	Name       string   `yaml:"name"`
	BaseCost   *float64 `yaml:"base_cost,omitempty"`
	BaseRate   *float64 `yaml:"base_rate,omitempty"`
	ClickBonus *float64 `yaml:"click_bonus,omitempty"`
}

type RawEconomy struct {
	BaseConsumption      *float64 `yaml:"base_consumption,omitempty"`
	ConsumeExponent      *float64 `yaml:"consume_exponent,omitempty"`
	ConsumeExponentFloor *float64 `yaml:"consume_exponent_floor,omitempty"`
	BaseProduction       *float64 `yaml:"base_production,omitempty"`
	ProduceExponent      *float64 `yaml:"produce_exponent,omitempty"`
	MultiplierPerSqrt    *float64 `yaml:"multiplier_per_sqrt,omitempty"`
}

type RawPrestige struct {
	UnlockThreshold    *float64 `yaml:"unlock_threshold,omitempty"`
	Divisor            *float64 `yaml:"divisor,omitempty"`
	WisdomMultPerPoint *float64 `yaml:"wisdom_mult_per_point,omitempty"`
}

// RawDistillation lists versions 1..N in order. A version's bonuses are
// cumulative values; categories it omits carry forward.
type RawDistillation struct {
	Categories []RawCategory `yaml:"categories,omitempty"`
	Versions   []RawVersion  `yaml:"versions,omitempty"`
}

type RawCategory struct {
	Name string `yaml:"name"`
	Kind string `yaml:"kind,omitempty"` // "bonus" (default) | "discount"
}

type RawVersion struct {
	Cost    *float64           `yaml:"cost"`
	Bonuses map[string]float64 `yaml:"bonuses,omitempty"`
}

type RawBenchmark struct {
	Name  string   `yaml:"name"`
	Bonus *float64 `yaml:"bonus"`
}

type RawExponentScenario struct {
	Label    string   `yaml:"label"`
	Exponent *float64 `yaml:"exponent"`
}

type RawLogRange struct {
	StartExp *float64 `yaml:"start_exp,omitempty"`
	StopExp  *float64 `yaml:"stop_exp,omitempty"`
	Count    *int     `yaml:"count,omitempty"`
}

// RawCharts overrides chart domains. Lists replace the defaults wholesale.
type RawCharts struct {
	OwnedMax         *int                  `yaml:"owned_max,omitempty"`
	LabsMin          *int                  `yaml:"labs_min,omitempty"`
	LabsMax          *int                  `yaml:"labs_max,omitempty"`
	GuacMax          *int                  `yaml:"guac_max,omitempty"`
	ConsumeExponents []RawExponentScenario `yaml:"consume_exponents,omitempty"`
	WisdomEarned     *RawLogRange          `yaml:"wisdom_earned,omitempty"`
	WisdomPointsMax  *int                  `yaml:"wisdom_points_max,omitempty"`
	WisdomBoost      *float64              `yaml:"wisdom_boost,omitempty"`
	StackingGuacMax  *int                  `yaml:"stacking_guac_max,omitempty"`
	StackingWisdom   []int64               `yaml:"stacking_wisdom,omitempty"`
	// ExcludeProducers is a pointer so an explicit empty list clears the
	// default exclusions.
	ExcludeProducers *[]string             `yaml:"exclude_producers,omitempty"`
}
