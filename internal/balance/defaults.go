package balance

// DefaultTuning returns the shipped balance numbers. It panics only if the
// built-in ladder is malformed, which tests guard against.
func DefaultTuning() Tuning {
	ladder, err := NewDistillationLadder(DefaultCategories(), []VersionSpec{
		{Cost: 100, Bonuses: map[string]float64{"APS Mult": 1.5, "Wisdom Earn": 1.2}},
		{Cost: 250, Bonuses: map[string]float64{"Guac Prod": 1.3}},
		{Cost: 500, Bonuses: map[string]float64{"Cost Mult": 0.9}},
		{Cost: 1000},
		{Cost: 2000, Bonuses: map[string]float64{"All Prod": 2.0}},
	})
	if err != nil {
		panic(err)
	}
	return Tuning{
		CostGrowth: DefaultCostGrowth,
		Producers: []ProducerTier{
			{Name: "Sapling", BaseCost: 10, BaseRate: 0.2},
			{Name: "Orchard Row", BaseCost: 100, BaseRate: 1},
			{Name: "Influencer", BaseCost: 5, BaseRate: 0, ClickBonus: 1},
			{Name: "Drone", BaseCost: 1100, BaseRate: 8},
			{Name: "Guac Lab", BaseCost: 12000, BaseRate: 50},
			{Name: "Guac Refinery", BaseCost: 50000, BaseRate: 0},
			{Name: "Exchange", BaseCost: 130000, BaseRate: 260},
			{Name: "Attention Head", BaseCost: 800000, BaseRate: 900},
			{Name: "Pit Miner", BaseCost: 1.4e6, BaseRate: 1400},
			{Name: "Neural Pit", BaseCost: 2e7, BaseRate: 7800},
			{Name: "Transformer", BaseCost: 1.5e8, BaseRate: 28000},
			{Name: "Orchard Cloud", BaseCost: 3.3e8, BaseRate: 44000},
			{Name: "Foundation Model", BaseCost: 5e10, BaseRate: 200000},
		},
		Economy: EconomyConfig{
			BaseConsumption:      50,
			ConsumeExponent:      0.85,
			ConsumeExponentFloor: 0.5,
			BaseProduction:       1,
			ProduceExponent:      1.0,
			MultiplierPerSqrt:    0.10,
		},
		Prestige: PrestigeConfig{
			UnlockThreshold:    1e6,
			Divisor:            1000,
			WisdomMultPerPoint: 0.10,
		},
		Distillation: ladder,
		Benchmarks: []Benchmark{
			{Name: "Hello World", Bonus: 0.02},
			{Name: "Feature Extraction", Bonus: 0.03},
			{Name: "Gradient Descent", Bonus: 0.05},
			{Name: "Fine-Tuning", Bonus: 0.03},
			{Name: "AGI Achieved", Bonus: 0.05},
			{Name: "Superintelligence", Bonus: 0.10},
		},
	}
}

// DefaultCategories lists the distillation categories of the shipped ladder.
func DefaultCategories() []Category {
	return []Category{
		{Name: "APS Mult", Kind: KindBonus},
		{Name: "Wisdom Earn", Kind: KindBonus},
		{Name: "Guac Prod", Kind: KindBonus},
		{Name: "Cost Mult", Kind: KindDiscount},
		{Name: "All Prod", Kind: KindBonus},
	}
}
