package balance

// BenchmarkGlobalMultiplier folds the first unlocked benchmarks into one
// global factor. Bonuses add within the benchmark category; the result is a
// single factor for CombinedMultiplier.
// Formula: 1 + sum(bonus[0:unlocked])
func (m *Model) BenchmarkGlobalMultiplier(benchmarks []Benchmark, unlocked int) (float64, error) {
	if unlocked < 0 || unlocked > len(benchmarks) {
		return 0, domainErr("benchmarkGlobalMultiplier", "unlockedCount %d out of range [0,%d]", unlocked, len(benchmarks))
	}
	sum := 0.0
	for _, b := range benchmarks[:unlocked] {
		sum += b.Bonus
	}
	return 1 + sum, nil
}

// CombinedMultiplier multiplies independent category factors (guac, wisdom,
// benchmark global, distillation) into one production multiplier. The empty
// product is 1.
func CombinedMultiplier(factors ...float64) float64 {
	out := 1.0
	for _, f := range factors {
		out *= f
	}
	return out
}
