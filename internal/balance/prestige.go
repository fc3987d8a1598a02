package balance

import "math"

// WisdomEarned converts a run's total output into wisdom points. The unlock
// threshold is not applied here; see CanPrestige.
// Formula: floor(sqrt(total) / divisor)
func (m *Model) WisdomEarned(total float64, p PrestigeConfig) (int64, error) {
	const op = "wisdomEarned"
	if err := checkNonNegative(op, "totalRunOutput", total); err != nil {
		return 0, err
	}
	if p.Divisor <= 0 || math.IsNaN(p.Divisor) || math.IsInf(p.Divisor, 0) {
		return 0, domainErr(op, "divisor must be finite and > 0, got %v", p.Divisor)
	}
	q := math.Floor(math.Sqrt(total) / p.Divisor)
	if q >= math.MaxInt64 {
		return 0, domainErr(op, "wisdom %g exceeds int64", q)
	}
	return int64(q), nil
}

// CanPrestige reports whether a run has produced enough to prestige.
func (m *Model) CanPrestige(total float64, p PrestigeConfig) bool {
	return total >= p.UnlockThreshold
}

// WisdomMultiplier is the production multiplier from banked wisdom. boost is
// the extra per-point effectiveness from upgrades, 0 for none.
// Formula: 1 + points * (wisdomMultPerPoint + boost)
func (m *Model) WisdomMultiplier(points int64, p PrestigeConfig, boost float64) (float64, error) {
	const op = "wisdomMultiplier"
	if points < 0 {
		return 0, domainErr(op, "wisdomPoints must be >= 0, got %d", points)
	}
	if err := checkFinite(op, "boostPerPoint", boost); err != nil {
		return 0, err
	}
	return 1 + float64(points)*(p.WisdomMultPerPoint+boost), nil
}
