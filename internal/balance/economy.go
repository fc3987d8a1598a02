package balance

import "math"

// Consumption is the avocados per second eaten by units guac labs running at
// effective consume exponent exp. exp may not drop below the economy floor;
// values above the base exponent are accepted and reported as a Warning.
// Formula: baseConsumption * units^exp
func (m *Model) Consumption(e EconomyConfig, units, exp float64) (float64, error) {
	const op = "consumption"
	if err := checkNonNegative(op, "unitCount", units); err != nil {
		return 0, err
	}
	if err := checkFinite(op, "effectiveExponent", exp); err != nil {
		return 0, err
	}
	if exp < e.ConsumeExponentFloor {
		return 0, domainErr(op, "effectiveExponent %v is below floor %v", exp, e.ConsumeExponentFloor)
	}
	if exp > e.ConsumeExponent {
		m.emit(Warning{
			Op:      op,
			Message: "effective exponent above base exponent",
			Value:   exp,
			Bound:   e.ConsumeExponent,
		})
	}
	if units == 0 {
		return 0, nil
	}
	return e.BaseConsumption * math.Pow(units, exp), nil
}

// EffectiveConsumeExponent applies an upgrade delta (negative lowers the
// exponent) to the base exponent and holds the result at the floor.
func (m *Model) EffectiveConsumeExponent(e EconomyConfig, delta float64) (float64, error) {
	if err := checkFinite("effectiveConsumeExponent", "delta", delta); err != nil {
		return 0, err
	}
	return math.Max(e.ConsumeExponent+delta, e.ConsumeExponentFloor), nil
}

// Production is the guac per second made by units guac labs at full feed.
// Formula: baseProduction * units^produceExponent
func (m *Model) Production(e EconomyConfig, units float64) (float64, error) {
	if err := checkNonNegative("production", "unitCount", units); err != nil {
		return 0, err
	}
	if units == 0 {
		return 0, nil
	}
	return e.BaseProduction * math.Pow(units, e.ProduceExponent), nil
}

// ResourceMultiplier is the global production multiplier granted by
// accumulated guac.
// Formula: 1 + sqrt(amount) * multiplierPerSqrt
func (m *Model) ResourceMultiplier(e EconomyConfig, amount float64) (float64, error) {
	if err := checkNonNegative("resourceMultiplier", "accumulatedAmount", amount); err != nil {
		return 0, err
	}
	return 1 + math.Sqrt(amount)*e.MultiplierPerSqrt, nil
}
