package balance

import "math"

// Cost returns the price of the next unit when owned units are already held.
// Formula: baseCost * growth^owned
func (m *Model) Cost(tier ProducerTier, owned int) (float64, error) {
	if err := checkCount("cost", "ownedCount", owned); err != nil {
		return 0, err
	}
	c := m.unitCost(tier, owned)
	if math.IsInf(c, 0) {
		return 0, domainErr("cost", "cost of %q at %d owned overflows float64", tier.Name, owned)
	}
	return c, nil
}

func (m *Model) unitCost(tier ProducerTier, owned int) float64 {
	return tier.BaseCost * math.Pow(m.tuning.CostGrowth, float64(owned))
}

// MaxBulkQuantity bounds BulkCost quantities and MaxAffordable results.
const MaxBulkQuantity = 1_000_000

// BulkCost returns the total price of qty units bought one after another
// starting at owned, each unit price scaled by costMult (a distillation
// "Cost Mult" discount, 1 for none).
func (m *Model) BulkCost(tier ProducerTier, owned, qty int, costMult float64) (float64, error) {
	const op = "bulkCost"
	if err := checkCount(op, "ownedCount", owned); err != nil {
		return 0, err
	}
	if err := checkCount(op, "quantity", qty); err != nil {
		return 0, err
	}
	if qty > MaxBulkQuantity {
		return 0, domainErr(op, "quantity %d exceeds limit %d", qty, MaxBulkQuantity)
	}
	if err := checkNonNegative(op, "costMult", costMult); err != nil {
		return 0, err
	}
	total := 0.0
	for i := 0; i < qty; i++ {
		c, err := m.Cost(tier, owned+i)
		if err != nil {
			return 0, err
		}
		total += c * costMult
		if math.IsInf(total, 0) {
			return 0, domainErr(op, "total for %d units of %q overflows float64", qty, tier.Name)
		}
	}
	return total, nil
}

// MaxAffordable returns how many consecutive units starting at owned fit in
// budget. Counts above MaxBulkQuantity are a DomainError.
func (m *Model) MaxAffordable(tier ProducerTier, owned int, budget, costMult float64) (int, error) {
	const op = "maxAffordable"
	if err := checkCount(op, "ownedCount", owned); err != nil {
		return 0, err
	}
	if err := checkNonNegative(op, "budget", budget); err != nil {
		return 0, err
	}
	if err := checkFinite(op, "costMult", costMult); err != nil {
		return 0, err
	}
	if costMult <= 0 || tier.BaseCost <= 0 {
		return 0, domainErr(op, "unit price must be > 0 (baseCost=%v costMult=%v)", tier.BaseCost, costMult)
	}
	count := 0
	remaining := budget
	for {
		c := m.unitCost(tier, owned+count) * costMult
		if c > remaining {
			return count, nil
		}
		if count >= MaxBulkQuantity {
			return 0, domainErr(op, "more than %d units affordable", MaxBulkQuantity)
		}
		remaining -= c
		count++
	}
}

// Efficiency is production per avocado spent on the first unit.
// Formula: baseRate / baseCost
func (m *Model) Efficiency(tier ProducerTier) (float64, error) {
	if tier.BaseCost == 0 {
		return 0, domainErr("efficiency", "producer %q has zero baseCost", tier.Name)
	}
	return tier.BaseRate / tier.BaseCost, nil
}
