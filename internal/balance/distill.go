package balance

// DistillationCost is the lifetime-wisdom price of version (1-based).
func (m *Model) DistillationCost(l *DistillationLadder, version int) (float64, error) {
	if l == nil {
		return 0, domainErr("distillationCost", "no distillation ladder")
	}
	if version < 1 || version > len(l.costs) {
		return 0, domainErr("distillationCost", "version %d out of range [1,%d]", version, len(l.costs))
	}
	return l.costs[version-1], nil
}

// CumulativeDistillationBonus returns category's multiplier once version has
// been reached. Version 0 is the neutral baseline.
func (m *Model) CumulativeDistillationBonus(l *DistillationLadder, version int, category string) (float64, error) {
	if l == nil {
		return 0, domainErr("cumulativeDistillationBonus", "no distillation ladder")
	}
	ci, ok := l.index[category]
	if !ok {
		return 0, &UnknownCategoryError{Category: category, Suggestion: Suggest(category, l.CategoryNames())}
	}
	if version < 0 || version > len(l.costs) {
		return 0, domainErr("cumulativeDistillationBonus", "version %d out of range [0,%d]", version, len(l.costs))
	}
	return l.table[version][ci], nil
}

// DistillationBonuses returns every category's cumulative value at version.
func (m *Model) DistillationBonuses(l *DistillationLadder, version int) (map[string]float64, error) {
	if l == nil {
		return nil, domainErr("distillationBonuses", "no distillation ladder")
	}
	out := make(map[string]float64, len(l.categories))
	for _, c := range l.categories {
		v, err := m.CumulativeDistillationBonus(l, version, c.Name)
		if err != nil {
			return nil, err
		}
		out[c.Name] = v
	}
	return out, nil
}

// CanDistill reports whether wisdom earned since the last distillation pays
// for the next version after distilled versions have been bought.
func (m *Model) CanDistill(l *DistillationLadder, wisdomSinceLast float64, distilled int) bool {
	cost, err := m.DistillationCost(l, distilled+1)
	if err != nil {
		return false
	}
	return wisdomSinceLast >= cost
}
