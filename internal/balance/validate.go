package balance

import "math"

func checkFinite(op, name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return domainErr(op, "%s must be finite, got %v", name, v)
	}
	return nil
}

// checkNonNegative rejects NaN, ±Inf and negative values.
func checkNonNegative(op, name string, v float64) error {
	if err := checkFinite(op, name, v); err != nil {
		return err
	}
	if v < 0 {
		return domainErr(op, "%s must be >= 0, got %v", name, v)
	}
	return nil
}

func checkCount(op, name string, n int) error {
	if n < 0 {
		return domainErr(op, "%s must be >= 0, got %d", name, n)
	}
	return nil
}
