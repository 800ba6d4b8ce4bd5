// internal/approval/normalize.go
package approval

func normalizeValue(value, min, max float64) float64 {
	if value < min {
		return 0
	}
	if value > max {
		return 1
	}
	return (value - min) / (max - min)
}

func normalizeFico(fico int) float64 {
	return normalizeValue(float64(fico), 300, 850)
}

func normalizeIntelliscore(score int) float64 {
	return normalizeValue(float64(score), 0, 100)
}

// normalizeBusinessAge ramps linearly to 1.0 at 24 months.
func normalizeBusinessAge(months int) float64 {
	if months >= 24 {
		return 1
	}
	if months <= 0 {
		return 0
	}
	return float64(months) / 24
}

// normalizeUtilization is 1.0 up to 30%, 0 at 100% and decays linearly between.
func normalizeUtilization(util float64) float64 {
	if util <= 30 {
		return 1
	}
	if util >= 100 {
		return 0
	}
	return 1 - (util-30)/70
}

// effectiveFico prefers ficoScore over experianFico8. A zero score counts as absent.
func effectiveFico(p PersonalCreditData) (int, bool) {
	if p.FicoScore != nil && *p.FicoScore > 0 {
		return *p.FicoScore, true
	}
	if p.ExperianFico8 != nil && *p.ExperianFico8 > 0 {
		return *p.ExperianFico8, true
	}
	return 0, false
}

func isTrue(b *bool) bool {
	return b != nil && *b
}

func isFalse(b *bool) bool {
	return b != nil && !*b
}

func intOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

func floatOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
