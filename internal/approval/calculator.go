// internal/approval/calculator.go
package approval

import "math"

const (
	StronglyRecommendedThreshold  = 75
	ViableWithConditionsThreshold = 55
)

const declinedNarrative = "Application would be declined due to Citibank policy violations"

type limitTier struct {
	minFico    int
	minRevenue float64
	limit      CreditLimitRange
}

// Checked top-down; the first matching tier wins.
var limitTiers = []limitTier{
	{750, 100000, CreditLimitRange{Min: 15000, Max: 50000}},
	{720, 50000, CreditLimitRange{Min: 10000, Max: 30000}},
}

var defaultLimit = CreditLimitRange{Min: 5000, Max: 25000}

// CalculateApprovalLikelihood runs the gate, the scorer and the reasoning
// generator for one card and assembles the result. It never fails: missing
// inputs degrade to neutral defaults and policy rejections come back as
// DeclinedByRule.
func CalculateApprovalLikelihood(personal PersonalCreditData, business BusinessCreditData, spend SpendProfile, card *CardProfile) ApprovalLikelihoodResult {
	gate := CheckHardFailConditions(personal, business)
	if gate.Blocked {
		return ApprovalLikelihoodResult{
			Recommendation:  DeclinedByRule,
			LikelihoodScore: 0,
			Reasoning:       []string{declinedNarrative},
			Stage1Blocked:   true,
			BlockedReasons:  gate.Reasons,
			RiskFactors:     append([]string(nil), gate.Reasons...),
			PositiveFactors: []string{},
		}
	}

	score := CalculateLikelihoodScore(personal, business, spend, card)
	reasoning := GenerateReasoning(personal, business, spend, score, []string{})

	return ApprovalLikelihoodResult{
		Recommendation:  RecommendationForScore(score),
		LikelihoodScore: score,
		Reasoning:       reasoning.Reasoning,
		Stage1Blocked:   false,
		BlockedReasons:  []string{},
		RiskFactors:     reasoning.RiskFactors,
		PositiveFactors: reasoning.PositiveFactors,
		CardSpecificDetails: &CardSpecificDetails{
			ExpectedApprovalLimit: EstimateApprovalLimit(personal, business),
			SubFeasibility:        isTrue(spend.CanMeetSUBRequirement),
			SpendFitScore:         int(math.Round(spendFitScore(scoreInput{spend: spend}) * 100)),
		},
	}
}

// RecommendationForScore maps a non-blocked score to its tier.
func RecommendationForScore(score int) Recommendation {
	switch {
	case score >= StronglyRecommendedThreshold:
		return StronglyRecommended
	case score >= ViableWithConditionsThreshold:
		return ViableWithConditions
	default:
		return NotRecommended
	}
}

// EstimateApprovalLimit looks up the expected limit from FICO and revenue
// tiers. It does not depend on the card.
func EstimateApprovalLimit(personal PersonalCreditData, business BusinessCreditData) CreditLimitRange {
	fico, _ := effectiveFico(personal)
	revenue := floatOrZero(business.BusinessAnnualRevenue)
	for _, t := range limitTiers {
		if fico >= t.minFico && revenue >= t.minRevenue {
			return t.limit
		}
	}
	return defaultLimit
}
