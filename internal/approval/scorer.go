// internal/approval/scorer.go
package approval

import "math"

const (
	penaltyBelowMinFico    = 15
	penaltyBelowMinAge     = 10
	penaltyBelowMinRevenue = 10
	penaltyHardCard        = 10
	bonusEasyCard          = 5
)

type scoreInput struct {
	personal PersonalCreditData
	business BusinessCreditData
	spend    SpendProfile
}

type subScore struct {
	name   string
	weight float64
	score  func(in scoreInput) float64
}

// Weights sum to 1.0. Each score func returns a value in [0,1].
var subScores = []subScore{
	{"personalCredit", 0.30, personalCreditScore},
	{"businessCredit", 0.20, businessCreditScore},
	{"citibankRelationship", 0.20, relationshipScore},
	{"revenue", 0.15, revenueScore},
	{"risk", 0.10, riskScore},
	{"spendFit", 0.05, spendFitScore},
}

// SubScore is one weighted component of the likelihood score.
type SubScore struct {
	Name   string  `json:"name"`
	Weight float64 `json:"weight"`
	Value  float64 `json:"value"`
}

// ScoreComponents returns every sub-score before weighting, in table order.
func ScoreComponents(personal PersonalCreditData, business BusinessCreditData, spend SpendProfile) []SubScore {
	in := scoreInput{personal: personal, business: business, spend: spend}
	out := make([]SubScore, 0, len(subScores))
	for _, s := range subScores {
		out = append(out, SubScore{Name: s.name, Weight: s.weight, Value: s.score(in)})
	}
	return out
}

// CalculateLikelihoodScore combines the weighted sub-scores into a 0-100 score
// and applies the card-specific adjustments when a card profile is given.
func CalculateLikelihoodScore(personal PersonalCreditData, business BusinessCreditData, spend SpendProfile, card *CardProfile) int {
	var weighted float64
	for _, c := range ScoreComponents(personal, business, spend) {
		weighted += c.Value * c.Weight
	}
	score := int(math.Round(weighted * 100))

	if card != nil {
		score += cardAdjustment(personal, business, *card)
	}
	return int(clamp(float64(score), 0, 100))
}

func cardAdjustment(personal PersonalCreditData, business BusinessCreditData, card CardProfile) int {
	adj := 0

	fico, _ := effectiveFico(personal)
	if card.MinPersonalFico > 0 && fico < card.MinPersonalFico {
		adj -= penaltyBelowMinFico
	}
	if card.MinBusinessAge > 0 && business.BusinessAgeMonths != nil && *business.BusinessAgeMonths < card.MinBusinessAge {
		adj -= penaltyBelowMinAge
	}
	if card.MinBusinessRevenue > 0 && business.BusinessAnnualRevenue != nil && *business.BusinessAnnualRevenue < card.MinBusinessRevenue {
		adj -= penaltyBelowMinRevenue
	}

	switch card.DifficultyRating {
	case DifficultyHard:
		adj -= penaltyHardCard
	case DifficultyEasy:
		adj += bonusEasyCard
	}
	return adj
}

// personalCreditScore averages the known factors and falls back to 0.5 when
// neither FICO nor utilization is known. The relationship bonus is added
// after averaging.
func personalCreditScore(in scoreInput) float64 {
	p := in.personal
	var total float64
	factors := 0

	if fico, ok := effectiveFico(p); ok {
		total += normalizeFico(fico)
		factors++
	}
	if p.Utilization != nil {
		total += normalizeUtilization(*p.Utilization)
		factors++
	}

	score := 0.5
	if factors > 0 {
		score = total / float64(factors)
	}
	if isTrue(p.PastCitibankRelationship) {
		score += 0.2
	}
	return math.Min(score, 1)
}

func businessCreditScore(in scoreInput) float64 {
	b := in.business
	var score float64

	if b.Intelliscore != nil {
		score += normalizeIntelliscore(*b.Intelliscore)
	}
	if b.BusinessAgeMonths != nil {
		score += normalizeBusinessAge(*b.BusinessAgeMonths)
	}

	switch b.BusinessType {
	case BusinessTypeLLC, BusinessTypeCorp:
		score += 0.2
	case BusinessTypeSoleProp:
		score += 0.1
	}
	if isTrue(b.EINVerified) {
		score += 0.15
	}
	if isTrue(b.MonthlyRevenueConsistency) {
		score += 0.15
	}
	if isTrue(b.DepositRelationshipWithCitibank) {
		score += 0.1
	}
	return math.Min(score, 1)
}

func relationshipScore(in scoreInput) float64 {
	p := in.personal
	score := 0.5

	if isTrue(p.PastCitibankRelationship) {
		score += 0.2
	}
	if p.CurrentCitibankUtilization != nil {
		score += normalizeUtilization(*p.CurrentCitibankUtilization) * 0.3
	}
	if floatOrZero(p.ExistingCitibankCreditLimit) > 0 {
		score += 0.1
	}
	return math.Min(score, 1)
}

func revenueScore(in scoreInput) float64 {
	b := in.business
	var score float64

	if revenue := floatOrZero(b.BusinessAnnualRevenue); revenue > 0 {
		score += math.Min(revenue/500000, 1) * 0.6
	}
	if isTrue(b.MonthlyRevenueConsistency) {
		score += 0.3
	}
	if isTrue(b.BusinessProfitability) {
		score += 0.1
	}
	return math.Min(score, 1)
}

func riskScore(in scoreInput) float64 {
	score := 1.0

	if n := intOrZero(in.personal.RecentHardInquiries90Days); n > 0 {
		score -= math.Min(float64(n)*0.1, 0.5)
	}

	switch in.business.NAICSIndustryRiskTier {
	case RiskTierHigh:
		score -= 0.2
	case RiskTierMedium:
		score -= 0.1
	}

	if pb := in.business.PaymentBehavior; pb != nil {
		if intOrZero(pb.Overdrafts) > 3 {
			score -= 0.15
		}
		if intOrZero(pb.NSF) > 0 {
			score -= 0.1
		}
	}
	return math.Max(score, 0)
}

func spendFitScore(in scoreInput) float64 {
	s := in.spend
	score := 0.5

	score += spendLevelBonus(s.TravelSpendProfile)
	score += spendLevelBonus(s.AdvertisingSpendProfile)
	if isTrue(s.CanMeetSUBRequirement) {
		score += 0.1
	}
	return math.Min(score, 1)
}

func spendLevelBonus(level SpendLevel) float64 {
	switch level {
	case SpendHigh:
		return 0.2
	case SpendMed:
		return 0.1
	}
	return 0
}
