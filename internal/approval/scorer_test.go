// internal/approval/scorer_test.go
package approval

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const eps = 1e-9

func TestSubScoreWeights(t *testing.T) {
	var total float64
	for _, s := range subScores {
		total += s.weight
	}
	assert.InDelta(t, 1.0, total, eps)
}

func TestNormalizeUtilization(t *testing.T) {
	tests := map[float64]float64{
		-5:  1,
		0:   1,
		30:  1,
		65:  0.5,
		100: 0,
		140: 0,
	}
	for in, want := range tests {
		assert.InDelta(t, want, normalizeUtilization(in), eps, "utilization %v", in)
	}
}

func TestPersonalCreditScore(t *testing.T) {
	tests := []struct {
		name     string
		personal PersonalCreditData
		want     float64
	}{
		{"nothing known", PersonalCreditData{}, 0.5},
		{"relationship only", PersonalCreditData{PastCitibankRelationship: Bool(true)}, 0.7},
		{"midpoint fico", PersonalCreditData{FicoScore: Int(575)}, 0.5},
		{"zero fico is unknown", PersonalCreditData{FicoScore: Int(0)}, 0.5},
		{"experian fallback", PersonalCreditData{ExperianFico8: Int(850)}, 1},
		{"fico and utilization averaged", PersonalCreditData{FicoScore: Int(850), Utilization: Float(65)}, 0.75},
		{"bonus capped", PersonalCreditData{FicoScore: Int(850), Utilization: Float(0), PastCitibankRelationship: Bool(true)}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, personalCreditScore(scoreInput{personal: tt.personal}), eps)
		})
	}
}

func TestBusinessCreditScore(t *testing.T) {
	tests := []struct {
		name     string
		business BusinessCreditData
		want     float64
	}{
		{"nothing known", BusinessCreditData{}, 0},
		{"sole prop", BusinessCreditData{BusinessType: BusinessTypeSoleProp}, 0.1},
		{"corp with ein", BusinessCreditData{BusinessType: BusinessTypeCorp, EINVerified: Bool(true)}, 0.35},
		{"half-way age and score", BusinessCreditData{Intelliscore: Int(20), BusinessAgeMonths: Int(12)}, 0.7},
		{"capped", BusinessCreditData{Intelliscore: Int(90), BusinessAgeMonths: Int(30), DepositRelationshipWithCitibank: Bool(true)}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, businessCreditScore(scoreInput{business: tt.business}), eps)
		})
	}
}

func TestRelationshipScore(t *testing.T) {
	assert.InDelta(t, 0.5, relationshipScore(scoreInput{}), eps)
	assert.InDelta(t, 0.65, relationshipScore(scoreInput{personal: PersonalCreditData{CurrentCitibankUtilization: Float(65)}}), eps)
	assert.InDelta(t, 0.6, relationshipScore(scoreInput{personal: PersonalCreditData{ExistingCitibankCreditLimit: Float(1)}}), eps)
	assert.InDelta(t, 0.5, relationshipScore(scoreInput{personal: PersonalCreditData{ExistingCitibankCreditLimit: Float(0)}}), eps)
}

func TestRevenueScore(t *testing.T) {
	assert.InDelta(t, 0, revenueScore(scoreInput{}), eps)
	assert.InDelta(t, 0.3, revenueScore(scoreInput{business: BusinessCreditData{BusinessAnnualRevenue: Float(250000)}}), eps)
	assert.InDelta(t, 0.7, revenueScore(scoreInput{business: BusinessCreditData{BusinessAnnualRevenue: Float(5000000), BusinessProfitability: Bool(true)}}), eps)
}

func TestRiskScore(t *testing.T) {
	tests := []struct {
		name     string
		personal PersonalCreditData
		business BusinessCreditData
		want     float64
	}{
		{"clean", PersonalCreditData{}, BusinessCreditData{}, 1},
		{"two inquiries", PersonalCreditData{RecentHardInquiries90Days: Int(2)}, BusinessCreditData{}, 0.8},
		{"inquiry penalty capped", PersonalCreditData{RecentHardInquiries90Days: Int(9)}, BusinessCreditData{}, 0.5},
		{"medium industry", PersonalCreditData{}, BusinessCreditData{NAICSIndustryRiskTier: RiskTierMedium}, 0.9},
		{"three overdrafts tolerated", PersonalCreditData{}, BusinessCreditData{PaymentBehavior: &PaymentBehavior{Overdrafts: Int(3)}}, 1},
		{"overdrafts and nsf", PersonalCreditData{}, BusinessCreditData{PaymentBehavior: &PaymentBehavior{Overdrafts: Int(4), NSF: Int(1)}}, 0.75},
		{
			"every deduction applied",
			PersonalCreditData{RecentHardInquiries90Days: Int(20)},
			BusinessCreditData{NAICSIndustryRiskTier: RiskTierHigh, PaymentBehavior: &PaymentBehavior{Overdrafts: Int(10), NSF: Int(3)}},
			0.05,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := riskScore(scoreInput{personal: tt.personal, business: tt.business})
			assert.InDelta(t, tt.want, got, eps)
			assert.GreaterOrEqual(t, got, 0.0)
		})
	}
}

func TestSpendFitScore(t *testing.T) {
	assert.InDelta(t, 0.5, spendFitScore(scoreInput{}), eps)
	assert.InDelta(t, 0.7, spendFitScore(scoreInput{spend: SpendProfile{TravelSpendProfile: SpendMed, AdvertisingSpendProfile: SpendMed}}), eps)
	assert.InDelta(t, 0.5, spendFitScore(scoreInput{spend: SpendProfile{TravelSpendProfile: SpendLow}}), eps)
	assert.InDelta(t, 1, spendFitScore(scoreInput{spend: SpendProfile{TravelSpendProfile: SpendHigh, AdvertisingSpendProfile: SpendHigh, CanMeetSUBRequirement: Bool(true)}}), eps)
}

func TestCardAdjustment(t *testing.T) {
	personal := PersonalCreditData{FicoScore: Int(700)}

	tests := []struct {
		name     string
		personal PersonalCreditData
		business BusinessCreditData
		card     CardProfile
		want     int
	}{
		{"medium card, all minimums met", personal, BusinessCreditData{BusinessAgeMonths: Int(12), BusinessAnnualRevenue: Float(90000)}, CardProfile{DifficultyRating: DifficultyMedium, MinPersonalFico: 680, MinBusinessAge: 6, MinBusinessRevenue: 50000}, 0},
		{"easy card bonus", personal, BusinessCreditData{}, CardProfile{DifficultyRating: DifficultyEasy}, 5},
		{"fico below minimum", personal, BusinessCreditData{}, CardProfile{DifficultyRating: DifficultyMedium, MinPersonalFico: 720}, -15},
		{"missing fico counts as zero", PersonalCreditData{}, BusinessCreditData{}, CardProfile{MinPersonalFico: 600}, -15},
		{"unknown age and revenue skip their penalties", personal, BusinessCreditData{}, CardProfile{MinBusinessAge: 24, MinBusinessRevenue: 200000}, 0},
		{"known zero revenue takes the revenue penalty", personal, BusinessCreditData{BusinessAnnualRevenue: Float(0), MonthlyRevenueConsistency: Bool(true)}, CardProfile{DifficultyRating: DifficultyMedium, MinBusinessRevenue: 50000}, -10},
		{"young and small business on hard card", personal, BusinessCreditData{BusinessAgeMonths: Int(10), BusinessAnnualRevenue: Float(80000)}, CardProfile{DifficultyRating: DifficultyHard, MinBusinessAge: 24, MinBusinessRevenue: 200000}, -30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cardAdjustment(tt.personal, tt.business, tt.card))
		})
	}
}

func TestScoreComponents_Order(t *testing.T) {
	components := ScoreComponents(PersonalCreditData{}, BusinessCreditData{}, SpendProfile{})

	names := make([]string, len(components))
	for i, c := range components {
		names[i] = c.Name
	}
	assert.Equal(t, []string{"personalCredit", "businessCredit", "citibankRelationship", "revenue", "risk", "spendFit"}, names)
}
