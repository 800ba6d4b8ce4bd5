// internal/approval/reasoning.go
package approval

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// GenerateReasoning derives the narrative and factor lists from the same
// inputs the scorer reads. A missing optional field skips its rule.
// likelihoodScore and blockedReasons are accepted for call-site symmetry with
// the scorer and gate; no threshold below depends on them.
func GenerateReasoning(personal PersonalCreditData, business BusinessCreditData, spend SpendProfile, likelihoodScore int, blockedReasons []string) Reasoning {
	r := Reasoning{
		Reasoning:       []string{},
		RiskFactors:     []string{},
		PositiveFactors: []string{},
	}

	if n := personal.Citibank524Count; n != nil {
		if *n < 5 {
			r.positive(fmt.Sprintf("Under 5/24 (%d/24)", *n))
			r.narrate(fmt.Sprintf("Under 5/24 rule with %d new cards in last 24 months", *n))
		} else {
			r.risk(fmt.Sprintf("At 5/24 limit (%d/24)", *n))
		}
	}

	if fico, ok := effectiveFico(personal); ok {
		switch {
		case fico >= 720:
			r.positive(fmt.Sprintf("Excellent FICO score (%d)", fico))
			r.narrate(fmt.Sprintf("Strong personal credit with FICO score of %d", fico))
		case fico >= 680:
			r.positive(fmt.Sprintf("Good FICO score (%d)", fico))
			r.narrate(fmt.Sprintf("Good personal credit with FICO score of %d", fico))
		default:
			r.risk(fmt.Sprintf("FICO score below ideal range (%d)", fico))
		}
	}

	if s := business.Intelliscore; s != nil {
		if *s >= 70 {
			r.positive(fmt.Sprintf("Strong Intelliscore (%d)", *s))
			r.narrate(fmt.Sprintf("Low business risk with Intelliscore of %d", *s))
		} else if *s < 40 {
			r.risk(fmt.Sprintf("Low Intelliscore (%d)", *s))
		}
	}

	if age := business.BusinessAgeMonths; age != nil {
		if *age >= 24 {
			r.positive(fmt.Sprintf("Established business (%d months)", *age))
		} else if *age < 12 {
			r.risk(fmt.Sprintf("New business (%d months old)", *age))
		}
	}

	if revenue := floatOrZero(business.BusinessAnnualRevenue); revenue >= 100000 {
		r.positive(fmt.Sprintf("Strong annual revenue ($%sK)", formatThousands(revenue)))
	}

	if isTrue(personal.PastCitibankRelationship) {
		r.positive("Existing Citibank relationship")
		r.narrate("Strong existing relationship with Citibank")
	}

	if u := personal.Utilization; u != nil {
		if *u < 30 {
			r.positive(fmt.Sprintf("Low utilization (%s%%)", formatPercent(*u)))
		} else if *u > 70 {
			r.risk(fmt.Sprintf("High utilization (%s%%)", formatPercent(*u)))
		}
	}

	if n := intOrZero(personal.RecentHardInquiries90Days); n > 3 {
		r.risk(fmt.Sprintf("High recent inquiries (%d in last 90 days)", n))
	}

	if spend.TravelSpendProfile == SpendHigh || spend.AdvertisingSpendProfile == SpendHigh {
		r.positive("High spend in card reward categories")
		r.narrate("Strong alignment with card reward categories")
	}

	if isTrue(spend.CanMeetSUBRequirement) {
		r.positive("Can meet sign-up bonus requirement")
	}

	return r
}

func (r *Reasoning) positive(s string) { r.PositiveFactors = append(r.PositiveFactors, s) }

func (r *Reasoning) risk(s string) { r.RiskFactors = append(r.RiskFactors, s) }

func (r *Reasoning) narrate(s string) { r.Reasoning = append(r.Reasoning, s) }

// formatThousands renders an amount in whole thousands, rounding half away from zero.
func formatThousands(amount float64) string {
	return decimal.NewFromFloat(amount).Div(decimal.NewFromInt(1000)).StringFixed(0)
}

func formatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
