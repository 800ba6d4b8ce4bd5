// internal/approval/gate.go
package approval

const (
	Reason524            = "5/24 Rule: 5 or more new personal cards in last 24 months"
	Reason230            = "2/30 Rule: 2 or more Citibank cards approved in last 30 days"
	ReasonBusiness130    = "1/30 Business Rule: Citibank business card approved in last 30 days"
	ReasonExperianFrozen = "Experian bureau is frozen - must be unfrozen for Citibank pull"
	ReasonBusinessTooNew = "Business age less than 3 months"
	ReasonNoRevenue      = "No business revenue and no revenue consistency"
	ReasonKYCFailed      = "Address match or KYC verification failed"
)

type hardFailRule struct {
	reason string
	fires  func(p PersonalCreditData, b BusinessCreditData) bool
}

// Order here is the order reasons are reported in.
var hardFailRules = []hardFailRule{
	{Reason524, func(p PersonalCreditData, _ BusinessCreditData) bool {
		return p.Citibank524Count != nil && *p.Citibank524Count >= 5
	}},
	{Reason230, func(p PersonalCreditData, _ BusinessCreditData) bool {
		return p.Citibank230Count != nil && *p.Citibank230Count >= 2
	}},
	{ReasonBusiness130, func(p PersonalCreditData, _ BusinessCreditData) bool {
		return p.CitibankBusiness130Count != nil && *p.CitibankBusiness130Count >= 1
	}},
	{ReasonExperianFrozen, func(p PersonalCreditData, _ BusinessCreditData) bool {
		return p.BureauUnfrozen != nil && isFalse(p.BureauUnfrozen.Experian)
	}},
	{ReasonBusinessTooNew, func(_ PersonalCreditData, b BusinessCreditData) bool {
		return b.BusinessAgeMonths != nil && *b.BusinessAgeMonths < 3
	}},
	// A reported revenue of zero is the same as no revenue field.
	{ReasonNoRevenue, func(_ PersonalCreditData, b BusinessCreditData) bool {
		return floatOrZero(b.BusinessAnnualRevenue) == 0 && !isTrue(b.MonthlyRevenueConsistency)
	}},
	{ReasonKYCFailed, func(_ PersonalCreditData, b BusinessCreditData) bool {
		return isFalse(b.AddressMatch) || isFalse(b.KYCPass)
	}},
}

// CheckHardFailConditions evaluates every disqualifying rule and reports all that fire.
func CheckHardFailConditions(personal PersonalCreditData, business BusinessCreditData) HardFailResult {
	reasons := []string{}
	for _, rule := range hardFailRules {
		if rule.fires(personal, business) {
			reasons = append(reasons, rule.reason)
		}
	}
	return HardFailResult{
		Blocked: len(reasons) > 0,
		Reasons: reasons,
	}
}
