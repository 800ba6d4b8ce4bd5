// internal/approval/types.go
package approval

// Optional numeric and boolean inputs are pointers: nil means "unknown",
// which the scorer treats differently from a zero or false value.

type BusinessType string

const (
	BusinessTypeLLC      BusinessType = "LLC"
	BusinessTypeCorp     BusinessType = "Corp"
	BusinessTypeSoleProp BusinessType = "Sole Prop"
)

type RiskTier string

const (
	RiskTierLow    RiskTier = "Low"
	RiskTierMedium RiskTier = "Medium"
	RiskTierHigh   RiskTier = "High"
)

type SpendLevel string

const (
	SpendLow  SpendLevel = "Low"
	SpendMed  SpendLevel = "Med"
	SpendHigh SpendLevel = "High"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

type Tolerance string

const (
	ToleranceHigh   Tolerance = "High"
	ToleranceMedium Tolerance = "Medium"
	ToleranceLow    Tolerance = "Low"
)

type Recommendation string

const (
	StronglyRecommended  Recommendation = "Strongly Recommended"
	ViableWithConditions Recommendation = "Viable with Conditions"
	NotRecommended       Recommendation = "Not Recommended"
	DeclinedByRule       Recommendation = "Declined by Rule"
)

type BureauStatus struct {
	Experian   *bool `json:"experian,omitempty"`
	Equifax    *bool `json:"equifax,omitempty"`
	TransUnion *bool `json:"transUnion,omitempty"`
}

type PersonalCreditData struct {
	FicoScore                   *int          `json:"ficoScore,omitempty"`
	ExperianFico8               *int          `json:"experianFico8,omitempty"`
	EquifaxFico                 *int          `json:"equifaxFico,omitempty"`
	TransUnionFico              *int          `json:"transUnionFico,omitempty"`
	Utilization                 *float64      `json:"utilization,omitempty"`
	RecentHardInquiries90Days   *int          `json:"recentHardInquiries90Days,omitempty"`
	PastCitibankRelationship    *bool         `json:"pastCitibankRelationship,omitempty"`
	Citibank524Count            *int          `json:"citibank524Count,omitempty"`
	Citibank230Count            *int          `json:"citibank230Count,omitempty"`
	CitibankBusiness130Count    *int          `json:"citibankBusiness130Count,omitempty"`
	ExistingCitibankCreditLimit *float64      `json:"existingCitibankCreditLimit,omitempty"`
	CurrentCitibankUtilization  *float64      `json:"currentCitibankUtilization,omitempty"`
	BureauUnfrozen              *BureauStatus `json:"bureauUnfrozen,omitempty"`
}

type PaymentBehavior struct {
	Overdrafts      *int     `json:"overdrafts,omitempty"`
	NSF             *int     `json:"nsf,omitempty"`
	AvgDailyBalance *float64 `json:"avgDailyBalance,omitempty"`
}

type BusinessCreditData struct {
	Intelliscore                    *int             `json:"intelliscore,omitempty"`
	BusinessAgeMonths               *int             `json:"businessAgeMonths,omitempty"`
	BusinessAnnualRevenue           *float64         `json:"businessAnnualRevenue,omitempty"`
	MonthlyRevenueConsistency       *bool            `json:"monthlyRevenueConsistency,omitempty"`
	BusinessType                    BusinessType     `json:"businessType,omitempty"`
	EINVerified                     *bool            `json:"einVerified,omitempty"`
	AddressMatch                    *bool            `json:"addressMatch,omitempty"`
	KYCPass                         *bool            `json:"kycPass,omitempty"`
	NAICSIndustryRiskTier           RiskTier         `json:"naicsIndustryRiskTier,omitempty"`
	BusinessProfitability           *bool            `json:"businessProfitability,omitempty"`
	DepositRelationshipWithCitibank *bool            `json:"depositRelationshipWithCitibank,omitempty"`
	PaymentBehavior                 *PaymentBehavior `json:"paymentBehavior,omitempty"`
}

type SpendProfile struct {
	ProjectedSpend6Months   *float64   `json:"projectedSpend6Months,omitempty"`
	CanMeetSUBRequirement   *bool      `json:"canMeetSUBRequirement,omitempty"`
	TravelSpendProfile      SpendLevel `json:"travelSpendProfile,omitempty"`
	AdvertisingSpendProfile SpendLevel `json:"advertisingSpendProfile,omitempty"`
}

type CreditLimitRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// CardProfile is the underwriting metadata of a single card product.
// Zero minimums are treated as "no requirement".
type CardProfile struct {
	CardName                  string            `json:"cardName"`
	DifficultyRating          Difficulty        `json:"difficultyRating"`
	MinPersonalFico           int               `json:"minPersonalFico,omitempty"`
	MinBusinessRevenue        float64           `json:"minBusinessRevenue,omitempty"`
	MinBusinessAge            int               `json:"minBusinessAge,omitempty"`
	ExpectedApprovalCLRange   *CreditLimitRange `json:"expectedApprovalCLRange,omitempty"`
	SubDifficultyIndex        int               `json:"subDifficultyIndex,omitempty"`
	RewardCategoryAlignment   []string          `json:"rewardCategoryAlignment,omitempty"`
	UnderwriterToleranceLevel Tolerance         `json:"underwriterToleranceLevel,omitempty"`
}

type CardSpecificDetails struct {
	ExpectedApprovalLimit CreditLimitRange `json:"expectedApprovalLimit"`
	SubFeasibility        bool             `json:"subFeasibility"`
	SpendFitScore         int              `json:"spendFitScore"`
}

type ApprovalLikelihoodResult struct {
	Recommendation      Recommendation       `json:"recommendation"`
	LikelihoodScore     int                  `json:"likelihoodScore"`
	Reasoning           []string             `json:"reasoning"`
	Stage1Blocked       bool                 `json:"stage1Blocked"`
	BlockedReasons      []string             `json:"blockedReasons"`
	RiskFactors         []string             `json:"riskFactors"`
	PositiveFactors     []string             `json:"positiveFactors"`
	CardSpecificDetails *CardSpecificDetails `json:"cardSpecificDetails,omitempty"`
}

type HardFailResult struct {
	Blocked bool     `json:"blocked"`
	Reasons []string `json:"reasons"`
}

type Reasoning struct {
	Reasoning       []string `json:"reasoning"`
	RiskFactors     []string `json:"riskFactors"`
	PositiveFactors []string `json:"positiveFactors"`
}

// Int, Float and Bool build optional inputs inline.
func Int(v int) *int { return &v }

func Float(v float64) *float64 { return &v }

func Bool(v bool) *bool { return &v }
