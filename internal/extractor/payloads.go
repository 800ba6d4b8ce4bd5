// internal/extractor/payloads.go
package extractor

// Upstream payloads as returned by the profile, credit report and
// recommendation services. Only the fields the extractor reads are modelled.

type ProfileResponse struct {
	Message string       `json:"message,omitempty"`
	Data    *ProfileData `json:"data,omitempty"`
}

type ProfileData struct {
	ID       string           `json:"id"`
	ClerkID  string           `json:"clerkId,omitempty"`
	Email    string           `json:"email,omitempty"`
	Business []BusinessRecord `json:"business,omitempty"`
}

type BusinessRecord struct {
	ID          string `json:"id"`
	Name        string `json:"name,omitempty"`
	Type        string `json:"type,omitempty"`
	EINVerified *bool  `json:"einVerified,omitempty"`
}

type ExperianReport struct {
	Message     string        `json:"message,omitempty"`
	BusinessID  string        `json:"businessId,omitempty"`
	Score       *float64      `json:"score,omitempty"`
	CreditScore *float64      `json:"creditScore,omitempty"`
	Data        *ExperianData `json:"data,omitempty"`
}

type ExperianData struct {
	ScoreInformation      *ScoreInformation `json:"scoreInformation,omitempty"`
	ExpandedCreditSummary *CreditSummary    `json:"expandedCreditSummary,omitempty"`
	Inquiries             []Inquiry         `json:"inquiries,omitempty"`
}

type ScoreInformation struct {
	CommercialScore *ScoreValue `json:"commercialScore,omitempty"`
	FSRScore        *ScoreValue `json:"fsrScore,omitempty"`
}

type ScoreValue struct {
	Score *float64 `json:"score,omitempty"`
}

type CreditSummary struct {
	ActiveTradelineCount  *int     `json:"activeTradelineCount,omitempty"`
	AllTradelineBalance   *float64 `json:"allTradelineBalance,omitempty"`
	CurrentAccountBalance *float64 `json:"currentAccountBalance,omitempty"`
	CurrentDBT            *int     `json:"currentDbt,omitempty"`
	CollectionCount       *int     `json:"collectionCount,omitempty"`
}

// Inquiry dates arrive under either key depending on the report version.
type Inquiry struct {
	Date        string `json:"date,omitempty"`
	InquiryDate string `json:"inquiryDate,omitempty"`
}

type RecommendationsResponse struct {
	Message         string           `json:"message,omitempty"`
	BusinessID      string           `json:"businessId,omitempty"`
	Score           *float64         `json:"score,omitempty"`
	Recommendations []Recommendation `json:"recommendations,omitempty"`
}

type Recommendation struct {
	ID             string   `json:"id,omitempty"`
	CardID         string   `json:"cardId,omitempty"`
	CardName       string   `json:"cardName,omitempty"`
	FitScore       *float64 `json:"fitScore,omitempty"`
	Reason         string   `json:"reason,omitempty"`
	SuggestedUsage string   `json:"suggestedUsage,omitempty"`
}
