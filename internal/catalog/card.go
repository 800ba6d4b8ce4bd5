// internal/catalog/card.go
package catalog

import "approval-workers/internal/approval"

type Segment string

const (
	SegmentBusiness Segment = "Business"
	SegmentPersonal Segment = "Personal"
)

// Defaults used when a card leaves a profile field unset.
const (
	DefaultCardName        = "Business Credit Card"
	DefaultDifficulty      = approval.DifficultyMedium
	DefaultMinPersonalFico = 680
	DefaultMinBusinessAge  = 6
	DefaultTolerance       = approval.ToleranceMedium
)

type BonusOffer struct {
	Amount    string `json:"amount"`
	Condition string `json:"condition"`
}

type Rewards struct {
	Primary     string `json:"primary,omitempty"`
	Secondary   string `json:"secondary,omitempty"`
	Description string `json:"description,omitempty"`
}

// Card is a catalog entry: the underwriting profile plus presentation data.
type Card struct {
	ID                        string                     `json:"id"`
	Segment                   Segment                    `json:"segment"`
	CardName                  string                     `json:"cardName"`
	Tagline                   string                     `json:"tagline,omitempty"`
	DifficultyRating          approval.Difficulty        `json:"difficultyRating,omitempty"`
	MinPersonalFico           int                        `json:"minPersonalFico,omitempty"`
	MinBusinessRevenue        float64                    `json:"minBusinessRevenue,omitempty"`
	MinBusinessAge            int                        `json:"minBusinessAge,omitempty"`
	ExpectedApprovalCLRange   *approval.CreditLimitRange `json:"expectedApprovalCLRange,omitempty"`
	SubDifficultyIndex        int                        `json:"subDifficultyIndex,omitempty"`
	RewardCategoryAlignment   []string                   `json:"rewardCategoryAlignment,omitempty"`
	UnderwriterToleranceLevel approval.Tolerance         `json:"underwriterToleranceLevel,omitempty"`
	BonusOffer                *BonusOffer                `json:"bonusOffer,omitempty"`
	Rewards                   *Rewards                   `json:"rewards,omitempty"`
	Benefits                  []string                   `json:"benefits,omitempty"`
	Features                  []string                   `json:"features,omitempty"`
	Reason                    string                     `json:"reason,omitempty"`
	SuggestedUsage            string                     `json:"suggestedUsage,omitempty"`
	ApplyURL                  string                     `json:"applyUrl,omitempty"`
	DetailsURL                string                     `json:"detailsUrl,omitempty"`
	FitScore                  float64                    `json:"fitScore,omitempty"`
}

// Profile returns the scoring profile for the card. Zero minimum FICO and
// minimum age fall back to 680 and 6 months. Minimum revenue is taken as is.
func (c Card) Profile() approval.CardProfile {
	p := approval.CardProfile{
		CardName:                  c.CardName,
		DifficultyRating:          c.DifficultyRating,
		MinPersonalFico:           c.MinPersonalFico,
		MinBusinessRevenue:        c.MinBusinessRevenue,
		MinBusinessAge:            c.MinBusinessAge,
		ExpectedApprovalCLRange:   c.ExpectedApprovalCLRange,
		SubDifficultyIndex:        c.SubDifficultyIndex,
		RewardCategoryAlignment:   c.RewardCategoryAlignment,
		UnderwriterToleranceLevel: c.UnderwriterToleranceLevel,
	}
	if p.CardName == "" {
		p.CardName = DefaultCardName
	}
	if p.DifficultyRating == "" {
		p.DifficultyRating = DefaultDifficulty
	}
	if p.MinPersonalFico == 0 {
		p.MinPersonalFico = DefaultMinPersonalFico
	}
	if p.MinBusinessAge == 0 {
		p.MinBusinessAge = DefaultMinBusinessAge
	}
	if p.UnderwriterToleranceLevel == "" {
		p.UnderwriterToleranceLevel = DefaultTolerance
	}
	return p
}
