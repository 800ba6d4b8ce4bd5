// internal/workers/approval/rank-card-recommendations/models.go
package rankcardrecommendations

import (
	"time"

	"approval-workers/internal/extractor"
	"approval-workers/internal/ranking"
)

const (
	SourceInline   = "inline"
	SourceSnapshot = "snapshot"
)

// Input either carries the upstream payloads (or an already extracted
// applicant) inline, or names a business whose latest snapshot is loaded.
// Inline data wins when both are present.
type Input struct {
	BusinessID      string                             `json:"businessId,omitempty"`
	Applicant       *extractor.Applicant               `json:"applicant,omitempty"`
	Profile         *extractor.ProfileResponse         `json:"profile,omitempty"`
	ExperianReport  *extractor.ExperianReport          `json:"experianReport,omitempty"`
	Recommendations *extractor.RecommendationsResponse `json:"recommendations,omitempty"`
	Candidates      []string                           `json:"candidates,omitempty"`
}

func (in *Input) hasInlineData() bool {
	return in.Applicant != nil || in.Profile != nil || in.ExperianReport != nil || in.Recommendations != nil
}

// Output.BusinessID is the requested business, or for inline payloads without
// one, the first business on the profile.
type Output struct {
	BusinessID     string               `json:"businessId,omitempty"`
	RankedCards    []ranking.RankedCard `json:"rankedCards"`
	EvaluatedCount int                  `json:"evaluatedCount"`
	BlockedCount   int                  `json:"blockedCount"`
	Source         string               `json:"source"`
	FetchedAt      *time.Time           `json:"fetchedAt,omitempty"`
}
