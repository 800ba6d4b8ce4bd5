// internal/ranking/ranking.go
package ranking

import (
	"sort"
	"strings"

	"approval-workers/internal/approval"
	"approval-workers/internal/catalog"
	"approval-workers/internal/extractor"

	"github.com/google/uuid"
)

// DefaultAlwaysInclude lists cards shown even when the gate declines them.
var DefaultAlwaysInclude = []string{
	"costco-anywhere-visa-citi",
	"costco-anywhere-visa-business-citi",
}

type RankInput struct {
	Applicant       extractor.Applicant
	Recommendations []extractor.Recommendation
	// Catalog holds the static candidates and the cards upstream
	// recommendations are enriched from.
	Catalog *catalog.Catalog
	// Candidates narrows the static cards offered; nil offers the whole Catalog.
	Candidates    *catalog.Catalog
	AlwaysInclude []string
}

// RankedCard is a candidate card with its evaluation attached.
type RankedCard struct {
	catalog.Card
	CardID          string                            `json:"cardId"`
	Personalized    bool                              `json:"personalized"`
	ApprovalResult  approval.ApprovalLikelihoodResult `json:"approvalResult"`
	ApprovalScore   int                               `json:"approvalScore"`
	DisplayFitScore float64                           `json:"displayFitScore"`
}

// Summary counts the cards evaluated by one ranking, including the declined
// static cards left out of the result.
type Summary struct {
	Evaluated int `json:"evaluated"`
	Blocked   int `json:"blocked"`
}

// Rank merges upstream recommendations with the catalog, evaluates every card
// once and orders the result: personalized cards, then the remaining static
// cards, then the always-included cards.
func Rank(in RankInput) []RankedCard {
	cards, _ := RankWithSummary(in)
	return cards
}

func RankWithSummary(in RankInput) ([]RankedCard, Summary) {
	cat := in.Catalog
	if cat == nil {
		cat = catalog.Builtin()
	}

	offered := in.Candidates
	if offered == nil {
		offered = cat
	}
	candidates := merge(in.Recommendations, cat, offered)

	alwaysInclude := make(map[string]bool, len(in.AlwaysInclude))
	for _, id := range in.AlwaysInclude {
		alwaysInclude[strings.ToLower(id)] = true
	}

	summary := Summary{Evaluated: len(candidates)}
	var personalized, static, pinned []RankedCard
	for _, c := range candidates {
		evaluate(&c, in.Applicant, cat)
		if c.ApprovalResult.Stage1Blocked {
			summary.Blocked++
		}

		if c.Personalized {
			personalized = append(personalized, c)
			continue
		}
		if alwaysInclude[strings.ToLower(c.ID)] {
			pinned = append(pinned, c)
			continue
		}
		if c.ApprovalResult.Recommendation != approval.DeclinedByRule {
			static = append(static, c)
		}
	}

	sort.SliceStable(personalized, func(i, j int) bool {
		a, b := personalized[i], personalized[j]
		if a.FitScore != b.FitScore {
			return a.FitScore > b.FitScore
		}
		return a.ApprovalScore > b.ApprovalScore
	})

	sort.SliceStable(static, func(i, j int) bool {
		a, b := static[i], static[j]
		if a.ApprovalScore != b.ApprovalScore {
			return a.ApprovalScore > b.ApprovalScore
		}
		return a.FitScore > b.FitScore
	})

	out := make([]RankedCard, 0, len(personalized)+len(static)+len(pinned))
	out = append(out, personalized...)
	out = append(out, static...)
	return append(out, pinned...), summary
}

// merge enriches upstream recommendations with their catalog match and appends
// the offered cards not already represented.
func merge(recs []extractor.Recommendation, cat, offered *catalog.Catalog) []RankedCard {
	seenIDs := map[string]bool{}
	seenNames := map[string]bool{}
	out := make([]RankedCard, 0, len(recs)+offered.Len())

	for _, rec := range recs {
		c := enrich(rec, cat)
		if rec.CardID != "" {
			seenIDs[rec.CardID] = true
		} else if rec.ID != "" {
			seenIDs[rec.ID] = true
		}
		if name := catalog.NormalizeName(c.CardName); name != "" {
			seenNames[name] = true
		}
		out = append(out, c)
	}

	for _, card := range offered.All() {
		if seenIDs[card.ID] || seenNames[catalog.NormalizeName(card.CardName)] {
			continue
		}
		out = append(out, RankedCard{Card: card, CardID: card.ID})
	}
	return out
}

// enrich overlays the upstream fields that are present on the matched card.
func enrich(rec extractor.Recommendation, cat *catalog.Catalog) RankedCard {
	var c RankedCard
	if matched, ok := cat.MatchByName(rec.CardName); ok {
		c.Card = matched
		c.CardID = matched.ID
	}

	if rec.ID != "" {
		c.ID = rec.ID
	}
	if rec.CardID != "" {
		c.CardID = rec.CardID
	}
	if rec.CardName != "" {
		c.CardName = rec.CardName
	}
	if rec.Reason != "" {
		c.Reason = rec.Reason
	}
	if rec.SuggestedUsage != "" {
		c.SuggestedUsage = rec.SuggestedUsage
	}
	if rec.FitScore != nil {
		c.FitScore = *rec.FitScore
	}
	return c
}

func evaluate(c *RankedCard, applicant extractor.Applicant, cat *catalog.Catalog) {
	profile := c.Profile()
	c.ApprovalResult = approval.CalculateApprovalLikelihood(applicant.Personal, applicant.Business, applicant.Spend, &profile)
	c.ApprovalScore = c.ApprovalResult.LikelihoodScore
	c.Personalized = IsPersonalized(c.CardID)

	c.DisplayFitScore = c.FitScore
	if c.DisplayFitScore == 0 {
		c.DisplayFitScore = float64(c.ApprovalScore) / 100
	}

	if c.ApplyURL == "" {
		c.ApplyURL = cat.ApplyURL(c.CardID, c.CardName)
	}
	if c.DetailsURL == "" {
		c.DetailsURL = cat.DetailsURL(c.CardID, c.CardName)
	}
}

// IsPersonalized reports whether a card id is an upstream UUID rather than a
// catalog slug.
func IsPersonalized(cardID string) bool {
	if len(cardID) != 36 {
		return false
	}
	_, err := uuid.Parse(cardID)
	return err == nil
}
