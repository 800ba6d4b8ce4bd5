// internal/workers/approval/calculate-approval-likelihood/models.go
package calculateapprovallikelihood

import "approval-workers/internal/approval"

// Input carries the applicant and at most one card: an inline profile or the
// id of a catalog card. With neither, the score has no card adjustment.
type Input struct {
	Personal    approval.PersonalCreditData `json:"personal"`
	Business    approval.BusinessCreditData `json:"business"`
	Spend       approval.SpendProfile       `json:"spend"`
	CardID      string                      `json:"cardId,omitempty"`
	CardProfile *approval.CardProfile       `json:"cardProfile,omitempty"`
}

type Output struct {
	approval.ApprovalLikelihoodResult
	CardID   string `json:"cardId,omitempty"`
	CardName string `json:"cardName,omitempty"`
}
