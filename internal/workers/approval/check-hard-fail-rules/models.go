// internal/workers/approval/check-hard-fail-rules/models.go
package checkhardfailrules

import "approval-workers/internal/approval"

type Input struct {
	Personal approval.PersonalCreditData `json:"personal"`
	Business approval.BusinessCreditData `json:"business"`
}

type Output struct {
	Blocked bool     `json:"blocked"`
	Reasons []string `json:"reasons"`
}
