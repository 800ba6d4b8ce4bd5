// pkg/registry/schema.go
package registry

import "approval-workers/internal/common/validation"

// ActivityRegistry describes every task type the fleet serves. Definitions
// holds JSON schema fragments shared by the activity input schemas.
type ActivityRegistry struct {
	Version     string                 `json:"version"`
	LastUpdated string                 `json:"lastUpdated"`
	Definitions map[string]interface{} `json:"definitions,omitempty"`
	Activities  []Activity             `json:"activities"`
}

type Activity struct {
	ID                   string                 `json:"id"`
	DisplayName          string                 `json:"displayName"`
	Description          string                 `json:"description"`
	Category             string                 `json:"category"`
	Version              string                 `json:"version"`
	TaskType             string                 `json:"taskType"`
	ImplementationStatus string                 `json:"implementationStatus"`
	InputSchema          map[string]interface{} `json:"inputSchema"`
	OutputSchema         map[string]interface{} `json:"outputSchema"`
	ErrorCodes           []string               `json:"errorCodes"`
	Timeout              string                 `json:"timeout"`
	Retries              int                    `json:"retries"`
	Workflows            []string               `json:"workflows"`
	Tags                 []string               `json:"tags"`

	input *validation.Schema
}
