// pkg/registry/registry.go
package registry

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"approval-workers/internal/common/validation"
)

//go:embed activities.json
var activitiesJSON []byte

var (
	defaultOnce sync.Once
	defaultReg  *ActivityRegistry
)

// Default returns the registry compiled into the binary.
func Default() *ActivityRegistry {
	defaultOnce.Do(func() {
		reg, err := Parse(activitiesJSON)
		if err != nil {
			panic(fmt.Sprintf("embedded activity registry: %v", err))
		}
		defaultReg = reg
	})
	return defaultReg
}

func LoadRegistry(path string) (*ActivityRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes a registry document and compiles each activity's input schema.
func Parse(data []byte) (*ActivityRegistry, error) {
	var reg ActivityRegistry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("decode registry: %w", err)
	}

	seen := make(map[string]bool, len(reg.Activities))
	for i := range reg.Activities {
		a := &reg.Activities[i]
		if a.TaskType == "" {
			return nil, fmt.Errorf("activity %q has no taskType", a.ID)
		}
		if seen[a.TaskType] {
			return nil, fmt.Errorf("duplicate taskType %q", a.TaskType)
		}
		seen[a.TaskType] = true

		if _, err := a.TimeoutDuration(); err != nil {
			return nil, fmt.Errorf("activity %q: %w", a.ID, err)
		}
		if len(a.InputSchema) == 0 {
			continue
		}

		schema := make(map[string]interface{}, len(a.InputSchema)+1)
		for k, v := range a.InputSchema {
			schema[k] = v
		}
		if len(reg.Definitions) > 0 {
			schema["definitions"] = reg.Definitions
		}

		compiled, err := validation.Compile(schema)
		if err != nil {
			return nil, fmt.Errorf("activity %q input schema: %w", a.ID, err)
		}
		a.input = compiled
	}
	return &reg, nil
}

// Activity looks up an activity by task type.
func (r *ActivityRegistry) Activity(taskType string) (*Activity, bool) {
	for i := range r.Activities {
		if r.Activities[i].TaskType == taskType {
			return &r.Activities[i], true
		}
	}
	return nil, false
}

// MustActivity panics for task types missing from the registry; workers call
// it once at construction.
func (r *ActivityRegistry) MustActivity(taskType string) *Activity {
	a, ok := r.Activity(taskType)
	if !ok {
		panic(fmt.Sprintf("activity %q is not registered", taskType))
	}
	return a
}

// ValidateInput checks raw job variables against the input schema. An error
// means the document is not JSON at all.
func (a *Activity) ValidateInput(variables []byte) (*validation.ValidationResult, error) {
	if a.input == nil {
		return &validation.ValidationResult{Valid: true}, nil
	}
	return a.input.ValidateBytes(variables)
}

func (a *Activity) TimeoutDuration() (time.Duration, error) {
	if a.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(a.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: %w", a.Timeout, err)
	}
	return d, nil
}

// DeclaresError reports whether code is listed in the activity's error codes.
func (a *Activity) DeclaresError(code string) bool {
	for _, c := range a.ErrorCodes {
		if c == code {
			return true
		}
	}
	return false
}
