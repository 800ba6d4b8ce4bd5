// internal/common/errors/handler.go
package errors

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

// ErrorHandler reports failed jobs back to the broker.
type ErrorHandler struct {
	logger   Logger
	declared func(code string) bool
}

type Logger interface {
	Error(msg string, fields map[string]interface{})
}

func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// WithDeclaredCodes restricts thrown BPMN errors to the codes declared
// accepts. A job that would throw any other code is failed with no retries,
// which raises an incident instead of an error no boundary event catches.
func (h *ErrorHandler) WithDeclaredCodes(declared func(code string) bool) *ErrorHandler {
	h.declared = declared
	return h
}

// Resolve is the package-level Resolve with the declared-code guard applied.
func (h *ErrorHandler) Resolve(err error, jobRetries int32) Outcome {
	outcome := Resolve(err, jobRetries)
	if outcome.Throw && h.declared != nil && !h.declared(outcome.Error.Code) {
		outcome.Throw = false
		outcome.Retries = 0
	}
	return outcome
}

// Outcome is what the handler will do with a failed job.
type Outcome struct {
	Error   *BPMNError
	Retries int  // remaining retries to report when Throw is false
	Throw   bool // raise a BPMN error instead of failing with retries
}

// Resolve decides between failing with retries and throwing a BPMN error.
// Retryable codes keep retrying while the job still has retries left.
func Resolve(err error, jobRetries int32) Outcome {
	stdErr := Normalize(err)
	bpmnErr := ConvertToBPMNError(stdErr)

	maxRetries := bpmnErr.Retries
	if maxRetries == 0 || jobRetries <= 0 {
		return Outcome{Error: bpmnErr, Throw: true}
	}

	// Never hand the broker more retries than the job had left.
	retries := maxRetries
	if int(jobRetries) < maxRetries {
		retries = int(jobRetries)
	}
	return Outcome{Error: bpmnErr, Retries: retries - 1}
}

// Normalize unwraps err to a StandardError, falling back to INTERNAL_ERROR.
func Normalize(err error) *StandardError {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr
	}
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// HandleJobError handles any error in a worker job
func (h *ErrorHandler) HandleJobError(ctx context.Context, client worker.JobClient, job entities.Job, err error) {
	outcome := h.Resolve(err, job.Retries)
	h.logError(job, Normalize(err), outcome)

	if outcome.Throw {
		h.throwBPMNError(ctx, client, job, outcome.Error)
		return
	}
	h.failJob(ctx, client, job, outcome)
}

func (h *ErrorHandler) failJob(ctx context.Context, client worker.JobClient, job entities.Job, outcome Outcome) {
	cmd := client.NewFailJobCommand().
		JobKey(job.Key).
		Retries(int32(outcome.Retries)).
		ErrorMessage(outcome.Error.Message)

	if varsJSON, err := json.Marshal(outcome.Error.ToErrorVariables()); err == nil {
		if withVars, err := cmd.VariablesFromString(string(varsJSON)); err == nil {
			h.send(ctx, job, func(ctx context.Context) error { _, err := withVars.Send(ctx); return err })
			return
		}
	}
	h.send(ctx, job, func(ctx context.Context) error { _, err := cmd.Send(ctx); return err })
}

func (h *ErrorHandler) throwBPMNError(ctx context.Context, client worker.JobClient, job entities.Job, bpmnErr *BPMNError) {
	cmd := client.NewThrowErrorCommand().
		JobKey(job.Key).
		ErrorCode(bpmnErr.Code).
		ErrorMessage(bpmnErr.Message)

	if varsJSON, err := json.Marshal(bpmnErr.ToErrorVariables()); err == nil {
		if withVars, err := cmd.VariablesFromString(string(varsJSON)); err == nil {
			h.send(ctx, job, func(ctx context.Context) error { _, err := withVars.Send(ctx); return err })
			return
		}
	}
	h.send(ctx, job, func(ctx context.Context) error { _, err := cmd.Send(ctx); return err })
}

func (h *ErrorHandler) send(ctx context.Context, job entities.Job, fn func(context.Context) error) {
	if err := fn(ctx); err != nil {
		h.logger.Error("failed to report job failure", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err.Error(),
		})
	}
}

func (h *ErrorHandler) logError(job entities.Job, stdErr *StandardError, outcome Outcome) {
	h.logger.Error("Job failed", map[string]interface{}{
		"jobKey":           job.Key,
		"jobType":          job.Type,
		"errorCode":        string(stdErr.Code),
		"message":          stdErr.Message,
		"details":          stdErr.Details,
		"retryable":        stdErr.Retryable,
		"retries":          outcome.Retries,
		"thrown":           outcome.Throw,
		"errorCategory":    GetErrorCategory(stdErr.Code),
		"workflowInstance": job.ProcessInstanceKey,
	})
}
