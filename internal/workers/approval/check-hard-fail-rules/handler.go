// internal/workers/approval/check-hard-fail-rules/handler.go
package checkhardfailrules

import (
	"context"
	"encoding/json"
	"time"

	"approval-workers/internal/approval"
	"approval-workers/internal/common/errors"
	"approval-workers/internal/common/logger"
	"approval-workers/internal/common/metrics"
	"approval-workers/pkg/registry"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "check-hard-fail-rules"
)

type Handler struct {
	config   *Config
	activity *registry.Activity
	errors   *errors.ErrorHandler
	metrics  *metrics.Metrics
	logger   logger.Logger
}

func NewHandler(config *Config, m *metrics.Metrics, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	activity := registry.Default().MustActivity(TaskType)
	return &Handler{
		config:   config,
		activity: activity,
		errors:   errors.NewErrorHandler(log).WithDeclaredCodes(activity.DeclaresError),
		metrics:  m,
		logger:   log,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	started := time.Now()
	defer h.metrics.TrackActive(TaskType)()

	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	input, err := h.Decode(job.Variables)
	if err != nil {
		h.failJob(ctx, client, job, err, started)
		return
	}

	output, err := h.execute(ctx, input)
	if err != nil {
		h.failJob(ctx, client, job, err, started)
		return
	}

	h.completeJob(ctx, client, job, output)
	h.metrics.ObserveJob(TaskType, started, "")
}

// Decode validates the job variables against the registered input schema and
// decodes them.
func (h *Handler) Decode(variables string) (*Input, error) {
	result, err := h.activity.ValidateInput([]byte(variables))
	if err != nil {
		return nil, errors.NewParseError(err)
	}
	if !result.Valid {
		return nil, errors.NewInvalidInputError(result.Summary())
	}

	var input Input
	if err := json.Unmarshal([]byte(variables), &input); err != nil {
		return nil, errors.NewParseError(err)
	}
	return &input, nil
}

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	result := approval.CheckHardFailConditions(input.Personal, input.Business)

	h.logger.Info("hard-fail rules checked", map[string]interface{}{
		"blocked": result.Blocked,
		"reasons": len(result.Reasons),
	})

	return &Output{Blocked: result.Blocked, Reasons: result.Reasons}, nil
}

func (h *Handler) completeJob(ctx context.Context, client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	if _, err := cmd.Send(ctx); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) failJob(ctx context.Context, client worker.JobClient, job entities.Job, err error, started time.Time) {
	h.metrics.ObserveJob(TaskType, started, string(errors.Normalize(err).Code))
	h.errors.HandleJobError(ctx, client, job, err)
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
