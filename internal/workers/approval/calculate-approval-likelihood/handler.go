// internal/workers/approval/calculate-approval-likelihood/handler.go
package calculateapprovallikelihood

import (
	"context"
	"encoding/json"
	"time"

	"approval-workers/internal/approval"
	"approval-workers/internal/catalog"
	"approval-workers/internal/common/errors"
	"approval-workers/internal/common/logger"
	"approval-workers/internal/common/metrics"
	"approval-workers/pkg/registry"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "calculate-approval-likelihood"
)

type Handler struct {
	config   *Config
	catalog  *catalog.Catalog
	activity *registry.Activity
	errors   *errors.ErrorHandler
	metrics  *metrics.Metrics
	logger   logger.Logger
}

func NewHandler(config *Config, cat *catalog.Catalog, m *metrics.Metrics, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	activity := registry.Default().MustActivity(TaskType)
	return &Handler{
		config:   config,
		catalog:  cat,
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
	output := &Output{}

	var profile *approval.CardProfile
	switch {
	case input.CardID != "":
		card, ok := h.catalog.ByID(input.CardID)
		if !ok {
			return nil, errors.NewCardNotFoundError(input.CardID)
		}
		p := card.Profile()
		profile = &p
		output.CardID = card.ID
		output.CardName = p.CardName
	case input.CardProfile != nil:
		profile = input.CardProfile
		output.CardName = profile.CardName
	}

	output.ApprovalLikelihoodResult = approval.CalculateApprovalLikelihood(input.Personal, input.Business, input.Spend, profile)
	h.metrics.ObserveDecision(string(output.Recommendation), output.LikelihoodScore)

	h.logger.Info("approval likelihood calculated", map[string]interface{}{
		"cardId":         output.CardID,
		"cardName":       output.CardName,
		"score":          output.LikelihoodScore,
		"recommendation": output.Recommendation,
		"blocked":        output.Stage1Blocked,
	})

	return output, nil
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
