// internal/workers/approval/rank-card-recommendations/handler.go
package rankcardrecommendations

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"time"

	"approval-workers/internal/catalog"
	"approval-workers/internal/common/errors"
	"approval-workers/internal/common/logger"
	"approval-workers/internal/common/metrics"
	"approval-workers/internal/extractor"
	"approval-workers/internal/ranking"
	"approval-workers/internal/snapshot"
	"approval-workers/pkg/registry"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "rank-card-recommendations"
)

var errNoSnapshotStore = stderrors.New("snapshot store not configured")

// SnapshotLoader is satisfied by *snapshot.Store.
type SnapshotLoader interface {
	Load(ctx context.Context, businessID string) (*snapshot.Snapshot, error)
}

type Handler struct {
	config    *Config
	catalog   *catalog.Catalog
	snapshots SnapshotLoader
	activity  *registry.Activity
	errors    *errors.ErrorHandler
	metrics   *metrics.Metrics
	logger    logger.Logger
	now       func() time.Time
}

func NewHandler(config *Config, cat *catalog.Catalog, snapshots SnapshotLoader, m *metrics.Metrics, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	activity := registry.Default().MustActivity(TaskType)
	return &Handler{
		config:    config,
		catalog:   cat,
		snapshots: snapshots,
		activity:  activity,
		errors:    errors.NewErrorHandler(log).WithDeclaredCodes(activity.DeclaresError),
		metrics:   m,
		logger:    log,
		now:       time.Now,
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

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	output := &Output{BusinessID: input.BusinessID, Source: SourceInline}

	var (
		applicant extractor.Applicant
		recs      []extractor.Recommendation
	)
	if input.hasInlineData() {
		applicant = extractor.ExtractApprovalDataAt(input.Profile, input.ExperianReport, input.Recommendations, h.now())
		if input.Applicant != nil {
			applicant = *input.Applicant
		}
		if input.Recommendations != nil {
			recs = input.Recommendations.Recommendations
		}
		if output.BusinessID == "" {
			output.BusinessID = extractor.PrimaryBusinessID(input.Profile)
		}
	} else {
		snap, err := h.loadSnapshot(ctx, input.BusinessID)
		if err != nil {
			return nil, err
		}
		applicant = snap.Applicant()
		recs = snap.RecommendationList()
		output.Source = SourceSnapshot
		fetchedAt := snap.FetchedAt
		output.FetchedAt = &fetchedAt
	}

	candidates := h.config.Candidates
	if len(input.Candidates) > 0 {
		candidates = input.Candidates
	}

	ranked, summary := ranking.RankWithSummary(ranking.RankInput{
		Applicant:       applicant,
		Recommendations: recs,
		Catalog:         h.catalog,
		Candidates:      h.catalog.Subset(candidates),
		AlwaysInclude:   h.config.AlwaysInclude,
	})
	if ranked == nil {
		ranked = []ranking.RankedCard{}
	}

	output.RankedCards = ranked
	output.EvaluatedCount = summary.Evaluated
	output.BlockedCount = summary.Blocked
	h.metrics.ObserveRanking(len(ranked))

	h.logger.Info("card recommendations ranked", map[string]interface{}{
		"businessId":      output.BusinessID,
		"source":          output.Source,
		"recommendations": len(recs),
		"ranked":          len(ranked),
		"evaluated":       summary.Evaluated,
		"blocked":         summary.Blocked,
	})

	return output, nil
}

func (h *Handler) loadSnapshot(ctx context.Context, businessID string) (*snapshot.Snapshot, error) {
	if h.snapshots == nil {
		h.metrics.ObserveSnapshot("error")
		return nil, errors.NewSnapshotLoadFailedError(businessID, errNoSnapshotStore)
	}

	snap, err := h.snapshots.Load(ctx, businessID)
	switch {
	case err == nil:
		h.metrics.ObserveSnapshot("hit")
		return snap, nil
	case stderrors.Is(err, snapshot.ErrNotFound):
		h.metrics.ObserveSnapshot("not_found")
		return nil, errors.NewSnapshotNotFoundError(businessID)
	default:
		h.metrics.ObserveSnapshot("error")
		return nil, errors.NewSnapshotLoadFailedError(businessID, err)
	}
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
