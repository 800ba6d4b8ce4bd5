// internal/common/metrics/metrics.go
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors shared by all workers.
type Metrics struct {
	JobsCompleted *prometheus.CounterVec
	JobsFailed    *prometheus.CounterVec
	JobDuration   *prometheus.HistogramVec
	JobsActive    *prometheus.GaugeVec

	Decisions       *prometheus.CounterVec
	ApprovalScore   prometheus.Histogram
	RankedCards     prometheus.Histogram
	SnapshotLookups *prometheus.CounterVec
}

// New registers the collectors on reg. Pass prometheus.DefaultRegisterer in
// production and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		JobsCompleted: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "worker_jobs_completed_total",
				Help: "Total number of jobs completed by worker",
			},
			[]string{"task_type"},
		),
		JobsFailed: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "worker_jobs_failed_total",
				Help: "Total number of jobs failed by worker",
			},
			[]string{"task_type", "error_code"},
		),
		JobDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "worker_job_duration_seconds",
				Help:    "Duration of job processing in seconds",
				Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5},
			},
			[]string{"task_type"},
		),
		JobsActive: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "worker_jobs_active",
				Help: "Number of active jobs per worker",
			},
			[]string{"task_type"},
		),
		Decisions: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "approval_decisions_total",
				Help: "Approval evaluations by recommendation",
			},
			[]string{"recommendation"},
		),
		ApprovalScore: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "approval_likelihood_score",
			Help:    "Distribution of approval likelihood scores",
			Buckets: prometheus.LinearBuckets(10, 10, 10),
		}),
		RankedCards: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "approval_ranked_cards",
			Help:    "Number of cards returned per ranking job",
			Buckets: prometheus.LinearBuckets(0, 4, 8),
		}),
		SnapshotLookups: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "approval_snapshot_lookups_total",
				Help: "Credit snapshot lookups by result",
			},
			[]string{"result"},
		),
	}
}

// ObserveJob records one finished job. An empty errorCode counts as success.
func (m *Metrics) ObserveJob(taskType string, started time.Time, errorCode string) {
	if m == nil {
		return
	}
	m.JobDuration.WithLabelValues(taskType).Observe(time.Since(started).Seconds())
	if errorCode != "" {
		m.JobsFailed.WithLabelValues(taskType, errorCode).Inc()
		return
	}
	m.JobsCompleted.WithLabelValues(taskType).Inc()
}

// TrackActive increments the active gauge and returns the matching decrement.
func (m *Metrics) TrackActive(taskType string) func() {
	if m == nil {
		return func() {}
	}
	g := m.JobsActive.WithLabelValues(taskType)
	g.Inc()
	return g.Dec
}

func (m *Metrics) ObserveDecision(recommendation string, score int) {
	if m == nil {
		return
	}
	m.Decisions.WithLabelValues(recommendation).Inc()
	m.ApprovalScore.Observe(float64(score))
}

func (m *Metrics) ObserveRanking(cards int) {
	if m == nil {
		return
	}
	m.RankedCards.Observe(float64(cards))
}

// ObserveSnapshot counts lookups as "hit", "not_found" or "error".
func (m *Metrics) ObserveSnapshot(result string) {
	if m == nil {
		return
	}
	m.SnapshotLookups.WithLabelValues(result).Inc()
}
