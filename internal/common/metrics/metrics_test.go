// internal/common/metrics/metrics_test.go
package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveJob(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveJob("calculate-approval-likelihood", time.Now(), "")
	m.ObserveJob("calculate-approval-likelihood", time.Now(), "")
	m.ObserveJob("calculate-approval-likelihood", time.Now(), "CARD_NOT_FOUND")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.JobsCompleted.WithLabelValues("calculate-approval-likelihood")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.JobsFailed.WithLabelValues("calculate-approval-likelihood", "CARD_NOT_FOUND")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.JobDuration))
}

func TestTrackActive(t *testing.T) {
	m := New(prometheus.NewRegistry())

	done := m.TrackActive("rank-card-recommendations")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.JobsActive.WithLabelValues("rank-card-recommendations")))
	done()
	assert.Equal(t, 0.0, testutil.ToFloat64(m.JobsActive.WithLabelValues("rank-card-recommendations")))
}

func TestApprovalMetrics(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveDecision("Strongly Recommended", 92)
	m.ObserveDecision("Declined by Rule", 0)
	m.ObserveRanking(7)
	m.ObserveSnapshot("hit")
	m.ObserveSnapshot("hit")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Decisions.WithLabelValues("Declined by Rule")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.ApprovalScore))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.SnapshotLookups.WithLabelValues("hit")))
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveJob("x", time.Now(), "")
		m.TrackActive("x")()
		m.ObserveDecision("Declined by Rule", 0)
		m.ObserveRanking(0)
		m.ObserveSnapshot("error")
	})
}
