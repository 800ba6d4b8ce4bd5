// internal/snapshot/store.go
package snapshot

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"approval-workers/internal/common/logger"
	"approval-workers/internal/extractor"

	"github.com/redis/go-redis/v9"
)

const (
	DefaultCacheTTL = 10 * time.Minute
	cachePrefix     = "snapshot:"
)

var ErrNotFound = errors.New("snapshot not found")

// Schema creates the snapshot table. The collaborators that fetch upstream
// payloads write rows; this service only reads them.
const Schema = `
CREATE TABLE IF NOT EXISTS credit_snapshots (
	id              BIGSERIAL PRIMARY KEY,
	business_id     TEXT        NOT NULL,
	profile         JSONB,
	experian_report JSONB,
	recommendations JSONB,
	fetched_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS credit_snapshots_business_fetched
	ON credit_snapshots (business_id, fetched_at DESC);
`

const latestSnapshotQuery = `
	SELECT profile, experian_report, recommendations, fetched_at
	FROM credit_snapshots
	WHERE business_id = $1
	ORDER BY fetched_at DESC
	LIMIT 1`

// Snapshot is the set of upstream payloads fetched together for one business.
type Snapshot struct {
	BusinessID      string                             `json:"businessId"`
	Profile         *extractor.ProfileResponse         `json:"profile,omitempty"`
	ExperianReport  *extractor.ExperianReport          `json:"experianReport,omitempty"`
	Recommendations *extractor.RecommendationsResponse `json:"recommendations,omitempty"`
	FetchedAt       time.Time                          `json:"fetchedAt"`
}

// Applicant runs the extractor over the snapshot as of its fetch time.
func (s *Snapshot) Applicant() extractor.Applicant {
	return extractor.ExtractApprovalDataAt(s.Profile, s.ExperianReport, s.Recommendations, s.FetchedAt)
}

// RecommendationList returns the upstream recommendations, or nil.
func (s *Snapshot) RecommendationList() []extractor.Recommendation {
	if s.Recommendations == nil {
		return nil
	}
	return s.Recommendations.Recommendations
}

// Store reads the latest snapshot per business from Postgres, cached in Redis.
type Store struct {
	db    *sql.DB
	redis *redis.Client
	ttl   time.Duration
	log   logger.Logger

	encode func(v any) ([]byte, error)
}

func NewStore(db *sql.DB, rdb *redis.Client, ttl time.Duration, log logger.Logger) *Store {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Store{db: db, redis: rdb, ttl: ttl, log: log, encode: json.Marshal}
}

// Migrate applies Schema.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("create snapshot schema: %w", err)
	}
	return nil
}

// Load returns the most recent snapshot for the business. Cache failures are
// logged and fall through to the database.
func (s *Store) Load(ctx context.Context, businessID string) (*Snapshot, error) {
	key := cachePrefix + businessID

	if s.redis != nil {
		val, err := s.redis.Get(ctx, key).Bytes()
		switch {
		case err == nil:
			var snap Snapshot
			if err := json.Unmarshal(val, &snap); err == nil {
				return &snap, nil
			}
			s.log.Warn("discarding unreadable cached snapshot", map[string]interface{}{
				"businessId": businessID,
			})
			if err := s.Invalidate(ctx, businessID); err != nil {
				s.log.Warn("snapshot cache delete failed", map[string]interface{}{
					"businessId": businessID,
					"error":      err.Error(),
				})
			}
		case !errors.Is(err, redis.Nil):
			s.log.Warn("snapshot cache read failed", map[string]interface{}{
				"businessId": businessID,
				"error":      err.Error(),
			})
		}
	}

	snap, err := s.query(ctx, businessID)
	if err != nil {
		return nil, err
	}

	if s.redis != nil {
		s.fill(ctx, key, snap)
	}
	return snap, nil
}

func (s *Store) fill(ctx context.Context, key string, snap *Snapshot) {
	data, err := s.encode(snap)
	if err != nil {
		s.log.Warn("snapshot not cached", map[string]interface{}{
			"businessId": snap.BusinessID,
			"error":      err.Error(),
		})
		return
	}
	if err := s.redis.Set(ctx, key, data, s.ttl).Err(); err != nil {
		s.log.Warn("snapshot cache write failed", map[string]interface{}{
			"businessId": snap.BusinessID,
			"error":      err.Error(),
		})
	}
}

func (s *Store) query(ctx context.Context, businessID string) (*Snapshot, error) {
	var profile, report, recs []byte
	snap := &Snapshot{BusinessID: businessID}

	err := s.db.QueryRowContext(ctx, latestSnapshotQuery, businessID).
		Scan(&profile, &report, &recs, &snap.FetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query snapshot: %w", err)
	}

	if err := decodeColumn(profile, &snap.Profile); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	if err := decodeColumn(report, &snap.ExperianReport); err != nil {
		return nil, fmt.Errorf("decode experian report: %w", err)
	}
	if err := decodeColumn(recs, &snap.Recommendations); err != nil {
		return nil, fmt.Errorf("decode recommendations: %w", err)
	}
	return snap, nil
}

// decodeColumn leaves dst nil for SQL NULL.
func decodeColumn[T any](raw []byte, dst **T) error {
	if len(raw) == 0 {
		return nil
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return err
	}
	*dst = &v
	return nil
}

// Invalidate drops the cached snapshot so the next Load reads the database.
func (s *Store) Invalidate(ctx context.Context, businessID string) error {
	if s.redis == nil {
		return nil
	}
	return s.redis.Del(ctx, cachePrefix+businessID).Err()
}
