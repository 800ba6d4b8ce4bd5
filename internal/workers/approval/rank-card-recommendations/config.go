// internal/workers/approval/rank-card-recommendations/config.go
package rankcardrecommendations

import (
	"time"

	"approval-workers/internal/ranking"
)

type Config struct {
	Timeout time.Duration
	// Candidates restricts the static catalog cards offered; empty offers all.
	Candidates    []string
	AlwaysInclude []string
}

func LoadConfig() *Config {
	return &Config{
		Timeout:       15 * time.Second,
		AlwaysInclude: ranking.DefaultAlwaysInclude,
	}
}
