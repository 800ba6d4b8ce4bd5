// internal/workers/approval/calculate-approval-likelihood/config.go
package calculateapprovallikelihood

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 5 * time.Second,
	}
}
