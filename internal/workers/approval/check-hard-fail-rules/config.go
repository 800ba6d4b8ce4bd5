// internal/workers/approval/check-hard-fail-rules/config.go
package checkhardfailrules

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 5 * time.Second,
	}
}
