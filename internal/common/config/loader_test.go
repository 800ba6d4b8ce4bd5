// internal/common/config/loader_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const baseYAML = `
app:
  name: approval-workers
camunda:
  broker_address: localhost:26500
database:
  postgres:
    host: localhost
    database: approvals
    user: approvals
    password: ${TEST_PG_PASSWORD}
  redis:
    address: localhost:6379
catalog:
  candidates: [costco-anywhere-visa-citi]
workers:
  calculate-approval-likelihood:
    enabled: true
    timeout: 5000
  rank-card-recommendations:
    enabled: false
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func clearOverrides(t *testing.T) {
	for _, k := range []string{"DB_USER", "DB_PASSWORD", "REDIS_PASSWORD", "ZEEBE_ADDRESS"} {
		t.Setenv(k, "")
	}
}

func TestLoadFromFile(t *testing.T) {
	clearOverrides(t)
	t.Setenv("TEST_PG_PASSWORD", "s3cret")

	cfg, err := LoadFromFile(writeConfig(t, baseYAML))
	require.NoError(t, err)

	assert.Equal(t, "s3cret", cfg.Database.Postgres.Password)
	assert.Equal(t, 5432, cfg.Database.Postgres.Port)
	assert.Equal(t, "disable", cfg.Database.Postgres.SSLMode)
	assert.Equal(t, "builtin", cfg.Catalog.Source)
	assert.Equal(t, "card-profiles", cfg.Catalog.Index)
	assert.Equal(t, []string{"costco-anywhere-visa-citi"}, cfg.Catalog.Candidates)
	assert.Equal(t, []string{"costco-anywhere-visa-citi", "costco-anywhere-visa-business-citi"}, cfg.Catalog.AlwaysInclude)
	assert.Equal(t, 10*time.Minute, GetDuration(cfg.Snapshot.CacheTTL))
	assert.Equal(t, ":8080", cfg.Metrics.Address)

	w := GetWorkerConfig(cfg, "calculate-approval-likelihood")
	assert.True(t, w.Enabled)
	assert.Equal(t, 5000, w.Timeout)
	assert.Equal(t, 5, w.MaxJobsActive)
	assert.Equal(t, 3, w.MaxRetries)

	assert.False(t, GetWorkerConfig(cfg, "rank-card-recommendations").Enabled)
	assert.True(t, GetWorkerConfig(cfg, "check-hard-fail-rules").Enabled)
	assert.Equal(t, 30000, GetWorkerConfig(cfg, "check-hard-fail-rules").Timeout)
}

func TestLoadFromFile_EnvironmentOverrides(t *testing.T) {
	clearOverrides(t)
	t.Setenv("CAMUNDA_BROKER_ADDRESS", "zeebe:26500")

	cfg, err := LoadFromFile(writeConfig(t, baseYAML))
	require.NoError(t, err)

	assert.Equal(t, "zeebe:26500", cfg.Camunda.BrokerAddress)
}

func TestLoadFromFile_Validation(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "missing broker",
			yaml:    "database: {postgres: {host: h, database: d, user: u}, redis: {address: r}}",
			wantErr: "camunda.broker_address",
		},
		{
			name:    "missing redis",
			yaml:    "camunda: {broker_address: b}\ndatabase: {postgres: {host: h, database: d, user: u}}",
			wantErr: "database.redis.address",
		},
		{
			name:    "unknown catalog source",
			yaml:    "camunda: {broker_address: b}\ndatabase: {postgres: {host: h, database: d, user: u}, redis: {address: r}}\ncatalog: {source: S3}",
			wantErr: `catalog.source "s3"`,
		},
		{
			name:    "file source without path",
			yaml:    "camunda: {broker_address: b}\ndatabase: {postgres: {host: h, database: d, user: u}, redis: {address: r}}\ncatalog: {source: file}",
			wantErr: "catalog.path",
		},
		{
			name:    "elasticsearch source without cluster",
			yaml:    "camunda: {broker_address: b}\ndatabase: {postgres: {host: h, database: d, user: u}, redis: {address: r}}\ncatalog: {source: elasticsearch}",
			wantErr: "database.elasticsearch",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearOverrides(t)
			_, err := LoadFromFile(writeConfig(t, tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadFromFile_Missing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestElasticsearchConfig_GetURL(t *testing.T) {
	assert.Equal(t, "http://es:9200", ElasticsearchConfig{URL: "http://es:9200", Addresses: []string{"http://other:9200"}}.GetURL())
	assert.Equal(t, "http://other:9200", ElasticsearchConfig{Addresses: []string{"http://other:9200"}}.GetURL())
	assert.False(t, ElasticsearchConfig{}.Enabled())
}

func TestPostgresConfig_GetDSN(t *testing.T) {
	dsn := PostgresConfig{Host: "db", Port: 5432, User: "u", Password: "p", Database: "approvals", SSLMode: "disable"}.GetDSN()
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=approvals sslmode=disable", dsn)
}
