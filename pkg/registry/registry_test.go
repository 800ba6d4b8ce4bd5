// pkg/registry/registry_test.go
package registry

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	reg := Default()
	require.Len(t, reg.Activities, 3)

	for _, taskType := range []string{"check-hard-fail-rules", "calculate-approval-likelihood", "rank-card-recommendations"} {
		a, ok := reg.Activity(taskType)
		require.True(t, ok, taskType)
		assert.True(t, a.DeclaresError("PARSE_ERROR"))
		assert.True(t, a.DeclaresError("INVALID_INPUT"))
	}

	rank := reg.MustActivity("rank-card-recommendations")
	d, err := rank.TimeoutDuration()
	require.NoError(t, err)
	assert.Equal(t, 15*time.Second, d)
	assert.True(t, rank.DeclaresError("SNAPSHOT_LOAD_FAILED"))

	_, ok := reg.Activity("send-email")
	assert.False(t, ok)
	assert.Panics(t, func() { reg.MustActivity("send-email") })
}

func TestValidateInput(t *testing.T) {
	tests := []struct {
		name     string
		taskType string
		vars     string
		valid    bool
	}{
		{"gate empty object", "check-hard-fail-rules", `{}`, true},
		{"gate typed fields", "check-hard-fail-rules", `{"personal":{"ficoScore":720,"bureauUnfrozen":{"experian":true}},"business":{"businessType":"LLC"}}`, true},
		{"gate wrong type", "check-hard-fail-rules", `{"personal":{"ficoScore":"high"}}`, false},
		{"gate bad nested ref", "check-hard-fail-rules", `{"personal":{"bureauUnfrozen":{"experian":"yes"}}}`, false},
		{"gate unknown business type", "check-hard-fail-rules", `{"business":{"businessType":"Partnership"}}`, false},
		{"calculate by id", "calculate-approval-likelihood", `{"cardId":"citi-business-cash"}`, true},
		{"calculate inline", "calculate-approval-likelihood", `{"cardProfile":{"cardName":"X","difficultyRating":"Hard"}}`, true},
		{"calculate both", "calculate-approval-likelihood", `{"cardId":"a","cardProfile":{"cardName":"X"}}`, false},
		{"calculate bad difficulty", "calculate-approval-likelihood", `{"cardProfile":{"cardName":"X","difficultyRating":"Brutal"}}`, false},
		{"rank business id", "rank-card-recommendations", `{"businessId":"b-1"}`, true},
		{"rank payloads", "rank-card-recommendations", `{"experianReport":{"creditScore":700}}`, true},
		{"rank nothing", "rank-card-recommendations", `{"candidates":["a"]}`, false},
	}

	reg := Default()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := reg.MustActivity(tt.taskType).ValidateInput([]byte(tt.vars))
			require.NoError(t, err)
			assert.Equal(t, tt.valid, res.Valid, res.Summary())
		})
	}
}

func TestValidateInput_NotJSON(t *testing.T) {
	_, err := Default().MustActivity("check-hard-fail-rules").ValidateInput([]byte(`{"personal":`))
	assert.Error(t, err)
}

func TestLoadRegistry(t *testing.T) {
	dir := t.TempDir()

	valid := filepath.Join(dir, "valid.json")
	require.NoError(t, os.WriteFile(valid, []byte(`{"version":"1","activities":[{"id":"a","taskType":"a","timeout":"2s"}]}`), 0o600))
	reg, err := LoadRegistry(valid)
	require.NoError(t, err)
	res, err := reg.MustActivity("a").ValidateInput([]byte(`{"anything":1}`))
	require.NoError(t, err)
	assert.True(t, res.Valid)

	dup := filepath.Join(dir, "dup.json")
	require.NoError(t, os.WriteFile(dup, []byte(`{"activities":[{"id":"a","taskType":"a"},{"id":"b","taskType":"a"}]}`), 0o600))
	_, err = LoadRegistry(dup)
	assert.ErrorContains(t, err, "duplicate taskType")

	badTimeout := filepath.Join(dir, "timeout.json")
	require.NoError(t, os.WriteFile(badTimeout, []byte(`{"activities":[{"id":"a","taskType":"a","timeout":"soon"}]}`), 0o600))
	_, err = LoadRegistry(badTimeout)
	assert.ErrorContains(t, err, "invalid timeout")

	_, err = LoadRegistry(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}
