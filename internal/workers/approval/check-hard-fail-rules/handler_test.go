// internal/workers/approval/check-hard-fail-rules/handler_test.go
package checkhardfailrules

import (
	"context"
	stderrors "errors"
	"testing"

	"approval-workers/internal/approval"
	"approval-workers/internal/common/errors"
	"approval-workers/internal/common/logger"
	"approval-workers/internal/common/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T) *Handler {
	return NewHandler(LoadConfig(), metrics.New(prometheus.NewRegistry()), logger.NewTestLogger(t))
}

func TestHandler_Execute(t *testing.T) {
	tests := []struct {
		name        string
		input       Input
		wantBlocked bool
		wantReasons []string
	}{
		{
			name: "clean applicant",
			input: Input{
				Personal: approval.PersonalCreditData{FicoScore: approval.Int(760), Citibank524Count: approval.Int(2)},
				Business: approval.BusinessCreditData{BusinessAnnualRevenue: approval.Float(120000), KYCPass: approval.Bool(true)},
			},
			wantReasons: []string{},
		},
		{
			name: "no revenue information",
			input: Input{
				Personal: approval.PersonalCreditData{FicoScore: approval.Int(760)},
			},
			wantBlocked: true,
			wantReasons: []string{approval.ReasonNoRevenue},
		},
	}

	h := newTestHandler(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := h.Execute(context.Background(), &tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.wantBlocked, out.Blocked)
			assert.Equal(t, tt.wantReasons, out.Reasons)
		})
	}
}

func TestHandler_Execute_MatchesGate(t *testing.T) {
	input := Input{
		Personal: approval.PersonalCreditData{
			Citibank524Count: approval.Int(5),
			BureauUnfrozen:   &approval.BureauStatus{Experian: approval.Bool(false)},
		},
		Business: approval.BusinessCreditData{KYCPass: approval.Bool(false)},
	}

	out, err := newTestHandler(t).Execute(context.Background(), &input)
	require.NoError(t, err)

	gate := approval.CheckHardFailConditions(input.Personal, input.Business)
	assert.True(t, out.Blocked)
	assert.Equal(t, gate.Reasons, out.Reasons)
}

func TestHandler_Decode(t *testing.T) {
	h := newTestHandler(t)

	input, err := h.Decode(`{"personal":{"ficoScore":702,"bureauUnfrozen":{"experian":true}},"business":{"businessType":"Corp","kycPass":true}}`)
	require.NoError(t, err)
	assert.Equal(t, 702, *input.Personal.FicoScore)
	assert.True(t, *input.Personal.BureauUnfrozen.Experian)
	assert.Equal(t, approval.BusinessTypeCorp, input.Business.BusinessType)

	_, err = h.Decode(`{"personal":`)
	assert.ErrorIs(t, err, errors.ErrParse)

	_, err = h.Decode(`{"personal":{"ficoScore":"excellent"}}`)
	assert.ErrorIs(t, err, errors.ErrInvalidInput)

	var stdErr *errors.StandardError
	require.True(t, stderrors.As(err, &stdErr))
	assert.Contains(t, stdErr.Details, "ficoScore")
}

func TestHandler_ErrorsLimitedToDeclaredCodes(t *testing.T) {
	h := newTestHandler(t)

	_, err := h.Decode(`{"personal":{"ficoScore":"high"}}`)
	require.ErrorIs(t, err, errors.ErrInvalidInput)
	assert.True(t, h.errors.Resolve(err, 3).Throw)

	outcome := h.errors.Resolve(errors.NewCardNotFoundError("citi-strata"), 3)
	assert.False(t, outcome.Throw)
	assert.Zero(t, outcome.Retries)
}
