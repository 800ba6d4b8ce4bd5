// internal/extractor/extractor_test.go
package extractor

import (
	"encoding/json"
	"testing"
	"time"

	"approval-workers/internal/approval"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const reportJSON = `{
	"businessId": "b-1",
	"creditScore": 742,
	"data": {
		"scoreInformation": {
			"commercialScore": {"score": 0},
			"fsrScore": {"score": 64}
		},
		"expandedCreditSummary": {
			"currentAccountBalance": 2500,
			"allTradelineBalance": 10000
		},
		"inquiries": [
			{"date": "2026-10-01"},
			{"inquiryDate": "2026-08-15T10:00:00Z"},
			{"date": "2026-01-01"},
			{"date": "not a date"}
		]
	}
}`

const profileJSON = `{
	"data": {
		"id": "user-1",
		"business": [
			{"id": "b-1", "name": "Acme", "type": "LLC", "einVerified": true},
			{"id": "b-2", "type": "Corp"}
		]
	}
}`

func TestExtractApprovalDataAt(t *testing.T) {
	var report ExperianReport
	var profile ProfileResponse
	require.NoError(t, json.Unmarshal([]byte(reportJSON), &report))
	require.NoError(t, json.Unmarshal([]byte(profileJSON), &profile))

	asOf := time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)
	a := ExtractApprovalDataAt(&profile, &report, nil, asOf)

	require.NotNil(t, a.Personal.FicoScore)
	assert.Equal(t, 742, *a.Personal.FicoScore)
	assert.Equal(t, 742, *a.Personal.ExperianFico8)
	require.NotNil(t, a.Personal.Utilization)
	assert.InDelta(t, 25.0, *a.Personal.Utilization, 1e-9)
	require.NotNil(t, a.Personal.RecentHardInquiries90Days)
	assert.Equal(t, 2, *a.Personal.RecentHardInquiries90Days)

	require.NotNil(t, a.Business.Intelliscore)
	assert.Equal(t, 64, *a.Business.Intelliscore)
	assert.Equal(t, approval.BusinessTypeLLC, a.Business.BusinessType)
	assert.True(t, *a.Business.EINVerified)

	// Not derivable from these payloads.
	assert.Nil(t, a.Personal.Citibank524Count)
	assert.Nil(t, a.Personal.PastCitibankRelationship)
	assert.Nil(t, a.Personal.BureauUnfrozen)
	assert.Nil(t, a.Business.BusinessAgeMonths)
	assert.Nil(t, a.Business.BusinessAnnualRevenue)
	assert.Nil(t, a.Business.KYCPass)
	assert.Empty(t, a.Business.NAICSIndustryRiskTier)
	assert.Equal(t, approval.SpendProfile{}, a.Spend)
}

func TestExtractApprovalData_EmptyPayloads(t *testing.T) {
	a := ExtractApprovalData(nil, nil, nil)

	assert.Equal(t, Applicant{}, a)
}

func TestExtractApprovalData_ScoreFallbacks(t *testing.T) {
	tests := []struct {
		name   string
		report ExperianReport
		want   *int
	}{
		{"credit score preferred", ExperianReport{CreditScore: approval.Float(700), Score: approval.Float(650)}, approval.Int(700)},
		{"score fallback", ExperianReport{Score: approval.Float(650)}, approval.Int(650)},
		{"zero is absent", ExperianReport{CreditScore: approval.Float(0)}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := ExtractApprovalData(nil, &tt.report, nil)
			assert.Equal(t, tt.want, a.Personal.FicoScore)
		})
	}
}

func TestExtractApprovalData_NoInquiryList(t *testing.T) {
	report := ExperianReport{Data: &ExperianData{}}

	a := ExtractApprovalData(nil, &report, nil)

	assert.Nil(t, a.Personal.RecentHardInquiries90Days)
	assert.Nil(t, a.Personal.Utilization)
}

func TestBusinessType(t *testing.T) {
	assert.Equal(t, approval.BusinessTypeCorp, businessType("Corporation"))
	assert.Equal(t, approval.BusinessTypeSoleProp, businessType(" sole prop "))
	assert.Equal(t, approval.BusinessType(""), businessType("partnership"))
}

func TestPrimaryBusinessID(t *testing.T) {
	var profile ProfileResponse
	require.NoError(t, json.Unmarshal([]byte(profileJSON), &profile))

	assert.Equal(t, "b-1", PrimaryBusinessID(&profile))
	assert.Equal(t, "", PrimaryBusinessID(nil))
}
