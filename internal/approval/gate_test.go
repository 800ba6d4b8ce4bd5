// internal/approval/gate_test.go
package approval

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckHardFailConditions(t *testing.T) {
	revenue := BusinessCreditData{BusinessAnnualRevenue: Float(120000)}

	tests := []struct {
		name     string
		personal PersonalCreditData
		business BusinessCreditData
		want     []string
	}{
		{
			name:     "clean applicant",
			personal: PersonalCreditData{Citibank524Count: Int(4), Citibank230Count: Int(1), CitibankBusiness130Count: Int(0)},
			business: revenue,
			want:     []string{},
		},
		{
			name:     "5/24 at threshold",
			personal: PersonalCreditData{Citibank524Count: Int(5)},
			business: revenue,
			want:     []string{Reason524},
		},
		{
			name:     "experian unfrozen",
			personal: PersonalCreditData{BureauUnfrozen: &BureauStatus{Experian: Bool(true)}},
			business: revenue,
			want:     []string{},
		},
		{
			name:     "experian status unknown",
			personal: PersonalCreditData{BureauUnfrozen: &BureauStatus{Equifax: Bool(false)}},
			business: revenue,
			want:     []string{},
		},
		{
			name:     "business age unknown",
			business: BusinessCreditData{BusinessAnnualRevenue: Float(1)},
			want:     []string{},
		},
		{
			name:     "business age 3 months passes",
			business: BusinessCreditData{BusinessAgeMonths: Int(3), BusinessAnnualRevenue: Float(1)},
			want:     []string{},
		},
		{
			name:     "zero revenue rescued by consistency",
			business: BusinessCreditData{BusinessAnnualRevenue: Float(0), MonthlyRevenueConsistency: Bool(true)},
			want:     []string{},
		},
		{
			name:     "zero revenue without consistency",
			business: BusinessCreditData{BusinessAnnualRevenue: Float(0)},
			want:     []string{ReasonNoRevenue},
		},
		{
			name:     "address mismatch",
			business: BusinessCreditData{BusinessAnnualRevenue: Float(1), AddressMatch: Bool(false), KYCPass: Bool(true)},
			want:     []string{ReasonKYCFailed},
		},
		{
			name: "every rule fires in order",
			personal: PersonalCreditData{
				Citibank524Count:         Int(7),
				Citibank230Count:         Int(2),
				CitibankBusiness130Count: Int(1),
				BureauUnfrozen:           &BureauStatus{Experian: Bool(false)},
			},
			business: BusinessCreditData{
				BusinessAgeMonths: Int(2),
				KYCPass:           Bool(false),
			},
			want: []string{
				Reason524,
				Reason230,
				ReasonBusiness130,
				ReasonExperianFrozen,
				ReasonBusinessTooNew,
				ReasonNoRevenue,
				ReasonKYCFailed,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CheckHardFailConditions(tt.personal, tt.business)

			assert.Equal(t, tt.want, got.Reasons)
			assert.Equal(t, len(tt.want) > 0, got.Blocked)
		})
	}
}
