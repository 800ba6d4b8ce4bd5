// internal/extractor/extractor.go
package extractor

import (
	"math"
	"strings"
	"time"

	"approval-workers/internal/approval"
)

const inquiryWindow = 90 * 24 * time.Hour

var inquiryDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Applicant is the calculator input derived from upstream payloads.
type Applicant struct {
	Personal approval.PersonalCreditData `json:"personal"`
	Business approval.BusinessCreditData `json:"business"`
	Spend    approval.SpendProfile       `json:"spend"`
}

// ExtractApprovalData maps upstream payloads into calculator inputs as of now.
func ExtractApprovalData(profile *ProfileResponse, report *ExperianReport, recs *RecommendationsResponse) Applicant {
	return ExtractApprovalDataAt(profile, report, recs, time.Now())
}

// ExtractApprovalDataAt is ExtractApprovalData with an explicit reference time
// for the inquiry window. Anything the payloads do not carry is left nil.
// The recommendation list carries no applicant attributes today; it is part of
// the signature so callers hand over everything they fetched.
func ExtractApprovalDataAt(profile *ProfileResponse, report *ExperianReport, _ *RecommendationsResponse, asOf time.Time) Applicant {
	var a Applicant

	if report != nil {
		if fico := personalScore(report); fico != nil {
			a.Personal.FicoScore = fico
			a.Personal.ExperianFico8 = approval.Int(*fico)
		}
		if report.Data != nil {
			a.Personal.Utilization = utilization(report.Data.ExpandedCreditSummary)
			a.Personal.RecentHardInquiries90Days = recentInquiries(report.Data.Inquiries, asOf)
			a.Business.Intelliscore = businessScore(report.Data.ScoreInformation)
		}
	}

	if rec := primaryBusiness(profile); rec != nil {
		a.Business.BusinessType = businessType(rec.Type)
		a.Business.EINVerified = rec.EINVerified
	}

	return a
}

// PrimaryBusinessID returns the id of the first business on the profile.
func PrimaryBusinessID(profile *ProfileResponse) string {
	if rec := primaryBusiness(profile); rec != nil {
		return rec.ID
	}
	return ""
}

func primaryBusiness(profile *ProfileResponse) *BusinessRecord {
	if profile == nil || profile.Data == nil || len(profile.Data.Business) == 0 {
		return nil
	}
	return &profile.Data.Business[0]
}

func personalScore(report *ExperianReport) *int {
	for _, v := range []*float64{report.CreditScore, report.Score} {
		if v != nil && *v > 0 {
			return approval.Int(int(math.Round(*v)))
		}
	}
	return nil
}

func businessScore(info *ScoreInformation) *int {
	if info == nil {
		return nil
	}
	for _, s := range []*ScoreValue{info.CommercialScore, info.FSRScore} {
		if s != nil && s.Score != nil && *s.Score > 0 {
			return approval.Int(int(math.Round(*s.Score)))
		}
	}
	return nil
}

func utilization(summary *CreditSummary) *float64 {
	if summary == nil || summary.CurrentAccountBalance == nil || summary.AllTradelineBalance == nil {
		return nil
	}
	if *summary.CurrentAccountBalance == 0 || *summary.AllTradelineBalance == 0 {
		return nil
	}
	return approval.Float(*summary.CurrentAccountBalance / *summary.AllTradelineBalance * 100)
}

// recentInquiries counts inquiries dated inside the trailing window. Entries
// with unparseable dates are skipped. A report without an inquiry list yields nil.
func recentInquiries(inquiries []Inquiry, asOf time.Time) *int {
	if inquiries == nil {
		return nil
	}
	cutoff := asOf.Add(-inquiryWindow)
	count := 0
	for _, inq := range inquiries {
		raw := inq.Date
		if raw == "" {
			raw = inq.InquiryDate
		}
		if at, ok := parseInquiryDate(raw); ok && !at.Before(cutoff) {
			count++
		}
	}
	return approval.Int(count)
}

func parseInquiryDate(raw string) (time.Time, bool) {
	for _, layout := range inquiryDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func businessType(raw string) approval.BusinessType {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "llc":
		return approval.BusinessTypeLLC
	case "corp", "corporation", "c-corp", "s-corp":
		return approval.BusinessTypeCorp
	case "sole prop", "sole proprietorship", "sole_prop":
		return approval.BusinessTypeSoleProp
	}
	return ""
}
