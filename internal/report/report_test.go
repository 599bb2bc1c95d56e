package report

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/pdiddy/docucheck/pkg/types"
)

func baseParams() Params {
	return Params{
		RunID:       "run-test-1",
		GeneratedAt: time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC),
		Applicant:   types.ApplicantProfile{Surname: "Doe", GivenNames: "Jane", VisaType: "tourist"},
		Extractions: []types.DocumentExtraction{{
			DocumentID: "doc-1",
			Confidence: 90,
			Fields: map[string]types.FieldValue{
				types.FieldSurname: {Value: "DOE", Confidence: 90},
			},
		}},
		Eligibility: types.EligibilityResult{
			Decision: types.Eligible,
			Score:    100,
			VisaType: "tourist",
			Criteria: []types.CriterionResult{
				{Criterion: types.CriterionConfidence, Status: types.StatusPass, Rationale: "ok"},
			},
		},
		Checks: []types.ApplicantCheck{
			{Field: "fullName", Status: types.StatusPass, Detail: "match", Confidence: 95},
		},
	}
}

func TestBuildVerified(t *testing.T) {
	rep := Build(baseParams())
	if rep.OverallStatus != types.ReportVerified {
		t.Errorf("OverallStatus = %s, want verified", rep.OverallStatus)
	}
	if rep.OverallConfidence < 80 || rep.OverallConfidence > 100 {
		t.Errorf("OverallConfidence = %d, want high for a clean run", rep.OverallConfidence)
	}
	if len(rep.NextActions) == 0 {
		t.Fatal("NextActions empty; want the closing action")
	}
	if rep.Summary == "" {
		t.Error("Summary empty")
	}
}

func TestBuildStatusEscalation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *Params)
		want   types.ReportStatus
	}{
		{
			name:   "check warning forces review",
			mutate: func(p *Params) { p.Checks[0].Status = types.StatusWarning },
			want:   types.ReportReview,
		},
		{
			name:   "criterion warning forces review",
			mutate: func(p *Params) { p.Eligibility.Criteria[0].Status = types.StatusWarning },
			want:   types.ReportReview,
		},
		{
			name:   "policy substitution forces review",
			mutate: func(p *Params) { p.PolicyNote = "parsing policy: bad yaml" },
			want:   types.ReportReview,
		},
		{
			name:   "conditional eligibility forces review",
			mutate: func(p *Params) { p.Eligibility.Decision = types.ConditionallyEligible },
			want:   types.ReportReview,
		},
		{
			name:   "check failure rejects",
			mutate: func(p *Params) { p.Checks[0].Status = types.StatusFail },
			want:   types.ReportRejected,
		},
		{
			name:   "ineligible decision rejects",
			mutate: func(p *Params) { p.Eligibility.Decision = types.Ineligible },
			want:   types.ReportRejected,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := baseParams()
			tt.mutate(&p)
			if got := Build(p).OverallStatus; got != tt.want {
				t.Errorf("OverallStatus = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestBuildConfidenceClamped(t *testing.T) {
	p := baseParams()
	p.Extractions[0].Confidence = 250
	p.Checks[0].Confidence = -10
	rep := Build(p)
	if rep.OverallConfidence < 0 || rep.OverallConfidence > 100 {
		t.Errorf("OverallConfidence = %d, out of [0,100]", rep.OverallConfidence)
	}

	p = baseParams()
	p.Extractions = nil
	if got := Build(p).OverallConfidence; got != 0 {
		t.Errorf("OverallConfidence with no extractions = %d, want 0", got)
	}
}

func TestBuildActionOrder(t *testing.T) {
	p := baseParams()
	p.PolicyNote = "parsing policy: bad yaml"
	p.Checks = append(p.Checks, types.ApplicantCheck{
		Field: "nationality", Status: types.StatusWarning, Detail: "differs", Confidence: 60,
	})
	rep := Build(p)

	if len(rep.NextActions) < 3 {
		t.Fatalf("NextActions = %v, want policy action, check action, closing action", rep.NextActions)
	}
	if got := rep.NextActions[0]; !strings.Contains(got, "policy configuration") {
		t.Errorf("NextActions[0] = %q, want the policy substitution first", got)
	}
	if got := rep.NextActions[1]; !strings.Contains(got, "nationality") {
		t.Errorf("NextActions[1] = %q, want the check follow-up second", got)
	}
}

func TestReportSerializesLosslessly(t *testing.T) {
	rep := Build(baseParams())

	data, err := json.Marshal(rep)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back types.StructuredReport
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !reflect.DeepEqual(*rep, back) {
		t.Errorf("round trip changed the report:\n  out: %+v\n  back: %+v", *rep, back)
	}
}
