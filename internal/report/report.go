// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report assembles the final StructuredReport of an analysis run
// from the extraction, eligibility, and cross-check stages. The report is
// the sole externally consumed artifact; it is built once and never
// mutated afterwards.
package report

import (
	"fmt"
	"math"
	"time"

	"github.com/pdiddy/docucheck/internal/extract"
	"github.com/pdiddy/docucheck/pkg/types"
)

// Confidence blend weights: the best document carries most of the
// signal, the eligibility score and cross-checks the rest.
const (
	weightExtraction = 0.5
	weightScore      = 0.3
	weightChecks     = 0.2
)

// Params collects the inputs to Build.
type Params struct {
	RunID       string
	GeneratedAt time.Time
	Applicant   types.ApplicantProfile
	Extractions []types.DocumentExtraction
	Eligibility types.EligibilityResult
	Checks      []types.ApplicantCheck

	// PolicyNote is the substitution reason when the configured policy
	// was replaced by the built-in default, empty otherwise.
	PolicyNote string
}

// Build assembles the structured report.
func Build(p Params) *types.StructuredReport {
	status := overallStatus(p)
	return &types.StructuredReport{
		RunID:             p.RunID,
		GeneratedAt:       p.GeneratedAt.UTC(),
		Applicant:         p.Applicant,
		Summary:           summary(p, status),
		OverallStatus:     status,
		OverallConfidence: overallConfidence(p),
		NextActions:       nextActions(p, status),
		Extractions:       p.Extractions,
		Eligibility:       p.Eligibility,
		Checks:            p.Checks,
		PolicyNote:        p.PolicyNote,
	}
}

func overallStatus(p Params) types.ReportStatus {
	if p.Eligibility.Decision == types.Ineligible {
		return types.ReportRejected
	}
	for _, c := range p.Checks {
		if c.Status == types.StatusFail {
			return types.ReportRejected
		}
	}

	if p.Eligibility.Decision == types.ConditionallyEligible || p.PolicyNote != "" {
		return types.ReportReview
	}
	for _, c := range p.Checks {
		if c.Status == types.StatusWarning {
			return types.ReportReview
		}
	}
	for _, c := range p.Eligibility.Criteria {
		if c.Status == types.StatusWarning {
			return types.ReportReview
		}
	}
	return types.ReportVerified
}

func overallConfidence(p Params) int {
	best, ok := extract.Best(p.Extractions)
	if !ok {
		return 0
	}

	extractionPart := weightExtraction * float64(best.Confidence)
	scorePart := weightScore * float64(p.Eligibility.Score)

	if len(p.Checks) == 0 {
		// No comparable attributes: redistribute the check weight onto
		// the extraction signal.
		total := (weightExtraction+weightChecks)*float64(best.Confidence) + scorePart
		return types.ClampConfidence(int(math.Round(total)))
	}

	sum := 0
	for _, c := range p.Checks {
		sum += c.Confidence
	}
	checkPart := weightChecks * float64(sum) / float64(len(p.Checks))
	return types.ClampConfidence(int(math.Round(extractionPart + scorePart + checkPart)))
}

func summary(p Params, status types.ReportStatus) string {
	processed := len(p.Extractions)
	return fmt.Sprintf("Applicant %s, visa type %q: %s (score %d) across %d processed document(s); overall status %s.",
		p.Applicant.DeclaredFullName(), p.Eligibility.VisaType, p.Eligibility.Decision,
		p.Eligibility.Score, processed, status)
}

// nextActions derives the recommended follow-ups in priority order:
// configuration problems first, then per-check and per-criterion issues
// in their stable stage order, then the closing action for the status.
func nextActions(p Params, status types.ReportStatus) []string {
	var actions []string

	if p.PolicyNote != "" {
		actions = append(actions, "Review policy configuration: built-in default policy was substituted ("+p.PolicyNote+")")
	}
	for _, c := range p.Checks {
		switch c.Status {
		case types.StatusFail:
			actions = append(actions, fmt.Sprintf("Investigate %s mismatch: %s", c.Field, c.Detail))
		case types.StatusWarning:
			actions = append(actions, fmt.Sprintf("Confirm %s with the applicant: %s", c.Field, c.Detail))
		}
	}
	for _, c := range p.Eligibility.Criteria {
		switch c.Status {
		case types.StatusFail:
			actions = append(actions, fmt.Sprintf("Resolve failed criterion %s: %s", c.Criterion, c.Rationale))
		case types.StatusWarning:
			actions = append(actions, fmt.Sprintf("Check criterion %s: %s", c.Criterion, c.Rationale))
		}
	}

	switch status {
	case types.ReportVerified:
		actions = append(actions, "Proceed with application processing")
	case types.ReportReview:
		actions = append(actions, "Route application to manual review")
	case types.ReportRejected:
		actions = append(actions, "Request corrected documents or reject the application")
	}
	return actions
}
