// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ApplicantCheck is one cross-check between a declared attribute and the
// corresponding document-derived attribute.
type ApplicantCheck struct {
	// Field is the checked attribute: fullName, dateOfBirth,
	// passportNumber, or nationality.
	Field string `json:"field" yaml:"field"`

	Status CheckStatus `json:"status" yaml:"status"`

	// Detail is a human-readable explanation of the outcome.
	Detail string `json:"detail" yaml:"detail"`

	// Confidence (0-100) is taken from the source field's extraction
	// confidence, or derived from the similarity score for names.
	Confidence int `json:"confidence" yaml:"confidence"`
}

// ReportStatus is the overall verdict of a structured report.
type ReportStatus string

const (
	ReportVerified ReportStatus = "verified"
	ReportReview   ReportStatus = "review"
	ReportRejected ReportStatus = "rejected"
)

// StructuredReport is the final artifact of one analysis run. It is created
// once, never mutated, and serializes losslessly to JSON.
type StructuredReport struct {
	// RunID uniquely identifies the analysis run.
	RunID string `json:"run_id" yaml:"run_id"`

	// GeneratedAt is the report creation time (UTC).
	GeneratedAt time.Time `json:"generated_at" yaml:"generated_at"`

	// Applicant is the declared profile the run evaluated, for audit.
	Applicant ApplicantProfile `json:"applicant" yaml:"applicant"`

	// Summary is a one-paragraph plain-text summary.
	Summary string `json:"summary" yaml:"summary"`

	OverallStatus ReportStatus `json:"overall_status" yaml:"overall_status"`

	// OverallConfidence (0-100) summarizes how trustworthy the run is.
	OverallConfidence int `json:"overall_confidence" yaml:"overall_confidence"`

	// NextActions are recommended follow-ups, in priority order.
	NextActions []string `json:"next_actions" yaml:"next_actions"`

	// Extractions holds every processed document's extraction, for audit.
	Extractions []DocumentExtraction `json:"extractions" yaml:"extractions"`

	Eligibility EligibilityResult `json:"eligibility" yaml:"eligibility"`

	// Checks are the applicant cross-checks in their fixed order.
	Checks []ApplicantCheck `json:"checks" yaml:"checks"`

	// PolicyNote records a policy-default substitution when the supplied
	// policy configuration could not be parsed. Empty otherwise.
	PolicyNote string `json:"policy_note,omitempty" yaml:"policy_note,omitempty"`
}
