// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// CheckStatus is the outcome of a single criterion or cross-check.
type CheckStatus string

const (
	StatusPass    CheckStatus = "pass"
	StatusWarning CheckStatus = "warning"
	StatusFail    CheckStatus = "fail"
)

// Decision is the eligibility outcome for an applicant.
type Decision string

const (
	Eligible              Decision = "eligible"
	ConditionallyEligible Decision = "conditionally-eligible"
	Ineligible            Decision = "ineligible"
)

// Criterion identifiers used in rules and evaluations.
const (
	CriterionConfidence     = "minimum_confidence"
	CriterionRequiredFields = "required_fields"
	CriterionAge            = "age"
	CriterionExpiry         = "document_expiry"
)

// PolicyRule is the eligibility rule for one visa type.
type PolicyRule struct {
	// RequiredFields lists extraction fields that must be present.
	RequiredFields []string `json:"required_fields" yaml:"required_fields"`

	// MinConfidence is the minimum aggregate extraction confidence (0-100).
	MinConfidence int `json:"min_confidence" yaml:"min_confidence"`

	// MinAge and MaxAge bound the applicant's age in years. Zero means
	// unbounded on that side.
	MinAge int `json:"min_age" yaml:"min_age"`
	MaxAge int `json:"max_age" yaml:"max_age"`

	// MinValidityDays is the minimum number of days the travel document
	// must remain valid past the evaluation date.
	MinValidityDays int `json:"min_validity_days" yaml:"min_validity_days"`

	// Weights maps criterion identifiers to their contribution to the
	// eligibility score. Criteria absent from the map use weight 1.
	Weights map[string]float64 `json:"weights,omitempty" yaml:"weights,omitempty"`

	// Hard lists criteria whose failure forces an ineligible decision.
	Hard []string `json:"hard,omitempty" yaml:"hard,omitempty"`
}

// Weight returns the configured weight for a criterion, defaulting to 1.
func (r PolicyRule) Weight(criterion string) float64 {
	if w, ok := r.Weights[criterion]; ok && w > 0 {
		return w
	}
	return 1
}

// IsHard reports whether a criterion failure forces ineligibility.
func (r PolicyRule) IsHard(criterion string) bool {
	for _, h := range r.Hard {
		if h == criterion {
			return true
		}
	}
	return false
}

// DecisionThresholds are the score cut-offs for the decision bands.
type DecisionThresholds struct {
	// Eligible is the minimum score (0-100) for an eligible decision.
	Eligible int `json:"eligible" yaml:"eligible"`

	// Conditional is the minimum score for conditionally-eligible.
	Conditional int `json:"conditional" yaml:"conditional"`
}

// Policy maps visa types to eligibility rules. The Default rule applies to
// any visa type without an entry in VisaTypes.
type Policy struct {
	Default    PolicyRule            `json:"default" yaml:"default"`
	VisaTypes  map[string]PolicyRule `json:"visa_types" yaml:"visa_types"`
	Thresholds DecisionThresholds    `json:"thresholds" yaml:"thresholds"`
}

// Rule returns the rule for a visa type and the key it resolved to
// ("default" when the visa type has no dedicated rule).
func (p Policy) Rule(visaType string) (PolicyRule, string) {
	if r, ok := p.VisaTypes[visaType]; ok {
		return r, visaType
	}
	return p.Default, "default"
}

// CriterionResult is one evaluated criterion with its rationale.
type CriterionResult struct {
	Criterion string      `json:"criterion" yaml:"criterion"`
	Status    CheckStatus `json:"status" yaml:"status"`
	Rationale string      `json:"rationale" yaml:"rationale"`
}

// EligibilityResult is the outcome of evaluating a policy rule against an
// applicant and the extracted documents.
type EligibilityResult struct {
	// Decision is the eligibility outcome.
	Decision Decision `json:"decision" yaml:"decision"`

	// Score is the weighted criterion score (0-100).
	Score int `json:"score" yaml:"score"`

	// VisaType is the visa type the applicant applied for.
	VisaType string `json:"visa_type" yaml:"visa_type"`

	// RuleSource is the policy key the rule came from (a visa type or
	// "default").
	RuleSource string `json:"rule_source" yaml:"rule_source"`

	// Criteria are the individual evaluations, in evaluation order.
	Criteria []CriterionResult `json:"criteria" yaml:"criteria"`
}
