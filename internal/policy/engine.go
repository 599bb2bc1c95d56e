// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package policy

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/pdiddy/docucheck/internal/extract"
	"github.com/pdiddy/docucheck/pkg/types"
)

// Evaluate applies the policy rule for the applicant's visa type to the
// extracted documents. Evaluation is pure and deterministic for a fixed
// clock; Evaluate pins the clock to the current time.
func Evaluate(applicant types.ApplicantProfile, extractions []types.DocumentExtraction, pol types.Policy) types.EligibilityResult {
	return EvaluateAt(applicant, extractions, pol, time.Now().UTC())
}

// EvaluateAt is Evaluate with an explicit evaluation date, used for age
// and document-expiry arithmetic.
func EvaluateAt(applicant types.ApplicantProfile, extractions []types.DocumentExtraction, pol types.Policy, now time.Time) types.EligibilityResult {
	rule, source := pol.Rule(applicant.VisaType)
	best, hasBest := extract.Best(extractions)

	criteria := []types.CriterionResult{
		evalConfidence(rule, best, hasBest),
		evalRequiredFields(rule, best),
		evalAge(rule, applicant, best, now),
		evalExpiry(rule, best, now),
	}

	score := weightedScore(rule, criteria)
	return types.EligibilityResult{
		Decision:   decide(rule, pol.Thresholds, criteria, score),
		Score:      score,
		VisaType:   applicant.VisaType,
		RuleSource: source,
		Criteria:   criteria,
	}
}

func evalConfidence(rule types.PolicyRule, best types.DocumentExtraction, hasBest bool) types.CriterionResult {
	res := types.CriterionResult{Criterion: types.CriterionConfidence}
	if !hasBest {
		res.Status = types.StatusFail
		res.Rationale = fmt.Sprintf("no document could be processed; minimum extraction confidence is %d", rule.MinConfidence)
		return res
	}
	switch {
	case best.Confidence >= rule.MinConfidence:
		res.Status = types.StatusPass
		res.Rationale = fmt.Sprintf("extraction confidence %d meets minimum %d", best.Confidence, rule.MinConfidence)
	case best.Confidence >= rule.MinConfidence-10:
		res.Status = types.StatusWarning
		res.Rationale = fmt.Sprintf("extraction confidence %d is marginally below minimum %d", best.Confidence, rule.MinConfidence)
	default:
		res.Status = types.StatusFail
		res.Rationale = fmt.Sprintf("extraction confidence %d is below minimum %d", best.Confidence, rule.MinConfidence)
	}
	return res
}

func evalRequiredFields(rule types.PolicyRule, best types.DocumentExtraction) types.CriterionResult {
	res := types.CriterionResult{Criterion: types.CriterionRequiredFields}
	var missing []string
	for _, f := range rule.RequiredFields {
		if _, ok := best.Fields[f]; !ok {
			missing = append(missing, f)
		}
	}
	if len(missing) == 0 {
		res.Status = types.StatusPass
		res.Rationale = fmt.Sprintf("all %d required fields present", len(rule.RequiredFields))
		return res
	}
	sort.Strings(missing)
	res.Status = types.StatusFail
	res.Rationale = "missing required fields: " + strings.Join(missing, ", ")
	return res
}

func evalAge(rule types.PolicyRule, applicant types.ApplicantProfile, best types.DocumentExtraction, now time.Time) types.CriterionResult {
	res := types.CriterionResult{Criterion: types.CriterionAge}
	if rule.MinAge == 0 && rule.MaxAge == 0 {
		res.Status = types.StatusPass
		res.Rationale = "no age constraint configured"
		return res
	}

	// Prefer the document's birth date; fall back to the declared one.
	birth := applicant.DateOfBirth
	if fv, ok := best.Fields[types.FieldBirthDate]; ok {
		birth = fv.Value
	}
	t, err := time.Parse("2006-01-02", birth)
	if err != nil {
		res.Status = types.StatusWarning
		res.Rationale = "birth date unavailable; age could not be verified"
		return res
	}

	age := yearsBetween(t, now)
	switch {
	case age < rule.MinAge:
		res.Status = types.StatusFail
		res.Rationale = fmt.Sprintf("applicant age %d is below minimum %d", age, rule.MinAge)
	case rule.MaxAge > 0 && age > rule.MaxAge:
		res.Status = types.StatusFail
		res.Rationale = fmt.Sprintf("applicant age %d exceeds maximum %d", age, rule.MaxAge)
	default:
		res.Status = types.StatusPass
		res.Rationale = fmt.Sprintf("applicant age %d within bounds", age)
	}
	return res
}

func evalExpiry(rule types.PolicyRule, best types.DocumentExtraction, now time.Time) types.CriterionResult {
	res := types.CriterionResult{Criterion: types.CriterionExpiry}
	fv, ok := best.Fields[types.FieldExpiryDate]
	if !ok {
		res.Status = types.StatusWarning
		res.Rationale = "document expiry date unavailable"
		return res
	}
	t, err := time.Parse("2006-01-02", fv.Value)
	if err != nil {
		res.Status = types.StatusWarning
		res.Rationale = fmt.Sprintf("document expiry date %q unreadable", fv.Value)
		return res
	}

	days := int(t.Sub(now).Hours() / 24)
	switch {
	case days < 0:
		res.Status = types.StatusFail
		res.Rationale = fmt.Sprintf("document expired %d days ago", -days)
	case days < rule.MinValidityDays:
		res.Status = types.StatusWarning
		res.Rationale = fmt.Sprintf("document expires in %d days, below the %d-day lead time", days, rule.MinValidityDays)
	default:
		res.Status = types.StatusPass
		res.Rationale = fmt.Sprintf("document valid for %d more days", days)
	}
	return res
}

// weightedScore folds criterion outcomes into a 0-100 score: passes count
// full weight, warnings half, fails nothing.
func weightedScore(rule types.PolicyRule, criteria []types.CriterionResult) int {
	var sum, weightSum float64
	for _, c := range criteria {
		w := rule.Weight(c.Criterion)
		weightSum += w
		switch c.Status {
		case types.StatusPass:
			sum += w
		case types.StatusWarning:
			sum += w / 2
		}
	}
	if weightSum == 0 {
		return 0
	}
	return types.ClampConfidence(int(math.Round(100 * sum / weightSum)))
}

func decide(rule types.PolicyRule, th types.DecisionThresholds, criteria []types.CriterionResult, score int) types.Decision {
	anyFail, hardWarning := false, false
	for _, c := range criteria {
		switch c.Status {
		case types.StatusFail:
			if rule.IsHard(c.Criterion) {
				return types.Ineligible
			}
			anyFail = true
		case types.StatusWarning:
			// A warning on a hard criterion caps the decision at
			// conditionally-eligible.
			if rule.IsHard(c.Criterion) {
				hardWarning = true
			}
		}
	}
	switch {
	case !anyFail && !hardWarning && score >= th.Eligible:
		return types.Eligible
	case score >= th.Conditional:
		return types.ConditionallyEligible
	default:
		return types.Ineligible
	}
}

// yearsBetween returns whole years from birth to now.
func yearsBetween(birth, now time.Time) int {
	years := now.Year() - birth.Year()
	if now.Month() < birth.Month() ||
		(now.Month() == birth.Month() && now.Day() < birth.Day()) {
		years--
	}
	return years
}
