// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package policy loads visa eligibility policies and evaluates applicants
// against them. A policy is a YAML document keyed by visa type with a
// mandatory fallback rule; a document that cannot be parsed is replaced by
// the built-in default policy through an explicit substitution record, so
// the caller always knows which rules produced a decision.
package policy

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/docucheck/pkg/types"
)

// Built-in decision thresholds, applied when a policy leaves them unset.
const (
	defaultEligibleThreshold    = 75
	defaultConditionalThreshold = 45
)

// Substitution records that the supplied policy was replaced by the
// built-in default, and why. Callers surface this to the user; it is
// never swallowed internally.
type Substitution struct {
	Reason string
}

// Default returns the built-in eligibility policy used when no
// configuration is supplied or the supplied one is malformed.
func Default() types.Policy {
	return types.Policy{
		Default: types.PolicyRule{
			RequiredFields:  []string{types.FieldDocumentNumber, types.FieldNationality},
			MinConfidence:   50,
			MinValidityDays: 90,
			Weights: map[string]float64{
				types.CriterionConfidence:     3,
				types.CriterionRequiredFields: 2,
				types.CriterionAge:            1,
				types.CriterionExpiry:         2,
			},
			Hard: []string{types.CriterionConfidence, types.CriterionRequiredFields},
		},
		VisaTypes: map[string]types.PolicyRule{
			"tourist": {
				RequiredFields:  []string{types.FieldDocumentNumber, types.FieldNationality, types.FieldBirthDate},
				MinConfidence:   60,
				MinAge:          18,
				MinValidityDays: 90,
				Weights: map[string]float64{
					types.CriterionConfidence:     3,
					types.CriterionRequiredFields: 2,
					types.CriterionAge:            1,
					types.CriterionExpiry:         2,
				},
				Hard: []string{types.CriterionConfidence, types.CriterionRequiredFields},
			},
			"student": {
				RequiredFields:  []string{types.FieldDocumentNumber, types.FieldNationality, types.FieldBirthDate},
				MinConfidence:   60,
				MinAge:          16,
				MinValidityDays: 180,
				Weights: map[string]float64{
					types.CriterionConfidence:     3,
					types.CriterionRequiredFields: 2,
					types.CriterionAge:            2,
					types.CriterionExpiry:         2,
				},
				Hard: []string{types.CriterionConfidence, types.CriterionRequiredFields},
			},
			"work": {
				RequiredFields:  []string{types.FieldDocumentNumber, types.FieldNationality, types.FieldBirthDate, types.FieldExpiryDate},
				MinConfidence:   70,
				MinAge:          18,
				MinValidityDays: 180,
				Weights: map[string]float64{
					types.CriterionConfidence:     3,
					types.CriterionRequiredFields: 3,
					types.CriterionAge:            2,
					types.CriterionExpiry:         3,
				},
				Hard: []string{types.CriterionConfidence, types.CriterionRequiredFields, types.CriterionExpiry},
			},
		},
		Thresholds: types.DecisionThresholds{
			Eligible:    defaultEligibleThreshold,
			Conditional: defaultConditionalThreshold,
		},
	}
}

// Load parses and validates a policy document. It is the strict form:
// callers that need the recoverable behavior use LoadOrDefault.
func Load(data []byte) (types.Policy, error) {
	var p types.Policy
	if err := yaml.Unmarshal(data, &p); err != nil {
		return types.Policy{}, fmt.Errorf("parsing policy: %w", err)
	}
	if err := validate(&p); err != nil {
		return types.Policy{}, fmt.Errorf("invalid policy: %w", err)
	}
	return p, nil
}

// LoadOrDefault parses a policy document, substituting the built-in
// default when parsing or validation fails. The substitution is returned
// explicitly rather than signalled through logging, so the interface
// layer can decide how to warn the user.
func LoadOrDefault(data []byte) (types.Policy, *Substitution) {
	p, err := Load(data)
	if err != nil {
		return Default(), &Substitution{Reason: err.Error()}
	}
	return p, nil
}

// LoadFile reads and parses a policy file with the recoverable behavior
// of LoadOrDefault. An empty path selects the built-in default without a
// substitution record.
func LoadFile(path string) (types.Policy, *Substitution) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Default(), &Substitution{Reason: fmt.Sprintf("reading policy file: %v", err)}
	}
	return LoadOrDefault(data)
}

// knownCriteria guards against typos in weight and hard-criterion keys.
var knownCriteria = map[string]bool{
	types.CriterionConfidence:     true,
	types.CriterionRequiredFields: true,
	types.CriterionAge:            true,
	types.CriterionExpiry:         true,
}

func validate(p *types.Policy) error {
	if len(p.Default.RequiredFields) == 0 && p.Default.MinConfidence == 0 && len(p.VisaTypes) == 0 {
		return fmt.Errorf("policy defines no rules and no default")
	}

	rules := map[string]types.PolicyRule{"default": p.Default}
	for vt, r := range p.VisaTypes {
		rules[vt] = r
	}
	for key, r := range rules {
		if r.MinConfidence < 0 || r.MinConfidence > 100 {
			return fmt.Errorf("rule %q: min_confidence %d outside [0,100]", key, r.MinConfidence)
		}
		if r.MinAge < 0 || r.MaxAge < 0 || (r.MaxAge > 0 && r.MinAge > r.MaxAge) {
			return fmt.Errorf("rule %q: invalid age bounds [%d,%d]", key, r.MinAge, r.MaxAge)
		}
		if r.MinValidityDays < 0 {
			return fmt.Errorf("rule %q: negative min_validity_days", key)
		}
		for c := range r.Weights {
			if !knownCriteria[c] {
				return fmt.Errorf("rule %q: unknown criterion %q in weights", key, c)
			}
		}
		for _, c := range r.Hard {
			if !knownCriteria[c] {
				return fmt.Errorf("rule %q: unknown criterion %q in hard list", key, c)
			}
		}
	}

	// Unset thresholds take the built-in values.
	if p.Thresholds.Eligible == 0 {
		p.Thresholds.Eligible = defaultEligibleThreshold
	}
	if p.Thresholds.Conditional == 0 {
		p.Thresholds.Conditional = defaultConditionalThreshold
	}
	if p.Thresholds.Eligible > 100 || p.Thresholds.Conditional > p.Thresholds.Eligible {
		return fmt.Errorf("thresholds: conditional %d must not exceed eligible %d (max 100)",
			p.Thresholds.Conditional, p.Thresholds.Eligible)
	}
	return nil
}
