// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/docucheck/pkg/types"
)

const validPolicyYAML = `
default:
  required_fields: [documentNumber]
  min_confidence: 40
visa_types:
  tourist:
    required_fields: [documentNumber, nationality]
    min_confidence: 65
    min_age: 18
    min_validity_days: 120
    weights:
      minimum_confidence: 3
      document_expiry: 2
    hard: [minimum_confidence]
thresholds:
  eligible: 80
  conditional: 50
`

func TestLoadValidPolicy(t *testing.T) {
	p, err := Load([]byte(validPolicyYAML))
	require.NoError(t, err)

	assert.Equal(t, 40, p.Default.MinConfidence)
	assert.Equal(t, 80, p.Thresholds.Eligible)

	tourist, source := p.Rule("tourist")
	assert.Equal(t, "tourist", source)
	assert.Equal(t, 65, tourist.MinConfidence)
	assert.Equal(t, float64(3), tourist.Weight(types.CriterionConfidence))
	assert.Equal(t, float64(1), tourist.Weight(types.CriterionAge), "unconfigured criteria default to weight 1")
	assert.True(t, tourist.IsHard(types.CriterionConfidence))
	assert.False(t, tourist.IsHard(types.CriterionExpiry))

	_, source = p.Rule("diplomatic")
	assert.Equal(t, "default", source, "unknown visa types resolve to the fallback rule")
}

func TestLoadRejectsInvalidPolicies(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"malformed yaml", "default: [unclosed"},
		{"not a mapping", "- a\n- b"},
		{"no rules at all", "thresholds:\n  eligible: 80"},
		{"confidence out of range", "default:\n  min_confidence: 150"},
		{"unknown weight criterion", "default:\n  min_confidence: 50\n  weights:\n    frequent_flyer: 2"},
		{"unknown hard criterion", "default:\n  min_confidence: 50\n  hard: [vibes]"},
		{"inverted age bounds", "default:\n  min_confidence: 50\n  min_age: 60\n  max_age: 18"},
		{"inverted thresholds", "default:\n  min_confidence: 50\nthresholds:\n  eligible: 40\n  conditional: 60"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoadOrDefaultSubstitutes(t *testing.T) {
	p, sub := LoadOrDefault([]byte("default: [this is not\na rule"))
	require.NotNil(t, sub, "malformed policy must produce an explicit substitution")
	assert.NotEmpty(t, sub.Reason)
	assert.Equal(t, Default(), p)
}

func TestLoadOrDefaultPassesThroughValid(t *testing.T) {
	p, sub := LoadOrDefault([]byte(validPolicyYAML))
	assert.Nil(t, sub)
	assert.Equal(t, 40, p.Default.MinConfidence)
}

func TestLoadFile(t *testing.T) {
	p, sub := LoadFile("")
	assert.Nil(t, sub, "empty path selects the built-in default without substitution")
	assert.Equal(t, Default(), p)

	_, sub = LoadFile("does/not/exist.yaml")
	require.NotNil(t, sub)
	assert.Contains(t, sub.Reason, "reading policy file")
}

func TestDefaultPolicyIsSelfConsistent(t *testing.T) {
	p := Default()
	require.NotEmpty(t, p.Default.RequiredFields, "built-in policy must carry a fallback rule")
	assert.Contains(t, p.VisaTypes, "tourist")
	assert.GreaterOrEqual(t, p.Thresholds.Eligible, p.Thresholds.Conditional)

	// The built-in policy must survive its own validation.
	assert.NoError(t, validate(&p))
}
