// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the shared data model for the docucheck pipeline:
// OCR output, document extractions, applicant profiles, eligibility policies,
// and the structured report.
package types

// RawText is the OCR engine's output for one document.
type RawText struct {
	// DocumentID identifies the originating document (typically the
	// image file base name).
	DocumentID string `json:"document_id" yaml:"document_id"`

	// Text is the recognized text, opaque to the OCR boundary.
	Text string `json:"text" yaml:"text"`

	// Confidence is the engine's overall confidence estimate (0-100).
	Confidence int `json:"confidence" yaml:"confidence"`
}

// FieldValue is a single extracted field with its source-reliability
// confidence. Absent fields are omitted from an extraction entirely;
// there is no zero-value FieldValue.
type FieldValue struct {
	Value string `json:"value" yaml:"value"`

	// Confidence reflects source reliability (0-100): checksum-validated
	// MRZ fields score highest, free-text heuristic matches lower.
	Confidence int `json:"confidence" yaml:"confidence"`
}

// Canonical extraction field names. Dates are stored in YYYY-MM-DD form.
const (
	FieldSurname        = "surname"
	FieldGivenNames     = "givenNames"
	FieldDocumentNumber = "documentNumber"
	FieldNationality    = "nationality"
	FieldBirthDate      = "birthDate"
	FieldSex            = "sex"
	FieldExpiryDate     = "expiryDate"
	FieldDocumentType   = "documentType"
)

// DocumentExtraction holds all fields recovered from one processed document.
// It is created once per successfully OCR'd document and never mutated.
type DocumentExtraction struct {
	// DocumentID references the originating document.
	DocumentID string `json:"document_id" yaml:"document_id"`

	// Fields maps canonical field names to extracted values. Sparse:
	// fields that could not be recovered are absent.
	Fields map[string]FieldValue `json:"fields" yaml:"fields"`

	// Confidence is the aggregate extraction confidence (0-100), a
	// weighted average over populated fields.
	Confidence int `json:"confidence" yaml:"confidence"`
}

// Field returns the named field value and whether it is populated.
func (e DocumentExtraction) Field(name string) (FieldValue, bool) {
	fv, ok := e.Fields[name]
	return fv, ok
}

// ClampConfidence bounds a confidence value to [0,100].
func ClampConfidence(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
