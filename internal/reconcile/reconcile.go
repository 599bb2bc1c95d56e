// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package reconcile compares applicant-declared attributes against the
// best available document extraction. Each comparable attribute yields an
// ApplicantCheck; the output order is fixed (fullName, dateOfBirth,
// passportNumber, nationality) so reports render deterministically.
package reconcile

import (
	"fmt"
	"math"
	"strings"
	"unicode"

	"github.com/pdiddy/docucheck/internal/extract"
	"github.com/pdiddy/docucheck/internal/textmatch"
	"github.com/pdiddy/docucheck/pkg/types"
)

// Name-similarity decision thresholds.
const (
	namePassThreshold = 0.75
	nameWarnThreshold = 0.4
)

// Checks cross-checks the applicant profile against a document extraction.
// An attribute missing on either side is skipped, not failed: absence of
// evidence is surfaced elsewhere as low confidence.
func Checks(applicant types.ApplicantProfile, best types.DocumentExtraction) []types.ApplicantCheck {
	var checks []types.ApplicantCheck

	if c, ok := checkFullName(applicant, best); ok {
		checks = append(checks, c)
	}
	if c, ok := checkDateOfBirth(applicant, best); ok {
		checks = append(checks, c)
	}
	if c, ok := checkPassportNumber(applicant, best); ok {
		checks = append(checks, c)
	}
	if c, ok := checkNationality(applicant, best); ok {
		checks = append(checks, c)
	}
	return checks
}

func checkFullName(applicant types.ApplicantProfile, best types.DocumentExtraction) (types.ApplicantCheck, bool) {
	declared := applicant.DeclaredFullName()
	documented := documentFullName(best)
	if declared == "" || documented == "" {
		return types.ApplicantCheck{}, false
	}

	sim := textmatch.Similarity(declared, documented)
	status := types.StatusFail
	switch {
	case sim > namePassThreshold:
		status = types.StatusPass
	case sim > nameWarnThreshold:
		status = types.StatusWarning
	}
	return types.ApplicantCheck{
		Field:  "fullName",
		Status: status,
		Detail: fmt.Sprintf("declared name %q matches document name %q at %.0f%%",
			declared, documented, sim*100),
		Confidence: types.ClampConfidence(int(math.Round(sim * 100))),
	}, true
}

// documentFullName assembles "given names + surname" from the extraction.
func documentFullName(best types.DocumentExtraction) string {
	given, _ := best.Field(types.FieldGivenNames)
	surname, _ := best.Field(types.FieldSurname)
	return strings.TrimSpace(given.Value + " " + surname.Value)
}

func checkDateOfBirth(applicant types.ApplicantProfile, best types.DocumentExtraction) (types.ApplicantCheck, bool) {
	fv, ok := best.Field(types.FieldBirthDate)
	declared, declaredOK := extract.NormalizeDate(applicant.DateOfBirth)
	if !ok || !declaredOK {
		return types.ApplicantCheck{}, false
	}

	// A mismatched birth date alone is flagged, never disqualifying.
	status := types.StatusWarning
	detail := fmt.Sprintf("declared birth date %s differs from document %s", declared, fv.Value)
	if declared == fv.Value {
		status = types.StatusPass
		detail = fmt.Sprintf("declared birth date %s matches document", declared)
	}
	return types.ApplicantCheck{
		Field:      "dateOfBirth",
		Status:     status,
		Detail:     detail,
		Confidence: fv.Confidence,
	}, true
}

func checkPassportNumber(applicant types.ApplicantProfile, best types.DocumentExtraction) (types.ApplicantCheck, bool) {
	fv, ok := best.Field(types.FieldDocumentNumber)
	if !ok || applicant.PassportNumber == "" {
		return types.ApplicantCheck{}, false
	}

	declared := normalizeNumber(applicant.PassportNumber)
	documented := normalizeNumber(fv.Value)
	status := types.StatusWarning
	detail := fmt.Sprintf("declared passport number %s differs from document %s", declared, documented)
	if declared == documented {
		status = types.StatusPass
		detail = fmt.Sprintf("declared passport number %s matches document", declared)
	}
	return types.ApplicantCheck{
		Field:      "passportNumber",
		Status:     status,
		Detail:     detail,
		Confidence: fv.Confidence,
	}, true
}

func checkNationality(applicant types.ApplicantProfile, best types.DocumentExtraction) (types.ApplicantCheck, bool) {
	fv, ok := best.Field(types.FieldNationality)
	if !ok || applicant.Nationality == "" {
		return types.ApplicantCheck{}, false
	}

	declared := lettersOnly(applicant.Nationality)
	documented := lettersOnly(fv.Value)
	status := types.StatusWarning
	detail := fmt.Sprintf("declared nationality %s differs from document %s", declared, documented)
	if declared == documented {
		status = types.StatusPass
		detail = fmt.Sprintf("declared nationality %s matches document", declared)
	}
	return types.ApplicantCheck{
		Field:      "nationality",
		Status:     status,
		Detail:     detail,
		Confidence: fv.Confidence,
	}, true
}

// normalizeNumber strips whitespace and uppercases a document number.
func normalizeNumber(s string) string {
	var b strings.Builder
	for _, r := range s {
		if !unicode.IsSpace(r) {
			b.WriteRune(unicode.ToUpper(r))
		}
	}
	return b.String()
}

// lettersOnly strips everything but letters and uppercases the rest.
func lettersOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) {
			b.WriteRune(unicode.ToUpper(r))
		}
	}
	return b.String()
}
