package reconcile

import (
	"strings"
	"testing"

	"github.com/pdiddy/docucheck/pkg/types"
)

func extraction(fields map[string]types.FieldValue) types.DocumentExtraction {
	return types.DocumentExtraction{DocumentID: "doc-1", Fields: fields, Confidence: 90}
}

func fullFields() map[string]types.FieldValue {
	return map[string]types.FieldValue{
		types.FieldSurname:        {Value: "DOE", Confidence: 90},
		types.FieldGivenNames:     {Value: "JANE MARIE", Confidence: 90},
		types.FieldDocumentNumber: {Value: "AB1234567", Confidence: 95},
		types.FieldNationality:    {Value: "UTO", Confidence: 95},
		types.FieldBirthDate:      {Value: "1990-01-15", Confidence: 95},
	}
}

func applicant() types.ApplicantProfile {
	return types.ApplicantProfile{
		Surname:        "Doe",
		GivenNames:     "Jane Marie",
		DateOfBirth:    "1990-01-15",
		Nationality:    "UTO",
		PassportNumber: "AB1234567",
		VisaType:       "tourist",
	}
}

func TestChecksOrderIsFixed(t *testing.T) {
	checks := Checks(applicant(), extraction(fullFields()))
	want := []string{"fullName", "dateOfBirth", "passportNumber", "nationality"}
	if len(checks) != len(want) {
		t.Fatalf("len(checks) = %d, want %d: %+v", len(checks), len(want), checks)
	}
	for i, c := range checks {
		if c.Field != want[i] {
			t.Errorf("checks[%d].Field = %q, want %q", i, c.Field, want[i])
		}
	}
}

func TestChecksAllPassForMatchingApplicant(t *testing.T) {
	for _, c := range Checks(applicant(), extraction(fullFields())) {
		if c.Status != types.StatusPass {
			t.Errorf("check %s = %s (%s), want pass", c.Field, c.Status, c.Detail)
		}
		if c.Confidence < 0 || c.Confidence > 100 {
			t.Errorf("check %s confidence %d out of range", c.Field, c.Confidence)
		}
	}
}

func TestChecksSkipIncomparableFields(t *testing.T) {
	// Document carries only a passport number: exactly one check results.
	fields := map[string]types.FieldValue{
		types.FieldDocumentNumber: {Value: "AB1234567", Confidence: 95},
	}
	checks := Checks(applicant(), extraction(fields))
	if len(checks) != 1 || checks[0].Field != "passportNumber" {
		t.Fatalf("checks = %+v, want only passportNumber", checks)
	}

	// Applicant declared nothing: no checks at all.
	if got := Checks(types.ApplicantProfile{}, extraction(fullFields())); len(got) != 0 {
		t.Errorf("checks for empty profile = %+v, want none", got)
	}
}

func TestCheckFullNameStatuses(t *testing.T) {
	tests := []struct {
		name     string
		declared string
		status   types.CheckStatus
	}{
		{"exact", "Jane Marie Doe", types.StatusPass},
		{"case and order tolerant", "jane marie doe", types.StatusPass},
		{"partial overlap", "Jane Smith", types.StatusWarning},
		{"unrelated", "Xavier Quill", types.StatusFail},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := applicant()
			a.FullName = tt.declared
			a.Surname, a.GivenNames = "", ""

			checks := Checks(a, extraction(fullFields()))
			if len(checks) == 0 || checks[0].Field != "fullName" {
				t.Fatalf("missing fullName check: %+v", checks)
			}
			c := checks[0]
			if c.Status != tt.status {
				t.Errorf("status = %s, want %s (%s)", c.Status, tt.status, c.Detail)
			}
			if !strings.Contains(c.Detail, "%") {
				t.Errorf("detail %q should include the similarity percentage", c.Detail)
			}
		})
	}
}

func TestCheckPassportNumberNormalizes(t *testing.T) {
	// Declared "AB1234567" vs extracted "ab 1234567" must normalize to
	// the same value and pass.
	fields := fullFields()
	fields[types.FieldDocumentNumber] = types.FieldValue{Value: "ab 1234567", Confidence: 88}

	checks := Checks(applicant(), extraction(fields))
	var got types.ApplicantCheck
	for _, c := range checks {
		if c.Field == "passportNumber" {
			got = c
		}
	}
	if got.Status != types.StatusPass {
		t.Errorf("status = %s (%s), want pass after normalization", got.Status, got.Detail)
	}
	if got.Confidence != 88 {
		t.Errorf("confidence = %d, want the source field's 88", got.Confidence)
	}
}

func TestCheckMismatchesWarnNotFail(t *testing.T) {
	a := applicant()
	a.DateOfBirth = "1991-02-20"
	a.PassportNumber = "ZZ9999999"
	a.Nationality = "Elbonia"

	for _, c := range Checks(a, extraction(fullFields())) {
		if c.Field == "fullName" {
			continue
		}
		if c.Status != types.StatusWarning {
			t.Errorf("check %s = %s, want warning (mismatch alone is not disqualifying)", c.Field, c.Status)
		}
	}
}

func TestCheckNationalityStripsNonLetters(t *testing.T) {
	a := applicant()
	a.Nationality = "U.T.O."
	checks := Checks(a, extraction(fullFields()))
	for _, c := range checks {
		if c.Field == "nationality" && c.Status != types.StatusPass {
			t.Errorf("nationality = %s (%s), want pass after stripping punctuation", c.Status, c.Detail)
		}
	}
}
