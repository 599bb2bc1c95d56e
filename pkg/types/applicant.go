// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "strings"

// ApplicantProfile is the applicant's declared data, constructed once per
// analysis run from user input and immutable for the duration of the run.
type ApplicantProfile struct {
	// Surname is the declared family name.
	Surname string `json:"surname" yaml:"surname"`

	// GivenNames are the declared given names, space separated.
	GivenNames string `json:"given_names" yaml:"given_names"`

	// FullName is the declared full name. When empty, it is derived
	// from GivenNames and Surname.
	FullName string `json:"full_name,omitempty" yaml:"full_name,omitempty"`

	// DateOfBirth is the declared birth date (YYYY-MM-DD).
	DateOfBirth string `json:"date_of_birth" yaml:"date_of_birth"`

	// Nationality is the declared nationality (name or ISO code).
	Nationality string `json:"nationality" yaml:"nationality"`

	// PassportNumber is the declared travel-document number.
	PassportNumber string `json:"passport_number" yaml:"passport_number"`

	// VisaType is the visa category applied for (e.g. "tourist").
	VisaType string `json:"visa_type" yaml:"visa_type"`
}

// DeclaredFullName returns FullName when set, otherwise the concatenation
// of given names and surname.
func (a ApplicantProfile) DeclaredFullName() string {
	if a.FullName != "" {
		return a.FullName
	}
	return strings.TrimSpace(a.GivenNames + " " + a.Surname)
}
