// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package mrz decodes the machine-readable zone of travel documents per
// ICAO Doc 9303: fixed-width lines using '<' as filler, with weighted
// mod-10 check digits over the numeric fields. Supported layouts are TD3
// (passports, 2 lines x 44) and TD1 (ID cards, 3 lines x 30).
//
// A failed check digit marks the field invalid but keeps the decoded
// value: a mismatch is evidence of an OCR misread, not necessarily of a
// forged document. Malformed input never produces an error, only an
// absence result.
package mrz

import "strings"

// Format identifies the MRZ layout a record was decoded from.
type Format string

const (
	FormatTD3 Format = "td3"
	FormatTD1 Format = "td1"

	td3LineLen = 44
	td1LineLen = 30
)

// Field is a checksum-protected MRZ field. Valid reports whether the
// embedded check digit matched the recomputed one.
type Field struct {
	Value string
	Valid bool
}

// Record is the decoded machine-readable zone. Immutable once parsed.
type Record struct {
	Format         Format
	DocumentType   string
	IssuingCountry string
	Surname        string
	GivenNames     string
	DocumentNumber Field
	Nationality    string
	BirthDate      Field // YYMMDD as printed in the zone
	Sex            string
	ExpiryDate     Field // YYMMDD
	PersonalNumber Field
	CompositeValid bool
}

// AllValid reports whether every check digit in the zone matched.
func (r *Record) AllValid() bool {
	return r.DocumentNumber.Valid && r.BirthDate.Valid && r.ExpiryDate.Valid &&
		r.PersonalNumber.Valid && r.CompositeValid
}

// MostlyValid reports whether at least two of the three core field checks
// (document number, birth date, expiry date) matched. The field extractor
// uses this to decide whether the zone is trustworthy enough to seed from.
func (r *Record) MostlyValid() bool {
	n := 0
	for _, ok := range []bool{r.DocumentNumber.Valid, r.BirthDate.Valid, r.ExpiryDate.Valid} {
		if ok {
			n++
		}
	}
	return n >= 2
}

// Parse locates and decodes a machine-readable zone in raw OCR text.
// Candidate lines are selected by length signature after stripping spaces;
// anything else is noise. The second return value is false when no
// recognized layout is present, which is an absence signal rather than an
// error condition.
func Parse(text string) (*Record, bool) {
	var td3, td1 []string
	for _, line := range strings.Split(text, "\n") {
		c := cleanLine(line)
		switch len(c) {
		case td3LineLen:
			td3 = append(td3, c)
		case td1LineLen:
			td1 = append(td1, c)
		}
	}

	switch {
	case len(td3) >= 2:
		return parseTD3(td3[0], td3[1]), true
	case len(td1) >= 3:
		return parseTD1(td1[0], td1[1], td1[2]), true
	}
	return nil, false
}

// parseTD3 decodes the passport layout.
//
//	line 1: P<ISSSURNAME<<GIVEN<NAMES<<<<...
//	line 2: NUMBER___CNATDOBDATEC S EXPIRYC PERSONALNUM__C C
func parseTD3(l1, l2 string) *Record {
	r := &Record{
		Format:         FormatTD3,
		DocumentType:   trimFiller(l1[0:2]),
		IssuingCountry: trimFiller(l1[2:5]),
	}
	r.Surname, r.GivenNames = splitName(l1[5:44])

	r.DocumentNumber = checkedField(l2[0:9], l2[9])
	r.Nationality = trimFiller(l2[10:13])
	r.BirthDate = checkedField(l2[13:19], l2[19])
	r.Sex = parseSex(l2[20])
	r.ExpiryDate = checkedField(l2[21:27], l2[27])
	r.PersonalNumber = checkedField(l2[28:42], l2[42])

	// An empty personal number may carry '<' instead of its check digit.
	if r.PersonalNumber.Value == "" && l2[42] == '<' {
		r.PersonalNumber.Valid = true
	}

	composite := l2[0:10] + l2[13:20] + l2[21:43]
	r.CompositeValid = checkDigit(composite) == digitValue(l2[43])
	return r
}

// parseTD1 decodes the ID-card layout.
//
//	line 1: I<ISSNUMBER___C OPTIONAL______
//	line 2: DOBDATEC S EXPIRYC NAT OPTIONAL___ C
//	line 3: SURNAME<<GIVEN<NAMES<<<<...
func parseTD1(l1, l2, l3 string) *Record {
	r := &Record{
		Format:         FormatTD1,
		DocumentType:   trimFiller(l1[0:2]),
		IssuingCountry: trimFiller(l1[2:5]),
	}

	r.DocumentNumber = checkedField(l1[5:14], l1[14])
	r.BirthDate = checkedField(l2[0:6], l2[6])
	r.Sex = parseSex(l2[7])
	r.ExpiryDate = checkedField(l2[8:14], l2[14])
	r.Nationality = trimFiller(l2[15:18])

	// TD1 optional data has no dedicated check digit; it is covered only
	// by the composite.
	r.PersonalNumber = Field{Value: trimFiller(l1[15:30]), Valid: true}

	composite := l1[5:30] + l2[0:7] + l2[8:15] + l2[18:29]
	r.CompositeValid = checkDigit(composite) == digitValue(l2[29])

	r.Surname, r.GivenNames = splitName(l3)
	return r
}

// checkDigit computes the ICAO 9303 check digit: character values weighted
// 7,3,1 cyclically, summed mod 10. Digits map to themselves, A-Z to 10-35,
// and filler to 0.
func checkDigit(s string) int {
	weights := [3]int{7, 3, 1}
	sum := 0
	for i := 0; i < len(s); i++ {
		sum += charValue(s[i]) * weights[i%3]
	}
	return sum % 10
}

func charValue(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'A' && c <= 'Z':
		return int(c-'A') + 10
	default:
		return 0
	}
}

// digitValue returns the numeric value of an embedded check digit, or -1
// when the position holds something other than a digit.
func digitValue(c byte) int {
	if c >= '0' && c <= '9' {
		return int(c - '0')
	}
	return -1
}

func checkedField(raw string, check byte) Field {
	return Field{
		Value: trimFiller(raw),
		Valid: checkDigit(raw) == digitValue(check),
	}
}

// splitName splits the name field at the double filler into surname and
// given names, with single fillers restored to spaces.
func splitName(s string) (surname, given string) {
	parts := strings.SplitN(s, "<<", 2)
	surname = fillerToSpace(parts[0])
	if len(parts) == 2 {
		given = fillerToSpace(parts[1])
	}
	return surname, given
}

func fillerToSpace(s string) string {
	s = strings.Trim(s, "<")
	return strings.TrimSpace(strings.ReplaceAll(s, "<", " "))
}

func trimFiller(s string) string {
	return strings.ReplaceAll(s, "<", "")
}

func parseSex(c byte) string {
	if c == 'M' || c == 'F' {
		return string(c)
	}
	return ""
}

// cleanLine uppercases a candidate line and strips spaces, the most common
// OCR artifact inside a zone.
func cleanLine(line string) string {
	line = strings.ToUpper(strings.TrimSpace(line))
	return strings.ReplaceAll(line, " ", "")
}
