// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/pdiddy/docucheck/pkg/types"
)

// Heuristic confidence bands. Base values are degraded by poor OCR
// confidence and clamped to [40,70].
const (
	confLabelled = 70 // value found on an explicitly labelled line
	confPattern  = 55 // value matched by a bare pattern
	confHeurMin  = 40
	confHeurMax  = 70
)

// labelPatterns map labelled document lines to extraction fields. Labels
// cover the phrasings common on passport data pages and visa forms.
var labelPatterns = []struct {
	field string
	re    *regexp.Regexp
}{
	{types.FieldSurname, regexp.MustCompile(`(?i)^\s*(?:surname|family\s+name|last\s+name)\s*[:\-]?\s+(.+)$`)},
	{types.FieldGivenNames, regexp.MustCompile(`(?i)^\s*(?:given\s+names?(?:\s*\(s\))?|first\s+names?|forenames?)\s*[:\-]?\s+(.+)$`)},
	{types.FieldDocumentNumber, regexp.MustCompile(`(?i)^\s*(?:passport\s+n[or]\.?|passport\s+number|document\s+n[or]\.?|document\s+number)\s*[:\-]?\s+([A-Za-z0-9 ]+)$`)},
	{types.FieldNationality, regexp.MustCompile(`(?i)^\s*nationality\s*[:\-]?\s+(.+)$`)},
	{types.FieldBirthDate, regexp.MustCompile(`(?i)^\s*(?:date\s+of\s+birth|birth\s+date|dob)\s*[:\-]?\s+(.+)$`)},
	{types.FieldExpiryDate, regexp.MustCompile(`(?i)^\s*(?:date\s+of\s+expiry|expiry\s+date|expiration\s+date|valid\s+until)\s*[:\-]?\s+(.+)$`)},
	{types.FieldSex, regexp.MustCompile(`(?i)^\s*(?:sex|gender)\s*[:\-]?\s+([MFmf])\b`)},
}

// passportNumberPattern matches common travel-document number shapes:
// one or two letters followed by six to eight digits.
var passportNumberPattern = regexp.MustCompile(`\b[A-Z]{1,2}[0-9]{6,8}\b`)

// dateLayouts are the free-text date formats recognized, tried in order.
var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"02.01.2006",
	"2 Jan 2006",
	"02 Jan 2006",
	"Jan 2, 2006",
}

// heuristicFields scans free text for labelled lines and bare patterns,
// producing low-confidence candidates for fields the MRZ may lack.
func heuristicFields(raw types.RawText, now time.Time) map[string]candidate {
	fields := make(map[string]candidate)
	put := func(name, value string, base int) {
		if value == "" {
			return
		}
		if _, ok := fields[name]; ok {
			return // first hit wins within the heuristic source
		}
		fields[name] = candidate{value: value, confidence: heurConfidence(base, raw.Confidence)}
	}

	for _, line := range strings.Split(raw.Text, "\n") {
		for _, lp := range labelPatterns {
			m := lp.re.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			value := strings.TrimSpace(m[1])
			switch lp.field {
			case types.FieldBirthDate, types.FieldExpiryDate:
				if iso, ok := NormalizeDate(value); ok {
					put(lp.field, iso, confLabelled)
				}
			case types.FieldDocumentNumber:
				put(lp.field, strings.ToUpper(strings.ReplaceAll(value, " ", "")), confLabelled)
			case types.FieldSex:
				put(lp.field, strings.ToUpper(value), confLabelled)
			default:
				put(lp.field, value, confLabelled)
			}
		}
	}

	// Bare passport-number pattern, only when no labelled line supplied
	// one. Lines containing filler characters belong to the zone and are
	// the MRZ parser's business.
	if _, ok := fields[types.FieldDocumentNumber]; !ok {
		for _, line := range strings.Split(raw.Text, "\n") {
			if strings.Contains(line, "<") {
				continue
			}
			if m := passportNumberPattern.FindString(line); m != "" {
				put(types.FieldDocumentNumber, m, confPattern)
				break
			}
		}
	}

	return fields
}

// heurConfidence degrades a heuristic base confidence by the OCR engine's
// own uncertainty, staying within the heuristic band.
func heurConfidence(base, ocrConfidence int) int {
	c := base - (100-types.ClampConfidence(ocrConfidence))/5
	if c < confHeurMin {
		return confHeurMin
	}
	if c > confHeurMax {
		return confHeurMax
	}
	return c
}

// NormalizeDate parses a free-text date into canonical YYYY-MM-DD form.
func NormalizeDate(s string) (string, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02"), true
		}
	}
	return "", false
}

// yymmddToISO converts an MRZ YYMMDD date to YYYY-MM-DD. Birth-date years
// above the current two-digit year resolve to the previous century; expiry
// dates always resolve to 2000+.
func yymmddToISO(s string, expiry bool, now time.Time) (string, bool) {
	if len(s) != 6 {
		return "", false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return "", false
		}
	}
	yy, _ := strconv.Atoi(s[0:2])
	mm, _ := strconv.Atoi(s[2:4])
	dd, _ := strconv.Atoi(s[4:6])

	year := 2000 + yy
	if !expiry && yy > now.Year()%100 {
		year = 1900 + yy
	}

	t := time.Date(year, time.Month(mm), dd, 0, 0, 0, 0, time.UTC)
	if int(t.Month()) != mm || t.Day() != dd {
		return "", false // normalization shifted an impossible date
	}
	return t.Format("2006-01-02"), true
}
