// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract builds a confidence-scored DocumentExtraction from raw
// OCR text. Fields are seeded from the machine-readable zone when one is
// present and trustworthy, and filled in from free-text heuristics
// otherwise. Extraction never fails: text with nothing recognizable
// yields a sparse extraction with low aggregate confidence.
package extract

import (
	"time"

	"github.com/pdiddy/docucheck/internal/mrz"
	"github.com/pdiddy/docucheck/pkg/types"
)

// Confidence bands by source reliability.
const (
	confChecksumValid = 95 // MRZ field with a matching check digit
	confMRZPlain      = 90 // MRZ field without its own check digit
	confChecksumBad   = 55 // MRZ field whose check digit failed
	confMRZUntrusted  = 45 // any MRZ field in a zone that is not mostly valid
)

// fieldWeights weight each field's contribution to the aggregate
// confidence by its importance to eligibility. Document number and
// nationality carry the most.
var fieldWeights = map[string]int{
	types.FieldDocumentNumber: 3,
	types.FieldNationality:    3,
	types.FieldSurname:        2,
	types.FieldGivenNames:     2,
	types.FieldBirthDate:      2,
	types.FieldExpiryDate:     2,
	types.FieldSex:            1,
	types.FieldDocumentType:   1,
}

// candidate is a field value proposal from one source.
type candidate struct {
	value         string
	confidence    int
	checksumValid bool
}

// Extract processes one document's OCR output into a DocumentExtraction.
func Extract(raw types.RawText) types.DocumentExtraction {
	return extractAt(raw, time.Now().UTC())
}

// extractAt is Extract with an injected clock for the date-century pivot.
func extractAt(raw types.RawText, now time.Time) types.DocumentExtraction {
	fields := make(map[string]candidate)

	for name, c := range heuristicFields(raw, now) {
		fields[name] = c
	}

	if rec, ok := mrz.Parse(raw.Text); ok {
		for name, c := range mrzFields(rec, now) {
			mergeCandidate(fields, name, c)
		}
	}

	out := types.DocumentExtraction{
		DocumentID: raw.DocumentID,
		Fields:     make(map[string]types.FieldValue, len(fields)),
	}
	for name, c := range fields {
		out.Fields[name] = types.FieldValue{
			Value:      c.value,
			Confidence: types.ClampConfidence(c.confidence),
		}
	}
	out.Confidence = aggregate(out.Fields)
	return out
}

// mergeCandidate resolves a two-source disagreement: an MRZ value with a
// valid checksum always wins; otherwise the higher-confidence source does.
func mergeCandidate(fields map[string]candidate, name string, c candidate) {
	existing, ok := fields[name]
	if !ok || c.checksumValid || c.confidence > existing.confidence {
		fields[name] = c
	}
}

// mrzFields converts a parsed zone into field candidates. A zone that is
// not mostly valid is still usable but only at low confidence, so that a
// clean labelled line in the free text can override it.
func mrzFields(rec *mrz.Record, now time.Time) map[string]candidate {
	trusted := rec.MostlyValid()

	conf := func(valid bool) (int, bool) {
		if !trusted {
			return confMRZUntrusted, false
		}
		if valid {
			return confChecksumValid, true
		}
		return confChecksumBad, false
	}
	plain := confMRZPlain
	if !trusted {
		plain = confMRZUntrusted
	}

	fields := make(map[string]candidate)
	put := func(name, value string, confidence int, checksumValid bool) {
		if value != "" {
			fields[name] = candidate{value: value, confidence: confidence, checksumValid: checksumValid}
		}
	}

	put(types.FieldSurname, rec.Surname, plain, false)
	put(types.FieldGivenNames, rec.GivenNames, plain, false)
	put(types.FieldSex, rec.Sex, plain, false)
	put(types.FieldDocumentType, rec.DocumentType, plain, false)
	put(types.FieldNationality, rec.Nationality, plain, trusted)

	c, v := conf(rec.DocumentNumber.Valid)
	put(types.FieldDocumentNumber, rec.DocumentNumber.Value, c, v)

	if iso, ok := yymmddToISO(rec.BirthDate.Value, false, now); ok {
		c, v = conf(rec.BirthDate.Valid)
		put(types.FieldBirthDate, iso, c, v)
	}
	if iso, ok := yymmddToISO(rec.ExpiryDate.Value, true, now); ok {
		c, v = conf(rec.ExpiryDate.Valid)
		put(types.FieldExpiryDate, iso, c, v)
	}
	return fields
}

// Best returns the extraction with the highest aggregate confidence, the
// "best document" downstream stages evaluate against. The second return
// value is false when no extraction exists.
func Best(extractions []types.DocumentExtraction) (types.DocumentExtraction, bool) {
	if len(extractions) == 0 {
		return types.DocumentExtraction{}, false
	}
	best := extractions[0]
	for _, e := range extractions[1:] {
		if e.Confidence > best.Confidence {
			best = e
		}
	}
	return best, true
}

// aggregate computes the weighted average confidence over populated
// fields, clamped to [0,100]. An empty extraction scores zero.
func aggregate(fields map[string]types.FieldValue) int {
	if len(fields) == 0 {
		return 0
	}
	sum, weightSum := 0, 0
	for name, fv := range fields {
		w := fieldWeights[name]
		if w == 0 {
			w = 1
		}
		sum += w * fv.Confidence
		weightSum += w
	}
	return types.ClampConfidence(sum / weightSum)
}
