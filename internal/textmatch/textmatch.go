// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package textmatch provides the string normalization and fuzzy comparison
// used to reconcile applicant-declared attributes with document-derived
// ones. Comparison is token-based with an edit-distance component, tuned
// for person names transcribed under OCR uncertainty.
package textmatch

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks removes combining marks after NFD decomposition, turning
// "MÜLLER" into "MULLER".
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize uppercases s, strips diacritics, and collapses runs of
// whitespace to single spaces.
func Normalize(s string) string {
	if out, _, err := transform.String(stripMarks, s); err == nil {
		s = out
	}
	s = strings.ToUpper(s)
	return strings.Join(strings.Fields(s), " ")
}

// Similarity returns a score in [0,1] for two names. Identical normalized
// strings score exactly 1.0. Otherwise the score blends the fraction of
// the shorter name's tokens found in the longer name (tolerating one edit
// for tokens of length >= 4) with an edit-distance ratio over the full
// strings. More matching tokens and a lower edit distance always raise
// the score; zero token overlap at maximal edit distance scores 0.0.
func Similarity(a, b string) float64 {
	na, nb := Normalize(a), Normalize(b)
	if na == nb {
		return 1.0
	}
	if na == "" || nb == "" {
		return 0.0
	}

	const (
		tokenWeight = 0.6
		editWeight  = 0.4
	)

	ta, tb := strings.Fields(na), strings.Fields(nb)
	shorter, longer := ta, tb
	if len(tb) < len(ta) {
		shorter, longer = tb, ta
	}
	matched := 0
	for _, tok := range shorter {
		if tokenInSet(tok, longer) {
			matched++
		}
	}
	tokenScore := float64(matched) / float64(len(shorter))

	maxLen := len(na)
	if len(nb) > maxLen {
		maxLen = len(nb)
	}
	editScore := 1.0 - float64(Levenshtein(na, nb))/float64(maxLen)

	return tokenWeight*tokenScore + editWeight*editScore
}

// tokenInSet reports whether tok appears in set, allowing a single edit
// for tokens long enough to make one OCR misread plausible.
func tokenInSet(tok string, set []string) bool {
	for _, cand := range set {
		if tok == cand {
			return true
		}
		if len(tok) >= 4 && Levenshtein(tok, cand) <= 1 {
			return true
		}
	}
	return false
}

// Levenshtein computes the edit distance between two strings using the
// two-row dynamic-programming form.
func Levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min3(curr[j-1]+1, prev[j]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}
