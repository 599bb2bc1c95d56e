package textmatch

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Jane Doe", "JANE DOE"},
		{"  jane   doe ", "JANE DOE"},
		{"Müller", "MULLER"},
		{"José García", "JOSE GARCIA"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"kitten", "sitting", 3},
		{"DOE", "DOE", 0},
		{"DOE", "D0E", 1},
	}
	for _, tt := range tests {
		if got := Levenshtein(tt.a, tt.b); got != tt.want {
			t.Errorf("Levenshtein(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
		if got := Levenshtein(tt.b, tt.a); got != tt.want {
			t.Errorf("Levenshtein(%q, %q) = %d, want %d", tt.b, tt.a, got, tt.want)
		}
	}
}

func TestSimilarityBounds(t *testing.T) {
	if got := Similarity("JANE DOE", "JANE DOE"); got != 1.0 {
		t.Errorf("identical names: Similarity = %v, want exactly 1.0", got)
	}
	if got := Similarity("Jane  Doe", "JANE DOE"); got != 1.0 {
		t.Errorf("normalization-equal names: Similarity = %v, want 1.0", got)
	}
	if got := Similarity("JANE DOE", "JOHN SMITH"); got >= 0.4 {
		t.Errorf("unrelated names: Similarity = %v, want < 0.4", got)
	}
	for _, pair := range [][2]string{
		{"JANE MARIE DOE", "DOE JANE"},
		{"", "JANE"},
		{"A", "ZZZZZZZZZZ"},
	} {
		got := Similarity(pair[0], pair[1])
		if got < 0 || got > 1 {
			t.Errorf("Similarity(%q, %q) = %v, out of [0,1]", pair[0], pair[1], got)
		}
	}
}

func TestSimilarityTokenTolerance(t *testing.T) {
	// One OCR misread inside a long token should still count as a match.
	withTypo := Similarity("JANE MARIE DOE", "JANE MAR1E DOE")
	if withTypo <= 0.75 {
		t.Errorf("single-edit token: Similarity = %v, want > 0.75", withTypo)
	}

	// More matching tokens must never lower the score.
	partial := Similarity("JANE DOE", "JANE SMITH")
	full := Similarity("JANE DOE", "JANE DOE")
	if partial >= full {
		t.Errorf("monotonicity: partial match %v >= full match %v", partial, full)
	}
}

func TestSimilaritySubsetName(t *testing.T) {
	// Declared name omitting a middle name is still a strong match.
	got := Similarity("JANE DOE", "JANE MARIE DOE")
	if got <= 0.75 {
		t.Errorf("subset name: Similarity = %v, want > 0.75", got)
	}
}
