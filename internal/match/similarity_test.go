package match

import (
	"math"
	"testing"
)

func TestSimilarity_Identical(t *testing.T) {
	if got := Similarity("피복두께", "피복두께"); got != 1.0 {
		t.Errorf("Similarity of identical strings = %v, want 1.0", got)
	}
}

func TestSimilarity_CaseInsensitive(t *testing.T) {
	if got := Similarity("Seismic Design", "seismic design"); got != 1.0 {
		t.Errorf("Similarity must be case-insensitive, got %v", got)
	}
}

func TestSimilarity_Symmetric(t *testing.T) {
	pairs := [][2]string{
		{"피복두께", "철근 피복"},
		{"concrete", "cover"},
		{"내진설계", ""},
	}
	for _, p := range pairs {
		ab := Similarity(p[0], p[1])
		ba := Similarity(p[1], p[0])
		if math.Abs(ab-ba) > 1e-12 {
			t.Errorf("Similarity(%q,%q)=%v != Similarity(%q,%q)=%v", p[0], p[1], ab, p[1], p[0], ba)
		}
	}
}

func TestSimilarity_Bounds(t *testing.T) {
	pairs := [][2]string{
		{"", ""},
		{"a", ""},
		{"피복", "두께"},
		{"콘크리트구조 설계기준", "강구조 설계기준"},
	}
	for _, p := range pairs {
		got := Similarity(p[0], p[1])
		if got < 0 || got > 1 {
			t.Errorf("Similarity(%q,%q) = %v, out of [0,1]", p[0], p[1], got)
		}
	}
}

func TestSimilarity_CaseFoldingLengthChange(t *testing.T) {
	// Lowercasing İ yields two runes (i + combining dot); the ratio must
	// stay within bounds and identical inputs must still score 1.0.
	if got := Similarity("İSTANBUL", "İSTANBUL"); got != 1.0 {
		t.Errorf("Similarity of identical strings = %v, want 1.0", got)
	}
	if got := Similarity("İİİ", "iii"); got < 0 || got > 1 {
		t.Errorf("Similarity = %v, out of [0,1]", got)
	}
}

func TestSimilarity_Disjoint(t *testing.T) {
	if got := Similarity("가나다", "xyz"); got != 0 {
		t.Errorf("Disjoint strings = %v, want 0", got)
	}
}

func TestSimilarity_KnownValue(t *testing.T) {
	// LCS("abcd","abd") = "abd" (3): 2*3/(4+3) = 6/7.
	want := 6.0 / 7.0
	if got := Similarity("abcd", "abd"); math.Abs(got-want) > 1e-12 {
		t.Errorf("Similarity(abcd,abd) = %v, want %v", got, want)
	}
}
