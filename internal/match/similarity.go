package match

import "strings"

// Similarity computes a normalized longest-common-subsequence ratio between
// two strings: 2*LCS(a,b) / (len(a)+len(b)), case-insensitive, over runes.
// The result is symmetric and ranges 0.0 (nothing shared) to 1.0 (equal).
func Similarity(a, b string) float64 {
	ra := []rune(strings.ToLower(a))
	rb := []rune(strings.ToLower(b))

	// Numerator and denominator must measure the same sequences: lowercasing
	// can change rune count (e.g. İ), and mixing lengths lets the ratio pass 1.
	total := len(ra) + len(rb)
	if total == 0 {
		return 0
	}
	return 2 * float64(lcsLength(ra, rb)) / float64(total)
}

// lcsLength computes LCS length with a two-row dynamic program.
func lcsLength(a, b []rune) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1] + 1
			} else if prev[j] >= curr[j-1] {
				curr[j] = prev[j]
			} else {
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}
