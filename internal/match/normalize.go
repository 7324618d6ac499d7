package match

import (
	"strings"
	"unicode/utf8"
)

// Normalize expands a raw keyword string into an ordered, deduplicated token
// set: raw tokens first, then affix-stripped and synonym expansions in
// first-seen order. Tokens shorter than minLen runes are dropped. Normalize
// never fails; a keyword with no usable tokens yields an empty set.
func (l *Lexicon) Normalize(keyword string, minLen int) []string {
	raw := strings.Fields(keyword)

	isRaw := make(map[string]bool, len(raw))
	for _, t := range raw {
		isRaw[t] = true
	}

	var expansions []string
	for _, t := range raw {
		if stripped := l.stripAffixes(t); stripped != "" && !isRaw[stripped] {
			expansions = append(expansions, stripped)
		}
	}
	for _, t := range raw {
		expansions = append(expansions, l.expand(t)...)
	}

	seen := make(map[string]bool, len(raw)+len(expansions))
	var tokens []string
	for _, t := range append(append([]string{}, raw...), expansions...) {
		if utf8.RuneCountInString(t) < minLen {
			continue
		}
		if !seen[t] {
			seen[t] = true
			tokens = append(tokens, t)
		}
	}

	return tokens
}
