package match

import (
	"sort"
	"strings"

	"github.com/jaehyun-im/kcscbot/internal/model"
)

// defaultTopK caps results when neither the caller nor the config sets a
// positive limit.
const defaultTopK = 10

// Matcher ranks cached catalog entries against normalized tokens. It never
// fails: an empty catalog or a keyword nothing matches yields an empty result.
type Matcher struct {
	cfg model.MatchConfig
}

// NewMatcher creates a matcher with the given tunables.
func NewMatcher(cfg model.MatchConfig) *Matcher {
	return &Matcher{cfg: cfg}
}

// Search scores catalog entries against the token set and returns at most
// topK usable results, best first. The primary pass counts token substring
// hits in the entry name; when it matches nothing, a similarity fallback
// ranks entries by LCS ratio against the concatenated tokens (or the raw
// keyword when the token set is empty). Entries without a resolvable code are
// filtered after ranking so they never shift the order of usable entries.
func (m *Matcher) Search(catalog model.Catalog, tokens []string, rawKeyword string, topK int) []model.RankedResult {
	if topK <= 0 {
		topK = m.cfg.TopK
	}
	if topK <= 0 {
		// A zero-value config must not disable truncation.
		topK = defaultTopK
	}

	ranked := m.scoreSubstrings(catalog, tokens)
	if len(ranked) == 0 {
		ranked = m.scoreSimilarity(catalog, tokens, rawKeyword)
	}

	// Unusable entries are dropped after ranking, not before.
	results := make([]model.RankedResult, 0, topK)
	for _, r := range ranked {
		if r.Entry.Code == "" {
			continue
		}
		results = append(results, r)
		if len(results) == topK {
			break
		}
	}

	return results
}

// scoreSubstrings is the primary pass: per-token substring hits plus a bonus
// when the whole space-joined phrase appears in the name. Zero scores are
// discarded; ties keep catalog order.
func (m *Matcher) scoreSubstrings(catalog model.Catalog, tokens []string) []model.RankedResult {
	if len(tokens) == 0 {
		return nil
	}

	phrase := strings.ToLower(strings.Join(tokens, " "))

	var ranked []model.RankedResult
	for _, entry := range catalog {
		name := strings.ToLower(entry.Name)

		var score float64
		for _, tok := range tokens {
			if strings.Contains(name, strings.ToLower(tok)) {
				score += m.cfg.TokenScore
			}
		}
		if score > 0 && strings.Contains(name, phrase) {
			score += m.cfg.PhraseBonus
		}

		if score > 0 {
			ranked = append(ranked, model.RankedResult{Entry: entry, Score: score})
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	return ranked
}

// scoreSimilarity is the fallback pass: LCS ratio between a single fallback
// key and each name, thresholded, ties in catalog order.
func (m *Matcher) scoreSimilarity(catalog model.Catalog, tokens []string, rawKeyword string) []model.RankedResult {
	key := strings.Join(tokens, "")
	if key == "" {
		key = rawKeyword
	}
	if key == "" {
		return nil
	}

	var ranked []model.RankedResult
	for _, entry := range catalog {
		ratio := Similarity(key, entry.Name)
		if ratio >= m.cfg.MinSimilarity {
			ranked = append(ranked, model.RankedResult{Entry: entry, Score: ratio})
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	return ranked
}
