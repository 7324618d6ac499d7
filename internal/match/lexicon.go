package match

import (
	"sort"
	"strings"

	"github.com/jaehyun-im/kcscbot/internal/model"
)

// synonymRule expands tokens containing Trigger with the listed terms.
type synonymRule struct {
	Trigger    string
	Expansions []string
}

// Lexicon holds the domain affix and synonym tables used by Normalize.
// The tables are data, not contract: deployments covering a different corpus
// swap them via the lexicon section of the config file.
type Lexicon struct {
	prefixes []string
	suffixes []string
	synonyms []synonymRule
}

// NewLexicon builds a lexicon from configuration. Synonym rules are ordered by
// trigger so expansion order is deterministic regardless of map iteration.
func NewLexicon(cfg model.LexiconConfig) *Lexicon {
	triggers := make([]string, 0, len(cfg.Synonyms))
	for t := range cfg.Synonyms {
		triggers = append(triggers, t)
	}
	sort.Strings(triggers)

	rules := make([]synonymRule, 0, len(triggers))
	for _, t := range triggers {
		rules = append(rules, synonymRule{Trigger: t, Expansions: cfg.Synonyms[t]})
	}

	return &Lexicon{
		prefixes: cfg.StripPrefixes,
		suffixes: cfg.StripSuffixes,
		synonyms: rules,
	}
}

// stripAffixes removes the first matching stop prefix and stop suffix from the
// token. Returns "" when nothing remains.
func (l *Lexicon) stripAffixes(token string) string {
	out := token
	for _, p := range l.prefixes {
		if strings.HasPrefix(out, p) && len(out) > len(p) {
			out = strings.TrimPrefix(out, p)
			break
		}
	}
	for _, s := range l.suffixes {
		if strings.HasSuffix(out, s) && len(out) > len(s) {
			out = strings.TrimSuffix(out, s)
			break
		}
	}
	if out == token {
		return ""
	}
	return out
}

// expand returns the synonym expansions for a token, in rule order.
func (l *Lexicon) expand(token string) []string {
	var out []string
	for _, rule := range l.synonyms {
		if strings.Contains(token, rule.Trigger) {
			out = append(out, rule.Expansions...)
		}
	}
	return out
}
