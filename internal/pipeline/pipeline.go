package pipeline

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jaehyun-im/kcscbot/internal/cache"
	"github.com/jaehyun-im/kcscbot/internal/kcsc"
	"github.com/jaehyun-im/kcscbot/internal/llm"
	"github.com/jaehyun-im/kcscbot/internal/match"
	"github.com/jaehyun-im/kcscbot/internal/model"
)

// Pipeline orchestrates one question end to end: keyword extraction, token
// normalization, cached catalog lookup, local matching, content flattening,
// and grounded answering. Each step is strictly sequential.
type Pipeline struct {
	client   *kcsc.Client
	cache    *cache.CatalogCache
	lexicon  *match.Lexicon
	matcher  *match.Matcher
	provider llm.Provider // nil when LLM is disabled
	config   *model.Config
}

// New creates a pipeline with the given configuration and provider. A nil
// provider leaves keyword extraction and answering disabled; Lookup still
// works for catalog search.
func New(cfg *model.Config, provider llm.Provider) *Pipeline {
	var catalogCache *cache.CatalogCache
	if cfg.Cache.Enabled {
		var store cache.Store
		if cfg.Cache.Dir != "" {
			store = cache.NewLayeredStore(cfg.Cache.Dir)
		} else {
			store = cache.NewMemoryStore()
		}
		catalogCache = cache.New(store, cfg.Cache.TTL)
	}

	return &Pipeline{
		client:   kcsc.NewClient(cfg.KCSC),
		cache:    catalogCache,
		lexicon:  match.NewLexicon(cfg.Lexicon),
		matcher:  match.NewMatcher(cfg.Match),
		provider: provider,
		config:   cfg,
	}
}

// Ask answers a free-text question grounded in the best-matching standard.
func (p *Pipeline) Ask(ctx context.Context, question string) (*model.Answer, error) {
	if p.provider == nil {
		return nil, fmt.Errorf("no LLM provider configured")
	}

	// 1. Distill a search keyword. Extraction failures degrade to the raw
	// question, never to the user.
	keyword := p.ExtractKeyword(ctx, question)

	// 2. Normalize into search tokens.
	tokens := p.lexicon.Normalize(keyword, p.config.Match.MinTokenLen)

	// 3. Load the catalog, from cache when fresh.
	docType := p.config.KCSC.DocType
	catalog, err := p.Catalog(ctx, docType)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	// 4. Rank candidates locally.
	results := p.matcher.Search(catalog, tokens, keyword, p.config.Match.TopK)
	if len(results) == 0 {
		return nil, fmt.Errorf("search %q: %w", keyword, kcsc.ErrNoMatch)
	}
	best := results[0].Entry

	// 5. Fetch and flatten the standard's text.
	doc, err := p.client.FetchContent(ctx, best.Code, docType)
	if err != nil {
		return nil, fmt.Errorf("fetch content for %s: %w", best.Code, err)
	}
	if strings.TrimSpace(doc.Text) == "" {
		return nil, fmt.Errorf("standard %s: %w", best.Code, kcsc.ErrEmptyContent)
	}

	// 6. Answer grounded in the flattened text.
	contextText := llm.TruncateContext(doc.Text, p.config.LLM.MaxContextChars)
	answer, err := p.provider.Answer(ctx, contextText, question)
	if err != nil {
		return nil, fmt.Errorf("generate answer: %w", err)
	}

	sourceName := doc.Name
	if sourceName == "" {
		sourceName = best.Name
	}

	return &model.Answer{
		Question:   question,
		Keyword:    keyword,
		Tokens:     tokens,
		Matched:    best,
		Candidates: results,
		Source:     fmt.Sprintf("%s (%s %s)", sourceName, docType, best.Code),
		Text:       answer,
		AnsweredAt: time.Now().UTC(),
	}, nil
}

// ExtractKeyword asks the provider for search keywords, falling back to the
// raw question when extraction fails or returns nothing usable.
func (p *Pipeline) ExtractKeyword(ctx context.Context, question string) string {
	if p.provider == nil {
		return question
	}

	keyword, err := p.provider.ExtractKeyword(ctx, question)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: keyword extraction failed, searching with the raw question: %v\n", err)
		return question
	}
	if keyword == "" {
		return question
	}
	return keyword
}

// Lookup ranks catalog entries for a keyword without touching the LLM.
func (p *Pipeline) Lookup(ctx context.Context, keyword string, topK int) ([]model.RankedResult, error) {
	tokens := p.lexicon.Normalize(keyword, p.config.Match.MinTokenLen)

	catalog, err := p.Catalog(ctx, p.config.KCSC.DocType)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	return p.matcher.Search(catalog, tokens, keyword, topK), nil
}

// Content fetches and flattens one standard by code.
func (p *Pipeline) Content(ctx context.Context, code string) (model.FetchedDocument, error) {
	return p.client.FetchContent(ctx, code, p.config.KCSC.DocType)
}

// Catalog returns the listing for a document type, refetching when the cached
// snapshot is missing or older than the TTL.
func (p *Pipeline) Catalog(ctx context.Context, docType string) (model.Catalog, error) {
	if p.cache != nil {
		if catalog, ok := p.cache.Get(docType); ok {
			return catalog, nil
		}
	}

	catalog, err := p.client.FetchCatalog(ctx, docType)
	if err != nil {
		return nil, err
	}

	if p.cache != nil {
		p.cache.Put(docType, catalog, time.Now())
	}

	return catalog, nil
}
