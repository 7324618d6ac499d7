package model

import "time"

// CatalogEntry is one standard's metadata from the KCSC CodeList endpoint.
// Field casing varies across API responses, so entries are built through
// ProbeString rather than static struct tags.
type CatalogEntry struct {
	Name string `json:"name"` // Display title, e.g. "KDS 14 20 50 콘크리트구조 철근상세 설계기준"
	Code string `json:"code"` // Opaque identifier used by the CodeViewer endpoint
}

// Catalog is the full listing of standards for one document-type partition.
// It is replaced wholesale on refetch, never mutated in place.
type Catalog []CatalogEntry

// CacheRecord pairs a catalog with the time it was fetched.
type CacheRecord struct {
	Entries   Catalog   `json:"entries"`
	FetchedAt time.Time `json:"fetched_at"`
}

// RankedResult is a catalog entry plus its relevance score: the substring
// score in the primary pass, the similarity ratio in fallback mode. The two
// passes never mix in one result list.
type RankedResult struct {
	Entry CatalogEntry `json:"entry"`
	Score float64      `json:"score"`
}

// FetchedDocument is the flattened full text of one standard.
type FetchedDocument struct {
	Name string `json:"name"`
	Text string `json:"text"`
}

// ProbeString returns the first present, non-empty string value among the
// candidate keys, in order. Non-string values are stringified only when they
// already hold text; everything else is skipped.
func ProbeString(m map[string]interface{}, keys ...string) string {
	for _, k := range keys {
		v, ok := m[k]
		if !ok || v == nil {
			continue
		}
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return ""
}
