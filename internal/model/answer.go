package model

import "time"

// Answer is the complete result of one question through the pipeline.
type Answer struct {
	Question   string         `json:"question"`
	Keyword    string         `json:"keyword"`     // LLM-distilled search keyword (or the raw question on fallback)
	Tokens     []string       `json:"tokens"`      // Normalized search tokens
	Matched    CatalogEntry   `json:"matched"`     // The standard the answer is grounded in
	Candidates []RankedResult `json:"candidates"`  // Ranked candidates considered
	Source     string         `json:"source"`      // Citation line, e.g. "KDS 14 20 50 ... (KDS 142050)"
	Text       string         `json:"text"`        // The generated answer
	AnsweredAt time.Time      `json:"answered_at"`
}
