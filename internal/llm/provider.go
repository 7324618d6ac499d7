package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/jaehyun-im/kcscbot/internal/model"
)

// Provider defines the interface for LLM backends. The pipeline needs exactly
// two capabilities: distilling a search keyword from a question, and
// answering a question grounded in a standard's text.
type Provider interface {
	// Name returns the provider name
	Name() string

	// ExtractKeyword reduces a natural-language question to 1-3 domain
	// keywords separated by spaces
	ExtractKeyword(ctx context.Context, question string) (string, error)

	// Answer produces a grounded answer to the question using the supplied
	// standard text as context
	Answer(ctx context.Context, contextText, question string) (string, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// Config holds LLM provider configuration.
type Config struct {
	// Provider name: "openai", "azure", "anthropic", "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI/Azure/Anthropic
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Azure OpenAI settings; Deployment doubles as the model name
	AzureEndpoint   string
	AzureAPIVersion string
	Deployment      string

	// Timeout for API requests, in seconds
	Timeout int

	// MaxTokens for response generation
	MaxTokens int

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider:  "",
		Timeout:   30,
		MaxTokens: 1000,
	}
}

// ConfigFromModel converts model.LLMConfig to llm.Config.
func ConfigFromModel(mc model.LLMConfig) Config {
	return Config{
		Provider:        mc.Provider,
		Model:           mc.Model,
		APIKey:          mc.APIKey,
		BaseURL:         mc.BaseURL,
		AzureEndpoint:   mc.AzureEndpoint,
		AzureAPIVersion: mc.AzureAPIVersion,
		Deployment:      mc.Deployment,
		Timeout:         mc.Timeout,
		MaxTokens:       mc.MaxTokens,
	}
}

// Prompts. The assistant serves a Korean standards corpus, so the prompts are
// Korean like the corpus itself.

const keywordSystem = "Output only Korean keywords separated by a single space."

const answerSystem = "You are a helpful assistant explaining construction standards."

// BuildKeywordPrompt asks for the core nouns a catalog search needs.
func BuildKeywordPrompt(question string) string {
	return fmt.Sprintf(
		"사용자 질문: '%s'\n위 질문에서 설계기준 검색에 필요한 핵심 명사 1~3개만 뽑아 공백으로 구분해 출력해.\n설명/문장/따옴표/특수문자 없이 단어만.",
		question,
	)
}

// BuildAnswerPrompt grounds the answer in the flattened standard text and
// asks for quoted supporting sentences.
func BuildAnswerPrompt(contextText, question string) string {
	return fmt.Sprintf(
		"기준서 내용:\n%s\n\n질문: %s\n\n위 기준서 내용을 근거로, 실무자가 이해하기 쉽도록 요점 위주로 답변해줘. 필요하면 '기준서 근거 문장'도 함께 인용해줘.",
		contextText, question,
	)
}

// CleanKeyword normalizes a raw model keyword reply: first line only,
// hyphens and slashes become spaces, whitespace collapses. Returns "" when
// nothing usable remains; the caller falls back to the raw question.
func CleanKeyword(raw string) string {
	line := raw
	if idx := strings.IndexAny(line, "\r\n"); idx >= 0 {
		line = line[:idx]
	}
	line = strings.NewReplacer("-", " ", "/", " ").Replace(line)
	line = strings.Trim(line, "\"'` ")
	return strings.Join(strings.Fields(line), " ")
}

// TruncateContext clips grounding text to at most max runes so oversized
// standards do not blow the prompt budget.
func TruncateContext(text string, max int) string {
	if max <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max])
}
