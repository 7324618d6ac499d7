package model

import "time"

// Config is the complete runtime configuration.
// Hierarchy: CLI flags > KCSCBOT_* env vars > config file > DefaultConfig.
// Fields carry both yaml tags (config init/show marshalling) and mapstructure
// tags (viper decoding); the two must name the same keys.
type Config struct {
	KCSC        KCSCConfig        `yaml:"kcsc" mapstructure:"kcsc"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`
	Match       MatchConfig       `yaml:"match" mapstructure:"match"`
	Lexicon     LexiconConfig     `yaml:"lexicon" mapstructure:"lexicon"`
	LLM         LLMConfig         `yaml:"llm" mapstructure:"llm"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	RateLimit   RateLimitConfig   `yaml:"rate_limit" mapstructure:"rate_limit"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
}

// KCSCConfig configures the KCSC OpenAPI client.
type KCSCConfig struct {
	BaseURL   string        `yaml:"base_url" mapstructure:"base_url"`
	APIKey    string        `yaml:"api_key" mapstructure:"api_key"` // Prefer KCSC_API_KEY env var
	DocType   string        `yaml:"doc_type" mapstructure:"doc_type"`
	Timeout   time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent string        `yaml:"user_agent" mapstructure:"user_agent"`

	HTTPProxy  string `yaml:"http_proxy" mapstructure:"http_proxy"`
	HTTPSProxy string `yaml:"https_proxy" mapstructure:"https_proxy"`
}

// CacheConfig configures catalog caching.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" mapstructure:"enabled"`
	TTL     time.Duration `yaml:"ttl" mapstructure:"ttl"`
	Dir     string        `yaml:"dir" mapstructure:"dir"` // Disk layer location; empty disables the disk layer
}

// MatchConfig holds the matcher's tunables.
type MatchConfig struct {
	TopK          int     `yaml:"top_k" mapstructure:"top_k"`
	TokenScore    float64 `yaml:"token_score" mapstructure:"token_score"`       // Points per matched token
	PhraseBonus   float64 `yaml:"phrase_bonus" mapstructure:"phrase_bonus"`     // Bonus when the whole keyword phrase appears in the name
	MinSimilarity float64 `yaml:"min_similarity" mapstructure:"min_similarity"` // Fallback similarity threshold
	MinTokenLen   int     `yaml:"min_token_len" mapstructure:"min_token_len"`   // Minimum token length in runes
}

// LexiconConfig carries the domain synonym and affix tables. The mechanism is
// fixed; the word lists are data and can be replaced per deployment.
type LexiconConfig struct {
	StripPrefixes []string            `yaml:"strip_prefixes" mapstructure:"strip_prefixes"`
	StripSuffixes []string            `yaml:"strip_suffixes" mapstructure:"strip_suffixes"`
	Synonyms      map[string][]string `yaml:"synonyms" mapstructure:"synonyms"` // Trigger substring -> expansions
}

// LLMConfig configures the language-model provider.
type LLMConfig struct {
	Provider string `yaml:"provider" mapstructure:"provider"` // "openai", "azure", "anthropic", "ollama"
	Model    string `yaml:"model" mapstructure:"model"`
	APIKey   string `yaml:"api_key" mapstructure:"api_key"`
	BaseURL  string `yaml:"base_url" mapstructure:"base_url"`

	// Azure OpenAI (the deployment name doubles as the model)
	AzureEndpoint   string `yaml:"azure_endpoint" mapstructure:"azure_endpoint"`
	AzureAPIVersion string `yaml:"azure_api_version" mapstructure:"azure_api_version"`
	Deployment      string `yaml:"deployment" mapstructure:"deployment"`

	Timeout         int `yaml:"timeout" mapstructure:"timeout"` // seconds
	MaxTokens       int `yaml:"max_tokens" mapstructure:"max_tokens"`
	MaxContextChars int `yaml:"max_context_chars" mapstructure:"max_context_chars"` // Grounding text clip, in runes
}

// ConcurrencyConfig configures batch mode.
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// RateLimitConfig paces outbound KCSC calls in batch mode.
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	BurstSize         int     `yaml:"burst_size" mapstructure:"burst_size"`
}

// OutputConfig controls CLI presentation.
type OutputConfig struct {
	Verbose    bool `yaml:"verbose" mapstructure:"verbose"`
	Candidates bool `yaml:"candidates" mapstructure:"candidates"` // Print the candidate list under answers
}

// DefaultConfig returns the built-in defaults. The lexicon defaults carry the
// Korean construction-standards vocabulary the assistant was built for.
func DefaultConfig() *Config {
	return &Config{
		KCSC: KCSCConfig{
			BaseURL:   "https://kcsc.re.kr/OpenApi",
			DocType:   "KDS",
			Timeout:   20 * time.Second,
			UserAgent: "kcscbot/0.2 (+https://github.com/jaehyun-im/kcscbot)",
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     6 * time.Hour,
		},
		Match: MatchConfig{
			TopK:          10,
			TokenScore:    10,
			PhraseBonus:   30,
			MinSimilarity: 0.2,
			MinTokenLen:   2,
		},
		Lexicon: LexiconConfig{
			StripPrefixes: []string{"최소", "최대", "표준", "설계", "허용"},
			StripSuffixes: []string{"기준", "조건", "규정", "방법"},
			Synonyms: map[string][]string{
				"피복":   {"피복두께", "덮개"},
				"피복두께": {"피복"},
				"염해":   {"해안", "염분"},
				"해안":   {"염해"},
				"내진":   {"지진", "내진설계"},
				"지진":   {"내진"},
				"철근":   {"철근상세", "배근"},
				"균열":   {"균열제어", "사용성"},
			},
		},
		LLM: LLMConfig{
			Provider:        "openai",
			Timeout:         30,
			MaxTokens:       1000,
			MaxContextChars: 12000,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 2,
			BurstSize:         5,
		},
		Output: OutputConfig{
			Candidates: true,
		},
	}
}
