package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jaehyun-im/kcscbot/internal/kcsc"
	"github.com/jaehyun-im/kcscbot/internal/llm"
	"github.com/jaehyun-im/kcscbot/internal/model"
	"github.com/jaehyun-im/kcscbot/internal/pipeline"
)

var (
	docType      string
	topK         int
	noCache      bool
	cacheDir     string
	askTimeout   time.Duration
	llmProvider  string
	llmModel     string
	noCandidates bool
)

// askCmd represents the ask command
var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Answer one question grounded in the best-matching standard",
	Long: `Ask runs a single question through the full pipeline:
- Distill a search keyword with the configured language model
- Match it locally against the cached standards catalog
- Fetch and flatten the best match's full text
- Generate an answer grounded in that text, with a source citation

Example:
  kcscbot ask "내진설계 시 지반 분류는 어떻게 하나요?"
  kcscbot ask "콘크리트 피복두께 기준 알려줘" --doc-type KDS --top-k 5
  kcscbot ask "균열 제어 기준은?" --llm-provider azure`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)

	askCmd.Flags().StringVar(&docType, "doc-type", "", "document type partition (default from config, e.g. KDS)")
	askCmd.Flags().IntVar(&topK, "top-k", 0, "number of candidates to rank (default from config)")
	askCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the catalog cache (force refetch)")
	askCmd.Flags().StringVar(&cacheDir, "cache-dir", "", "persist catalog snapshots in this directory")
	askCmd.Flags().DurationVar(&askTimeout, "timeout", 2*time.Minute, "overall timeout for one question")
	askCmd.Flags().StringVar(&llmProvider, "llm-provider", "", "LLM provider (openai, azure, anthropic, ollama)")
	askCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")
	askCmd.Flags().BoolVar(&noCandidates, "no-candidates", false, "do not print the candidate list")
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := args[0]

	ctx, cancel := context.WithTimeout(context.Background(), askTimeout)
	defer cancel()

	p, cfg, err := newPipeline()
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Question: %s\n", question)
		fmt.Fprintf(os.Stderr, "Doc type: %s\n", cfg.KCSC.DocType)
		fmt.Fprintf(os.Stderr, "LLM:      %s/%s\n", cfg.LLM.Provider, cfg.LLM.Model)
		fmt.Fprintln(os.Stderr)
	}

	answer, err := p.Ask(ctx, question)
	if err != nil {
		return presentAskError(err)
	}

	printAnswer(answer, cfg)
	return nil
}

// newPipeline builds the configured pipeline with its LLM provider.
func newPipeline() (*pipeline.Pipeline, *model.Config, error) {
	cfg, err := buildConfig()
	if err != nil {
		return nil, nil, err
	}

	if docType != "" {
		cfg.KCSC.DocType = docType
	}
	if topK > 0 {
		cfg.Match.TopK = topK
	}
	if noCache {
		cfg.Cache.Enabled = false
	}
	if cacheDir != "" {
		cfg.Cache.Dir = cacheDir
	}
	if llmProvider != "" {
		cfg.LLM.Provider = llmProvider
	}
	if llmModel != "" {
		cfg.LLM.Model = llmModel
	}

	if cfg.KCSC.APIKey == "" {
		return nil, nil, fmt.Errorf("KCSC_API_KEY environment variable not set")
	}
	if err := resolveLLMSecrets(cfg); err != nil {
		return nil, nil, err
	}

	provider, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM))
	if err != nil {
		return nil, nil, fmt.Errorf("initialize LLM provider: %w", err)
	}

	return pipeline.New(cfg, provider), cfg, nil
}

// presentAskError maps user-recoverable pipeline errors to a rephrase hint
// and passes operational failures through with their diagnostics.
func presentAskError(err error) error {
	switch {
	case errors.Is(err, kcsc.ErrNoMatch):
		return fmt.Errorf("관련 기준을 찾지 못했습니다. 검색어를 바꿔서 다시 시도해보세요.\n(%v)", err)
	case errors.Is(err, kcsc.ErrEmptyContent):
		return fmt.Errorf("기준 본문을 가져왔지만 내용이 비어 있습니다. 다른 질문으로 재시도하세요.\n(%v)", err)
	default:
		return err
	}
}

func printAnswer(answer *model.Answer, cfg *model.Config) {
	fmt.Printf("🔍 검색어: %s\n", answer.Keyword)
	fmt.Printf("📖 관련 기준: %s (Code: %s)\n", answer.Matched.Name, answer.Matched.Code)
	fmt.Println()
	fmt.Println(answer.Text)
	fmt.Println()
	fmt.Printf("출처: %s\n", answer.Source)

	if cfg.Output.Candidates && !noCandidates && len(answer.Candidates) > 1 {
		fmt.Println()
		fmt.Println("검색 후보:")
		for i, c := range answer.Candidates {
			fmt.Printf("  %d. %s (Code: %s, score %.2f)\n", i+1, c.Entry.Name, c.Entry.Code, c.Score)
		}
	}
}
