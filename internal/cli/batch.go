package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jaehyun-im/kcscbot/internal/worker"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Answer multiple questions from a file in parallel",
	Long: `Batch reads questions from a file (one per line, # for comments) and
runs them through the ask pipeline concurrently. Calls to the KCSC API
are rate limited across workers, and all workers share one catalog
cache, so the listing is fetched once. Each answer is written to the
output directory as a Markdown file.

Example:
  kcscbot batch questions.txt
  kcscbot batch questions.txt --concurrency 8 --output-dir ./answers`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", 0, "number of concurrent workers (default from config)")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./kcscbot-answers", "output directory for answers")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().StringVar(&docType, "doc-type", "", "document type partition (default from config, e.g. KDS)")
	batchCmd.Flags().StringVar(&cacheDir, "cache-dir", "", "persist catalog snapshots in this directory")
	batchCmd.Flags().StringVar(&llmProvider, "llm-provider", "", "LLM provider (openai, azure, anthropic, ollama)")
	batchCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]

	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	p, cfg, err := newPipeline()
	if err != nil {
		return err
	}
	if concurrency > 0 {
		cfg.Concurrency.Workers = concurrency
	}

	fmt.Fprintf(os.Stderr, "Input file: %s\n", file)
	fmt.Fprintf(os.Stderr, "Workers:    %d\n", cfg.Concurrency.Workers)
	fmt.Fprintf(os.Stderr, "Output dir: %s\n", outputDir)
	fmt.Fprintln(os.Stderr)

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	processor := worker.NewBatchProcessor(
		p,
		cfg.Concurrency.Workers,
		cfg.RateLimit.RequestsPerSecond,
		cfg.RateLimit.BurstSize,
	)

	results, err := processor.ProcessFile(ctx, file)
	if err != nil {
		return fmt.Errorf("process file: %w", err)
	}

	successCount := 0
	failureCount := 0

	for _, result := range results {
		if result.Error != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Question, result.Error)
			continue
		}

		successCount++

		path := filepath.Join(outputDir, sanitizeFilename(result.Question)+".md")
		if err := writeAnswerFile(path, result); err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: write answer: %v\n", result.Question, err)
			continue
		}

		fmt.Fprintf(os.Stderr, "✓ %s → %s\n", result.Question, result.Answer.Matched.Name)
	}

	fmt.Fprintln(os.Stderr)
	fmt.Fprintf(os.Stderr, "Total:    %d questions\n", len(results))
	fmt.Fprintf(os.Stderr, "Success:  %d\n", successCount)
	fmt.Fprintf(os.Stderr, "Failures: %d\n", failureCount)
	fmt.Fprintf(os.Stderr, "Output:   %s\n", outputDir)

	return nil
}

// writeAnswerFile renders one answered question as Markdown.
func writeAnswerFile(path string, result *worker.AskResult) error {
	a := result.Answer

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", a.Question)
	fmt.Fprintf(&b, "- 검색어: %s\n", a.Keyword)
	fmt.Fprintf(&b, "- 관련 기준: %s (Code: %s)\n", a.Matched.Name, a.Matched.Code)
	fmt.Fprintf(&b, "- 생성 시각: %s\n\n", a.AnsweredAt.Format(time.RFC3339))
	b.WriteString(a.Text)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "출처: %s\n", a.Source)

	return os.WriteFile(path, []byte(b.String()), 0644)
}

// sanitizeFilename turns a question into a safe file name.
func sanitizeFilename(s string) string {
	replacer := strings.NewReplacer(
		"/", "_", "\\", "_", ":", "_", "*", "_", "?", "_",
		"\"", "_", "<", "_", ">", "_", "|", "_", " ", "-",
	)
	s = replacer.Replace(strings.TrimSpace(s))

	// Limit length, on a rune boundary.
	runes := []rune(s)
	if len(runes) > 80 {
		s = string(runes[:80])
	}

	if s == "" {
		s = "answer"
	}
	return s
}
