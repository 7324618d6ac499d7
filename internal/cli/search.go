package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jaehyun-im/kcscbot/internal/model"
	"github.com/jaehyun-im/kcscbot/internal/pipeline"
)

var searchTimeout time.Duration

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search <keyword>",
	Short: "Rank catalog candidates for a keyword without calling the LLM",
	Long: `Search shows what the local matcher would pick for a keyword: the
normalized tokens and the ranked candidate standards. Useful for tuning
the lexicon and debugging why a question matched the standard it did.

Example:
  kcscbot search "피복두께"
  kcscbot search "내진 설계" --top-k 20`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringVar(&docType, "doc-type", "", "document type partition (default from config, e.g. KDS)")
	searchCmd.Flags().IntVar(&topK, "top-k", 0, "number of candidates to show (default from config)")
	searchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the catalog cache (force refetch)")
	searchCmd.Flags().StringVar(&cacheDir, "cache-dir", "", "persist catalog snapshots in this directory")
	searchCmd.Flags().DurationVar(&searchTimeout, "timeout", 30*time.Second, "timeout for the catalog fetch")
}

func runSearch(cmd *cobra.Command, args []string) error {
	keyword := args[0]

	cfg, err := buildConfig()
	if err != nil {
		return err
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
	if cfg.KCSC.APIKey == "" {
		return fmt.Errorf("KCSC_API_KEY environment variable not set")
	}

	// No LLM: search works purely on the catalog.
	p := pipeline.New(cfg, nil)

	ctx, cancel := context.WithTimeout(context.Background(), searchTimeout)
	defer cancel()

	results, err := p.Lookup(ctx, keyword, cfg.Match.TopK)
	if err != nil {
		return err
	}

	printResults(keyword, results)
	return nil
}

func printResults(keyword string, results []model.RankedResult) {
	if len(results) == 0 {
		fmt.Printf("검색 결과 없음: %q\n", keyword)
		return
	}

	fmt.Printf("검색어 %q 상위 %d건:\n", keyword, len(results))
	for i, r := range results {
		fmt.Printf("  %d. %s (Code: %s, score %.2f)\n", i+1, r.Entry.Name, r.Entry.Code, r.Score)
	}
}
