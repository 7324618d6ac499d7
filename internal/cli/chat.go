package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var turnTimeout time.Duration

// chatCmd represents the chat command
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Interactive question loop",
	Long: `Chat starts an interactive loop: each line you type runs through the
full ask pipeline and prints a grounded, cited answer. The catalog cache
is shared across turns, so only the first question in a six-hour window
pays for the listing fetch.

Turns are independent; there is no multi-turn conversation memory.

Type "exit" or "quit" (or Ctrl-D) to leave.`,
	Args: cobra.NoArgs,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)

	chatCmd.Flags().StringVar(&docType, "doc-type", "", "document type partition (default from config, e.g. KDS)")
	chatCmd.Flags().StringVar(&cacheDir, "cache-dir", "", "persist catalog snapshots in this directory")
	chatCmd.Flags().StringVar(&llmProvider, "llm-provider", "", "LLM provider (openai, azure, anthropic, ollama)")
	chatCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")
	chatCmd.Flags().DurationVar(&turnTimeout, "turn-timeout", 2*time.Minute, "timeout per question")
}

func runChat(cmd *cobra.Command, args []string) error {
	p, cfg, err := newPipeline()
	if err != nil {
		return err
	}

	fmt.Println("🏗️  KCSC 설계기준 챗봇 (종료: exit)")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("질문> ")
		if !scanner.Scan() {
			fmt.Println()
			break
		}

		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			continue
		}
		if question == "exit" || question == "quit" {
			break
		}

		ctx, cancel := context.WithTimeout(context.Background(), turnTimeout)
		answer, err := p.Ask(ctx, question)
		cancel()

		if err != nil {
			fmt.Fprintf(os.Stderr, "오류: %v\n\n", presentAskError(err))
			continue
		}

		printAnswer(answer, cfg)
		fmt.Println()
	}

	return scanner.Err()
}
