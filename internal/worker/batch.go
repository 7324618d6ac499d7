package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/jaehyun-im/kcscbot/internal/model"
)

// Asker answers a single question; the pipeline satisfies this.
type Asker interface {
	Ask(ctx context.Context, question string) (*model.Answer, error)
}

// AskJob runs one question through the pipeline, pacing KCSC calls through
// the shared limiter first.
type AskJob struct {
	Question string
	Asker    Asker
	Limiter  *Limiter
}

// Execute executes the ask job.
func (j *AskJob) Execute(ctx context.Context) Result {
	if j.Limiter != nil {
		if err := j.Limiter.Wait(ctx); err != nil {
			return &AskResult{Question: j.Question, Error: err}
		}
	}

	answer, err := j.Asker.Ask(ctx, j.Question)
	if err != nil {
		return &AskResult{Question: j.Question, Error: err}
	}
	return &AskResult{Question: j.Question, Answer: answer}
}

// AskResult represents the outcome of one question.
type AskResult struct {
	Question string
	Answer   *model.Answer
	Error    error
}

// GetError returns the error from the ask result.
func (r *AskResult) GetError() error {
	return r.Error
}

// BatchProcessor answers multiple questions concurrently.
type BatchProcessor struct {
	asker   Asker
	pool    *Pool
	limiter *Limiter
}

// NewBatchProcessor creates a batch processor.
func NewBatchProcessor(asker Asker, concurrency int, requestsPerSecond float64, burst int) *BatchProcessor {
	return &BatchProcessor{
		asker:   asker,
		pool:    NewPool(concurrency),
		limiter: NewLimiter(requestsPerSecond, burst),
	}
}

// ProcessQuestions answers the questions concurrently, preserving no
// particular output order.
func (b *BatchProcessor) ProcessQuestions(ctx context.Context, questions []string) []*AskResult {
	jobs := make([]Job, len(questions))
	for i, q := range questions {
		jobs[i] = &AskJob{Question: q, Asker: b.asker, Limiter: b.limiter}
	}

	results := b.pool.Run(ctx, jobs)

	askResults := make([]*AskResult, len(results))
	for i, result := range results {
		askResults[i] = result.(*AskResult)
	}
	return askResults
}

// ProcessFile reads questions from a file and answers them concurrently.
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string) ([]*AskResult, error) {
	questions, err := ReadQuestionsFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read questions: %w", err)
	}

	return b.ProcessQuestions(ctx, questions), nil
}

// ReadQuestionsFromFile reads questions from a file, one per line. Empty
// lines and # comments are skipped; duplicates are dropped.
func ReadQuestionsFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var questions []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !seen[line] {
			seen[line] = true
			questions = append(questions, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return questions, nil
}
