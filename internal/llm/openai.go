package llm

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

// OpenAIProvider implements the Provider interface for OpenAI models, both
// the public API and Azure OpenAI deployments.
type OpenAIProvider struct {
	client *openai.Client
	azure  bool
	config Config
}

// NewOpenAIProvider creates a new OpenAI provider. When AzureEndpoint is set
// the client targets an Azure OpenAI resource and the deployment name is used
// as the model.
func NewOpenAIProvider(config Config) (*OpenAIProvider, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	azure := config.AzureEndpoint != ""

	var clientConfig openai.ClientConfig
	if azure {
		clientConfig = openai.DefaultAzureConfig(config.APIKey, config.AzureEndpoint)
		if config.AzureAPIVersion != "" {
			clientConfig.APIVersion = config.AzureAPIVersion
		}
	} else {
		clientConfig = openai.DefaultConfig(config.APIKey)
		if config.BaseURL != "" {
			clientConfig.BaseURL = config.BaseURL
		}
	}

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(clientConfig),
		azure:  azure,
		config: config,
	}, nil
}

// Name returns the provider name.
func (p *OpenAIProvider) Name() string {
	if p.azure {
		return "azure"
	}
	return "openai"
}

// IsAvailable checks if the provider is properly configured.
func (p *OpenAIProvider) IsAvailable(ctx context.Context) bool {
	_, err := p.client.ListModels(ctx)
	if err != nil {
		// Log the actual error so users can diagnose API key issues.
		fmt.Fprintf(os.Stderr, "OpenAI API check failed: %v\n", err)
		return false
	}
	return true
}

// ExtractKeyword distills search keywords from a user question.
func (p *OpenAIProvider) ExtractKeyword(ctx context.Context, question string) (string, error) {
	reply, err := p.chat(ctx, keywordSystem, BuildKeywordPrompt(question), 0.0)
	if err != nil {
		return "", err
	}
	return CleanKeyword(reply), nil
}

// Answer generates a grounded answer from the standard text.
func (p *OpenAIProvider) Answer(ctx context.Context, contextText, question string) (string, error) {
	return p.chat(ctx, answerSystem, BuildAnswerPrompt(contextText, question), 0.3)
}

// chat runs one chat completion with the provider's model and timeout.
func (p *OpenAIProvider) chat(ctx context.Context, system, user string, temperature float32) (string, error) {
	model := p.config.Deployment
	if model == "" {
		model = p.config.Model
	}
	if model == "" {
		model = openai.GPT4oMini
	}

	maxTokens := p.config.MaxTokens
	if maxTokens == 0 {
		maxTokens = 1000
	}

	timeout := time.Duration(p.config.Timeout) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	ctxWithTimeout, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := p.client.CreateChatCompletion(ctxWithTimeout, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from OpenAI")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
