package providers

import (
	"context"
	"strings"
	"time"

	"pauz-backend/internal/models"

	fiberlog "github.com/gofiber/fiber/v2/log"
	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
)

const defaultOpenAIModel = "gpt-4o-mini"

// OpenAI generates responses through the OpenAI chat completions API. It is
// the default secondary provider in the fallback chain.
type OpenAI struct {
	client openai.Client
	model  string
}

// NewOpenAI creates an OpenAI provider from config.
func NewOpenAI(cfg models.ProviderConfig) (*OpenAI, error) {
	if cfg.APIKey == "" {
		return nil, models.NewValidationError("openai api key not configured", nil)
	}

	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	for key, value := range cfg.Headers {
		opts = append(opts, option.WithHeader(key, value))
	}

	model := cfg.Model
	if model == "" {
		model = defaultOpenAIModel
	}
	return &OpenAI{client: openai.NewClient(opts...), model: model}, nil
}

func (o *OpenAI) Name() string { return "openai" }

// Generate sends prompt as a single user message and returns the first
// choice's content.
func (o *OpenAI) Generate(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	duration := time.Since(start)

	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		fiberlog.Warnf("OpenAI: completion failed after %v: %v", duration, err)
		return "", models.NewProviderError("openai", "completion request failed", err)
	}

	if len(resp.Choices) == 0 {
		return "", models.NewProviderError("openai", "no choices in response", nil)
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", models.NewProviderError("openai", "empty response", nil)
	}

	fiberlog.Debugf("OpenAI: generated %d chars in %v", len(text), duration)
	return text, nil
}
