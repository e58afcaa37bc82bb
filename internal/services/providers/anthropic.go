package providers

import (
	"context"
	"strings"
	"time"

	"pauz-backend/internal/models"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	fiberlog "github.com/gofiber/fiber/v2/log"
)

const (
	defaultAnthropicModel     = "claude-3-5-haiku-latest"
	defaultAnthropicMaxTokens = 1024
)

// Anthropic generates responses through the Anthropic messages API. It can
// be configured as either stage of the fallback chain.
type Anthropic struct {
	client anthropic.Client
	model  string
}

// NewAnthropic creates an Anthropic provider from config.
func NewAnthropic(cfg models.ProviderConfig) (*Anthropic, error) {
	if cfg.APIKey == "" {
		return nil, models.NewValidationError("anthropic api key not configured", nil)
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
		model = defaultAnthropicModel
	}
	return &Anthropic{client: anthropic.NewClient(opts...), model: model}, nil
}

func (a *Anthropic) Name() string { return "anthropic" }

// Generate sends prompt as a single user message and concatenates the text
// blocks of the reply.
func (a *Anthropic) Generate(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	message, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(a.model),
		MaxTokens: defaultAnthropicMaxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	duration := time.Since(start)

	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		fiberlog.Warnf("Anthropic: message failed after %v: %v", duration, err)
		return "", models.NewProviderError("anthropic", "message request failed", err)
	}

	var sb strings.Builder
	for _, block := range message.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", models.NewProviderError("anthropic", "empty response", nil)
	}

	fiberlog.Debugf("Anthropic: generated %d chars in %v", len(text), duration)
	return text, nil
}
