package providers

import (
	"context"
	"strings"
	"time"

	"pauz-backend/internal/models"

	fiberlog "github.com/gofiber/fiber/v2/log"
	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-1.5-flash"

// Gemini generates responses through the Gemini API. It is the default
// primary provider in the fallback chain.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini creates a Gemini provider from config.
func NewGemini(ctx context.Context, cfg models.ProviderConfig) (*Gemini, error) {
	if cfg.APIKey == "" {
		return nil, models.NewValidationError("gemini api key not configured", nil)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, models.NewProviderError("gemini", "failed to create client", err)
	}

	model := cfg.Model
	if model == "" {
		model = defaultGeminiModel
	}
	return &Gemini{client: client, model: model}, nil
}

func (g *Gemini) Name() string { return "gemini" }

// Generate sends prompt to Gemini and returns the response text. The
// deadline on ctx bounds the call.
func (g *Gemini) Generate(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	duration := time.Since(start)

	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		fiberlog.Warnf("Gemini: generate failed after %v: %v", duration, err)
		return "", models.NewProviderError("gemini", "generate request failed", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", models.NewProviderError("gemini", "empty response", nil)
	}

	fiberlog.Debugf("Gemini: generated %d chars in %v", len(text), duration)
	return text, nil
}
