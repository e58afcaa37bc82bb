package providers

import (
	"context"
	"fmt"

	"pauz-backend/internal/models"
)

// New constructs the named provider backend from its config.
func New(ctx context.Context, name string, cfg models.ProviderConfig) (models.GenerativeProvider, error) {
	switch name {
	case "gemini":
		return NewGemini(ctx, cfg)
	case "openai":
		return NewOpenAI(cfg)
	case "anthropic":
		return NewAnthropic(cfg)
	default:
		return nil, models.NewValidationError(fmt.Sprintf("unknown provider backend: %s", name), nil)
	}
}

// Chain resolves the configured primary and secondary providers, each
// wrapped with a circuit breaker.
func Chain(ctx context.Context, cfg models.ProvidersConfig, breaker BreakerConfig) (primary, secondary models.GenerativeProvider, err error) {
	if cfg.Primary == "" {
		return nil, nil, models.NewValidationError("primary provider not configured", nil)
	}

	build := func(name string) (models.GenerativeProvider, error) {
		backend, ok := cfg.Backends[name]
		if !ok {
			return nil, models.NewValidationError(fmt.Sprintf("provider %s has no backend config", name), nil)
		}
		p, err := New(ctx, name, backend)
		if err != nil {
			return nil, err
		}
		return WithBreaker(p, breaker), nil
	}

	if primary, err = build(cfg.Primary); err != nil {
		return nil, nil, err
	}
	if cfg.Secondary != "" {
		if secondary, err = build(cfg.Secondary); err != nil {
			return nil, nil, err
		}
	}
	return primary, secondary, nil
}
