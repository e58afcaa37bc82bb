package models

import (
	"context"
	"time"
)

// GenerativeProvider is the contract the orchestrator consumes. At least two
// independent implementations (primary, secondary) back the fallback chain.
// The deadline on ctx bounds the call; exceeding it is a provider failure.
type GenerativeProvider interface {
	Name() string
	Generate(ctx context.Context, prompt string) (string, error)
}

// Chain stages, in escalation order.
const (
	StageCache     = "cache"
	StageTemplate  = "template"
	StagePrimary   = "primary"
	StageSecondary = "secondary"
	StageDefault   = "default"
)

// Per-stage outcomes recorded in the attempt trace.
const (
	OutcomeHit     = "hit"
	OutcomeMiss    = "miss"
	OutcomeError   = "error"
	OutcomeTimeout = "timeout"
	OutcomeSkipped = "skipped"
)

// FallbackAttempt records one stage of the chain for observability. The
// trace is transient: surfaced in logs and the response, never persisted.
type FallbackAttempt struct {
	Stage    string        `json:"stage"`
	Provider string        `json:"provider,omitzero"`
	Outcome  string        `json:"outcome"`
	Latency  time.Duration `json:"latency_ns"`
}

// AssistantRequest is one inbound request for a generated response.
type AssistantRequest struct {
	UserID  string            `json:"user_id"`
	Input   string            `json:"input"`
	Context map[string]string `json:"context,omitzero"`
}

// AssistantResponse is what the orchestrator's caller always receives on the
// success path: a usable response, with the stage that produced it.
type AssistantResponse struct {
	Text     string            `json:"text"`
	Source   string            `json:"source"`
	Category string            `json:"category"`
	Cached   bool              `json:"cached"`
	Attempts []FallbackAttempt `json:"attempts,omitzero"`
}

// AssistantConfig holds the orchestrator policy knobs.
type AssistantConfig struct {
	// HistoryLimit caps per-user conversation history length.
	HistoryLimit int `yaml:"history_limit" json:"history_limit"`
	// PromptTurns is how many recent turns are folded into provider prompts.
	PromptTurns int `yaml:"prompt_turns" json:"prompt_turns"`
	// ProviderTimeoutMs bounds each provider call.
	ProviderTimeoutMs int `yaml:"provider_timeout_ms" json:"provider_timeout_ms"`
	// MinCacheableLength rejects short results from cache writes.
	MinCacheableLength int `yaml:"min_cacheable_length" json:"min_cacheable_length"`
	// VolatilePatterns lists input substrings that bypass the cache entirely
	// so frequent conversational phrases keep their variety.
	VolatilePatterns []string `yaml:"volatile_patterns" json:"volatile_patterns"`
	// SignificantContextFields are the context keys folded into cache keys.
	// Deliberately coarse so similar contexts collapse to one key.
	SignificantContextFields []string `yaml:"significant_context_fields" json:"significant_context_fields"`
	// ResponseTTL overrides the ai-response namespace TTL when positive.
	ResponseTTL time.Duration `yaml:"response_ttl" json:"response_ttl"`
}

// ProviderTimeout returns the configured per-provider deadline.
func (c AssistantConfig) ProviderTimeout() time.Duration {
	if c.ProviderTimeoutMs <= 0 {
		return 8 * time.Second
	}
	return time.Duration(c.ProviderTimeoutMs) * time.Millisecond
}
