package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"pauz-backend/internal/models"
)

const sampleConfig = `
server:
  port: "${PAUZ_PORT:-9090}"
  log_level: info

cache:
  default_ttl: 5m
  default_capacity: 256
  namespaces:
    ai-response:
      ttl: 300s
      capacity: 100

assistant:
  history_limit: 10
  prompt_turns: 6
  min_cacheable_length: 20

providers:
  primary: Gemini
  secondary: openai
  backends:
    Gemini:
      api_key: "${GEMINI_API_KEY:-}"
      model: gemini-1.5-flash
    openai:
      api_key: "${OPENAI_API_KEY:-test-key}"
      model: gpt-4o-mini

circuit_breaker:
  failure_threshold: 3
  reset_after: 30s
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadFromFile(t *testing.T) {
	cfg, err := LoadFromFile(writeConfig(t, sampleConfig))
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}

	if cfg.Server.Addr() != ":9090" {
		t.Errorf("addr = %q, want :9090", cfg.Server.Addr())
	}
	if cfg.Assistant.HistoryLimit != 10 {
		t.Errorf("history limit = %d, want 10", cfg.Assistant.HistoryLimit)
	}

	policy := cfg.Cache.NamespacePolicy(models.NamespaceAssistantResponse)
	if policy.TTL != 300*time.Second || policy.Capacity != 100 {
		t.Errorf("ai-response policy = %+v, want 300s/100", policy)
	}
	fallback := cfg.Cache.NamespacePolicy("something-else")
	if fallback.TTL != 5*time.Minute || fallback.Capacity != 256 {
		t.Errorf("default policy = %+v, want 5m/256", fallback)
	}
}

func TestLoadNormalizesProviderNames(t *testing.T) {
	cfg, err := LoadFromFile(writeConfig(t, sampleConfig))
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}

	if cfg.Providers.Primary != "gemini" {
		t.Errorf("primary = %q, want gemini", cfg.Providers.Primary)
	}
	if _, ok := cfg.ProviderConfig("GEMINI"); !ok {
		t.Error("case-insensitive backend lookup failed")
	}
}

func TestEnvSubstitution(t *testing.T) {
	t.Setenv("PAUZ_PORT", "3000")
	t.Setenv("OPENAI_API_KEY", "sk-live")

	cfg, err := LoadFromFile(writeConfig(t, sampleConfig))
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}

	if cfg.Server.Port != "3000" {
		t.Errorf("port = %q, want env override 3000", cfg.Server.Port)
	}
	openai, _ := cfg.ProviderConfig("openai")
	if openai.APIKey != "sk-live" {
		t.Errorf("api key = %q, want env override", openai.APIKey)
	}
	gemini, _ := cfg.ProviderConfig("gemini")
	if gemini.APIKey != "" {
		t.Errorf("unset env with empty default produced %q", gemini.APIKey)
	}
}

func TestValidateRejectsUnknownPrimary(t *testing.T) {
	bad := `
providers:
  primary: mistral
  backends:
    gemini:
      model: gemini-1.5-flash
`
	if _, err := LoadFromFile(writeConfig(t, bad)); err == nil {
		t.Error("expected error for primary without backend config")
	}
}

func TestLoadRejectsBadPaths(t *testing.T) {
	if _, err := LoadFromFile("../escape.yaml"); err == nil {
		t.Error("expected error for path traversal")
	}
	if _, err := LoadFromFile(filepath.Join(t.TempDir(), "config.json")); err == nil {
		t.Error("expected error for non-yaml extension")
	}
}
