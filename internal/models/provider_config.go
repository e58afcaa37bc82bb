package models

// ProviderConfig holds configuration for one generative provider backend.
type ProviderConfig struct {
	APIKey    string            `yaml:"api_key" json:"api_key,omitzero"`
	Model     string            `yaml:"model" json:"model,omitzero"`
	BaseURL   string            `yaml:"base_url" json:"base_url,omitzero"`   // Optional custom base URL
	TimeoutMs int               `yaml:"timeout_ms" json:"timeout_ms,omitzero"` // Optional per-provider timeout override
	Headers   map[string]string `yaml:"headers" json:"headers,omitzero"`     // Optional custom headers
}

// ProvidersConfig declares the fallback chain: the orchestrator escalates
// from primary to secondary on error or timeout.
type ProvidersConfig struct {
	Primary   string                    `yaml:"primary" json:"primary"`
	Secondary string                    `yaml:"secondary" json:"secondary"`
	Backends  map[string]ProviderConfig `yaml:"backends" json:"backends"`
}
