package models

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port           string `json:"port,omitzero" yaml:"port"`
	AllowedOrigins string `json:"allowed_origins,omitzero" yaml:"allowed_origins"`
	Environment    string `json:"environment,omitzero" yaml:"environment"`
	LogLevel       string `json:"log_level,omitzero" yaml:"log_level"`
	ReadTimeoutMs  int    `json:"read_timeout_ms,omitzero" yaml:"read_timeout_ms"`
	WriteTimeoutMs int    `json:"write_timeout_ms,omitzero" yaml:"write_timeout_ms"`
}

// Addr returns the listen address for the configured port.
func (s ServerConfig) Addr() string {
	port := s.Port
	if port == "" {
		port = "8080"
	}
	return ":" + port
}
