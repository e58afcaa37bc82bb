package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"pauz-backend/internal/models"
	"pauz-backend/internal/services/providers"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the complete application configuration
type Config struct {
	Server    models.ServerConfig     `yaml:"server"`
	Database  *models.DatabaseConfig  `yaml:"database,omitempty"`
	Cache     models.CacheConfig      `yaml:"cache"`
	Assistant models.AssistantConfig  `yaml:"assistant"`
	Providers models.ProvidersConfig  `yaml:"providers"`
	Breaker   providers.BreakerConfig `yaml:"circuit_breaker"`
}

// LoadFromFile loads configuration from a YAML file with environment variable substitution
func LoadFromFile(configPath string) (*Config, error) {
	cleanPath := filepath.Clean(configPath)

	if strings.Contains(cleanPath, "..") {
		return nil, fmt.Errorf("invalid config path: path traversal not allowed")
	}

	ext := filepath.Ext(cleanPath)
	if ext != ".yaml" && ext != ".yml" {
		return nil, fmt.Errorf("invalid config file: only .yaml and .yml files are allowed")
	}

	data, err := os.ReadFile(cleanPath) // #nosec G304 - path is validated above
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", cleanPath, err)
	}

	content := substituteEnvVars(string(data))

	var config Config
	if err := yaml.Unmarshal([]byte(content), &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}

	// Normalize backend map keys to lowercase for case-insensitive lookups
	if config.Providers.Backends != nil {
		normalized := make(map[string]models.ProviderConfig, len(config.Providers.Backends))
		for key, value := range config.Providers.Backends {
			normalized[strings.ToLower(key)] = value
		}
		config.Providers.Backends = normalized
	}
	config.Providers.Primary = strings.ToLower(config.Providers.Primary)
	config.Providers.Secondary = strings.ToLower(config.Providers.Secondary)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// LoadEnvFiles loads environment variables from .env files in order of precedence
// Loads files in the order provided (first has highest priority)
func LoadEnvFiles(envFiles []string) {
	for _, envFile := range envFiles {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err == nil {
				fmt.Printf("Loaded environment variables from %s\n", envFile)
			}
		}
	}
}

// New creates a new Config instance by loading from the specified config file path
func New(configPath string) (*Config, error) {
	return LoadFromFile(configPath)
}

// Validate checks the cross-field constraints a partial YAML file can break.
func (c *Config) Validate() error {
	if c.Providers.Primary != "" {
		if _, ok := c.Providers.Backends[c.Providers.Primary]; !ok {
			return fmt.Errorf("primary provider %q has no backend configuration", c.Providers.Primary)
		}
	}
	if c.Providers.Secondary != "" {
		if _, ok := c.Providers.Backends[c.Providers.Secondary]; !ok {
			return fmt.Errorf("secondary provider %q has no backend configuration", c.Providers.Secondary)
		}
	}
	if c.Database != nil && c.Database.Type == "" {
		return fmt.Errorf("database.type is required when a database block is present")
	}
	return nil
}

// substituteEnvVars replaces ${VAR_NAME} and ${VAR_NAME:-default} patterns with environment variables
func substituteEnvVars(content string) string {
	re := regexp.MustCompile(`\$\{([^}:]+)(?::(-[^}]*))?\}`)

	return re.ReplaceAllStringFunc(content, func(match string) string {
		submatches := re.FindStringSubmatch(match)
		if len(submatches) < 2 {
			return match
		}

		varName := submatches[1]
		defaultValue := ""

		if len(submatches) > 2 && submatches[2] != "" {
			defaultValue = strings.TrimPrefix(submatches[2], "-")
		}

		if value := os.Getenv(varName); value != "" {
			return value
		}

		return defaultValue
	})
}

// ProviderConfig returns the backend configuration for a named provider.
func (c *Config) ProviderConfig(name string) (models.ProviderConfig, bool) {
	cfg, ok := c.Providers.Backends[strings.ToLower(name)]
	return cfg, ok
}
