package models

import "time"

// Well-known cache namespaces. Namespaces never share keys and each carries
// its own TTL and capacity policy.
const (
	NamespaceAssistantResponse = "ai-response"
	NamespaceHint              = "hint"
	NamespaceUserPreference    = "user-preference"
	NamespaceAggregateCount    = "aggregate-count"
)

// CacheNamespaceConfig holds the policy for one logical cache partition.
type CacheNamespaceConfig struct {
	TTL      time.Duration `yaml:"ttl" json:"ttl"`
	Capacity int           `yaml:"capacity" json:"capacity"`
}

// CacheConfig holds configuration for the in-process response cache.
type CacheConfig struct {
	Namespaces map[string]CacheNamespaceConfig `yaml:"namespaces" json:"namespaces"`

	// DefaultTTL and DefaultCapacity apply to namespaces touched at runtime
	// without an explicit entry in Namespaces.
	DefaultTTL      time.Duration `yaml:"default_ttl" json:"default_ttl"`
	DefaultCapacity int           `yaml:"default_capacity" json:"default_capacity"`
}

// NamespacePolicy resolves the effective policy for a namespace.
func (c CacheConfig) NamespacePolicy(namespace string) CacheNamespaceConfig {
	if nc, ok := c.Namespaces[namespace]; ok {
		if nc.TTL <= 0 {
			nc.TTL = c.DefaultTTL
		}
		if nc.Capacity <= 0 {
			nc.Capacity = c.DefaultCapacity
		}
		return nc
	}
	return CacheNamespaceConfig{TTL: c.DefaultTTL, Capacity: c.DefaultCapacity}
}

// CacheStats is a point-in-time snapshot of one namespace.
type CacheStats struct {
	Namespace string  `json:"namespace"`
	Entries   int     `json:"entries"`
	Hits      int64   `json:"hits"`
	Misses    int64   `json:"misses"`
	HitRate   float64 `json:"hit_rate"`
}
