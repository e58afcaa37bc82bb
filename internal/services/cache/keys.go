package cache

import (
	"crypto/md5" // #nosec G401 - non-cryptographic cache key derivation
	"encoding/hex"
	"sort"
	"strings"

	"pauz-backend/internal/models"
)

// derivedKeyLength is the hex length keys are truncated to. MD5 truncated to
// 16 hex characters (64 bits) is collision-resistant enough for the tens of
// thousands of distinct keys a single process sees.
const derivedKeyLength = 16

// KeyDeriver turns (text, context) pairs into stable cache keys. Only the
// declared significant context fields participate, so semantically similar
// contexts collapse to one key.
type KeyDeriver struct {
	significant []string
}

// NewKeyDeriver creates a deriver that folds the given context fields into
// every key. Field order does not matter; serialization is sorted.
func NewKeyDeriver(significantFields []string) *KeyDeriver {
	fields := make([]string, len(significantFields))
	copy(fields, significantFields)
	sort.Strings(fields)
	return &KeyDeriver{significant: fields}
}

// Derive builds the cache key for rawText under contextFields. Two calls
// with equal normalized text and equal significant-context values always
// produce the same key. Empty text after normalization is rejected: empty
// inputs are context-free greetings that must not be conflated with
// substantive queries.
func (d *KeyDeriver) Derive(rawText string, contextFields map[string]string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(rawText))
	if normalized == "" {
		return "", models.NewInvalidKeyError("cannot derive cache key from empty input")
	}

	var b strings.Builder
	b.WriteString(normalized)
	for _, field := range d.significant {
		if value, ok := contextFields[field]; ok {
			b.WriteByte('|')
			b.WriteString(field)
			b.WriteByte('=')
			b.WriteString(value)
		}
	}

	sum := md5.Sum([]byte(b.String())) // #nosec G401
	return hex.EncodeToString(sum[:])[:derivedKeyLength], nil
}
