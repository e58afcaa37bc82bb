package cache

import (
	"testing"

	"pauz-backend/internal/models"
)

func TestDeriveStable(t *testing.T) {
	d := NewKeyDeriver([]string{"is_returning_user"})

	ctx := map[string]string{"is_returning_user": "true"}
	k1, err := d.Derive("How do hints work?", ctx)
	if err != nil {
		t.Fatalf("Derive failed: %v", err)
	}
	k2, err := d.Derive("  how do hints work?  ", ctx)
	if err != nil {
		t.Fatalf("Derive failed: %v", err)
	}

	if k1 != k2 {
		t.Errorf("normalized-equal inputs produced different keys: %q vs %q", k1, k2)
	}
	if len(k1) != derivedKeyLength {
		t.Errorf("key length %d, want %d", len(k1), derivedKeyLength)
	}
}

func TestDeriveSignificantContextOnly(t *testing.T) {
	d := NewKeyDeriver([]string{"is_returning_user"})

	base, err := d.Derive("hello world question", map[string]string{
		"is_returning_user": "true",
	})
	if err != nil {
		t.Fatalf("Derive failed: %v", err)
	}

	// Insignificant fields must not perturb the key.
	withNoise, err := d.Derive("hello world question", map[string]string{
		"is_returning_user": "true",
		"session_id":        "abc-123",
		"device":            "ios",
	})
	if err != nil {
		t.Fatalf("Derive failed: %v", err)
	}
	if base != withNoise {
		t.Error("insignificant context fields changed the derived key")
	}

	// A different significant value must produce a different key.
	flipped, err := d.Derive("hello world question", map[string]string{
		"is_returning_user": "false",
	})
	if err != nil {
		t.Fatalf("Derive failed: %v", err)
	}
	if base == flipped {
		t.Error("significant context change did not change the derived key")
	}
}

func TestDeriveEmptyInputRejected(t *testing.T) {
	d := NewKeyDeriver(nil)

	for _, input := range []string{"", "   ", "\t\n"} {
		_, err := d.Derive(input, nil)
		if err == nil {
			t.Errorf("Derive(%q) should fail", input)
			continue
		}
		if !models.IsInvalidKey(err) {
			t.Errorf("Derive(%q) returned %v, want invalid key error", input, err)
		}
	}
}
