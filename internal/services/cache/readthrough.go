package cache

import (
	"context"
	"strings"
	"time"

	"pauz-backend/internal/models"

	fiberlog "github.com/gofiber/fiber/v2/log"
	"golang.org/x/sync/singleflight"
)

// ComputeFunc produces the value for a missing key, typically by hitting
// the persistence layer.
type ComputeFunc func(ctx context.Context) (string, error)

// ReadThrough serves expensive aggregate reads through the cache store: a
// miss triggers synchronous recomputation and population before returning.
// Concurrent misses for the same key are collapsed into one computation.
type ReadThrough struct {
	store *Store
	group singleflight.Group
}

// NewReadThrough creates a read-through view over store.
func NewReadThrough(store *Store) *ReadThrough {
	return &ReadThrough{store: store}
}

// UserKey builds the per-user key convention used by aggregate namespaces,
// so that InvalidateUser can drop every aggregate a mutation affects.
func UserKey(userID string, parts ...string) string {
	b := strings.Builder{}
	b.WriteString("user:")
	b.WriteString(userID)
	for _, p := range parts {
		b.WriteByte(':')
		b.WriteString(p)
	}
	return b.String()
}

// GetOrCompute returns the cached value for key, invoking compute on a miss
// and storing the result with the given ttl. Errors from compute propagate
// to the caller and nothing is cached for them.
func (r *ReadThrough) GetOrCompute(
	ctx context.Context,
	namespace, key string,
	ttl time.Duration,
	compute ComputeFunc,
) (string, error) {
	if key == "" {
		return "", models.NewInvalidKeyError("read-through key must not be empty")
	}

	if value, ok := r.store.Get(namespace, key); ok {
		return value, nil
	}

	ch := r.group.DoChan(namespace+"\x00"+key, func() (any, error) {
		// Another goroutine may have populated the key while this one
		// waited on the flight group.
		if value, ok := r.store.Get(namespace, key); ok {
			return value, nil
		}

		value, err := compute(ctx)
		if err != nil {
			return "", err
		}

		if putErr := r.store.Put(namespace, key, value, ttl); putErr != nil {
			// Advisory cache: surface the computed value regardless.
			fiberlog.Warnf("ReadThrough: failed to populate %s/%s: %v", namespace, key, putErr)
		}
		return value, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	case <-ctx.Done():
		return "", models.NewCancellationError("aggregate read", ctx.Err())
	}
}

// InvalidateUser synchronously drops every aggregate cached for userID in
// the namespace. Mutating collaborators call this before returning success,
// so the next read is guaranteed fresh.
func (r *ReadThrough) InvalidateUser(namespace, userID string) int {
	// The trailing separator keeps "user:1" from also matching "user:10".
	return r.store.InvalidateByPrefix(namespace, UserKey(userID)+":")
}
