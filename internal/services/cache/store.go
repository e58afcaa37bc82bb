package cache

import (
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"pauz-backend/internal/models"

	fiberlog "github.com/gofiber/fiber/v2/log"
	lru "github.com/hashicorp/golang-lru/v2"
)

// entry is one cached payload. A read refreshes recency but never extends
// the TTL; expiry is always measured from createdAt.
type entry struct {
	value     string
	createdAt time.Time
	ttl       time.Duration
	hitCount  int64
}

func (e *entry) expired(now time.Time) bool {
	return e.ttl > 0 && now.Sub(e.createdAt) > e.ttl
}

// namespace is one logical cache partition with its own lock, policy and
// counters. Namespaces never share keys and never share locks.
type namespace struct {
	mu     sync.RWMutex
	lru    *lru.Cache[string, *entry]
	policy models.CacheNamespaceConfig

	hits   atomic.Int64
	misses atomic.Int64
}

// Store is the process-wide response cache. It is advisory: failures in the
// cache path are logged and reported as misses so callers always fall
// through to recomputation.
type Store struct {
	mu         sync.RWMutex
	cfg        models.CacheConfig
	namespaces map[string]*namespace

	clock func() time.Time
}

// NewStore creates a cache store. Namespaces are created lazily on first use
// with the policy resolved from cfg.
func NewStore(cfg models.CacheConfig) *Store {
	if cfg.DefaultTTL <= 0 {
		cfg.DefaultTTL = 5 * time.Minute
	}
	if cfg.DefaultCapacity <= 0 {
		cfg.DefaultCapacity = 512
	}
	return &Store{
		cfg:        cfg,
		namespaces: make(map[string]*namespace),
		clock:      time.Now,
	}
}

func (s *Store) namespaceFor(name string) (*namespace, error) {
	s.mu.RLock()
	ns, ok := s.namespaces[name]
	s.mu.RUnlock()
	if ok {
		return ns, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if ns, ok = s.namespaces[name]; ok {
		return ns, nil
	}

	policy := s.cfg.NamespacePolicy(name)
	backing, err := lru.New[string, *entry](policy.Capacity)
	if err != nil {
		return nil, models.NewCacheUnavailableError("failed to create namespace "+name, err)
	}
	ns = &namespace{lru: backing, policy: policy}
	s.namespaces[name] = ns
	fiberlog.Debugf("CacheStore: namespace %s created (ttl=%s, capacity=%d)",
		name, policy.TTL, policy.Capacity)
	return ns, nil
}

// Put stores value under key. A ttl <= 0 uses the namespace default.
// Inserting beyond capacity evicts the least recently accessed entry.
// The only caller error is an empty key.
func (s *Store) Put(namespaceName, key, value string, ttl time.Duration) error {
	if key == "" {
		return models.NewInvalidKeyError("cache key must not be empty")
	}

	ns, err := s.namespaceFor(namespaceName)
	if err != nil {
		// Advisory cache: an unusable namespace must not block the caller.
		fiberlog.Warnf("CacheStore: put to %s dropped: %v", namespaceName, err)
		return nil
	}
	if ttl <= 0 {
		ttl = ns.policy.TTL
	}

	ns.mu.Lock()
	evicted := ns.lru.Add(key, &entry{
		value:     value,
		createdAt: s.clock(),
		ttl:       ttl,
	})
	ns.mu.Unlock()

	if evicted {
		fiberlog.Debugf("CacheStore: %s at capacity, evicted least recently used entry", namespaceName)
	}
	return nil
}

// Get returns the cached value for key. Expired entries are removed as a
// side effect and reported as misses.
func (s *Store) Get(namespaceName, key string) (string, bool) {
	if key == "" {
		return "", false
	}

	s.mu.RLock()
	ns, ok := s.namespaces[namespaceName]
	s.mu.RUnlock()
	if !ok {
		return "", false
	}

	ns.mu.RLock()
	e, found := ns.lru.Get(key)
	expired := found && e.expired(s.clock())
	ns.mu.RUnlock()

	if !found {
		ns.misses.Add(1)
		return "", false
	}

	if expired {
		// Upgrade to the exclusive lock for removal; another goroutine may
		// have replaced the entry in between, so re-check before deleting.
		ns.mu.Lock()
		if cur, ok := ns.lru.Peek(key); ok && cur.expired(s.clock()) {
			ns.lru.Remove(key)
			fiberlog.Debugf("CacheStore: %s expired entry removed (served %d hits)",
				namespaceName, cur.hitCount)
		}
		ns.mu.Unlock()
		ns.misses.Add(1)
		return "", false
	}

	atomic.AddInt64(&e.hitCount, 1)
	ns.hits.Add(1)
	return e.value, true
}

// Invalidate removes a single key from a namespace.
func (s *Store) Invalidate(namespaceName, key string) {
	s.mu.RLock()
	ns, ok := s.namespaces[namespaceName]
	s.mu.RUnlock()
	if !ok {
		return
	}

	ns.mu.Lock()
	ns.lru.Remove(key)
	ns.mu.Unlock()
}

// InvalidateByPrefix removes every key in the namespace sharing prefix and
// returns how many were dropped. Used when an underlying aggregate changes.
func (s *Store) InvalidateByPrefix(namespaceName, prefix string) int {
	s.mu.RLock()
	ns, ok := s.namespaces[namespaceName]
	s.mu.RUnlock()
	if !ok {
		return 0
	}

	ns.mu.Lock()
	defer ns.mu.Unlock()

	removed := 0
	for _, key := range ns.lru.Keys() {
		if strings.HasPrefix(key, prefix) {
			ns.lru.Remove(key)
			removed++
		}
	}
	if removed > 0 {
		fiberlog.Debugf("CacheStore: invalidated %d entries in %s with prefix %q",
			removed, namespaceName, prefix)
	}
	return removed
}

// Stats returns a point-in-time snapshot for one namespace.
func (s *Store) Stats(namespaceName string) models.CacheStats {
	s.mu.RLock()
	ns, ok := s.namespaces[namespaceName]
	s.mu.RUnlock()

	stats := models.CacheStats{Namespace: namespaceName}
	if !ok {
		return stats
	}

	ns.mu.RLock()
	stats.Entries = ns.lru.Len()
	ns.mu.RUnlock()

	stats.Hits = ns.hits.Load()
	stats.Misses = ns.misses.Load()
	if total := stats.Hits + stats.Misses; total > 0 {
		stats.HitRate = float64(stats.Hits) / float64(total)
	}
	return stats
}

// StatsAll snapshots every live namespace.
func (s *Store) StatsAll() []models.CacheStats {
	s.mu.RLock()
	names := make([]string, 0, len(s.namespaces))
	for name := range s.namespaces {
		names = append(names, name)
	}
	s.mu.RUnlock()

	all := make([]models.CacheStats, 0, len(names))
	for _, name := range names {
		all = append(all, s.Stats(name))
	}
	return all
}
