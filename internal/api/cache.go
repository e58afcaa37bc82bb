package api

import (
	"pauz-backend/internal/services/cache"

	"github.com/gofiber/fiber/v2"
)

// CacheHandler exposes cache observability.
type CacheHandler struct {
	store *cache.Store
}

func NewCacheHandler(store *cache.Store) *CacheHandler {
	return &CacheHandler{store: store}
}

// Stats handles GET /v1/cache/stats, returning a per-namespace snapshot.
func (h *CacheHandler) Stats(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"namespaces": h.store.StatsAll()})
}
