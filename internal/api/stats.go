package api

import (
	"pauz-backend/internal/services/stats"

	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"
)

// StatsHandler serves cached per-user aggregates.
type StatsHandler struct {
	svc *stats.Service
}

func NewStatsHandler(svc *stats.Service) *StatsHandler {
	return &StatsHandler{svc: svc}
}

// UserStats handles GET /v1/users/:id/stats.
func (h *StatsHandler) UserStats(c *fiber.Ctx) error {
	reqID := requestID(c)

	result, err := h.svc.UserStats(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err, reqID)
	}

	fiberlog.Debugf("[%s] Stats: served aggregates for user %s", reqID, c.Params("id"))
	return c.JSON(result)
}
