package api

import (
	"time"

	"pauz-backend/internal/services/database"

	"github.com/gofiber/fiber/v2"
)

// HealthHandler handles health check requests
type HealthHandler struct {
	db *database.DB
}

// NewHealthHandler creates a new health check handler. db may be nil when
// the service runs without persistence.
func NewHealthHandler(db *database.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// HealthCheck returns the health status of the service and its dependencies
func (h *HealthHandler) HealthCheck(c *fiber.Ctx) error {
	dbStatus := h.checkDatabase()

	overallStatus := "healthy"
	statusCode := fiber.StatusOK
	if dbStatus == "unhealthy" {
		overallStatus = "degraded"
		statusCode = fiber.StatusServiceUnavailable
	}

	return c.Status(statusCode).JSON(fiber.Map{
		"status":    overallStatus,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"checks": fiber.Map{
			"database": dbStatus,
		},
	})
}

func (h *HealthHandler) checkDatabase() string {
	if h.db == nil {
		return "disabled"
	}
	if err := h.db.Ping(); err != nil {
		return "unhealthy"
	}
	return "healthy"
}
