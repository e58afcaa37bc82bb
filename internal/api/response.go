package api

import (
	"strings"

	"pauz-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

const requestIDLocalKey = "request_id"

// ErrorResponse represents a standard API error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    string `json:"code,omitzero"`
}

// requestID extracts the caller-supplied X-Request-ID or mints one, caching
// it in locals so every handler and log line for the request agrees.
func requestID(c *fiber.Ctx) string {
	if cached, ok := c.Locals(requestIDLocalKey).(string); ok && cached != "" {
		return cached
	}

	id := strings.TrimSpace(c.Get("X-Request-ID"))
	if id == "" || len(id) > 64 {
		id = uuid.NewString()
	}
	c.Locals(requestIDLocalKey, id)
	return id
}

// writeError maps an internal error onto the wire format, sanitizing
// anything that is not already an AppError.
func writeError(c *fiber.Ctx, err error, reqID string) error {
	appErr := models.SanitizeError(err)
	if appErr.StatusCode >= fiber.StatusInternalServerError {
		fiberlog.Errorf("[%s] %s: %s", reqID, c.Path(), appErr.Message)
	}
	return c.Status(appErr.GetStatusCode()).JSON(ErrorResponse{
		Error: ErrorDetail{
			Message: appErr.Message,
			Type:    string(appErr.Type),
			Code:    appErr.Code,
		},
	})
}
