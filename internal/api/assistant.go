package api

import (
	"strings"

	"pauz-backend/internal/models"
	"pauz-backend/internal/services/assistant"

	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"
)

// AssistantHandler serves the conversational reply and hint endpoints. Both
// run the same tiered pipeline; hints use their own cache namespace and
// template set so a reply never masquerades as a hint.
type AssistantHandler struct {
	replies *assistant.Orchestrator
	hints   *assistant.Orchestrator
}

func NewAssistantHandler(replies, hints *assistant.Orchestrator) *AssistantHandler {
	return &AssistantHandler{replies: replies, hints: hints}
}

// Reply handles POST /v1/assistant/reply.
func (h *AssistantHandler) Reply(c *fiber.Ctx) error {
	return h.respond(c, h.replies, "reply")
}

// Hint handles POST /v1/assistant/hint.
func (h *AssistantHandler) Hint(c *fiber.Ctx) error {
	return h.respond(c, h.hints, "hint")
}

func (h *AssistantHandler) respond(c *fiber.Ctx, o *assistant.Orchestrator, kind string) error {
	reqID := requestID(c)

	var req models.AssistantRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, models.NewValidationError("malformed request body", err), reqID)
	}
	if strings.TrimSpace(req.UserID) == "" {
		return writeError(c, models.NewValidationError("user_id is required", nil), reqID)
	}

	fiberlog.Infof("[%s] Assistant: %s request for user %s", reqID, kind, req.UserID)

	resp, err := o.Respond(c.UserContext(), req, reqID)
	if err != nil {
		return writeError(c, err, reqID)
	}
	return c.JSON(resp)
}
