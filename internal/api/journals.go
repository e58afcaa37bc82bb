package api

import (
	"pauz-backend/internal/models"
	"pauz-backend/internal/services/journal"

	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"
)

// JournalHandler serves journal and mood-garden CRUD.
type JournalHandler struct {
	svc *journal.Service
}

func NewJournalHandler(svc *journal.Service) *JournalHandler {
	return &JournalHandler{svc: svc}
}

// Create handles POST /v1/journals.
func (h *JournalHandler) Create(c *fiber.Ctx) error {
	reqID := requestID(c)

	var req models.JournalCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, models.NewValidationError("malformed request body", err), reqID)
	}

	entry, err := h.svc.CreateJournal(c.UserContext(), &req)
	if err != nil {
		return writeError(c, err, reqID)
	}

	fiberlog.Infof("[%s] Journal: created entry %s for user %s", reqID, entry.ID, entry.UserID)
	return c.Status(fiber.StatusCreated).JSON(entry)
}

// Get handles GET /v1/journals/:id.
func (h *JournalHandler) Get(c *fiber.Ctx) error {
	reqID := requestID(c)

	entry, err := h.svc.GetJournal(c.UserContext(), c.Query("user_id"), c.Params("id"))
	if err != nil {
		return writeError(c, err, reqID)
	}
	return c.JSON(entry)
}

// List handles GET /v1/journals.
func (h *JournalHandler) List(c *fiber.Ctx) error {
	reqID := requestID(c)

	userID := c.Query("user_id")
	if userID == "" {
		return writeError(c, models.NewValidationError("user_id is required", nil), reqID)
	}

	entries, err := h.svc.ListJournals(c.UserContext(), userID, c.QueryInt("limit"))
	if err != nil {
		return writeError(c, err, reqID)
	}
	return c.JSON(fiber.Map{"journals": entries})
}

// Delete handles DELETE /v1/journals/:id.
func (h *JournalHandler) Delete(c *fiber.Ctx) error {
	reqID := requestID(c)

	userID := c.Query("user_id")
	if userID == "" {
		return writeError(c, models.NewValidationError("user_id is required", nil), reqID)
	}

	if err := h.svc.DeleteJournal(c.UserContext(), userID, c.Params("id")); err != nil {
		return writeError(c, err, reqID)
	}

	fiberlog.Infof("[%s] Journal: deleted entry %s for user %s", reqID, c.Params("id"), userID)
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateMood handles POST /v1/moods.
func (h *JournalHandler) CreateMood(c *fiber.Ctx) error {
	reqID := requestID(c)

	var req models.MoodEntryCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, models.NewValidationError("malformed request body", err), reqID)
	}

	entry, err := h.svc.CreateMoodEntry(c.UserContext(), &req)
	if err != nil {
		return writeError(c, err, reqID)
	}

	fiberlog.Infof("[%s] Mood: logged %s (%s) for user %s", reqID, entry.Mood, entry.FlowerType, entry.UserID)
	return c.Status(fiber.StatusCreated).JSON(entry)
}

// ListMoods handles GET /v1/moods.
func (h *JournalHandler) ListMoods(c *fiber.Ctx) error {
	reqID := requestID(c)

	userID := c.Query("user_id")
	if userID == "" {
		return writeError(c, models.NewValidationError("user_id is required", nil), reqID)
	}

	entries, err := h.svc.ListMoodEntries(c.UserContext(), userID, c.QueryInt("limit"))
	if err != nil {
		return writeError(c, err, reqID)
	}
	return c.JSON(fiber.Map{"moods": entries})
}
