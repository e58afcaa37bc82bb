package journal

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pauz-backend/internal/models"
	"pauz-backend/internal/services/cache"
	"pauz-backend/internal/services/classifier"
	"pauz-backend/internal/services/database"

	fiberlog "github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service persists journal and mood-garden entries. Every mutation
// synchronously drops the owner's cached aggregates before returning, so a
// read issued after a successful write never observes stale counts.
type Service struct {
	db          *database.DB
	aggregates  *cache.ReadThrough
	moods       *classifier.Classifier
	invalidated []string
}

// NewService creates a journal service. The invalidated namespaces default
// to the aggregate-count namespace when none are given.
func NewService(db *database.DB, aggregates *cache.ReadThrough, namespaces ...string) *Service {
	if len(namespaces) == 0 {
		namespaces = []string{models.NamespaceAggregateCount}
	}
	return &Service{
		db:          db,
		aggregates:  aggregates,
		moods:       classifier.New(classifier.DefaultMoodTable()),
		invalidated: namespaces,
	}
}

func (s *Service) CreateJournal(ctx context.Context, req *models.JournalCreateRequest) (*models.Journal, error) {
	if req.UserID == "" {
		return nil, models.NewValidationError("user_id is required", nil)
	}
	if strings.TrimSpace(req.Content) == "" {
		return nil, models.NewValidationError("content is required", nil)
	}

	kind := req.Kind
	if kind == "" {
		kind = models.JournalFree
	}

	entry := &models.Journal{
		ID:      uuid.NewString(),
		UserID:  req.UserID,
		Kind:    kind,
		Title:   req.Title,
		Content: req.Content,
		Mood:    s.moods.Classify(req.Content).Category,
	}

	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		return nil, fmt.Errorf("failed to create journal entry: %w", err)
	}

	s.invalidateUser(req.UserID)
	return entry, nil
}

func (s *Service) GetJournal(ctx context.Context, userID, id string) (*models.Journal, error) {
	var entry models.Journal
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("journal entry")
		}
		return nil, fmt.Errorf("failed to fetch journal entry: %w", err)
	}
	return &entry, nil
}

func (s *Service) ListJournals(ctx context.Context, userID string, limit int) ([]models.Journal, error) {
	if limit <= 0 {
		limit = 50
	}
	var entries []models.Journal
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}
	return entries, nil
}

func (s *Service) DeleteJournal(ctx context.Context, userID, id string) error {
	res := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Journal{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete journal entry: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("journal entry")
	}

	s.invalidateUser(userID)
	return nil
}

// CreateMoodEntry logs a mood. An explicit mood wins; otherwise the note is
// classified against the mood table.
func (s *Service) CreateMoodEntry(ctx context.Context, req *models.MoodEntryCreateRequest) (*models.MoodEntry, error) {
	if req.UserID == "" {
		return nil, models.NewValidationError("user_id is required", nil)
	}

	mood := strings.ToLower(strings.TrimSpace(req.Mood))
	if mood == "" {
		if strings.TrimSpace(req.Note) == "" {
			return nil, models.NewValidationError("either mood or note is required", nil)
		}
		mood = s.moods.Classify(req.Note).Category
	}

	entry := &models.MoodEntry{
		ID:         uuid.NewString(),
		UserID:     req.UserID,
		Mood:       mood,
		FlowerType: classifier.FlowerForMood(mood),
	}

	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		return nil, fmt.Errorf("failed to create mood entry: %w", err)
	}

	s.invalidateUser(req.UserID)
	return entry, nil
}

func (s *Service) ListMoodEntries(ctx context.Context, userID string, limit int) ([]models.MoodEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	var entries []models.MoodEntry
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list mood entries: %w", err)
	}
	return entries, nil
}

// invalidateUser runs before the mutation's caller sees success, which is
// what makes the write-through contract hold.
func (s *Service) invalidateUser(userID string) {
	for _, ns := range s.invalidated {
		if dropped := s.aggregates.InvalidateUser(ns, userID); dropped > 0 {
			fiberlog.Debugf("Journal: dropped %d cached aggregates in %s for user %s", dropped, ns, userID)
		}
	}
}
