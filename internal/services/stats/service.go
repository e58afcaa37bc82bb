package stats

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"pauz-backend/internal/models"
	"pauz-backend/internal/services/cache"
	"pauz-backend/internal/services/database"
)

// DefaultTTL bounds how stale a cached aggregate may get when a collaborator
// bypasses the invalidation contract.
const DefaultTTL = 5 * time.Minute

// streakWindow limits how far back the streak query reaches.
const streakWindow = 90 * 24 * time.Hour

// Service computes per-user journaling aggregates. Reads go through the
// cache; Compute hits the database directly.
type Service struct {
	db    *database.DB
	cache *cache.ReadThrough
	ttl   time.Duration
	clock func() time.Time
}

func NewService(db *database.DB, rt *cache.ReadThrough, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{
		db:    db,
		cache: rt,
		ttl:   ttl,
		clock: time.Now,
	}
}

// UserStats returns the aggregate for userID, recomputing on a cache miss.
func (s *Service) UserStats(ctx context.Context, userID string) (*models.UserStats, error) {
	if userID == "" {
		return nil, models.NewValidationError("user_id is required", nil)
	}

	key := cache.UserKey(userID, "stats")
	raw, err := s.cache.GetOrCompute(ctx, models.NamespaceAggregateCount, key, s.ttl,
		func(ctx context.Context) (string, error) {
			computed, err := s.Compute(ctx, userID)
			if err != nil {
				return "", err
			}
			encoded, err := json.Marshal(computed)
			if err != nil {
				return "", fmt.Errorf("failed to encode user stats: %w", err)
			}
			return string(encoded), nil
		})
	if err != nil {
		return nil, err
	}

	var result models.UserStats
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil, fmt.Errorf("failed to decode cached user stats: %w", err)
	}
	return &result, nil
}

// Compute runs the aggregate queries against the database, bypassing the
// cache.
func (s *Service) Compute(ctx context.Context, userID string) (*models.UserStats, error) {
	result := &models.UserStats{
		UserID:     userID,
		ComputedAt: s.clock().UTC(),
	}

	err := s.db.WithContext(ctx).Model(&models.Journal{}).
		Where("user_id = ?", userID).
		Count(&result.JournalCount).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count journal entries: %w", err)
	}

	err = s.db.WithContext(ctx).Model(&models.MoodEntry{}).
		Where("user_id = ?", userID).
		Count(&result.MoodEntryCount).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count mood entries: %w", err)
	}

	var timestamps []time.Time
	err = s.db.WithContext(ctx).Model(&models.Journal{}).
		Where("user_id = ? AND created_at > ?", userID, s.clock().Add(-streakWindow)).
		Order("created_at DESC").
		Pluck("created_at", &timestamps).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load entry timestamps: %w", err)
	}

	if len(timestamps) > 0 {
		last := timestamps[0]
		result.LastEntryAt = &last
	}
	result.StreakDays = streak(s.clock(), timestamps)

	return result, nil
}

// streak counts consecutive calendar days with at least one entry, walking
// back from today. A gap of one day is allowed at the head so a streak does
// not reset before the user has had a chance to write today.
func streak(now time.Time, timestamps []time.Time) int {
	if len(timestamps) == 0 {
		return 0
	}

	days := make(map[string]bool, len(timestamps))
	for _, ts := range timestamps {
		days[ts.UTC().Format("2006-01-02")] = true
	}

	day := now.UTC()
	if !days[day.Format("2006-01-02")] {
		day = day.AddDate(0, 0, -1)
	}

	count := 0
	for days[day.Format("2006-01-02")] {
		count++
		day = day.AddDate(0, 0, -1)
	}
	return count
}
