package models

import "time"

// JournalKind distinguishes free-form entries from guided sessions.
type JournalKind string

const (
	JournalFree   JournalKind = "free"
	JournalGuided JournalKind = "guided"
)

// Journal is one journal entry. Persistence is a collaborator of the cache
// layer: every mutation must invalidate the owner's aggregate namespaces
// before returning.
type Journal struct {
	ID        string      `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID    string      `gorm:"index;not null" json:"user_id"`
	Kind      JournalKind `gorm:"type:varchar(16);default:'free'" json:"kind"`
	Title     string      `json:"title,omitzero"`
	Content   string      `gorm:"type:text" json:"content"`
	Mood      string      `gorm:"type:varchar(32)" json:"mood,omitzero"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// MoodEntry is one mood-garden record.
type MoodEntry struct {
	ID         string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID     string    `gorm:"index;not null" json:"user_id"`
	Mood       string    `gorm:"type:varchar(32);not null" json:"mood"`
	FlowerType string    `gorm:"type:varchar(32)" json:"flower_type,omitzero"`
	CreatedAt  time.Time `json:"created_at"`
}

// JournalCreateRequest is the payload for creating a journal entry.
type JournalCreateRequest struct {
	UserID  string      `json:"user_id"`
	Kind    JournalKind `json:"kind,omitzero"`
	Title   string      `json:"title,omitzero"`
	Content string      `json:"content"`
}

// MoodEntryCreateRequest is the payload for logging a mood. When Mood is
// empty it is classified from Note.
type MoodEntryCreateRequest struct {
	UserID string `json:"user_id"`
	Mood   string `json:"mood,omitzero"`
	Note   string `json:"note,omitzero"`
}

// UserStats is the expensive per-user aggregate served through the
// read-through cache.
type UserStats struct {
	UserID         string     `json:"user_id"`
	JournalCount   int64      `json:"journal_count"`
	MoodEntryCount int64      `json:"mood_entry_count"`
	StreakDays     int        `json:"streak_days"`
	LastEntryAt    *time.Time `json:"last_entry_at,omitzero"`
	ComputedAt     time.Time  `json:"computed_at"`
}
