// Package conversation keeps short-lived per-user dialogue context for the
// assistant. History is bounded because generation quality depends on recent
// turns only: unbounded history dilutes prompts and costs memory.
package conversation

import (
	"sync"

	"pauz-backend/internal/models"
)

// DefaultHistoryLimit matches the assistant's prompt window.
const DefaultHistoryLimit = 10

// history is one user's bounded ordered turn sequence. Each history carries
// its own lock so different users never contend.
type history struct {
	mu    sync.Mutex
	turns []models.ConversationTurn
}

// Store holds every user's conversation history. Histories are created
// lazily on first append and only reclaimed with the process.
type Store struct {
	mu        sync.RWMutex
	histories map[string]*history
	limit     int
}

// NewStore creates a conversation store capping each user at limit turns.
// A non-positive limit falls back to DefaultHistoryLimit.
func NewStore(limit int) *Store {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &Store{
		histories: make(map[string]*history),
		limit:     limit,
	}
}

func (s *Store) historyFor(userID string) *history {
	s.mu.RLock()
	h, ok := s.histories[userID]
	s.mu.RUnlock()
	if ok {
		return h
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if h, ok = s.histories[userID]; ok {
		return h
	}
	h = &history{}
	s.histories[userID] = h
	return h
}

// Append adds a turn to userID's history, dropping the oldest turns first
// once the cap is reached. Appends for the same user are atomic with respect
// to each other.
func (s *Store) Append(userID string, turn models.ConversationTurn) {
	h := s.historyFor(userID)

	h.mu.Lock()
	defer h.mu.Unlock()

	h.turns = append(h.turns, turn)
	if overflow := len(h.turns) - s.limit; overflow > 0 {
		h.turns = append(h.turns[:0], h.turns[overflow:]...)
	}
}

// History returns a copy of userID's ordered turns, oldest first. Unknown
// users get an empty history, never an error.
func (s *Store) History(userID string) []models.ConversationTurn {
	s.mu.RLock()
	h, ok := s.histories[userID]
	s.mu.RUnlock()
	if !ok {
		return nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]models.ConversationTurn, len(h.turns))
	copy(out, h.turns)
	return out
}

// Recent returns up to n of the newest turns, oldest first.
func (s *Store) Recent(userID string, n int) []models.ConversationTurn {
	turns := s.History(userID)
	if n <= 0 || len(turns) <= n {
		return turns
	}
	return turns[len(turns)-n:]
}

// Clear drops userID's history.
func (s *Store) Clear(userID string) {
	s.mu.Lock()
	delete(s.histories, userID)
	s.mu.Unlock()
}
