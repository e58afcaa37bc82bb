package conversation

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"pauz-backend/internal/models"
)

func turn(role models.ConversationRole, content string) models.ConversationTurn {
	return models.ConversationTurn{Role: role, Content: content, Timestamp: time.Now()}
}

func TestAppendAndHistoryOrder(t *testing.T) {
	s := NewStore(10)

	s.Append("alice", turn(models.RoleUser, "hi"))
	s.Append("alice", turn(models.RoleAssistant, "hey! what's on your mind?"))
	s.Append("alice", turn(models.RoleUser, "rough day at work"))

	got := s.History("alice")
	if len(got) != 3 {
		t.Fatalf("history length %d, want 3", len(got))
	}
	if got[0].Content != "hi" || got[2].Content != "rough day at work" {
		t.Error("history is not in append order")
	}
}

func TestHistoryBounded(t *testing.T) {
	s := NewStore(10)

	for i := 0; i < 11; i++ {
		s.Append("alice", turn(models.RoleUser, fmt.Sprintf("turn %d", i)))
	}

	got := s.History("alice")
	if len(got) != 10 {
		t.Fatalf("history length %d after 11 appends, want 10", len(got))
	}
	// The oldest turn is dropped first.
	if got[0].Content != "turn 1" {
		t.Errorf("oldest surviving turn is %q, want %q", got[0].Content, "turn 1")
	}
	if got[9].Content != "turn 10" {
		t.Errorf("newest turn is %q, want %q", got[9].Content, "turn 10")
	}
}

func TestUnknownUserEmptyHistory(t *testing.T) {
	s := NewStore(10)

	if got := s.History("nobody"); len(got) != 0 {
		t.Errorf("unknown user has %d turns", len(got))
	}
}

func TestClear(t *testing.T) {
	s := NewStore(10)

	s.Append("alice", turn(models.RoleUser, "hi"))
	s.Clear("alice")

	if got := s.History("alice"); len(got) != 0 {
		t.Errorf("history survived Clear: %d turns", len(got))
	}
}

func TestRecent(t *testing.T) {
	s := NewStore(10)

	for i := 0; i < 8; i++ {
		s.Append("alice", turn(models.RoleUser, fmt.Sprintf("turn %d", i)))
	}

	got := s.Recent("alice", 3)
	if len(got) != 3 {
		t.Fatalf("Recent returned %d turns, want 3", len(got))
	}
	if got[0].Content != "turn 5" || got[2].Content != "turn 7" {
		t.Error("Recent returned the wrong window")
	}
}

func TestHistoryCopyIsIsolated(t *testing.T) {
	s := NewStore(10)

	s.Append("alice", turn(models.RoleUser, "original"))
	got := s.History("alice")
	got[0].Content = "mutated"

	if s.History("alice")[0].Content != "original" {
		t.Error("History returned a view into internal state")
	}
}

func TestConcurrentAppendsSameUser(t *testing.T) {
	s := NewStore(10)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				s.Append("alice", turn(models.RoleUser, "x"))
			}
		}()
	}
	wg.Wait()

	if got := s.History("alice"); len(got) != 10 {
		t.Errorf("history length %d under concurrency, want exactly 10", len(got))
	}
}
