package assistant

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"pauz-backend/internal/models"
	"pauz-backend/internal/services/cache"
)

// mockProvider is a scriptable GenerativeProvider.
type mockProvider struct {
	name     string
	response string
	err      error
	blocking bool

	mu    sync.Mutex
	calls int
}

func (m *mockProvider) Name() string { return m.name }

func (m *mockProvider) Generate(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()

	if m.blocking {
		<-ctx.Done()
		return "", ctx.Err()
	}
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

func (m *mockProvider) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

const longResponse = "That sounds like a lot to carry. Want to write about what happened today?"

func newTestOrchestrator(primary, secondary models.GenerativeProvider) (*Orchestrator, *cache.Store) {
	store := cache.NewStore(models.CacheConfig{DefaultTTL: time.Minute, DefaultCapacity: 32})
	o := New(Config{
		Policy: models.AssistantConfig{
			ProviderTimeoutMs:  200,
			MinCacheableLength: 20,
		},
		Cache:     store,
		Fallbacks: NewFallbackPool(DefaultFallbackPools(), NewRoundRobinSelector()),
		Primary:   primary,
		Secondary: secondary,
	})
	return o, store
}

func TestRespondCachesProviderResult(t *testing.T) {
	primary := &mockProvider{name: "primary", response: longResponse}
	o, store := newTestOrchestrator(primary, nil)

	req := models.AssistantRequest{UserID: "alice", Input: "my week was really draining"}

	first, err := o.Respond(context.Background(), req, "req-1")
	if err != nil {
		t.Fatalf("Respond failed: %v", err)
	}
	if first.Source != models.StagePrimary || first.Cached {
		t.Errorf("first call source=%s cached=%v, want primary/false", first.Source, first.Cached)
	}

	second, err := o.Respond(context.Background(), req, "req-2")
	if err != nil {
		t.Fatalf("Respond failed: %v", err)
	}
	if second.Source != models.StageCache || !second.Cached {
		t.Errorf("second call source=%s cached=%v, want cache/true", second.Source, second.Cached)
	}
	if second.Text != first.Text {
		t.Error("cached response differs from original")
	}
	if primary.callCount() != 1 {
		t.Errorf("provider called %d times, want 1", primary.callCount())
	}
	if stats := store.Stats(models.NamespaceAssistantResponse); stats.Hits != 1 {
		t.Errorf("cache hits %d, want 1", stats.Hits)
	}
}

func TestRespondVolatileInputNeverCached(t *testing.T) {
	primary := &mockProvider{name: "primary", response: longResponse}
	o, store := newTestOrchestrator(primary, nil)

	req := models.AssistantRequest{UserID: "alice", Input: "hello"}

	for i := 0; i < 3; i++ {
		resp, err := o.Respond(context.Background(), req, "req-v")
		if err != nil {
			t.Fatalf("Respond failed: %v", err)
		}
		if resp.Cached {
			t.Fatalf("volatile input served from cache on call %d", i+1)
		}
	}

	if stats := store.Stats(models.NamespaceAssistantResponse); stats.Entries != 0 {
		t.Errorf("volatile input produced %d cache entries, want 0", stats.Entries)
	}
	if primary.callCount() != 3 {
		t.Errorf("provider called %d times, want 3 (no caching)", primary.callCount())
	}
}

func TestRespondTemplateFastPath(t *testing.T) {
	primary := &mockProvider{name: "primary", response: longResponse}
	o, _ := newTestOrchestrator(primary, nil)

	resp, err := o.Respond(context.Background(),
		models.AssistantRequest{UserID: "alice", Input: "Guided Journaling"}, "req-t")
	if err != nil {
		t.Fatalf("Respond failed: %v", err)
	}
	if resp.Source != models.StageTemplate {
		t.Errorf("source %s, want template", resp.Source)
	}
	if primary.callCount() != 0 {
		t.Error("template match still called the provider")
	}
}

func TestRespondEscalatesToSecondary(t *testing.T) {
	primary := &mockProvider{name: "primary", err: models.NewProviderError("primary", "down", nil)}
	secondary := &mockProvider{name: "secondary", response: longResponse}
	o, store := newTestOrchestrator(primary, secondary)

	resp, err := o.Respond(context.Background(),
		models.AssistantRequest{UserID: "alice", Input: "a tough stretch at work lately"}, "req-e")
	if err != nil {
		t.Fatalf("Respond failed: %v", err)
	}

	if resp.Source != models.StageSecondary {
		t.Errorf("source %s, want secondary", resp.Source)
	}
	if secondary.callCount() != 1 {
		t.Errorf("secondary called %d times, want exactly 1", secondary.callCount())
	}
	if stats := store.Stats(models.NamespaceAssistantResponse); stats.Entries != 1 {
		t.Errorf("secondary success not cache-written (%d entries)", stats.Entries)
	}
	if history := o.Conversations().History("alice"); len(history) != 2 {
		t.Errorf("conversation has %d turns, want 2", len(history))
	}
}

func TestRespondShortResultEscalates(t *testing.T) {
	primary := &mockProvider{name: "primary", response: "ok"}
	secondary := &mockProvider{name: "secondary", response: longResponse}
	o, _ := newTestOrchestrator(primary, secondary)

	resp, err := o.Respond(context.Background(),
		models.AssistantRequest{UserID: "alice", Input: "tell me about journaling benefits"}, "req-s")
	if err != nil {
		t.Fatalf("Respond failed: %v", err)
	}
	if resp.Source != models.StageSecondary {
		t.Errorf("degenerate primary output was accepted (source %s)", resp.Source)
	}
}

func TestRespondBothProvidersFailUsesDefault(t *testing.T) {
	primary := &mockProvider{name: "primary", err: models.NewProviderError("primary", "down", nil)}
	secondary := &mockProvider{name: "secondary", err: models.NewProviderError("secondary", "down", nil)}
	o, store := newTestOrchestrator(primary, secondary)

	resp, err := o.Respond(context.Background(),
		models.AssistantRequest{UserID: "alice", Input: "I'm so worried and nervous about tomorrow"}, "req-d")
	if err != nil {
		t.Fatalf("Respond must not fail when providers do: %v", err)
	}

	if resp.Source != models.StageDefault {
		t.Errorf("source %s, want default", resp.Source)
	}
	if resp.Text == "" {
		t.Error("default response is empty")
	}
	if resp.Category != "anxious" {
		t.Errorf("category %s, want anxious", resp.Category)
	}

	found := false
	for _, candidate := range DefaultFallbackPools()["anxious"] {
		if candidate == resp.Text {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("response %q is not from the anxious fallback pool", resp.Text)
	}

	// The default path is for variety under failure, never for reuse.
	if stats := store.Stats(models.NamespaceAssistantResponse); stats.Entries != 0 {
		t.Errorf("default response was cache-written (%d entries)", stats.Entries)
	}
}

func TestRespondAttemptTrace(t *testing.T) {
	primary := &mockProvider{name: "primary", err: models.NewProviderError("primary", "down", nil)}
	secondary := &mockProvider{name: "secondary", response: longResponse}
	o, _ := newTestOrchestrator(primary, secondary)

	resp, err := o.Respond(context.Background(),
		models.AssistantRequest{UserID: "alice", Input: "long day of meetings again"}, "req-a")
	if err != nil {
		t.Fatalf("Respond failed: %v", err)
	}

	stages := make([]string, len(resp.Attempts))
	for i, a := range resp.Attempts {
		stages[i] = a.Stage + ":" + a.Outcome
	}
	want := "cache:miss,template:miss,primary:error,secondary:hit"
	if got := strings.Join(stages, ","); got != want {
		t.Errorf("attempt trace %q, want %q", got, want)
	}
}

func TestRespondCancellation(t *testing.T) {
	primary := &mockProvider{name: "primary", blocking: true}
	o, store := newTestOrchestrator(primary, &mockProvider{name: "secondary", response: longResponse})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	var respErr error

	go func() {
		_, respErr = o.Respond(ctx,
			models.AssistantRequest{UserID: "alice", Input: "a question worth keeping around"}, "req-c")
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Respond did not return after cancellation")
	}

	if !models.IsCancellation(respErr) {
		t.Fatalf("expected cancellation error, got %v", respErr)
	}
	// Cancellation must not mutate shared state or fall through to the
	// deterministic default.
	if stats := store.Stats(models.NamespaceAssistantResponse); stats.Entries != 0 {
		t.Error("cancelled request wrote to the cache")
	}
	if history := o.Conversations().History("alice"); len(history) != 0 {
		t.Errorf("cancelled request appended %d conversation turns", len(history))
	}
}

func TestRespondTimeoutEscalates(t *testing.T) {
	primary := &mockProvider{name: "primary", blocking: true} // exceeds the 200ms budget
	secondary := &mockProvider{name: "secondary", response: longResponse}
	o, _ := newTestOrchestrator(primary, secondary)

	resp, err := o.Respond(context.Background(),
		models.AssistantRequest{UserID: "alice", Input: "a slow kind of evening today"}, "req-to")
	if err != nil {
		t.Fatalf("Respond failed: %v", err)
	}
	if resp.Source != models.StageSecondary {
		t.Errorf("source %s, want secondary after primary timeout", resp.Source)
	}

	var primaryAttempt *models.FallbackAttempt
	for i := range resp.Attempts {
		if resp.Attempts[i].Stage == models.StagePrimary {
			primaryAttempt = &resp.Attempts[i]
		}
	}
	if primaryAttempt == nil || primaryAttempt.Outcome != models.OutcomeTimeout {
		t.Errorf("primary timeout not recorded in trace: %+v", resp.Attempts)
	}
}

func TestRespondEmptyInputRejected(t *testing.T) {
	o, _ := newTestOrchestrator(&mockProvider{name: "primary", response: longResponse}, nil)

	_, err := o.Respond(context.Background(),
		models.AssistantRequest{UserID: "alice", Input: "   "}, "req-x")
	if err == nil {
		t.Fatal("expected error for empty input")
	}
	if !models.IsInvalidKey(err) {
		t.Errorf("expected invalid key error, got %v", err)
	}
}

func TestRespondConversationOrder(t *testing.T) {
	primary := &mockProvider{name: "primary", response: longResponse}
	o, _ := newTestOrchestrator(primary, nil)

	inputs := []string{"first note of my day", "second note of my day"}
	for _, input := range inputs {
		if _, err := o.Respond(context.Background(),
			models.AssistantRequest{UserID: "alice", Input: input}, "req-o"); err != nil {
			t.Fatalf("Respond failed: %v", err)
		}
	}

	history := o.Conversations().History("alice")
	if len(history) != 4 {
		t.Fatalf("history has %d turns, want 4", len(history))
	}
	if history[0].Content != inputs[0] || history[2].Content != inputs[1] {
		t.Error("conversation turns out of arrival order")
	}
	if history[0].Role != models.RoleUser || history[1].Role != models.RoleAssistant {
		t.Error("turn roles are wrong")
	}
}
