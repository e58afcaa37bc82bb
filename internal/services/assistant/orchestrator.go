// Package assistant orchestrates the response chain for conversational
// generation: cache, fast templates, generative providers, then a
// deterministic local default. The caller always gets a usable response or
// a cancellation error, never a raw provider failure.
package assistant

import (
	"context"
	"errors"
	"strings"
	"time"

	"pauz-backend/internal/models"
	"pauz-backend/internal/services/cache"
	"pauz-backend/internal/services/classifier"
	"pauz-backend/internal/services/conversation"

	fiberlog "github.com/gofiber/fiber/v2/log"
)

// minUsableLength rejects degenerate provider output; anything shorter
// escalates to the next chain stage.
const minUsableLength = 10

// defaultVolatilePatterns bypass the cache so frequent conversational
// phrases keep their variety.
var defaultVolatilePatterns = []string{
	"hi", "hello", "hey", "how are you", "what's up", "help", "stuck",
}

// Config wires an Orchestrator's collaborators.
type Config struct {
	Policy        models.AssistantConfig
	Namespace     string
	Cache         *cache.Store
	Conversations *conversation.Store
	Classifier    *classifier.Classifier
	Templates     *TemplateSet
	Fallbacks     *FallbackPool
	Primary       models.GenerativeProvider
	Secondary     models.GenerativeProvider
}

// Orchestrator runs the fallback chain for one inbound request.
type Orchestrator struct {
	policy    models.AssistantConfig
	namespace string

	cache      *cache.Store
	keys       *cache.KeyDeriver
	conv       *conversation.Store
	classifier *classifier.Classifier
	templates  *TemplateSet
	fallbacks  *FallbackPool
	prompts    *promptBuilder

	primary   models.GenerativeProvider
	secondary models.GenerativeProvider
}

// New creates an orchestrator, filling unset collaborators with defaults.
func New(cfg Config) *Orchestrator {
	if cfg.Namespace == "" {
		cfg.Namespace = models.NamespaceAssistantResponse
	}
	if cfg.Cache == nil {
		cfg.Cache = cache.NewStore(models.CacheConfig{})
	}
	if cfg.Classifier == nil {
		cfg.Classifier = classifier.New(classifier.DefaultToneTable())
	}
	if cfg.Templates == nil {
		cfg.Templates = DefaultTemplates()
	}
	if cfg.Fallbacks == nil {
		cfg.Fallbacks = NewFallbackPool(DefaultFallbackPools(), NewRandomSelector(time.Now().UnixNano()))
	}
	if cfg.Conversations == nil {
		cfg.Conversations = conversation.NewStore(cfg.Policy.HistoryLimit)
	}
	if len(cfg.Policy.VolatilePatterns) == 0 {
		cfg.Policy.VolatilePatterns = defaultVolatilePatterns
	}
	if cfg.Policy.MinCacheableLength <= 0 {
		cfg.Policy.MinCacheableLength = 20
	}
	if cfg.Policy.PromptTurns <= 0 {
		cfg.Policy.PromptTurns = 6
	}

	return &Orchestrator{
		policy:     cfg.Policy,
		namespace:  cfg.Namespace,
		cache:      cfg.Cache,
		keys:       cache.NewKeyDeriver(cfg.Policy.SignificantContextFields),
		conv:       cfg.Conversations,
		classifier: cfg.Classifier,
		templates:  cfg.Templates,
		fallbacks:  cfg.Fallbacks,
		prompts:    newPromptBuilder(),
		primary:    cfg.Primary,
		secondary:  cfg.Secondary,
	}
}

// Conversations exposes the underlying history store.
func (o *Orchestrator) Conversations() *conversation.Store {
	return o.conv
}

// Respond runs the chain for req and returns the winning response.
// Only invalid input and caller cancellation surface as errors; provider
// failures are absorbed and drive escalation.
func (o *Orchestrator) Respond(ctx context.Context, req models.AssistantRequest, requestID string) (*models.AssistantResponse, error) {
	if req.UserID == "" {
		return nil, models.NewValidationError("user id is required", nil)
	}

	input := strings.TrimSpace(req.Input)
	key, err := o.keys.Derive(input, req.Context)
	if err != nil {
		return nil, err
	}

	tone := o.classifier.Classify(input)
	volatile := o.isVolatile(input)
	var attempts []models.FallbackAttempt

	// CACHE_LOOKUP
	if volatile {
		attempts = append(attempts, models.FallbackAttempt{Stage: models.StageCache, Outcome: models.OutcomeSkipped})
		fiberlog.Debugf("[%s] Assistant: volatile input, bypassing cache", requestID)
	} else {
		start := time.Now()
		if cached, ok := o.cache.Get(o.namespace, key); ok {
			attempts = append(attempts, models.FallbackAttempt{
				Stage: models.StageCache, Outcome: models.OutcomeHit, Latency: time.Since(start),
			})
			fiberlog.Infof("[%s] Assistant: cache hit for %q", requestID, truncate(input, 30))
			return o.finish(req.UserID, input, cached, models.StageCache, tone.Category, true, attempts), nil
		}
		attempts = append(attempts, models.FallbackAttempt{
			Stage: models.StageCache, Outcome: models.OutcomeMiss, Latency: time.Since(start),
		})
	}

	// FAST_TEMPLATE
	if response, ok := o.templates.Match(input); ok {
		attempts = append(attempts, models.FallbackAttempt{Stage: models.StageTemplate, Outcome: models.OutcomeHit})
		fiberlog.Infof("[%s] Assistant: fast template match for %q", requestID, truncate(input, 30))
		o.cacheWrite(key, response, volatile, requestID)
		return o.finish(req.UserID, input, response, models.StageTemplate, tone.Category, false, attempts), nil
	}
	attempts = append(attempts, models.FallbackAttempt{Stage: models.StageTemplate, Outcome: models.OutcomeMiss})

	// PRIMARY_PROVIDER -> SECONDARY_PROVIDER
	prompt := o.prompts.Build(o.conv.Recent(req.UserID, o.policy.PromptTurns), input)
	for _, stage := range []struct {
		name     string
		provider models.GenerativeProvider
	}{
		{models.StagePrimary, o.primary},
		{models.StageSecondary, o.secondary},
	} {
		if stage.provider == nil {
			continue
		}

		text, attempt, err := o.callProvider(ctx, stage.provider, prompt, stage.name)
		attempts = append(attempts, attempt)
		if err != nil {
			// Caller cancellation is not a provider failure: abort the
			// chain without caching, appending, or falling back.
			if models.IsCancellation(err) {
				fiberlog.Infof("[%s] Assistant: request cancelled during %s provider", requestID, stage.name)
				return nil, err
			}
			fiberlog.Warnf("[%s] Assistant: %s provider %s failed (%s): %v",
				requestID, stage.name, stage.provider.Name(), attempt.Outcome, err)
			continue
		}

		fiberlog.Infof("[%s] Assistant: %s provider %s succeeded in %v",
			requestID, stage.name, stage.provider.Name(), attempt.Latency)
		o.cacheWrite(key, text, volatile, requestID)
		return o.finish(req.UserID, input, text, stage.name, tone.Category, false, attempts), nil
	}

	// DETERMINISTIC_DEFAULT: pure, local, never fails, never cached -
	// its purpose is variety under failure, not reuse.
	response := o.fallbacks.Pick(tone.Category)
	attempts = append(attempts, models.FallbackAttempt{Stage: models.StageDefault, Outcome: models.OutcomeHit})
	fiberlog.Infof("[%s] Assistant: all providers exhausted, using %s fallback", requestID, tone.Category)
	return o.finish(req.UserID, input, response, models.StageDefault, tone.Category, false, attempts), nil
}

// callProvider runs one provider stage under the configured timeout.
func (o *Orchestrator) callProvider(
	ctx context.Context,
	provider models.GenerativeProvider,
	prompt, stage string,
) (string, models.FallbackAttempt, error) {
	attempt := models.FallbackAttempt{Stage: stage, Provider: provider.Name()}

	callCtx, cancel := context.WithTimeout(ctx, o.policy.ProviderTimeout())
	defer cancel()

	start := time.Now()
	text, err := provider.Generate(callCtx, prompt)
	attempt.Latency = time.Since(start)

	if ctx.Err() != nil {
		attempt.Outcome = models.OutcomeError
		return "", attempt, models.NewCancellationError(stage+" provider", ctx.Err())
	}
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			attempt.Outcome = models.OutcomeTimeout
			return "", attempt, models.NewProviderTimeoutError(provider.Name(), err)
		}
		attempt.Outcome = models.OutcomeError
		return "", attempt, err
	}

	text = strings.TrimSpace(text)
	if len(text) < minUsableLength {
		attempt.Outcome = models.OutcomeError
		return "", attempt, models.NewProviderError(provider.Name(), "response below usable length", nil)
	}

	attempt.Outcome = models.OutcomeHit
	return text, attempt, nil
}

// cacheWrite stores a winning response unless the input was volatile or the
// result is too short to be worth keeping.
func (o *Orchestrator) cacheWrite(key, response string, volatile bool, requestID string) {
	if volatile {
		return
	}
	if len(response) < o.policy.MinCacheableLength {
		fiberlog.Debugf("[%s] Assistant: result below cacheable length, not cached", requestID)
		return
	}
	if err := o.cache.Put(o.namespace, key, response, o.policy.ResponseTTL); err != nil {
		// Advisory cache: a failed write never blocks the response.
		fiberlog.Warnf("[%s] Assistant: cache write failed: %v", requestID, err)
	}
}

// finish appends both turns to the conversation and assembles the response.
// Every terminal transition of the chain lands here.
func (o *Orchestrator) finish(
	userID, input, response, source, category string,
	cached bool,
	attempts []models.FallbackAttempt,
) *models.AssistantResponse {
	now := time.Now()
	o.conv.Append(userID, models.ConversationTurn{Role: models.RoleUser, Content: input, Timestamp: now})
	o.conv.Append(userID, models.ConversationTurn{Role: models.RoleAssistant, Content: response, Timestamp: now})

	return &models.AssistantResponse{
		Text:     response,
		Source:   source,
		Category: category,
		Cached:   cached,
		Attempts: attempts,
	}
}

func (o *Orchestrator) isVolatile(input string) bool {
	lowered := strings.ToLower(input)
	for _, pattern := range o.policy.VolatilePatterns {
		if pattern != "" && strings.Contains(lowered, pattern) {
			return true
		}
	}
	return false
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
