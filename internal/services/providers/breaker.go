package providers

import (
	"context"
	"fmt"
	"sync"
	"time"

	"pauz-backend/internal/models"

	fiberlog "github.com/gofiber/fiber/v2/log"
)

// State is the circuit breaker state.
type State int

const (
	Closed State = iota
	Open
	HalfOpen
)

func (s State) String() string {
	switch s {
	case Closed:
		return "Closed"
	case Open:
		return "Open"
	case HalfOpen:
		return "HalfOpen"
	default:
		return fmt.Sprintf("Unknown(%d)", int(s))
	}
}

// BreakerConfig tunes one provider's circuit breaker.
type BreakerConfig struct {
	FailureThreshold int           `yaml:"failure_threshold" json:"failure_threshold"`
	SuccessThreshold int           `yaml:"success_threshold" json:"success_threshold"`
	ResetAfter       time.Duration `yaml:"reset_after" json:"reset_after"`
}

func (c BreakerConfig) withDefaults() BreakerConfig {
	if c.FailureThreshold <= 0 {
		c.FailureThreshold = 3
	}
	if c.SuccessThreshold <= 0 {
		c.SuccessThreshold = 2
	}
	if c.ResetAfter <= 0 {
		c.ResetAfter = 30 * time.Second
	}
	return c
}

// Breaker wraps a provider with a local closed/open/half-open circuit. An
// open circuit short-circuits the call as an immediate provider error so the
// fallback chain escalates without waiting on a backend that is down.
// Breaker state is per-process; there is no shared store.
type Breaker struct {
	inner models.GenerativeProvider
	cfg   BreakerConfig

	mu          sync.Mutex
	state       State
	failures    int
	successes   int
	lastFailure time.Time

	clock func() time.Time
}

// WithBreaker wraps provider with circuit breaking.
func WithBreaker(provider models.GenerativeProvider, cfg BreakerConfig) *Breaker {
	return &Breaker{
		inner: provider,
		cfg:   cfg.withDefaults(),
		clock: time.Now,
	}
}

func (b *Breaker) Name() string { return b.inner.Name() }

// Generate forwards to the wrapped provider when the circuit allows it.
func (b *Breaker) Generate(ctx context.Context, prompt string) (string, error) {
	if !b.allow() {
		return "", models.NewProviderError(b.inner.Name(), "circuit breaker open", nil)
	}

	text, err := b.inner.Generate(ctx, prompt)
	if err != nil {
		// Caller cancellation says nothing about backend health.
		if ctx.Err() == nil {
			b.recordFailure()
		}
		return "", err
	}

	b.recordSuccess()
	return text, nil
}

// State reports the current breaker state, accounting for reset timeouts.
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.currentStateLocked()
}

func (b *Breaker) currentStateLocked() State {
	if b.state == Open && b.clock().Sub(b.lastFailure) >= b.cfg.ResetAfter {
		b.state = HalfOpen
		b.successes = 0
		fiberlog.Infof("Breaker: %s transitioned Open -> HalfOpen", b.inner.Name())
	}
	return b.state
}

func (b *Breaker) allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.currentStateLocked() != Open
}

func (b *Breaker) recordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.failures = 0
	if b.state == HalfOpen {
		b.successes++
		if b.successes >= b.cfg.SuccessThreshold {
			b.state = Closed
			b.successes = 0
			fiberlog.Infof("Breaker: %s recovered, HalfOpen -> Closed", b.inner.Name())
		}
	}
}

func (b *Breaker) recordFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.failures++
	b.lastFailure = b.clock()

	// A half-open probe failure reopens immediately; a closed circuit opens
	// once failures reach the threshold.
	if b.state == HalfOpen || (b.state == Closed && b.failures >= b.cfg.FailureThreshold) {
		b.state = Open
		b.successes = 0
		fiberlog.Warnf("Breaker: %s opened after %d consecutive failures", b.inner.Name(), b.failures)
	}
}
