package assistant

import (
	"math/rand"
	"sync"
)

// FallbackSelector picks one response from a category's pool. The production
// selector is random for variety; tests swap in the round-robin one.
type FallbackSelector interface {
	Select(category string, pool []string) string
}

// RandomSelector picks uniformly at random.
type RandomSelector struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomSelector seeds a selector.
func NewRandomSelector(seed int64) *RandomSelector {
	return &RandomSelector{rng: rand.New(rand.NewSource(seed))}
}

func (s *RandomSelector) Select(category string, pool []string) string {
	if len(pool) == 0 {
		return ""
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return pool[s.rng.Intn(len(pool))]
}

// RoundRobinSelector cycles each category's pool deterministically.
type RoundRobinSelector struct {
	mu     sync.Mutex
	cursor map[string]int
}

// NewRoundRobinSelector creates a deterministic selector.
func NewRoundRobinSelector() *RoundRobinSelector {
	return &RoundRobinSelector{cursor: make(map[string]int)}
}

func (s *RoundRobinSelector) Select(category string, pool []string) string {
	if len(pool) == 0 {
		return ""
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.cursor[category]
	s.cursor[category] = (i + 1) % len(pool)
	return pool[i]
}

var _ FallbackSelector = (*RandomSelector)(nil)
var _ FallbackSelector = (*RoundRobinSelector)(nil)

// FallbackPool holds pre-written responses per tone category. The
// deterministic default stage of the chain draws from it; it is pure, local
// and never fails.
type FallbackPool struct {
	pools    map[string][]string
	selector FallbackSelector
}

// NewFallbackPool creates a pool with the given selector.
func NewFallbackPool(pools map[string][]string, selector FallbackSelector) *FallbackPool {
	return &FallbackPool{pools: pools, selector: selector}
}

// Pick returns a non-empty response for the category, falling back to the
// default pool for unknown categories.
func (p *FallbackPool) Pick(category string) string {
	pool, ok := p.pools[category]
	if !ok || len(pool) == 0 {
		pool = p.pools["default"]
	}
	if len(pool) == 0 {
		// Last line of defense; the default pool should always exist.
		return "I'm here with you. Want to write down what's on your mind?"
	}
	return p.selector.Select(category, pool)
}

// DefaultFallbackPools are the friendly canned responses per tone category.
func DefaultFallbackPools() map[string][]string {
	return map[string][]string{
		"stressed": {
			"Ugh, sounds rough. Wanna just vent about it? Free writing can help get it all out of your head.",
			"Oh no, tough days are the worst. Sometimes just writing it all out helps you breathe again.",
			"That sounds really stressful. Want to just brain dump? No pressure to make it pretty.",
			"Ugh, I hate those days. Wanna let it all out? Sometimes typing fast and messy actually helps.",
		},
		"relationship": {
			"Oh no, relationship stuff is the worst. Writing it down sometimes helps you see it clearer. Want to try?",
			"Ugh, I'm sorry. Relationships can be so complicated. Want to write through what happened?",
			"That sounds really hard. Sometimes getting thoughts out of your head and onto paper helps. Want to try?",
			"Oof, my heart. Want to write it out? Sometimes seeing the words helps sort the feelings.",
		},
		"anxious": {
			"Anxiety is awful, but you've got this. Sometimes just writing the spinning thoughts helps them slow down.",
			"Ugh, that anxious feeling is the worst. Want to try writing whatever's bouncing around in your head?",
			"I'm sorry you're feeling this way. Sometimes just writing the worries helps shrink them a bit.",
			"Anxiety is so exhausting. Want to let it all out? No need to make it pretty, just write.",
		},
		"happy": {
			"That's amazing! You should totally write about this while the feeling is fresh - capture that good stuff!",
			"Yesss! I love that for you! Want to save this feeling? Writing it down helps you remember it later.",
			"That's so awesome! Want to document this moment? Future you will love reading about it.",
			"Woohoo! That's incredible! Want to write it down so you never forget this feeling?",
		},
		"grateful": {
			"I love that energy! Writing down what you're grateful for is like sunshine for your brain. Want to free write about it?",
			"That's such a beautiful mindset! Want to list out what you're grateful for? It's like collecting happy moments.",
			"I love this for you! Gratitude journaling is basically magic. Want to write about what's feeling good?",
			"What a wonderful way to think! Want to explore that feeling? Writing about gratitude makes it grow.",
		},
		"stuck": {
			"Totally happens to everyone! Sometimes I just start with 'blah I have no idea what to write but...' and then it flows.",
			"Ugh, blank page syndrome is real! Want to try just writing 'I don't know what to write' over and over until something comes?",
			"That's so normal! Want me to give you a prompt? Or we can just write about feeling stuck - that counts too!",
			"No worries! Sometimes the best writing comes from 'I have no idea what to say here.' Want to try that?",
		},
		"help": {
			"Oh! So you can either free write about whatever's on your mind, do some guided prompts if you want structure, or track your mood. What feels good?",
			"Hey! So we've got free writing for whatever's happening, guided prompts when you want direction, or mood tracking. What's calling to you?",
			"Great question! You can vent freely with no structure, try some thoughtful prompts, or track how you're feeling. What sounds helpful?",
			"So your options are: free writing (total freedom), guided prompts (when you want help), or mood tracking. What feels right?",
		},
		"greeting": {
			"Hey! I'm your journaling buddy - what's on your mind?",
			"Hi there! Ready to write something or just chat?",
			"Hey! Want to do some journaling or just hang out for a bit?",
			"Hello! What's going on in your world today?",
		},
		"existential": {
			"Whoa, deep questions! I love it. You could either free write and see what comes up, or try some self-discovery prompts. What's your vibe?",
			"Ooh, the big stuff! Want to free write and see what emerges, or try some prompts that explore identity?",
			"I'm here for these questions! Want to just write whatever comes to mind, or try some structured self-discovery prompts?",
			"Deep thoughts! Want to free write about it, or try some prompts that explore meaning and purpose?",
		},
		"default": {
			"Hey! I'm your journaling buddy - you can free write, do some prompts, or just rant. Whatever you need!",
			"Hey there! Want to write something? We can do free writing, prompts, or just talk it out.",
			"Hi! Ready to get some thoughts out of your head? We've got options - whatever feels right!",
			"Hey! What's going on? Want to write it down, try a prompt, or just vent?",
		},
	}
}

// DefaultHintPools are fallback writing prompts per tone category, drawn on
// when no provider can generate a contextual hint.
func DefaultHintPools() map[string][]string {
	return map[string][]string{
		"stressed": {
			"Try finishing this sentence: 'The heaviest thing I'm carrying right now is...'",
			"Write about what a calmer version of today would have looked like.",
			"List everything weighing on you, then circle the one thing you can actually act on.",
		},
		"anxious": {
			"Write the worry down exactly as it sounds in your head, then answer it like a kind friend would.",
			"Describe the worst case, the best case, and the most likely case. Which feels truest?",
			"Try starting with: 'If the worry could talk, it would say...'",
		},
		"happy": {
			"Capture this moment in detail - where you are, what you notice, what made it good.",
			"Write a note to future you about today, for a day when things feel harder.",
			"What led up to this feeling? Trace it back and write the chain down.",
		},
		"existential": {
			"Write about a moment you felt most like yourself. What was present then?",
			"Finish this: 'If nothing was expected of me, I would...'",
			"Describe your life five years from now as if it already happened.",
		},
		"default": {
			"Try continuing from your last sentence with 'and what I really mean is...'",
			"Write about what you notice in your body right now, head to toe.",
			"Pick the strongest word you've written so far and write three more sentences about it.",
			"If this entry had a title, what would it be? Write about why.",
		},
	}
}
