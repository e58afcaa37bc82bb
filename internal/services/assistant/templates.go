package assistant

import "strings"

// TemplateSet answers well-known phrases instantly, before any provider is
// consulted. Matching is exact on the normalized input.
type TemplateSet struct {
	responses map[string]string
}

// NewTemplateSet builds a template set from phrase -> response pairs.
func NewTemplateSet(responses map[string]string) *TemplateSet {
	normalized := make(map[string]string, len(responses))
	for phrase, response := range responses {
		normalized[strings.ToLower(strings.TrimSpace(phrase))] = response
	}
	return &TemplateSet{responses: normalized}
}

// Match returns the template for input, if one exists.
func (t *TemplateSet) Match(input string) (string, bool) {
	response, ok := t.responses[strings.ToLower(strings.TrimSpace(input))]
	return response, ok
}

// DefaultTemplates are the canned answers for the questions users ask most,
// keyed by the exact phrase.
func DefaultTemplates() *TemplateSet {
	return NewTemplateSet(map[string]string{
		// General help
		"what can i do": "You can try free journaling to write freely with AI hints, guided journaling to explore topics with prompts, or track your mood in your garden. What interests you most?",
		"features":      "There's free journaling with contextual AI hints, guided journaling with structured prompts on any topic, and a mood garden for tracking emotional patterns.",

		// Getting started
		"start":          "Let's begin! You can try free journaling to write freely and get AI hints when stuck, or guided journaling to explore a specific topic with structured prompts. What feels right?",
		"begin":          "I'm excited to help you start! Try free journaling for open expression with AI support, or guided journaling for structured topic exploration. What calls to you?",
		"how do i start": "Starting is easy! Choose free journaling to write freely with hints, or guided journaling to explore specific topics with prompts. Both are beautiful ways to begin.",

		// Encouragement
		"encourage": "You're already doing something beautiful by showing up to journal. Your willingness to reflect matters deeply, whether you choose free writing or structured exploration.",
		"motivate":  "Your commitment to self-reflection is inspiring. Every moment you spend journaling contributes to your growth and understanding.",
		"inspire":   "You are your own best teacher. Trust what emerges as you write - your inner wisdom is speaking through the journaling process.",

		// Hints
		"hints":        "AI hints appear during free journaling! Start a free journal session, and if you get stuck, the AI analyzes your writing and provides contextual suggestions.",
		"hint garden":  "The garden is for mood tracking with flowers, not hints. For writing hints, use free journaling and ask for AI hints when you're stuck.",
		"garden hints": "The garden tracks your mood with different flowers - it's a beautiful visual way to see emotional patterns over time!",

		// Free journaling
		"free journaling": "Free journaling lets you write anything freely, with AI hints that analyze your writing and suggest what to explore next when you're stuck.",
		"free journal":    "Start a free journal session to write openly. AI hints will help if you get stuck by analyzing what you've written and providing contextual suggestions.",

		// Guided journaling
		"guided journaling": "Guided journaling gives you structured prompts on any topic - just choose a theme and AI generates thoughtful questions to explore.",
		"guided journal":    "Pick a topic for guided journaling and AI will create 3-5 specific prompts to help you explore that theme deeply.",

		// Garden/mood tracking
		"garden": "Your garden visualizes your mood with different flowers - it's a beautiful way to track emotional patterns over time and see how you're feeling.",
		"mood":   "Track your mood in the garden where different emotions bloom as different flowers - rose for love, sunflower for happiness, and so on.",
	})
}

// DefaultHintTemplates are canned writing prompts for common hint requests,
// used by the hint pipeline instead of the conversational templates.
func DefaultHintTemplates() *TemplateSet {
	return NewTemplateSet(map[string]string{
		"gratitude":  "Write about three small things from today that you'd miss if they were gone tomorrow.",
		"reflection": "Look back at this week. What moment would you most want to relive, and what does that tell you?",
		"free write": "Set a timer for five minutes and write whatever comes, without editing. Start with 'Right now I notice...'",
		"morning":    "What would make today feel complete? Write about the one thing that matters most this morning.",
		"evening":    "Before the day closes, write about something that surprised you today, however small.",
	})
}
