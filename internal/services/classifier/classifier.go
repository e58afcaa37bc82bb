// Package classifier scores free text against named keyword sets. It is a
// deliberately simple, auditable heuristic: its job is to pick a response
// tone bucket, not to do sentiment analysis, so determinism and speed win
// over precision.
package classifier

import (
	"strings"

	"pauz-backend/internal/models"
)

// Classifier holds an ordered keyword table. Classification is a pure
// function of (text, table); a Classifier carries no mutable state.
type Classifier struct {
	table []models.KeywordCategory
}

// New creates a classifier over table. Declaration order matters: score ties
// resolve to the first-declared category.
func New(table []models.KeywordCategory) *Classifier {
	return &Classifier{table: table}
}

// Classify lowercases text and counts, per category, how many of its
// keywords occur as substrings. The highest count wins; if every category
// scores zero the designated default category is returned with score 0.
func (c *Classifier) Classify(text string) models.ClassificationResult {
	lowered := strings.ToLower(text)

	result := models.ClassificationResult{
		Category:         models.DefaultCategory,
		ScoresByCategory: make(map[string]int, len(c.table)),
	}

	best := 0
	for _, category := range c.table {
		score := 0
		for _, keyword := range category.Keywords {
			if keyword != "" && strings.Contains(lowered, keyword) {
				score++
			}
		}
		result.ScoresByCategory[category.Name] = score
		if score > best {
			best = score
			result.Category = category.Name
			result.Score = score
		}
	}

	return result
}

// DefaultToneTable buckets assistant input for response selection. Order
// encodes priority for ties.
func DefaultToneTable() []models.KeywordCategory {
	return []models.KeywordCategory{
		{Name: "stressed", Keywords: []string{"tough day", "bad day", "work stress", "stressful", "overwhelmed", "exhausted"}},
		{Name: "relationship", Keywords: []string{"argument", "fight", "partner", "relationship", "broke up"}},
		{Name: "anxious", Keywords: []string{"anxious", "worried", "scared", "nervous", "panic"}},
		{Name: "happy", Keywords: []string{"excited", "happy", "proud", "accomplished", "great"}},
		{Name: "grateful", Keywords: []string{"grateful", "thankful", "blessed", "appreciate"}},
		{Name: "stuck", Keywords: []string{"stuck", "don't know", "blank", "confused", "lost"}},
		{Name: "help", Keywords: []string{"what can i do", "help", "how does", "features"}},
		{Name: "greeting", Keywords: []string{"hi", "hello", "hey", "what's up"}},
		{Name: "existential", Keywords: []string{"meaning", "purpose", "who am i", "understand myself"}},
	}
}

// DefaultMoodTable scores journal content for the mood garden.
func DefaultMoodTable() []models.KeywordCategory {
	return []models.KeywordCategory{
		{Name: "happy", Keywords: []string{"happy", "joy", "excited", "grateful", "optimistic", "cheerful", "wonderful", "amazing", "delighted", "pleased", "thrilled", "blessed"}},
		{Name: "sad", Keywords: []string{"sad", "disappointed", "grief", "melancholy", "blue", "down", "upset", "hurt", "sorrowful", "depressed", "mournful"}},
		{Name: "anxious", Keywords: []string{"anxious", "worried", "stressed", "nervous", "tense", "overwhelmed", "afraid", "fearful", "restless", "uneasy"}},
		{Name: "calm", Keywords: []string{"calm", "peaceful", "relaxed", "serene", "tranquil", "centered", "balanced", "still", "quiet", "content"}},
		{Name: "reflective", Keywords: []string{"reflective", "thoughtful", "contemplative", "pensive", "introspective", "curious", "wondering", "considering"}},
	}
}

// FlowerForMood maps a mood category to its garden flower.
func FlowerForMood(mood string) string {
	switch mood {
	case "happy":
		return "sunflower"
	case "sad":
		return "bluebell"
	case "anxious":
		return "lavender"
	case "calm":
		return "lotus"
	case "reflective":
		return "chamomile"
	default:
		return "daisy"
	}
}
