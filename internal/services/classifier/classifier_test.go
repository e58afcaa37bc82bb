package classifier

import (
	"reflect"
	"testing"

	"pauz-backend/internal/models"
)

func testTable() []models.KeywordCategory {
	return []models.KeywordCategory{
		{Name: "stressed", Keywords: []string{"stress", "overwhelmed", "tough day"}},
		{Name: "happy", Keywords: []string{"happy", "excited", "great"}},
		{Name: "stuck", Keywords: []string{"stuck", "blank"}},
	}
}

func TestClassifyPicksHighestScore(t *testing.T) {
	c := New(testTable())

	got := c.Classify("Work stress has me so overwhelmed, what a tough day")
	if got.Category != "stressed" {
		t.Errorf("category %q, want stressed", got.Category)
	}
	if got.Score != 3 {
		t.Errorf("score %d, want 3", got.Score)
	}
	if got.ScoresByCategory["happy"] != 0 {
		t.Errorf("happy scored %d, want 0", got.ScoresByCategory["happy"])
	}
}

func TestClassifyCaseInsensitive(t *testing.T) {
	c := New(testTable())

	if got := c.Classify("SO EXCITED AND HAPPY"); got.Category != "happy" || got.Score != 2 {
		t.Errorf("got %q/%d, want happy/2", got.Category, got.Score)
	}
}

func TestClassifyEmptyTextDefault(t *testing.T) {
	c := New(testTable())

	got := c.Classify("")
	if got.Category != models.DefaultCategory {
		t.Errorf("category %q, want %q", got.Category, models.DefaultCategory)
	}
	if got.Score != 0 {
		t.Errorf("score %d, want 0", got.Score)
	}
}

func TestClassifyNoMatchDefault(t *testing.T) {
	c := New(testTable())

	if got := c.Classify("the quick brown fox"); got.Category != models.DefaultCategory {
		t.Errorf("category %q, want %q", got.Category, models.DefaultCategory)
	}
}

func TestClassifyTieFirstDeclaredWins(t *testing.T) {
	c := New(testTable())

	// One keyword from each of "stressed" and "happy"; declaration order
	// breaks the tie.
	got := c.Classify("happy but the stress is back")
	if got.Category != "stressed" {
		t.Errorf("tie resolved to %q, want first-declared stressed", got.Category)
	}
}

func TestClassifyDeterministic(t *testing.T) {
	c := New(DefaultToneTable())

	input := "I'm worried about my partner and feeling overwhelmed"
	first := c.Classify(input)
	for i := 0; i < 20; i++ {
		if got := c.Classify(input); !reflect.DeepEqual(got, first) {
			t.Fatalf("classification is not deterministic: %+v vs %+v", got, first)
		}
	}
}

func TestDefaultMoodTable(t *testing.T) {
	c := New(DefaultMoodTable())

	cases := []struct {
		content string
		mood    string
	}{
		{"I feel so happy and grateful today, everything is wonderful", "happy"},
		{"worried and tense, completely overwhelmed", "anxious"},
		{"a quiet, peaceful morning left me feeling calm and centered", "calm"},
	}
	for _, tc := range cases {
		if got := c.Classify(tc.content); got.Category != tc.mood {
			t.Errorf("Classify(%q) = %q, want %q", tc.content, got.Category, tc.mood)
		}
	}
}

func TestFlowerForMood(t *testing.T) {
	if got := FlowerForMood("happy"); got != "sunflower" {
		t.Errorf("happy maps to %q", got)
	}
	if got := FlowerForMood("unknown"); got != "daisy" {
		t.Errorf("unknown mood maps to %q, want daisy", got)
	}
}
