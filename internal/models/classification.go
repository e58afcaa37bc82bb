package models

// DefaultCategory is returned when no category keyword matches the input.
const DefaultCategory = "default"

// KeywordCategory is one named keyword set. Table order is significant:
// ties between categories resolve to the first-declared one.
type KeywordCategory struct {
	Name     string   `yaml:"name" json:"name"`
	Keywords []string `yaml:"keywords" json:"keywords"`
}

// ClassificationResult is the outcome of scoring free text against a keyword
// table. It is derived per call and never stored.
type ClassificationResult struct {
	Category         string         `json:"category"`
	Score            int            `json:"score"`
	ScoresByCategory map[string]int `json:"scores_by_category"`
}
