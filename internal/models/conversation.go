package models

import "time"

// TopicData tracks one discovered conversation topic.
type TopicData struct {
	Name          string    `json:"name"`
	Occurrences   int       `json:"occurrences"`
	LastDiscussed time.Time `json:"last_discussed"`
}

// ConversationInsights is the merged analysis of the recent conversation
// window.
type ConversationInsights struct {
	Topics           []string `json:"topics"`
	Keywords         []string `json:"keywords"`
	QuestionPatterns []string `json:"question_patterns"`
	DominantEmotion  string   `json:"dominant_emotion"`
	Context          string   `json:"context"`
	TimeOfDay        string   `json:"time_of_day"`
}

// EmptyInsights is returned when analysis has nothing to work with.
func EmptyInsights() ConversationInsights {
	return ConversationInsights{
		Topics:           []string{},
		Keywords:         []string{},
		QuestionPatterns: []string{},
		DominantEmotion:  "neutral",
		Context:          "general_chat",
		TimeOfDay:        "",
	}
}

// LanguagePreferences captures how the user writes, updated incrementally
// as conversations are analyzed.
type LanguagePreferences struct {
	WordFrequency     map[string]int `json:"word_frequency"`
	AvgSentenceLength float64        `json:"avg_sentence_length"`
	SentenceSamples   int            `json:"sentence_samples"`
	DialectUsage      map[string]int `json:"dialect_usage"`
}

// PreferredDialect returns the most used dialect, or "msa" when nothing has
// been observed yet.
func (p LanguagePreferences) PreferredDialect() string {
	best := "msa"
	bestCount := 0
	for dialect, count := range p.DialectUsage {
		if count > bestCount {
			best = dialect
			bestCount = count
		}
	}
	return best
}
