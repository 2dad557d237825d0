package conversation

import (
	"strings"

	"github.com/xaenox/advisor/internal/models"
)

// languageTracker accumulates how the user writes: word frequency, a
// running average of sentence length in words, and dialect usage counts.
type languageTracker struct {
	prefs    models.LanguagePreferences
	maxWords int
}

func newLanguageTracker(maxWords int) *languageTracker {
	if maxWords <= 0 {
		maxWords = 500
	}
	return &languageTracker{
		prefs: models.LanguagePreferences{
			WordFrequency: make(map[string]int),
			DialectUsage:  make(map[string]int),
		},
		maxWords: maxWords,
	}
}

// observe updates the tracker from one conversation group's queries.
func (t *languageTracker) observe(queries []string) {
	for _, q := range queries {
		tokens := tokenize(q)
		for _, tok := range tokens {
			t.prefs.WordFrequency[tok]++
		}

		wordCount := len(strings.Fields(q))
		if wordCount > 0 {
			total := t.prefs.AvgSentenceLength*float64(t.prefs.SentenceSamples) + float64(wordCount)
			t.prefs.SentenceSamples++
			t.prefs.AvgSentenceLength = total / float64(t.prefs.SentenceSamples)
		}

		lower := strings.ToLower(q)
		for dialect, markers := range dialectLexicons {
			for _, marker := range markers {
				if strings.Contains(lower, marker) {
					t.prefs.DialectUsage[dialect]++
					break
				}
			}
		}
	}
	t.trim()
}

// trim bounds the word-frequency map by evicting lowest-count entries.
func (t *languageTracker) trim() {
	for len(t.prefs.WordFrequency) > t.maxWords {
		var lowest string
		lowestCount := -1
		for word, count := range t.prefs.WordFrequency {
			if lowestCount == -1 || count < lowestCount || (count == lowestCount && word < lowest) {
				lowest = word
				lowestCount = count
			}
		}
		delete(t.prefs.WordFrequency, lowest)
	}
}

// snapshot returns a copy safe to hand out.
func (t *languageTracker) snapshot() models.LanguagePreferences {
	copied := models.LanguagePreferences{
		WordFrequency:     make(map[string]int, len(t.prefs.WordFrequency)),
		AvgSentenceLength: t.prefs.AvgSentenceLength,
		SentenceSamples:   t.prefs.SentenceSamples,
		DialectUsage:      make(map[string]int, len(t.prefs.DialectUsage)),
	}
	for w, c := range t.prefs.WordFrequency {
		copied.WordFrequency[w] = c
	}
	for d, c := range t.prefs.DialectUsage {
		copied.DialectUsage[d] = c
	}
	return copied
}
