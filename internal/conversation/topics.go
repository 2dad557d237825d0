package conversation

import (
	"sort"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/xaenox/advisor/internal/models"
)

const (
	maxKeywordsPerGroup = 10
	// Standalone keywords longer than this many runes become candidate
	// topics on their own.
	standaloneTopicRuneLen = 5
)

// tokenize splits a query into lowercase tokens, dropping stop-words and
// single-rune fragments.
func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if utf8.RuneCountInString(f) < 2 || arabicStopWords[f] {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

// topKeywords counts token frequency across the group's queries and returns
// the top keywords, frequency descending with alphabetical tie-break so the
// result is deterministic.
func topKeywords(queries []string, max int) []string {
	counts := make(map[string]int)
	for _, q := range queries {
		for _, tok := range tokenize(q) {
			counts[tok]++
		}
	}

	keywords := make([]string, 0, len(counts))
	for kw := range counts {
		keywords = append(keywords, kw)
	}
	sort.Slice(keywords, func(i, j int) bool {
		if counts[keywords[i]] != counts[keywords[j]] {
			return counts[keywords[i]] > counts[keywords[j]]
		}
		return keywords[i] < keywords[j]
	})

	if len(keywords) > max {
		keywords = keywords[:max]
	}
	return keywords
}

// matchTopics maps a keyword set onto the fixed topic dictionaries, plus
// any sufficiently long keyword as a standalone candidate topic.
func matchTopics(keywords []string) []string {
	var topics []string
	seen := make(map[string]bool)

	// Dictionary topics in stable name order
	names := make([]string, 0, len(topicDictionaries))
	for name := range topicDictionaries {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		for _, dictKw := range topicDictionaries[name] {
			if containsKeyword(keywords, dictKw) {
				if !seen[name] {
					topics = append(topics, name)
					seen[name] = true
				}
				break
			}
		}
	}

	for _, kw := range keywords {
		if utf8.RuneCountInString(kw) > standaloneTopicRuneLen && !seen[kw] {
			topics = append(topics, kw)
			seen[kw] = true
		}
	}

	return topics
}

func containsKeyword(keywords []string, target string) bool {
	target = strings.ToLower(target)
	for _, kw := range keywords {
		if kw == target || strings.Contains(kw, target) || strings.Contains(target, kw) {
			return true
		}
	}
	return false
}

// topicTable is the bounded per-user topic-occurrence store.
type topicTable struct {
	entries map[string]*models.TopicData
	max     int
}

func newTopicTable(max int) *topicTable {
	if max <= 0 {
		max = 50
	}
	return &topicTable{
		entries: make(map[string]*models.TopicData),
		max:     max,
	}
}

// load seeds the table from persisted topics.
func (t *topicTable) load(topics []models.TopicData) {
	for _, topic := range topics {
		copied := topic
		t.entries[topic.Name] = &copied
	}
	t.evict()
}

// upsert bumps a topic's occurrence count and timestamp, then enforces the
// cap by evicting lowest-occurrence entries.
func (t *topicTable) upsert(name string, at time.Time) {
	if existing, ok := t.entries[name]; ok {
		existing.Occurrences++
		if at.After(existing.LastDiscussed) {
			existing.LastDiscussed = at
		}
	} else {
		t.entries[name] = &models.TopicData{
			Name:          name,
			Occurrences:   1,
			LastDiscussed: at,
		}
	}
	t.evict()
}

func (t *topicTable) evict() {
	for len(t.entries) > t.max {
		var lowest string
		lowestCount := -1
		for name, topic := range t.entries {
			if lowestCount == -1 || topic.Occurrences < lowestCount ||
				(topic.Occurrences == lowestCount && name < lowest) {
				lowest = name
				lowestCount = topic.Occurrences
			}
		}
		delete(t.entries, lowest)
	}
}

// sorted returns topics by occurrence descending, name ascending on ties.
func (t *topicTable) sorted() []models.TopicData {
	topics := make([]models.TopicData, 0, len(t.entries))
	for _, topic := range t.entries {
		topics = append(topics, *topic)
	}
	sort.Slice(topics, func(i, j int) bool {
		if topics[i].Occurrences != topics[j].Occurrences {
			return topics[i].Occurrences > topics[j].Occurrences
		}
		return topics[i].Name < topics[j].Name
	})
	return topics
}
