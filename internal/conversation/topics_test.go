package conversation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenizeDropsStopWordsAndFragments(t *testing.T) {
	tokens := tokenize("ما هو الطقس في دبي؟")
	assert.Equal(t, []string{"الطقس", "دبي"}, tokens)

	tokens = tokenize("What is the weather, really?")
	assert.Equal(t, []string{"weather", "really"}, tokens)
}

func TestTopKeywordsFrequencyThenAlphabetical(t *testing.T) {
	queries := []string{
		"football football match",
		"match tonight",
		"cinema tonight",
	}

	keywords := topKeywords(queries, 3)
	// football and match appear twice; tonight twice; cinema once.
	// Ties break alphabetically.
	assert.Equal(t, []string{"football", "match", "tonight"}, keywords)
}

func TestTopKeywordsCapped(t *testing.T) {
	keywords := topKeywords([]string{"alpha beta gamma delta epsilon"}, 3)
	assert.Len(t, keywords, 3)
}

func TestMatchTopicsDictionaryAndStandalone(t *testing.T) {
	topics := matchTopics([]string{"fitness", "sleep", "chess"})

	assert.Contains(t, topics, "health")
	// Long keywords stand alone as topics even without a dictionary hit.
	assert.Contains(t, topics, "fitness")
	// "chess" is only five runes, too short to stand alone.
	assert.NotContains(t, topics, "chess")
}

func TestTopicTableEvictsLowestOccurrence(t *testing.T) {
	table := newTopicTable(2)
	now := time.Now()

	table.upsert("health", now)
	table.upsert("health", now)
	table.upsert("travel", now)
	table.upsert("sports", now)

	sorted := table.sorted()
	require.Len(t, sorted, 2)
	assert.Equal(t, "health", sorted[0].Name)
	assert.Equal(t, 2, sorted[0].Occurrences)
	// Of the two single-occurrence topics, the alphabetically smaller one
	// was evicted.
	assert.Equal(t, "travel", sorted[1].Name)
}

func TestTopicTableUpsertBumpsTimestamp(t *testing.T) {
	table := newTopicTable(10)
	earlier := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	later := earlier.Add(2 * time.Hour)

	table.upsert("food", earlier)
	table.upsert("food", later)

	sorted := table.sorted()
	require.Len(t, sorted, 1)
	assert.Equal(t, 2, sorted[0].Occurrences)
	assert.Equal(t, later, sorted[0].LastDiscussed)
}
