package conversation

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsQuestion(t *testing.T) {
	assert.True(t, isQuestion("ما هو الطقس اليوم"))
	assert.True(t, isQuestion("كم سعر التذكرة؟"))
	assert.True(t, isQuestion("What time is it?"))
	assert.True(t, isQuestion("how do I get there"))

	assert.False(t, isQuestion("hello there"))
	assert.False(t, isQuestion("افتح يوتيوب"))
}

func TestGeneralizePatternPlaceholders(t *testing.T) {
	assert.Equal(t, "Call {name} at {number}",
		generalizePattern("Call John Smith at 5"))

	assert.Equal(t, "كم سعر التذكرة إلى {place}؟",
		generalizePattern("كم سعر التذكرة إلى دبي؟"))

	assert.Equal(t, "what is {number} plus {number}",
		generalizePattern("what is 12 plus 3.5"))
}

func TestGeneralizePatternLeavesEmbeddedPrepositionsAlone(t *testing.T) {
	// "what" contains "at" and "going" contains "in"; only standalone
	// prepositions start a location phrase.
	assert.Equal(t, "what is the weather?",
		generalizePattern("what is the weather?"))

	assert.Equal(t, "going somewhere to {place}",
		generalizePattern("going somewhere to Cairo"))

	assert.Equal(t, "in {place} for a week",
		generalizePattern("in Amman for a week"))
}

func TestGeneralizePatternCollapsesWhitespace(t *testing.T) {
	assert.Equal(t, "how are you", generalizePattern("  how   are  you  "))
}

func TestQuestionPatternsDedupAndCap(t *testing.T) {
	queries := []string{
		"what is the weather?",
		"what is the weather?",
		"hello there",
	}
	for i := 0; i < 7; i++ {
		queries = append(queries, fmt.Sprintf("where is gate %c?", 'A'+i))
	}

	patterns := questionPatterns(queries)
	assert.Len(t, patterns, maxQuestionPatterns)
	assert.Equal(t, "what is the weather?", patterns[0])
	assert.NotContains(t, patterns, "hello there")
}
