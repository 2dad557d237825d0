package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/xaenox/advisor/internal/intent"
	"github.com/xaenox/advisor/internal/models"
)

func TestDetectEmotion(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"I am so happy today, this is great", "happy"},
		{"أنا حزين جدا", "sad"},
		{"this deadline has me stressed and exhausted", "stressed"},
		{"قلق من الامتحان", "anxious"},
		{"can you open the calendar", "neutral"},
		{"", "neutral"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, detectEmotion(tt.text), "text: %q", tt.text)
	}
}

func TestDetectEmotionPicksStrongestState(t *testing.T) {
	// One sad keyword versus two stressed keywords.
	got := detectEmotion("I'm sad, overwhelmed and exhausted by all this pressure")
	assert.Equal(t, "stressed", got)
}

func TestInteractionTypeFor(t *testing.T) {
	assert.Equal(t, models.InteractionQuery, interactionTypeFor(intent.TypeSearch))
	assert.Equal(t, models.InteractionQuery, interactionTypeFor(intent.TypeQuestion))
	assert.Equal(t, models.InteractionCommand, interactionTypeFor(intent.TypeOpenApp))
	assert.Equal(t, models.InteractionCommand, interactionTypeFor(intent.TypeReminder))
	assert.Equal(t, models.InteractionChat, interactionTypeFor(intent.TypeChat))
}
