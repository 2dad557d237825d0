package storage

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xaenox/advisor/internal/models"
)

func TestRecentInteractionsKeepsNewestChronological(t *testing.T) {
	store := NewMemoryStorage()
	ctx := context.Background()

	base := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, store.SaveInteraction(ctx, &models.Interaction{
			ID:        fmt.Sprintf("i%d", i),
			UserID:    1,
			Type:      models.InteractionChat,
			Query:     fmt.Sprintf("message %d", i),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	recent, err := store.RecentInteractions(ctx, 1, 3)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.Equal(t, "i2", recent[0].ID)
	assert.Equal(t, "i4", recent[2].ID)
}

func TestRecentInteractionsNoLimitReturnsFullLog(t *testing.T) {
	store := NewMemoryStorage()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, store.SaveInteraction(ctx, &models.Interaction{
			ID:     fmt.Sprintf("i%d", i),
			UserID: 1,
		}))
	}

	recent, err := store.RecentInteractions(ctx, 1, 0)
	require.NoError(t, err)
	assert.Len(t, recent, 3)
}

func TestRecentInteractionsIsolatesUsers(t *testing.T) {
	store := NewMemoryStorage()
	ctx := context.Background()

	require.NoError(t, store.SaveInteraction(ctx, &models.Interaction{ID: "a", UserID: 1}))

	recent, err := store.RecentInteractions(ctx, 2, 10)
	require.NoError(t, err)
	assert.Empty(t, recent)
}

func TestDominantEmotionalState(t *testing.T) {
	store := NewMemoryStorage()
	ctx := context.Background()

	now := time.Now()
	for _, state := range []string{"sad", "sad", "happy", ""} {
		require.NoError(t, store.SaveInteraction(ctx, &models.Interaction{
			UserID:         1,
			EmotionalState: state,
			CreatedAt:      now,
		}))
	}

	state, err := store.DominantEmotionalState(ctx, 1, 7)
	require.NoError(t, err)
	assert.Equal(t, "sad", state)

	state, err = store.DominantEmotionalState(ctx, 2, 7)
	require.NoError(t, err)
	assert.Equal(t, "neutral", state)
}

func TestHealthTrendRespectsWindow(t *testing.T) {
	store := NewMemoryStorage()
	ctx := context.Background()

	require.NoError(t, store.AddHealthPoint(ctx, 1, models.MetricSleepHours, models.HealthPoint{
		Timestamp: time.Now().AddDate(0, 0, -30),
		Value:     4,
	}))
	require.NoError(t, store.AddHealthPoint(ctx, 1, models.MetricSleepHours, models.HealthPoint{
		Timestamp: time.Now(),
		Value:     8,
	}))

	points, err := store.HealthTrend(ctx, 1, models.MetricSleepHours, 7)
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Equal(t, 8.0, points[0].Value)
}

func TestAppUsageAccumulates(t *testing.T) {
	store := NewMemoryStorage()
	ctx := context.Background()

	require.NoError(t, store.RecordAppUsage(ctx, 1, "youtube", 30))
	require.NoError(t, store.RecordAppUsage(ctx, 1, "youtube", 15))

	usage, err := store.AppUsage(ctx, 1, 7)
	require.NoError(t, err)
	assert.Equal(t, 45.0, usage["youtube"])
}

func TestAddInterestDeduplicates(t *testing.T) {
	store := NewMemoryStorage()
	ctx := context.Background()

	require.NoError(t, store.AddInterest(ctx, 1, "fitness"))
	require.NoError(t, store.AddInterest(ctx, 1, "fitness"))
	require.NoError(t, store.AddInterest(ctx, 1, "chess"))

	interests, err := store.Interests(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"fitness", "chess"}, interests)
}

func TestPreferencesRoundTrip(t *testing.T) {
	store := NewMemoryStorage()
	ctx := context.Background()

	require.NoError(t, store.SetPreference(ctx, 1, "assistant", "productivity_focus", models.BoolPref(true)))
	require.NoError(t, store.SetPreference(ctx, 1, "liked", "health", models.StringPref("Take a short walk")))

	prefs, err := store.AllPreferences(ctx, 1)
	require.NoError(t, err)
	require.Len(t, prefs, 2)
	assert.True(t, prefs["assistant.productivity_focus"].Bool)
	assert.Equal(t, "Take a short walk", prefs["liked.health"].Str)
}

func TestRuleWeightsRoundTrip(t *testing.T) {
	store := NewMemoryStorage()
	ctx := context.Background()

	weights, err := store.RuleWeights(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, weights)

	saved := map[models.Rule]float64{
		models.RuleTimeOfDay:    1.2,
		models.RuleSleepQuality: 0.8,
	}
	require.NoError(t, store.SaveRuleWeights(ctx, 1, saved))

	weights, err = store.RuleWeights(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, saved, weights)

	// The returned map is a copy.
	weights[models.RuleTimeOfDay] = 99
	again, err := store.RuleWeights(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1.2, again[models.RuleTimeOfDay])
}

func TestTopicsSortedByOccurrences(t *testing.T) {
	store := NewMemoryStorage()
	ctx := context.Background()

	require.NoError(t, store.SaveTopics(ctx, 1, []models.TopicData{
		{Name: "travel", Occurrences: 1},
		{Name: "health", Occurrences: 5},
	}))

	topics, err := store.Topics(ctx, 1)
	require.NoError(t, err)
	require.Len(t, topics, 2)
	assert.Equal(t, "health", topics[0].Name)
}
