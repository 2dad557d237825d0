package recommend

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xaenox/advisor/internal/aggregator"
	"github.com/xaenox/advisor/internal/models"
	"github.com/xaenox/advisor/internal/storage"
	"go.uber.org/zap"
)

func newTestEngine(t *testing.T, opts Options) (*Engine, *storage.MemoryStorage) {
	t.Helper()
	store := storage.NewMemoryStorage()
	agg := aggregator.New(store, zap.NewNop(), 7, 20)
	return NewEngine(store, agg, zap.NewNop(), opts), store
}

func seedSleepDeficit(t *testing.T, store *storage.MemoryStorage, userID int64) {
	t.Helper()
	err := store.AddHealthPoint(context.Background(), userID, models.MetricSleepHours, models.HealthPoint{
		Timestamp: time.Now(),
		Value:     5,
	})
	require.NoError(t, err)
}

func TestGenerateRecommendationsAssignsStableIDs(t *testing.T) {
	engine, store := newTestEngine(t, Options{Seed: 1})
	seedSleepDeficit(t, store, 1)

	recCtx := models.RecommendationContext{Hour: 8, Weekday: time.Tuesday}
	recs := engine.GenerateRecommendations(context.Background(), 1, recCtx)

	require.NotEmpty(t, recs)
	assert.LessOrEqual(t, len(recs), 5)

	seen := make(map[string]bool)
	for _, rec := range recs {
		assert.NotEmpty(t, rec.ID)
		assert.False(t, seen[rec.ID], "recommendation IDs must be unique")
		seen[rec.ID] = true
	}

	assert.Equal(t, "Improve your sleep routine", recs[0].Title)
}

func TestGenerateRecommendationsNeverFailsOnEmptyData(t *testing.T) {
	engine, _ := newTestEngine(t, Options{Seed: 1})

	recCtx := models.RecommendationContext{Hour: 22, Weekday: time.Wednesday}
	recs := engine.GenerateRecommendations(context.Background(), 7, recCtx)

	require.NotEmpty(t, recs)
	assert.LessOrEqual(t, len(recs), 5)
}

func TestRecordFeedbackAdjustsAndPersistsWeights(t *testing.T) {
	engine, store := newTestEngine(t, Options{Seed: 1})
	seedSleepDeficit(t, store, 1)
	ctx := context.Background()

	recCtx := models.RecommendationContext{Hour: 8, Weekday: time.Tuesday}
	recs := engine.GenerateRecommendations(ctx, 1, recCtx)
	require.NotEmpty(t, recs)
	require.Equal(t, models.DomainHealth, recs[0].Domain)

	err := engine.RecordFeedback(ctx, 1, recs[0].ID, models.FeedbackPositive)
	require.NoError(t, err)

	weights := engine.WeightsSnapshot(ctx, 1)
	assert.InDelta(t, 1.005, weights[models.RuleSleepQuality], 1e-9)
	assert.Equal(t, 1.0, weights[models.RuleSearchHistory])

	assert.Equal(t, 1, engine.FeedbackCount(ctx, 1, models.DomainHealth))

	persisted, err := store.RuleWeights(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, persisted)
	assert.InDelta(t, 1.005, persisted[models.RuleSleepQuality], 1e-9)

	prefs, err := store.AllPreferences(ctx, 1)
	require.NoError(t, err)
	liked, ok := prefs[storage.PreferenceKey("liked", string(models.DomainHealth))]
	require.True(t, ok, "positive feedback should record a liked preference")
	assert.Equal(t, recs[0].Title, liked.Str)
}

func TestRecordFeedbackUnknownID(t *testing.T) {
	engine, _ := newTestEngine(t, Options{Seed: 1})

	err := engine.RecordFeedback(context.Background(), 1, "nope", models.FeedbackPositive)
	assert.Error(t, err)
}

func TestRecordFeedbackUnknownInteraction(t *testing.T) {
	engine, _ := newTestEngine(t, Options{Seed: 1})
	ctx := context.Background()

	recCtx := models.RecommendationContext{Hour: 22, Weekday: time.Wednesday}
	recs := engine.GenerateRecommendations(ctx, 1, recCtx)
	require.NotEmpty(t, recs)

	err := engine.RecordFeedback(ctx, 1, recs[0].ID, models.FeedbackType("shrug"))
	assert.Error(t, err)
}

func TestServedRingEvictsOldest(t *testing.T) {
	engine, store := newTestEngine(t, Options{Seed: 1, ServedCacheSize: 2})
	seedSleepDeficit(t, store, 1)
	ctx := context.Background()

	recCtx := models.RecommendationContext{Hour: 8, Weekday: time.Tuesday}
	recs := engine.GenerateRecommendations(ctx, 1, recCtx)
	require.GreaterOrEqual(t, len(recs), 3)

	// Only the two newest entries survive the ring.
	assert.Error(t, engine.RecordFeedback(ctx, 1, recs[0].ID, models.FeedbackViewed))
	assert.NoError(t, engine.RecordFeedback(ctx, 1, recs[len(recs)-1].ID, models.FeedbackViewed))
}

func TestFeedbackHistoryRingIsBounded(t *testing.T) {
	engine, _ := newTestEngine(t, Options{Seed: 1, FeedbackRingSize: 3})
	ctx := context.Background()

	recCtx := models.RecommendationContext{Hour: 22, Weekday: time.Wednesday}
	recs := engine.GenerateRecommendations(ctx, 1, recCtx)
	require.NotEmpty(t, recs)
	domain := recs[0].Domain

	for i := 0; i < 5; i++ {
		require.NoError(t, engine.RecordFeedback(ctx, 1, recs[0].ID, models.FeedbackViewed))
	}
	assert.Equal(t, 3, engine.FeedbackCount(ctx, 1, domain))
}

func TestUsersLearnIndependently(t *testing.T) {
	engine, store := newTestEngine(t, Options{Seed: 1})
	seedSleepDeficit(t, store, 1)
	ctx := context.Background()

	recCtx := models.RecommendationContext{Hour: 8, Weekday: time.Tuesday}
	recs := engine.GenerateRecommendations(ctx, 1, recCtx)
	require.NotEmpty(t, recs)
	require.NoError(t, engine.RecordFeedback(ctx, 1, recs[0].ID, models.FeedbackNegative))

	other := engine.WeightsSnapshot(ctx, 2)
	for _, rule := range models.AllRules {
		assert.Equal(t, 1.0, other[rule])
	}
}
