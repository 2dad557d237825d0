package conversation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xaenox/advisor/internal/models"
	"github.com/xaenox/advisor/internal/storage"
	"go.uber.org/zap"
)

func newTestAnalyzer(t *testing.T) (*Analyzer, *storage.MemoryStorage) {
	t.Helper()
	store := storage.NewMemoryStorage()
	return NewAnalyzer(store, zap.NewNop(), Options{}), store
}

func saveAt(t *testing.T, store *storage.MemoryStorage, userID int64, at time.Time, query, emotion string) {
	t.Helper()
	err := store.SaveInteraction(context.Background(), &models.Interaction{
		ID:             query,
		UserID:         userID,
		Type:           models.InteractionQuery,
		Query:          query,
		EmotionalState: emotion,
		CreatedAt:      at,
	})
	require.NoError(t, err)
}

func TestGroupByGapPartitionsOnThirtyMinutes(t *testing.T) {
	base := time.Date(2026, 5, 10, 20, 0, 0, 0, time.UTC)
	interactions := []*models.Interaction{
		{ID: "a", CreatedAt: base},
		{ID: "b", CreatedAt: base.Add(10 * time.Minute)},
		{ID: "c", CreatedAt: base.Add(50 * time.Minute)},
	}

	groups := groupByGap(interactions, 30*time.Minute)
	require.Len(t, groups, 2)
	assert.Len(t, groups[0], 2)
	assert.Len(t, groups[1], 1)
}

func TestGroupByGapSortsChronologically(t *testing.T) {
	base := time.Date(2026, 5, 10, 20, 0, 0, 0, time.UTC)
	interactions := []*models.Interaction{
		{ID: "late", CreatedAt: base.Add(5 * time.Minute)},
		{ID: "early", CreatedAt: base},
	}

	groups := groupByGap(interactions, 30*time.Minute)
	require.Len(t, groups, 1)
	assert.Equal(t, "early", groups[0][0].ID)
	assert.Equal(t, "late", groups[0][1].ID)
}

func TestAnalyzeExtractsAndPersistsTopics(t *testing.T) {
	analyzer, store := newTestAnalyzer(t)
	ctx := context.Background()

	evening := time.Date(2026, 5, 10, 20, 0, 0, 0, time.UTC)
	saveAt(t, store, 1, evening, "how can I improve my sleep quality?", "sad")
	saveAt(t, store, 1, evening.Add(5*time.Minute), "looking for fitness and workout ideas", "sad")

	insights := analyzer.Analyze(ctx, 1)

	assert.Contains(t, insights.Topics, "health")
	assert.Contains(t, insights.Keywords, "sleep")
	assert.Equal(t, "sad", insights.DominantEmotion)
	assert.Equal(t, "evening", insights.TimeOfDay)
	assert.Equal(t, "inquiry", insights.Context)
	assert.NotEmpty(t, insights.QuestionPatterns)

	persisted, err := store.Topics(ctx, 1)
	require.NoError(t, err)
	assert.NotEmpty(t, persisted)
}

func TestAnalyzeSkipsSingleMessageGroups(t *testing.T) {
	analyzer, store := newTestAnalyzer(t)
	ctx := context.Background()

	base := time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)
	saveAt(t, store, 1, base, "hello", "")
	saveAt(t, store, 1, base.Add(2*time.Hour), "open youtube", "")

	insights := analyzer.Analyze(ctx, 1)
	assert.Equal(t, models.EmptyInsights(), insights)
}

func TestAnalyzeEmptyHistory(t *testing.T) {
	analyzer, _ := newTestAnalyzer(t)

	insights := analyzer.Analyze(context.Background(), 1)
	assert.Equal(t, models.EmptyInsights(), insights)
}

func TestAnalyzeDegradesWhenStorageFails(t *testing.T) {
	analyzer := NewAnalyzer(failingTopicStore{}, zap.NewNop(), Options{})

	insights := analyzer.Analyze(context.Background(), 1)
	assert.Equal(t, models.EmptyInsights(), insights)
}

func TestDominantEmotionMajorityVote(t *testing.T) {
	group := []*models.Interaction{
		{EmotionalState: "happy"},
		{EmotionalState: "sad"},
		{EmotionalState: "sad"},
		{EmotionalState: ""},
	}
	assert.Equal(t, "sad", dominantEmotion(group))

	assert.Equal(t, "neutral", dominantEmotion([]*models.Interaction{{}, {}}))
}

func TestTimeOfDayLabel(t *testing.T) {
	assert.Equal(t, "morning", timeOfDayLabel(8))
	assert.Equal(t, "afternoon", timeOfDayLabel(13))
	assert.Equal(t, "evening", timeOfDayLabel(20))
	assert.Equal(t, "night", timeOfDayLabel(2))
	assert.Equal(t, "night", timeOfDayLabel(23))
}

func TestLanguagePreferencesAccumulate(t *testing.T) {
	analyzer, store := newTestAnalyzer(t)
	ctx := context.Background()

	evening := time.Date(2026, 5, 10, 20, 0, 0, 0, time.UTC)
	saveAt(t, store, 1, evening, "شلونك اليوم", "")
	saveAt(t, store, 1, evening.Add(3*time.Minute), "ابغى اخبار الرياضة", "")

	analyzer.Analyze(ctx, 1)

	prefs := analyzer.LanguagePreferences(ctx, 1)
	assert.Equal(t, "gulf", prefs.PreferredDialect())
	assert.Equal(t, 2, prefs.SentenceSamples)
	assert.Greater(t, prefs.AvgSentenceLength, 0.0)
}

// failingTopicStore errors on the reads the analyzer depends on.
type failingTopicStore struct {
	storage.Storage
}

func (failingTopicStore) RecentInteractions(context.Context, int64, int) ([]*models.Interaction, error) {
	return nil, assert.AnError
}

func (failingTopicStore) Topics(context.Context, int64) ([]models.TopicData, error) {
	return nil, assert.AnError
}
