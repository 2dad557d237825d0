package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xaenox/advisor/internal/models"
)

func TestRankDeduplicatesByTitleFirstWins(t *testing.T) {
	candidates := []models.Recommendation{
		{Title: "Take a short walk", Domain: models.DomainHealth, Relevance: 0.8},
		{Title: "Morning headlines", Domain: models.DomainNews, Relevance: 0.7},
		{Title: "Take a short walk", Domain: models.DomainEntertainment, Relevance: 0.95},
	}

	ranked := Rank(candidates, 5)
	require.Len(t, ranked, 2)

	// The duplicate keeps its first occurrence, including the lower relevance.
	assert.Equal(t, "Take a short walk", ranked[0].Title)
	assert.Equal(t, models.DomainHealth, ranked[0].Domain)
	assert.InDelta(t, 0.8, ranked[0].Relevance, 1e-9)
}

func TestRankOrdersByRelevanceDescending(t *testing.T) {
	candidates := []models.Recommendation{
		{Title: "a", Relevance: 0.7},
		{Title: "b", Relevance: 0.9},
		{Title: "c", Relevance: 0.8},
	}

	ranked := Rank(candidates, 5)
	require.Len(t, ranked, 3)
	assert.Equal(t, "b", ranked[0].Title)
	assert.Equal(t, "c", ranked[1].Title)
	assert.Equal(t, "a", ranked[2].Title)
}

func TestRankTiesPreserveInputOrder(t *testing.T) {
	candidates := []models.Recommendation{
		{Title: "first", Relevance: 0.8},
		{Title: "second", Relevance: 0.8},
		{Title: "third", Relevance: 0.8},
	}

	ranked := Rank(candidates, 5)
	require.Len(t, ranked, 3)
	assert.Equal(t, "first", ranked[0].Title)
	assert.Equal(t, "second", ranked[1].Title)
	assert.Equal(t, "third", ranked[2].Title)
}

func TestRankTruncatesToMax(t *testing.T) {
	var candidates []models.Recommendation
	for _, title := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		candidates = append(candidates, models.Recommendation{Title: title, Relevance: 0.5})
	}

	ranked := Rank(candidates, 5)
	assert.Len(t, ranked, 5)
}
