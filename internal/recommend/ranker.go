package recommend

import (
	"sort"

	"github.com/xaenox/advisor/internal/models"
)

// Rank merges candidates across domains: duplicate titles are dropped
// (first occurrence wins), the rest are ordered by relevance descending
// with input order preserved on ties, and the list is truncated to max.
func Rank(candidates []models.Recommendation, max int) []models.Recommendation {
	seen := make(map[string]bool, len(candidates))
	deduped := make([]models.Recommendation, 0, len(candidates))
	for _, c := range candidates {
		if seen[c.Title] {
			continue
		}
		seen[c.Title] = true
		deduped = append(deduped, c)
	}

	sort.SliceStable(deduped, func(i, j int) bool {
		return deduped[i].Relevance > deduped[j].Relevance
	})

	if max > 0 && len(deduped) > max {
		deduped = deduped[:max]
	}
	return deduped
}
