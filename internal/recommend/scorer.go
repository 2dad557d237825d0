package recommend

import (
	"sort"

	"github.com/xaenox/advisor/internal/models"
)

// Bounds for adjustable weights and domain totals.
const (
	WeightMin = 0.1
	WeightMax = 2.0
	ScoreMin  = 0.0
	ScoreMax  = 2.0
)

// RuleWeights maps each scoring rule to its adjustable weight.
type RuleWeights map[models.Rule]float64

// DefaultRuleWeights returns the initial weight table: every rule at 1.0.
func DefaultRuleWeights() RuleWeights {
	weights := make(RuleWeights, len(models.AllRules))
	for _, rule := range models.AllRules {
		weights[rule] = 1.0
	}
	return weights
}

// clampWeight bounds a single rule weight.
func clampWeight(w float64) float64 {
	if w < WeightMin {
		return WeightMin
	}
	if w > WeightMax {
		return WeightMax
	}
	return w
}

// clampScore bounds a domain total.
func clampScore(s float64) float64 {
	if s < ScoreMin {
		return ScoreMin
	}
	if s > ScoreMax {
		return ScoreMax
	}
	return s
}

// Normalize fills in missing rules with the default weight and clamps every
// entry. Used after loading persisted weights.
func (w RuleWeights) Normalize() {
	for _, rule := range models.AllRules {
		weight, ok := w[rule]
		if !ok {
			w[rule] = 1.0
			continue
		}
		w[rule] = clampWeight(weight)
	}
}

// Scorer computes bounded relevance scores for the fixed domain set from
// the data-driven rule tables. It does not synchronize access: the owner
// (Engine) serializes score reads against feedback writes.
type Scorer struct {
	weights RuleWeights
}

// NewScorer creates a scorer around an existing weight table. The table is
// shared, not copied, so feedback updates are visible immediately.
func NewScorer(weights RuleWeights) *Scorer {
	if weights == nil {
		weights = DefaultRuleWeights()
	}
	weights.Normalize()
	return &Scorer{weights: weights}
}

// Weights exposes the live weight table for the feedback learner.
func (s *Scorer) Weights() RuleWeights {
	return s.weights
}

// Score computes a clamped score for every domain. Each contribution is
// base * weight[rule]; the sum per domain is clamped to [ScoreMin, ScoreMax].
func (s *Scorer) Score(ctx models.RecommendationContext, snap models.UserSnapshot) map[models.Domain]float64 {
	scores := make(map[models.Domain]float64, len(models.AllDomains))
	for _, domain := range models.AllDomains {
		total := 0.0
		for _, contribution := range domainRules[domain] {
			base := contribution.base(ctx, snap)
			if base == 0 {
				continue
			}
			total += base * s.weights[contribution.rule]
		}
		scores[domain] = clampScore(total)
	}
	return scores
}

// RankDomains orders the fixed domain set by score descending; ties keep
// encounter order.
func RankDomains(scores map[models.Domain]float64) []models.Domain {
	ranked := make([]models.Domain, len(models.AllDomains))
	copy(ranked, models.AllDomains)
	sort.SliceStable(ranked, func(i, j int) bool {
		return scores[ranked[i]] > scores[ranked[j]]
	})
	return ranked
}
