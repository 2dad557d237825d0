package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xaenox/advisor/internal/models"
)

func TestApplyAdjustsOnlyDomainRules(t *testing.T) {
	weights := DefaultRuleWeights()
	learner := NewLearner(DefaultLearningRate)

	touched := learner.Apply(weights, models.DomainHealth, models.FeedbackPositive)
	require.NotNil(t, touched)
	assert.Len(t, touched, 5)

	// positive 0.10 * learning rate 0.05
	assert.InDelta(t, 1.005, weights[models.RuleSleepQuality], 1e-9)
	assert.InDelta(t, 1.005, weights[models.RuleTimeOfDay], 1e-9)

	// Rules outside the health table stay untouched.
	assert.Equal(t, 1.0, weights[models.RuleUsagePattern])
	assert.Equal(t, 1.0, weights[models.RuleSearchHistory])
	assert.Equal(t, 1.0, weights[models.RuleAppPreferences])
}

func TestApplyClampsAtBounds(t *testing.T) {
	weights := DefaultRuleWeights()
	learner := NewLearner(DefaultLearningRate)

	for i := 0; i < 500; i++ {
		learner.Apply(weights, models.DomainHealth, models.FeedbackNegative)
	}
	assert.Equal(t, WeightMin, weights[models.RuleSleepQuality])

	for i := 0; i < 500; i++ {
		learner.Apply(weights, models.DomainHealth, models.FeedbackPositive)
	}
	assert.Equal(t, WeightMax, weights[models.RuleSleepQuality])
}

func TestApplyUnknownInteraction(t *testing.T) {
	weights := DefaultRuleWeights()
	learner := NewLearner(DefaultLearningRate)

	touched := learner.Apply(weights, models.DomainHealth, models.FeedbackType("shrug"))
	assert.Nil(t, touched)
	for _, rule := range models.AllRules {
		assert.Equal(t, 1.0, weights[rule])
	}
}

func TestDismissedIsWeakerThanNegative(t *testing.T) {
	dismissed := DefaultRuleWeights()
	negative := DefaultRuleWeights()
	learner := NewLearner(DefaultLearningRate)

	learner.Apply(dismissed, models.DomainNews, models.FeedbackDismissed)
	learner.Apply(negative, models.DomainNews, models.FeedbackNegative)

	assert.Greater(t, dismissed[models.RuleTimeOfDay], negative[models.RuleTimeOfDay])
}

func TestIsPositiveSignal(t *testing.T) {
	assert.True(t, IsPositiveSignal(models.FeedbackClicked))
	assert.True(t, IsPositiveSignal(models.FeedbackPositive))
	assert.False(t, IsPositiveSignal(models.FeedbackViewed))
	assert.False(t, IsPositiveSignal(models.FeedbackDismissed))
	assert.False(t, IsPositiveSignal(models.FeedbackNegative))
}
