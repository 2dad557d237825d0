package recommend

import (
	"github.com/xaenox/advisor/internal/models"
)

// DefaultLearningRate scales every feedback adjustment.
const DefaultLearningRate = 0.05

// feedbackAdjustments maps each interaction type to its signed adjustment
// magnitude.
var feedbackAdjustments = map[models.FeedbackType]float64{
	models.FeedbackViewed:    +0.01,
	models.FeedbackClicked:   +0.05,
	models.FeedbackPositive:  +0.10,
	models.FeedbackDismissed: -0.05,
	models.FeedbackNegative:  -0.10,
}

// Learner applies bounded online weight updates from recommendation
// feedback. It is not gradient descent: just a clamped nudge of every rule
// relevant to the recommendation's domain.
type Learner struct {
	learningRate float64
}

func NewLearner(learningRate float64) *Learner {
	if learningRate <= 0 {
		learningRate = DefaultLearningRate
	}
	return &Learner{learningRate: learningRate}
}

// Apply adjusts the weights of every rule in the domain's scoring table by
// adjustment * learningRate, clamped to [WeightMin, WeightMax]. It returns
// the rules it touched. Rules outside the domain's table are never changed.
func (l *Learner) Apply(weights RuleWeights, domain models.Domain, interaction models.FeedbackType) []models.Rule {
	adjustment, ok := feedbackAdjustments[interaction]
	if !ok {
		return nil
	}

	touched := relevantRules(domain)
	for _, rule := range touched {
		weights[rule] = clampWeight(weights[rule] + adjustment*l.learningRate)
	}
	return touched
}

// IsPositiveSignal reports whether the interaction indicates the user liked
// the recommendation, which triggers preference persistence.
func IsPositiveSignal(interaction models.FeedbackType) bool {
	return interaction == models.FeedbackClicked || interaction == models.FeedbackPositive
}
