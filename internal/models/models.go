package models

import "time"

// Domain is one of the fixed recommendation domains.
type Domain string

const (
	DomainHealth        Domain = "health"
	DomainProductivity  Domain = "productivity"
	DomainEntertainment Domain = "entertainment"
	DomainLearning      Domain = "learning"
	DomainSocial        Domain = "social"
	DomainNews          Domain = "news"
	DomainFinance       Domain = "finance"
)

// AllDomains is the fixed domain set in encounter order. Ranking ties
// preserve this order, so it must stay stable.
var AllDomains = []Domain{
	DomainHealth,
	DomainProductivity,
	DomainEntertainment,
	DomainLearning,
	DomainSocial,
	DomainNews,
	DomainFinance,
}

// Rule names the adjustable scoring heuristics.
type Rule string

const (
	RuleTimeOfDay      Rule = "time_of_day"
	RuleEmotionalState Rule = "emotional_state"
	RuleSleepQuality   Rule = "sleep_quality"
	RuleActivityLevel  Rule = "activity_level"
	RuleUsagePattern   Rule = "usage_pattern"
	RuleDirectInterest Rule = "direct_interests"
	RuleSearchHistory  Rule = "search_history"
	RuleAppPreferences Rule = "app_preferences"
)

// AllRules lists every adjustable rule.
var AllRules = []Rule{
	RuleTimeOfDay,
	RuleEmotionalState,
	RuleSleepQuality,
	RuleActivityLevel,
	RuleUsagePattern,
	RuleDirectInterest,
	RuleSearchHistory,
	RuleAppPreferences,
}

// RecommendationType tags what kind of suggestion a recommendation is.
type RecommendationType string

const (
	TypeAdvice   RecommendationType = "advice"
	TypeActivity RecommendationType = "activity"
	TypeContent  RecommendationType = "content"
	TypeReminder RecommendationType = "reminder"
)

// FeedbackType is the user's interaction with a served recommendation.
type FeedbackType string

const (
	FeedbackViewed    FeedbackType = "viewed"
	FeedbackClicked   FeedbackType = "clicked"
	FeedbackPositive  FeedbackType = "positive"
	FeedbackNegative  FeedbackType = "negative"
	FeedbackDismissed FeedbackType = "dismissed"
)

// ParseFeedbackType validates a raw feedback string.
func ParseFeedbackType(s string) (FeedbackType, bool) {
	switch FeedbackType(s) {
	case FeedbackViewed, FeedbackClicked, FeedbackPositive, FeedbackNegative, FeedbackDismissed:
		return FeedbackType(s), true
	}
	return "", false
}

// NegativeEmotions are the emotional states treated as negative by the
// scoring rules.
var NegativeEmotions = map[string]bool{
	"sad":        true,
	"angry":      true,
	"stressed":   true,
	"anxious":    true,
	"frustrated": true,
}

// UserSnapshot is a flattened, read-only view of the user's behavioral
// signals, rebuilt fresh on every recommendation request.
type UserSnapshot struct {
	EmotionalState      string                     `json:"emotional_state"`
	AverageSleepHours   float64                    `json:"average_sleep_hours"`
	AverageActivityMins float64                    `json:"average_activity_minutes"`
	Interests           []string                   `json:"interests"`
	TopApps             []string                   `json:"top_apps"`
	RecentQueries       []string                   `json:"recent_queries"`
	Preferences         map[string]PreferenceValue `json:"preferences"`
}

// RecommendationContext describes the moment a recommendation is requested.
// Constructed by the caller; immutable.
type RecommendationContext struct {
	Hour       int          `json:"hour"` // 0-23
	Weekday    time.Weekday `json:"weekday"`
	Location   string       `json:"location,omitempty"`
	Activity   string       `json:"activity,omitempty"`
	CurrentApp string       `json:"current_app,omitempty"`
}

// ContextAt builds a RecommendationContext from a wall-clock time.
func ContextAt(t time.Time) RecommendationContext {
	return RecommendationContext{Hour: t.Hour(), Weekday: t.Weekday()}
}

// IsWeekend reports whether the context falls on a weekend.
func (c RecommendationContext) IsWeekend() bool {
	return c.Weekday == time.Saturday || c.Weekday == time.Sunday
}

// Recommendation is a single ranked suggestion. The ID stays stable for the
// lifetime of the served list so feedback can reference it directly.
type Recommendation struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Domain      Domain             `json:"domain"`
	Type        RecommendationType `json:"type"`
	Relevance   float64            `json:"relevance"`
	ActionURL   string             `json:"action_url,omitempty"`
	ActionLabel string             `json:"action_label,omitempty"`
}

// RecommendationFeedback records one user reaction to a served
// recommendation.
type RecommendationFeedback struct {
	Recommendation Recommendation `json:"recommendation"`
	Interaction    FeedbackType   `json:"interaction"`
	CreatedAt      time.Time      `json:"created_at"`
}
