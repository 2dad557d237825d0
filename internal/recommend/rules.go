package recommend

import (
	"strings"

	"github.com/xaenox/advisor/internal/models"
)

// Base increments per (domain, rule) pair. The magnitudes encode the
// relative importance of each signal and are multiplied by the adjustable
// rule weight at scoring time; changing them changes ranking behavior.
const (
	healthMorningBoost     = 0.3
	healthEmotionBoost     = 0.4
	healthInterestBoost    = 0.3
	sleepTargetHours       = 7.0
	sleepDeficitPerHour    = 0.1
	activityTargetMinutes  = 30.0
	activityDeficitPerMin  = 0.01

	productivityHoursBoost    = 0.4
	productivityUsageBoost    = 0.3
	productivityEmotionBoost  = 0.3
	productivitySearchBoost   = 0.2
	productivityPrefBoost     = 0.2

	entertainmentEveningBoost = 0.4
	entertainmentWeekendBoost = 0.2
	entertainmentEmotionBoost = 0.3
	entertainmentUsageBoost   = 0.3
	entertainmentInterestBoost = 0.2

	learningHoursBoost    = 0.2
	learningInterestBoost = 0.4
	learningSearchBoost   = 0.3
	learningUsageBoost    = 0.2

	socialEveningBoost = 0.3
	socialWeekendBoost = 0.2
	socialEmotionBoost = 0.4
	socialUsageBoost   = 0.3
	socialSearchBoost  = 0.1

	newsHoursBoost    = 0.3
	newsInterestBoost = 0.3
	newsSearchBoost   = 0.2
	newsUsageBoost    = 0.2

	financeHoursBoost    = 0.2
	financeInterestBoost = 0.4
	financeSearchBoost   = 0.3
	financePrefBoost     = 0.2
)

// Preference keys consulted by the scoring tables.
const (
	prefProductivityFocus = "assistant.productivity_focus"
	prefBudgetAlerts      = "finance.budget_alerts"
)

// Keyword lexicons for interest / app / query matching. Arabic terms first,
// English after, all lowercase.
var (
	healthKeywords = []string{"صحة", "رياضة", "تمارين", "تغذية", "نوم", "health", "fitness", "yoga", "nutrition", "sleep", "workout"}

	productivityApps     = []string{"calendar", "notion", "slack", "docs", "mail", "todo"}
	productivityKeywords = []string{"عمل", "مهام", "اجتماع", "إنتاجية", "work", "task", "meeting", "deadline", "productivity"}

	entertainmentApps     = []string{"youtube", "netflix", "spotify", "tiktok", "game"}
	entertainmentKeywords = []string{"فيلم", "مسلسل", "موسيقى", "لعبة", "ترفيه", "movie", "series", "music", "game", "fun"}

	learningApps     = []string{"duolingo", "coursera", "khan", "udemy", "kindle"}
	learningKeywords = []string{"تعلم", "دراسة", "دورة", "كتاب", "لغة", "learn", "study", "course", "book", "language"}
	howToLeads       = []string{"كيف", "ما هو", "ما هي", "لماذا", "how to", "how do", "what is", "why"}

	socialApps     = []string{"whatsapp", "telegram", "instagram", "facebook", "twitter", "snapchat"}
	socialKeywords = []string{"أصدقاء", "عائلة", "تواصل", "رسالة", "friend", "family", "chat", "message", "call"}

	newsApps     = []string{"news", "أخبار", "reddit", "feedly"}
	newsKeywords = []string{"أخبار", "عاجل", "سياسة", "طقس", "news", "breaking", "politics", "weather", "headline"}

	financeApps     = []string{"bank", "wallet", "trading", "بنك"}
	financeKeywords = []string{"مال", "ميزانية", "استثمار", "أسهم", "ادخار", "money", "budget", "invest", "stock", "saving", "finance"}
)

// positiveWorkEmotions gate the productivity emotional-state rule.
var positiveWorkEmotions = map[string]bool{
	"motivated": true,
	"focused":   true,
	"energetic": true,
}

// lowMoodEmotions gate the entertainment emotional-state rule.
var lowMoodEmotions = map[string]bool{
	"bored": true,
	"tired": true,
	"sad":   true,
}

// withdrawnEmotions gate the social emotional-state rule.
var withdrawnEmotions = map[string]bool{
	"lonely": true,
	"sad":    true,
}

// ruleContribution computes the unweighted base increment for one rule in
// one domain; it returns 0 when the rule does not fire.
type ruleContribution struct {
	rule models.Rule
	base func(ctx models.RecommendationContext, snap models.UserSnapshot) float64
}

// domainRules is the full scoring table: the scorer iterates it instead of
// branching per domain, and the feedback learner derives each domain's
// relevant rule set from it.
var domainRules = map[models.Domain][]ruleContribution{
	models.DomainHealth: {
		{models.RuleTimeOfDay, func(ctx models.RecommendationContext, snap models.UserSnapshot) float64 {
			if ctx.Hour >= 6 && ctx.Hour <= 10 {
				return healthMorningBoost
			}
			return 0
		}},
		{models.RuleSleepQuality, func(ctx models.RecommendationContext, snap models.UserSnapshot) float64 {
			// Deficit rules only fire when the metric reports data.
			if snap.AverageSleepHours > 0 && snap.AverageSleepHours < sleepTargetHours {
				return (sleepTargetHours - snap.AverageSleepHours) * sleepDeficitPerHour
			}
			return 0
		}},
		{models.RuleActivityLevel, func(ctx models.RecommendationContext, snap models.UserSnapshot) float64 {
			if snap.AverageActivityMins > 0 && snap.AverageActivityMins < activityTargetMinutes {
				return (activityTargetMinutes - snap.AverageActivityMins) * activityDeficitPerMin
			}
			return 0
		}},
		{models.RuleEmotionalState, func(ctx models.RecommendationContext, snap models.UserSnapshot) float64 {
			if models.NegativeEmotions[snap.EmotionalState] {
				return healthEmotionBoost
			}
			return 0
		}},
		{models.RuleDirectInterest, func(ctx models.RecommendationContext, snap models.UserSnapshot) float64 {
			if matchAny(snap.Interests, healthKeywords) {
				return healthInterestBoost
			}
			return 0
		}},
	},
	models.DomainProductivity: {
		{models.RuleTimeOfDay, func(ctx models.RecommendationContext, snap models.UserSnapshot) float64 {
			if !ctx.IsWeekend() && ctx.Hour >= 9 && ctx.Hour <= 17 {
				return productivityHoursBoost
			}
			return 0
		}},
		{models.RuleUsagePattern, func(ctx models.RecommendationContext, snap models.UserSnapshot) float64 {
			if matchAny(snap.TopApps, productivityApps) {
				return productivityUsageBoost
			}
			return 0
		}},
		{models.RuleEmotionalState, func(ctx models.RecommendationContext, snap models.UserSnapshot) float64 {
			if positiveWorkEmotions[snap.EmotionalState] {
				return productivityEmotionBoost
			}
			return 0
		}},
		{models.RuleSearchHistory, func(ctx models.RecommendationContext, snap models.UserSnapshot) float64 {
			if matchAny(snap.RecentQueries, productivityKeywords) {
				return productivitySearchBoost
			}
			return 0
		}},
		{models.RuleAppPreferences, func(ctx models.RecommendationContext, snap models.UserSnapshot) float64 {
			if pref, ok := snap.Preferences[prefProductivityFocus]; ok && pref.Kind == models.PrefBool && pref.Bool {
				return productivityPrefBoost
			}
			return 0
		}},
	},
	models.DomainEntertainment: {
		{models.RuleTimeOfDay, func(ctx models.RecommendationContext, snap models.UserSnapshot) float64 {
			base := 0.0
			if ctx.Hour >= 19 || ctx.Hour <= 1 {
				base += entertainmentEveningBoost
			}
			if ctx.IsWeekend() {
				base += entertainmentWeekendBoost
			}
			return base
		}},
		{models.RuleEmotionalState, func(ctx models.RecommendationContext, snap models.UserSnapshot) float64 {
			if lowMoodEmotions[snap.EmotionalState] {
				return entertainmentEmotionBoost
			}
			return 0
		}},
		{models.RuleUsagePattern, func(ctx models.RecommendationContext, snap models.UserSnapshot) float64 {
			if matchAny(snap.TopApps, entertainmentApps) {
				return entertainmentUsageBoost
			}
			return 0
		}},
		{models.RuleDirectInterest, func(ctx models.RecommendationContext, snap models.UserSnapshot) float64 {
			if matchAny(snap.Interests, entertainmentKeywords) {
				return entertainmentInterestBoost
			}
			return 0
		}},
	},
	models.DomainLearning: {
		{models.RuleTimeOfDay, func(ctx models.RecommendationContext, snap models.UserSnapshot) float64 {
			if (ctx.Hour >= 8 && ctx.Hour <= 11) || (ctx.Hour >= 19 && ctx.Hour <= 21) {
				return learningHoursBoost
			}
			return 0
		}},
		{models.RuleDirectInterest, func(ctx models.RecommendationContext, snap models.UserSnapshot) float64 {
			if matchAny(snap.Interests, learningKeywords) {
				return learningInterestBoost
			}
			return 0
		}},
		{models.RuleSearchHistory, func(ctx models.RecommendationContext, snap models.UserSnapshot) float64 {
			for _, q := range snap.RecentQueries {
				lower := strings.ToLower(strings.TrimSpace(q))
				for _, lead := range howToLeads {
					if strings.HasPrefix(lower, lead) {
						return learningSearchBoost
					}
				}
			}
			return 0
		}},
		{models.RuleUsagePattern, func(ctx models.RecommendationContext, snap models.UserSnapshot) float64 {
			if matchAny(snap.TopApps, learningApps) {
				return learningUsageBoost
			}
			return 0
		}},
	},
	models.DomainSocial: {
		{models.RuleTimeOfDay, func(ctx models.RecommendationContext, snap models.UserSnapshot) float64 {
			base := 0.0
			if ctx.Hour >= 18 && ctx.Hour <= 23 {
				base += socialEveningBoost
			}
			if ctx.IsWeekend() {
				base += socialWeekendBoost
			}
			return base
		}},
		{models.RuleEmotionalState, func(ctx models.RecommendationContext, snap models.UserSnapshot) float64 {
			if withdrawnEmotions[snap.EmotionalState] {
				return socialEmotionBoost
			}
			return 0
		}},
		{models.RuleUsagePattern, func(ctx models.RecommendationContext, snap models.UserSnapshot) float64 {
			if matchAny(snap.TopApps, socialApps) {
				return socialUsageBoost
			}
			return 0
		}},
		{models.RuleSearchHistory, func(ctx models.RecommendationContext, snap models.UserSnapshot) float64 {
			if matchAny(snap.RecentQueries, socialKeywords) {
				return socialSearchBoost
			}
			return 0
		}},
	},
	models.DomainNews: {
		{models.RuleTimeOfDay, func(ctx models.RecommendationContext, snap models.UserSnapshot) float64 {
			if (ctx.Hour >= 6 && ctx.Hour <= 9) || (ctx.Hour >= 18 && ctx.Hour <= 21) {
				return newsHoursBoost
			}
			return 0
		}},
		{models.RuleDirectInterest, func(ctx models.RecommendationContext, snap models.UserSnapshot) float64 {
			if matchAny(snap.Interests, newsKeywords) {
				return newsInterestBoost
			}
			return 0
		}},
		{models.RuleSearchHistory, func(ctx models.RecommendationContext, snap models.UserSnapshot) float64 {
			if matchAny(snap.RecentQueries, newsKeywords) {
				return newsSearchBoost
			}
			return 0
		}},
		{models.RuleUsagePattern, func(ctx models.RecommendationContext, snap models.UserSnapshot) float64 {
			if matchAny(snap.TopApps, newsApps) {
				return newsUsageBoost
			}
			return 0
		}},
	},
	models.DomainFinance: {
		{models.RuleTimeOfDay, func(ctx models.RecommendationContext, snap models.UserSnapshot) float64 {
			if !ctx.IsWeekend() && ctx.Hour >= 9 && ctx.Hour <= 16 {
				return financeHoursBoost
			}
			return 0
		}},
		{models.RuleDirectInterest, func(ctx models.RecommendationContext, snap models.UserSnapshot) float64 {
			if matchAny(snap.Interests, financeKeywords) {
				return financeInterestBoost
			}
			return 0
		}},
		{models.RuleSearchHistory, func(ctx models.RecommendationContext, snap models.UserSnapshot) float64 {
			if matchAny(snap.RecentQueries, financeKeywords) {
				return financeSearchBoost
			}
			return 0
		}},
		{models.RuleAppPreferences, func(ctx models.RecommendationContext, snap models.UserSnapshot) float64 {
			if pref, ok := snap.Preferences[prefBudgetAlerts]; ok && pref.Kind == models.PrefBool && pref.Bool {
				return financePrefBoost
			}
			return 0
		}},
	},
}

// relevantRules returns the rules a domain's scoring table touches, in
// table order. Feedback adjustments apply only to these.
func relevantRules(domain models.Domain) []models.Rule {
	table := domainRules[domain]
	rules := make([]models.Rule, 0, len(table))
	for _, contribution := range table {
		rules = append(rules, contribution.rule)
	}
	return rules
}

// matchAny reports whether any candidate contains (or is contained by) any
// lexicon keyword, case-insensitively.
func matchAny(candidates, keywords []string) bool {
	for _, c := range candidates {
		lower := strings.ToLower(strings.TrimSpace(c))
		if lower == "" {
			continue
		}
		for _, kw := range keywords {
			if strings.Contains(lower, kw) || strings.Contains(kw, lower) {
				return true
			}
		}
	}
	return false
}
