package recommend

import (
	"fmt"
	"math/rand"

	"github.com/xaenox/advisor/internal/models"
)

// Generator synthesizes concrete recommendation candidates for a domain.
// Randomness is confined to description phrasing: titles, types, relevance
// scores and ordering are deterministic so served lists stay stable.
type Generator struct {
	rng *rand.Rand
}

func NewGenerator(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// pick selects one phrasing variant for a description.
func (g *Generator) pick(variants ...string) string {
	return variants[g.rng.Intn(len(variants))]
}

// Generate produces the candidate list for one domain. Candidates carry
// fixed relevance literals reflecting template confidence, not the domain
// score.
func (g *Generator) Generate(domain models.Domain, snap models.UserSnapshot, ctx models.RecommendationContext) []models.Recommendation {
	switch domain {
	case models.DomainHealth:
		return g.healthCandidates(snap, ctx)
	case models.DomainProductivity:
		return g.productivityCandidates(snap, ctx)
	case models.DomainEntertainment:
		return g.entertainmentCandidates(snap, ctx)
	case models.DomainLearning:
		return g.learningCandidates(snap, ctx)
	case models.DomainSocial:
		return g.socialCandidates(snap, ctx)
	case models.DomainNews:
		return g.newsCandidates(snap, ctx)
	case models.DomainFinance:
		return g.financeCandidates(snap, ctx)
	}
	return nil
}

func (g *Generator) healthCandidates(snap models.UserSnapshot, ctx models.RecommendationContext) []models.Recommendation {
	var out []models.Recommendation

	if snap.AverageSleepHours > 0 && snap.AverageSleepHours < sleepTargetHours {
		out = append(out, models.Recommendation{
			Title:  "Improve your sleep routine",
			Domain: models.DomainHealth,
			Type:   models.TypeAdvice,
			Description: g.pick(
				fmt.Sprintf("You averaged %.1f hours of sleep lately. Winding down half an hour earlier can help.", snap.AverageSleepHours),
				fmt.Sprintf("Your recent average is %.1f hours of sleep. A consistent bedtime makes a real difference.", snap.AverageSleepHours),
			),
			Relevance: 0.9,
		})
	}

	if snap.AverageActivityMins > 0 && snap.AverageActivityMins < activityTargetMinutes {
		out = append(out, models.Recommendation{
			Title:  "Take a short walk",
			Domain: models.DomainHealth,
			Type:   models.TypeActivity,
			Description: g.pick(
				"A ten-minute walk now would lift your daily activity.",
				"You have been less active than usual. A quick walk helps more than it seems.",
			),
			Relevance: 0.8,
		})
	}

	if models.NegativeEmotions[snap.EmotionalState] {
		out = append(out, models.Recommendation{
			Title:  "Try a breathing exercise",
			Domain: models.DomainHealth,
			Type:   models.TypeActivity,
			Description: g.pick(
				"Two minutes of slow breathing can ease a heavy mood.",
				"A short breathing exercise is a gentle way to reset.",
			),
			Relevance: 0.8,
		})
	}

	if ctx.Hour >= 6 && ctx.Hour <= 10 {
		out = append(out, models.Recommendation{
			Title:  "Start the day with a glass of water",
			Domain: models.DomainHealth,
			Type:   models.TypeReminder,
			Description: g.pick(
				"Hydrating first thing sets up the morning well.",
				"A glass of water before coffee is an easy win.",
			),
			Relevance: 0.7,
		})
	}

	return out
}

func (g *Generator) productivityCandidates(snap models.UserSnapshot, ctx models.RecommendationContext) []models.Recommendation {
	var out []models.Recommendation

	if !ctx.IsWeekend() && ctx.Hour >= 9 && ctx.Hour <= 17 {
		out = append(out, models.Recommendation{
			Title:  "Plan your top three tasks",
			Domain: models.DomainProductivity,
			Type:   models.TypeAdvice,
			Description: g.pick(
				"Write down the three things that matter most today and start with the hardest.",
				"Picking three priorities keeps the day from scattering.",
			),
			Relevance: 0.8,
		})
	}

	if pref, ok := snap.Preferences[prefProductivityFocus]; ok && pref.Kind == models.PrefBool && pref.Bool {
		out = append(out, models.Recommendation{
			Title:  "Start a focus session",
			Domain: models.DomainProductivity,
			Type:   models.TypeActivity,
			Description: g.pick(
				"Twenty-five minutes, no notifications. Ready when you are.",
				"A short focused block now keeps the momentum you asked for.",
			),
			Relevance:   0.8,
			ActionLabel: "Start timer",
		})
	}

	if !ctx.IsWeekend() && ctx.Hour >= 13 && ctx.Hour <= 15 {
		out = append(out, models.Recommendation{
			Title:  "Beat the afternoon dip",
			Domain: models.DomainProductivity,
			Type:   models.TypeAdvice,
			Description: g.pick(
				"Energy drops after lunch. Switch to lighter tasks or take a five-minute break.",
				"The early afternoon is a good slot for routine work rather than deep focus.",
			),
			Relevance: 0.7,
		})
	}

	return out
}

func (g *Generator) entertainmentCandidates(snap models.UserSnapshot, ctx models.RecommendationContext) []models.Recommendation {
	var out []models.Recommendation

	if ctx.Hour >= 19 || ctx.Hour <= 1 {
		out = append(out, models.Recommendation{
			Title:  "Unwind with something to watch",
			Domain: models.DomainEntertainment,
			Type:   models.TypeContent,
			Description: g.pick(
				"The evening is yours. Something light from your watchlist?",
				"A good episode is a fine way to close the day.",
			),
			Relevance: 0.8,
		})
	}

	if lowMoodEmotions[snap.EmotionalState] {
		out = append(out, models.Recommendation{
			Title:  "Listen to an uplifting playlist",
			Domain: models.DomainEntertainment,
			Type:   models.TypeContent,
			Description: g.pick(
				"Music shifts a mood faster than almost anything.",
				"A familiar upbeat playlist might be exactly the thing right now.",
			),
			Relevance:   0.8,
			ActionLabel: "Play",
		})
	}

	if ctx.IsWeekend() {
		out = append(out, models.Recommendation{
			Title:  "Weekend watchlist",
			Domain: models.DomainEntertainment,
			Type:   models.TypeContent,
			Description: g.pick(
				"No alarms tomorrow. A film tonight?",
				"Weekends are for the longer things you saved up.",
			),
			Relevance: 0.7,
		})
	}

	return out
}

func (g *Generator) learningCandidates(snap models.UserSnapshot, ctx models.RecommendationContext) []models.Recommendation {
	var out []models.Recommendation

	if interest := firstMatch(snap.Interests, learningKeywords); interest != "" {
		out = append(out, models.Recommendation{
			Title:  fmt.Sprintf("Continue learning: %s", interest),
			Domain: models.DomainLearning,
			Type:   models.TypeContent,
			Description: g.pick(
				"Fifteen minutes on a standing interest beats an hour once a month.",
				"Small regular sessions are how this sticks.",
			),
			Relevance: 0.9,
		})
	}

	if matchAny(snap.RecentQueries, []string{"كيف", "how"}) {
		out = append(out, models.Recommendation{
			Title:  "Revisit your recent questions",
			Domain: models.DomainLearning,
			Type:   models.TypeContent,
			Description: g.pick(
				"You asked some good questions lately. Worth a deeper read on one of them.",
				"One of your recent questions deserves more than a quick answer.",
			),
			Relevance: 0.7,
		})
	}

	if ctx.Hour >= 19 && ctx.Hour <= 21 {
		out = append(out, models.Recommendation{
			Title:  "A short lesson this evening",
			Domain: models.DomainLearning,
			Type:   models.TypeActivity,
			Description: g.pick(
				"Evenings are a quiet slot for a single short lesson.",
				"One lesson before the day ends keeps the streak alive.",
			),
			Relevance: 0.7,
		})
	}

	return out
}

func (g *Generator) socialCandidates(snap models.UserSnapshot, ctx models.RecommendationContext) []models.Recommendation {
	var out []models.Recommendation

	if withdrawnEmotions[snap.EmotionalState] {
		out = append(out, models.Recommendation{
			Title:  "Call someone close to you",
			Domain: models.DomainSocial,
			Type:   models.TypeActivity,
			Description: g.pick(
				"A short call with someone who knows you helps more than scrolling.",
				"Reaching out is hard when you are low, and it is usually worth it.",
			),
			Relevance: 0.9,
		})
	}

	if ctx.Hour >= 18 && ctx.Hour <= 23 {
		out = append(out, models.Recommendation{
			Title:  "Reach out to a friend",
			Domain: models.DomainSocial,
			Type:   models.TypeActivity,
			Description: g.pick(
				"Evenings are when people are free. Send that message.",
				"A quick check-in keeps friendships warm.",
			),
			Relevance: 0.8,
		})
	}

	if ctx.IsWeekend() {
		out = append(out, models.Recommendation{
			Title:  "Plan something with family",
			Domain: models.DomainSocial,
			Type:   models.TypeActivity,
			Description: g.pick(
				"The weekend is a good window for time together.",
				"Even a short shared meal counts.",
			),
			Relevance: 0.7,
		})
	}

	return out
}

func (g *Generator) newsCandidates(snap models.UserSnapshot, ctx models.RecommendationContext) []models.Recommendation {
	var out []models.Recommendation

	if ctx.Hour >= 6 && ctx.Hour <= 9 {
		out = append(out, models.Recommendation{
			Title:  "Morning headlines",
			Domain: models.DomainNews,
			Type:   models.TypeContent,
			Description: g.pick(
				"A five-minute scan of the morning's headlines.",
				"Catch up on what happened overnight.",
			),
			Relevance: 0.8,
		})
	}

	if ctx.Hour >= 18 && ctx.Hour <= 21 {
		out = append(out, models.Recommendation{
			Title:  "Evening news recap",
			Domain: models.DomainNews,
			Type:   models.TypeContent,
			Description: g.pick(
				"The day's stories, condensed.",
				"A short recap of today before you switch off.",
			),
			Relevance: 0.7,
		})
	}

	return out
}

func (g *Generator) financeCandidates(snap models.UserSnapshot, ctx models.RecommendationContext) []models.Recommendation {
	var out []models.Recommendation

	if pref, ok := snap.Preferences[prefBudgetAlerts]; ok && pref.Kind == models.PrefBool && pref.Bool {
		out = append(out, models.Recommendation{
			Title:  "Review this week's spending",
			Domain: models.DomainFinance,
			Type:   models.TypeReminder,
			Description: g.pick(
				"You asked to keep an eye on the budget. A quick review keeps surprises away.",
				"Five minutes over the week's spending keeps the plan honest.",
			),
			Relevance: 0.8,
		})
	}

	if matchAny(snap.Interests, financeKeywords) {
		out = append(out, models.Recommendation{
			Title:  "Market snapshot",
			Domain: models.DomainFinance,
			Type:   models.TypeContent,
			Description: g.pick(
				"A brief look at how the markets moved today.",
				"Today's market movements at a glance.",
			),
			Relevance: 0.7,
		})
	}

	if !ctx.IsWeekend() && ctx.Hour >= 9 && ctx.Hour <= 16 {
		out = append(out, models.Recommendation{
			Title:  "Check your budget status",
			Domain: models.DomainFinance,
			Type:   models.TypeReminder,
			Description: g.pick(
				"A midday glance at the numbers keeps the month on track.",
				"Quick budget check while the banks are open.",
			),
			Relevance: 0.7,
		})
	}

	return out
}

// firstMatch returns the first candidate that matches the lexicon, used to
// personalize titles deterministically.
func firstMatch(candidates, keywords []string) string {
	for _, c := range candidates {
		if matchAny([]string{c}, keywords) {
			return c
		}
	}
	return ""
}
