package conversation

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/xaenox/advisor/internal/models"
	"github.com/xaenox/advisor/internal/storage"
	"go.uber.org/zap"
)

// Options tune the analyzer. Zero values fall back to defaults.
type Options struct {
	// Gap between consecutive interactions that starts a new conversation.
	Gap          time.Duration
	HistoryLimit int
	MaxTopics    int
	MaxWords     int
}

func (o *Options) withDefaults() {
	if o.Gap <= 0 {
		o.Gap = 30 * time.Minute
	}
	if o.HistoryLimit <= 0 {
		o.HistoryLimit = 100
	}
	if o.MaxTopics <= 0 {
		o.MaxTopics = 50
	}
	if o.MaxWords <= 0 {
		o.MaxWords = 500
	}
}

// userAnalysis is the per-user mutable analyzer state.
type userAnalysis struct {
	topics *topicTable
	lang   *languageTracker
}

// Analyzer groups the interaction log into time-bounded conversations,
// extracts per-conversation insights, and merges them across the analysis
// window. Topic counters and language preferences accumulate across calls.
type Analyzer struct {
	mu     sync.Mutex
	store  storage.Storage
	logger *zap.Logger
	opts   Options
	users  map[int64]*userAnalysis
}

func NewAnalyzer(store storage.Storage, logger *zap.Logger, opts Options) *Analyzer {
	opts.withDefaults()
	return &Analyzer{
		store:  store,
		logger: logger,
		opts:   opts,
		users:  make(map[int64]*userAnalysis),
	}
}

// userAnalysisLocked returns per-user state, loading the persisted topic
// table on first use. Callers must hold a.mu.
func (a *Analyzer) userAnalysisLocked(ctx context.Context, userID int64) *userAnalysis {
	if state, ok := a.users[userID]; ok {
		return state
	}

	state := &userAnalysis{
		topics: newTopicTable(a.opts.MaxTopics),
		lang:   newLanguageTracker(a.opts.MaxWords),
	}
	if persisted, err := a.store.Topics(ctx, userID); err != nil {
		a.logger.Warn("Failed to load topic table, starting empty",
			zap.Error(err),
			zap.Int64("user_id", userID))
	} else {
		state.topics.load(persisted)
	}
	a.users[userID] = state
	return state
}

// Analyze reads the recent interaction log, partitions it into
// conversations, and returns merged insights. It never fails: errors
// degrade to empty insights.
func (a *Analyzer) Analyze(ctx context.Context, userID int64) models.ConversationInsights {
	a.mu.Lock()
	defer a.mu.Unlock()

	state := a.userAnalysisLocked(ctx, userID)

	interactions, err := a.store.RecentInteractions(ctx, userID, a.opts.HistoryLimit)
	if err != nil {
		a.logger.Warn("Failed to read interaction history",
			zap.Error(err),
			zap.Int64("user_id", userID))
		return models.EmptyInsights()
	}

	groups := groupByGap(interactions, a.opts.Gap)

	var analyzed []groupInsight
	for _, group := range groups {
		// Single-message groups carry no conversational signal.
		if len(group) < 2 {
			continue
		}
		insight := a.analyzeGroup(group, state)
		analyzed = append(analyzed, insight)
	}

	if len(analyzed) == 0 {
		return models.EmptyInsights()
	}

	merged := mergeInsights(analyzed)

	if err := a.store.SaveTopics(ctx, userID, state.topics.sorted()); err != nil {
		a.logger.Error("Failed to persist topic table",
			zap.Error(err),
			zap.Int64("user_id", userID))
	}

	a.logger.Info("Analyzed conversation window",
		zap.Int64("user_id", userID),
		zap.Int("interactions", len(interactions)),
		zap.Int("conversations", len(analyzed)),
		zap.Int("topics", len(merged.Topics)))

	return merged
}

// groupInsight is the analysis of one conversation group.
type groupInsight struct {
	topics    []string
	keywords  []string
	patterns  []string
	emotion   string
	context   string
	timeOfDay string
}

func (a *Analyzer) analyzeGroup(group []*models.Interaction, state *userAnalysis) groupInsight {
	queries := make([]string, 0, len(group))
	for _, it := range group {
		if it.Query != "" {
			queries = append(queries, it.Query)
		}
	}

	keywords := topKeywords(queries, maxKeywordsPerGroup)
	topics := matchTopics(keywords)

	last := group[len(group)-1].CreatedAt
	for _, topic := range topics {
		state.topics.upsert(topic, last)
	}

	// Language preferences update as a side effect, independent of the
	// returned insights.
	state.lang.observe(queries)

	return groupInsight{
		topics:    topics,
		keywords:  keywords,
		patterns:  questionPatterns(queries),
		emotion:   dominantEmotion(group),
		context:   classifyContext(queries),
		timeOfDay: timeOfDayLabel(group[0].CreatedAt.Hour()),
	}
}

// groupByGap sorts interactions chronologically and partitions them
// wherever the delta between consecutive entries exceeds the gap. Single
// linear pass, no backtracking.
func groupByGap(interactions []*models.Interaction, gap time.Duration) [][]*models.Interaction {
	if len(interactions) == 0 {
		return nil
	}

	sorted := make([]*models.Interaction, len(interactions))
	copy(sorted, interactions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})

	var groups [][]*models.Interaction
	current := []*models.Interaction{sorted[0]}
	for _, it := range sorted[1:] {
		if it.CreatedAt.Sub(current[len(current)-1].CreatedAt) > gap {
			groups = append(groups, current)
			current = []*models.Interaction{it}
			continue
		}
		current = append(current, it)
	}
	groups = append(groups, current)
	return groups
}

// dominantEmotion is a majority vote over the group's recorded states;
// ties resolve to the earliest-seen state.
func dominantEmotion(group []*models.Interaction) string {
	counts := make(map[string]int)
	var order []string
	for _, it := range group {
		if it.EmotionalState == "" {
			continue
		}
		if counts[it.EmotionalState] == 0 {
			order = append(order, it.EmotionalState)
		}
		counts[it.EmotionalState]++
	}

	dominant := "neutral"
	best := 0
	for _, state := range order {
		if counts[state] > best {
			dominant = state
			best = counts[state]
		}
	}
	return dominant
}

// classifyContext counts which fixed phrase set matches the most entries.
func classifyContext(queries []string) string {
	counts := map[string]int{}
	for _, q := range queries {
		lower := strings.ToLower(q)
		for label, phrases := range contextPhraseSets {
			for _, phrase := range phrases {
				if strings.Contains(lower, phrase) {
					counts[label]++
					break
				}
			}
		}
	}

	best := "general_chat"
	bestCount := 0
	// Stable label order for deterministic ties
	for _, label := range []string{"inquiry", "help_request", "command", "general_chat"} {
		if counts[label] > bestCount {
			best = label
			bestCount = counts[label]
		}
	}
	return best
}

func timeOfDayLabel(hour int) string {
	switch {
	case hour >= 6 && hour < 12:
		return "morning"
	case hour >= 12 && hour < 18:
		return "afternoon"
	case hour >= 18 && hour < 23:
		return "evening"
	default:
		return "night"
	}
}

// mergeInsights unions the per-group results, capping each set, and
// majority-votes the emotion, context and time-of-day labels.
func mergeInsights(groups []groupInsight) models.ConversationInsights {
	merged := models.ConversationInsights{
		Topics:           unionCapped(groups, func(g groupInsight) []string { return g.topics }, 10),
		Keywords:         unionCapped(groups, func(g groupInsight) []string { return g.keywords }, maxKeywordsPerGroup),
		QuestionPatterns: unionCapped(groups, func(g groupInsight) []string { return g.patterns }, maxQuestionPatterns),
		DominantEmotion:  majorityLabel(groups, func(g groupInsight) string { return g.emotion }, "neutral"),
		Context:          majorityLabel(groups, func(g groupInsight) string { return g.context }, "general_chat"),
		TimeOfDay:        majorityLabel(groups, func(g groupInsight) string { return g.timeOfDay }, ""),
	}
	return merged
}

func unionCapped(groups []groupInsight, pick func(groupInsight) []string, max int) []string {
	var out []string
	seen := make(map[string]bool)
	for _, g := range groups {
		for _, item := range pick(g) {
			if seen[item] {
				continue
			}
			seen[item] = true
			out = append(out, item)
			if len(out) >= max {
				return out
			}
		}
	}
	if out == nil {
		out = []string{}
	}
	return out
}

func majorityLabel(groups []groupInsight, pick func(groupInsight) string, fallback string) string {
	counts := make(map[string]int)
	var order []string
	for _, g := range groups {
		label := pick(g)
		if label == "" {
			continue
		}
		if counts[label] == 0 {
			order = append(order, label)
		}
		counts[label]++
	}

	best := fallback
	bestCount := 0
	for _, label := range order {
		if counts[label] > bestCount {
			best = label
			bestCount = counts[label]
		}
	}
	return best
}

// LanguagePreferences returns a copy of the accumulated language profile.
func (a *Analyzer) LanguagePreferences(ctx context.Context, userID int64) models.LanguagePreferences {
	a.mu.Lock()
	defer a.mu.Unlock()

	state := a.userAnalysisLocked(ctx, userID)
	return state.lang.snapshot()
}

// DiscoveredTopics returns tracked topics sorted by occurrence descending.
func (a *Analyzer) DiscoveredTopics(ctx context.Context, userID int64) []models.TopicData {
	a.mu.Lock()
	defer a.mu.Unlock()

	state := a.userAnalysisLocked(ctx, userID)
	return state.topics.sorted()
}
