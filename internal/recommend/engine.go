package recommend

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/xaenox/advisor/internal/aggregator"
	"github.com/xaenox/advisor/internal/models"
	"github.com/xaenox/advisor/internal/storage"
	"go.uber.org/zap"
)

// Options tune the engine. Zero values fall back to defaults.
type Options struct {
	MaxResults       int
	TopDomains       int
	LearningRate     float64
	ServedCacheSize  int
	FeedbackRingSize int
	Seed             int64
}

func (o *Options) withDefaults() {
	if o.MaxResults <= 0 {
		o.MaxResults = 5
	}
	if o.TopDomains <= 0 {
		o.TopDomains = 3
	}
	if o.LearningRate <= 0 {
		o.LearningRate = DefaultLearningRate
	}
	if o.ServedCacheSize <= 0 {
		o.ServedCacheSize = 50
	}
	if o.FeedbackRingSize <= 0 {
		o.FeedbackRingSize = 100
	}
	if o.Seed == 0 {
		o.Seed = time.Now().UnixNano()
	}
}

// userState is the per-user mutable engine state: the weight table, the
// ring of recently served recommendations, and bounded feedback history.
type userState struct {
	scorer  *Scorer
	served  []models.Recommendation
	history map[models.Domain][]models.RecommendationFeedback
}

// Engine is the recommendation pipeline facade: aggregate, score, generate,
// rank, and learn from feedback. A single mutex serializes generation and
// feedback so weight reads never race weight writes.
type Engine struct {
	mu      sync.Mutex
	store   storage.Storage
	agg     *aggregator.Aggregator
	gen     *Generator
	learner *Learner
	logger  *zap.Logger
	opts    Options
	users   map[int64]*userState
}

func NewEngine(store storage.Storage, agg *aggregator.Aggregator, logger *zap.Logger, opts Options) *Engine {
	opts.withDefaults()
	return &Engine{
		store:   store,
		agg:     agg,
		gen:     NewGenerator(opts.Seed),
		learner: NewLearner(opts.LearningRate),
		logger:  logger,
		opts:    opts,
		users:   make(map[int64]*userState),
	}
}

// userStateLocked returns the per-user state, loading persisted rule
// weights on first use. Callers must hold e.mu.
func (e *Engine) userStateLocked(ctx context.Context, userID int64) *userState {
	if state, ok := e.users[userID]; ok {
		return state
	}

	weights := DefaultRuleWeights()
	if persisted, err := e.store.RuleWeights(ctx, userID); err != nil {
		e.logger.Warn("Failed to load rule weights, starting from defaults",
			zap.Error(err),
			zap.Int64("user_id", userID))
	} else {
		for rule, weight := range persisted {
			weights[rule] = weight
		}
	}

	state := &userState{
		scorer:  NewScorer(weights),
		history: make(map[models.Domain][]models.RecommendationFeedback),
	}
	e.users[userID] = state
	return state
}

// GenerateRecommendations runs the full pipeline for one request. It never
// fails: internal errors degrade to an empty list.
func (e *Engine) GenerateRecommendations(ctx context.Context, userID int64, recCtx models.RecommendationContext) []models.Recommendation {
	e.mu.Lock()
	defer e.mu.Unlock()

	state := e.userStateLocked(ctx, userID)
	snap := e.agg.Snapshot(ctx, userID)

	scores := state.scorer.Score(recCtx, snap)
	ranked := RankDomains(scores)

	var candidates []models.Recommendation
	for i := 0; i < e.opts.TopDomains && i < len(ranked); i++ {
		candidates = append(candidates, e.gen.Generate(ranked[i], snap, recCtx)...)
	}

	results := Rank(candidates, e.opts.MaxResults)
	for i := range results {
		results[i].ID = uuid.New().String()
	}

	state.served = append(state.served, results...)
	if len(state.served) > e.opts.ServedCacheSize {
		state.served = state.served[len(state.served)-e.opts.ServedCacheSize:]
	}

	e.logger.Info("Generated recommendations",
		zap.Int64("user_id", userID),
		zap.Int("hour", recCtx.Hour),
		zap.Int("count", len(results)),
		zap.String("top_domain", string(ranked[0])))

	return results
}

// RecordFeedback applies one user reaction to a previously served
// recommendation, identified by its stable ID. Weight updates are flushed
// to storage after every call.
func (e *Engine) RecordFeedback(ctx context.Context, userID int64, recommendationID string, interaction models.FeedbackType) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	state := e.userStateLocked(ctx, userID)

	var rec *models.Recommendation
	for i := len(state.served) - 1; i >= 0; i-- {
		if state.served[i].ID == recommendationID {
			rec = &state.served[i]
			break
		}
	}
	if rec == nil {
		return fmt.Errorf("unknown recommendation id %q", recommendationID)
	}

	touched := e.learner.Apply(state.scorer.Weights(), rec.Domain, interaction)
	if touched == nil {
		return fmt.Errorf("unknown interaction type %q", interaction)
	}

	feedback := models.RecommendationFeedback{
		Recommendation: *rec,
		Interaction:    interaction,
		CreatedAt:      time.Now(),
	}
	ring := append(state.history[rec.Domain], feedback)
	if len(ring) > e.opts.FeedbackRingSize {
		ring = ring[len(ring)-e.opts.FeedbackRingSize:]
	}
	state.history[rec.Domain] = ring

	if err := e.store.SaveRuleWeights(ctx, userID, state.scorer.Weights()); err != nil {
		e.logger.Error("Failed to persist rule weights",
			zap.Error(err),
			zap.Int64("user_id", userID))
	}

	if IsPositiveSignal(interaction) {
		if err := e.store.SetPreference(ctx, userID, "liked", string(rec.Domain), models.StringPref(rec.Title)); err != nil {
			e.logger.Error("Failed to persist liked recommendation",
				zap.Error(err),
				zap.Int64("user_id", userID),
				zap.String("title", rec.Title))
		}
	}

	e.logger.Info("Recorded recommendation feedback",
		zap.Int64("user_id", userID),
		zap.String("domain", string(rec.Domain)),
		zap.String("interaction", string(interaction)),
		zap.Int("rules_adjusted", len(touched)))

	return nil
}

// WeightsSnapshot returns a copy of the user's current rule weights.
func (e *Engine) WeightsSnapshot(ctx context.Context, userID int64) map[models.Rule]float64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	state := e.userStateLocked(ctx, userID)
	copied := make(map[models.Rule]float64, len(state.scorer.Weights()))
	for rule, weight := range state.scorer.Weights() {
		copied[rule] = weight
	}
	return copied
}

// FeedbackCount reports how many feedback events are retained for a domain.
func (e *Engine) FeedbackCount(ctx context.Context, userID int64, domain models.Domain) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	state := e.userStateLocked(ctx, userID)
	return len(state.history[domain])
}
