package aggregator

import (
	"context"
	"sort"

	"github.com/xaenox/advisor/internal/models"
	"github.com/xaenox/advisor/internal/storage"
	"go.uber.org/zap"
)

// Aggregator flattens the user's behavioral signals into a UserSnapshot.
// Every field is independently best-effort: a failing or empty source
// defaults that field to a neutral value instead of failing the snapshot.
type Aggregator struct {
	store        storage.Storage
	logger       *zap.Logger
	trendDays    int
	historyLimit int
}

func New(store storage.Storage, logger *zap.Logger, trendDays, historyLimit int) *Aggregator {
	if trendDays <= 0 {
		trendDays = 7
	}
	if historyLimit <= 0 {
		historyLimit = 20
	}
	return &Aggregator{
		store:        store,
		logger:       logger,
		trendDays:    trendDays,
		historyLimit: historyLimit,
	}
}

// Snapshot builds a fresh snapshot. It never returns an error; partial data
// is logged and replaced with defaults.
func (a *Aggregator) Snapshot(ctx context.Context, userID int64) models.UserSnapshot {
	snap := models.UserSnapshot{
		EmotionalState: "neutral",
		Interests:      []string{},
		TopApps:        []string{},
		RecentQueries:  []string{},
		Preferences:    map[string]models.PreferenceValue{},
	}

	if state, err := a.store.DominantEmotionalState(ctx, userID, a.trendDays); err != nil {
		a.logger.Warn("Failed to read emotional state, defaulting to neutral",
			zap.Error(err),
			zap.Int64("user_id", userID))
	} else if state != "" {
		snap.EmotionalState = state
	}

	snap.AverageSleepHours = a.trendAverage(ctx, userID, models.MetricSleepHours)
	snap.AverageActivityMins = a.trendAverage(ctx, userID, models.MetricActivityMinutes)

	if interests, err := a.store.Interests(ctx, userID); err != nil {
		a.logger.Warn("Failed to read interests",
			zap.Error(err),
			zap.Int64("user_id", userID))
	} else if interests != nil {
		snap.Interests = interests
	}

	if usage, err := a.store.AppUsage(ctx, userID, a.trendDays); err != nil {
		a.logger.Warn("Failed to read app usage",
			zap.Error(err),
			zap.Int64("user_id", userID))
	} else {
		snap.TopApps = topAppsByUsage(usage)
	}

	if interactions, err := a.store.RecentInteractions(ctx, userID, a.historyLimit); err != nil {
		a.logger.Warn("Failed to read interaction history",
			zap.Error(err),
			zap.Int64("user_id", userID))
	} else {
		for _, it := range interactions {
			if it.Query != "" {
				snap.RecentQueries = append(snap.RecentQueries, it.Query)
			}
		}
	}

	if prefs, err := a.store.AllPreferences(ctx, userID); err != nil {
		a.logger.Warn("Failed to read preferences",
			zap.Error(err),
			zap.Int64("user_id", userID))
	} else if prefs != nil {
		snap.Preferences = prefs
	}

	return snap
}

// trendAverage computes the mean of a health trend series; 0 means no data.
func (a *Aggregator) trendAverage(ctx context.Context, userID int64, metric string) float64 {
	points, err := a.store.HealthTrend(ctx, userID, metric, a.trendDays)
	if err != nil {
		a.logger.Warn("Failed to read health trend",
			zap.Error(err),
			zap.Int64("user_id", userID),
			zap.String("metric", metric))
		return 0
	}
	if len(points) == 0 {
		return 0
	}
	sum := 0.0
	for _, p := range points {
		sum += p.Value
	}
	return sum / float64(len(points))
}

// topAppsByUsage orders app IDs by usage descending; equal usage falls back
// to app ID order to stay deterministic.
func topAppsByUsage(usage map[string]float64) []string {
	apps := make([]string, 0, len(usage))
	for app := range usage {
		apps = append(apps, app)
	}
	sort.Slice(apps, func(i, j int) bool {
		if usage[apps[i]] != usage[apps[j]] {
			return usage[apps[i]] > usage[apps[j]]
		}
		return apps[i] < apps[j]
	})
	return apps
}
