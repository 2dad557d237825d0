package storage

import (
	"context"

	"github.com/xaenox/advisor/internal/models"
)

// Storage is the persistence surface the engine and analyzer read from and
// write to. Implementations must be safe for concurrent use.
type Storage interface {
	// Interaction log
	SaveInteraction(ctx context.Context, interaction *models.Interaction) error
	RecentInteractions(ctx context.Context, userID int64, limit int) ([]*models.Interaction, error)
	DominantEmotionalState(ctx context.Context, userID int64, days int) (string, error)

	// Health and behavior signals
	AddHealthPoint(ctx context.Context, userID int64, metric string, point models.HealthPoint) error
	HealthTrend(ctx context.Context, userID int64, metric string, days int) ([]models.HealthPoint, error)
	RecordAppUsage(ctx context.Context, userID int64, appID string, minutes float64) error
	AppUsage(ctx context.Context, userID int64, days int) (map[string]float64, error)
	AddInterest(ctx context.Context, userID int64, keyword string) error
	Interests(ctx context.Context, userID int64) ([]string, error)

	// Preferences
	AllPreferences(ctx context.Context, userID int64) (map[string]models.PreferenceValue, error)
	SetPreference(ctx context.Context, userID int64, category, name string, value models.PreferenceValue) error

	// Engine durability
	RuleWeights(ctx context.Context, userID int64) (map[models.Rule]float64, error)
	SaveRuleWeights(ctx context.Context, userID int64, weights map[models.Rule]float64) error
	Topics(ctx context.Context, userID int64) ([]models.TopicData, error)
	SaveTopics(ctx context.Context, userID int64, topics []models.TopicData) error

	Close() error
}

// PreferenceKey joins a preference category and name into the flat key used
// by AllPreferences.
func PreferenceKey(category, name string) string {
	return category + "." + name
}
