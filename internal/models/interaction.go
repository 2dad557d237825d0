package models

import "time"

// InteractionType labels what kind of exchange an interaction-log entry was.
type InteractionType string

const (
	InteractionQuery    InteractionType = "query"
	InteractionCommand  InteractionType = "command"
	InteractionChat     InteractionType = "chat"
	InteractionFeedback InteractionType = "feedback"
)

// Interaction is one entry in the user's chronological interaction log.
type Interaction struct {
	ID             string          `json:"id"`
	UserID         int64           `json:"user_id"`
	Type           InteractionType `json:"type"`
	Query          string          `json:"query"`
	Response       string          `json:"response,omitempty"`
	EmotionalState string          `json:"emotional_state,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// HealthPoint is a single timestamped sample in a health trend series.
type HealthPoint struct {
	Timestamp time.Time `json:"timestamp"`
	Value     float64   `json:"value"`
}

// Health metric names stored in the trend series.
const (
	MetricSleepHours      = "sleep_hours"
	MetricActivityMinutes = "activity_minutes"
)
