package storage

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/xaenox/advisor/internal/models"
)

//go:embed migrations.sql
var migrations embed.FS

type DatabaseConfig struct {
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	UseInMemory bool
}

type PostgresStorage struct {
	db *sql.DB
}

func NewPostgresStorage(config DatabaseConfig) (*PostgresStorage, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		config.Host, config.Port, config.User, config.Password, config.DBName, config.SSLMode)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %v", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("error connecting to the database: %v", err)
	}

	storage := &PostgresStorage{db: db}

	if err := storage.initializeSchema(); err != nil {
		return nil, fmt.Errorf("error initializing database schema: %v", err)
	}

	return storage, nil
}

func (s *PostgresStorage) initializeSchema() error {
	migrationSQL, err := migrations.ReadFile("migrations.sql")
	if err != nil {
		return fmt.Errorf("error reading migrations file: %v", err)
	}

	_, err = s.db.Exec(string(migrationSQL))
	if err != nil {
		return fmt.Errorf("error executing migrations: %v", err)
	}

	return nil
}

func (s *PostgresStorage) SaveInteraction(ctx context.Context, interaction *models.Interaction) error {
	query := `
		INSERT INTO interactions (id, user_id, interaction_type, query, response, emotional_state, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := s.db.ExecContext(ctx, query,
		interaction.ID,
		interaction.UserID,
		interaction.Type,
		interaction.Query,
		interaction.Response,
		interaction.EmotionalState,
		interaction.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("error saving interaction: %v", err)
	}
	return nil
}

func (s *PostgresStorage) RecentInteractions(ctx context.Context, userID int64, limit int) ([]*models.Interaction, error) {
	query := `
		SELECT id, user_id, interaction_type, query, response, emotional_state, created_at
		FROM interactions
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2`

	// LIMIT NULL means no limit; non-positive limits return the full log,
	// matching the in-memory store.
	var rowLimit any
	if limit > 0 {
		rowLimit = limit
	}
	rows, err := s.db.QueryContext(ctx, query, userID, rowLimit)
	if err != nil {
		return nil, fmt.Errorf("error querying interactions: %v", err)
	}
	defer rows.Close()

	var interactions []*models.Interaction
	for rows.Next() {
		it := &models.Interaction{}
		err := rows.Scan(
			&it.ID,
			&it.UserID,
			&it.Type,
			&it.Query,
			&it.Response,
			&it.EmotionalState,
			&it.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning interaction: %v", err)
		}
		interactions = append(interactions, it)
	}

	// Oldest first, matching the in-memory store
	for i, j := 0, len(interactions)-1; i < j; i, j = i+1, j-1 {
		interactions[i], interactions[j] = interactions[j], interactions[i]
	}
	return interactions, nil
}

func (s *PostgresStorage) DominantEmotionalState(ctx context.Context, userID int64, days int) (string, error) {
	query := `
		SELECT emotional_state, COUNT(*) AS n
		FROM interactions
		WHERE user_id = $1 AND emotional_state <> '' AND created_at >= $2
		GROUP BY emotional_state
		ORDER BY n DESC
		LIMIT 1`

	cutoff := time.Now().AddDate(0, 0, -days)
	var state string
	var n int
	err := s.db.QueryRowContext(ctx, query, userID, cutoff).Scan(&state, &n)
	if err == sql.ErrNoRows {
		return "neutral", nil
	}
	if err != nil {
		return "", fmt.Errorf("error querying dominant emotional state: %v", err)
	}
	return state, nil
}

func (s *PostgresStorage) AddHealthPoint(ctx context.Context, userID int64, metric string, point models.HealthPoint) error {
	query := `
		INSERT INTO health_metrics (user_id, metric, value, recorded_at)
		VALUES ($1, $2, $3, $4)`

	_, err := s.db.ExecContext(ctx, query, userID, metric, point.Value, point.Timestamp)
	if err != nil {
		return fmt.Errorf("error saving health point: %v", err)
	}
	return nil
}

func (s *PostgresStorage) HealthTrend(ctx context.Context, userID int64, metric string, days int) ([]models.HealthPoint, error) {
	query := `
		SELECT recorded_at, value
		FROM health_metrics
		WHERE user_id = $1 AND metric = $2 AND recorded_at >= $3
		ORDER BY recorded_at ASC`

	cutoff := time.Now().AddDate(0, 0, -days)
	rows, err := s.db.QueryContext(ctx, query, userID, metric, cutoff)
	if err != nil {
		return nil, fmt.Errorf("error querying health trend: %v", err)
	}
	defer rows.Close()

	var points []models.HealthPoint
	for rows.Next() {
		var p models.HealthPoint
		if err := rows.Scan(&p.Timestamp, &p.Value); err != nil {
			return nil, fmt.Errorf("error scanning health point: %v", err)
		}
		points = append(points, p)
	}
	return points, nil
}

func (s *PostgresStorage) RecordAppUsage(ctx context.Context, userID int64, appID string, minutes float64) error {
	query := `
		INSERT INTO app_usage (user_id, app_id, minutes, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, app_id)
		DO UPDATE SET minutes = app_usage.minutes + EXCLUDED.minutes, updated_at = EXCLUDED.updated_at`

	_, err := s.db.ExecContext(ctx, query, userID, appID, minutes, time.Now())
	if err != nil {
		return fmt.Errorf("error recording app usage: %v", err)
	}
	return nil
}

func (s *PostgresStorage) AppUsage(ctx context.Context, userID int64, days int) (map[string]float64, error) {
	query := `
		SELECT app_id, minutes
		FROM app_usage
		WHERE user_id = $1 AND updated_at >= $2`

	cutoff := time.Now().AddDate(0, 0, -days)
	rows, err := s.db.QueryContext(ctx, query, userID, cutoff)
	if err != nil {
		return nil, fmt.Errorf("error querying app usage: %v", err)
	}
	defer rows.Close()

	usage := make(map[string]float64)
	for rows.Next() {
		var app string
		var minutes float64
		if err := rows.Scan(&app, &minutes); err != nil {
			return nil, fmt.Errorf("error scanning app usage: %v", err)
		}
		usage[app] = minutes
	}
	return usage, nil
}

func (s *PostgresStorage) AddInterest(ctx context.Context, userID int64, keyword string) error {
	query := `
		INSERT INTO interests (user_id, keyword)
		VALUES ($1, $2)
		ON CONFLICT (user_id, keyword) DO NOTHING`

	_, err := s.db.ExecContext(ctx, query, userID, keyword)
	if err != nil {
		return fmt.Errorf("error saving interest: %v", err)
	}
	return nil
}

func (s *PostgresStorage) Interests(ctx context.Context, userID int64) ([]string, error) {
	query := `
		SELECT keyword
		FROM interests
		WHERE user_id = $1
		ORDER BY created_at ASC`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error querying interests: %v", err)
	}
	defer rows.Close()

	var keywords []string
	for rows.Next() {
		var kw string
		if err := rows.Scan(&kw); err != nil {
			return nil, fmt.Errorf("error scanning interest: %v", err)
		}
		keywords = append(keywords, kw)
	}
	return keywords, nil
}

func (s *PostgresStorage) AllPreferences(ctx context.Context, userID int64) (map[string]models.PreferenceValue, error) {
	query := `
		SELECT category, name, value
		FROM preferences
		WHERE user_id = $1`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error querying preferences: %v", err)
	}
	defer rows.Close()

	prefs := make(map[string]models.PreferenceValue)
	for rows.Next() {
		var category, name, raw string
		if err := rows.Scan(&category, &name, &raw); err != nil {
			return nil, fmt.Errorf("error scanning preference: %v", err)
		}
		prefs[PreferenceKey(category, name)] = models.DecodePreference(raw)
	}
	return prefs, nil
}

func (s *PostgresStorage) SetPreference(ctx context.Context, userID int64, category, name string, value models.PreferenceValue) error {
	query := `
		INSERT INTO preferences (user_id, category, name, value, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, category, name)
		DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`

	_, err := s.db.ExecContext(ctx, query, userID, category, name, value.Encode(), time.Now())
	if err != nil {
		return fmt.Errorf("error saving preference: %v", err)
	}
	return nil
}

func (s *PostgresStorage) RuleWeights(ctx context.Context, userID int64) (map[models.Rule]float64, error) {
	query := `
		SELECT rule, weight
		FROM rule_weights
		WHERE user_id = $1`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error querying rule weights: %v", err)
	}
	defer rows.Close()

	weights := make(map[models.Rule]float64)
	for rows.Next() {
		var rule string
		var weight float64
		if err := rows.Scan(&rule, &weight); err != nil {
			return nil, fmt.Errorf("error scanning rule weight: %v", err)
		}
		weights[models.Rule(rule)] = weight
	}
	if len(weights) == 0 {
		return nil, nil
	}
	return weights, nil
}

func (s *PostgresStorage) SaveRuleWeights(ctx context.Context, userID int64, weights map[models.Rule]float64) error {
	query := `
		INSERT INTO rule_weights (user_id, rule, weight, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, rule)
		DO UPDATE SET weight = EXCLUDED.weight, updated_at = EXCLUDED.updated_at`

	now := time.Now()
	for rule, weight := range weights {
		if _, err := s.db.ExecContext(ctx, query, userID, string(rule), weight, now); err != nil {
			return fmt.Errorf("error saving rule weight: %v", err)
		}
	}
	return nil
}

func (s *PostgresStorage) Topics(ctx context.Context, userID int64) ([]models.TopicData, error) {
	query := `
		SELECT name, occurrences, last_discussed
		FROM topics
		WHERE user_id = $1
		ORDER BY occurrences DESC`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error querying topics: %v", err)
	}
	defer rows.Close()

	var topics []models.TopicData
	for rows.Next() {
		var t models.TopicData
		if err := rows.Scan(&t.Name, &t.Occurrences, &t.LastDiscussed); err != nil {
			return nil, fmt.Errorf("error scanning topic: %v", err)
		}
		topics = append(topics, t)
	}
	return topics, nil
}

func (s *PostgresStorage) SaveTopics(ctx context.Context, userID int64, topics []models.TopicData) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting topics transaction: %v", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM topics WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("error clearing topics: %v", err)
	}

	query := `
		INSERT INTO topics (user_id, name, occurrences, last_discussed)
		VALUES ($1, $2, $3, $4)`
	for _, t := range topics {
		if _, err := tx.ExecContext(ctx, query, userID, t.Name, t.Occurrences, t.LastDiscussed); err != nil {
			return fmt.Errorf("error saving topic: %v", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing topics: %v", err)
	}
	return nil
}

func (s *PostgresStorage) Close() error {
	return s.db.Close()
}
