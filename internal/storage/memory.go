package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/xaenox/advisor/internal/models"
)

// MemoryStorage is an in-memory Storage for development and tests.
// Data is lost on restart.
type MemoryStorage struct {
	mu           sync.RWMutex
	interactions map[int64][]*models.Interaction
	health       map[int64]map[string][]models.HealthPoint
	appUsage     map[int64]map[string]float64
	interests    map[int64][]string
	preferences  map[int64]map[string]models.PreferenceValue
	weights      map[int64]map[models.Rule]float64
	topics       map[int64][]models.TopicData
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		interactions: make(map[int64][]*models.Interaction),
		health:       make(map[int64]map[string][]models.HealthPoint),
		appUsage:     make(map[int64]map[string]float64),
		interests:    make(map[int64][]string),
		preferences:  make(map[int64]map[string]models.PreferenceValue),
		weights:      make(map[int64]map[models.Rule]float64),
		topics:       make(map[int64][]models.TopicData),
	}
}

func (s *MemoryStorage) SaveInteraction(ctx context.Context, interaction *models.Interaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *interaction
	s.interactions[interaction.UserID] = append(s.interactions[interaction.UserID], &copied)
	return nil
}

func (s *MemoryStorage) RecentInteractions(ctx context.Context, userID int64, limit int) ([]*models.Interaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := s.interactions[userID]
	if limit > 0 && len(all) > limit {
		all = all[len(all)-limit:]
	}
	result := make([]*models.Interaction, len(all))
	for i, it := range all {
		copied := *it
		result[i] = &copied
	}
	return result, nil
}

func (s *MemoryStorage) DominantEmotionalState(ctx context.Context, userID int64, days int) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cutoff := time.Now().AddDate(0, 0, -days)
	counts := make(map[string]int)
	for _, it := range s.interactions[userID] {
		if it.EmotionalState == "" || it.CreatedAt.Before(cutoff) {
			continue
		}
		counts[it.EmotionalState]++
	}

	dominant := "neutral"
	best := 0
	for state, count := range counts {
		if count > best {
			dominant = state
			best = count
		}
	}
	return dominant, nil
}

func (s *MemoryStorage) AddHealthPoint(ctx context.Context, userID int64, metric string, point models.HealthPoint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.health[userID] == nil {
		s.health[userID] = make(map[string][]models.HealthPoint)
	}
	s.health[userID][metric] = append(s.health[userID][metric], point)
	return nil
}

func (s *MemoryStorage) HealthTrend(ctx context.Context, userID int64, metric string, days int) ([]models.HealthPoint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cutoff := time.Now().AddDate(0, 0, -days)
	var result []models.HealthPoint
	if byMetric, ok := s.health[userID]; ok {
		for _, p := range byMetric[metric] {
			if !p.Timestamp.Before(cutoff) {
				result = append(result, p)
			}
		}
	}
	return result, nil
}

func (s *MemoryStorage) RecordAppUsage(ctx context.Context, userID int64, appID string, minutes float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.appUsage[userID] == nil {
		s.appUsage[userID] = make(map[string]float64)
	}
	s.appUsage[userID][appID] += minutes
	return nil
}

func (s *MemoryStorage) AppUsage(ctx context.Context, userID int64, days int) (map[string]float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[string]float64, len(s.appUsage[userID]))
	for app, minutes := range s.appUsage[userID] {
		result[app] = minutes
	}
	return result, nil
}

func (s *MemoryStorage) AddInterest(ctx context.Context, userID int64, keyword string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.interests[userID] {
		if existing == keyword {
			return nil
		}
	}
	s.interests[userID] = append(s.interests[userID], keyword)
	return nil
}

func (s *MemoryStorage) Interests(ctx context.Context, userID int64) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]string, len(s.interests[userID]))
	copy(result, s.interests[userID])
	return result, nil
}

func (s *MemoryStorage) AllPreferences(ctx context.Context, userID int64) (map[string]models.PreferenceValue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[string]models.PreferenceValue, len(s.preferences[userID]))
	for key, value := range s.preferences[userID] {
		result[key] = value
	}
	return result, nil
}

func (s *MemoryStorage) SetPreference(ctx context.Context, userID int64, category, name string, value models.PreferenceValue) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.preferences[userID] == nil {
		s.preferences[userID] = make(map[string]models.PreferenceValue)
	}
	s.preferences[userID][PreferenceKey(category, name)] = value
	return nil
}

func (s *MemoryStorage) RuleWeights(ctx context.Context, userID int64) (map[models.Rule]float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.weights[userID] == nil {
		return nil, nil
	}
	result := make(map[models.Rule]float64, len(s.weights[userID]))
	for rule, weight := range s.weights[userID] {
		result[rule] = weight
	}
	return result, nil
}

func (s *MemoryStorage) SaveRuleWeights(ctx context.Context, userID int64, weights map[models.Rule]float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := make(map[models.Rule]float64, len(weights))
	for rule, weight := range weights {
		copied[rule] = weight
	}
	s.weights[userID] = copied
	return nil
}

func (s *MemoryStorage) Topics(ctx context.Context, userID int64) ([]models.TopicData, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]models.TopicData, len(s.topics[userID]))
	copy(result, s.topics[userID])
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Occurrences > result[j].Occurrences
	})
	return result, nil
}

func (s *MemoryStorage) SaveTopics(ctx context.Context, userID int64, topics []models.TopicData) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := make([]models.TopicData, len(topics))
	copy(copied, topics)
	s.topics[userID] = copied
	return nil
}

func (s *MemoryStorage) Close() error {
	// Nothing to close for in-memory storage
	return nil
}
