package main

import (
	"time"

	"github.com/xaenox/advisor/internal/aggregator"
	"github.com/xaenox/advisor/internal/bot"
	"github.com/xaenox/advisor/internal/conversation"
	"github.com/xaenox/advisor/internal/intent"
	"github.com/xaenox/advisor/internal/recommend"
	"github.com/xaenox/advisor/internal/storage"
	"github.com/xaenox/advisor/pkg/config"
	"go.uber.org/zap"
)

func main() {
	// Initialize logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// Load configuration
	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err), zap.String("path", "config.yaml"))
	}

	// Initialize storage
	var store storage.Storage
	if cfg.Database.UseInMemory {
		logger.Info("Using in-memory storage")
		store = storage.NewMemoryStorage()
	} else {
		logger.Info("Using PostgreSQL storage")
		dbConfig := storage.DatabaseConfig{
			Host:        cfg.Database.Host,
			Port:        cfg.Database.Port,
			User:        cfg.Database.User,
			Password:    cfg.Database.Password,
			DBName:      cfg.Database.DBName,
			SSLMode:     cfg.Database.SSLMode,
			UseInMemory: cfg.Database.UseInMemory,
		}
		store, err = storage.NewPostgresStorage(dbConfig)
		if err != nil {
			logger.Fatal("Failed to initialize storage", zap.Error(err))
		}
	}
	defer store.Close()

	// Initialize the recommendation pipeline
	agg := aggregator.New(store, logger, cfg.Engine.TrendDays, cfg.Engine.HistoryLimit)
	engine := recommend.NewEngine(store, agg, logger, recommend.Options{
		MaxResults:       cfg.Engine.MaxResults,
		TopDomains:       cfg.Engine.TopDomains,
		LearningRate:     cfg.Engine.LearningRate,
		ServedCacheSize:  cfg.Engine.ServedCacheSize,
		FeedbackRingSize: cfg.Engine.FeedbackRingSize,
	})

	// Initialize the conversation analyzer
	analyzer := conversation.NewAnalyzer(store, logger, conversation.Options{
		Gap:          time.Duration(cfg.Analyzer.GapMinutes) * time.Minute,
		HistoryLimit: cfg.Analyzer.HistoryLimit,
		MaxTopics:    cfg.Analyzer.MaxTrackedTopics,
		MaxWords:     cfg.Analyzer.MaxWordFrequency,
	})

	// Initialize the intent classifier: GPT when configured, rule-based otherwise
	var classifier intent.Classifier
	if cfg.OpenAI.APIKey != "" {
		classifier = intent.NewGPTClassifier(
			cfg.OpenAI.APIKey,
			cfg.OpenAI.Model,
			cfg.OpenAI.MaxTokens,
			cfg.OpenAI.Temperature,
			logger,
		)
	} else {
		logger.Info("No OpenAI key configured, using rule-based intent parser")
		classifier = intent.NewParser()
	}

	// Initialize bot
	b, err := bot.New(cfg.Telegram.Token, store, engine, analyzer, classifier, logger)
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	// Start the bot
	if err := b.Start(); err != nil {
		logger.Fatal("Bot error", zap.Error(err))
	}
}
