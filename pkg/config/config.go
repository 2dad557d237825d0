package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Telegram TelegramConfig `mapstructure:"telegram"`
	Database DatabaseConfig `mapstructure:"database"`
	Engine   EngineConfig   `mapstructure:"engine"`
	Analyzer AnalyzerConfig `mapstructure:"analyzer"`
	OpenAI   OpenAIConfig   `mapstructure:"openai"`
}

type TelegramConfig struct {
	Token string `mapstructure:"token"`
}

type DatabaseConfig struct {
	Host        string `mapstructure:"host"`
	Port        int    `mapstructure:"port"`
	User        string `mapstructure:"user"`
	Password    string `mapstructure:"password"`
	DBName      string `mapstructure:"dbname"`
	SSLMode     string `mapstructure:"sslmode"`
	UseInMemory bool   `mapstructure:"use_in_memory"`
}

type EngineConfig struct {
	MaxResults       int     `mapstructure:"max_results"`
	TopDomains       int     `mapstructure:"top_domains"`
	LearningRate     float64 `mapstructure:"learning_rate"`
	ServedCacheSize  int     `mapstructure:"served_cache_size"`
	FeedbackRingSize int     `mapstructure:"feedback_ring_size"`
	TrendDays        int     `mapstructure:"trend_days"`
	HistoryLimit     int     `mapstructure:"history_limit"`
}

type AnalyzerConfig struct {
	GapMinutes       int `mapstructure:"gap_minutes"`
	HistoryLimit     int `mapstructure:"history_limit"`
	MaxTrackedTopics int `mapstructure:"max_tracked_topics"`
	MaxWordFrequency int `mapstructure:"max_word_frequency"`
}

type OpenAIConfig struct {
	APIKey      string  `mapstructure:"api_key"`
	Model       string  `mapstructure:"model"`
	MaxTokens   int     `mapstructure:"max_tokens"`
	Temperature float64 `mapstructure:"temperature"`
}

func parseDatabaseURL(dbURL string) (DatabaseConfig, error) {
	u, err := url.Parse(dbURL)
	if err != nil {
		return DatabaseConfig{}, err
	}

	password, _ := u.User.Password()
	port := 5432 // default PostgreSQL port
	if u.Port() != "" {
		fmt.Sscanf(u.Port(), "%d", &port)
	}

	// Remove leading slash from path to get database name
	dbName := strings.TrimPrefix(u.Path, "/")

	return DatabaseConfig{
		Host:     u.Hostname(),
		Port:     port,
		User:     u.User.Username(),
		Password: password,
		DBName:   dbName,
		SSLMode:  "disable",
	}, nil
}

func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	// Set default values
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.use_in_memory", false)
	v.SetDefault("engine.max_results", 5)
	v.SetDefault("engine.top_domains", 3)
	v.SetDefault("engine.learning_rate", 0.05)
	v.SetDefault("engine.served_cache_size", 50)
	v.SetDefault("engine.feedback_ring_size", 100)
	v.SetDefault("engine.trend_days", 7)
	v.SetDefault("engine.history_limit", 20)
	v.SetDefault("analyzer.gap_minutes", 30)
	v.SetDefault("analyzer.history_limit", 100)
	v.SetDefault("analyzer.max_tracked_topics", 50)
	v.SetDefault("analyzer.max_word_frequency", 500)
	v.SetDefault("openai.model", "gpt-4o-mini")
	v.SetDefault("openai.max_tokens", 150)
	v.SetDefault("openai.temperature", 0.2)

	// Enable environment variable support
	v.AutomaticEnv()

	// Read the config file
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	// Check for DATABASE_URL environment variable
	if dbURL := v.GetString("DATABASE_URL"); dbURL != "" {
		dbConfig, err := parseDatabaseURL(dbURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse DATABASE_URL: %v", err)
		}
		config.Database = dbConfig
	}

	// Get other environment variables
	if token := v.GetString("TELEGRAM_TOKEN"); token != "" {
		config.Telegram.Token = token
	}

	if apiKey := v.GetString("OPENAI_API_KEY"); apiKey != "" {
		config.OpenAI.APIKey = apiKey
	}

	return &config, nil
}
