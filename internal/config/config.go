// internal/config/config.go

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Sentiment backend names
const (
	SentimentLexicon = "lexicon"
	SentimentRemote  = "remote"
)

// Config holds all application configuration
type Config struct {
	Environment string
	Server      ServerConfig
	Twitter     TwitterConfig
	Instagram   InstagramConfig
	Sentiment   SentimentConfig
	Analysis    AnalysisConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	CorsOrigins     []string
	MinQueryLength  int
}

// TwitterConfig holds Twitter API configuration
type TwitterConfig struct {
	BearerToken    string
	ConsumerKey    string
	ConsumerSecret string
	AccessToken    string
	AccessSecret   string
	BaseURL        string
	MaxResults     int
	Timeout        time.Duration
}

// InstagramConfig holds Apify scraper configuration
type InstagramConfig struct {
	Token        string
	ActorURL     string
	SearchLimit  int
	ResultsLimit int
	NewerThan    string
	Timeout      time.Duration
}

// SentimentConfig holds sentiment scorer configuration
type SentimentConfig struct {
	Backend  string
	ModelURL string
	Timeout  time.Duration
}

// AnalysisConfig holds aggregation configuration
type AnalysisConfig struct {
	MinInfluencerFollowers int
}

// Load loads configuration from environment variables
func Load() (Config, error) {
	config := Config{
		Environment: getEnv("APP_ENV", "development"),
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            getEnvAsInt("SERVER_PORT", 8080),
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", 90*time.Second),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
			CorsOrigins:     getEnvAsSlice("SERVER_CORS_ORIGINS", []string{"*"}),
			MinQueryLength:  getEnvAsInt("MIN_QUERY_LENGTH", 3),
		},
		Twitter: TwitterConfig{
			BearerToken:    getEnv("TWITTER_BEARER_TOKEN", ""),
			ConsumerKey:    getEnv("TWITTER_CONSUMER_KEY", ""),
			ConsumerSecret: getEnv("TWITTER_CONSUMER_SECRET", ""),
			AccessToken:    getEnv("TWITTER_ACCESS_TOKEN", ""),
			AccessSecret:   getEnv("TWITTER_ACCESS_SECRET", ""),
			BaseURL:        getEnv("TWITTER_BASE_URL", "https://api.twitter.com"),
			MaxResults:     getEnvAsInt("TWITTER_MAX_RESULTS", 10),
			Timeout:        getEnvAsDuration("TWITTER_TIMEOUT", 10*time.Second),
		},
		Instagram: InstagramConfig{
			Token:        getEnv("APIFY_TOKEN", ""),
			ActorURL:     getEnv("INSTAGRAM_ACTOR_URL", ""),
			SearchLimit:  getEnvAsInt("INSTAGRAM_SEARCH_LIMIT", 5),
			ResultsLimit: getEnvAsInt("INSTAGRAM_RESULTS_LIMIT", 10),
			NewerThan:    getEnv("INSTAGRAM_NEWER_THAN", "7 days"),
			Timeout:      getEnvAsDuration("INSTAGRAM_TIMEOUT", 60*time.Second),
		},
		Sentiment: SentimentConfig{
			Backend:  getEnv("SENTIMENT_BACKEND", SentimentLexicon),
			ModelURL: getEnv("SENTIMENT_MODEL_URL", ""),
			Timeout:  getEnvAsDuration("SENTIMENT_TIMEOUT", 5*time.Second),
		},
		Analysis: AnalysisConfig{
			MinInfluencerFollowers: getEnvAsInt("ANALYSIS_MIN_INFLUENCER_FOLLOWERS", 100),
		},
	}

	return config, validate(config)
}

// validate checks if config is valid
func validate(config Config) error {
	switch config.Sentiment.Backend {
	case SentimentLexicon:
	case SentimentRemote:
		if config.Sentiment.ModelURL == "" {
			return fmt.Errorf("SENTIMENT_MODEL_URL must be set when the remote sentiment backend is selected")
		}
	default:
		return fmt.Errorf("unknown sentiment backend: %s", config.Sentiment.Backend)
	}

	if config.Server.MinQueryLength < 1 {
		return fmt.Errorf("minimum query length must be at least 1")
	}

	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	return strings.Split(valueStr, ",")
}
