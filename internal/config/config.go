// Package config loads process settings from the environment and the source
// catalog from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/deusflow/campusnews/internal/logger"
	"github.com/deusflow/campusnews/internal/news"
)

// Cache backends.
const (
	CacheMemory = "memory"
	CacheRedis  = "redis"
	CacheNone   = "none"
)

var errInvalidValue = errors.New("invalid value")

type Config struct {
	// Catalog
	CatalogPath string

	// Aggregation
	MaxConcurrency int
	SourceTimeout  time.Duration
	RequestTimeout time.Duration
	Timezone       string

	// Corpus cache
	CacheType     string // memory | redis | none
	CacheTTL      time.Duration
	RedisAddress  string
	RedisPassword string
	RedisDB       int

	// Summarizers
	GeminiAPIKey       string
	OpenAIAPIKey       string
	MaxSummaryRequests int // per provider per day, 0 = unlimited
	SummarySentences   int
	FetchArticleBody   bool // summarize from the article page instead of the feed snippet
	MaxSummaries       int  // per query
	SummaryWorkers     int
	SummaryTimeout     time.Duration

	// Naver search API
	NaverClientID     string
	NaverClientSecret string

	// Server
	Port string

	// Logging
	Debug         bool
	LogLevel      string
	LogFile       string
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int
}

// Load reads .env (if present) and the environment, then validates.
func Load() (*Config, error) {
	// Missing .env is normal in containers.
	_ = godotenv.Load()

	cfg := &Config{
		CatalogPath:        getEnvOrDefault("CATALOG_PATH", "configs/catalog.yaml"),
		MaxConcurrency:     getEnvIntOrDefault("MAX_CONCURRENCY", 4),
		SourceTimeout:      time.Duration(getEnvIntOrDefault("SOURCE_TIMEOUT_SEC", 10)) * time.Second,
		RequestTimeout:     time.Duration(getEnvIntOrDefault("REQUEST_TIMEOUT_SEC", 30)) * time.Second,
		Timezone:           getEnvOrDefault("TIMEZONE", "Asia/Seoul"),
		CacheType:          getEnvOrDefault("CACHE_TYPE", CacheMemory),
		CacheTTL:           time.Duration(getEnvIntOrDefault("CACHE_TTL_MINUTES", 10)) * time.Minute,
		RedisAddress:       getEnvOrDefault("REDIS_ADDRESS", "localhost:6379"),
		RedisPassword:      os.Getenv("REDIS_PASSWORD"),
		RedisDB:            getEnvIntOrDefault("REDIS_DB", 0),
		GeminiAPIKey:       os.Getenv("GEMINI_API_KEY"),
		OpenAIAPIKey:       os.Getenv("OPENAI_API_KEY"),
		MaxSummaryRequests: getEnvIntOrDefault("MAX_SUMMARY_REQUESTS", 50),
		SummarySentences:   getEnvIntOrDefault("SUMMARY_SENTENCES", 3),
		FetchArticleBody:   os.Getenv("FETCH_ARTICLE_BODY") != "false",
		MaxSummaries:       getEnvIntOrDefault("MAX_SUMMARIES", 10),
		SummaryWorkers:     getEnvIntOrDefault("SUMMARY_WORKERS", 3),
		SummaryTimeout:     time.Duration(getEnvIntOrDefault("SUMMARY_TIMEOUT_SEC", 30)) * time.Second,
		NaverClientID:      os.Getenv("NAVER_CLIENT_ID"),
		NaverClientSecret:  os.Getenv("NAVER_CLIENT_SECRET"),
		Port:               getEnvOrDefault("PORT", "10000"),
		Debug:              os.Getenv("DEBUG") == "true",
		LogLevel:           getEnvOrDefault("LOG_LEVEL", "info"),
		LogFile:            os.Getenv("LOG_FILE"),
		LogMaxSizeMB:       getEnvIntOrDefault("LOG_MAX_SIZE_MB", 50),
		LogMaxBackups:      getEnvIntOrDefault("LOG_MAX_BACKUPS", 3),
		LogMaxAgeDays:      getEnvIntOrDefault("LOG_MAX_AGE_DAYS", 14),
	}

	return cfg, cfg.Validate()
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func (c *Config) Validate() error {
	if c.CatalogPath == "" {
		return &news.ConfigError{Field: "CATALOG_PATH", Err: fmt.Errorf("%w: required", errInvalidValue)}
	}
	if c.MaxConcurrency < 1 {
		return &news.ConfigError{Field: "MAX_CONCURRENCY", Err: fmt.Errorf("%w: must be at least 1", errInvalidValue)}
	}
	if c.SourceTimeout <= 0 {
		return &news.ConfigError{Field: "SOURCE_TIMEOUT_SEC", Err: fmt.Errorf("%w: must be positive", errInvalidValue)}
	}
	if c.RequestTimeout < c.SourceTimeout {
		return &news.ConfigError{Field: "REQUEST_TIMEOUT_SEC", Err: fmt.Errorf("%w: must not be shorter than SOURCE_TIMEOUT_SEC", errInvalidValue)}
	}
	switch c.CacheType {
	case CacheMemory, CacheRedis, CacheNone:
	default:
		return &news.ConfigError{Field: "CACHE_TYPE", Err: fmt.Errorf("%w: %q (memory, redis or none)", errInvalidValue, c.CacheType)}
	}
	if c.CacheType != CacheNone && c.CacheTTL <= 0 {
		return &news.ConfigError{Field: "CACHE_TTL_MINUTES", Err: fmt.Errorf("%w: must be positive", errInvalidValue)}
	}
	if c.MaxSummaryRequests < 0 {
		return &news.ConfigError{Field: "MAX_SUMMARY_REQUESTS", Err: fmt.Errorf("%w: must not be negative", errInvalidValue)}
	}
	if c.SummarySentences < 1 {
		return &news.ConfigError{Field: "SUMMARY_SENTENCES", Err: fmt.Errorf("%w: must be at least 1", errInvalidValue)}
	}
	if c.MaxSummaries < 1 {
		return &news.ConfigError{Field: "MAX_SUMMARIES", Err: fmt.Errorf("%w: must be at least 1", errInvalidValue)}
	}
	if c.SummaryWorkers < 1 {
		return &news.ConfigError{Field: "SUMMARY_WORKERS", Err: fmt.Errorf("%w: must be at least 1", errInvalidValue)}
	}
	if c.SummaryTimeout <= 0 {
		return &news.ConfigError{Field: "SUMMARY_TIMEOUT_SEC", Err: fmt.Errorf("%w: must be positive", errInvalidValue)}
	}
	if _, err := c.Location(); err != nil {
		return &news.ConfigError{Field: "TIMEZONE", Err: err}
	}
	return nil
}

// Location resolves Timezone. Asia/Seoul falls back to a fixed +09:00 zone
// when the tz database is missing.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err == nil {
		return loc, nil
	}
	if c.Timezone == "Asia/Seoul" {
		return time.FixedZone("KST", 9*60*60), nil
	}
	return nil, err
}

// LogOptions maps the logging settings onto logger.Options.
func (c *Config) LogOptions() logger.Options {
	return logger.Options{
		Level:      c.LogLevel,
		Debug:      c.Debug,
		File:       c.LogFile,
		MaxSizeMB:  c.LogMaxSizeMB,
		MaxBackups: c.LogMaxBackups,
		MaxAgeDays: c.LogMaxAgeDays,
	}
}
