// Package config provides configuration management for the storescope
// application. Values come from a YAML config file, environment variables,
// and defaults, all resolved through Viper.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// Server defaults.
const (
	defaultServerAddress      = ":8080"
	defaultServerReadTimeout  = 15 * time.Second
	defaultServerWriteTimeout = 15 * time.Second
	defaultServerIdleTimeout  = 60 * time.Second
)

// Fetcher defaults.
const (
	defaultFetchTimeout    = 15 * time.Second
	defaultMaxRetries      = 3
	defaultBackoffInitial  = 500 * time.Millisecond
	defaultRatePerHost     = 2.0
	defaultFollowUpFetches = 4
	defaultUserAgent       = "storescope/1.0 (+https://github.com/jonesrussell/storescope)"
)

// Cache and analyzer defaults.
const (
	defaultCacheTTL          = time.Hour
	defaultMinCorpusFields   = 3
	defaultThemeCount        = 5
	defaultKeywordCount      = 15
	defaultPremiumThreshold  = 150.0
	defaultValueThreshold    = 30.0
	defaultVarianceTolerance = 0.5
	defaultSchedulerCron     = "@hourly"
)

// Validation errors.
var (
	ErrInvalidServerAddress = errors.New("server address must not be empty")
	ErrInvalidFetchTimeout  = errors.New("fetcher timeout must be positive")
	ErrInvalidCacheTTL      = errors.New("cache ttl must be positive")
	ErrInvalidTierOrder     = errors.New("pricing premium threshold must exceed value threshold")
)

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Address      string        `mapstructure:"address"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// FetcherConfig holds fetch-stage settings.
type FetcherConfig struct {
	// Timeout bounds a single fetch attempt
	Timeout time.Duration `mapstructure:"timeout"`
	// MaxRetries bounds retries of transient failures
	MaxRetries int `mapstructure:"max_retries"`
	// BackoffInitial is the first retry delay; it doubles each attempt
	BackoffInitial time.Duration `mapstructure:"backoff_initial"`
	// RatePerHost limits requests per second against one host
	RatePerHost float64 `mapstructure:"rate_per_host"`
	// MaxFollowUpFetches bounds extra page fetches during extraction
	MaxFollowUpFetches int    `mapstructure:"max_follow_up_fetches"`
	UserAgent          string `mapstructure:"user_agent"`
}

// CacheConfig holds profile cache settings.
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// AnalyzerConfig holds analyzer thresholds and output sizes.
type AnalyzerConfig struct {
	// MinCorpusFields is the source-field count below which sentiment
	// confidence is penalized
	MinCorpusFields int `mapstructure:"min_corpus_fields"`
	// ThemeCount is the number of key themes to report
	ThemeCount int `mapstructure:"theme_count"`
	// KeywordCount is the number of SEO keywords to report
	KeywordCount int `mapstructure:"keyword_count"`
	// PremiumThreshold is the mean price above which a low-variance
	// catalog is classified premium
	PremiumThreshold float64 `mapstructure:"premium_threshold"`
	// ValueThreshold is the mean price below which a catalog is
	// classified value
	ValueThreshold float64 `mapstructure:"value_threshold"`
	// VarianceTolerance is the coefficient-of-variation bound for the
	// premium tier
	VarianceTolerance float64 `mapstructure:"variance_tolerance"`
}

// DatabaseConfig holds the optional write-through profile store settings.
type DatabaseConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// SchedulerConfig holds periodic refresh settings.
type SchedulerConfig struct {
	Cron string `mapstructure:"cron"`
}

// Config represents the application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Fetcher   FetcherConfig   `mapstructure:"fetcher"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Analyzer  AnalyzerConfig  `mapstructure:"analyzer"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
}

// Load unmarshals the current Viper state into a Config and validates it.
// Viper must already be initialized (see cmd root).
func Load() (*Config, error) {
	var cfg Config

	decodeHook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))

	if err := viper.Unmarshal(&cfg, decodeHook); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

// Validate checks the configuration for inconsistent values.
func (c *Config) Validate() error {
	if c.Server.Address == "" {
		return ErrInvalidServerAddress
	}
	if c.Fetcher.Timeout <= 0 {
		return ErrInvalidFetchTimeout
	}
	if c.Cache.TTL <= 0 {
		return ErrInvalidCacheTTL
	}
	if c.Analyzer.PremiumThreshold <= c.Analyzer.ValueThreshold {
		return ErrInvalidTierOrder
	}
	return nil
}

// applyDefaults fills zero values with production-safe defaults.
func applyDefaults(cfg *Config) {
	if cfg.Server.Address == "" {
		cfg.Server.Address = defaultServerAddress
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = defaultServerReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = defaultServerWriteTimeout
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = defaultServerIdleTimeout
	}

	if cfg.Fetcher.Timeout == 0 {
		cfg.Fetcher.Timeout = defaultFetchTimeout
	}
	// An explicit zero disables retries; only an unset key gets the
	// default.
	if cfg.Fetcher.MaxRetries == 0 && !viper.IsSet("fetcher.max_retries") {
		cfg.Fetcher.MaxRetries = defaultMaxRetries
	}
	if cfg.Fetcher.BackoffInitial == 0 {
		cfg.Fetcher.BackoffInitial = defaultBackoffInitial
	}
	if cfg.Fetcher.RatePerHost == 0 {
		cfg.Fetcher.RatePerHost = defaultRatePerHost
	}
	if cfg.Fetcher.MaxFollowUpFetches == 0 {
		cfg.Fetcher.MaxFollowUpFetches = defaultFollowUpFetches
	}
	if cfg.Fetcher.UserAgent == "" {
		cfg.Fetcher.UserAgent = defaultUserAgent
	}

	if cfg.Cache.TTL == 0 {
		cfg.Cache.TTL = defaultCacheTTL
	}

	if cfg.Analyzer.MinCorpusFields == 0 {
		cfg.Analyzer.MinCorpusFields = defaultMinCorpusFields
	}
	if cfg.Analyzer.ThemeCount == 0 {
		cfg.Analyzer.ThemeCount = defaultThemeCount
	}
	if cfg.Analyzer.KeywordCount == 0 {
		cfg.Analyzer.KeywordCount = defaultKeywordCount
	}
	if cfg.Analyzer.PremiumThreshold == 0 {
		cfg.Analyzer.PremiumThreshold = defaultPremiumThreshold
	}
	if cfg.Analyzer.ValueThreshold == 0 {
		cfg.Analyzer.ValueThreshold = defaultValueThreshold
	}
	if cfg.Analyzer.VarianceTolerance == 0 {
		cfg.Analyzer.VarianceTolerance = defaultVarianceTolerance
	}

	if cfg.Scheduler.Cron == "" {
		cfg.Scheduler.Cron = defaultSchedulerCron
	}

	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.Port == "" {
		cfg.Database.Port = "5432"
	}
}
