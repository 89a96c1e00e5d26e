// Package common holds dependency wiring shared by the CLI commands.
package common

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/viper"

	"github.com/jonesrussell/storescope/internal/analyzer"
	"github.com/jonesrussell/storescope/internal/config"
	"github.com/jonesrussell/storescope/internal/database"
	"github.com/jonesrussell/storescope/internal/extractor"
	"github.com/jonesrussell/storescope/internal/fetcher"
	"github.com/jonesrussell/storescope/internal/insights"
	"github.com/jonesrussell/storescope/internal/logger"
	"github.com/jonesrussell/storescope/internal/metrics"
)

// Errors returned during dependency validation.
var (
	errLoggerRequired = errors.New("logger is required")
	errConfigRequired = errors.New("config is required")
)

// CommandDeps holds common dependencies for commands.
type CommandDeps struct {
	Logger logger.Interface
	Config *config.Config
}

// NewCommandDeps creates CommandDeps by loading config and creating the logger.
func NewCommandDeps() (*CommandDeps, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log, err := createLogger()
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	deps := &CommandDeps{
		Logger: log,
		Config: cfg,
	}

	if validateErr := deps.validate(); validateErr != nil {
		return nil, fmt.Errorf("validate deps: %w", validateErr)
	}

	return deps, nil
}

// createLogger creates a logger instance from Viper configuration.
func createLogger() (logger.Interface, error) {
	return logger.New(&logger.Config{
		Level:       normalizeLogLevel(viper.GetString("logger.level")),
		Encoding:    viper.GetString("logger.encoding"),
		Development: viper.GetBool("logger.development"),
	})
}

// normalizeLogLevel normalizes log level string.
func normalizeLogLevel(level string) string {
	if level == "" {
		return "info"
	}
	return strings.ToLower(level)
}

// validate ensures all required dependencies are present.
func (d *CommandDeps) validate() error {
	if d.Logger == nil {
		return errLoggerRequired
	}
	if d.Config == nil {
		return errConfigRequired
	}
	return nil
}

// Pipeline bundles the assembled analysis pipeline for a command.
type Pipeline struct {
	Service *insights.Service
	Metrics *metrics.Metrics
	Repo    *database.ProfileRepository
	DB      *sqlx.DB
}

// Close releases pipeline resources.
func (p *Pipeline) Close() {
	if p.DB != nil {
		p.DB.Close()
	}
}

// BuildPipeline assembles fetcher, extractor, optional store, and the
// insights service from configuration. A database connection failure is
// not fatal: the pipeline runs without persistence.
func BuildPipeline(deps *CommandDeps) *Pipeline {
	cfg := deps.Config
	m := metrics.New()

	f := fetcher.New(fetcher.Config{
		Timeout:        cfg.Fetcher.Timeout,
		MaxRetries:     cfg.Fetcher.MaxRetries,
		BackoffInitial: cfg.Fetcher.BackoffInitial,
		RatePerHost:    cfg.Fetcher.RatePerHost,
		UserAgent:      cfg.Fetcher.UserAgent,
	}, deps.Logger)

	ex := extractor.New(f, cfg.Fetcher.MaxFollowUpFetches, deps.Logger)

	pipeline := &Pipeline{Metrics: m}

	var store insights.ProfileStore
	if cfg.Database.Enabled {
		db, err := database.Connect(database.Config{
			Host:     cfg.Database.Host,
			Port:     cfg.Database.Port,
			User:     cfg.Database.User,
			Password: cfg.Database.Password,
			DBName:   cfg.Database.DBName,
			SSLMode:  cfg.Database.SSLMode,
		})
		if err != nil {
			deps.Logger.Warn("Failed to connect to database, persistence disabled", "error", err)
		} else {
			pipeline.DB = db
			pipeline.Repo = database.NewProfileRepository(db)
			store = pipeline.Repo
		}
	}

	analyzerCfg := analyzer.Config{
		MinCorpusFields:   cfg.Analyzer.MinCorpusFields,
		ThemeCount:        cfg.Analyzer.ThemeCount,
		KeywordCount:      cfg.Analyzer.KeywordCount,
		PremiumThreshold:  cfg.Analyzer.PremiumThreshold,
		ValueThreshold:    cfg.Analyzer.ValueThreshold,
		VarianceTolerance: cfg.Analyzer.VarianceTolerance,
	}

	pipeline.Service = insights.NewService(
		analyzerCfg,
		cfg.Cache.TTL,
		f,
		ex,
		store,
		deps.Logger,
		m,
	)

	return pipeline
}
