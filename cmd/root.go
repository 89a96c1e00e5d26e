// Package cmd implements the command-line interface for storescope.
// It provides the root command and subcommands for storefront analysis.
package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/joho/godotenv"
	"github.com/jonesrussell/storescope/cmd/analyze"
	"github.com/jonesrussell/storescope/cmd/httpd"
	cmdscheduler "github.com/jonesrussell/storescope/cmd/scheduler"
)

var (
	// cfgFile holds the path to the configuration file.
	cfgFile string

	// Debug enables debug mode for all commands
	Debug bool

	// rootCmd represents the root command for the storescope CLI.
	rootCmd = &cobra.Command{
		Use:   "storescope",
		Short: "Storefront intelligence for e-commerce sites",
		Long:  `Storescope fetches storefront pages and turns them into brand, sentiment, marketing, and pricing intelligence.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
)

// Execute runs the root command
func Execute() error {
	// Load .env file early so environment variables are available
	_ = godotenv.Load()

	// Parse flags early to get debug flag before creating logger
	_ = rootCmd.ParseFlags(os.Args[1:])

	// Initialize configuration
	if err := initConfig(); err != nil {
		return fmt.Errorf("failed to initialize configuration: %w", err)
	}

	// Execute the root command with a fresh context
	return rootCmd.ExecuteContext(context.Background())
}

// init initializes the root command and its subcommands.
func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"",
		"config file (default is ./config.yaml or ./config/config.yaml)",
	)
	rootCmd.PersistentFlags().BoolVar(&Debug, "debug", false, "enable debug mode")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("storescope version %s\n", "1.0.0")
		},
	})

	rootCmd.AddCommand(httpd.Command())
	rootCmd.AddCommand(analyze.Command())
	rootCmd.AddCommand(cmdscheduler.Command())
}

// initConfig reads in config file and ENV variables if set.
func initConfig() error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
	}

	// Enable automatic environment variable reading before defaults so
	// environment variables take precedence over them
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	// Config file is optional; defaults and environment variables cover
	// every setting
	if err := viper.ReadInConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Config file not found: %v (using defaults and environment variables)\n", err)
	}

	if err := bindCommandLineFlags(); err != nil {
		return err
	}

	if err := bindEnvVars(); err != nil {
		return err
	}

	setupDevelopmentLogging()

	return nil
}

// bindCommandLineFlags binds command-line flags to Viper.
func bindCommandLineFlags() error {
	if err := viper.BindPFlag("app.debug", rootCmd.PersistentFlags().Lookup("debug")); err != nil {
		return fmt.Errorf("failed to bind debug flag: %w", err)
	}
	return nil
}

// bindEnvVars binds well-known environment variables to config keys.
func bindEnvVars() error {
	if err := viper.BindEnv("logger.level", "LOG_LEVEL"); err != nil {
		return fmt.Errorf("failed to bind LOG_LEVEL: %w", err)
	}
	if err := viper.BindEnv("logger.encoding", "LOG_FORMAT"); err != nil {
		return fmt.Errorf("failed to bind LOG_FORMAT: %w", err)
	}
	if err := viper.BindEnv("server.address", "SERVER_ADDRESS"); err != nil {
		return fmt.Errorf("failed to bind SERVER_ADDRESS: %w", err)
	}
	if err := viper.BindEnv("database.password", "DATABASE_PASSWORD", "POSTGRES_PASSWORD"); err != nil {
		return fmt.Errorf("failed to bind DATABASE_PASSWORD: %w", err)
	}
	return nil
}

// setupDevelopmentLogging configures development logging based on the debug flag.
func setupDevelopmentLogging() {
	debugFlag := Debug || viper.GetBool("app.debug")
	if debugFlag {
		viper.Set("logger.level", "debug")
		viper.Set("logger.development", true)
		viper.Set("logger.encoding", "console")
	}
	Debug = debugFlag
}

// setDefaults sets default configuration values
func setDefaults() {
	// Logger defaults - production safe
	viper.SetDefault("logger", map[string]any{
		"level":       "info",
		"development": false,
		"encoding":    "json",
	})

	// Server defaults - production safe
	viper.SetDefault("server", map[string]any{
		"address":       ":8080",
		"read_timeout":  "15s",
		"write_timeout": "15s",
		"idle_timeout":  "60s",
	})

	// Fetcher defaults
	viper.SetDefault("fetcher", map[string]any{
		"timeout":               "15s",
		"max_retries":           3,
		"backoff_initial":       "500ms",
		"rate_per_host":         2.0,
		"max_follow_up_fetches": 4,
	})

	// Cache defaults
	viper.SetDefault("cache", map[string]any{
		"ttl": "1h",
	})

	// Analyzer defaults
	viper.SetDefault("analyzer", map[string]any{
		"min_corpus_fields":  3,
		"theme_count":        5,
		"keyword_count":      15,
		"premium_threshold":  150.0,
		"value_threshold":    30.0,
		"variance_tolerance": 0.5,
	})

	// Database defaults - persistence off unless configured
	viper.SetDefault("database", map[string]any{
		"enabled": false,
		"host":    "127.0.0.1",
		"port":    "5432",
		"user":    "storescope",
		"dbname":  "storescope",
		"sslmode": "disable",
	})

	// Scheduler defaults
	viper.SetDefault("scheduler", map[string]any{
		"cron": "@hourly",
	})
}
