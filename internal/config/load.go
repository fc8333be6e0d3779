package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load reads configuration from an optional rehearse.yaml config file and
// from environment variables with the REHEARSE_ prefix. Environment
// variables take precedence over values from the config file, which takes
// precedence over the built-in defaults.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()

	// Defaults: a local SQLite file next to the binary, decks in ./decks,
	// and the canonical scheduling policy.
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("database.url", "rehearse.db")
	v.SetDefault("decks.dir", "decks")
	v.SetDefault("scheduler.due_window_minutes", 0)
	v.SetDefault("scheduler.selection_pool_size", 0)
	v.SetDefault("scheduler.base_interval_days", 1.0)
	v.SetDefault("scheduler.hard_factor", 1.2)
	v.SetDefault("scheduler.again_delay_minutes", 1)
	v.SetDefault("scheduler.first_review_delay_minutes", 10)
	v.SetDefault("scheduler.switch_threshold", 3)
	v.SetDefault("scheduler.adaptive_ease", true)
	v.SetDefault("scheduler.min_ease_factor", 1.3)

	// Optional config file in the working directory.
	v.SetConfigName("rehearse")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// A missing config file is fine; defaults and env apply.
	}

	// Environment variables: REHEARSE_SERVER_PORT, REHEARSE_DATABASE_URL, ...
	v.SetEnvPrefix("REHEARSE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}
