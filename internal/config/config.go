package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"    validate:"required"`
	Database  DatabaseConfig  `mapstructure:"database"  validate:"required"`
	Decks     DecksConfig     `mapstructure:"decks"     validate:"required"`
	Scheduler SchedulerConfig `mapstructure:"scheduler" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	// URL is either a SQLite file path (the default) or a postgres://
	// connection string.
	URL string `mapstructure:"url" validate:"required"`
}

// DecksConfig locates the deck definition files.
type DecksConfig struct {
	Dir string `mapstructure:"dir" validate:"required"`
}

// SchedulerConfig exposes the named scheduling knobs. The defaults
// implement the adaptive-ease policy with immediate-only due checking and
// exact-tie randomization; every historical variant of the scheduler is
// reproducible by adjusting these values.
type SchedulerConfig struct {
	// DueWindowMinutes widens the due cutoff to cards coming up within
	// the next N minutes. 0 means immediate-only.
	DueWindowMinutes int `mapstructure:"due_window_minutes" validate:"gte=0,lte=60"`

	// SelectionPoolSize is the earliest-K pool for the randomized
	// tie-break. 0 selects among the exact ties at the earliest due date.
	SelectionPoolSize int `mapstructure:"selection_pool_size" validate:"gte=0,lte=100"`

	// BaseIntervalDays is the interval assigned on a lapse and on the
	// first successful review.
	BaseIntervalDays float64 `mapstructure:"base_interval_days" validate:"required,gt=0"`

	// HardFactor is the interval multiplier for marginal successes.
	HardFactor float64 `mapstructure:"hard_factor" validate:"required,gt=1"`

	// AgainDelayMinutes is how soon a lapsed card resurfaces.
	AgainDelayMinutes int `mapstructure:"again_delay_minutes" validate:"required,gte=1,lte=10"`

	// FirstReviewDelayMinutes is how soon a first success resurfaces.
	FirstReviewDelayMinutes int `mapstructure:"first_review_delay_minutes" validate:"required,gte=1,lte=60"`

	// SwitchThreshold is the repetition multiple that promotes the
	// asked direction of a card allowing direction changes.
	SwitchThreshold int `mapstructure:"switch_threshold" validate:"required,gte=1"`

	// AdaptiveEase selects the numeric-quality adaptive ease-factor
	// policy; false reproduces the fixed-multiplier variant.
	AdaptiveEase bool `mapstructure:"adaptive_ease"`

	// MinEaseFactor is the ease-factor floor.
	MinEaseFactor float64 `mapstructure:"min_ease_factor" validate:"required,gte=1"`
}
