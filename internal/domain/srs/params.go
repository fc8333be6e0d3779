package srs

import "time"

// Params defines all configurable parameters for the scheduling algorithm.
// The defaults implement the numeric-quality adaptive-ease-factor policy;
// setting AdaptiveEase to false reproduces the historical three-bucket
// fixed-multiplier policy, under which a card's ease factor never changes.
type Params struct {
	// MinEaseFactor is the floor the ease factor is clamped to after
	// every adaptation.
	MinEaseFactor float64

	// AdaptiveEase selects whether the ease factor adapts to the numeric
	// quality of each grade. When false the ease factor is left untouched.
	AdaptiveEase bool

	// BaseIntervalDays is the interval assigned on a lapse and on the
	// first successful review.
	BaseIntervalDays float64

	// HardFactor is the interval multiplier for a marginal success,
	// applied instead of the ease factor.
	HardFactor float64

	// AgainDelay is how soon a lapsed card resurfaces. Kept at minutes
	// scale so the card comes back within the same session.
	AgainDelay time.Duration

	// FirstReviewDelay is how soon a card graded successfully for the
	// first time resurfaces. A first success is not trusted with a
	// multi-day gap.
	FirstReviewDelay time.Duration

	// SwitchThreshold is the repetition multiple at which a card with
	// direction changes enabled is promoted one direction step.
	SwitchThreshold int
}

// ParamsConfig allows overriding the default parameters when creating a new
// Params instance. Zero values leave the corresponding default in place.
type ParamsConfig struct {
	MinEaseFactor    float64
	BaseIntervalDays float64
	HardFactor       float64
	AgainDelay       time.Duration
	FirstReviewDelay time.Duration
	SwitchThreshold  int

	// DisableAdaptiveEase turns the adaptive ease-factor policy off,
	// reproducing the fixed-multiplier variant.
	DisableAdaptiveEase bool
}

// NewDefaultParams creates a new Params instance with default values.
func NewDefaultParams() *Params {
	return &Params{
		MinEaseFactor:    1.3,
		AdaptiveEase:     true,
		BaseIntervalDays: 1,
		HardFactor:       1.2,
		AgainDelay:       1 * time.Minute,
		FirstReviewDelay: 10 * time.Minute,
		SwitchThreshold:  3,
	}
}

// NewParams creates a new Params instance with custom configuration.
func NewParams(config ParamsConfig) *Params {
	params := NewDefaultParams()

	if config.MinEaseFactor > 0 {
		params.MinEaseFactor = config.MinEaseFactor
	}
	if config.BaseIntervalDays > 0 {
		params.BaseIntervalDays = config.BaseIntervalDays
	}
	if config.HardFactor > 0 {
		params.HardFactor = config.HardFactor
	}
	if config.AgainDelay > 0 {
		params.AgainDelay = config.AgainDelay
	}
	if config.FirstReviewDelay > 0 {
		params.FirstReviewDelay = config.FirstReviewDelay
	}
	if config.SwitchThreshold > 0 {
		params.SwitchThreshold = config.SwitchThreshold
	}
	if config.DisableAdaptiveEase {
		params.AdaptiveEase = false
	}

	return params
}
