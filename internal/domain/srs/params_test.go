package srs

import (
	"testing"
	"time"
)

func TestNewDefaultParams(t *testing.T) {
	t.Parallel() // Enable parallel execution
	params := NewDefaultParams()

	if params.MinEaseFactor != 1.3 {
		t.Errorf("Expected min ease factor 1.3, got %g", params.MinEaseFactor)
	}
	if !params.AdaptiveEase {
		t.Error("Expected adaptive ease to be the default policy")
	}
	if params.BaseIntervalDays != 1 {
		t.Errorf("Expected base interval 1 day, got %g", params.BaseIntervalDays)
	}
	if params.HardFactor != 1.2 {
		t.Errorf("Expected hard factor 1.2, got %g", params.HardFactor)
	}
	if params.SwitchThreshold != 3 {
		t.Errorf("Expected switch threshold 3, got %d", params.SwitchThreshold)
	}
}

func TestNewParamsOverrides(t *testing.T) {
	t.Parallel() // Enable parallel execution
	params := NewParams(ParamsConfig{
		HardFactor:          1.5,
		AgainDelay:          5 * time.Minute,
		SwitchThreshold:     4,
		DisableAdaptiveEase: true,
	})

	if params.HardFactor != 1.5 {
		t.Errorf("Expected overridden hard factor 1.5, got %g", params.HardFactor)
	}
	if params.AgainDelay != 5*time.Minute {
		t.Errorf("Expected overridden again delay 5m, got %v", params.AgainDelay)
	}
	if params.SwitchThreshold != 4 {
		t.Errorf("Expected overridden switch threshold 4, got %d", params.SwitchThreshold)
	}
	if params.AdaptiveEase {
		t.Error("Expected adaptive ease disabled")
	}

	// Unset fields keep their defaults.
	if params.BaseIntervalDays != 1 {
		t.Errorf("Expected default base interval, got %g", params.BaseIntervalDays)
	}
	if params.FirstReviewDelay != 10*time.Minute {
		t.Errorf("Expected default first review delay, got %v", params.FirstReviewDelay)
	}
}
