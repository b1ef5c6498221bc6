package adaptive

import (
	"errors"
	"fmt"
)

const (
	DefaultMinLevel          = 1.0
	DefaultMaxLevel          = 50.0
	DefaultStreakThreshold   = 5
	DefaultBumpPercent       = 0.15
	DefaultFastBonus         = 0.075
	DefaultDropOnWrong       = 0.08
	DefaultDropOnWrongStreak = 0.18
)

// Minimum deltas so that percentage-only changes never stall near level 1.
const (
	bumpFloor       = 0.5
	fastBonusFloor  = 0.3
	dropFloor       = 0.3
	streakDropFloor = 0.5
)

// Config holds the controller knobs. Zero-valued fields take the defaults.
type Config struct {
	MinLevel float64 `yaml:"min_level"`
	MaxLevel float64 `yaml:"max_level"`

	// StreakThreshold is the correct-streak length that triggers a bump.
	StreakThreshold int `yaml:"streak_threshold"`

	// BumpPercent is the bump size as a fraction of the current level.
	BumpPercent float64 `yaml:"bump_percent"`

	// FastBonus is added to the bump when the triggering answer was fast.
	FastBonus float64 `yaml:"fast_bonus"`

	// DropOnWrong applies to an isolated wrong answer.
	DropOnWrong float64 `yaml:"drop_on_wrong"`

	// DropOnWrongStreak applies from the second consecutive wrong answer on.
	DropOnWrongStreak float64 `yaml:"drop_on_wrong_streak"`
}

// DefaultConfig returns the standard "flow state" tuning.
func DefaultConfig() Config {
	return Config{
		MinLevel:          DefaultMinLevel,
		MaxLevel:          DefaultMaxLevel,
		StreakThreshold:   DefaultStreakThreshold,
		BumpPercent:       DefaultBumpPercent,
		FastBonus:         DefaultFastBonus,
		DropOnWrong:       DefaultDropOnWrong,
		DropOnWrongStreak: DefaultDropOnWrongStreak,
	}
}

// Normalize fills zero-valued fields with defaults.
func (c Config) Normalize() Config {
	d := DefaultConfig()
	if c.MinLevel == 0 {
		c.MinLevel = d.MinLevel
	}
	if c.MaxLevel == 0 {
		c.MaxLevel = d.MaxLevel
	}
	if c.StreakThreshold == 0 {
		c.StreakThreshold = d.StreakThreshold
	}
	if c.BumpPercent == 0 {
		c.BumpPercent = d.BumpPercent
	}
	if c.FastBonus == 0 {
		c.FastBonus = d.FastBonus
	}
	if c.DropOnWrong == 0 {
		c.DropOnWrong = d.DropOnWrong
	}
	if c.DropOnWrongStreak == 0 {
		c.DropOnWrongStreak = d.DropOnWrongStreak
	}
	return c
}

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid adaptive config")

// Validate checks caller overrides. Update never calls it and stays within
// bounds even for configs that fail validation.
func (c Config) Validate() error {
	c = c.Normalize()
	if c.MinLevel >= c.MaxLevel {
		return fmt.Errorf("%w: min level %g must be below max level %g", ErrInvalidConfig, c.MinLevel, c.MaxLevel)
	}
	if c.StreakThreshold < 1 {
		return fmt.Errorf("%w: streak threshold %d must be at least 1", ErrInvalidConfig, c.StreakThreshold)
	}
	percents := []struct {
		name string
		v    float64
	}{
		{"bump_percent", c.BumpPercent},
		{"fast_bonus", c.FastBonus},
		{"drop_on_wrong", c.DropOnWrong},
		{"drop_on_wrong_streak", c.DropOnWrongStreak},
	}
	for _, p := range percents {
		if p.v < 0 || p.v > 1 {
			return fmt.Errorf("%w: %s %g must be within [0, 1]", ErrInvalidConfig, p.name, p.v)
		}
	}
	return nil
}
