// Package adaptive implements the skill estimator shared by every arena game:
// a value-type SkillState and the pure transition that updates it after each
// answer.
package adaptive

import "time"

// Direction records which way the level last moved.
type Direction string

const (
	DirectionNone Direction = "none"
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)

// SkillState is the per-session skill estimate. It is a value type: Update
// returns a new SkillState and never mutates its argument.
type SkillState struct {
	// Level is the current estimate, always within [MinLevel, MaxLevel].
	Level float64

	// CorrectStreak counts consecutive correct answers since the last wrong one.
	CorrectStreak int

	// WrongStreak counts consecutive wrong answers since the last correct one.
	WrongStreak int

	TotalCorrect int
	TotalWrong   int

	// BestStreak is the longest correct streak seen in the session.
	BestStreak int

	// AdjustmentCount is the number of times Level has changed.
	AdjustmentCount int

	// LastAdjustDirection and LastAdjustAt are for transient UI signalling.
	// A correct answer that does not bump the level leaves them untouched.
	LastAdjustDirection Direction
	LastAdjustAt        time.Time
}

// NewSkillState returns a fresh state at start, clamped into the config's
// level range.
func NewSkillState(start float64, cfg Config) SkillState {
	cfg = cfg.Normalize()
	return SkillState{
		Level:               clamp(start, cfg.MinLevel, cfg.MaxLevel),
		LastAdjustDirection: DirectionNone,
	}
}

// Answered returns the number of updates applied to the state.
func (s SkillState) Answered() int {
	return s.TotalCorrect + s.TotalWrong
}

// Accuracy returns the ratio of correct answers, or 0 before any answer.
func (s SkillState) Accuracy() float64 {
	n := s.Answered()
	if n == 0 {
		return 0.0
	}
	return float64(s.TotalCorrect) / float64(n)
}

// Outcome is a single answer fed to Update.
type Outcome struct {
	Correct bool
	Fast    bool

	// At is the caller's clock reading, stored as LastAdjustAt when the
	// level moves. The engine never reads the clock itself.
	At time.Time
}

// Adjustment is the one-shot event emitted by Update. Callers consume it for
// feedback instead of polling LastAdjustDirection.
type Adjustment struct {
	Kind Direction

	// Magnitude is the absolute level delta actually applied, after clamping.
	Magnitude float64
}

// Moved reports whether the level changed.
func (a Adjustment) Moved() bool {
	return a.Kind != DirectionNone
}
