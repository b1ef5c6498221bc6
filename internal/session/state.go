package session

import (
	"errors"
	"time"

	"github.com/abhisek/homebook/internal/adaptive"
	"github.com/abhisek/homebook/internal/content"
	"github.com/abhisek/homebook/internal/levels"
	"github.com/abhisek/homebook/internal/problemgen"
)

// ErrInvalidTransition is returned when an operation is not allowed in the
// session's current phase. The session is left untouched.
var ErrInvalidTransition = errors.New("session: invalid transition")

// Phase is the lifecycle phase of a game session.
type Phase int

const (
	PhaseIdle      Phase = iota // Waiting for Start
	PhaseCountdown              // Counting down before the first round
	PhaseActive                 // An item is on screen, awaiting an answer
	PhaseFeedback               // Showing the result of the last answer
	PhaseSummary                // Session ended normally
	PhaseAbandoned              // Player quit mid-session
)

var phaseNames = [...]string{"idle", "countdown", "active", "feedback", "summary", "abandoned"}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "unknown"
	}
	return phaseNames[p]
}

// Terminal reports whether the phase ends a session.
func (p Phase) Terminal() bool {
	return p == PhaseSummary || p == PhaseAbandoned
}

// Item is the content presented in one round. Exactly one of Pool and
// Question is set.
type Item struct {
	Key string

	// Level is the skill level the item was selected for.
	Level float64

	// Stage is the selector fallback stage for pool items.
	Stage content.Stage

	Pool     *content.Item
	Question *problemgen.Question
}

// Feedback describes the result of one answered round.
type Feedback struct {
	Correct    bool
	Fast       bool
	Adjustment adaptive.Adjustment

	// Level and Tier are the values after the update.
	Level float64
	Tier  levels.Tier

	// Round is 1-based.
	Round int
	Item  Item
	At    time.Time
}

// EndReason explains why a session left play.
type EndReason string

const (
	ReasonNone   EndReason = ""
	ReasonRounds EndReason = "rounds"
	ReasonLives  EndReason = "lives"
	ReasonTarget EndReason = "target"
	ReasonQuit   EndReason = "quit"
)

// Observer receives lifecycle notifications. It must not mutate the session.
type Observer interface {
	OnPhase(from, to Phase)
	OnAnswer(fb Feedback)
}
