package session

import (
	"time"

	"github.com/abhisek/homebook/internal/levels"
)

// Outcome is how a session ended, as persisted with its result.
type Outcome string

const (
	OutcomeInProgress Outcome = "in_progress"
	OutcomeCompleted  Outcome = "completed"
	OutcomeAbandoned  Outcome = "abandoned"
)

// Summary holds the totals shown after a session and recorded in the store.
type Summary struct {
	SessionID    string
	Game         string
	StartLevel   float64
	FinalLevel   float64
	TotalCorrect int
	TotalWrong   int
	BestStreak   int
	Rounds       int
	Accuracy     float64
	Outcome      Outcome
	Reason       EndReason
	Tier         levels.Tier
	StartedAt    time.Time
	Duration     time.Duration
}

// Summary builds the session totals. It may be called in any phase; before
// the session ends the outcome is in progress.
func (s *Session) Summary() Summary {
	outcome := OutcomeInProgress
	switch s.phase {
	case PhaseSummary:
		outcome = OutcomeCompleted
	case PhaseAbandoned:
		outcome = OutcomeAbandoned
	}

	var dur time.Duration
	if !s.startedAt.IsZero() {
		end := s.endedAt
		if end.IsZero() {
			end = s.now()
		}
		dur = end.Sub(s.startedAt)
	}

	return Summary{
		SessionID:    s.id,
		Game:         s.cfg.Game,
		StartLevel:   s.startLevel,
		FinalLevel:   s.state.Level,
		TotalCorrect: s.state.TotalCorrect,
		TotalWrong:   s.state.TotalWrong,
		BestStreak:   s.state.BestStreak,
		Rounds:       s.round,
		Accuracy:     s.state.Accuracy(),
		Outcome:      outcome,
		Reason:       s.reason,
		Tier:         levels.LabelForLevel(s.state.Level),
		StartedAt:    s.startedAt,
		Duration:     dur,
	}
}
