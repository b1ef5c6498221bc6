package session

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/homebook/internal/adaptive"
	"github.com/abhisek/homebook/internal/content"
	"github.com/abhisek/homebook/internal/levels"
)

const (
	DefaultRounds         = 10
	DefaultCountdownTicks = 3
)

// Config controls one game's session rules. Zero Rounds, MaxLives and
// TargetScore each disable that end condition.
type Config struct {
	Game string

	Rounds      int
	MaxLives    int
	TargetScore int

	// CountdownTicks is the number of Tick calls before the first round.
	// Zero starts play immediately.
	CountdownTicks int

	Adaptive adaptive.Config
}

// DefaultConfig returns a ten-round session with a three-tick countdown.
func DefaultConfig(game string) Config {
	return Config{
		Game:           game,
		Rounds:         DefaultRounds,
		CountdownTicks: DefaultCountdownTicks,
		Adaptive:       adaptive.DefaultConfig(),
	}
}

// Option configures a Session.
type Option func(*Session)

// WithObserver registers obs for phase and answer notifications.
func WithObserver(obs Observer) Option {
	return func(s *Session) { s.observer = obs }
}

// WithClock replaces the wall clock used to stamp outcomes.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// Session drives one game from countdown to summary. It owns no timers:
// the caller schedules Tick and decides whether an answer was fast.
// A Session is not safe for concurrent use.
type Session struct {
	cfg      Config
	source   Source
	observer Observer
	now      func() time.Time
	newID    func() string

	id         string
	phase      Phase
	state      adaptive.SkillState
	startLevel float64
	countdown  int
	round      int
	lives      int
	seen       *content.Memory
	current    Item
	last       *Feedback
	reason     EndReason
	startedAt  time.Time
	endedAt    time.Time
}

// New creates an idle session reading content from src.
func New(cfg Config, src Source, opts ...Option) *Session {
	cfg.Adaptive = cfg.Adaptive.Normalize()
	if cfg.CountdownTicks < 0 {
		cfg.CountdownTicks = 0
	}
	s := &Session{
		cfg:    cfg,
		source: src,
		now:    time.Now,
		newID:  uuid.NewString,
		seen:   content.NewMemory(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) ID() string { return s.id }
func (s *Session) Game() string { return s.cfg.Game }
func (s *Session) Config() Config { return s.cfg }
func (s *Session) Phase() Phase { return s.phase }
func (s *Session) State() adaptive.SkillState { return s.state }
func (s *Session) Level() float64 { return s.state.Level }
func (s *Session) Tier() levels.Tier { return levels.LabelForLevel(s.state.Level) }
func (s *Session) Countdown() int { return s.countdown }
func (s *Session) Round() int { return s.round }
func (s *Session) Lives() int { return s.lives }
func (s *Session) Seen() int { return s.seen.Len() }
func (s *Session) EndReason() EndReason { return s.reason }

// Current returns the item on screen. It is meaningful in Active and
// Feedback.
func (s *Session) Current() Item { return s.current }

// LastFeedback returns the most recent answer result, if any.
func (s *Session) LastFeedback() (Feedback, bool) {
	if s.last == nil {
		return Feedback{}, false
	}
	return *s.last, true
}

func (s *Session) invalid(op string) error {
	return fmt.Errorf("%w: %s in %s", ErrInvalidTransition, op, s.phase)
}

func (s *Session) setPhase(to Phase) {
	from := s.phase
	s.phase = to
	if s.observer != nil && from != to {
		s.observer.OnPhase(from, to)
	}
}

// Start resets the skill state to startLevel, clears seen items and begins
// the countdown. With zero countdown ticks the first round starts at once.
func (s *Session) Start(ctx context.Context, startLevel float64) error {
	if s.phase != PhaseIdle {
		return s.invalid("start")
	}

	s.id = s.newID()
	s.state = adaptive.NewSkillState(startLevel, s.cfg.Adaptive)
	s.startLevel = s.state.Level
	s.seen.Reset()
	s.round = 0
	s.lives = s.cfg.MaxLives
	s.current = Item{}
	s.last = nil
	s.reason = ReasonNone
	s.startedAt = s.now()
	s.endedAt = time.Time{}
	s.countdown = s.cfg.CountdownTicks
	s.setPhase(PhaseCountdown)

	if s.countdown == 0 {
		return s.activate(ctx)
	}
	return nil
}

// Tick advances the countdown. When it reaches zero the first item is
// selected and play begins. Outside Countdown it does nothing.
func (s *Session) Tick(ctx context.Context) error {
	if s.phase != PhaseCountdown {
		return nil
	}
	if s.countdown > 0 {
		s.countdown--
	}
	if s.countdown > 0 {
		return nil
	}
	return s.activate(ctx)
}

// activate selects the next item at the current level and enters Active.
// On a source error the phase is unchanged.
func (s *Session) activate(ctx context.Context) error {
	item, err := s.source.Next(ctx, s.state.Level, s.seen)
	if err != nil {
		return fmt.Errorf("failed to select item at level %.2f: %w", s.state.Level, err)
	}
	s.seen.Add(item.Key)
	s.current = item
	s.setPhase(PhaseActive)
	return nil
}

// Answer records the outcome of the current round, applies exactly one
// difficulty update, and enters Feedback.
func (s *Session) Answer(correct, fast bool) (Feedback, error) {
	if s.phase != PhaseActive {
		return Feedback{}, s.invalid("answer")
	}

	at := s.now()
	var adj adaptive.Adjustment
	s.state, adj = adaptive.Update(s.state, adaptive.Outcome{
		Correct: correct,
		Fast:    fast,
		At:      at,
	}, s.cfg.Adaptive)

	s.round++
	if !correct && s.cfg.MaxLives > 0 && s.lives > 0 {
		s.lives--
	}

	fb := Feedback{
		Correct:    correct,
		Fast:       fast,
		Adjustment: adj,
		Level:      s.state.Level,
		Tier:       levels.LabelForLevel(s.state.Level),
		Round:      s.round,
		Item:       s.current,
		At:         at,
	}
	s.last = &fb
	s.setPhase(PhaseFeedback)
	if s.observer != nil {
		s.observer.OnAnswer(fb)
	}
	return fb, nil
}

// Continue leaves Feedback: to Summary when an end condition holds,
// otherwise to Active with the next item.
func (s *Session) Continue(ctx context.Context) error {
	if s.phase != PhaseFeedback {
		return s.invalid("continue")
	}
	if reason := s.endCondition(); reason != ReasonNone {
		s.reason = reason
		s.endedAt = s.now()
		s.setPhase(PhaseSummary)
		return nil
	}
	return s.activate(ctx)
}

func (s *Session) endCondition() EndReason {
	switch {
	case s.cfg.MaxLives > 0 && s.lives <= 0:
		return ReasonLives
	case s.cfg.TargetScore > 0 && s.state.TotalCorrect >= s.cfg.TargetScore:
		return ReasonTarget
	case s.cfg.Rounds > 0 && s.round >= s.cfg.Rounds:
		return ReasonRounds
	}
	return ReasonNone
}

// Quit abandons a running session. Totals so far are kept for Summary.
// A session that already reached Summary has ended and cannot be quit.
func (s *Session) Quit() error {
	switch s.phase {
	case PhaseCountdown, PhaseActive, PhaseFeedback:
		s.reason = ReasonQuit
		s.endedAt = s.now()
		s.setPhase(PhaseAbandoned)
		return nil
	}
	return s.invalid("quit")
}

// PlayAgain returns a finished session to Idle so it can be started again.
func (s *Session) PlayAgain() error {
	if !s.phase.Terminal() {
		return s.invalid("play again")
	}
	s.current = Item{}
	s.countdown = 0
	s.setPhase(PhaseIdle)
	return nil
}
