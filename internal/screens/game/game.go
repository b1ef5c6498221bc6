// Package game is the play screen: it drives one session through countdown,
// rounds, feedback and summary.
package game

import (
	"context"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/homebook/internal/arena"
	"github.com/abhisek/homebook/internal/content"
	"github.com/abhisek/homebook/internal/levels"
	"github.com/abhisek/homebook/internal/logging"
	"github.com/abhisek/homebook/internal/router"
	"github.com/abhisek/homebook/internal/screen"
	"github.com/abhisek/homebook/internal/screens/summary"
	"github.com/abhisek/homebook/internal/session"
	"github.com/abhisek/homebook/internal/store"
	"github.com/abhisek/homebook/internal/ui/components"
	"github.com/abhisek/homebook/internal/ui/layout"
	"github.com/abhisek/homebook/internal/ui/theme"
)

// Deps are the shared services and settings every game screen needs.
type Deps struct {
	Ctx   context.Context
	Store *store.Store
	Log   *logging.Logger
	RNG   content.RandomSource

	Rounds         int
	CountdownTicks int
	FastThreshold  time.Duration

	// StartLevel overrides the saved resume level when positive.
	StartLevel float64

	// Now defaults to time.Now.
	Now func() time.Time
}

func (d Deps) normalize() Deps {
	if d.Ctx == nil {
		d.Ctx = context.Background()
	}
	if d.Log == nil {
		d.Log = logging.Nop()
	}
	if d.RNG == nil {
		d.RNG = content.DefaultRNG()
	}
	if d.FastThreshold <= 0 {
		d.FastThreshold = 3 * time.Second
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	return d
}

// GameScreen implements screen.Screen for one game.
type GameScreen struct {
	game arena.Game
	deps Deps
	sess *session.Session

	prompt  arena.Prompt
	input   components.TextInput
	choice  components.MultiChoice
	mc      bool
	shownAt time.Time

	// remaining is the item timer in seconds; epoch invalidates ticks of
	// earlier items.
	remaining int
	epoch     int

	given       string
	timedOut    bool
	showHint    bool
	confirmQuit bool
	errMsg      string
}

var (
	_ screen.Screen          = (*GameScreen)(nil)
	_ screen.KeyHintProvider = (*GameScreen)(nil)
	_ screen.StatusProvider  = (*GameScreen)(nil)
	_ screen.EscapeHandler   = (*GameScreen)(nil)
)

// New creates the screen for g. The session starts on Init.
func New(g arena.Game, deps Deps) *GameScreen {
	deps = deps.normalize()
	s := &GameScreen{game: g, deps: deps}

	src, err := g.Source(deps.RNG)
	if err != nil {
		s.errMsg = err.Error()
		return s
	}
	rec := arena.NewRecorder(deps.Ctx, deps.Store, deps.Log)
	cfg := g.SessionConfig(deps.Rounds, deps.CountdownTicks)
	s.sess = arena.NewSession(cfg, src, rec, session.WithClock(deps.Now))
	return s
}

// Session exposes the underlying session.
func (s *GameScreen) Session() *session.Session { return s.sess }

func (s *GameScreen) Title() string { return s.game.Title }

func (s *GameScreen) Init() tea.Cmd {
	if s.sess == nil || s.sess.Phase() != session.PhaseIdle {
		return nil
	}

	level := s.deps.StartLevel
	if level <= 0 {
		level = arena.ResumeLevel(s.deps.Ctx, s.deps.Store, s.game.ID, levels.MinLevel)
	}
	if err := s.sess.Start(s.deps.Ctx, level); err != nil {
		return s.fail(err)
	}
	if s.sess.Phase() == session.PhaseCountdown {
		return countdownCmd()
	}
	return s.beginItem()
}

func (s *GameScreen) Status() string {
	if s.sess == nil || s.sess.Phase() == session.PhaseIdle {
		return ""
	}
	level := s.sess.Level()
	return theme.TierBadge(s.game.Tier(level)) + fmt.Sprintf("  Lv %.1f", level)
}

// HandlesEscape keeps Esc from popping the screen while a session runs.
func (s *GameScreen) HandlesEscape() bool {
	return s.sess != nil && s.errMsg == "" && !s.sess.Phase().Terminal()
}

func (s *GameScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.errMsg != "":
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	case s.confirmQuit:
		return []layout.KeyHint{
			{Key: "Y", Description: "End game"},
			{Key: "N", Description: "Keep going"},
		}
	case s.sess == nil:
		return nil
	}

	switch s.sess.Phase() {
	case session.PhaseFeedback:
		return []layout.KeyHint{{Key: "Enter", Description: "Continue"}, {Key: "Esc", Description: "Quit"}}
	case session.PhaseActive:
		hints := []layout.KeyHint{{Key: "Enter", Description: "Submit"}}
		if s.mc {
			hints = append(hints, layout.KeyHint{Key: "1-9", Description: "Pick"})
		}
		if s.prompt.Hint != "" {
			hints = append(hints, layout.KeyHint{Key: "Tab", Description: "Hint"})
		}
		return append(hints, layout.KeyHint{Key: "Esc", Description: "Quit"})
	}
	return []layout.KeyHint{{Key: "Esc", Description: "Quit"}}
}

func (s *GameScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case countdownTickMsg:
		return s.handleCountdown()
	case itemTimerMsg:
		return s.handleTimer(msg)
	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.sess != nil && s.sess.Phase() == session.PhaseActive && !s.mc && !s.confirmQuit {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *GameScreen) fail(err error) tea.Cmd {
	s.deps.Log.Error("game failed", "game", s.game.ID, "error", err)
	s.errMsg = err.Error()
	return nil
}

func (s *GameScreen) handleCountdown() (screen.Screen, tea.Cmd) {
	if s.sess.Phase() != session.PhaseCountdown {
		return s, nil
	}
	if err := s.sess.Tick(s.deps.Ctx); err != nil {
		return s, s.fail(err)
	}
	if s.sess.Phase() == session.PhaseCountdown {
		return s, countdownCmd()
	}
	return s, s.beginItem()
}

// beginItem prepares the input for the session's current item and starts
// its timer.
func (s *GameScreen) beginItem() tea.Cmd {
	s.prompt = arena.PromptFor(s.sess.Current())
	s.mc = len(s.prompt.Choices) > 0
	s.given = ""
	s.timedOut = false
	s.showHint = false
	s.shownAt = s.deps.Now()
	s.remaining = s.game.TimerSeconds(s.sess.Level())
	s.epoch++

	timer := itemTimerCmd(s.epoch)
	if s.mc {
		s.choice = components.NewMultiChoice(s.prompt.Choices)
		return timer
	}
	s.input = components.NewTextInput("Type your answer...", s.game.Generated(), 24)
	return tea.Batch(timer, s.input.Init())
}

func (s *GameScreen) handleTimer(msg itemTimerMsg) (screen.Screen, tea.Cmd) {
	if msg.Epoch != s.epoch || s.sess.Phase() != session.PhaseActive {
		return s, nil
	}
	s.remaining--
	if s.remaining > 0 {
		return s, itemTimerCmd(s.epoch)
	}
	if s.confirmQuit {
		// Hold the expiry until the dialog closes.
		s.remaining = 1
		return s, itemTimerCmd(s.epoch)
	}
	s.timedOut = true
	return s.submit("")
}

func (s *GameScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.errMsg != "" || s.sess == nil {
		if key == "esc" || key == "enter" {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
		return s, nil
	}

	if s.confirmQuit {
		switch key {
		case "y", "Y":
			s.confirmQuit = false
			return s.quit()
		case "n", "N", "esc":
			s.confirmQuit = false
		}
		return s, nil
	}

	if key == "esc" {
		if !s.sess.Phase().Terminal() {
			s.confirmQuit = true
		}
		return s, nil
	}

	switch s.sess.Phase() {
	case session.PhaseFeedback:
		if key == "enter" || key == "space" {
			return s.advance()
		}
	case session.PhaseActive:
		if key == "tab" {
			s.showHint = s.prompt.Hint != ""
			return s, nil
		}
		if s.mc {
			s.choice, _ = s.choice.Update(msg)
			if picked, ok := s.choice.Chosen(); ok {
				return s.submit(picked)
			}
			return s, nil
		}
		if key == "enter" {
			if s.input.Value() == "" {
				return s, nil
			}
			return s.submit(s.input.Value())
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

// submit grades answer and records it with the session. An empty answer
// after a timeout counts as wrong.
func (s *GameScreen) submit(answer string) (screen.Screen, tea.Cmd) {
	correct := answer != "" && s.prompt.Check(answer)
	fast := correct && s.deps.Now().Sub(s.shownAt) < s.deps.FastThreshold

	if _, err := s.sess.Answer(correct, fast); err != nil {
		return s, s.fail(err)
	}
	s.given = answer
	s.epoch++
	if s.mc {
		s.choice.Submitted = true
		s.choice.Reveal(s.prompt.Answer)
	} else {
		s.input.Submit(correct)
	}
	return s, nil
}

// advance leaves feedback for the next item or the summary.
func (s *GameScreen) advance() (screen.Screen, tea.Cmd) {
	if err := s.sess.Continue(s.deps.Ctx); err != nil {
		return s, s.fail(err)
	}
	if s.sess.Phase() == session.PhaseSummary {
		return s, s.showSummary()
	}
	return s, s.beginItem()
}

func (s *GameScreen) quit() (screen.Screen, tea.Cmd) {
	if err := s.sess.Quit(); err != nil {
		return s, s.fail(err)
	}
	s.epoch++
	return s, s.showSummary()
}

func (s *GameScreen) showSummary() tea.Cmd {
	sum := summary.New(s.game.Title, s.sess.Summary(), s.playAgain)
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: sum} }
}

// playAgain resets the session so the next Init starts a fresh run where
// the last one ended.
func (s *GameScreen) playAgain() screen.Screen {
	s.deps.StartLevel = s.sess.Level()
	if err := s.sess.PlayAgain(); err != nil {
		s.fail(err)
	}
	return s
}
