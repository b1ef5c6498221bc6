package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/homebook/internal/screen"
	"github.com/abhisek/homebook/internal/store"
	"github.com/abhisek/homebook/internal/ui/layout"
	"github.com/abhisek/homebook/internal/ui/theme"
)

// historyLimit caps the results listed.
const historyLimit = 50

type historyLoadedMsg struct {
	Results []store.Result
	Err     error
}

type answersLoadedMsg struct {
	SessionID string
	Answers   []store.AnswerEvent
	Err       error
}

// HistoryScreen lists recent results. Enter expands a result into its
// per-round answers.
type HistoryScreen struct {
	ctx      context.Context
	st       *store.Store
	results  []store.Result
	answers  map[string][]store.AnswerEvent
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a HistoryScreen reading from st.
func New(ctx context.Context, st *store.Store) *HistoryScreen {
	if ctx == nil {
		ctx = context.Background()
	}
	return &HistoryScreen{
		ctx:      ctx,
		st:       st,
		answers:  make(map[string][]store.AnswerEvent),
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		results, err := s.st.Results().Recent(s.ctx, "", historyLimit)
		return historyLoadedMsg{Results: results, Err: err}
	}
}

func (s *HistoryScreen) loadAnswers(sessionID string) tea.Cmd {
	return func() tea.Msg {
		answers, err := s.st.Answers().ForSession(s.ctx, sessionID)
		return answersLoadedMsg{SessionID: sessionID, Answers: answers, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Rounds"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.results = msg.Results
		}
		s.loaded = true
		return s, nil

	case answersLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.answers[msg.SessionID] = msg.Answers
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.results)-1 {
				s.selected++
			}
		case "enter":
			if s.selected >= len(s.results) {
				return s, nil
			}
			s.expanded[s.selected] = !s.expanded[s.selected]
			id := s.results[s.selected].SessionID
			if _, ok := s.answers[id]; s.expanded[s.selected] && !ok {
				return s, s.loadAnswers(id)
			}
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	if s.errMsg != "" {
		return layout.Centered(lipgloss.NewStyle().Foreground(theme.Error), "\n\nError: "+s.errMsg, width)
	}
	if !s.loaded {
		return layout.Centered(dim, "\n\n  Loading history...", width)
	}
	if len(s.results) == 0 {
		return layout.Centered(dim.Italic(true), "\n\n  No games yet. Go play one!", width)
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, r := range s.results {
		mins := int(r.Duration.Minutes())
		secs := int(r.Duration.Seconds()) % 60

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}
		line := fmt.Sprintf("%s%s  %-16s %d:%02d  %2d rounds  %3.0f%%  Lv %4.1f → %4.1f  %s",
			prefix, r.StartedAt.Format("Jan 02 15:04"), r.Game, mins, secs,
			r.Rounds, r.Accuracy*100, r.StartLevel, r.FinalLevel, r.Tier)
		if r.Outcome == "abandoned" {
			line += "  (quit)"
		}

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			b.WriteString(s.renderAnswers(r.SessionID, width))
		}
	}

	return b.String()
}

func (s *HistoryScreen) renderAnswers(sessionID string, width int) string {
	answers, ok := s.answers[sessionID]
	dim := lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true)
	if !ok {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, dim.Render("    Loading rounds...")) + "\n"
	}
	if len(answers) == 0 {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, dim.Render("    No rounds answered")) + "\n"
	}

	var b strings.Builder
	for _, a := range answers {
		mark, style := "✗", theme.Incorrect
		if a.Correct {
			mark, style = "✓", theme.Correct
		}
		speed := ""
		if a.Fast {
			speed = " fast"
		}
		line := fmt.Sprintf("    %2d. %s %-20s Lv %4.1f  %s%s", a.Round, mark, a.ItemKey, a.LevelAfter, a.Adjustment, speed)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")
	}
	return b.String()
}
