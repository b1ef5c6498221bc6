package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/homebook/internal/router"
	"github.com/abhisek/homebook/internal/screen"
	"github.com/abhisek/homebook/internal/session"
	"github.com/abhisek/homebook/internal/ui/components"
	"github.com/abhisek/homebook/internal/ui/layout"
	"github.com/abhisek/homebook/internal/ui/theme"
)

// SummaryScreen displays the end-of-game totals.
type SummaryScreen struct {
	game      string
	summary   session.Summary
	playAgain func() screen.Screen
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a SummaryScreen. playAgain builds the screen shown on
// replay; nil disables replay.
func New(game string, sum session.Summary, playAgain func() screen.Screen) *SummaryScreen {
	return &SummaryScreen{game: game, summary: sum, playAgain: playAgain}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Game Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{}
	if s.playAgain != nil {
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Play again"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Home"})
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "enter", "r":
		if s.playAgain == nil {
			return s, nil
		}
		next := s.playAgain()
		return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
	case "q", "esc":
		return s, func() tea.Msg { return router.PopToRootMsg{} }
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	var b strings.Builder

	heading := "Game complete!"
	if sum.Outcome == session.OutcomeAbandoned {
		heading = "Game ended early"
	}
	b.WriteString(layout.Centered(theme.Title, heading, width))
	b.WriteString("\n")
	b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.TextDim), s.game+reasonText(sum.Reason), width))
	b.WriteString("\n\n")

	mins := int(sum.Duration.Minutes())
	secs := int(sum.Duration.Seconds()) % 60
	stats := fmt.Sprintf("Rounds: %d    Correct: %d    Accuracy: %.0f%%    Best streak: %d    Time: %d:%02d",
		sum.Rounds, sum.TotalCorrect, sum.Accuracy*100, sum.BestStreak, mins, secs)
	b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.Text), stats, width))
	b.WriteString("\n\n")

	change := fmt.Sprintf("Level %.1f → %.1f", sum.StartLevel, sum.FinalLevel)
	changeStyle := lipgloss.NewStyle().Foreground(theme.Text)
	switch {
	case sum.FinalLevel > sum.StartLevel:
		changeStyle = theme.Correct
	case sum.FinalLevel < sum.StartLevel:
		changeStyle = lipgloss.NewStyle().Foreground(theme.Accent)
	}
	b.WriteString(layout.Centered(changeStyle, change, width))
	b.WriteString("\n")
	b.WriteString(layout.Centered(lipgloss.NewStyle(), theme.TierBadge(sum.Tier), width))
	b.WriteString("\n\n")

	meter := components.NewLevelMeter(sum.FinalLevel, min(width-8, 50)).View()
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, meter))
	return b.String()
}

func reasonText(r session.EndReason) string {
	switch r {
	case session.ReasonRounds:
		return " · all rounds played"
	case session.ReasonLives:
		return " · out of lives"
	case session.ReasonTarget:
		return " · target reached"
	case session.ReasonQuit:
		return " · quit"
	}
	return ""
}
