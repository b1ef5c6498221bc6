package game

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/homebook/internal/adaptive"
	"github.com/abhisek/homebook/internal/session"
	"github.com/abhisek/homebook/internal/ui/components"
	"github.com/abhisek/homebook/internal/ui/layout"
	"github.com/abhisek/homebook/internal/ui/theme"
)

func (s *GameScreen) View(width, height int) string {
	if s.errMsg != "" {
		return renderError(width, s.errMsg)
	}
	if s.sess == nil {
		return ""
	}
	if s.confirmQuit {
		return renderQuitConfirm(width)
	}

	switch s.sess.Phase() {
	case session.PhaseCountdown:
		return s.renderCountdown(width, height)
	case session.PhaseActive:
		return s.renderRound(width)
	case session.PhaseFeedback:
		return s.renderFeedback(width)
	}
	return layout.Centered(lipgloss.NewStyle().Foreground(theme.TextDim), "\n\n  Getting ready...", width)
}

func (s *GameScreen) renderCountdown(width, height int) string {
	num := lipgloss.NewStyle().
		Foreground(theme.ArcadeYellow).
		Bold(true).
		Render(fmt.Sprintf("%d", s.sess.Countdown()))
	block := lipgloss.JoinVertical(lipgloss.Center,
		theme.Title.Render(s.game.Title),
		"",
		theme.Subtitle.Render(s.game.Description),
		"",
		num,
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, block)
}

// renderInfoLine shows round, score, lives and the item timer.
func (s *GameScreen) renderInfoLine(width int) string {
	cfg := s.sess.Config()
	state := s.sess.State()

	round := fmt.Sprintf("Round %d", s.sess.Round()+1)
	if cfg.Rounds > 0 {
		round += fmt.Sprintf("/%d", cfg.Rounds)
	}
	left := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render("  " + round)

	parts := []string{
		lipgloss.NewStyle().Foreground(theme.Success).Render(fmt.Sprintf("✓ %d", state.TotalCorrect)),
		lipgloss.NewStyle().Foreground(theme.Error).Render(fmt.Sprintf("✗ %d", state.TotalWrong)),
	}
	if cfg.TargetScore > 0 {
		parts = append(parts, lipgloss.NewStyle().Foreground(theme.TextDim).Render(
			fmt.Sprintf("goal %d", cfg.TargetScore)))
	}
	if cfg.MaxLives > 0 {
		parts = append(parts, lipgloss.NewStyle().Foreground(theme.Error).Render(
			strings.Repeat("♥", s.sess.Lives())+strings.Repeat("♡", cfg.MaxLives-s.sess.Lives())))
	}
	if s.sess.Phase() == session.PhaseActive {
		parts = append(parts, lipgloss.NewStyle().Foreground(theme.Accent).Render(
			fmt.Sprintf("⏱ %ds", max(s.remaining, 0))))
	}
	right := strings.Join(parts, "  ")

	line := left
	if pad := width - lipgloss.Width(left) - lipgloss.Width(right) - 4; pad > 0 {
		line += strings.Repeat(" ", pad) + right
	}
	return line + "\n" + lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0)))
}

func (s *GameScreen) renderRound(width int) string {
	var b strings.Builder
	b.WriteString(s.renderInfoLine(width))
	b.WriteString("\n\n")

	b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.Text).Bold(true), s.prompt.Text, width))
	b.WriteString("\n\n")

	if s.mc {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.choice.View()))
	} else {
		b.WriteString(layout.Centered(lipgloss.NewStyle(), "Answer: "+s.input.View(), width))
	}

	if s.showHint {
		b.WriteString("\n\n")
		b.WriteString(layout.Centered(theme.Hint, "Hint: "+s.prompt.Hint, width))
	}

	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		components.NewLevelMeter(s.sess.Level(), min(width-8, 50)).View()))
	return b.String()
}

func (s *GameScreen) renderFeedback(width int) string {
	fb, ok := s.sess.LastFeedback()
	if !ok {
		return ""
	}

	var b strings.Builder
	b.WriteString(s.renderInfoLine(width))
	b.WriteString("\n\n")

	switch {
	case fb.Correct && fb.Fast:
		b.WriteString(layout.Centered(theme.Correct, "Correct! Lightning fast!", width))
	case fb.Correct:
		b.WriteString(layout.Centered(theme.Correct, "Correct!", width))
	case s.timedOut:
		b.WriteString(layout.Centered(theme.Incorrect, "Time's up!", width))
	default:
		b.WriteString(layout.Centered(theme.Incorrect, "Not quite", width))
	}
	if !fb.Correct && s.prompt.Answer != "" {
		b.WriteString("\n")
		b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.TextDim),
			"Correct answer: "+s.prompt.Answer, width))
	}
	b.WriteString("\n\n")

	if s.mc {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.choice.View()))
		b.WriteString("\n")
	}

	if s.prompt.Explanation != "" {
		exp := lipgloss.NewStyle().Width(min(width-8, 70)).Foreground(theme.Text).Render(s.prompt.Explanation)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, exp))
		b.WriteString("\n\n")
	}

	if msg := adjustmentMessage(fb); msg != "" {
		b.WriteString(layout.Centered(theme.TierStyle(fb.Tier), msg, width))
		b.WriteString("\n\n")
	}

	b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.TextDim), "Press Enter to continue...", width))
	return b.String()
}

// adjustmentMessage announces a level change, naming the tier when the
// change crossed into a new band.
func adjustmentMessage(fb session.Feedback) string {
	switch fb.Adjustment.Kind {
	case adaptive.DirectionUp:
		return fmt.Sprintf("Level up! %s %s  (%.1f)", fb.Tier.Emoji, fb.Tier.Label, fb.Level)
	case adaptive.DirectionDown:
		return fmt.Sprintf("Easing off: %s %s  (%.1f)", fb.Tier.Emoji, fb.Tier.Label, fb.Level)
	}
	return ""
}

func renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.Text).Bold(true), "End game early?", width))
	b.WriteString("\n")
	b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.TextDim), "Your score so far will be saved.", width))
	b.WriteString("\n\n")
	b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.Success), "[Y] Yes, end game", width))
	b.WriteString("\n")
	b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.Primary), "[N] No, keep going", width))
	return b.String()
}

func renderError(width int, errMsg string) string {
	return layout.Centered(lipgloss.NewStyle().Foreground(theme.Error),
		fmt.Sprintf("\n\n\n  Error: %s\n\n  Press Esc to go back.", errMsg), width)
}
