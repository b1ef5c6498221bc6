package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/homebook/internal/session"
	"github.com/abhisek/homebook/internal/store"
	"github.com/abhisek/homebook/internal/ui/theme"
)

// MascotVariant selects which mascot art to display.
type MascotVariant int

const (
	MascotIdle        MascotVariant = iota // Default purple
	MascotCelebrating                      // Gold, star eyes: last game went well
	MascotAlert                            // Orange, exclamation: last game was abandoned
)

const mascotIdle = `┌─────┐
│ ◉ ◉ │
│  ▽  │
│ ±×÷ │
└─────┘`

const mascotCelebrating = `┌─────┐
│ ★ ★ │
│  ▿  │
│ ±×÷ │
└─╥═╥─┘
  ╚═╝`

const mascotAlert = `┌─────┐
│ ◉ ◉ │ !
│  ▽  │
│ ±×÷ │
└─────┘`

// celebrateAccuracy is the accuracy a finished game needs for the
// celebrating mascot.
const celebrateAccuracy = 0.8

// mascotFor picks the variant from the most recent result, if any.
func mascotFor(last *store.Result) MascotVariant {
	switch {
	case last == nil:
		return MascotIdle
	case last.Outcome == string(session.OutcomeAbandoned):
		return MascotAlert
	case last.Accuracy >= celebrateAccuracy:
		return MascotCelebrating
	}
	return MascotIdle
}

// RenderMascot returns the mascot ASCII art for the given variant.
func RenderMascot(v MascotVariant) string {
	art := mascotIdle
	fg := theme.Primary

	switch v {
	case MascotCelebrating:
		art = mascotCelebrating
		fg = theme.ArcadeYellow
	case MascotAlert:
		art = mascotAlert
		fg = theme.Accent
	}

	return lipgloss.NewStyle().
		Foreground(fg).
		Render(art)
}
