// Package home is the game menu shown at launch.
package home

import (
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/homebook/internal/arena"
	"github.com/abhisek/homebook/internal/levels"
	"github.com/abhisek/homebook/internal/router"
	"github.com/abhisek/homebook/internal/screen"
	"github.com/abhisek/homebook/internal/screens/game"
	"github.com/abhisek/homebook/internal/screens/history"
	"github.com/abhisek/homebook/internal/store"
	"github.com/abhisek/homebook/internal/ui/components"
	"github.com/abhisek/homebook/internal/ui/layout"
	"github.com/abhisek/homebook/internal/ui/theme"
)

const titleText = "H · O · M · E · B · O · O · K"

// HomeScreen lists the games in the catalog plus history and exit.
type HomeScreen struct {
	games  []arena.Game
	deps   game.Deps
	menu   components.Menu
	totals map[string]store.GameTotals
	levels map[string]float64
	last   *store.Result
	mascot MascotVariant
}

var (
	_ screen.Screen          = (*HomeScreen)(nil)
	_ screen.KeyHintProvider = (*HomeScreen)(nil)
	_ router.Refresher       = (*HomeScreen)(nil)
)

// New creates the home screen for catalog. Stats are read from deps.Store
// when it is set.
func New(catalog *arena.Catalog, deps game.Deps) *HomeScreen {
	h := &HomeScreen{games: catalog.Games(), deps: deps}

	items := make([]components.MenuItem, 0, len(h.games)+2)
	for _, g := range h.games {
		items = append(items, components.MenuItem{
			Label: strings.ToUpper(g.Title),
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: game.New(g, h.deps)}
				}
			},
		})
	}
	items = append(items,
		components.MenuItem{
			Label:    "HISTORY",
			Disabled: deps.Store == nil,
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: history.New(deps.Ctx, deps.Store)}
				}
			},
		},
		components.MenuItem{
			Label:  "EXIT",
			Action: func() tea.Cmd { return tea.Quit },
		},
	)
	h.menu = components.NewMenu(items)
	h.load()
	return h
}

// load reads per-game totals, resume levels and the latest result.
func (h *HomeScreen) load() {
	h.totals = make(map[string]store.GameTotals)
	h.levels = make(map[string]float64)
	h.last = nil
	if h.deps.Store == nil || h.deps.Ctx == nil {
		h.mascot = MascotIdle
		return
	}

	ctx := h.deps.Ctx
	if totals, err := h.deps.Store.Results().Totals(ctx); err == nil {
		for _, t := range totals {
			h.totals[t.Game] = t
		}
	} else if h.deps.Log != nil {
		h.deps.Log.Warn("failed to load totals", "error", err)
	}
	for _, g := range h.games {
		level, err := h.deps.Store.Levels().Load(ctx, g.ID)
		if err == nil {
			h.levels[g.ID] = level
		} else if !errors.Is(err, store.ErrNotFound) && h.deps.Log != nil {
			h.deps.Log.Warn("failed to load resume level", "game", g.ID, "error", err)
		}
	}
	if recent, err := h.deps.Store.Results().Recent(ctx, "", 1); err == nil && len(recent) == 1 {
		h.last = &recent[0]
	}
	h.mascot = mascotFor(h.last)
}

// Refresh reloads stats after a game returns to the menu.
func (h *HomeScreen) Refresh() tea.Cmd {
	h.load()
	return nil
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Play"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	compact := layout.IsCompact(width, height+6) || height < 28
	cw := components.ContentWidth(width)

	sections := []string{
		layout.Centered(lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true), titleText, cw),
	}
	if !compact {
		sections = append(sections, lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(RenderMascot(h.mascot)))
	}
	sections = append(sections,
		components.StatsBar(h.statsLine(), cw),
		lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(h.menu.View()),
	)
	if card := h.selectedCard(); card != "" {
		sections = append(sections, components.ArcadeCard(card, cw))
	}

	return components.CabinetFrame(strings.Join(sections, "\n"), width, height)
}

func (h *HomeScreen) statsLine() string {
	var played, correct, streak int
	for _, t := range h.totals {
		played += t.Sessions
		correct += t.TotalCorrect
		streak = max(streak, t.BestStreak)
	}
	return fmt.Sprintf("%s  %s  %s",
		lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true).Render(fmt.Sprintf("★ %d PLAYED", played)),
		lipgloss.NewStyle().Foreground(theme.Success).Bold(true).Render(fmt.Sprintf("✓ %d CORRECT", correct)),
		lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Bold(true).Render(fmt.Sprintf("⚡ BEST STREAK %d", streak)),
	)
}

// selectedCard describes the highlighted game with its resume level.
func (h *HomeScreen) selectedCard() string {
	if h.menu.Selected >= len(h.games) {
		return ""
	}
	g := h.games[h.menu.Selected]

	level, ok := h.levels[g.ID]
	if !ok {
		level = levels.MinLevel
	}
	line := theme.TierBadge(g.Tier(level)) + fmt.Sprintf("  Lv %.1f", level)
	if t, ok := h.totals[g.ID]; ok {
		line += fmt.Sprintf("   best %.1f · %.0f%%", t.BestLevel, t.Accuracy()*100)
	}
	return theme.Hint.Render(g.Description) + "\n" + line
}
