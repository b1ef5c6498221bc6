// Package app hosts the root Bubble Tea model: a screen router framed by
// a header and a footer of key hints.
package app

import (
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/homebook/internal/arena"
	"github.com/abhisek/homebook/internal/router"
	"github.com/abhisek/homebook/internal/screen"
	"github.com/abhisek/homebook/internal/screens/game"
	"github.com/abhisek/homebook/internal/screens/home"
	"github.com/abhisek/homebook/internal/ui/layout"
)

// Options carries the dependencies for the TUI.
type Options struct {
	Catalog *arena.Catalog
	Deps    game.Deps

	// Game, when set, skips the menu and opens that game directly.
	Game string
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	width  int
	height int

	// initCmd is the start command of a game opened at launch.
	initCmd tea.Cmd
}

// newAppModel creates the model with the home screen at the root, plus the
// requested game on top when one is named.
func newAppModel(opts Options) (AppModel, error) {
	m := AppModel{router: router.New(home.New(opts.Catalog, opts.Deps))}
	if opts.Game == "" {
		return m, nil
	}
	g, ok := opts.Catalog.Lookup(opts.Game)
	if !ok {
		return AppModel{}, fmt.Errorf("unknown game %q", opts.Game)
	}
	m.initCmd = m.router.Push(game.New(g, opts.Deps))
	return m, nil
}

func (m AppModel) Init() tea.Cmd {
	if m.initCmd != nil {
		return m.initCmd
	}
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if eh, ok := m.router.Active().(screen.EscapeHandler); ok && eh.HandlesEscape() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

// render draws the framed active screen for the current terminal size.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title, status := "", ""
	if active != nil {
		title = active.Title()
		if sp, ok := active.(screen.StatusProvider); ok {
			status = sp.Status()
		}
	}
	header := layout.RenderHeader(title, status, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	content := m.router.View(m.width, layout.ContentHeight(header, footer, m.height))
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if kp, ok := active.(screen.KeyHintProvider); ok {
		if hints := kp.KeyHints(); len(hints) > 0 {
			return hints
		}
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	m, err := newAppModel(opts)
	if err != nil {
		return err
	}
	if _, err := tea.NewProgram(m).Run(); err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}
