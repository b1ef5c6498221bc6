// Package arena is the game catalog: each game binds a content source
// (generated questions for a level domain, or a leveled pool) to its
// session rules.
package arena

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/abhisek/homebook/internal/content"
	"github.com/abhisek/homebook/internal/levels"
	"github.com/abhisek/homebook/internal/problemgen"
	"github.com/abhisek/homebook/internal/session"
)

//go:embed pools/*.yaml
var builtinPools embed.FS

// defaultPoolTimer is the per-item time budget for pool games, which carry
// no level params.
const defaultPoolTimer = 20

// Game is one entry in the arena.
type Game struct {
	ID          string
	Title       string
	Description string

	// Domain is set for generated games.
	Domain levels.Domain
	Format problemgen.AnswerFormat

	// Pool is set for pool games.
	Pool *content.Pool

	// Rules carries the end conditions. Game is filled from ID.
	Rules session.Config
}

// Generated reports whether the game draws procedural questions.
func (g Game) Generated() bool { return g.Pool == nil }

// Params returns the level params for generated games, nil for pool games.
func (g Game) Params(level float64) levels.Params {
	mapper, ok := levels.Lookup(g.Domain)
	if !ok {
		return nil
	}
	return mapper(level)
}

// Tier returns the display tier for level.
func (g Game) Tier(level float64) levels.Tier {
	if p := g.Params(level); p != nil {
		return p.DisplayTier()
	}
	return levels.LabelForLevel(level)
}

// TimerSeconds returns the per-item time budget at level.
func (g Game) TimerSeconds(level float64) int {
	switch p := g.Params(level).(type) {
	case levels.ArithmeticParams:
		return p.TimerSeconds
	case levels.FractionParams:
		return p.TimerSeconds
	case levels.DecimalParams:
		return p.TimerSeconds
	case levels.GridParams:
		return p.TimerSeconds
	}
	return defaultPoolTimer
}

// Source builds the game's content source.
func (g Game) Source(rng content.RandomSource) (session.Source, error) {
	if g.Pool != nil {
		return session.NewPoolSource(g.Pool.Items, rng)
	}
	if !problemgen.Supports(g.Domain) {
		return nil, fmt.Errorf("game %s: %w: %s", g.ID, problemgen.ErrUnsupportedDomain, g.Domain)
	}
	gen := problemgen.NewProcedural(rng, problemgen.DefaultConfig())
	return session.NewGeneratorSource(gen, g.Domain, g.Format), nil
}

// SessionConfig returns the rules with the game ID, round count and
// countdown applied. Zero rounds keeps the game's own setting, and games
// without a round limit keep none.
func (g Game) SessionConfig(rounds, countdown int) session.Config {
	cfg := g.Rules
	cfg.Game = g.ID
	if rounds > 0 && cfg.Rounds > 0 {
		cfg.Rounds = rounds
	}
	cfg.CountdownTicks = countdown
	return cfg
}

func generatedGames() []Game {
	speed := session.DefaultConfig("speed-math")

	quick := session.DefaultConfig("quick-pick")
	quick.Rounds = 0
	quick.MaxLives = 3

	frenzy := session.DefaultConfig("fraction-frenzy")
	frenzy.Rounds = 12

	dash := session.DefaultConfig("decimal-dash")
	dash.Rounds = 15
	dash.TargetScore = 10

	return []Game{
		{
			ID:          "speed-math",
			Title:       "Speed Math",
			Description: "Type the answer. Fast answers climb quicker.",
			Domain:      levels.DomainArithmetic,
			Format:      problemgen.FormatNumeric,
			Rules:       speed,
		},
		{
			ID:          "quick-pick",
			Title:       "Quick Pick",
			Description: "Pick the right answer. Three lives.",
			Domain:      levels.DomainArithmetic,
			Format:      problemgen.FormatMultipleChoice,
			Rules:       quick,
		},
		{
			ID:          "fraction-frenzy",
			Title:       "Fraction Frenzy",
			Description: "Add, subtract and beyond with fractions.",
			Domain:      levels.DomainFractions,
			Format:      problemgen.FormatMultipleChoice,
			Rules:       frenzy,
		},
		{
			ID:          "decimal-dash",
			Title:       "Decimal Dash",
			Description: "First to ten correct decimals.",
			Domain:      levels.DomainDecimals,
			Format:      problemgen.FormatNumeric,
			Rules:       dash,
		},
	}
}

// BuiltinPools parses the pools shipped with the binary.
func BuiltinPools() ([]content.Pool, error) {
	entries, err := fs.ReadDir(builtinPools, "pools")
	if err != nil {
		return nil, fmt.Errorf("read builtin pools: %w", err)
	}
	var pools []content.Pool
	for _, e := range entries {
		data, err := builtinPools.ReadFile(path.Join("pools", e.Name()))
		if err != nil {
			return nil, fmt.Errorf("read builtin pool %s: %w", e.Name(), err)
		}
		p, err := content.ParsePool(data)
		if err != nil {
			return nil, fmt.Errorf("builtin pool %s: %w", e.Name(), err)
		}
		pools = append(pools, p)
	}
	sort.Slice(pools, func(i, j int) bool { return pools[i].Game < pools[j].Game })
	return pools, nil
}

func poolGame(p content.Pool) Game {
	pool := p
	title := p.Game
	if title != "" {
		title = strings.ToUpper(title[:1]) + title[1:]
	}
	return Game{
		ID:          p.Game,
		Title:       title,
		Description: p.Description,
		Pool:        &pool,
		Rules:       session.DefaultConfig(p.Game),
	}
}
