package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/homebook/internal/app"
	"github.com/abhisek/homebook/internal/screens/game"
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Open the arcade, or jump straight into a game",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var id string
		if len(args) == 1 {
			id = args[0]
		}
		return runPlay(cmd, id)
	},
}

func init() {
	playCmd.Flags().Int("rounds", 0, "Rounds per game (overrides HOMEBOOK_ROUNDS)")
	playCmd.Flags().Float64("level", 0, "Start level 1-50 instead of the saved one")
	playCmd.Flags().Uint64("seed", 0, "Random seed (overrides HOMEBOOK_SEED)")
}

// runPlay opens the store, builds the catalog and launches the TUI.
func runPlay(cmd *cobra.Command, gameID string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, err := newLogger(cfg, true)
	if err != nil {
		return err
	}
	defer log.Sync()

	st, err := openStore(cmd, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	catalog, err := loadCatalog(cmd, cfg)
	if err != nil {
		return err
	}

	rounds := cfg.Rounds
	if cmd.Flags().Changed("rounds") {
		rounds, _ = cmd.Flags().GetInt("rounds")
	}
	seed := cfg.Seed
	if cmd.Flags().Changed("seed") {
		seed, _ = cmd.Flags().GetUint64("seed")
	}
	var level float64
	if cmd.Flags().Lookup("level") != nil {
		level, _ = cmd.Flags().GetFloat64("level")
	}

	log.Info("starting arcade", "games", len(catalog.Games()), "game", gameID)
	return app.Run(app.Options{
		Catalog: catalog,
		Game:    gameID,
		Deps: game.Deps{
			Ctx:            cmd.Context(),
			Store:          st,
			Log:            log,
			RNG:            newRNG(seed),
			Rounds:         rounds,
			CountdownTicks: cfg.CountdownTicks,
			FastThreshold:  cfg.FastThreshold,
			StartLevel:     level,
		},
	})
}
