package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/homebook/internal/arena"
	"github.com/abhisek/homebook/internal/config"
	"github.com/abhisek/homebook/internal/content"
	"github.com/abhisek/homebook/internal/logging"
	"github.com/abhisek/homebook/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "homebook",
	Short: "Adaptive terminal arcade",
	Long: "Homebook is a terminal arcade of quick quiz games whose difficulty\n" +
		"follows your answers: fast streaks climb, misses ease off.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd, "")
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides HOMEBOOK_DB env var)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(poolsCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads HOMEBOOK_* settings.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// newLogger builds the command logger. The TUI owns the terminal, so it
// only logs when a log file is configured.
func newLogger(cfg config.Config, tui bool) (*logging.Logger, error) {
	if tui && cfg.LogFile == "" {
		return logging.Nop(), nil
	}
	log, err := logging.New(cfg.LogMode, cfg.LogFile)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return log, nil
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then HOMEBOOK_DB, then the default XDG path.
func resolveDBPath(cmd *cobra.Command, cfg config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

func openStore(cmd *cobra.Command, cfg config.Config) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}

// loadCatalog builds the game catalog from the built-in pools plus any
// pools in HOMEBOOK_POOL_DIR.
func loadCatalog(cmd *cobra.Command, cfg config.Config) (*arena.Catalog, error) {
	pools, err := arena.BuiltinPools()
	if err != nil {
		return nil, err
	}
	if cfg.PoolDir != "" {
		extra, err := content.LoadPoolDir(cmd.Context(), cfg.PoolDir)
		if err != nil {
			return nil, fmt.Errorf("load pools from %s: %w", cfg.PoolDir, err)
		}
		pools = append(pools, extra...)
	}
	return arena.NewCatalog(pools...)
}

// newRNG seeds from seed when positive, else uses the runtime source.
func newRNG(seed uint64) content.RandomSource {
	if seed > 0 {
		return content.NewSeededRNG(seed)
	}
	return content.DefaultRNG()
}
