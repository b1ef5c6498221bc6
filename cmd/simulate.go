package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/homebook/internal/arena"
	"github.com/abhisek/homebook/internal/levels"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate <game> <answers>",
	Short: "Replay a scripted answer sequence and trace the difficulty",
	Long: `Run a game headlessly, answering each round from a script, and print how
the level moves.

Script letters: F fast correct, C correct, W wrong, S timed out (wrong).
Spaces and commas are ignored, e.g. "FFF C W FF".`,
	Args: cobra.ExactArgs(2),
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().Float64("level", 0, "Start level (default: saved level, else 1)")
	simulateCmd.Flags().Uint64("seed", 1, "Random seed for item selection")
	simulateCmd.Flags().Bool("save", false, "Record the run in the database")
	simulateCmd.Flags().Bool("items", false, "Show the item picked each round")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, err := newLogger(cfg, false)
	if err != nil {
		return err
	}
	defer log.Sync()

	catalog, err := loadCatalog(cmd, cfg)
	if err != nil {
		return err
	}
	g, ok := catalog.Lookup(args[0])
	if !ok {
		return fmt.Errorf("unknown game %q (have: %s)", args[0], strings.Join(catalog.IDs(), ", "))
	}
	steps, err := arena.ParseScript(args[1])
	if err != nil {
		return err
	}

	level, _ := cmd.Flags().GetFloat64("level")
	seed, _ := cmd.Flags().GetUint64("seed")
	save, _ := cmd.Flags().GetBool("save")
	showItems, _ := cmd.Flags().GetBool("items")

	var rec *arena.Recorder
	if save || level <= 0 {
		st, err := openStore(cmd, cfg)
		if err != nil {
			return err
		}
		defer st.Close()
		if level <= 0 {
			level = arena.ResumeLevel(ctx, st, g.ID, levels.MinLevel)
		}
		if save {
			rec = arena.NewRecorder(ctx, st, log)
		}
	}

	run, err := arena.Simulate(ctx, g, steps, level, newRNG(seed), rec)
	if err != nil {
		return err
	}

	fmt.Printf("%s from level %.2f\n\n", g.Title, level)
	fmt.Printf("%5s  %-6s  %-5s  %-7s  %7s  %s\n", "Round", "Answer", "Fast", "Move", "Level", "Tier")
	fmt.Println(strings.Repeat("─", 50))
	for _, fb := range run.Feedback {
		answer := "wrong"
		if fb.Correct {
			answer = "right"
		}
		move := "-"
		if fb.Adjustment.Moved() {
			move = fmt.Sprintf("%s %.2f", fb.Adjustment.Kind, fb.Adjustment.Magnitude)
		}
		fmt.Printf("%5d  %-6s  %-5v  %-7s  %7.2f  %s %s\n",
			fb.Round, answer, fb.Fast, move, fb.Level, fb.Tier.Emoji, fb.Tier.Label)
		if showItems {
			fmt.Printf("       %s (level %.2f)\n", fb.Item.Key, fb.Item.Level)
		}
	}

	sum := run.Summary
	fmt.Printf("\n%d/%d correct (%.0f%%), best streak %d, level %.2f -> %.2f, ended: %s\n",
		sum.TotalCorrect, sum.Rounds, sum.Accuracy*100, sum.BestStreak,
		sum.StartLevel, sum.FinalLevel, sum.Reason)
	return nil
}
