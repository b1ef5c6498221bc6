package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show per-game totals and recent results",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		game, _ := cmd.Flags().GetString("game")
		limit, _ := cmd.Flags().GetInt("limit")

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		st, err := openStore(cmd, cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		totals, err := st.Results().Totals(ctx)
		if err != nil {
			return fmt.Errorf("load totals: %w", err)
		}
		if len(totals) == 0 {
			fmt.Println("No games played yet.")
			return nil
		}

		fmt.Printf("%-16s  %5s  %5s  %7s  %6s  %6s  %s\n",
			"Game", "Games", "Done", "Correct", "Acc", "Best", "Last played")
		fmt.Println(strings.Repeat("─", 80))
		for _, t := range totals {
			if game != "" && t.Game != game {
				continue
			}
			fmt.Printf("%-16s  %5d  %5d  %7d  %5.0f%%  %6.1f  %s\n",
				t.Game, t.Sessions, t.Completed, t.TotalCorrect, t.Accuracy()*100,
				t.BestLevel, t.LastPlayed.Local().Format("2006-01-02 15:04"))
		}

		recent, err := st.Results().Recent(ctx, game, limit)
		if err != nil {
			return fmt.Errorf("load recent results: %w", err)
		}
		fmt.Printf("\nRecent\n")
		fmt.Println(strings.Repeat("─", 80))
		for _, r := range recent {
			fmt.Printf("%s  %-16s  %2d rounds  %4.0f%%  %5.1f -> %5.1f  %-10s %s\n",
				r.StartedAt.Local().Format("2006-01-02 15:04"), r.Game, r.Rounds,
				r.Accuracy*100, r.StartLevel, r.FinalLevel, r.Tier, r.Outcome)
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().String("game", "", "Only show this game")
	statsCmd.Flags().Int("limit", 10, "Number of recent results to show")
}
