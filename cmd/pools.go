package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/homebook/internal/arena"
	"github.com/abhisek/homebook/internal/content"
)

var poolsCmd = &cobra.Command{
	Use:   "pools",
	Short: "Inspect content pools",
}

var poolsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List built-in pools and pools from HOMEBOOK_POOL_DIR",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		pools, err := arena.BuiltinPools()
		if err != nil {
			return err
		}
		if cfg.PoolDir != "" {
			extra, err := content.LoadPoolDir(cmd.Context(), cfg.PoolDir)
			if err != nil {
				return err
			}
			pools = append(pools, extra...)
		}
		printPools(pools)
		return nil
	},
}

var poolsValidateCmd = &cobra.Command{
	Use:   "validate <dir>",
	Short: "Validate every pool file in a directory and report level gaps",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pools, err := content.LoadPoolDir(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if len(pools) == 0 {
			return fmt.Errorf("no pool files in %s", args[0])
		}
		printPools(pools)
		fmt.Printf("\n%d pools OK\n", len(pools))
		return nil
	},
}

func init() {
	poolsCmd.AddCommand(poolsListCmd)
	poolsCmd.AddCommand(poolsValidateCmd)
}

func printPools(pools []content.Pool) {
	fmt.Printf("%-16s  %5s  %-28s  %s\n", "Game", "Items", "Source", "Uncovered levels")
	fmt.Println(strings.Repeat("─", 80))
	for _, p := range pools {
		src := p.Path
		if src == "" {
			src = "(built-in)"
		}
		fmt.Printf("%-16s  %5d  %-28s  %s\n", p.Game, len(p.Items), src, formatRanges(content.Gaps(p.Items)))
	}
}

// formatRanges collapses sorted levels into "a-b, c" form.
func formatRanges(ls []int) string {
	if len(ls) == 0 {
		return "none"
	}
	var parts []string
	start, prev := ls[0], ls[0]
	flush := func() {
		if start == prev {
			parts = append(parts, fmt.Sprint(start))
		} else {
			parts = append(parts, fmt.Sprintf("%d-%d", start, prev))
		}
	}
	for _, l := range ls[1:] {
		if l == prev+1 {
			prev = l
			continue
		}
		flush()
		start, prev = l, l
	}
	flush()
	return strings.Join(parts, ", ")
}
