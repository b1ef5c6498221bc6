package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/homebook/internal/levels"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "Show how each domain's parameters scale with level",
	RunE: func(cmd *cobra.Command, args []string) error {
		domain, _ := cmd.Flags().GetString("domain")
		step, _ := cmd.Flags().GetInt("step")
		if step < 1 {
			return fmt.Errorf("--step must be >= 1")
		}

		domains := levels.Domains()
		if domain != "" {
			if _, ok := levels.Lookup(levels.Domain(domain)); !ok {
				return fmt.Errorf("unknown domain %q", domain)
			}
			domains = []levels.Domain{levels.Domain(domain)}
		}

		for i, d := range domains {
			if i > 0 {
				fmt.Println()
			}
			printDomain(d, step)
		}
		return nil
	},
}

func init() {
	levelsCmd.Flags().String("domain", "", "Only show this domain (arithmetic, decimals, fractions, grid)")
	levelsCmd.Flags().Int("step", 5, "Level increment between rows")
}

func printDomain(d levels.Domain, step int) {
	mapper, _ := levels.Lookup(d)
	fmt.Printf("%s\n", strings.ToUpper(string(d)))
	fmt.Println(strings.Repeat("─", 80))

	for l := int(levels.MinLevel); l <= int(levels.MaxLevel); l += step {
		p := mapper(float64(l))
		fields := p.Fields()
		parts := make([]string, 0, len(fields))
		for _, f := range fields {
			parts = append(parts, f.Name+"="+f.Value)
		}
		tier := p.DisplayTier()
		fmt.Printf("%3d  %-10s  %s\n", l, tier.Label, strings.Join(parts, "  "))
	}
}
