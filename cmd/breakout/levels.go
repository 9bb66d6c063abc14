package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List the levels",
	Long: `Shows every level with its brick count and the total hits needed to clear it.
Levels past the last one wrap around to the first.`,
	Args: cobra.NoArgs,
	RunE: runLevels,
}

func runLevels(cmd *cobra.Command, _ []string) error {
	tuning, err := config.LoadBreakout(flagConfig, config.WithLogger(logger))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "  %-3s  %-12s  %-6s  %s\n", "#", "Name", "Bricks", "Hits")
	fmt.Fprintf(out, "  %-3s  %-12s  %-6s  %s\n", "-", "----", "------", "----")

	for n := 1; n <= breakout.LevelCount(); n++ {
		level := breakout.BuildLevel(n, tuning.Field)
		hits := 0
		for _, b := range level.Bricks {
			hits += b.HP
		}
		fmt.Fprintf(out, "  %-3d  %-12s  %-6d  %d\n", n, level.Name, len(level.Bricks), hits)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Run 'breakout play --level <n>' to start at a level.")
	return nil
}
