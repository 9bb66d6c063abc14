package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores",
	Long: `Display the best runs with the level each one reached.

Examples:
  breakout scores
  breakout scores -n 20
  breakout scores --clear`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVarP(&flagScoresLimit, "limit", "n", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all recorded runs")
}

func runScores(cmd *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	const gameID = "breakout"
	out := cmd.OutOrStdout()

	if flagScoresClear {
		if err := store.ClearRuns(gameID); err != nil {
			return err
		}
		logger.Info("runs cleared", "db", flagDBPath)
		return nil
	}

	runs, err := store.TopRuns(gameID, flagScoresLimit)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "High Scores - Breakout")
	fmt.Fprintln(out)

	if len(runs) == 0 {
		fmt.Fprintln(out, "No scores recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Play 'breakout play' to set the first high score!")
		return nil
	}

	fmt.Fprintf(out, "  %-4s  %-10s  %-16s  %s\n", "Rank", "Score", "Level", "Date")
	fmt.Fprintf(out, "  %-4s  %-10s  %-16s  %s\n", "----", "-----", "-----", "----")

	for i, r := range runs {
		level := fmt.Sprintf("%d %s", r.Level, breakout.LevelName(r.Level))
		fmt.Fprintf(out, "  %-4d  %-10d  %-16s  %s\n", i+1, r.Score, level, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	highScore, err := store.HighScore(gameID)
	if err == nil {
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Best: %d\n", highScore)
	}
	return nil
}
