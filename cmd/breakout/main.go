// breakout is a brick-breaker for the terminal.
//
// Usage:
//
//	breakout play [--level N]  - Play, optionally starting at level N
//	breakout menu              - Start menu with level selector and high scores
//	breakout scores [-n N]     - Show the best runs
//	breakout levels            - List the levels
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--db <path>         - Set database path (default: ~/.arcade/breakout.db)
//	--config <path>     - Use a custom tuning YAML
//	--log-level <lvl>   - debug, info, warn or error
//	--log-file <path>   - Log destination while the game owns the terminal
//	--mute              - Disable sound
//	--no-color          - Render without colors
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-breakout/internal/storage"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
	flagLogFile  string
	flagMute     bool
	flagNoColor  bool
)

func main() {
	err := rootCmd.Execute()
	closeLogger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "breakout",
	Short: "Breakout - break bricks in your terminal",
	Long: `Breakout is a brick-breaking game for the terminal.

Bounce the ball off your paddle to clear every brick. Catch falling
power-ups to widen the paddle, speed the ball up or split it in three.

Available commands:
  play     - Play directly
  menu     - Interactive menu with level selector
  scores   - View high scores
  levels   - List the levels

Examples:
  breakout play
  breakout play --level 3
  breakout menu --fps 30
  breakout scores -n 5`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return setupLogger(cmd)
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom tuning YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", defaultLogFile, "Log file used while the game is running")
	rootCmd.PersistentFlags().BoolVar(&flagMute, "mute", false, "Disable sound")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Render without colors")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(levelsCmd)
}
