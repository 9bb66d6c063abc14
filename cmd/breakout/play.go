package main

import (
	"github.com/spf13/cobra"
)

var flagLevel int

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play Breakout",
	Long: `Start playing immediately.

Controls:
  Left/Right/A/D  - Move paddle
  Mouse drag      - Move paddle to the pointer
  Space/Enter     - Launch ball, start next level
  P/Esc           - Pause
  R               - Restart
  Ctrl+S          - Save a screenshot
  Q/Ctrl+C        - Quit

Examples:
  breakout play
  breakout play --level 4
  breakout play --seed 42 --config ./my-breakout.yaml`,
	Args:        cobra.NoArgs,
	Annotations: map[string]string{annotationTUI: "true"},
	RunE:        runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagLevel, "level", 1, "Level to start at")
}

func runPlay(_ *cobra.Command, _ []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.close()

	_, err = s.play(flagLevel)
	return err
}
