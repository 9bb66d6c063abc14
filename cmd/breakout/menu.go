package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-breakout/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with the main menu",
	Long: `Start in interactive menu mode.

Pick a starting level, check the high scores or jump straight in.
After a game ends, Esc returns to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Tab          - High scores
  Esc          - Back
  Q            - Quit

Examples:
  breakout menu
  breakout menu --fps 30
  breakout menu --db ./scores.db`,
	Args:        cobra.NoArgs,
	Annotations: map[string]string{annotationTUI: "true"},
	RunE:        runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.close()

	level := 1
	for {
		menuResult, err := tui.RunMenu(s.store, s.cfg, level)
		if err != nil {
			return err
		}
		s.cfg = menuResult.Config
		level = menuResult.StartLevel

		switch {
		case menuResult.Quit:
			return nil

		case menuResult.WantsScoreboard:
			goBack, err := tui.RunScoreboard(s.store, s.cfg.ScreenW, s.cfg.ScreenH)
			if err != nil {
				return err
			}
			if !goBack {
				return nil
			}

		case menuResult.Play:
			result, err := s.play(level)
			if err != nil {
				return err
			}
			if !result.Back {
				return nil
			}
			s.cfg = runtimeConfig()
		}
	}
}
