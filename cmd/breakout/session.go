package main

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
	"github.com/vovakirdan/tui-breakout/internal/platform/tui"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

// session holds what a run of the game needs beyond the game itself.
type session struct {
	cfg       core.RuntimeConfig
	tuning    config.BreakoutConfig
	store     *storage.Store
	sink      core.EventSink
	stopSound func()
}

// newSession loads tuning, opens the score store and the speaker.
// A missing database or audio device only disables that feature.
func newSession() (*session, error) {
	tuning, err := config.LoadBreakout(flagConfig, config.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("scores disabled", "err", err)
		store = nil
	}

	sink, stop := openSound()

	s := &session{
		cfg:       runtimeConfig(),
		tuning:    tuning,
		store:     store,
		sink:      core.Tee(sink, eventLog()),
		stopSound: stop,
	}
	logger.Debug("session", "screen", fmt.Sprintf("%dx%d", s.cfg.ScreenW, s.cfg.ScreenH), "fps", s.cfg.TickRate)
	return s, nil
}

// play runs one game starting at level and reports how it ended.
func (s *session) play(level int) (tui.Result, error) {
	game := breakout.New(
		breakout.WithConfig(s.tuning),
		breakout.WithStartLevel(level),
		breakout.WithLogger(logger),
	)
	logger.Info("starting game", "level", breakout.NormalizeLevel(level), "seed", s.cfg.Seed)

	result, err := tui.Run(game, s.cfg,
		tui.WithStore(s.store),
		tui.WithEventSink(s.sink),
		tui.WithLogger(logger),
		tui.WithPlainOutput(flagNoColor),
	)
	if err != nil {
		return result, fmt.Errorf("running game: %w", err)
	}
	logger.Info("game ended", "score", result.State.Score, "level", result.State.Level, "phase", result.State.Phase)
	return result, nil
}

// eventLog reports game events at debug level.
func eventLog() core.EventSink {
	return core.EventSinkFunc(func(e core.Event) {
		logger.Debug("event", "name", string(e))
	})
}

func (s *session) close() {
	s.stopSound()
	if s.store != nil {
		s.store.Close()
	}
}

// runtimeConfig builds the runtime config from flags and the terminal size.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}
