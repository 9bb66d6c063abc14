package main

import (
	"time"

	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/platform/audio"
)

// speakerLocker adapts the global speaker lock to sync.Locker.
type speakerLocker struct{}

func (speakerLocker) Lock()   { speaker.Lock() }
func (speakerLocker) Unlock() { speaker.Unlock() }

// openSound starts the speaker and returns a sink feeding it together with
// a function to stop playback. Without an audio device the game runs silent.
func openSound() (core.EventSink, func()) {
	if flagMute {
		return core.Discard, func() {}
	}

	rate := audio.DefaultSampleRate
	if err := speaker.Init(rate, rate.N(time.Second/20)); err != nil {
		logger.Warn("sound disabled", "err", err)
		return core.Discard, func() {}
	}

	sink := audio.NewSink(rate, audio.WithLocker(speakerLocker{}))
	speaker.Play(sink.Streamer())
	logger.Debug("sound enabled", "rate", int(rate))

	return sink, func() {
		sink.Stop()
		speaker.Close()
	}
}
