// Package audio turns simulation events into short synthesized sound effects.
// It only builds beep streamers; opening the speaker is left to the caller
// so the package stays usable in tests and headless builds.
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

// DefaultSampleRate is the rate used when none is given.
const DefaultSampleRate = beep.SampleRate(44100)

// Option configures a Sink.
type Option func(*Sink)

// WithLocker guards mixer updates with l, e.g. the speaker lock, so that
// sounds can be added while the speaker is streaming the mixer.
func WithLocker(l sync.Locker) Option {
	return func(s *Sink) {
		s.lock = l
	}
}

// WithVolume sets the output gain; 1 is unity, 0 mutes.
func WithVolume(v float64) Option {
	return func(s *Sink) {
		s.SetVolume(v)
	}
}

// Sink is a core.EventSink that plays a cue for each known event.
// Unknown events are ignored.
type Sink struct {
	rate   beep.SampleRate
	lock   sync.Locker
	mixer  *beep.Mixer
	volume *effects.Volume
	cues   map[core.Event][][2]float64
}

// NewSink creates a sink rendering cues at the given sample rate.
func NewSink(rate beep.SampleRate, opts ...Option) *Sink {
	if rate <= 0 {
		rate = DefaultSampleRate
	}
	s := &Sink{
		rate:  rate,
		lock:  &sync.Mutex{},
		mixer: &beep.Mixer{},
		cues:  make(map[core.Event][][2]float64),
	}
	s.volume = &effects.Volume{Streamer: s.mixer, Base: 2}
	for event, cue := range cueTable {
		s.cues[event] = cue.render(rate)
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Streamer returns the output to hand to the speaker.
func (s *Sink) Streamer() beep.Streamer {
	return s.volume
}

// SampleRate returns the rate the cues were rendered at.
func (s *Sink) SampleRate() beep.SampleRate {
	return s.rate
}

// SetVolume sets the output gain; 1 is unity, 0 mutes.
func (s *Sink) SetVolume(v float64) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if v <= 0 {
		s.volume.Silent = true
		s.volume.Volume = 0
		return
	}
	s.volume.Silent = false
	s.volume.Volume = math.Log2(v)
}

// Emit queues the cue for e. It never waits for playback.
func (s *Sink) Emit(e core.Event) {
	cue, ok := s.cues[e]
	if !ok {
		return
	}

	s.lock.Lock()
	defer s.lock.Unlock()
	s.mixer.Add(&bufferStreamer{samples: cue})
}

// Playing returns the number of cues still sounding.
func (s *Sink) Playing() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.mixer.Len()
}

// Stop drops every queued cue.
func (s *Sink) Stop() {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.mixer.Clear()
}

// Duration returns the length of the cue for e, or zero if e has none.
func (s *Sink) Duration(e core.Event) time.Duration {
	return s.rate.D(len(s.cues[e]))
}
