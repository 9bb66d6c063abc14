package audio

import (
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

const testRate = beep.SampleRate(8000)

func drain(t *testing.T, s beep.Streamer, d time.Duration) [][2]float64 {
	t.Helper()
	buf := make([][2]float64, testRate.N(d))
	n, ok := s.Stream(buf)
	require.True(t, ok)
	return buf[:n]
}

func TestSinkPlaysKnownEvents(t *testing.T) {
	s := NewSink(testRate)

	s.Emit("hit")
	s.Emit("brick-break")
	assert.Equal(t, 2, s.Playing())

	out := drain(t, s.Streamer(), 20*time.Millisecond)
	var peak float64
	for _, frame := range out {
		peak = max(peak, frame[0])
	}
	assert.Greater(t, peak, 0.0, "cues should produce sound")

	// Streaming past the longest cue retires both streamers.
	drain(t, s.Streamer(), 200*time.Millisecond)
	drain(t, s.Streamer(), 10*time.Millisecond)
	assert.Zero(t, s.Playing())
}

func TestSinkIgnoresUnknownEvents(t *testing.T) {
	s := NewSink(testRate)
	s.Emit("level-complete")
	assert.Zero(t, s.Playing())
	assert.Zero(t, s.Duration("level-complete"))
}

func TestSinkCueDurations(t *testing.T) {
	s := NewSink(testRate)
	assert.InDelta(t, 35*time.Millisecond, s.Duration("hit"), float64(time.Millisecond))
	assert.InDelta(t, 210*time.Millisecond, s.Duration("power-collected"), float64(time.Millisecond))
}

func TestSinkMute(t *testing.T) {
	s := NewSink(testRate, WithVolume(0))
	s.Emit("power-collected")

	for _, frame := range drain(t, s.Streamer(), 50*time.Millisecond) {
		assert.Zero(t, frame[0])
	}

	s.SetVolume(1)
	var peak float64
	for _, frame := range drain(t, s.Streamer(), 50*time.Millisecond) {
		peak = max(peak, frame[0])
	}
	assert.Greater(t, peak, 0.0)
}

func TestSinkStop(t *testing.T) {
	s := NewSink(testRate)
	s.Emit("hit")
	s.Stop()
	assert.Zero(t, s.Playing())
}

func TestSinkIsEventSink(t *testing.T) {
	var sink core.EventSink = NewSink(0)
	sink.Emit("hit")
	assert.Equal(t, DefaultSampleRate, sink.(*Sink).SampleRate())
}
