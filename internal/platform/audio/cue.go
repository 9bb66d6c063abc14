package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

// Waveform types
const (
	waveSine = iota
	waveSquare
)

// note is one tone of a cue.
type note struct {
	wave int
	freq float64
	dur  time.Duration
	gain float64
}

// cue is a short sequence of notes played back to back.
type cue []note

// Events are matched by name so the package does not depend on the game.
var cueTable = map[core.Event]cue{
	"hit": {
		{wave: waveSquare, freq: 440, dur: 35 * time.Millisecond, gain: 0.25},
	},
	"brick-break": {
		{wave: waveSquare, freq: 880, dur: 30 * time.Millisecond, gain: 0.3},
		{wave: waveSquare, freq: 1320, dur: 40 * time.Millisecond, gain: 0.25},
	},
	"power-collected": {
		{wave: waveSine, freq: 523.25, dur: 60 * time.Millisecond, gain: 0.4},
		{wave: waveSine, freq: 659.25, dur: 60 * time.Millisecond, gain: 0.4},
		{wave: waveSine, freq: 783.99, dur: 90 * time.Millisecond, gain: 0.4},
	},
}

// render synthesizes the cue as stereo samples.
func (c cue) render(rate beep.SampleRate) [][2]float64 {
	var out [][2]float64
	for _, n := range c {
		out = append(out, n.render(rate)...)
	}
	return out
}

// render synthesizes one note with a short attack and a linear release.
func (n note) render(rate beep.SampleRate) [][2]float64 {
	total := rate.N(n.dur)
	attack := rate.N(2 * time.Millisecond)
	release := total / 2

	buf := make([][2]float64, total)
	phase := 0.0
	phaseInc := n.freq / float64(rate)
	for i := range buf {
		var v float64
		switch n.wave {
		case waveSquare:
			v = 1
			if phase >= 0.5 {
				v = -1
			}
		default:
			v = math.Sin(2 * math.Pi * phase)
		}

		env := 1.0
		if i < attack {
			env = float64(i) / float64(attack)
		} else if i >= total-release && release > 0 {
			env = float64(total-i) / float64(release)
		}

		v *= env * n.gain
		buf[i] = [2]float64{v, v}

		phase += phaseInc
		if phase >= 1 {
			phase--
		}
	}
	return buf
}

// bufferStreamer plays a prerendered buffer once.
type bufferStreamer struct {
	samples [][2]float64
	pos     int
}

func (b *bufferStreamer) Stream(samples [][2]float64) (int, bool) {
	if b.pos >= len(b.samples) {
		return 0, false
	}
	n := copy(samples, b.samples[b.pos:])
	b.pos += n
	return n, true
}

func (b *bufferStreamer) Err() error {
	return nil
}
