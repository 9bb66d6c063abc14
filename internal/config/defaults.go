package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/breakout.yaml
var defaultBreakoutYAML []byte

// DefaultBreakoutYAML returns the embedded default configuration file.
func DefaultBreakoutYAML() []byte {
	out := make([]byte, len(defaultBreakoutYAML))
	copy(out, defaultBreakoutYAML)
	return out
}

// DefaultBreakoutConfig returns the default Breakout configuration.
// It mirrors defaults/breakout.yaml and is used when the embedded file
// cannot be parsed.
func DefaultBreakoutConfig() BreakoutConfig {
	return BreakoutConfig{
		Field: BreakoutField{
			Width:  800,
			Height: 600,
			Margin: 8,
		},
		Paddle: BreakoutPaddle{
			Width:  110,
			Height: 14,
			Y:      560,
			Speed:  560,
			Easing: 18,
		},
		Ball: BreakoutBall{
			Radius:     7,
			BaseSpeed:  360,
			MinSpeed:   240,
			MaxSpeed:   760,
			LossMargin: 4,
		},
		PowerUps: BreakoutPowerUps{
			Width:     28,
			Height:    14,
			FallSpeed: 150,
		},
		Gameplay: BreakoutGameplay{
			Lives:         3,
			MaxFrameDelta: 50 * time.Millisecond,
		},
	}
}
