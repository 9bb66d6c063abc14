// Package config provides YAML-based tuning for the Breakout simulation.
package config

import (
	"errors"
	"fmt"
	"time"
)

// PaddleWidenFactor is how much the widen power-up stretches the paddle.
// Validate uses it so a widened paddle still fits between the margins.
const PaddleWidenFactor = 1.6

// BreakoutConfig contains the tunable geometry and physics of a Breakout world.
// Rule constants (scoring, power-up odds and durations) live with the game.
type BreakoutConfig struct {
	Field    BreakoutField    `yaml:"field"`
	Paddle   BreakoutPaddle   `yaml:"paddle"`
	Ball     BreakoutBall     `yaml:"ball"`
	PowerUps BreakoutPowerUps `yaml:"powerups"`
	Gameplay BreakoutGameplay `yaml:"gameplay"`
}

// BreakoutField defines the playfield in field units. Y grows downward.
type BreakoutField struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Margin float64 `yaml:"margin"` // minimum gap between paddle and side walls
}

// BreakoutPaddle defines paddle geometry and movement.
type BreakoutPaddle struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Y      float64 `yaml:"y"`      // top edge, fixed for the whole game
	Speed  float64 `yaml:"speed"`  // keyboard speed, units per second
	Easing float64 `yaml:"easing"` // pointer easing rate, per second
}

// BreakoutBall defines ball size and speed band.
type BreakoutBall struct {
	Radius     float64 `yaml:"radius"`
	BaseSpeed  float64 `yaml:"base_speed"`
	MinSpeed   float64 `yaml:"min_speed"`
	MaxSpeed   float64 `yaml:"max_speed"`
	LossMargin float64 `yaml:"loss_margin"` // distance below the field before a ball counts as lost
}

// BreakoutPowerUps defines falling power-up capsules.
type BreakoutPowerUps struct {
	Width     float64 `yaml:"width"`
	Height    float64 `yaml:"height"`
	FallSpeed float64 `yaml:"fall_speed"`
}

// BreakoutGameplay defines session rules that are safe to tune.
type BreakoutGameplay struct {
	Lives         int           `yaml:"lives"`
	MaxFrameDelta time.Duration `yaml:"max_frame_delta"`
}

// Validate checks that the configuration describes a playable world.
func (c BreakoutConfig) Validate() error {
	var errs []error
	positive := func(name string, v float64) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", name, v))
		}
	}

	positive("field.width", c.Field.Width)
	positive("field.height", c.Field.Height)
	positive("paddle.width", c.Paddle.Width)
	positive("paddle.height", c.Paddle.Height)
	positive("paddle.speed", c.Paddle.Speed)
	positive("paddle.easing", c.Paddle.Easing)
	positive("ball.radius", c.Ball.Radius)
	positive("ball.base_speed", c.Ball.BaseSpeed)
	positive("ball.min_speed", c.Ball.MinSpeed)
	positive("powerups.width", c.PowerUps.Width)
	positive("powerups.height", c.PowerUps.Height)
	positive("powerups.fall_speed", c.PowerUps.FallSpeed)

	if c.Field.Margin < 0 {
		errs = append(errs, fmt.Errorf("field.margin must not be negative, got %v", c.Field.Margin))
	}
	if c.Paddle.Width+2*c.Field.Margin > c.Field.Width {
		errs = append(errs, fmt.Errorf("paddle.width %v does not fit field.width %v", c.Paddle.Width, c.Field.Width))
	} else if c.Paddle.Width*PaddleWidenFactor+2*c.Field.Margin > c.Field.Width {
		errs = append(errs, fmt.Errorf("widened paddle.width %v does not fit field.width %v",
			c.Paddle.Width*PaddleWidenFactor, c.Field.Width))
	}
	if c.Paddle.Y < 0 || c.Paddle.Y+c.Paddle.Height > c.Field.Height {
		errs = append(errs, fmt.Errorf("paddle.y %v is outside the field", c.Paddle.Y))
	}
	if c.Ball.MinSpeed > c.Ball.BaseSpeed || c.Ball.BaseSpeed > c.Ball.MaxSpeed {
		errs = append(errs, fmt.Errorf("ball speeds must satisfy min <= base <= max, got %v/%v/%v",
			c.Ball.MinSpeed, c.Ball.BaseSpeed, c.Ball.MaxSpeed))
	}
	if c.Ball.LossMargin < 0 {
		errs = append(errs, fmt.Errorf("ball.loss_margin must not be negative, got %v", c.Ball.LossMargin))
	}
	if c.Gameplay.Lives < 1 {
		errs = append(errs, fmt.Errorf("gameplay.lives must be at least 1, got %d", c.Gameplay.Lives))
	}
	if c.Gameplay.MaxFrameDelta <= 0 {
		errs = append(errs, fmt.Errorf("gameplay.max_frame_delta must be positive, got %v", c.Gameplay.MaxFrameDelta))
	}

	return errors.Join(errs...)
}
