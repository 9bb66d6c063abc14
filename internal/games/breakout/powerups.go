package breakout

import (
	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
)

// Power-up rules.
const (
	DropChance = 0.18 // probability a destroyed brick drops a power-up

	WidenFactor   = config.PaddleWidenFactor
	WidenDuration = 12.0 // seconds

	SpeedBoostFactor   = 1.25
	SpeedBoostDuration = 10.0 // seconds

	MultiBallSpread      = 0.35 // radians either side of the source heading
	MultiBallSpeedFactor = 1.05
	MultiBallOffset      = 8.0 // horizontal offset of spawned balls
	MultiBallDuration    = 8.0 // seconds the HUD marker stays lit

	// timerEpsilon absorbs float drift when summing many small steps.
	timerEpsilon = 1e-9
)

// PowerUpType identifies the effect of a power-up capsule.
type PowerUpType int

const (
	PowerUpMultiBall  PowerUpType = iota // Two extra balls per ball
	PowerUpWiden                         // Wider paddle for a while
	PowerUpSpeedBoost                    // Faster balls for a while
	powerUpTypeCount                     // Sentinel for counting types
)

// Glyph returns the display character for a power-up type.
func (t PowerUpType) Glyph() rune {
	switch t {
	case PowerUpMultiBall:
		return 'M'
	case PowerUpWiden:
		return 'W'
	case PowerUpSpeedBoost:
		return 'S'
	default:
		return '?'
	}
}

// Color returns the display color for a power-up type.
func (t PowerUpType) Color() core.Color {
	switch t {
	case PowerUpMultiBall:
		return core.ColorBrightMagenta
	case PowerUpWiden:
		return core.ColorBrightGreen
	case PowerUpSpeedBoost:
		return core.ColorBrightYellow
	default:
		return core.ColorDefault
	}
}

// String returns the name of the power-up type.
func (t PowerUpType) String() string {
	switch t {
	case PowerUpMultiBall:
		return "multi-ball"
	case PowerUpWiden:
		return "paddle-widen"
	case PowerUpSpeedBoost:
		return "speed-boost"
	default:
		return "unknown"
	}
}

// PowerUp is a falling capsule.
type PowerUp struct {
	X, Y   float64 // center
	Width  float64
	Height float64
	VY     float64 // fall speed, positive is down
	Type   PowerUpType
}

// Bounds returns the capsule's collision box.
func (p *PowerUp) Bounds() core.AABB {
	return core.AABB{X: p.X - p.Width/2, Y: p.Y - p.Height/2, W: p.Width, H: p.Height}
}

// maybeDropPowerUp rolls for a drop at the center of a destroyed brick.
func (w *World) maybeDropPowerUp(b *Brick) {
	if w.rng.Float64() >= DropChance {
		return
	}
	c := b.Bounds().Center()
	w.powerUps = append(w.powerUps, &PowerUp{
		X:      c.X,
		Y:      c.Y,
		Width:  w.cfg.PowerUps.Width,
		Height: w.cfg.PowerUps.Height,
		VY:     w.cfg.PowerUps.FallSpeed,
		Type:   PowerUpType(w.rng.Intn(int(powerUpTypeCount))),
	})
}

// updatePowerUps moves capsules down, removes those that left the field
// and applies those that touched the paddle.
func (w *World) updatePowerUps(dt float64) {
	paddle := w.paddle.Bounds()
	kept := w.powerUps[:0]
	for _, p := range w.powerUps {
		p.Y += p.VY * dt
		if p.Y-p.Height/2 > w.cfg.Field.Height {
			continue
		}
		if p.Bounds().Intersects(paddle) {
			w.applyPowerUp(p.Type)
			w.emit(EventPowerCollected)
			continue
		}
		kept = append(kept, p)
	}
	for i := len(kept); i < len(w.powerUps); i++ {
		w.powerUps[i] = nil
	}
	w.powerUps = kept
}

// applyPowerUp activates the effect of a collected capsule.
func (w *World) applyPowerUp(t PowerUpType) {
	switch t {
	case PowerUpMultiBall:
		w.splitBalls()
	case PowerUpWiden:
		w.paddle.resize(w.paddle.BaseWidth*WidenFactor, w.cfg.Field)
		w.paddle.WidenTimer = WidenDuration
	case PowerUpSpeedBoost:
		for _, b := range w.balls {
			b.setSpeed(w.clampSpeed(b.Speed * SpeedBoostFactor))
		}
		w.speedBoostTimer = SpeedBoostDuration
	}
}

// splitBalls adds two free balls for every current ball, angled either
// side of its heading. A stuck source counts as heading straight up.
func (w *World) splitBalls() {
	sources := append([]*Ball(nil), w.balls...)
	for _, src := range sources {
		heading := src.Heading()
		speed := w.clampSpeed(src.Speed * MultiBallSpeedFactor)
		for _, side := range []float64{-1, 1} {
			b := &Ball{
				X:      src.X + side*MultiBallOffset,
				Y:      src.Y,
				Radius: src.Radius,
			}
			b.launch(heading+side*MultiBallSpread, speed)
			w.balls = append(w.balls, b)
		}
	}
	w.multiBallTimer = MultiBallDuration
}

// decayTimers counts down timed effects and reverts them on expiry.
func (w *World) decayTimers(dt float64) {
	if w.speedBoostTimer > 0 {
		w.speedBoostTimer -= dt
		if w.speedBoostTimer <= timerEpsilon {
			w.speedBoostTimer = 0
			// Every ball returns to base speed, including the
			// brick-hit gains it picked up while boosted.
			for _, b := range w.balls {
				b.setSpeed(w.cfg.Ball.BaseSpeed)
			}
		}
	}
	if w.multiBallTimer > 0 {
		w.multiBallTimer -= dt
		if w.multiBallTimer <= timerEpsilon {
			w.multiBallTimer = 0
		}
	}
}

// decayWiden counts down the paddle widen effect.
func (w *World) decayWiden(dt float64) {
	if w.paddle.WidenTimer <= 0 {
		return
	}
	w.paddle.WidenTimer -= dt
	if w.paddle.WidenTimer <= timerEpsilon {
		w.paddle.WidenTimer = 0
		w.paddle.resize(w.paddle.BaseWidth, w.cfg.Field)
	}
}
