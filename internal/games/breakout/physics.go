package breakout

import (
	"math"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
)

// paddleClearance keeps a bounced ball just above the paddle surface.
const paddleClearance = 0.5

// Paddle is the player-controlled bar. Y is fixed for the whole game.
type Paddle struct {
	X, Y       float64 // top-left corner
	Width      float64
	Height     float64
	BaseWidth  float64
	WidenTimer float64 // seconds until Width reverts to BaseWidth
}

func newPaddle(cfg config.BreakoutConfig) Paddle {
	p := Paddle{
		Y:         cfg.Paddle.Y,
		Width:     cfg.Paddle.Width,
		Height:    cfg.Paddle.Height,
		BaseWidth: cfg.Paddle.Width,
	}
	p.X = (cfg.Field.Width - p.Width) / 2
	return p
}

// CenterX returns the horizontal center of the paddle.
func (p *Paddle) CenterX() float64 {
	return p.X + p.Width/2
}

// Bounds returns the paddle's collision box.
func (p *Paddle) Bounds() core.AABB {
	return core.AABB{X: p.X, Y: p.Y, W: p.Width, H: p.Height}
}

// Widened reports whether the widen effect is active.
func (p *Paddle) Widened() bool {
	return p.WidenTimer > 0
}

// clamp keeps the paddle inside [margin, fieldWidth-margin].
func (p *Paddle) clamp(field config.BreakoutField) {
	p.X = core.ClampF(p.X, field.Margin, field.Width-field.Margin-p.Width)
}

// resize changes the width around the current center. The width is capped
// at the space between the margins.
func (p *Paddle) resize(width float64, field config.BreakoutField) {
	width = math.Min(width, field.Width-2*field.Margin)
	cx := p.CenterX()
	p.Width = width
	p.X = cx - width/2
	p.clamp(field)
}

// Ball is a moving circle. Stuck balls ride on the paddle until launched.
type Ball struct {
	X, Y   float64 // center
	VX, VY float64
	Speed  float64 // target magnitude of (VX, VY)
	Radius float64
	Stuck  bool
}

// Pos returns the ball center.
func (b *Ball) Pos() core.Vec2 {
	return core.Vec2{X: b.X, Y: b.Y}
}

// Heading returns the direction of travel in radians.
// A ball without velocity is treated as heading straight up.
func (b *Ball) Heading() float64 {
	if b.VX == 0 && b.VY == 0 {
		return -math.Pi / 2
	}
	return math.Atan2(b.VY, b.VX)
}

// launch frees the ball at the given angle and speed.
func (b *Ball) launch(angle, speed float64) {
	b.Stuck = false
	b.Speed = speed
	v := core.FromAngle(angle, speed)
	b.VX, b.VY = v.X, v.Y
}

// setSpeed changes the target speed and rescales the velocity to match.
func (b *Ball) setSpeed(speed float64) {
	b.Speed = speed
	b.renormalize()
}

// renormalize rescales the velocity so its magnitude equals Speed.
func (b *Ball) renormalize() {
	if b.Stuck {
		return
	}
	v := core.Vec2{X: b.VX, Y: b.VY}.WithLen(b.Speed)
	if v == (core.Vec2{}) {
		v = core.FromAngle(-math.Pi/2, b.Speed)
	}
	b.VX, b.VY = v.X, v.Y
}

// attachTo locks the ball to the paddle's top-center.
func (b *Ball) attachTo(p *Paddle) {
	b.X = p.CenterX()
	b.Y = p.Y - b.Radius
}

func (b *Ball) integrate(dt float64) {
	b.X += b.VX * dt
	b.Y += b.VY * dt
}

// bounceWalls reflects the ball off the side and top walls.
// The bottom edge is open. Returns true when a wall was hit.
func (b *Ball) bounceWalls(width float64) bool {
	hit := false
	if b.X-b.Radius < 0 {
		b.X = b.Radius
		b.VX = math.Abs(b.VX)
		hit = true
	} else if b.X+b.Radius > width {
		b.X = width - b.Radius
		b.VX = -math.Abs(b.VX)
		hit = true
	}
	if b.Y-b.Radius < 0 {
		b.Y = b.Radius
		b.VY = math.Abs(b.VY)
		hit = true
	}
	return hit
}

// lost reports whether the ball has left the field through the bottom.
func (b *Ball) lost(fieldHeight, margin float64) bool {
	return !b.Stuck && b.Y > fieldHeight+b.Radius+margin
}

// bounceOffPaddle handles a descending ball touching the paddle.
// The outgoing angle depends on where the ball struck: center sends it
// straight up, edges deflect up to MaxBounceAngle from vertical.
func bounceOffPaddle(b *Ball, p *Paddle, minSpeed, maxSpeed float64) bool {
	if b.Stuck || b.VY <= 0 {
		return false
	}
	if !p.Bounds().CircleIntersects(b.Pos(), b.Radius) {
		return false
	}

	offset := core.ClampF((b.X-p.CenterX())/(p.Width/2), -1, 1)
	angle := -math.Pi/2 + offset*MaxBounceAngle
	speed := core.ClampF(b.Speed, minSpeed, maxSpeed)
	b.launch(angle, speed)
	b.Y = p.Y - b.Radius - paddleClearance
	return true
}

// bounceOffBox pushes the ball out of box along the axis of least
// penetration and reflects the matching velocity component.
func bounceOffBox(b *Ball, box core.AABB) {
	c := box.Center()
	overlapX := math.Min(b.X+b.Radius-box.X, box.Right()-(b.X-b.Radius))
	overlapY := math.Min(b.Y+b.Radius-box.Y, box.Bottom()-(b.Y-b.Radius))

	if overlapX < overlapY {
		if b.X < c.X {
			b.X -= overlapX
			b.VX = -math.Abs(b.VX)
		} else {
			b.X += overlapX
			b.VX = math.Abs(b.VX)
		}
		return
	}
	if b.Y < c.Y {
		b.Y -= overlapY
		b.VY = -math.Abs(b.VY)
	} else {
		b.Y += overlapY
		b.VY = math.Abs(b.VY)
	}
}
