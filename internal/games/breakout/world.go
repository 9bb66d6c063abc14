package breakout

import (
	"math"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
)

// Scoring and ball rules.
const (
	BrickPoints    = 100
	BrickSpeedUp   = 1.02        // ball speed multiplier per brick hit
	LaunchJitter   = 0.35        // max random deviation from vertical at launch, radians
	MaxBounceAngle = math.Pi / 3 // max deflection from vertical off the paddle edge
)

// Events emitted by the world.
const (
	EventHit            core.Event = "hit"
	EventBrickBreak     core.Event = "brick-break"
	EventPowerCollected core.Event = "power-collected"
)

// State is the world's lifecycle state.
type State int

const (
	StateReady         State = iota // Ball on paddle, waiting for start
	StatePlaying                    // Simulation running
	StatePaused                     // Frozen by the player
	StateLevelComplete              // All bricks cleared, waiting for next level
	StateGameOver                   // No lives left
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateReady:
		return "READY"
	case StatePlaying:
		return "PLAYING"
	case StatePaused:
		return "PAUSED"
	case StateLevelComplete:
		return "LEVEL_COMPLETE"
	case StateGameOver:
		return "GAME_OVER"
	default:
		return "UNKNOWN"
	}
}

// Input is the per-frame player input in field units.
type Input struct {
	Left, Right   bool
	Launch        bool
	PointerActive bool
	PointerX      float64 // field x the paddle center should follow
}

// World owns the whole simulation: paddle, balls, bricks, power-ups,
// timers and scoring. It is not safe for concurrent use.
type World struct {
	cfg  config.BreakoutConfig
	rng  *SimpleRNG
	sink core.EventSink

	state    State
	level    int
	lives    int
	score    int
	levelTag string

	paddle   Paddle
	balls    []*Ball
	bricks   []Brick
	powerUps []*PowerUp

	speedBoostTimer float64
	multiBallTimer  float64
}

// NewWorld creates a world in READY state at level one.
// A nil sink discards events.
func NewWorld(cfg config.BreakoutConfig, seed int64, sink core.EventSink) *World {
	if sink == nil {
		sink = core.Discard
	}
	w := &World{
		cfg:  cfg,
		rng:  NewSimpleRNG(seed),
		sink: sink,
	}
	w.Reset()
	return w
}

// Reset discards all progress and returns to READY at level one.
func (w *World) Reset() {
	w.ResetAt(1)
}

// ResetAt discards all progress and returns to READY at level n.
func (w *World) ResetAt(n int) {
	w.score = 0
	w.lives = w.cfg.Gameplay.Lives
	w.loadLevel(n)
	w.state = StateReady
}

// Start begins play from READY, or advances to the next level from
// LEVEL_COMPLETE. It does nothing in other states.
func (w *World) Start() {
	switch w.state {
	case StateReady:
		w.state = StatePlaying
	case StateLevelComplete:
		w.loadLevel(w.level + 1)
		w.state = StatePlaying
	}
}

// TogglePause switches between PLAYING and PAUSED.
func (w *World) TogglePause() {
	switch w.state {
	case StatePlaying:
		w.state = StatePaused
	case StatePaused:
		w.state = StatePlaying
	}
}

// Update advances the simulation by dt seconds. It only runs while
// PLAYING; dt is clamped to the configured maximum frame delta.
func (w *World) Update(dt float64, in Input) {
	if w.state != StatePlaying {
		return
	}
	if !(dt > 0) {
		return
	}
	dt = math.Min(dt, w.cfg.Gameplay.MaxFrameDelta.Seconds())

	w.updatePaddle(dt, in)
	w.updateBalls(dt, in.Launch)
	w.collidePaddle()
	w.collideBricks()
	w.updatePowerUps(dt)
	w.sweepLostBalls()
	w.checkProgress()
	w.decayTimers(dt)
}

// loadLevel replaces the board with a fresh copy of level n and resets
// the paddle, balls, power-ups and timers. Score and lives carry over.
func (w *World) loadLevel(n int) {
	lvl := BuildLevel(n, w.cfg.Field)
	w.level = lvl.Number
	w.levelTag = lvl.Name
	w.bricks = lvl.Bricks
	w.powerUps = nil
	w.speedBoostTimer = 0
	w.multiBallTimer = 0
	w.paddle = newPaddle(w.cfg)
	w.balls = []*Ball{w.newStuckBall()}
}

func (w *World) newStuckBall() *Ball {
	b := &Ball{
		Radius: w.cfg.Ball.Radius,
		Speed:  w.cfg.Ball.BaseSpeed,
		Stuck:  true,
	}
	b.attachTo(&w.paddle)
	return b
}

func (w *World) emit(e core.Event) {
	w.sink.Emit(e)
}

func (w *World) clampSpeed(s float64) float64 {
	return core.ClampF(s, w.cfg.Ball.MinSpeed, w.cfg.Ball.MaxSpeed)
}

// launchSpeed is the speed a released ball starts with.
func (w *World) launchSpeed() float64 {
	if w.speedBoostTimer > 0 {
		return w.clampSpeed(w.cfg.Ball.BaseSpeed * SpeedBoostFactor)
	}
	return w.cfg.Ball.BaseSpeed
}

// updatePaddle follows the pointer if active, otherwise the keys.
func (w *World) updatePaddle(dt float64, in Input) {
	p := &w.paddle
	switch {
	case in.PointerActive:
		target := in.PointerX - p.Width/2
		ease := math.Min(1, w.cfg.Paddle.Easing*dt)
		p.X += (target - p.X) * ease
	case in.Left && !in.Right:
		p.X -= w.cfg.Paddle.Speed * dt
	case in.Right && !in.Left:
		p.X += w.cfg.Paddle.Speed * dt
	}
	p.clamp(w.cfg.Field)
	w.decayWiden(dt)
}

// updateBalls keeps stuck balls on the paddle (releasing them on launch)
// and moves free balls, bouncing them off the walls.
func (w *World) updateBalls(dt float64, launch bool) {
	for _, b := range w.balls {
		if b.Stuck {
			b.attachTo(&w.paddle)
			if launch {
				jitter := w.rng.Range(-LaunchJitter, LaunchJitter)
				b.launch(-math.Pi/2+jitter, w.launchSpeed())
			}
			continue
		}
		b.integrate(dt)
		if b.bounceWalls(w.cfg.Field.Width) {
			w.emit(EventHit)
		}
	}
}

func (w *World) collidePaddle() {
	for _, b := range w.balls {
		if bounceOffPaddle(b, &w.paddle, w.cfg.Ball.MinSpeed, w.cfg.Ball.MaxSpeed) {
			w.emit(EventHit)
		}
	}
}

// collideBricks resolves at most one brick per ball per frame, taking
// the first overlapping brick in layout order.
func (w *World) collideBricks() {
	for _, b := range w.balls {
		if b.Stuck {
			continue
		}
		for i := range w.bricks {
			br := &w.bricks[i]
			if !br.Alive || !br.Bounds().CircleIntersects(b.Pos(), b.Radius) {
				continue
			}
			bounceOffBox(b, br.Bounds())
			b.setSpeed(w.clampSpeed(b.Speed * BrickSpeedUp))
			if br.hit() {
				w.score += BrickPoints
				w.emit(EventBrickBreak)
				w.maybeDropPowerUp(br)
			} else {
				w.emit(EventHit)
			}
			break
		}
	}
}

// sweepLostBalls drops balls that fell below the field.
func (w *World) sweepLostBalls() {
	kept := w.balls[:0]
	for _, b := range w.balls {
		if b.lost(w.cfg.Field.Height, w.cfg.Ball.LossMargin) {
			continue
		}
		kept = append(kept, b)
	}
	for i := len(kept); i < len(w.balls); i++ {
		w.balls[i] = nil
	}
	w.balls = kept
}

// checkProgress handles an empty ball list and a cleared board.
// A cleared board wins over a lost ball in the same frame.
func (w *World) checkProgress() {
	if w.BricksRemaining() == 0 {
		w.state = StateLevelComplete
		return
	}
	if len(w.balls) == 0 {
		w.lives = core.Max(w.lives-1, 0)
		if w.lives == 0 {
			w.state = StateGameOver
		} else {
			w.balls = []*Ball{w.newStuckBall()}
			w.state = StateReady
		}
	}
}

// State returns the current lifecycle state.
func (w *World) State() State { return w.state }

// Level returns the current level number (1-based).
func (w *World) Level() int { return w.level }

// LevelName returns the display name of the current level.
func (w *World) LevelName() string { return w.levelTag }

// Lives returns the remaining lives.
func (w *World) Lives() int { return w.lives }

// Score returns the current score.
func (w *World) Score() int { return w.score }

// Config returns the configuration the world was built with.
func (w *World) Config() config.BreakoutConfig { return w.cfg }

// BricksRemaining returns the number of bricks still alive.
func (w *World) BricksRemaining() int {
	n := 0
	for i := range w.bricks {
		if w.bricks[i].Alive {
			n++
		}
	}
	return n
}

// SpeedBoostRemaining returns the seconds left on the speed boost.
func (w *World) SpeedBoostRemaining() float64 { return w.speedBoostTimer }

// MultiBallRemaining returns the seconds left on the multi-ball marker.
func (w *World) MultiBallRemaining() float64 { return w.multiBallTimer }
