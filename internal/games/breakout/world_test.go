package breakout

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
)

const frame = 1.0 / 60

func newTestWorld(t *testing.T, seed int64) (*World, *core.EventBuffer) {
	t.Helper()
	events := &core.EventBuffer{}
	return NewWorld(config.DefaultBreakoutConfig(), seed, events), events
}

// freeBall replaces all balls with a single moving ball.
func freeBall(w *World, x, y, vx, vy float64) *Ball {
	b := &Ball{X: x, Y: y, VX: vx, VY: vy, Speed: math.Hypot(vx, vy), Radius: w.cfg.Ball.Radius}
	w.balls = []*Ball{b}
	return b
}

func singleBrick(w *World, hp int) *Brick {
	w.bricks = []Brick{{X: 380, Y: 100, Width: 40, Height: 20, HP: hp, MaxHP: hp, Alive: true}}
	return &w.bricks[0]
}

func TestNewWorldIsReady(t *testing.T) {
	w, _ := newTestWorld(t, 1)

	assert.Equal(t, StateReady, w.State())
	assert.Equal(t, 1, w.Level())
	assert.Equal(t, 3, w.Lives())
	assert.Equal(t, 0, w.Score())
	assert.Equal(t, 50, w.BricksRemaining())

	require.Len(t, w.balls, 1)
	b := w.balls[0]
	assert.True(t, b.Stuck)
	assert.InDelta(t, w.paddle.CenterX(), b.X, 1e-9)
	assert.InDelta(t, w.paddle.Y-b.Radius, b.Y, 1e-9)
}

func TestUpdateOnlyRunsWhilePlaying(t *testing.T) {
	w, _ := newTestWorld(t, 1)
	x := w.paddle.X

	w.Update(frame, Input{Right: true})
	assert.Equal(t, x, w.paddle.X, "READY must not simulate")

	w.Start()
	w.TogglePause()
	require.Equal(t, StatePaused, w.State())
	w.Update(frame, Input{Right: true})
	assert.Equal(t, x, w.paddle.X, "PAUSED must not simulate")

	w.TogglePause()
	require.Equal(t, StatePlaying, w.State())
	w.Update(frame, Input{Right: true})
	assert.Greater(t, w.paddle.X, x)
}

func TestTogglePauseIgnoredOutsidePlay(t *testing.T) {
	w, _ := newTestWorld(t, 1)
	w.TogglePause()
	assert.Equal(t, StateReady, w.State())

	w.Start()
	w.lives = 1
	freeBall(w, 400, 610, 0, 360)
	w.Update(frame, Input{})
	require.Equal(t, StateGameOver, w.State())

	w.TogglePause()
	assert.Equal(t, StateGameOver, w.State())
}

func TestStuckBallFollowsPaddleUntilLaunch(t *testing.T) {
	w, _ := newTestWorld(t, 3)
	w.Start()

	for range 10 {
		w.Update(frame, Input{Right: true})
	}
	b := w.balls[0]
	assert.True(t, b.Stuck)
	assert.InDelta(t, w.paddle.CenterX(), b.X, 1e-9)

	w.Update(frame, Input{Launch: true})
	assert.False(t, b.Stuck)
	assert.Less(t, b.VY, 0.0)
	assert.InDelta(t, w.cfg.Ball.BaseSpeed, math.Hypot(b.VX, b.VY), 1e-9)

	deviation := math.Atan2(b.VX, -b.VY)
	assert.LessOrEqual(t, math.Abs(deviation), LaunchJitter+1e-12)
}

func TestPaddleClampedToMargins(t *testing.T) {
	w, _ := newTestWorld(t, 1)
	w.Start()

	for range 200 {
		w.Update(frame, Input{Left: true})
	}
	assert.Equal(t, w.cfg.Field.Margin, w.paddle.X)

	for range 200 {
		w.Update(frame, Input{Right: true})
	}
	assert.Equal(t, w.cfg.Field.Width-w.cfg.Field.Margin-w.paddle.Width, w.paddle.X)
}

func TestPointerEasesPaddleCenter(t *testing.T) {
	w, _ := newTestWorld(t, 1)
	w.Start()

	for range 60 {
		w.Update(frame, Input{PointerActive: true, PointerX: 650})
	}
	assert.InDelta(t, 650, w.paddle.CenterX(), 0.5)

	// Pointer beats keys when both are present.
	w.Update(frame, Input{PointerActive: true, PointerX: 650, Left: true})
	assert.InDelta(t, 650, w.paddle.CenterX(), 0.5)
}

func TestFrameDeltaIsClamped(t *testing.T) {
	w, _ := newTestWorld(t, 1)
	w.Start()
	x := w.paddle.X

	w.Update(1.0, Input{Right: true})
	assert.InDelta(t, x+w.cfg.Paddle.Speed*0.05, w.paddle.X, 1e-9)

	x = w.paddle.X
	w.Update(-1, Input{Right: true})
	w.Update(math.NaN(), Input{Right: true})
	assert.Equal(t, x, w.paddle.X)
}

func TestWallReflection(t *testing.T) {
	w, events := newTestWorld(t, 1)
	w.Start()

	b := freeBall(w, 10, 300, -300, -100)
	w.Update(frame, Input{})
	assert.GreaterOrEqual(t, b.X, b.Radius)
	assert.Greater(t, b.VX, 0.0)
	assert.Contains(t, events.Drain(), EventHit)

	b = freeBall(w, 790, 300, 300, 100)
	w.Update(frame, Input{})
	assert.LessOrEqual(t, b.X, w.cfg.Field.Width-b.Radius)
	assert.Less(t, b.VX, 0.0)

	b = freeBall(w, 400, 8, 50, -300)
	w.Update(frame, Input{})
	assert.GreaterOrEqual(t, b.Y, b.Radius)
	assert.Greater(t, b.VY, 0.0)
}

func TestPaddleBounceAngle(t *testing.T) {
	tests := []struct {
		name   string
		offset float64 // fraction of half width from center
		want   float64 // deviation from vertical, radians
	}{
		{"center goes straight up", 0, 0},
		{"right edge", 1, MaxBounceAngle},
		{"left edge", -1, -MaxBounceAngle},
		{"halfway right", 0.5, MaxBounceAngle / 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w, events := newTestWorld(t, 1)
			w.Start()
			p := &w.paddle
			b := freeBall(w, p.CenterX()+tc.offset*p.Width/2, p.Y-10, 0, 360)

			w.Update(frame, Input{})

			require.Less(t, b.VY, 0.0)
			assert.InDelta(t, tc.want, math.Atan2(b.VX, -b.VY), 1e-9)
			assert.InDelta(t, 360, math.Hypot(b.VX, b.VY), 1e-9)
			assert.InDelta(t, p.Y-b.Radius-paddleClearance, b.Y, 1e-9)
			assert.Equal(t, []core.Event{EventHit}, events.Drain())
		})
	}
}

func TestAscendingBallPassesThroughPaddle(t *testing.T) {
	w, _ := newTestWorld(t, 1)
	w.Start()
	p := &w.paddle
	b := freeBall(w, p.CenterX(), p.Y+5, 0, -360)

	w.Update(frame, Input{})
	assert.InDelta(t, 0, b.VX, 1e-9)
	assert.InDelta(t, -360, b.VY, 1e-9)
}

func TestBrickHitFromBelow(t *testing.T) {
	w, events := newTestWorld(t, 1)
	w.Start()
	br := singleBrick(w, 1)
	b := freeBall(w, 400, 130, 0, -360)

	w.Update(frame, Input{})

	assert.False(t, br.Alive)
	assert.Equal(t, 0, br.HP)
	assert.Equal(t, BrickPoints, w.Score())
	assert.Greater(t, b.VY, 0.0, "vertical component reflected")
	assert.GreaterOrEqual(t, b.Y-b.Radius, br.Y+br.Height-1e-9, "pushed out of the brick")
	assert.InDelta(t, 360*BrickSpeedUp, b.Speed, 1e-9)
	assert.Contains(t, events.Drain(), EventBrickBreak)
	assert.Equal(t, StateLevelComplete, w.State())
}

func TestBrickHitFromSide(t *testing.T) {
	w, _ := newTestWorld(t, 1)
	w.Start()
	singleBrick(w, 5)
	b := freeBall(w, 368, 110, 360, 0)

	w.Update(frame, Input{})

	assert.Less(t, b.VX, 0.0, "horizontal component reflected")
	assert.LessOrEqual(t, b.X+b.Radius, 380+1e-9)
}

func TestDurableBrickLosesHitPoint(t *testing.T) {
	w, events := newTestWorld(t, 1)
	w.Start()
	br := singleBrick(w, 2)
	freeBall(w, 400, 130, 0, -360)

	w.Update(frame, Input{})

	assert.True(t, br.Alive)
	assert.Equal(t, 1, br.HP)
	assert.Equal(t, 0, w.Score())
	assert.Equal(t, []core.Event{EventHit}, events.Drain())
	assert.Equal(t, StatePlaying, w.State())
}

func TestOneBrickPerBallPerFrame(t *testing.T) {
	w, _ := newTestWorld(t, 1)
	w.Start()
	w.bricks = []Brick{
		{X: 380, Y: 100, Width: 40, Height: 20, HP: 1, Alive: true},
		{X: 380, Y: 100, Width: 40, Height: 20, HP: 1, Alive: true},
	}
	freeBall(w, 400, 130, 0, -360)

	w.Update(frame, Input{})

	assert.False(t, w.bricks[0].Alive)
	assert.True(t, w.bricks[1].Alive)
	assert.Equal(t, 1, w.BricksRemaining())
}

func TestLosingBallCostsLife(t *testing.T) {
	w, _ := newTestWorld(t, 1)
	w.Start()
	freeBall(w, 400, 610, 0, 360)

	w.Update(frame, Input{})

	assert.Equal(t, 2, w.Lives())
	assert.Equal(t, StateReady, w.State())
	require.Len(t, w.balls, 1)
	assert.True(t, w.balls[0].Stuck)
}

func TestLosingLastLifeEndsGame(t *testing.T) {
	w, _ := newTestWorld(t, 1)
	w.Start()
	w.lives = 1
	freeBall(w, 400, 610, 0, 360)

	w.Update(frame, Input{})

	assert.Equal(t, 0, w.Lives())
	assert.Equal(t, StateGameOver, w.State())

	w.Start()
	assert.Equal(t, StateGameOver, w.State(), "Start does nothing after game over")
}

func TestBallNotLostWhileInsideMargin(t *testing.T) {
	w, _ := newTestWorld(t, 1)
	w.Start()
	// Bottom edge plus radius plus margin is 611; the ball stops short of it.
	freeBall(w, 400, 600, 0, 360)

	w.Update(frame, Input{})
	assert.Equal(t, 3, w.Lives())
	assert.Len(t, w.balls, 1)
}

func TestClearedBoardWinsOverLostBall(t *testing.T) {
	w, _ := newTestWorld(t, 1)
	w.Start()
	w.lives = 1
	for i := range w.bricks {
		w.bricks[i].Alive = false
	}
	freeBall(w, 400, 610, 0, 360)

	w.Update(frame, Input{})
	assert.Equal(t, StateLevelComplete, w.State())
	assert.Equal(t, 1, w.Lives(), "clearing the board costs no life")

	w.Start()
	assert.Equal(t, StatePlaying, w.State())
	assert.Equal(t, 2, w.Level())
	assert.Equal(t, 1, w.Lives())
	require.Len(t, w.balls, 1)
	assert.True(t, w.balls[0].Stuck)
}

func TestStartAdvancesLevel(t *testing.T) {
	w, _ := newTestWorld(t, 1)
	w.Start()
	singleBrick(w, 1)
	freeBall(w, 400, 130, 0, -360)
	w.Update(frame, Input{})
	require.Equal(t, StateLevelComplete, w.State())

	w.Start()

	assert.Equal(t, StatePlaying, w.State())
	assert.Equal(t, 2, w.Level())
	assert.Equal(t, 3, w.Lives())
	assert.Equal(t, BrickPoints, w.Score())
	assert.Equal(t, len(BuildLevel(2, w.cfg.Field).Bricks), w.BricksRemaining())
	require.Len(t, w.balls, 1)
	assert.True(t, w.balls[0].Stuck)
	assert.Empty(t, w.powerUps)
	assert.Equal(t, w.cfg.Paddle.Width, w.paddle.Width)
}

func TestLevelSequenceWraps(t *testing.T) {
	w, _ := newTestWorld(t, 1)
	w.ResetAt(LevelCount())
	w.Start()
	for i := range w.bricks {
		w.bricks[i].Alive = false
	}
	w.Update(frame, Input{})
	require.Equal(t, StateLevelComplete, w.State())

	w.Start()
	assert.Equal(t, 1, w.Level())
}

func TestResetDiscardsProgress(t *testing.T) {
	w, _ := newTestWorld(t, 1)
	w.Start()
	w.score = 1200
	w.lives = 1
	w.speedBoostTimer = 3

	w.Reset()

	assert.Equal(t, StateReady, w.State())
	assert.Equal(t, 0, w.Score())
	assert.Equal(t, 3, w.Lives())
	assert.Equal(t, 1, w.Level())
	assert.Zero(t, w.SpeedBoostRemaining())
}

func TestWidenPowerUpExpiresAfterTwelveSeconds(t *testing.T) {
	w, _ := newTestWorld(t, 1)
	w.Start()
	w.applyPowerUp(PowerUpWiden)

	wide := w.cfg.Paddle.Width * WidenFactor
	assert.InDelta(t, wide, w.paddle.Width, 1e-9)

	for range 239 {
		w.Update(0.05, Input{})
	}
	assert.InDelta(t, wide, w.paddle.Width, 1e-9)

	w.Update(0.05, Input{})
	assert.InDelta(t, w.cfg.Paddle.Width, w.paddle.Width, 1e-9)
	assert.GreaterOrEqual(t, w.paddle.X, w.cfg.Field.Margin)
}

func TestWidenNearWallStaysInside(t *testing.T) {
	w, _ := newTestWorld(t, 1)
	w.Start()
	for range 200 {
		w.Update(frame, Input{Right: true})
	}
	w.applyPowerUp(PowerUpWiden)
	assert.InDelta(t, w.cfg.Field.Width-w.cfg.Field.Margin-w.paddle.Width, w.paddle.X, 1e-9)
}

func TestSpeedBoost(t *testing.T) {
	w, _ := newTestWorld(t, 1)
	w.Start()
	w.applyPowerUp(PowerUpSpeedBoost)

	assert.InDelta(t, w.cfg.Ball.BaseSpeed*SpeedBoostFactor, w.balls[0].Speed, 1e-9)
	assert.InDelta(t, SpeedBoostDuration, w.SpeedBoostRemaining(), 1e-9)

	for range 199 {
		w.Update(0.05, Input{})
	}
	assert.Greater(t, w.SpeedBoostRemaining(), 0.0)

	w.Update(0.05, Input{})
	assert.Zero(t, w.SpeedBoostRemaining())
	assert.InDelta(t, w.cfg.Ball.BaseSpeed, w.balls[0].Speed, 1e-9)
}

func TestSpeedBoostAppliesToLaunch(t *testing.T) {
	w, _ := newTestWorld(t, 1)
	w.Start()
	w.speedBoostTimer = SpeedBoostDuration

	w.Update(frame, Input{Launch: true})
	b := w.balls[0]
	assert.InDelta(t, w.cfg.Ball.BaseSpeed*SpeedBoostFactor, math.Hypot(b.VX, b.VY), 1e-9)
}

func TestMultiBallSplitsFreeBall(t *testing.T) {
	w, _ := newTestWorld(t, 1)
	w.Start()
	src := freeBall(w, 400, 300, 0, -360)
	heading := src.Heading()

	w.applyPowerUp(PowerUpMultiBall)

	require.Len(t, w.balls, 3)
	assert.InDelta(t, MultiBallDuration, w.MultiBallRemaining(), 1e-9)
	want := 360 * MultiBallSpeedFactor
	for i, side := range []float64{-1, 1} {
		b := w.balls[i+1]
		assert.False(t, b.Stuck)
		assert.InDelta(t, 400+side*MultiBallOffset, b.X, 1e-9)
		assert.InDelta(t, want, math.Hypot(b.VX, b.VY), 1e-9)
		assert.InDelta(t, heading+side*MultiBallSpread, b.Heading(), 1e-9)
	}
}

func TestMultiBallFromStuckBall(t *testing.T) {
	w, _ := newTestWorld(t, 1)
	w.Start()

	w.applyPowerUp(PowerUpMultiBall)

	require.Len(t, w.balls, 3)
	assert.True(t, w.balls[0].Stuck)
	for _, b := range w.balls[1:] {
		assert.False(t, b.Stuck)
		assert.Less(t, b.VY, 0.0)
	}
	assert.InDelta(t, -math.Pi/2-MultiBallSpread, w.balls[1].Heading(), 1e-9)
}

func TestPowerUpCollectedByPaddle(t *testing.T) {
	w, events := newTestWorld(t, 1)
	w.Start()
	p := &w.paddle
	w.powerUps = []*PowerUp{{
		X: p.CenterX(), Y: p.Y - 8, Width: 28, Height: 14, VY: 150, Type: PowerUpWiden,
	}}

	w.Update(frame, Input{})

	assert.Empty(t, w.powerUps)
	assert.True(t, w.paddle.Widened())
	assert.Contains(t, events.Drain(), EventPowerCollected)
}

func TestPowerUpFallsOffField(t *testing.T) {
	w, _ := newTestWorld(t, 1)
	w.Start()
	w.powerUps = []*PowerUp{{X: 20, Y: 606, Width: 28, Height: 14, VY: 150, Type: PowerUpMultiBall}}

	w.Update(frame, Input{})

	assert.Empty(t, w.powerUps)
	assert.Len(t, w.balls, 1)
}

func TestDropChance(t *testing.T) {
	w, _ := newTestWorld(t, 99)
	br := &Brick{X: 100, Y: 100, Width: 40, Height: 20}
	seen := map[PowerUpType]bool{}

	const n = 5000
	for range n {
		w.maybeDropPowerUp(br)
	}
	for _, p := range w.powerUps {
		seen[p.Type] = true
		assert.InDelta(t, 120, p.X, 1e-9)
		assert.InDelta(t, 110, p.Y, 1e-9)
	}

	ratio := float64(len(w.powerUps)) / n
	assert.InDelta(t, DropChance, ratio, 0.03)
	assert.Len(t, seen, int(powerUpTypeCount))
}

func TestDeterminism(t *testing.T) {
	run := func() (uint64, []core.Event) {
		w, events := newTestWorld(t, 12345)
		var all []core.Event
		w.Start()
		for i := range 3000 {
			in := Input{Launch: i%120 == 0, Left: i%7 < 3, Right: i%11 > 6}
			if w.State() == StateReady || w.State() == StateLevelComplete {
				w.Start()
			}
			w.Update(frame, in)
			all = append(all, events.Drain()...)
		}
		snap := w.Snapshot()
		return snap.Hash(), all
	}

	h1, e1 := run()
	h2, e2 := run()
	assert.Equal(t, h1, h2)
	assert.Equal(t, e1, e2)
}

func TestInvariantsHoldDuringPlay(t *testing.T) {
	for _, seed := range []int64{1, 2, 3, 42, 2024} {
		w, _ := newTestWorld(t, seed)
		keys := NewSimpleRNG(seed + 1)
		lastScore, lastLives, lastLevel := 0, w.Lives(), w.Level()

		for range 4000 {
			switch w.State() {
			case StateReady, StateLevelComplete:
				w.Start()
			case StateGameOver:
				w.Reset()
				lastScore, lastLives, lastLevel = 0, w.Lives(), w.Level()
			}

			in := Input{Launch: true}
			switch keys.Intn(3) {
			case 0:
				in.Left = true
			case 1:
				in.Right = true
			}
			w.Update(frame, in)

			cfg := w.cfg
			require.GreaterOrEqual(t, w.paddle.X, cfg.Field.Margin-1e-9)
			require.LessOrEqual(t, w.paddle.X, cfg.Field.Width-cfg.Field.Margin-w.paddle.Width+1e-9)

			for _, b := range w.balls {
				if b.Stuck {
					continue
				}
				speed := math.Hypot(b.VX, b.VY)
				require.GreaterOrEqual(t, speed, cfg.Ball.MinSpeed-1e-6)
				require.LessOrEqual(t, speed, cfg.Ball.MaxSpeed+1e-6)
				require.InDelta(t, b.Speed, speed, 1e-6)
			}

			for _, br := range w.bricks {
				require.GreaterOrEqual(t, br.HP, 0)
				require.Equal(t, br.HP > 0, br.Alive)
			}

			require.Zero(t, w.Score()%BrickPoints)
			require.GreaterOrEqual(t, w.Score(), lastScore)
			if w.Level() == lastLevel {
				require.LessOrEqual(t, w.Lives(), lastLives)
			}
			require.GreaterOrEqual(t, w.Lives(), 0)
			lastScore, lastLives, lastLevel = w.Score(), w.Lives(), w.Level()
		}
	}
}

// steer puts the paddle under the lowest descending ball so that it
// bounces toward the last brick still standing.
func steer(w *World) {
	p := &w.paddle
	var target *Ball
	for _, b := range w.balls {
		if b.Stuck || b.VY <= 0 || b.Y > p.Y+p.Height {
			continue
		}
		if target == nil || b.Y > target.Y {
			target = b
		}
	}
	if target == nil {
		return
	}

	var aim *Brick
	for i := len(w.bricks) - 1; i >= 0; i-- {
		if w.bricks[i].Alive {
			aim = &w.bricks[i]
			break
		}
	}
	if aim == nil {
		return
	}

	x := target.X + target.VX*frame
	c := aim.Bounds().Center()
	angle := math.Atan2(c.X-x, p.Y-c.Y)
	offset := core.ClampF(angle/MaxBounceAngle, -0.95, 0.95)
	p.X = x - p.Width/2 - offset*p.Width/2
}

func TestClearLevelOneWithoutLosingBall(t *testing.T) {
	w, _ := newTestWorld(t, 7)
	total := w.BricksRemaining()

	w.Start()
	w.Update(frame, Input{Launch: true})
	for i := 0; i < 400000 && w.State() == StatePlaying; i++ {
		steer(w)
		w.Update(frame, Input{})
	}

	require.Equal(t, StateLevelComplete, w.State())
	assert.Equal(t, 3, w.Lives())
	assert.Equal(t, total*BrickPoints, w.Score())
}
