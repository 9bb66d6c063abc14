package breakout

import "math"

// Snapshot is a read-only copy of the world for rendering and tests.
// Mutating it never affects the world.
type Snapshot struct {
	State      State
	Level      int
	LevelName  string
	LevelCount int
	Lives      int
	Score      int

	FieldWidth  float64
	FieldHeight float64

	Paddle   Paddle
	Balls    []Ball
	Bricks   []Brick // alive bricks only
	PowerUps []PowerUp

	BricksRemaining     int
	SpeedBoostRemaining float64
	MultiBallRemaining  float64

	RNGState uint64
}

// Snapshot captures the current world state.
func (w *World) Snapshot() Snapshot {
	snap := Snapshot{
		State:               w.state,
		Level:               w.level,
		LevelName:           w.levelTag,
		LevelCount:          LevelCount(),
		Lives:               w.lives,
		Score:               w.score,
		FieldWidth:          w.cfg.Field.Width,
		FieldHeight:         w.cfg.Field.Height,
		Paddle:              w.paddle,
		Balls:               make([]Ball, 0, len(w.balls)),
		PowerUps:            make([]PowerUp, 0, len(w.powerUps)),
		SpeedBoostRemaining: w.speedBoostTimer,
		MultiBallRemaining:  w.multiBallTimer,
		RNGState:            w.rng.State(),
	}

	for _, b := range w.balls {
		snap.Balls = append(snap.Balls, *b)
	}
	for _, p := range w.powerUps {
		snap.PowerUps = append(snap.PowerUps, *p)
	}
	for _, br := range w.bricks {
		if br.Alive {
			snap.Bricks = append(snap.Bricks, br)
		}
	}
	snap.BricksRemaining = len(snap.Bricks)

	return snap
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := uint64(snap.State)                 //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Level)           //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Lives)           //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Score)           //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.BricksRemaining) //#nosec G115 -- hash computation
	h = h*31 + math.Float64bits(snap.Paddle.X)
	h = h*31 + math.Float64bits(snap.Paddle.Width)
	h = h*31 + math.Float64bits(snap.SpeedBoostRemaining)
	h = h*31 + math.Float64bits(snap.MultiBallRemaining)

	for _, b := range snap.Balls {
		h = h*31 + math.Float64bits(b.X)
		h = h*31 + math.Float64bits(b.Y)
		h = h*31 + math.Float64bits(b.VX)
		h = h*31 + math.Float64bits(b.VY)
	}

	for _, p := range snap.PowerUps {
		h = h*31 + uint64(p.Type) //#nosec G115 -- hash computation
		h = h*31 + math.Float64bits(p.Y)
	}

	for _, br := range snap.Bricks {
		h = h*31 + math.Float64bits(br.X)
		h = h*31 + math.Float64bits(br.Y)
		h = h*31 + uint64(br.HP) //#nosec G115 -- hash computation
	}

	h = h*31 + snap.RNGState

	return h
}
