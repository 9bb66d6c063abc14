package breakout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-breakout/internal/config"
)

func TestBuildLevelLayouts(t *testing.T) {
	field := config.DefaultBreakoutConfig().Field
	paddleY := config.DefaultBreakoutConfig().Paddle.Y

	for n := 1; n <= LevelCount(); n++ {
		lvl := BuildLevel(n, field)
		require.NotEmpty(t, lvl.Bricks, "level %d", n)
		assert.Equal(t, n, lvl.Number)
		assert.NotEmpty(t, lvl.Name)

		for i, b := range lvl.Bricks {
			assert.True(t, b.Alive)
			assert.GreaterOrEqual(t, b.HP, 1)
			assert.Equal(t, b.HP, b.MaxHP)
			assert.GreaterOrEqual(t, b.X, 0.0)
			assert.LessOrEqual(t, b.X+b.Width, field.Width+1e-9)
			assert.Less(t, b.Y+b.Height, paddleY, "bricks stay clear of the paddle")

			for j := i + 1; j < len(lvl.Bricks); j++ {
				assert.False(t, b.Bounds().Intersects(lvl.Bricks[j].Bounds()),
					"level %d bricks %d and %d overlap", n, i, j)
			}
		}
	}
}

func TestBuildLevelReturnsFreshBricks(t *testing.T) {
	field := config.DefaultBreakoutConfig().Field
	a := BuildLevel(1, field)
	a.Bricks[0].Alive = false
	a.Bricks[0].HP = 0

	b := BuildLevel(1, field)
	assert.True(t, b.Bricks[0].Alive)
	assert.Equal(t, 1, b.Bricks[0].HP)
}

func TestLevelFamilies(t *testing.T) {
	field := config.DefaultBreakoutConfig().Field

	classic := BuildLevel(1, field)
	assert.Len(t, classic.Bricks, 50)
	for _, b := range classic.Bricks {
		assert.Equal(t, 1, b.HP)
	}

	checker := BuildLevel(2, field)
	assert.Equal(t, 1, checker.Bricks[0].HP)
	assert.Equal(t, 2, checker.Bricks[1].HP)
	assert.NotEqual(t, checker.Bricks[0].Color, checker.Bricks[1].Color)

	bastion := BuildLevel(3, field)
	assert.Equal(t, 3, maxHP(bastion), "reinforced pockets")
	assert.Less(t, len(bastion.Bricks), 60, "column gaps")

	assert.NotEqual(t, hpPattern(BuildLevel(4, field)), hpPattern(BuildLevel(5, field)))
	assert.GreaterOrEqual(t, maxHP(BuildLevel(6, field)), maxHP(BuildLevel(4, field)))
}

func TestNormalizeLevel(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{1, 1},
		{6, 6},
		{7, 1},
		{12, 6},
		{0, 1},
		{-3, 1},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, NormalizeLevel(tc.in), "NormalizeLevel(%d)", tc.in)
	}
	assert.Equal(t, LevelName(1), LevelName(1+LevelCount()))
}

func TestBrickHit(t *testing.T) {
	b := Brick{HP: 2, MaxHP: 2, Alive: true}
	assert.False(t, b.hit())
	assert.Equal(t, 1, b.HP)
	assert.True(t, b.hit())
	assert.Equal(t, 0, b.HP)
	assert.False(t, b.Alive)
	assert.False(t, b.hit(), "dead bricks ignore hits")
	assert.Equal(t, 0, b.HP)
}

func maxHP(l Level) int {
	m := 0
	for _, b := range l.Bricks {
		m = max(m, b.HP)
	}
	return m
}

func hpPattern(l Level) []int {
	out := make([]int, len(l.Bricks))
	for i, b := range l.Bricks {
		out[i] = b.HP
	}
	return out
}
