// Package breakout implements a Breakout/Arkanoid-style brick breaker:
// a float-based World simulation plus the host adapter that renders it.
package breakout

import (
	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
)

// Brick layout in field units.
const (
	brickTop    = 60.0
	brickHeight = 22.0
	brickGap    = 6.0
	brickInset  = 30.0
)

// Brick is a single destructible block.
type Brick struct {
	X, Y   float64 // top-left corner
	Width  float64
	Height float64
	HP     int // remaining hit points
	MaxHP  int
	Color  core.Color
	Alive  bool
}

// Bounds returns the brick's collision box.
func (b *Brick) Bounds() core.AABB {
	return core.AABB{X: b.X, Y: b.Y, W: b.Width, H: b.Height}
}

// hit removes one hit point and reports whether the brick was destroyed.
func (b *Brick) hit() bool {
	if !b.Alive {
		return false
	}
	b.HP--
	if b.HP <= 0 {
		b.HP = 0
		b.Alive = false
		return true
	}
	return false
}

// Level is a generated brick layout.
type Level struct {
	Number int // 1-based
	ID     string
	Name   string
	Bricks []Brick
}

// levelDef describes a level either as an ASCII map or as a procedural family.
type levelDef struct {
	id   string
	name string
	rows []string // nil means procedural
}

// ASCII maps: '.' is empty, '1'-'9' is a brick with that many hit points.
var levelDefs = []levelDef{
	{id: "classic", name: "Classic", rows: []string{
		"1111111111",
		"1111111111",
		"1111111111",
		"1111111111",
		"1111111111",
	}},
	{id: "checker", name: "Checkerboard", rows: []string{
		"1212121212",
		"2121212121",
		"1212121212",
		"2121212121",
		"1212121212",
		"2121212121",
	}},
	{id: "bastion", name: "Bastion", rows: []string{
		"2222..2222",
		"1331..1331",
		"1331..1331",
		"1111..1111",
		"11.1111.11",
		"11.1111.11",
	}},
	{id: "gradient", name: "Gradient"},
	{id: "cascade", name: "Cascade"},
	{id: "summit", name: "Summit"},
}

// rowPalette colors single-hit bricks by row.
var rowPalette = []core.Color{
	core.ColorRed,
	core.ColorOrange,
	core.ColorYellow,
	core.ColorGreen,
	core.ColorCyan,
	core.ColorBlue,
	core.ColorMagenta,
	core.ColorBrightMagenta,
}

// LevelCount returns the number of distinct levels before the sequence wraps.
func LevelCount() int {
	return len(levelDefs)
}

// NormalizeLevel maps any level number into [1, LevelCount()].
// Numbers past the end wrap around; numbers below one select the first level.
func NormalizeLevel(n int) int {
	if n < 1 {
		return 1
	}
	return (n-1)%LevelCount() + 1
}

// LevelName returns the display name of level n.
func LevelName(n int) string {
	return levelDefs[NormalizeLevel(n)-1].name
}

// BuildLevel generates level n for a field of the given width.
// Every call returns fresh bricks, so no two worlds share a layout.
func BuildLevel(n int, field config.BreakoutField) Level {
	n = NormalizeLevel(n)
	def := levelDefs[n-1]

	var grid [][]int
	if def.rows != nil {
		grid = parseGrid(def.rows)
	} else {
		grid = proceduralGrid(n)
	}

	return Level{
		Number: n,
		ID:     def.id,
		Name:   def.name,
		Bricks: layoutBricks(grid, field.Width),
	}
}

// parseGrid converts an ASCII map into hit points per cell.
func parseGrid(lines []string) [][]int {
	grid := make([][]int, len(lines))
	for row, line := range lines {
		grid[row] = make([]int, len(line))
		for col := range len(line) {
			ch := line[col]
			if ch >= '1' && ch <= '9' {
				grid[row][col] = int(ch - '0')
			}
		}
	}
	return grid
}

// proceduralGrid builds the later levels. Hit points grow with row,
// column and level number; a diagonal pattern of gaps keeps them open.
func proceduralGrid(level int) [][]int {
	const cols = 10
	rows := core.Min(5+(level-3), 8)

	grid := make([][]int, rows)
	for row := range rows {
		grid[row] = make([]int, cols)
		for col := range cols {
			if (row+2*col+level)%7 == 0 {
				continue
			}
			grid[row][col] = 1 + (row+col+level)%(2+level/3)
		}
	}
	return grid
}

// layoutBricks places the grid cells as evenly spaced bricks across the field.
func layoutBricks(grid [][]int, fieldWidth float64) []Brick {
	cols := 0
	for _, row := range grid {
		cols = core.Max(cols, len(row))
	}
	if cols == 0 {
		return nil
	}

	width := (fieldWidth - 2*brickInset - float64(cols-1)*brickGap) / float64(cols)
	var bricks []Brick
	for row, cells := range grid {
		for col, hp := range cells {
			if hp <= 0 {
				continue
			}
			bricks = append(bricks, Brick{
				X:      brickInset + float64(col)*(width+brickGap),
				Y:      brickTop + float64(row)*(brickHeight+brickGap),
				Width:  width,
				Height: brickHeight,
				HP:     hp,
				MaxHP:  hp,
				Color:  brickColor(row, hp),
				Alive:  true,
			})
		}
	}
	return bricks
}

func brickColor(row, hp int) core.Color {
	switch {
	case hp >= 3:
		return core.ColorGray
	case hp == 2:
		return core.ColorBrightWhite
	default:
		return rowPalette[row%len(rowPalette)]
	}
}
