package breakout

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
)

// Visual characters for rendering
const (
	PaddleChar  = '='
	BallChar    = '●'
	BorderHoriz = '─'
)

// brickGlyphs by remaining hit points.
var brickGlyphs = []rune{'█', '▓', '▒'}

// Playfield rows start below the two HUD rows and end above the hint row.
const (
	hudRows  = 2
	hintRows = 1
)

// Option configures a Game.
type Option func(*Game)

// WithConfig uses cfg instead of loading configuration from disk.
func WithConfig(cfg config.BreakoutConfig) Option {
	return func(g *Game) {
		g.cfg = cfg
		g.cfgSet = true
	}
}

// WithConfigPath loads configuration from path on Reset.
func WithConfigPath(path string) Option {
	return func(g *Game) {
		g.configPath = path
	}
}

// WithLogger reports configuration problems found on Reset.
func WithLogger(logger *log.Logger) Option {
	return func(g *Game) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithStartLevel makes new games and restarts begin at level n.
func WithStartLevel(n int) Option {
	return func(g *Game) {
		g.startLevel = NormalizeLevel(n)
	}
}

// Game adapts a World to the terminal host: it maps semantic actions to
// world commands, converts screen cells to field units and renders.
type Game struct {
	world  *World
	events core.EventBuffer

	cfg        config.BreakoutConfig
	cfgSet     bool
	configPath string
	startLevel int
	logger     *log.Logger

	runtime        core.RuntimeConfig
	minScreenW     int
	minScreenH     int
	screenTooSmall bool
}

// New creates a new Breakout game.
func New(opts ...Option) *Game {
	g := &Game{
		startLevel: 1,
		logger:     log.New(io.Discard),
		minScreenW: 30,
		minScreenH: 15,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "breakout"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Breakout"
}

// Reset starts a new game at the configured start level.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	if !g.cfgSet {
		cfg, err := config.LoadBreakout(g.configPath, config.WithLogger(g.logger))
		if err != nil {
			g.logger.Warn("using default config", "err", err)
			cfg = config.DefaultBreakoutConfig()
		}
		g.cfg = cfg
		g.cfgSet = true
	}

	g.Resize(runtime.ScreenW, runtime.ScreenH)
	g.runtime.TickRate = runtime.TickRate
	g.runtime.Seed = runtime.Seed

	g.events.Drain()
	g.world = NewWorld(g.cfg, runtime.Seed, &g.events)
	g.world.ResetAt(g.startLevel)
}

// Resize adapts rendering to a new terminal size. The simulation runs in
// field units and is not affected.
func (g *Game) Resize(w, h int) {
	g.runtime.ScreenW = w
	g.runtime.ScreenH = h
	g.screenTooSmall = w < g.minScreenW || h < g.minScreenH
}

// World exposes the underlying simulation.
func (g *Game) World() *World {
	return g.world
}

// Step applies the frame's commands and advances the world by dt.
func (g *Game) Step(dt time.Duration, in core.InputFrame) core.StepResult {
	if g.screenTooSmall {
		return core.StepResult{State: g.State()}
	}

	switch {
	case in.Has(core.ActionRestart):
		g.world.ResetAt(g.startLevel)
	case in.Has(core.ActionPause):
		g.world.TogglePause()
	case in.Has(core.ActionLaunch):
		g.world.Start()
	}

	g.world.Update(dt.Seconds(), g.worldInput(in))

	return core.StepResult{
		State:  g.State(),
		Events: g.events.Drain(),
	}
}

// worldInput converts a host input frame into field units.
func (g *Game) worldInput(in core.InputFrame) Input {
	wi := Input{
		Left:   in.Has(core.ActionLeft),
		Right:  in.Has(core.ActionRight),
		Launch: in.Has(core.ActionLaunch),
	}
	if in.PointerActive && g.runtime.ScreenW > 0 {
		wi.PointerActive = true
		wi.PointerX = (in.PointerX + 0.5) / float64(g.runtime.ScreenW) * g.cfg.Field.Width
	}
	return wi
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.world == nil {
		return core.GameState{}
	}
	s := g.world.State()
	return core.GameState{
		Score:    g.world.Score(),
		Level:    g.world.Level(),
		Lives:    g.world.Lives(),
		Phase:    s.String(),
		GameOver: s == StateGameOver,
		Paused:   s == StatePaused,
	}
}

// viewport maps field units onto screen cells.
type viewport struct {
	top, rows int
	sx, sy    float64
}

func newViewport(dst *core.Screen, snap *Snapshot) viewport {
	rows := core.Max(dst.Height()-hudRows-hintRows, 1)
	return viewport{
		top:  hudRows,
		rows: rows,
		sx:   float64(dst.Width()) / snap.FieldWidth,
		sy:   float64(rows) / snap.FieldHeight,
	}
}

func (v viewport) col(x float64) int {
	return int(math.Floor(x * v.sx))
}

func (v viewport) row(y float64) int {
	r := int(math.Floor(y * v.sy))
	return v.top + core.Clamp(r, 0, v.rows-1)
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	// Check for screen too small
	if g.screenTooSmall {
		msg := "Window too small"
		hint := fmt.Sprintf("Need %dx%d", g.minScreenW, g.minScreenH)
		dst.DrawTextCentered(dst.Height()/2-1, msg)
		dst.DrawTextCentered(dst.Height()/2+1, hint)
		return
	}
	if g.world == nil {
		return
	}

	snap := g.world.Snapshot()
	v := newViewport(dst, &snap)

	g.renderHUD(dst, &snap)
	g.renderBricks(dst, v, &snap)
	g.renderPowerUps(dst, v, &snap)
	g.renderPaddle(dst, v, &snap)
	g.renderBalls(dst, v, &snap)
	g.renderOverlay(dst, &snap)
}

// renderHUD draws the score, lives, and level indicator.
func (g *Game) renderHUD(dst *core.Screen, snap *Snapshot) {
	dst.DrawText(1, 0, fmt.Sprintf("Score: %d", snap.Score))
	dst.DrawTextCenteredWithColor(0, fmt.Sprintf("Lives: %s", strings.Repeat("♥", snap.Lives)), core.ColorRed)

	levelText := fmt.Sprintf("Level %d/%d %s", snap.Level, snap.LevelCount, snap.LevelName)
	dst.DrawText(dst.Width()-len([]rune(levelText))-1, 0, levelText)

	if effects := effectsString(snap); effects != "" {
		dst.DrawTextWithColor(1, 1, effects, core.ColorBrightCyan)
		return
	}
	dst.DrawHLine(0, 1, dst.Width(), BorderHoriz)
}

// effectsString lists active timed effects with whole seconds left.
func effectsString(snap *Snapshot) string {
	var parts []string
	if snap.Paddle.WidenTimer > 0 {
		parts = append(parts, fmt.Sprintf("Wide %ds", int(math.Ceil(snap.Paddle.WidenTimer))))
	}
	if snap.SpeedBoostRemaining > 0 {
		parts = append(parts, fmt.Sprintf("Boost %ds", int(math.Ceil(snap.SpeedBoostRemaining))))
	}
	if snap.MultiBallRemaining > 0 {
		parts = append(parts, fmt.Sprintf("Multi %ds", int(math.Ceil(snap.MultiBallRemaining))))
	}
	return strings.Join(parts, "  ")
}

// renderBricks draws all alive bricks, leaving a one-cell gap between
// neighbours when there is room.
func (g *Game) renderBricks(dst *core.Screen, v viewport, snap *Snapshot) {
	for _, b := range snap.Bricks {
		x0 := v.col(b.X)
		x1 := v.col(b.X + b.Width)
		if x1-x0 >= 2 {
			x1--
		}
		if x1 <= x0 {
			x1 = x0 + 1
		}
		glyph := brickGlyphs[core.Clamp(b.HP-1, 0, len(brickGlyphs)-1)]
		y := v.row(b.Y)
		for x := x0; x < x1; x++ {
			dst.SetWithColor(x, y, glyph, b.Color)
		}
	}
}

// renderPowerUps draws falling capsules.
func (g *Game) renderPowerUps(dst *core.Screen, v viewport, snap *Snapshot) {
	for _, p := range snap.PowerUps {
		dst.SetWithColor(v.col(p.X), v.row(p.Y), p.Type.Glyph(), p.Type.Color())
	}
}

// renderPaddle draws the player's paddle.
func (g *Game) renderPaddle(dst *core.Screen, v viewport, snap *Snapshot) {
	color := core.ColorBrightWhite
	if snap.Paddle.Widened() {
		color = core.ColorBrightGreen
	}
	y := v.row(snap.Paddle.Y)
	x1 := core.Max(v.col(snap.Paddle.X+snap.Paddle.Width), v.col(snap.Paddle.X)+1)
	for x := v.col(snap.Paddle.X); x < x1; x++ {
		dst.SetWithColor(x, y, PaddleChar, color)
	}
}

// renderBalls draws all balls.
func (g *Game) renderBalls(dst *core.Screen, v viewport, snap *Snapshot) {
	color := core.ColorBrightWhite
	if snap.SpeedBoostRemaining > 0 {
		color = core.ColorBrightYellow
	}
	paddleRow := v.row(snap.Paddle.Y)
	for _, b := range snap.Balls {
		if b.Y-b.Radius > snap.FieldHeight {
			continue
		}
		y := v.row(b.Y)
		if b.Y < snap.Paddle.Y && y >= paddleRow {
			y = paddleRow - 1 // keep balls above the paddle they rest on
		}
		dst.SetWithColor(v.col(b.X), y, BallChar, color)
	}
}

// renderOverlay draws game state messages.
func (g *Game) renderOverlay(dst *core.Screen, snap *Snapshot) {
	hint := dst.Height() - 1
	switch snap.State {
	case StateReady:
		dst.DrawTextCentered(hint, "Press SPACE to launch")

	case StatePlaying:
		for _, b := range snap.Balls {
			if b.Stuck {
				dst.DrawTextCentered(hint, "Press SPACE to launch")
				break
			}
		}

	case StatePaused:
		g.drawCenteredBox(dst, "PAUSED", "Press P to resume")

	case StateLevelComplete:
		title := fmt.Sprintf("LEVEL %d CLEARED", snap.Level)
		subtitle := fmt.Sprintf("Score: %d  |  Press SPACE for level %d", snap.Score, NormalizeLevel(snap.Level+1))
		g.drawCenteredBox(dst, title, subtitle)

	case StateGameOver:
		subtitle := fmt.Sprintf("Score: %d  |  Press R to restart", snap.Score)
		g.drawCenteredBox(dst, "GAME OVER", subtitle)
	}
}

// drawCenteredBox draws a centered message box.
func (g *Game) drawCenteredBox(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()
	titleLen := len([]rune(title))
	subtitleLen := len([]rune(subtitle))

	boxW := core.Max(titleLen, subtitleLen) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	dst.DrawTextWithColor(boxX+(boxW-titleLen)/2, boxY+1, title, core.ColorBrightYellow)
	dst.DrawText(boxX+(boxW-subtitleLen)/2, boxY+3, subtitle)
}
