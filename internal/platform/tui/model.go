package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

// holdWindow is how long a movement key counts as held after its last
// press or auto-repeat. Terminals report no key releases.
const holdWindow = 150 * time.Millisecond

// Game is what the host loop drives.
type Game interface {
	ID() string
	Title() string
	Reset(cfg core.RuntimeConfig)
	Resize(w, h int)
	Step(dt time.Duration, in core.InputFrame) core.StepResult
	Render(dst *core.Screen)
	State() core.GameState
}

// Option configures a Model.
type Option func(*Model)

// WithStore persists finished runs to store.
func WithStore(store *storage.Store) Option {
	return func(m *Model) {
		m.store = store
	}
}

// WithEventSink forwards every game event to sink.
func WithEventSink(sink core.EventSink) Option {
	return func(m *Model) {
		if sink != nil {
			m.sink = sink
		}
	}
}

// WithLogger sets the logger for host diagnostics.
func WithLogger(logger *log.Logger) Option {
	return func(m *Model) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithPlainOutput renders without colors.
func WithPlainOutput(plain bool) Option {
	return func(m *Model) {
		m.renderer = NewRenderer(plain)
	}
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game      Game
	screen    *core.Screen
	renderer  *Renderer
	store     *storage.Store
	sink      core.EventSink
	logger    *log.Logger
	keyMapper *KeyMapper
	now       func() time.Time

	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState

	holdLeft      time.Time
	holdRight     time.Time
	pointerActive bool
	pointerX      float64
	lastTick      time.Time

	runID    string
	runSaved bool // Whether the current run has been persisted
	quitting bool
	back     bool
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game Game, cfg core.RuntimeConfig, opts ...Option) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}

	m := Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		renderer:   NewRenderer(false),
		sink:       core.Discard,
		logger:     log.New(io.Discard),
		keyMapper:  NewKeyMapper(),
		now:        time.Now,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		runID:      uuid.NewString(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.logger.Debug("game reset", "game", m.game.ID(), "seed", m.config.Seed, "run", m.runID)

	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	switch action {
	case core.ActionLeft:
		m.holdLeft = m.now().Add(holdWindow)
		m.holdRight = time.Time{}
	case core.ActionRight:
		m.holdRight = m.now().Add(holdWindow)
		m.holdLeft = time.Time{}
	case core.ActionConfirm:
		m.inputFrame.Set(core.ActionLaunch)
	case core.ActionBack:
		// Back pauses a running game and leaves from anywhere else.
		if m.gameState.Phase == "PLAYING" || m.gameState.Paused {
			m.inputFrame.Set(core.ActionPause)
			return m, nil
		}
		m.back = true
		return m, tea.Quit
	case core.ActionNone, core.ActionUp, core.ActionDown:
	default:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// handleMouse turns a left-button drag into pointer input.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Action {
	case tea.MouseActionPress, tea.MouseActionMotion:
		if msg.Button == tea.MouseButtonLeft {
			m.pointerActive = true
			m.pointerX = float64(msg.X)
		}
	case tea.MouseActionRelease:
		m.pointerActive = false
	}
	return m, nil
}

// handleResize processes window resize events. The game keeps running.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	m.game.Resize(msg.Width, msg.Height)

	return m, nil
}

// handleTick advances the simulation by the time since the previous tick.
func (m Model) handleTick(t time.Time) (tea.Model, tea.Cmd) {
	var dt time.Duration
	if !m.lastTick.IsZero() {
		dt = t.Sub(m.lastTick)
	}
	m.lastTick = t

	if t.Before(m.holdLeft) {
		m.inputFrame.Set(core.ActionLeft)
	}
	if t.Before(m.holdRight) {
		m.inputFrame.Set(core.ActionRight)
	}
	if m.pointerActive {
		m.inputFrame.SetPointer(m.pointerX)
	}

	restarted := m.inputFrame.Has(core.ActionRestart)
	prev := m.gameState

	// The frame is reused next tick, so the game gets its own copy.
	result := m.game.Step(dt, m.inputFrame.Clone())
	m.gameState = result.State

	for _, e := range result.Events {
		m.sink.Emit(e)
	}

	if restarted {
		m.runID = uuid.NewString()
		m.runSaved = false
		m.logger.Info("run restarted", "run", m.runID)
	}
	m.logTransition(prev, m.gameState)

	if m.gameState.GameOver && !m.runSaved {
		m.saveRun()
		m.runSaved = true
	}

	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate)
}

// logTransition reports phase and level changes.
func (m *Model) logTransition(prev, cur core.GameState) {
	if prev.Phase != cur.Phase && prev.Phase != "" {
		m.logger.Debug("state change", "from", prev.Phase, "to", cur.Phase)
	}
	if prev.Level != cur.Level && cur.Level > 0 {
		m.logger.Info("level", "level", cur.Level, "score", cur.Score)
	}
	if cur.GameOver && !prev.GameOver {
		m.logger.Info("game over", "score", cur.Score, "level", cur.Level)
	}
}

// saveRun records the finished run once. Runs without points are skipped.
func (m *Model) saveRun() {
	if m.store == nil || m.gameState.Score <= 0 {
		return
	}
	id, err := m.store.SaveRun(storage.Run{
		SessionID: m.runID,
		GameID:    m.game.ID(),
		Score:     m.gameState.Score,
		Level:     m.gameState.Level,
	})
	if err != nil {
		m.logger.Warn("could not save run", "err", err)
		return
	}
	m.logger.Info("run saved", "id", id, "run", m.runID, "score", m.gameState.Score)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot", "err", err)
		return
	}
	dir := filepath.Join(home, ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot", "err", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.back {
		return ""
	}

	m.game.Render(m.screen)

	return m.renderer.Render(m.screen)
}

// State returns the last state reported by the game.
func (m Model) State() core.GameState {
	return m.gameState
}

// WentBack reports whether the player left for the menu.
func (m Model) WentBack() bool {
	return m.back
}

// Result is how a game session ended.
type Result struct {
	State core.GameState
	Back  bool // Player asked for the menu rather than quitting
}

// Run starts the Bubble Tea program for game and blocks until it exits.
func Run(game Game, cfg core.RuntimeConfig, opts ...Option) (Result, error) {
	model := NewModel(game, cfg, opts...)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return Result{}, err
	}

	m, ok := finalModel.(Model)
	if !ok {
		return Result{}, nil
	}
	return Result{State: m.State(), Back: m.WentBack()}, nil
}
