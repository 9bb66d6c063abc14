package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

// Main menu entries.
const (
	menuPlay = iota
	menuSelectLevel
	menuScores
	menuQuit
)

var menuItems = []string{"Play", "Select Level", "High Scores", "Quit"}

// MenuModel is the Bubble Tea model for the main menu and level selector.
type MenuModel struct {
	cursor        int
	levelCursor   int
	inLevelSelect bool
	startLevel    int
	highScore     int
	width         int
	height        int
	config        core.RuntimeConfig
	keyMapper     *KeyMapper

	quitting       bool
	play           bool
	openScoreboard bool
}

// NewMenuModel creates a new menu model. The level cursor starts at startLevel.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig, startLevel int) MenuModel {
	startLevel = breakout.NormalizeLevel(startLevel)

	m := MenuModel{
		startLevel:  startLevel,
		levelCursor: startLevel - 1,
		width:       cfg.ScreenW,
		height:      cfg.ScreenH,
		config:      cfg,
		keyMapper:   NewKeyMapper(),
	}
	if store != nil {
		if hs, err := store.HighScore("breakout"); err == nil {
			m.highScore = hs
		}
	}
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		action := m.keyMapper.MapKeyToMenuAction(msg)
		if m.inLevelSelect {
			return m.handleLevelKey(action)
		}
		return m.handleMainKey(action)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

func (m MenuModel) handleMainKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(menuItems)-1 {
			m.cursor++
		}

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit

	case MenuActionSelect:
		switch m.cursor {
		case menuPlay:
			m.play = true
			return m, tea.Quit
		case menuSelectLevel:
			m.inLevelSelect = true
			m.levelCursor = m.startLevel - 1
		case menuScores:
			m.openScoreboard = true
			return m, tea.Quit
		case menuQuit:
			m.quitting = true
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m MenuModel) handleLevelKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.levelCursor > 0 {
			m.levelCursor--
		}

	case MenuActionDown:
		if m.levelCursor < breakout.LevelCount()-1 {
			m.levelCursor++
		}

	case MenuActionSelect:
		m.startLevel = m.levelCursor + 1
		m.play = true
		return m, tea.Quit

	case MenuActionBack:
		m.inLevelSelect = false
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	selStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerStyled(titleStyle, "  B R E A K O U T  ", m.width))
	b.WriteString("\n\n")

	if m.highScore > 0 {
		b.WriteString(centerStyled(dimStyle, fmt.Sprintf("High score: %d", m.highScore), m.width))
		b.WriteString("\n\n")
	}

	var lines []string
	var controls string
	if m.inLevelSelect {
		b.WriteString(centerText("Select a level", m.width))
		b.WriteString("\n\n")
		for i := range breakout.LevelCount() {
			lines = append(lines, fmt.Sprintf("%d. %s", i+1, breakout.LevelName(i+1)))
		}
		controls = "Up/Down: Navigate  |  Enter: Play  |  Esc: Back  |  Q: Quit"
	} else {
		lines = append(lines, menuItems...)
		lines[menuSelectLevel] = fmt.Sprintf("Select Level (%d. %s)", m.startLevel, breakout.LevelName(m.startLevel))
		controls = "Up/Down: Navigate  |  Enter: Select  |  Tab: Scores  |  Q: Quit"
	}

	cursor := m.cursor
	if m.inLevelSelect {
		cursor = m.levelCursor
	}
	for i, line := range lines {
		if i == cursor {
			b.WriteString(centerStyled(selStyle, "> "+line, m.width))
		} else {
			b.WriteString(centerText("  "+line, m.width))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerStyled(dimStyle, controls, m.width))
	b.WriteString("\n")

	return b.String()
}

// StartLevel returns the level a new game should start at.
func (m MenuModel) StartLevel() int {
	return m.startLevel
}

// WantsPlay returns true if the user chose to start a game.
func (m MenuModel) WantsPlay() bool {
	return m.play
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	n := lipgloss.Width(text)
	if n >= width {
		return text
	}
	padding := (width - n) / 2
	return strings.Repeat(" ", padding) + text
}

// centerStyled centers text and then applies style to it.
func centerStyled(style lipgloss.Style, text string, width int) string {
	n := lipgloss.Width(text)
	if n >= width {
		return style.Render(text)
	}
	return strings.Repeat(" ", (width-n)/2) + style.Render(text)
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	StartLevel      int
	Config          core.RuntimeConfig
	Play            bool
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig, startLevel int) (MenuResult, error) {
	model := NewMenuModel(store, cfg, startLevel)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg, StartLevel: startLevel}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, StartLevel: startLevel, Quit: true}, nil
	}

	return MenuResult{
		StartLevel:      m.StartLevel(),
		Config:          m.Config(),
		Play:            m.WantsPlay(),
		WantsScoreboard: m.WantsScoreboard(),
		Quit:            m.IsQuitting() || (!m.WantsPlay() && !m.WantsScoreboard()),
	}, nil
}
