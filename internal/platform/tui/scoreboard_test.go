package tui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-breakout/internal/storage"
)

func TestScoreboardEmpty(t *testing.T) {
	m := NewScoreboardModel(nil, 80, 24)
	assert.Contains(t, m.View(), "No scores recorded yet")
}

func TestScoreboardListsRuns(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	defer store.Close()

	for _, score := range []int{300, 1200, 800} {
		_, err := store.SaveRun(storage.Run{GameID: "breakout", Score: score, Level: 2})
		require.NoError(t, err)
	}

	m := NewScoreboardModel(store, 80, 24)
	require.Len(t, m.runs, 3)
	assert.Equal(t, 1200, m.runs[0].Score)

	rows := runRows(m.runs)
	assert.Equal(t, "#1", rows[0][0])
	assert.Equal(t, "1200", rows[0][1])
	assert.Contains(t, rows[0][2], "2 ")
}

func TestScoreboardBackAndQuit(t *testing.T) {
	m := NewScoreboardModel(nil, 80, 24)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEscape})
	assert.NotNil(t, cmd)
	assert.True(t, next.(ScoreboardModel).IsGoingBack())

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	assert.True(t, next.(ScoreboardModel).IsQuitting())
}

func TestScoreboardResize(t *testing.T) {
	m := NewScoreboardModel(nil, 40, 10)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	sb := next.(ScoreboardModel)
	assert.Equal(t, 120, sb.width)
	assert.NotEmpty(t, sb.View())
}
