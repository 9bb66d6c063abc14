package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

// Renderer converts a Screen buffer to a string for display.
type Renderer struct {
	plain  bool
	styles map[core.Color]lipgloss.Style
}

// NewRenderer creates a renderer. A plain renderer emits no escape codes.
func NewRenderer(plain bool) *Renderer {
	return &Renderer{
		plain:  plain,
		styles: make(map[core.Color]lipgloss.Style),
	}
}

func (r *Renderer) style(c core.Color) lipgloss.Style {
	if st, ok := r.styles[c]; ok {
		return st
	}
	st := lipgloss.NewStyle()
	if code := c.ANSI(); code != "" {
		st = st.Foreground(lipgloss.Color(code))
	}
	r.styles[c] = st
	return st
}

// Render groups adjacent cells of the same color into one styled run.
func (r *Renderer) Render(s *core.Screen) string {
	if r.plain {
		return s.String()
	}

	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			color := s.GetCell(x, y).Color
			run.Reset()
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != color {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}
			if color == core.ColorDefault {
				sb.WriteString(run.String())
				continue
			}
			sb.WriteString(r.style(color).Render(run.String()))
		}
	}
	return sb.String()
}

// RenderScreen renders s with colors.
func RenderScreen(s *core.Screen) string {
	return NewRenderer(false).Render(s)
}
