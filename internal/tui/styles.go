package tui

import (
	"fmt"
	"image/color"

	"github.com/charmbracelet/lipgloss"
)

var (
	title   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	white   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	running = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("82"))
	paused  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("220"))
	failed  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
)

type cellColors struct {
	top, bottom color.RGBA
}

// cellStyles caches one style per colour pair. A frame rarely holds more
// than a few dozen pairs.
type cellStyles map[cellColors]lipgloss.Style

func (s cellStyles) get(top, bottom color.RGBA) lipgloss.Style {
	key := cellColors{top, bottom}
	if st, ok := s[key]; ok {
		return st
	}
	st := lipgloss.NewStyle().
		Foreground(lipgloss.Color(hex(top))).
		Background(lipgloss.Color(hex(bottom)))
	s[key] = st
	return st
}

func hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
