package stage

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// CaptionRenderer is the display primitive the subtitle overlay drives. The
// overlay calls Show once per chunk transition and Clear when the schedule
// expires; redundant frames never reach the renderer.
type CaptionRenderer interface {
	Show(text string)
	Clear()
}

// TermRenderer prints the active caption as a styled box, the live-preview
// stand-in for the bottom-anchored caption node of the real renderer.
type TermRenderer struct {
	out   io.Writer
	style lipgloss.Style
}

func NewTermRenderer(out io.Writer, width int) *TermRenderer {
	if width <= 0 {
		width = 44
	}
	return &TermRenderer{
		out: out,
		style: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Foreground(lipgloss.Color("229")).
			Padding(0, 1).
			Width(width).
			Align(lipgloss.Center),
	}
}

func (r *TermRenderer) Show(text string) {
	fmt.Fprintln(r.out, r.style.Render(text))
}

func (r *TermRenderer) Clear() {
	fmt.Fprintln(r.out)
}
