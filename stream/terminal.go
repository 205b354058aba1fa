package stream

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const block = "█"

// TerminalPublisher previews frames as a line of coloured blocks.
type TerminalPublisher struct {
	w      io.Writer
	styles map[string]lipgloss.Style
}

// NewTerminalPublisher creates a publisher writing to w.
func NewTerminalPublisher(w io.Writer) *TerminalPublisher {
	p := new(TerminalPublisher)
	p.w = w
	p.styles = make(map[string]lipgloss.Style)
	return p
}

// Publish redraws the current line with f.
func (p *TerminalPublisher) Publish(f *Frame) error {
	var b strings.Builder
	b.WriteString("\r")
	for i := 0; i < f.Len(); i++ {
		hex := f.Pixel(i).Clamped().Hex()
		style, ok := p.styles[hex]
		if !ok {
			style = lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
			p.styles[hex] = style
		}
		b.WriteString(style.Render(block))
	}
	_, err := io.WriteString(p.w, b.String())
	return err
}
