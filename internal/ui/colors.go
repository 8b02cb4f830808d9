package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Default is the palette used by the CLI.
var Default = NewPalette("#7D56F4", "#04B575", "#FF0000", "#FFA500", "#626262")

// Palette is a simple stylesheet built with named [lipgloss.Style] fields
type Palette struct {
	title lipgloss.Style
	ok    lipgloss.Style
	err   lipgloss.Style
	warn  lipgloss.Style
	help  lipgloss.Style
}

// NewPalette builds a palette from the title, success, error, warning and help colors.
func NewPalette(t, s, e, w, h string) *Palette {
	return &Palette{
		title: NewBold(t),
		ok:    NewBold(s),
		err:   NewBold(e),
		warn:  NewStyle(w),
		help:  NewEm(h),
	}
}

// NewStyle returns a style with foreground fg.
func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

// NewBold is [NewStyle] in bold.
func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

// NewEm is [NewStyle] in italics.
func NewEm(fg string) lipgloss.Style {
	return NewStyle(fg).Italic(true)
}

// Title renders a section header.
func (p *Palette) Title(s string) string { return p.title.Render(s) }

// OK renders a success line prefixed with a check mark.
func (p *Palette) OK(format string, args ...any) string {
	return p.ok.Render("✓ " + fmt.Sprintf(format, args...))
}

// Err renders a failure line prefixed with a cross.
func (p *Palette) Err(format string, args ...any) string {
	return p.err.Render("✗ " + fmt.Sprintf(format, args...))
}

// Warn renders a warning line.
func (p *Palette) Warn(format string, args ...any) string {
	return p.warn.Render("⚠ " + fmt.Sprintf(format, args...))
}

// Help renders secondary text such as hints and progress.
func (p *Palette) Help(format string, args ...any) string {
	return p.help.Render(fmt.Sprintf(format, args...))
}

// Step renders a progress line as "→ [step/total] message", omitting the counter when total is unknown.
func (p *Palette) Step(step, total int, msg string) string {
	if total > 0 {
		return p.Help("→ [%d/%d] %s", step, total, msg)
	}
	return p.Help("→ %s", msg)
}
