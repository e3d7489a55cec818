package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Styles is the set of render functions the view helpers apply. Keeping
// them as plain funcs lets tests pass identity styles and assert on
// bare text.
type Styles struct {
	Header   func(string) string
	Normal   func(string) string
	Selected func(string) string
	Main     func(string) string
	Dirty    func(string) string
	Clean    func(string) string
	Ahead    func(string) string
	Behind   func(string) string
	Muted    func(string) string
}

func DefaultStyles() Styles {
	header := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	selected := lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	main := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))
	dirty := lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	clean := lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	ahead := lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	behind := lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	render := func(style lipgloss.Style) func(string) string {
		return func(s string) string { return style.Render(s) }
	}
	return Styles{
		Header:   render(header),
		Normal:   func(s string) string { return s },
		Selected: render(selected),
		Main:     render(main),
		Dirty:    render(dirty),
		Clean:    render(clean),
		Ahead:    render(ahead),
		Behind:   render(behind),
		Muted:    render(muted),
	}
}

// PlainStyles returns identity styles, used by tests and non-TTY output.
func PlainStyles() Styles {
	id := func(s string) string { return s }
	return Styles{
		Header: id, Normal: id, Selected: id, Main: id,
		Dirty: id, Clean: id, Ahead: id, Behind: id, Muted: id,
	}
}

// PadOrTrim fits text into exactly width display cells.
func PadOrTrim(s string, width int) string {
	if width <= 0 {
		return ""
	}
	w := runewidth.StringWidth(s)
	if w == width {
		return s
	}
	if w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return runewidth.Truncate(s, width, "…")
}
