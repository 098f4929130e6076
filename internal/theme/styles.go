package theme

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles are the lipgloss styles derived from one palette. Every style
// carries the palette background so nested renders do not punch holes
// into the window colour.
type Styles struct {
	Palette *Palette

	Window    lipgloss.Style
	Header    lipgloss.Style
	Input     lipgloss.Style
	Button    lipgloss.Style
	Clock     lipgloss.Style
	Icon      lipgloss.Style
	Muted     lipgloss.Style
	Outgoing  lipgloss.Style
	Incoming  lipgloss.Style
	Status    lipgloss.Style
	StatusErr lipgloss.Style
	Key       lipgloss.Style
}

// NewStyles builds the styles for p.
func NewStyles(p *Palette) Styles {
	bg := lipgloss.Color(p.Background)
	fg := lipgloss.Color(p.Foreground)
	accent := lipgloss.Color(p.Accent)
	muted := lipgloss.Color(p.Muted)

	base := lipgloss.NewStyle().
		Background(bg).
		Foreground(fg)

	return Styles{
		Palette: p,

		Window: base,
		Header: base.
			Bold(true).
			Foreground(accent).
			Padding(0, 1),
		Input: base.
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(p.Border)).
			BorderBackground(bg).
			Padding(0, 1),
		Button: lipgloss.NewStyle().
			Bold(true).
			Foreground(bg).
			Background(accent).
			Padding(0, 2).
			Margin(1, 0, 1, 1).
			MarginBackground(bg),
		Clock: base.
			Bold(true),
		Icon: base.
			Foreground(accent).
			Padding(0, 1),
		Muted: base.
			Foreground(muted),
		Outgoing: base.
			Foreground(accent),
		Incoming: base,
		Status: base.
			Foreground(muted),
		StatusErr: base.
			Foreground(lipgloss.Color(p.Error)),
		Key: base.
			Foreground(accent),
	}
}

// StylesFor builds the styles for mode m from set.
func StylesFor(set Set, m Mode) Styles {
	return NewStyles(set.For(m))
}
