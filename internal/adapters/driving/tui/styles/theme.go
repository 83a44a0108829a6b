// Package styles provides the colour palette and lipgloss styles of the TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette holds the colours the styles are built from.
type Palette struct {
	Accent    lipgloss.Color
	Highlight lipgloss.Color
	Text      lipgloss.Color
	Dim       lipgloss.Color
	Good      lipgloss.Color
	Bad       lipgloss.Color
	Frame     lipgloss.Color
	Bar       lipgloss.Color
}

// DefaultPalette is teal on dark slate, with amber for scores.
func DefaultPalette() *Palette {
	return &Palette{
		Accent:    lipgloss.Color("#14B8A6"),
		Highlight: lipgloss.Color("#F59E0B"),
		Text:      lipgloss.Color("#E2E8F0"),
		Dim:       lipgloss.Color("#64748B"),
		Good:      lipgloss.Color("#4ADE80"),
		Bad:       lipgloss.Color("#F87171"),
		Frame:     lipgloss.Color("#334155"),
		Bar:       lipgloss.Color("#0F172A"),
	}
}

// Styles are the rendered styles shared by every view.
type Styles struct {
	palette *Palette

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Normal   lipgloss.Style
	Muted    lipgloss.Style
	Selected lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style
	Help     lipgloss.Style

	// Score renders a similarity or final score beside a result title.
	Score lipgloss.Style

	// NavActive and NavDisabled render the Prev/Next page controls.
	NavActive   lipgloss.Style
	NavDisabled lipgloss.Style

	InputField lipgloss.Style
	StatusBar  lipgloss.Style
	Border     lipgloss.Style
}

// NewStyles builds styles from p. A nil palette uses DefaultPalette.
func NewStyles(p *Palette) *Styles {
	if p == nil {
		p = DefaultPalette()
	}

	framed := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(p.Frame)

	return &Styles{
		palette: p,

		Title:    lipgloss.NewStyle().Bold(true).Foreground(p.Accent),
		Subtitle: lipgloss.NewStyle().Bold(true).Foreground(p.Text),
		Normal:   lipgloss.NewStyle().Foreground(p.Text),
		Muted:    lipgloss.NewStyle().Foreground(p.Dim),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(p.Bar).Background(p.Accent),
		Error:    lipgloss.NewStyle().Foreground(p.Bad),
		Success:  lipgloss.NewStyle().Foreground(p.Good),
		Help:     lipgloss.NewStyle().Foreground(p.Dim).Italic(true),

		Score: lipgloss.NewStyle().Foreground(p.Highlight),

		NavActive:   lipgloss.NewStyle().Bold(true).Foreground(p.Accent),
		NavDisabled: lipgloss.NewStyle().Foreground(p.Frame),

		InputField: framed.Padding(0, 1),
		StatusBar:  lipgloss.NewStyle().Foreground(p.Dim).Background(p.Bar).Padding(0, 1),
		Border:     framed,
	}
}

// DefaultStyles returns styles for the default palette.
func DefaultStyles() *Styles {
	return NewStyles(DefaultPalette())
}

// Palette returns the colours the styles were built from.
func (s *Styles) Palette() *Palette {
	return s.palette
}
