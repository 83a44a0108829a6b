// Package input provides text input components for the TUI.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/tristep/internal/adapters/driving/tui/styles"
)

// ProfileCharLimit bounds the free-text profile.
const ProfileCharLimit = 1024

// ProfileInput wraps a bubbles textinput for the free-text user profile.
type ProfileInput struct {
	textinput textinput.Model
	styles    *styles.Styles
	label     string
	width     int
}

// NewProfileInput creates a new profile input component.
func NewProfileInput(s *styles.Styles) *ProfileInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = "Describe your skills and interests..."
	ti.Focus()
	ti.CharLimit = ProfileCharLimit
	ti.Width = 50

	return &ProfileInput{
		textinput: ti,
		styles:    s,
		label:     "Profile: ",
		width:     50,
	}
}

// Init initialises the profile input.
func (p *ProfileInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input messages.
func (p *ProfileInput) Update(msg tea.Msg) (*ProfileInput, tea.Cmd) {
	var cmd tea.Cmd
	p.textinput, cmd = p.textinput.Update(msg)
	return p, cmd
}

// View renders the profile input.
func (p *ProfileInput) View() string {
	label := p.styles.Title.Render(p.label)
	input := p.styles.InputField.Render(p.textinput.View())
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, label, input)
}

// SetLabel changes the prompt shown before the input.
func (p *ProfileInput) SetLabel(label string) {
	p.label = label
}

// Value returns the current input value.
func (p *ProfileInput) Value() string {
	return p.textinput.Value()
}

// SetValue sets the input value.
func (p *ProfileInput) SetValue(value string) {
	p.textinput.SetValue(value)
}

// Focus sets focus on the input.
func (p *ProfileInput) Focus() tea.Cmd {
	return p.textinput.Focus()
}

// Blur removes focus from the input.
func (p *ProfileInput) Blur() {
	p.textinput.Blur()
}

// Focused returns whether the input is focused.
func (p *ProfileInput) Focused() bool {
	return p.textinput.Focused()
}

// SetWidth sets the width of the input.
func (p *ProfileInput) SetWidth(width int) {
	p.width = width
	// Account for label and padding
	inputWidth := width - 12
	if inputWidth < 20 {
		inputWidth = 20
	}
	p.textinput.Width = inputWidth
}

// Width returns the current width.
func (p *ProfileInput) Width() int {
	return p.width
}

// Reset clears the input.
func (p *ProfileInput) Reset() {
	p.textinput.Reset()
}
