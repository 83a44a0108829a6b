package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPalette_StatusColoursDiffer(t *testing.T) {
	p := DefaultPalette()

	seen := make(map[lipgloss.Color]bool)
	for _, c := range []lipgloss.Color{p.Accent, p.Highlight, p.Good, p.Bad} {
		assert.False(t, seen[c], "duplicate colour %s", c)
		seen[c] = true
	}
}

func TestNewStyles(t *testing.T) {
	t.Run("uses the given palette", func(t *testing.T) {
		p := DefaultPalette()
		assert.Same(t, p, NewStyles(p).Palette())
	})

	t.Run("nil palette falls back to default", func(t *testing.T) {
		s := NewStyles(nil)
		require.NotNil(t, s.Palette())
		assert.Equal(t, DefaultPalette().Accent, s.Palette().Accent)
	})
}

func TestStyles_NavStatesDiffer(t *testing.T) {
	s := DefaultStyles()

	assert.NotEqual(t, s.NavActive.GetForeground(), s.NavDisabled.GetForeground())
	assert.True(t, s.NavActive.GetBold())
	assert.False(t, s.NavDisabled.GetBold())
}

func TestStyles_ScoreUsesHighlight(t *testing.T) {
	s := DefaultStyles()

	assert.Equal(t, lipgloss.TerminalColor(DefaultPalette().Highlight), s.Score.GetForeground())
}

func TestStyles_Render(t *testing.T) {
	s := DefaultStyles()

	for name, style := range map[string]lipgloss.Style{
		"title":    s.Title,
		"selected": s.Selected,
		"score":    s.Score,
		"nav":      s.NavActive,
		"input":    s.InputField,
		"status":   s.StatusBar,
	} {
		assert.Contains(t, style.Render("0.875"), "0.875", name)
	}
}
