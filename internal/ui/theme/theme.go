// Package theme holds the terminal colors and styles used to render
// roadmap views.
package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Theme is the set of colors and styles a renderer draws with.
type Theme struct {
	Primary   color.Color
	Secondary color.Color
	Accent    color.Color
	Success   color.Color
	Error     color.Color
	Text      color.Color
	TextDim   color.Color
	Border    color.Color

	// Typography
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Body     lipgloss.Style
	Hint     lipgloss.Style

	// Layout
	Card lipgloss.Style

	// Level states
	Completed lipgloss.Style
	Available lipgloss.Style
	Locked    lipgloss.Style

	// Components
	ProgressFilled lipgloss.Style
	ProgressEmpty  lipgloss.Style
	ProgressFill   string
	ProgressTrack  string

	Palette Palette

	plain bool
}

// Default returns the dark terminal theme.
func Default() Theme {
	t := Theme{
		Primary:   lipgloss.Color("#6366F1"), // Indigo
		Secondary: lipgloss.Color("#14B8A6"), // Teal
		Accent:    lipgloss.Color("#F97316"), // Orange
		Success:   lipgloss.Color("#22C55E"), // Green
		Error:     lipgloss.Color("#F43F5E"), // Rose
		Text:      lipgloss.Color("#F8FAFC"), // White
		TextDim:   lipgloss.Color("#94A3B8"), // Slate
		Border:    lipgloss.Color("#334155"), // Slate
		Palette:   DefaultPalette(),

		ProgressFill:  "█",
		ProgressTrack: "░",
	}

	t.Title = lipgloss.NewStyle().Bold(true).Foreground(t.Primary)
	t.Subtitle = lipgloss.NewStyle().Foreground(t.TextDim)
	t.Body = lipgloss.NewStyle().Foreground(t.Text)
	t.Hint = lipgloss.NewStyle().Foreground(t.TextDim).Italic(true)

	t.Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(0, 1)

	t.Completed = lipgloss.NewStyle().Foreground(t.Success).Bold(true)
	t.Available = lipgloss.NewStyle().Foreground(t.Text)
	t.Locked = lipgloss.NewStyle().Foreground(t.TextDim).Faint(true)

	t.ProgressFilled = lipgloss.NewStyle().Foreground(t.Secondary)
	t.ProgressEmpty = lipgloss.NewStyle().Foreground(t.Border)
	return t
}

// Plain returns a theme without colors or borders, for pipes and tests.
func Plain() Theme {
	plain := lipgloss.NewStyle()
	return Theme{
		Primary:   lipgloss.NoColor{},
		Secondary: lipgloss.NoColor{},
		Accent:    lipgloss.NoColor{},
		Success:   lipgloss.NoColor{},
		Error:     lipgloss.NoColor{},
		Text:      lipgloss.NoColor{},
		TextDim:   lipgloss.NoColor{},
		Border:    lipgloss.NoColor{},

		Title:          plain,
		Subtitle:       plain,
		Body:           plain,
		Hint:           plain,
		Card:           plain,
		Completed:      plain,
		Available:      plain,
		Locked:         plain,
		ProgressFilled: plain,
		ProgressEmpty:  plain,
		ProgressFill:   "#",
		ProgressTrack:  "-",

		Palette: DefaultPalette(),
		plain:   true,
	}
}

// AccentStyle returns a bold title style in the given hex color.
func (t Theme) AccentStyle(hex string) lipgloss.Style {
	if t.plain || hex == "" {
		return t.Title
	}
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(hex))
}
