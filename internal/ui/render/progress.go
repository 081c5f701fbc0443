package render

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/pathwise/internal/ui/theme"
)

// ProgressBar displays a horizontal progress bar.
type ProgressBar struct {
	Label       string
	Percent     int // 0-100
	ShowPercent bool
	Width       int
}

// View renders the progress bar with th.
func (p ProgressBar) View(th theme.Theme) string {
	var b strings.Builder

	if p.Label != "" {
		b.WriteString(th.Body.Render(p.Label))
		b.WriteString("  ")
	}

	labelWidth := lipgloss.Width(b.String())
	percentWidth := 0
	if p.ShowPercent {
		percentWidth = 6 // "  100%"
	}

	barWidth := max(p.Width-labelWidth-percentWidth, 4)
	filled := min(max(barWidth*p.Percent/100, 0), barWidth)

	b.WriteString(th.ProgressFilled.Render(strings.Repeat(th.ProgressFill, filled)))
	b.WriteString(th.ProgressEmpty.Render(strings.Repeat(th.ProgressTrack, barWidth-filled)))

	if p.ShowPercent {
		b.WriteString(th.Subtitle.Render(fmt.Sprintf("  %d%%", p.Percent)))
	}
	return b.String()
}
