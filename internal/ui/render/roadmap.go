// Package render draws roadmap views as terminal text.
package render

import (
	"fmt"
	"strings"

	"github.com/abhisek/pathwise/internal/roadmap"
	"github.com/abhisek/pathwise/internal/ui/theme"
)

const barWidth = 40

// Level state markers.
const (
	markCompleted = "✓"
	markAvailable = "○"
	markLocked    = "✗"
)

// Roadmap renders the per-level progress view of a career path. With
// details set, topics and resources of unlocked levels are listed too.
func Roadmap(th theme.Theme, careerPath string, view []roadmap.MaterializedLevel, details bool) string {
	var b strings.Builder

	done := 0
	for _, l := range view {
		if l.Completed {
			done++
		}
	}
	pct := roadmap.Percentage(done, len(view))

	b.WriteString(th.Title.Render(careerPath))
	b.WriteString("\n")
	b.WriteString(ProgressBar{Label: fmt.Sprintf("%d/%d levels", done, len(view)), Percent: pct, ShowPercent: true, Width: barWidth}.View(th))
	b.WriteString("\n\n")

	for _, l := range view {
		b.WriteString(levelLine(th, l))
		b.WriteString("\n")
		if details && !l.Locked {
			writeDetails(&b, th, l)
		}
	}
	return b.String()
}

func levelLine(th theme.Theme, l roadmap.MaterializedLevel) string {
	line := fmt.Sprintf("%2d. %s", l.Level.Level, l.Title)
	switch {
	case l.Completed:
		return th.Completed.Render(markCompleted+" "+line) + th.Hint.Render("  "+l.ID)
	case l.Locked:
		return th.Locked.Render(markLocked + " " + line)
	default:
		return th.Available.Render(markAvailable+" "+line) + th.Hint.Render("  "+l.ID)
	}
}

func writeDetails(b *strings.Builder, th theme.Theme, l roadmap.MaterializedLevel) {
	if l.Description != "" {
		b.WriteString("     ")
		b.WriteString(th.Subtitle.Render(l.Description))
		b.WriteString("\n")
	}
	if len(l.Content.Topics) > 0 {
		b.WriteString("     ")
		b.WriteString(th.Body.Render("Topics: " + strings.Join(l.Content.Topics, ", ")))
		b.WriteString("\n")
	}
	for _, r := range l.Content.Resources {
		fmt.Fprintf(b, "     - %s (%s, %s) %s\n", r.Title, r.Platform, r.Type, th.Hint.Render(r.URL))
	}
}
