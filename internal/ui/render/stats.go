package render

import (
	"fmt"
	"strings"

	"github.com/abhisek/pathwise/internal/roadmap"
	"github.com/abhisek/pathwise/internal/ui/theme"
)

// maxSkills bounds the skills chart.
const maxSkills = 10

// Stats renders progress statistics.
func Stats(th theme.Theme, s *roadmap.Stats) string {
	var b strings.Builder

	b.WriteString(th.Title.Render(s.CareerPath))
	b.WriteString("\n")
	if s.Celebrate {
		b.WriteString(th.Completed.Render("Congratulations! Every level is complete."))
		b.WriteString("\n")
	}
	b.WriteString(ProgressBar{Label: "Progress", Percent: s.Percentage, ShowPercent: true, Width: barWidth}.View(th))
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "Levels completed:  %d/%d\n", s.CompletedLevels, s.TotalLevels)
	fmt.Fprintf(&b, "Hours invested:    ~%d\n", s.EstimatedHours)
	fmt.Fprintf(&b, "Skills practiced:  %d\n", len(s.Skills))

	if len(s.Skills) > 0 {
		b.WriteString("\n")
		b.WriteString(th.Subtitle.Render("Skills"))
		b.WriteString("\n")
		top := s.Skills[:min(len(s.Skills), maxSkills)]
		most := top[0].Count
		for _, sk := range top {
			fmt.Fprintf(&b, "  %-24s %s %d\n", truncate(sk.Name, 24), th.ProgressFilled.Render(strings.Repeat(th.ProgressFill, sk.Count*10/most)), sk.Count)
		}
	}

	if len(s.Timeline) > 0 {
		b.WriteString("\n")
		b.WriteString(th.Subtitle.Render("Timeline"))
		b.WriteString("\n")
		for _, p := range s.Timeline {
			date := "unknown"
			if !p.Date.IsZero() {
				date = p.Date.Local().Format("2006-01-02")
			}
			fmt.Fprintf(&b, "  %s  level %2d  %3d%%\n", date, p.Level, p.Percentage)
		}
	}
	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
