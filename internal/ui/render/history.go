package render

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/abhisek/pathwise/internal/careers"
	"github.com/abhisek/pathwise/internal/store"
	"github.com/abhisek/pathwise/internal/ui/theme"
)

// History renders a user's enrollments as a table, most recent first.
func History(th theme.Theme, enrollments []store.Enrollment) string {
	if len(enrollments) == 0 {
		return th.Hint.Render("No career paths started yet.") + "\n"
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(th.Border)).
		Headers("Career Path", "Started", "Progress", "Completed").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return th.Title.Padding(0, 1)
			}
			return th.Body.Padding(0, 1)
		})

	for _, e := range enrollments {
		completed := "-"
		if e.CompletedAt != nil {
			completed = e.CompletedAt.Local().Format("2006-01-02")
		}
		t.Row(
			e.CareerPath,
			e.StartedAt.Local().Format("2006-01-02"),
			fmt.Sprintf("%d%%", e.CompletionPercentage),
			completed,
		)
	}
	return t.Render() + "\n"
}

// Suggestions renders career suggestions as cards.
func Suggestions(th theme.Theme, suggestions []careers.Suggestion) string {
	var b strings.Builder
	for i, s := range suggestions {
		accent := th.AccentStyle(s.Color)

		var card strings.Builder
		card.WriteString(accent.Render(fmt.Sprintf("%d. %s", i+1, s.Title)))
		card.WriteString(th.Hint.Render(fmt.Sprintf("  [%s]", s.Icon)))
		card.WriteString("\n")
		card.WriteString(th.Body.Render(s.Description))
		card.WriteString("\n")
		fmt.Fprintf(&card, "Match: %d%%   Demand: %s\n", s.MatchScore, s.Demand)
		fmt.Fprintf(&card, "Salary: %s\n", s.Salary)
		fmt.Fprintf(&card, "Growth: %s\n", s.Growth)
		fmt.Fprintf(&card, "Timeline: %s\n", s.Timeline)
		fmt.Fprintf(&card, "Skills: %s", strings.Join(s.Skills, ", "))

		b.WriteString(th.Card.Render(card.String()))
		b.WriteString("\n")
	}
	return b.String()
}
