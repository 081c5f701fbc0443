package careers

import (
	"fmt"
	"strings"
)

const suggestionSystemPrompt = `You are a career advisor for people moving into technology roles. You suggest realistic career paths and explain each match in terms of the person's own answers.`

func buildSuggestionUserMessage(a Answers) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Current Position: %s\n", a.CurrentPosition)
	fmt.Fprintf(&b, "Preferred Activities: %s\n", a.PreferredActivities)
	fmt.Fprintf(&b, "Strongest Skills: %s\n", a.StrongestSkills)
	fmt.Fprintf(&b, "Preferred Work Environment: %s\n", a.WorkEnvironment)
	fmt.Fprintf(&b, "Career Motivation: %s\n", a.Motivation)

	b.WriteString(`
Instructions:
Suggest the 4-5 most suitable career paths in tech, best match first. For each provide:
1. A specific job title.
2. A personalized description explaining why it matches the profile above.
3. Required technical and soft skills.
4. An estimated salary range.
5. The career growth potential.
6. A match score from 0 to 100 based on the answers.
7. An estimated timeline to reach proficiency.`)

	return b.String()
}
