package roadmap

import (
	"fmt"
	"strings"
)

const roadmapSystemPrompt = `You are a career coach who designs practical, self-paced learning roadmaps. Each roadmap moves from fundamentals to job-ready mastery in evenly sized steps.`

func buildRoadmapUserMessage(careerPath string, levelCount int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Career path: %s\n", careerPath)
	fmt.Fprintf(&b, "Number of levels: %d\n", levelCount)

	fmt.Fprintf(&b, `
Instructions:
Create a detailed %d-level learning roadmap. For each level provide:
1. The level number, starting at 1 and increasing by one.
2. A short title.
3. A description of what the learner achieves.
4. Key topics to learn.
5. Recommended resources, each with a title, a URL, whether it is free or paid, and the platform it is hosted on.

Each level should build on the previous one. Prefer well-known, long-lived resources.`, levelCount)

	return b.String()
}
