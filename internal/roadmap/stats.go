package roadmap

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"time"
)

// hoursPerLevel is the estimated study time of one level.
const hoursPerLevel = 2

// Stats summarizes the user's progress on a career path.
func (e *Engine) Stats(ctx context.Context, userID, careerPath string) (*Stats, error) {
	view, err := e.Progress(ctx, userID, careerPath)
	if err != nil {
		return nil, err
	}
	return summarize(strings.TrimSpace(careerPath), view), nil
}

func summarize(careerPath string, view []MaterializedLevel) *Stats {
	s := &Stats{CareerPath: careerPath, TotalLevels: len(view)}

	skills := map[string]int{}
	var done []MaterializedLevel
	for _, l := range view {
		if !l.Completed {
			continue
		}
		s.CompletedLevels++
		done = append(done, l)

		seen := map[string]bool{}
		for _, topic := range l.Content.Topics {
			topic = strings.TrimSpace(topic)
			if topic == "" || seen[topic] {
				continue
			}
			seen[topic] = true
			skills[topic]++
		}
	}

	s.Percentage = Percentage(s.CompletedLevels, s.TotalLevels)
	s.EstimatedHours = s.CompletedLevels * hoursPerLevel
	s.Celebrate = s.TotalLevels > 0 && s.CompletedLevels == s.TotalLevels

	for name, n := range skills {
		s.Skills = append(s.Skills, SkillCount{Name: name, Count: n})
	}
	slices.SortFunc(s.Skills, func(a, b SkillCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})

	slices.SortStableFunc(done, func(a, b MaterializedLevel) int {
		if c := compareTimes(a.CompletedAt, b.CompletedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.Level.Level, b.Level.Level)
	})
	for i, l := range done {
		p := TimelinePoint{Level: l.Level.Level, Percentage: Percentage(i+1, s.TotalLevels)}
		if l.CompletedAt != nil {
			p.Date = *l.CompletedAt
		}
		s.Timeline = append(s.Timeline, p)
	}
	return s
}

// compareTimes orders nil after any time.
func compareTimes(a, b *time.Time) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}
	return a.Compare(*b)
}
