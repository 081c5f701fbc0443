package careers

// Answers are the five onboarding answers a suggestion is based on.
type Answers struct {
	CurrentPosition     string
	PreferredActivities string
	StrongestSkills     string
	WorkEnvironment     string
	Motivation          string
}

func (a Answers) list() []string {
	return []string{a.CurrentPosition, a.PreferredActivities, a.StrongestSkills, a.WorkEnvironment, a.Motivation}
}

// AnswersFrom maps answers in questionnaire order onto Answers. Missing
// trailing answers stay empty.
func AnswersFrom(responses []string) Answers {
	get := func(i int) string {
		if i < len(responses) {
			return responses[i]
		}
		return ""
	}
	return Answers{
		CurrentPosition:     get(0),
		PreferredActivities: get(1),
		StrongestSkills:     get(2),
		WorkEnvironment:     get(3),
		Motivation:          get(4),
	}
}

// Suggestion is one ranked career suggestion.
type Suggestion struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Skills      []string `json:"skills"`
	Salary      string   `json:"salary"`
	Growth      string   `json:"growth"`
	MatchScore  int      `json:"match_score"`
	Timeline    string   `json:"timeline"`

	// Derived locally
	Demand string `json:"demand"`
	Color  string `json:"color"`
	Icon   string `json:"icon"`
}

// Demand labels a match score: 90 and above is "Very High", 80 and above
// "High", anything lower "Moderate".
func Demand(matchScore int) string {
	switch {
	case matchScore >= 90:
		return "Very High"
	case matchScore >= 80:
		return "High"
	default:
		return "Moderate"
	}
}
