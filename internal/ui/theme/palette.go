package theme

// CareerStyle is the accent color and icon shown next to a career.
type CareerStyle struct {
	Color string // hex, e.g. "#3B82F6"
	Icon  string // icon name, e.g. "Code"
}

// Palette maps career titles to their style. Unknown titles get Fallback.
type Palette struct {
	Careers  map[string]CareerStyle
	Fallback CareerStyle
}

// DefaultPalette returns the built-in career styles.
func DefaultPalette() Palette {
	return Palette{
		Careers: map[string]CareerStyle{
			"Full Stack Developer":   {Color: "#3B82F6", Icon: "Code"},
			"Data Scientist":         {Color: "#A855F7", Icon: "Database"},
			"UX Designer":            {Color: "#EC4899", Icon: "Palette"},
			"DevOps Engineer":        {Color: "#22C55E", Icon: "Shield"},
			"AI/ML Engineer":         {Color: "#EF4444", Icon: "Brain"},
			"Cloud Architect":        {Color: "#06B6D4", Icon: "Cloud"},
			"Cybersecurity Engineer": {Color: "#EAB308", Icon: "Lock"},
			"Mobile Developer":       {Color: "#6366F1", Icon: "Smartphone"},
		},
		Fallback: CareerStyle{Color: "#3B82F6", Icon: "Code"},
	}
}

// ForCareer returns the style of an exact career title.
func (p Palette) ForCareer(title string) CareerStyle {
	if s, ok := p.Careers[title]; ok {
		return s
	}
	return p.Fallback
}
