package model

// Profile is the biography shown on the home page.
type Profile struct {
	Name       string       `json:"name" yaml:"name"`
	Initials   string       `json:"initials" yaml:"initials"`
	Headline   string       `json:"headline" yaml:"headline"`
	Bio        []string     `json:"bio" yaml:"bio"`
	Location   string       `json:"location,omitempty" yaml:"location"`
	Email      string       `json:"email,omitempty" yaml:"email"`
	Phone      string       `json:"phone,omitempty" yaml:"phone"`
	Links      []SocialLink `json:"links,omitempty" yaml:"links"`
	Skills     []SkillGroup `json:"skills" yaml:"skills"`
	Experience []Experience `json:"experience" yaml:"experience"`
	Education  []Education  `json:"education" yaml:"education"`
	Stats      []Stat       `json:"stats,omitempty" yaml:"stats"`
}

// SocialLink points at an external profile.
type SocialLink struct {
	Label string `json:"label" yaml:"label"`
	URL   string `json:"url" yaml:"url"`
}

// SkillGroup is a named list of skills with a self-assessed level (0-100).
type SkillGroup struct {
	Name   string  `json:"name" yaml:"name"`
	Skills []Skill `json:"skills" yaml:"skills"`
}

// Skill is a single skill entry.
type Skill struct {
	Name  string `json:"name" yaml:"name"`
	Level int    `json:"level,omitempty" yaml:"level"`
}

// Experience is one position in the work history.
type Experience struct {
	Role       string   `json:"role" yaml:"role"`
	Company    string   `json:"company" yaml:"company"`
	Start      string   `json:"start" yaml:"start"`
	End        string   `json:"end" yaml:"end"`
	Highlights []string `json:"highlights" yaml:"highlights"`
}

// Education is a degree or certification.
type Education struct {
	Degree      string   `json:"degree" yaml:"degree"`
	Institution string   `json:"institution" yaml:"institution"`
	Start       string   `json:"start" yaml:"start"`
	End         string   `json:"end" yaml:"end"`
	Highlights  []string `json:"highlights,omitempty" yaml:"highlights"`
}

// Stat is a headline number on the home page ("5+ years experience").
type Stat struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}
