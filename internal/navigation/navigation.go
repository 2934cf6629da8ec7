// Package navigation maps free-text chat input to a portfolio page section.
package navigation

import (
	"fmt"
	"strings"
)

// Section identifies a scrollable region of the portfolio page.
type Section string

const (
	Home       Section = "home"
	About      Section = "about"
	Projects   Section = "projects"
	Skills     Section = "skills"
	Experience Section = "experience"
	Education  Section = "education"
	Contact    Section = "contact"
)

type mapping struct {
	section  Section
	keywords []string
}

// Order matters: the first section with a matching keyword wins.
var mappings = []mapping{
	{Home, []string{"home", "top", "start", "beginning", "main"}},
	{About, []string{"about", "about me", "who are you", "introduction", "bio", "background"}},
	{Projects, []string{"projects", "work", "portfolio", "showcase", "what did you build", "applications", "apps"}},
	{Skills, []string{"skills", "technologies", "tech stack", "programming languages", "frameworks", "tools", "expertise", "what can you do"}},
	{Experience, []string{"experience", "work history", "job history", "employment", "career", "companies", "positions"}},
	{Education, []string{"education", "degrees", "academic", "university", "college", "school", "certifications", "certificates", "qualifications"}},
	{Contact, []string{"contact", "get in touch", "reach out", "email", "message", "connect", "social media"}},
}

// techKeywords route technology questions to the projects section.
var techKeywords = []string{"react", "typescript", "next", "frontend", "web"}

// MapQueryToSection returns the section a query refers to, or false when
// nothing matches.
func MapQueryToSection(query string) (Section, bool) {
	q := strings.ToLower(strings.TrimSpace(query))

	for _, m := range mappings {
		if q == string(m.section) {
			return m.section, true
		}
	}

	for _, m := range mappings {
		for _, kw := range m.keywords {
			if strings.Contains(q, kw) {
				return m.section, true
			}
		}
	}

	for _, kw := range techKeywords {
		if strings.Contains(q, kw) {
			return Projects, true
		}
	}

	return "", false
}

// Sections lists every section id in table order.
func Sections() []Section {
	out := make([]Section, len(mappings))
	for i, m := range mappings {
		out[i] = m.section
	}
	return out
}

func ParseSection(s string) (Section, error) {
	for _, m := range mappings {
		if string(m.section) == s {
			return m.section, nil
		}
	}
	return "", fmt.Errorf("unknown section %q", s)
}
