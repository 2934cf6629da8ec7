// Package portfolio loads the profile, project and skills-graph documents
// the site is built from and derives the data the pages show.
package portfolio

import (
	"encoding/json"
	"fmt"
)

type SocialLink struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Icon string `json:"icon"`
}

type Basics struct {
	Name         string       `json:"name"`
	Title        string       `json:"title"`
	Tagline      string       `json:"tagline"`
	Email        string       `json:"email"`
	Phone        string       `json:"phone"`
	Location     string       `json:"location"`
	Summary      string       `json:"summary"`
	PersonalNote string       `json:"personalNote"`
	SocialLinks  []SocialLink `json:"socialLinks"`
}

type ExperienceItem struct {
	Company    string   `json:"company"`
	Position   string   `json:"position"`
	Location   string   `json:"location"`
	StartDate  string   `json:"startDate"`
	EndDate    string   `json:"endDate"`
	Highlights []string `json:"highlights"`
}

type EducationItem struct {
	Institution string   `json:"institution"`
	Degree      string   `json:"degree"`
	Location    string   `json:"location"`
	StartDate   string   `json:"startDate"`
	EndDate     string   `json:"endDate"`
	Highlights  []string `json:"highlights"`
}

type Certification struct {
	Name   string `json:"name"`
	Issuer string `json:"issuer"`
	Date   string `json:"date"`
	URL    string `json:"url"`
}

type SkillCategory struct {
	Category string   `json:"category"`
	Items    []string `json:"items"`
}

type Profile struct {
	Basics         Basics           `json:"basics"`
	Skills         []SkillCategory  `json:"skills"`
	Experience     []ExperienceItem `json:"experience"`
	Education      []EducationItem  `json:"education"`
	Certifications []Certification  `json:"certifications"`
}

type Project struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Stack       []string `json:"stack"`
	Role        string   `json:"role"`
	Outcome     string   `json:"outcome"`
	DemoURL     string   `json:"demoUrl"`
	RepoURL     string   `json:"repoUrl"`
	ImageURL    string   `json:"imageUrl"`
	Featured    bool     `json:"featured"`
}

type Projects struct {
	Projects []Project `json:"projects"`
}

// Featured returns the projects flagged as featured, in document order.
func (p *Projects) Featured() []Project {
	var out []Project
	for _, pr := range p.Projects {
		if pr.Featured {
			out = append(out, pr)
		}
	}
	return out
}

func DecodeProfile(data []byte) (*Profile, error) {
	var p Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to decode profile: %w", err)
	}
	if p.Basics.Name == "" {
		return nil, fmt.Errorf("profile basics.name is required")
	}
	return &p, nil
}

func DecodeProjects(data []byte) (*Projects, error) {
	var p Projects
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to decode projects: %w", err)
	}
	seen := make(map[string]bool, len(p.Projects))
	for i, pr := range p.Projects {
		if pr.ID == "" {
			return nil, fmt.Errorf("project %d has no id", i)
		}
		if seen[pr.ID] {
			return nil, fmt.Errorf("duplicate project id %q", pr.ID)
		}
		seen[pr.ID] = true
	}
	return &p, nil
}
