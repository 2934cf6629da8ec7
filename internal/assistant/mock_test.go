package assistant

import (
	"context"
	"sync"

	"github.com/agenthands/folio/internal/llm"
	"github.com/agenthands/folio/internal/portfolio"
)

type MockLLM struct {
	mu       sync.Mutex
	Reply    string
	Err      error
	System   string
	Messages []llm.Message
	Calls    int
}

func (m *MockLLM) Complete(ctx context.Context, system string, messages []llm.Message) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++
	m.System = system
	m.Messages = messages
	return m.Reply, m.Err
}

type MockData struct {
	ProfileDoc  *portfolio.Profile
	ProjectsDoc *portfolio.Projects
	Err         error
}

func (m *MockData) Profile() (*portfolio.Profile, error) {
	return m.ProfileDoc, m.Err
}

func (m *MockData) Projects() (*portfolio.Projects, error) {
	return m.ProjectsDoc, m.Err
}

func fixtureData() *MockData {
	return &MockData{
		ProfileDoc: &portfolio.Profile{
			Basics: portfolio.Basics{Name: "Alistair", Title: "Engineer", Summary: "Builds things."},
			Skills: []portfolio.SkillCategory{{Category: "Backend", Items: []string{"Go", "Postgres"}}},
			Experience: []portfolio.ExperienceItem{
				{Company: "Acme", Position: "Engineer", StartDate: "2020-01", EndDate: "Present", Highlights: []string{"Built the billing service"}},
			},
		},
		ProjectsDoc: &portfolio.Projects{Projects: []portfolio.Project{
			{ID: "p1", Name: "Ledger", Description: "A billing and accounting service", RepoURL: "https://example.com/ledger"},
			{ID: "p2", Name: "Paint", Description: "A drawing app", Stack: []string{"React"}},
		}},
	}
}
