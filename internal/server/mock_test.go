package server

import (
	"context"

	"github.com/agenthands/folio/internal/chat"
	"github.com/agenthands/folio/internal/portfolio"
)

type MockPortfolio struct {
	ProfileDoc  *portfolio.Profile
	ProjectsDoc *portfolio.Projects
	Err         error
}

func (m *MockPortfolio) Profile() (*portfolio.Profile, error) {
	return m.ProfileDoc, m.Err
}

func (m *MockPortfolio) Projects() (*portfolio.Projects, error) {
	return m.ProjectsDoc, m.Err
}

type MockBackend struct {
	Response *chat.Response
	Err      error
	Requests []chat.Request
}

func (m *MockBackend) Chat(ctx context.Context, req chat.Request) (*chat.Response, error) {
	m.Requests = append(m.Requests, req)
	return m.Response, m.Err
}
