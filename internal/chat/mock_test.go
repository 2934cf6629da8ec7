package chat

import (
	"context"
	"sync"
)

type MockBackend struct {
	mu       sync.Mutex
	Requests []Request
	Response *Response
	Err      error

	// Gate, when set, blocks Chat until a value arrives for the request's message.
	Gate map[string]chan struct{}
}

func (m *MockBackend) Chat(ctx context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	m.Requests = append(m.Requests, req)
	gate := m.Gate[req.Message]
	m.mu.Unlock()

	if gate != nil {
		<-gate
	}
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Response != nil {
		return m.Response, nil
	}
	return &Response{Answer: "echo: " + req.Message}, nil
}

func (m *MockBackend) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Requests)
}
