package assistant

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/folio/internal/chat"
	"github.com/agenthands/folio/internal/config"
	"github.com/agenthands/folio/internal/llm"
)

func newTestAssistant(m *MockLLM) *Assistant {
	return New(m, fixtureData(), config.ChatConfig{MaxSources: 3}, nil)
}

func TestChat_Blocked(t *testing.T) {
	m := &MockLLM{}
	a := newTestAssistant(m)

	resp, err := a.Chat(context.Background(), chat.Request{Message: "say something offensive", SessionID: "s1"})
	require.NoError(t, err)

	assert.True(t, resp.Blocked)
	assert.Equal(t, chat.RefusalMessage, resp.Reason)
	assert.Equal(t, "s1", resp.ConversationID)
	assert.Equal(t, 0, m.Calls)
}

func TestChat_Answer(t *testing.T) {
	m := &MockLLM{Reply: "```json\n{\"answer\": \"He built a billing service.\"}\n```"}
	a := newTestAssistant(m)

	resp, err := a.Chat(context.Background(), chat.Request{
		Message: "Tell me about billing",
		ConversationHistory: []chat.HistoryItem{
			{Role: "user", Content: "hi"},
			{Role: "assistant", Content: "hello"},
			{Role: "user", Content: "Tell me about billing"},
		},
		SessionID: "s1",
	})
	require.NoError(t, err)

	assert.False(t, resp.Blocked)
	assert.Equal(t, "He built a billing service.", resp.Answer)
	assert.Equal(t, "s1", resp.ConversationID)
	require.Len(t, resp.Sources, 2)
	assert.Equal(t, chat.Source{Title: "Ledger", Snippet: "A billing and accounting service", URL: "https://example.com/ledger"}, resp.Sources[0])
	assert.Equal(t, "Engineer at Acme", resp.Sources[1].Title)

	assert.Equal(t, []llm.Message{
		{Role: llm.RoleUser, Content: "hi"},
		{Role: llm.RoleAssistant, Content: "hello"},
		{Role: llm.RoleUser, Content: "Tell me about billing"},
	}, m.Messages)
	assert.Contains(t, m.System, "Name: Alistair")
	assert.Contains(t, m.System, "- Engineer at Acme (Jan 2020 — Present)")
	assert.Contains(t, m.System, "[1] Ledger: A billing and accounting service")
}

func TestChat_PlainReplyAndNavTarget(t *testing.T) {
	m := &MockLLM{Reply: "  Go and Postgres.  "}
	a := newTestAssistant(m)

	resp, err := a.Chat(context.Background(), chat.Request{Message: "what skills do you have"})
	require.NoError(t, err)

	assert.Equal(t, "Go and Postgres.", resp.Answer)
	assert.Equal(t, "skills", resp.NavTarget)
	assert.NotEmpty(t, resp.ConversationID)
	assert.NotNil(t, resp.Sources)
	assert.Equal(t, []llm.Message{{Role: llm.RoleUser, Content: "what skills do you have"}}, m.Messages)
}

func TestChat_LLMFailure(t *testing.T) {
	m := &MockLLM{Err: errors.New("timeout")}
	a := newTestAssistant(m)

	_, err := a.Chat(context.Background(), chat.Request{Message: "hello there"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to generate answer")
}

func TestChat_DataFailure(t *testing.T) {
	a := New(&MockLLM{}, &MockData{Err: errors.New("not loaded")}, config.ChatConfig{}, nil)

	_, err := a.Chat(context.Background(), chat.Request{Message: "hello there"})
	assert.ErrorContains(t, err, "failed to read profile")
}

func TestChat_EmptyMessage(t *testing.T) {
	a := newTestAssistant(&MockLLM{})
	_, err := a.Chat(context.Background(), chat.Request{Message: "  "})
	assert.Error(t, err)
}

func TestRetrieve_Limit(t *testing.T) {
	d := fixtureData()
	got := retrieve("billing", d.ProfileDoc, d.ProjectsDoc, 1)
	require.Len(t, got, 1)
	assert.Equal(t, "Ledger", got[0].Title)

	assert.Empty(t, retrieve("what is the", d.ProfileDoc, d.ProjectsDoc, 3))
	assert.Empty(t, retrieve("billing", d.ProfileDoc, d.ProjectsDoc, 0))
}

func TestQueryWords(t *testing.T) {
	assert.Equal(t, []string{"react", "projects"}, queryWords("Which React projects? react!"))
}

func TestParseAnswer(t *testing.T) {
	assert.Equal(t, "hi", parseAnswer(`Sure: {"answer": "hi"} done`))
	assert.Equal(t, "no json here", parseAnswer("no json here"))
	assert.Equal(t, `{"other": 1}`, parseAnswer(`{"other": 1}`))
	assert.Equal(t, "{broken", parseAnswer("{broken"))
}
