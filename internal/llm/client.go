package llm

import (
	"context"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	Role    Role
	Content string
}

// Client completes a conversation. system carries the instructions and
// context; messages hold the conversation so far, oldest first, ending with
// the user's latest turn.
type Client interface {
	Complete(ctx context.Context, system string, messages []Message) (string, error)
}

// mergeTurns joins consecutive messages from the same role, for providers
// that require user and assistant turns to alternate.
func mergeTurns(messages []Message) []Message {
	var out []Message
	for _, m := range messages {
		if n := len(out); n > 0 && out[n-1].Role == m.Role {
			out[n-1].Content += "\n\n" + m.Content
			continue
		}
		out = append(out, m)
	}
	return out
}
