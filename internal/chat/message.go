package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one entry of a session transcript. Messages are append-only.
type Message struct {
	ID        string `json:"id"`
	Role      Role   `json:"role"`
	Content   string `json:"content"`
	Timestamp int64  `json:"timestamp"` // epoch milliseconds
}

// HistoryItem is a transcript entry as sent to the chat backend.
type HistoryItem struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"` // RFC3339
}

type Source struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	Page    int    `json:"page"`
	URL     string `json:"url"`
}

type Request struct {
	Message             string        `json:"message" binding:"required"`
	ConversationHistory []HistoryItem `json:"conversation_history"`
	SessionID           string        `json:"session_id"`
}

type Response struct {
	Answer         string   `json:"answer"`
	Sources        []Source `json:"sources"`
	Blocked        bool     `json:"blocked"`
	Reason         string   `json:"reason"`
	ConversationID string   `json:"conversation_id"`
	NavTarget      string   `json:"nav_target,omitempty"`
}

// ErrTransport marks a failed round trip to the chat backend.
var ErrTransport = errors.New("chat backend unavailable")

// Backend answers a chat request. Implementations return an error wrapping
// ErrTransport when the request could not be completed.
type Backend interface {
	Chat(ctx context.Context, req Request) (*Response, error)
}

// FormatAnswer renders a backend response as assistant message content.
// A blocked response yields its reason instead of the answer.
func FormatAnswer(resp *Response) string {
	if resp.Blocked {
		return resp.Reason
	}
	if len(resp.Sources) == 0 {
		return resp.Answer
	}

	var b strings.Builder
	b.WriteString(resp.Answer)
	b.WriteString("\n\nSources:")
	for _, src := range resp.Sources {
		b.WriteString("\n- ")
		b.WriteString(src.Title)
		if src.URL != "" {
			fmt.Fprintf(&b, " (%s)", src.URL)
		}
	}
	return b.String()
}
