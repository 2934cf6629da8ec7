// Package chat holds the visitor-facing chat session and the client for the
// chat backend it talks to.
package chat

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/agenthands/folio/internal/navigation"
)

const (
	FallbackMessage = "Sorry, I encountered an error processing your request. Please try again."
	SendError       = "Failed to send message. Please try again."
)

// Snapshot is a copy of the session state at one point in time.
type Snapshot struct {
	SessionID string    `json:"session_id"`
	Messages  []Message `json:"messages"`
	Loading   bool      `json:"loading"`
	Err       string    `json:"error,omitempty"`
}

// Session is one visitor's conversation. It is created once per application
// instance and shared by reference with everything that needs it.
//
// Send may be called concurrently; each call runs independently and
// messages are appended in completion order.
type Session struct {
	Backend Backend

	// OnNavigate, when set, receives the section a successful exchange
	// points at.
	OnNavigate func(navigation.Section)

	UUIDGenerator func() string
	Clock         func() time.Time

	id string

	mu          sync.Mutex
	messages    []Message
	loading     bool
	err         string
	subscribers map[int]func(Snapshot)
	nextSub     int
}

func NewSession(backend Backend) *Session {
	return &Session{
		Backend:       backend,
		UUIDGenerator: func() string { return uuid.New().String() },
		Clock:         time.Now,
		id:            uuid.New().String(),
		subscribers:   make(map[int]func(Snapshot)),
	}
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	msgs := make([]Message, len(s.messages))
	copy(msgs, s.messages)
	return Snapshot{
		SessionID: s.id,
		Messages:  msgs,
		Loading:   s.loading,
		Err:       s.err,
	}
}

// Subscribe registers fn to be called with a fresh snapshot after every
// state change. The returned function removes the subscription.
func (s *Session) Subscribe(fn func(Snapshot)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subscribers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subscribers, id)
		s.mu.Unlock()
	}
}

// Send appends text as a user message and appends the assistant's reply.
// Blank input is ignored. Send blocks until the reply is appended; run it in
// a goroutine to keep the caller responsive.
func (s *Session) Send(ctx context.Context, text string) {
	if strings.TrimSpace(text) == "" {
		return
	}

	user := s.newMessage(RoleUser, text)

	s.mu.Lock()
	s.messages = append(s.messages, user)
	s.loading = true
	s.err = ""
	history := s.historyLocked()
	s.mu.Unlock()
	s.notify()

	defer s.finish()

	if IsInappropriate(text) {
		s.appendAssistant(RefusalMessage, "")
		return
	}

	resp, err := s.Backend.Chat(ctx, Request{
		Message:             text,
		ConversationHistory: history,
		SessionID:           s.id,
	})
	if err != nil {
		s.appendAssistant(FallbackMessage, SendError)
		return
	}

	s.appendAssistant(FormatAnswer(resp), "")

	if !resp.Blocked {
		s.navigate(resp.NavTarget, text)
	}
}

// Clear drops the transcript and the last error. The session id is kept.
func (s *Session) Clear() {
	s.mu.Lock()
	s.messages = nil
	s.err = ""
	s.mu.Unlock()
	s.notify()
}

func (s *Session) navigate(target, text string) {
	if s.OnNavigate == nil {
		return
	}
	if target != "" {
		if section, err := navigation.ParseSection(target); err == nil {
			s.OnNavigate(section)
			return
		}
	}
	if section, ok := navigation.MapQueryToSection(text); ok {
		s.OnNavigate(section)
	}
}

func (s *Session) newMessage(role Role, content string) Message {
	return Message{
		ID:        s.UUIDGenerator(),
		Role:      role,
		Content:   content,
		Timestamp: s.Clock().UnixMilli(),
	}
}

func (s *Session) appendAssistant(content, errMsg string) {
	msg := s.newMessage(RoleAssistant, content)

	s.mu.Lock()
	s.messages = append(s.messages, msg)
	if errMsg != "" {
		s.err = errMsg
	}
	s.mu.Unlock()
	s.notify()
}

func (s *Session) finish() {
	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()
	s.notify()
}

func (s *Session) historyLocked() []HistoryItem {
	history := make([]HistoryItem, len(s.messages))
	for i, m := range s.messages {
		history[i] = HistoryItem{
			Role:      string(m.Role),
			Content:   m.Content,
			Timestamp: time.UnixMilli(m.Timestamp).UTC().Format(time.RFC3339),
		}
	}
	return history
}

func (s *Session) notify() {
	s.mu.Lock()
	snap := s.snapshotLocked()
	fns := make([]func(Snapshot), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}
