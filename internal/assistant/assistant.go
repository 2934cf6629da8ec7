// Package assistant answers chat requests about the portfolio with an LLM.
// It is the server side of the chat backend contract.
package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/agenthands/folio/internal/chat"
	"github.com/agenthands/folio/internal/config"
	"github.com/agenthands/folio/internal/llm"
	"github.com/agenthands/folio/internal/navigation"
	"github.com/agenthands/folio/internal/portfolio"
)

// Data provides the documents answers are grounded on.
type Data interface {
	Profile() (*portfolio.Profile, error)
	Projects() (*portfolio.Projects, error)
}

type Assistant struct {
	llm        llm.Client
	data       Data
	prompt     string
	maxSources int
	logger     *zap.Logger
}

func New(client llm.Client, data Data, cfg config.ChatConfig, logger *zap.Logger) *Assistant {
	if logger == nil {
		logger = zap.NewNop()
	}
	prompt := cfg.Prompt
	if prompt == "" {
		prompt = config.DefaultChatPrompt
	}
	return &Assistant{
		llm:        client,
		data:       data,
		prompt:     prompt,
		maxSources: cfg.MaxSources,
		logger:     logger,
	}
}

// Chat implements chat.Backend. Messages caught by the content filter are
// answered as blocked without calling the model.
func (a *Assistant) Chat(ctx context.Context, req chat.Request) (*chat.Response, error) {
	if strings.TrimSpace(req.Message) == "" {
		return nil, fmt.Errorf("message is required")
	}

	conversationID := req.SessionID
	if conversationID == "" {
		conversationID = uuid.New().String()
	}

	if chat.IsInappropriate(req.Message) {
		a.logger.Info("blocked chat message", zap.String("conversation_id", conversationID))
		return &chat.Response{
			Sources:        []chat.Source{},
			Blocked:        true,
			Reason:         chat.RefusalMessage,
			ConversationID: conversationID,
		}, nil
	}

	profile, err := a.data.Profile()
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}
	projects, err := a.data.Projects()
	if err != nil {
		return nil, fmt.Errorf("failed to read projects: %w", err)
	}

	sources := retrieve(req.Message, profile, projects, a.maxSources)
	system := fmt.Sprintf(a.prompt, portfolioContext(profile, projects), formatSources(sources))

	reply, err := a.llm.Complete(ctx, system, conversation(req))
	if err != nil {
		return nil, fmt.Errorf("failed to generate answer: %w", err)
	}

	resp := &chat.Response{
		Answer:         parseAnswer(reply),
		Sources:        sources,
		ConversationID: conversationID,
	}
	if resp.Sources == nil {
		resp.Sources = []chat.Source{}
	}
	if section, ok := navigation.MapQueryToSection(req.Message); ok {
		resp.NavTarget = string(section)
	}

	a.logger.Debug("answered chat message",
		zap.String("conversation_id", conversationID),
		zap.Int("sources", len(sources)),
		zap.String("nav_target", resp.NavTarget))
	return resp, nil
}

// conversation converts the request history into model turns, ending with
// the request message. Clients usually include the new message as the last
// history entry; it is not repeated.
func conversation(req chat.Request) []llm.Message {
	var msgs []llm.Message
	for _, h := range req.ConversationHistory {
		switch chat.Role(h.Role) {
		case chat.RoleUser:
			msgs = append(msgs, llm.Message{Role: llm.RoleUser, Content: h.Content})
		case chat.RoleAssistant:
			msgs = append(msgs, llm.Message{Role: llm.RoleAssistant, Content: h.Content})
		}
	}
	if n := len(msgs); n == 0 || msgs[n-1].Role != llm.RoleUser || msgs[n-1].Content != req.Message {
		msgs = append(msgs, llm.Message{Role: llm.RoleUser, Content: req.Message})
	}
	return msgs
}

func portfolioContext(p *portfolio.Profile, projects *portfolio.Projects) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Name: %s\n", p.Basics.Name)
	if p.Basics.Title != "" {
		fmt.Fprintf(&b, "Title: %s\n", p.Basics.Title)
	}
	if p.Basics.Location != "" {
		fmt.Fprintf(&b, "Location: %s\n", p.Basics.Location)
	}
	if p.Basics.Summary != "" {
		fmt.Fprintf(&b, "Summary: %s\n", p.Basics.Summary)
	}

	if len(p.Skills) > 0 {
		b.WriteString("\nSkills:\n")
		for _, s := range p.Skills {
			fmt.Fprintf(&b, "- %s: %s\n", s.Category, strings.Join(s.Items, ", "))
		}
	}
	if len(p.Experience) > 0 {
		b.WriteString("\nExperience:\n")
		for _, e := range p.Experience {
			fmt.Fprintf(&b, "- %s at %s (%s)\n", e.Position, e.Company, portfolio.FormatDateRange(e.StartDate, e.EndDate))
		}
	}
	if len(p.Education) > 0 {
		b.WriteString("\nEducation:\n")
		for _, e := range p.Education {
			fmt.Fprintf(&b, "- %s, %s\n", e.Degree, e.Institution)
		}
	}
	if projects != nil && len(projects.Projects) > 0 {
		b.WriteString("\nProjects:\n")
		for _, pr := range projects.Projects {
			fmt.Fprintf(&b, "- %s: %s\n", pr.Name, pr.Description)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatSources(sources []chat.Source) string {
	if len(sources) == 0 {
		return "(none)"
	}
	var b strings.Builder
	for i, s := range sources {
		fmt.Fprintf(&b, "[%d] %s: %s\n", i+1, s.Title, s.Snippet)
	}
	return strings.TrimRight(b.String(), "\n")
}
