package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/agenthands/folio/internal/chat"
	"github.com/agenthands/folio/internal/navigation"
)

const (
	welcomeMessage = "Welcome to the portfolio terminal. Type 'help' to see available commands."
	terminalPrompt = "visitor@portfolio:~$ "
	helpText       = `Available commands:
  help   show this message
  clear  clear the conversation
  exit   leave the terminal
Anything else is sent to the assistant.`
)

// terminal runs a line-based chat session. Sends are serialised: the next
// line is read only after the reply arrives.
type terminal struct {
	session *chat.Session
	in      io.Reader
	out     io.Writer
}

func newTerminal(session *chat.Session, in io.Reader, out io.Writer) *terminal {
	t := &terminal{session: session, in: in, out: out}
	session.OnNavigate = func(s navigation.Section) {
		fmt.Fprintf(t.out, "[navigate: #%s]\n", s)
	}
	return t
}

func (t *terminal) Run(ctx context.Context) error {
	fmt.Fprintln(t.out, welcomeMessage)

	scanner := bufio.NewScanner(t.in)
	for {
		fmt.Fprint(t.out, terminalPrompt)
		if !scanner.Scan() {
			fmt.Fprintln(t.out)
			return scanner.Err()
		}
		if ctx.Err() != nil {
			return nil
		}

		line := strings.TrimSpace(scanner.Text())
		switch strings.ToLower(line) {
		case "":
			continue
		case "help":
			fmt.Fprintln(t.out, helpText)
		case "clear":
			t.session.Clear()
			fmt.Fprintln(t.out, "Conversation cleared.")
		case "exit", "quit":
			return nil
		default:
			t.send(ctx, line)
		}
	}
}

func (t *terminal) send(ctx context.Context, line string) {
	before := len(t.session.Snapshot().Messages)
	t.session.Send(ctx, line)

	snap := t.session.Snapshot()
	for _, m := range snap.Messages[before:] {
		if m.Role == chat.RoleAssistant {
			fmt.Fprintln(t.out, m.Content)
		}
	}
	if snap.Err != "" {
		fmt.Fprintf(t.out, "error: %s\n", snap.Err)
	}
}
