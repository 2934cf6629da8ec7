package assistant

import (
	"strings"
	"unicode"

	"github.com/agenthands/folio/internal/chat"
	"github.com/agenthands/folio/internal/portfolio"
)

const snippetLength = 200

var stopWords = map[string]bool{
	"the": true, "and": true, "you": true, "your": true, "what": true,
	"who": true, "how": true, "are": true, "for": true, "with": true,
	"about": true, "does": true, "did": true, "have": true, "has": true,
	"tell": true, "can": true, "which": true, "any": true, "was": true, "were": true,
}

// queryWords returns the distinct lower-cased words of q that are at least
// three characters long and not stop words.
func queryWords(q string) []string {
	fields := strings.FieldsFunc(strings.ToLower(q), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	seen := make(map[string]bool, len(fields))
	var out []string
	for _, f := range fields {
		if len([]rune(f)) < 3 || stopWords[f] || seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	return out
}

func containsAny(text string, words []string) bool {
	text = strings.ToLower(text)
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}

// retrieve picks up to limit projects and experience entries mentioning a
// word of the query. Projects come first.
func retrieve(query string, profile *portfolio.Profile, projects *portfolio.Projects, limit int) []chat.Source {
	words := queryWords(query)
	if len(words) == 0 || limit <= 0 {
		return nil
	}

	var out []chat.Source
	if projects != nil {
		for _, p := range projects.Projects {
			if len(out) == limit {
				return out
			}
			text := strings.Join(append([]string{p.Name, p.Description, p.Role, p.Outcome}, p.Stack...), " ")
			if !containsAny(text, words) {
				continue
			}
			url := p.DemoURL
			if url == "" {
				url = p.RepoURL
			}
			out = append(out, chat.Source{Title: p.Name, Snippet: truncate(p.Description), URL: url})
		}
	}
	if profile != nil {
		for _, e := range profile.Experience {
			if len(out) == limit {
				return out
			}
			text := strings.Join(append([]string{e.Company, e.Position, e.Location}, e.Highlights...), " ")
			if !containsAny(text, words) {
				continue
			}
			out = append(out, chat.Source{
				Title:   e.Position + " at " + e.Company,
				Snippet: truncate(strings.Join(e.Highlights, " ")),
			})
		}
	}
	return out
}

func truncate(s string) string {
	r := []rune(s)
	if len(r) <= snippetLength {
		return s
	}
	return strings.TrimSpace(string(r[:snippetLength])) + "..."
}
