package assistant

import (
	"encoding/json"
	"fmt"
	"strings"
)

// parseJSON extracts the outermost JSON object from a model reply and
// unmarshals it into T. Models often wrap JSON in markdown fences or prose.
func parseJSON[T any](reply string) (T, error) {
	var zero T

	start := strings.IndexByte(reply, '{')
	if start == -1 {
		return zero, fmt.Errorf("no JSON object found in reply (missing '{')")
	}
	end := strings.LastIndexByte(reply, '}')
	if end < start {
		return zero, fmt.Errorf("no JSON object found in reply (missing '}')")
	}

	var result T
	if err := json.Unmarshal([]byte(reply[start:end+1]), &result); err != nil {
		return zero, fmt.Errorf("failed to unmarshal JSON: %w", err)
	}
	return result, nil
}

type envelope struct {
	Answer string `json:"answer"`
}

// parseAnswer returns the "answer" field of a JSON reply, or the trimmed
// reply itself when it carries none.
func parseAnswer(reply string) string {
	env, err := parseJSON[envelope](reply)
	if err != nil || strings.TrimSpace(env.Answer) == "" {
		return strings.TrimSpace(reply)
	}
	return strings.TrimSpace(env.Answer)
}
