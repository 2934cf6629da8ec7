package chat

import "strings"

const RefusalMessage = "I can't respond to that type of message. Let's keep the conversation professional."

var inappropriateTerms = []string{
	"inappropriate",
	"offensive",
	"slur",
	"vulgar",
	"explicit",
}

// IsInappropriate reports whether text contains a blocked term.
func IsInappropriate(text string) bool {
	lower := strings.ToLower(text)
	for _, term := range inappropriateTerms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}
