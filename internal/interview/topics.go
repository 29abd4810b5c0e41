package interview

import (
	"regexp"
	"strings"

	"github.com/hireform/hireform/internal/models"
)

// maxCoveredTopics bounds the token set passed into the generation prompt.
const maxCoveredTopics = 120

// Tokens that look like tech/company/project names: alphanumeric runs of
// length >= 3, permitting + . - _ after the first character.
var topicToken = regexp.MustCompile(`[a-z0-9][a-z0-9+.\-_]{2,}`)

var topicStopwords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "with": {},
	"you": {}, "your": {}, "this": {}, "that": {}, "from": {},
}

// CoveredTopics derives a bag of already-discussed tokens from prior
// question/answer history. It is a heuristic repetition signal, not a
// semantic one: the generator is told not to re-ask about these, but
// nothing enforces exclusion programmatically.
func CoveredTopics(history []models.QA) []string {
	var sb strings.Builder
	for _, qa := range history {
		sb.WriteString(strings.ToLower(qa.Question))
		sb.WriteString(" ")
		sb.WriteString(strings.ToLower(qa.Answer))
		sb.WriteString(" ")
	}

	seen := map[string]struct{}{}
	out := make([]string, 0, 32)
	for _, w := range topicToken.FindAllString(sb.String(), -1) {
		if _, stop := topicStopwords[w]; stop {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
		if len(out) >= maxCoveredTopics {
			break
		}
	}
	return out
}
