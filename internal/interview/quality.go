package interview

import "strings"

// HR-cliche phrases that mark a question as generic regardless of anything else.
var clichePhrases = []string{
	"alignment",
	"passion",
	"culture fit",
	"weaknesses",
	"strengths",
	"why should we hire",
	"tell me about yourself",
}

// Robotic lead-ins the model is told to avoid; catching them here covers the
// cases where it ignores the instruction.
var genericLeadins = []string{
	"you did",
	"i see",
	"based on",
	"it seems",
	"from your resume",
}

// IsTooGeneric rejects candidate-facing questions that read generic or
// robotic. Pure function; false positives only cost us the deterministic
// fallback, never an error.
func IsTooGeneric(q string) bool {
	s := strings.TrimSpace(q)
	if len(s) < 12 {
		return true
	}
	if !strings.HasSuffix(s, "?") {
		return true
	}

	lower := strings.ToLower(s)
	for _, p := range clichePhrases {
		if strings.Contains(lower, p) {
			return true
		}
	}
	for _, p := range genericLeadins {
		if strings.HasPrefix(lower, p) {
			return true
		}
	}
	return false
}
