package interview

import (
	"context"
	"fmt"
	"strings"

	"github.com/hireform/hireform/internal/providers/llm"
	"github.com/hireform/hireform/internal/utils"
)

// GenerateFollowup produces the next adaptive question for a candidate.
//
// The resume gate is enforced here, server-side, regardless of what the
// calling surface already checked: an empty profile never reaches the
// provider. Transport/model errors propagate to the caller; only
// content-quality failures are absorbed by the deterministic fallback.
func GenerateFollowup(ctx context.Context, provider llm.Provider, in FollowupInput) (string, error) {
	const op = "interview.GenerateFollowup"

	if in.Resume.IsEmpty() {
		return "", utils.E(utils.CodeInvalidArgument, op, "Resume required", nil)
	}

	system, user := FollowupPrompt(in)

	raw, err := provider.Generate(ctx, system, user, FollowupTemperature)
	if err != nil {
		return "", utils.E(utils.CodeInternal, op, "AI request failed", err)
	}

	q := CleanQuestion(raw)
	if q == "" || IsTooGeneric(q) {
		q = FallbackQuestion(in)
	}
	return q, nil
}

// CleanQuestion strips the quoting/bullet debris models like to emit around
// a single-line answer.
func CleanQuestion(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimLeft(s, "\"'`•-– \t\n")
	s = strings.TrimRight(s, "\"'` \t\n")
	return strings.TrimSpace(s)
}

// FallbackQuestion is the deterministic replacement when model output fails
// quality checks. Still anchored to the resume when possible: most recent
// company, else first project, else a generic anchor.
func FallbackQuestion(in FollowupInput) string {
	anchor := "your most recent work"
	if r := in.Resume; r != nil {
		switch {
		case len(r.WorkExperience) > 0 && r.WorkExperience[0].Company != "":
			anchor = r.WorkExperience[0].Company
		case len(r.Projects) > 0 && r.Projects[0].Name != "":
			anchor = r.Projects[0].Name
		}
	}
	return fmt.Sprintf(
		"On %s, what tradeoff did you make that you'd handle differently if the constraints changed (timeline, scale, or reliability)?",
		anchor,
	)
}
