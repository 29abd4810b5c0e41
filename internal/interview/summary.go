package interview

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/hireform/hireform/internal/models"
	"github.com/hireform/hireform/internal/providers/llm"
)

// SummaryResult makes "summary failed" a representable state instead of an
// implicit null: Source records how the summary came to be, Err holds the
// underlying failure when it did not.
type SummaryResult struct {
	Summary models.Summary
	Source  string // models.SummaryGenerated | models.SummaryFallback | models.SummaryFailed
	Err     error
}

// GenerateSummary converts a finished response into a hire-readout. It never
// returns an error to the caller: transport and parse failures both degrade
// to the deterministic fallback, and the result records which path was taken.
func GenerateSummary(ctx context.Context, provider llm.Provider, in SummaryInput) SummaryResult {
	name := candidateName(in)

	system, user := SummaryPrompt(in, name)

	raw, err := provider.Generate(ctx, system, user, SummaryTemperature)
	if err != nil {
		return SummaryResult{
			Summary: fallbackSummary(in, name),
			Source:  models.SummaryFailed,
			Err:     err,
		}
	}

	parsed, ok := parseSummary(raw)
	if !ok || parsed.OneLiner == "" {
		return SummaryResult{
			Summary: fallbackSummary(in, name),
			Source:  models.SummaryFallback,
		}
	}

	return SummaryResult{
		Summary: normalizeSummary(parsed, name),
		Source:  models.SummaryGenerated,
	}
}

// candidateName prefers the answer to a base question mentioning "name",
// then the resume, then a literal placeholder.
func candidateName(in SummaryInput) string {
	for _, qa := range in.Answers {
		if strings.Contains(strings.ToLower(qa.Question), "name") {
			if a := strings.TrimSpace(qa.Answer); a != "" {
				return a
			}
		}
	}
	if in.Resume != nil && in.Resume.Name != "" {
		return in.Resume.Name
	}
	return "Candidate"
}

func parseSummary(raw string) (models.Summary, bool) {
	s := strings.TrimSpace(raw)
	// Tolerate fenced output even though the prompt forbids it.
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSpace(s)

	var parsed models.Summary
	if err := json.Unmarshal([]byte(s), &parsed); err != nil {
		return models.Summary{}, false
	}
	return parsed, true
}

// normalizeSummary forces every field to its declared type and bounds:
// arrays never null, strings never empty where the schema says so.
func normalizeSummary(parsed models.Summary, name string) models.Summary {
	if parsed.CandidateName == "" {
		parsed.CandidateName = name
	}
	if parsed.RecommendedNextStep == "" {
		parsed.RecommendedNextStep = "Review application and choose next steps."
	}
	parsed.Strengths = clampList(parsed.Strengths, 5)
	parsed.Risks = clampList(parsed.Risks, 3)
	parsed.StrengthChips = clampList(parsed.StrengthChips, 6)
	return parsed
}

func clampList(v []string, max int) []string {
	if v == nil {
		return []string{}
	}
	if len(v) > max {
		return v[:max]
	}
	return v
}

func fallbackSummary(in SummaryInput, name string) models.Summary {
	formName := in.FormName
	if formName == "" {
		formName = "this role"
	}

	var skills []string
	if in.Resume != nil {
		skills = in.Resume.Skills
	}
	chips := clampList(skills, 6)

	strengths := []string{}
	if len(chips) > 0 {
		strengths = []string{"Skills listed: " + strings.Join(chips, ", ")}
	}

	return models.Summary{
		CandidateName:       name,
		OneLiner:            name + " applied for " + formName + ".",
		Strengths:           strengths,
		Risks:               []string{"AI summary failed to generate; review resume and answers manually."},
		RecommendedNextStep: "Review application details and decide whether to screen.",
		StrengthChips:       chips,
	}
}
