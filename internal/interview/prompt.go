package interview

import (
	"encoding/json"
	"unicode/utf8"

	"github.com/hireform/hireform/internal/models"
)

// Bounds on the generation context. Truncation is a deliberate lossy policy
// to cap prompt size and cost: callers must not assume the model sees full
// history once it exceeds maxHistoryEntries turns.
const (
	maxRoleSummaryChars = 1200
	maxBaseQuestions    = 12
	maxHistoryEntries   = 12
	maxSummaryAnswers   = 25
)

// Temperatures per call site, matching how tightly each output is constrained.
const (
	FollowupTemperature      float32 = 0.55
	SummaryTemperature       float32 = 0.4
	ResumeProfileTemperature float32 = 0.2
)

type FollowupInput struct {
	Mode          string // "owner" | "public"
	RoleSummary   string
	BaseQuestions []string
	History       []models.QA
	Resume        *models.ResumeProfile
}

type SummaryInput struct {
	FormName    string
	FormSummary string
	Answers     []models.QA
	Resume      *models.ResumeProfile
}

const followupSystem = `You are a senior hiring manager conducting a fast, high-signal screen.
Your output must feel like a real human wrote it.

You NEVER ask generic questions.
You ALWAYS anchor to a resume-specific detail (company / project / metric / tool used in context).

Rules (hard):
- Output EXACTLY one question (no preface, no quotes, no bullets).
- 1-2 sentences max.
- Must reference at least ONE specific noun from the resume profile:
  company, project name, technology used, metric, feature, domain, or achievement.
- Must probe decision-making: tradeoffs, scope, constraints, debugging, ownership, impact.
- No repeating topics already covered (use covered_tokens + history).
- Avoid robotic phrasing like: "You did X...", "I see...", "Based on your resume..."
- Avoid canned prompts: "walk me through" / "tell me about" (use at most once TOTAL; prefer alternatives).
- Never ask about protected characteristics.

Quality checks (hard):
- If your question could apply to ANY candidate, it is invalid.
- If your question doesn't mention something resume-specific, it is invalid.

You may be creative, but never silly: be sharp, concrete, and useful.`

const followupUserPreamble = `Use this process internally:

Step 1 (ANCHOR): Pick ONE anchor not covered yet.
Anchors must be taken from work_experience[].highlights OR projects[] OR a specific skill used in context.

Step 2 (ARCHETYPE): Choose ONE archetype:
- Decision+Tradeoff
- Ownership+Scope
- DepthCheck(tool-in-context)
- Reflection/Regret (rare)

Step 3 (QUESTION): Write the best possible question using the chosen anchor + archetype.

Output ONLY the final question sentence(s).

INPUT:
`

// followupContext is the bounded, serialized view of the conversation the
// model is allowed to see.
type followupContext struct {
	Mode          string                `json:"mode"`
	RoleSummary   string                `json:"role_summary"`
	BaseQuestions []string              `json:"base_questions"`
	History       []models.QA           `json:"history"`
	Resume        *models.ResumeProfile `json:"resume"`
	CoveredTokens []string              `json:"covered_tokens"`
}

// FollowupPrompt builds the follow-up generation prompt from a bounded
// context. Pure: no transport, no side effects.
func FollowupPrompt(in FollowupInput) (system, user string) {
	summary := truncate(in.RoleSummary, maxRoleSummaryChars)

	base := in.BaseQuestions
	if len(base) > maxBaseQuestions {
		base = base[:maxBaseQuestions]
	}

	history := in.History
	if len(history) > maxHistoryEntries {
		history = history[len(history)-maxHistoryEntries:]
	}

	cctx := followupContext{
		Mode:          in.Mode,
		RoleSummary:   summary,
		BaseQuestions: base,
		History:       history,
		Resume:        in.Resume,
		CoveredTokens: CoveredTopics(in.History),
	}

	b, _ := json.Marshal(cctx)
	return followupSystem, followupUserPreamble + string(b)
}

const summarySystem = `You are an experienced recruiter writing a hiring-manager-ready candidate intro.

Hard rules:
- Be specific. NO generic filler like "candidate submitted an application".
- Only use facts present in the input. Do NOT invent companies, degrees, metrics, or years.
- If form.summary describes a role, tailor the summary to that role (alignment + gaps).
- Return ONLY valid JSON matching the schema exactly. No markdown. No extra keys.`

const summaryUserPreamble = `SCHEMA (must match exactly):
{
  "candidate_name": string,
  "one_liner": string,
  "strengths": string[],
  "risks": string[],
  "recommended_next_step": string,
  "strength_chips": string[]
}

Rules:
- one_liner: 2-4 sentences, concrete, role-relative if possible.
- strengths: 2-5 bullets tied to specific evidence.
- risks: 0-3 bullets only if there are real gaps or missing info.
- strength_chips: 3-6 short tags (1-3 words), concrete skills/tools/signals, no fluff.

INPUT:
`

type summaryContext struct {
	Form struct {
		Name    string `json:"name"`
		Summary string `json:"summary"`
	} `json:"form"`
	Candidate struct {
		Name string `json:"name"`
	} `json:"candidate"`
	Resume  *models.ResumeProfile `json:"resume_profile"`
	Answers []models.QA           `json:"answers"`
}

// SummaryPrompt builds the candidate-summary prompt, capped to the first
// maxSummaryAnswers answers.
func SummaryPrompt(in SummaryInput, candidateName string) (system, user string) {
	answers := in.Answers
	if len(answers) > maxSummaryAnswers {
		answers = answers[:maxSummaryAnswers]
	}

	var cctx summaryContext
	cctx.Form.Name = in.FormName
	cctx.Form.Summary = in.FormSummary
	cctx.Candidate.Name = candidateName
	cctx.Resume = in.Resume
	cctx.Answers = answers

	b, _ := json.MarshalIndent(cctx, "", "  ")
	return summarySystem, summaryUserPreamble + string(b)
}

// truncate cuts s to at most max bytes without splitting a UTF-8 rune.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max]
}
