package interview

import (
	"context"
	"errors"
	"testing"

	"github.com/hireform/hireform/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validSummaryJSON = `{
  "candidate_name": "Dana Velez",
  "one_liner": "Backend engineer with three years at Acme Robotics, focused on latency work.",
  "strengths": ["Cut p99 latency 40% at Acme Robotics", "Owns Kafka pipeline end to end"],
  "risks": ["No production Go before Acme"],
  "recommended_next_step": "Schedule a systems screen.",
  "strength_chips": ["Go", "Kafka", "Latency tuning"]
}`

func summaryInput() SummaryInput {
	return SummaryInput{
		FormName:    "Backend Engineer",
		FormSummary: "We need someone who has run Postgres at scale.",
		Answers: []models.QA{
			{Question: "What's your name?", Answer: "Dana Velez"},
			{Question: "Biggest shipped system?", Answer: "Fleet scheduler on Kafka"},
		},
		Resume: sampleResume(),
	}
}

func TestGenerateSummary_ParsesModelOutput(t *testing.T) {
	p := &fakeProvider{out: validSummaryJSON}

	res := GenerateSummary(context.Background(), p, summaryInput())

	assert.Equal(t, models.SummaryGenerated, res.Source)
	assert.NoError(t, res.Err)
	assert.Equal(t, "Dana Velez", res.Summary.CandidateName)
	assert.Equal(t, "Schedule a systems screen.", res.Summary.RecommendedNextStep)
	assert.Len(t, res.Summary.Strengths, 2)
	assert.Equal(t, SummaryTemperature, p.lastTemp)
}

func TestGenerateSummary_ToleratesFencedJSON(t *testing.T) {
	p := &fakeProvider{out: "```json\n" + validSummaryJSON + "\n```"}

	res := GenerateSummary(context.Background(), p, summaryInput())

	assert.Equal(t, models.SummaryGenerated, res.Source)
	assert.Equal(t, "Dana Velez", res.Summary.CandidateName)
}

func TestGenerateSummary_TransportErrorFallsBack(t *testing.T) {
	wantErr := errors.New("connection reset")
	p := &fakeProvider{err: wantErr}

	res := GenerateSummary(context.Background(), p, summaryInput())

	assert.Equal(t, models.SummaryFailed, res.Source)
	assert.ErrorIs(t, res.Err, wantErr)
	assert.Equal(t, "Dana Velez applied for Backend Engineer.", res.Summary.OneLiner)
	assert.Equal(t, []string{"AI summary failed to generate; review resume and answers manually."}, res.Summary.Risks)
	assert.Equal(t, "Review application details and decide whether to screen.", res.Summary.RecommendedNextStep)
}

func TestGenerateSummary_UnparseableOutputFallsBack(t *testing.T) {
	for _, out := range []string{"not json at all", `{"strengths": []}`} {
		p := &fakeProvider{out: out}

		res := GenerateSummary(context.Background(), p, summaryInput())

		assert.Equal(t, models.SummaryFallback, res.Source, "output %q", out)
		assert.NoError(t, res.Err)
		assert.Equal(t, "Dana Velez", res.Summary.CandidateName)
		assert.NotEmpty(t, res.Summary.OneLiner)
	}
}

func TestGenerateSummary_StructurallyValid(t *testing.T) {
	// Overflowing arrays come back clamped, missing fields come back filled.
	p := &fakeProvider{out: `{
		"one_liner": "Strong latency background.",
		"strengths": ["a","b","c","d","e","f","g"],
		"risks": ["a","b","c","d"],
		"strength_chips": ["a","b","c","d","e","f","g","h"]
	}`}

	res := GenerateSummary(context.Background(), p, summaryInput())

	require.Equal(t, models.SummaryGenerated, res.Source)
	assert.Equal(t, "Dana Velez", res.Summary.CandidateName)
	assert.Len(t, res.Summary.Strengths, 5)
	assert.Len(t, res.Summary.Risks, 3)
	assert.Len(t, res.Summary.StrengthChips, 6)
	assert.Equal(t, "Review application and choose next steps.", res.Summary.RecommendedNextStep)
}

func TestGenerateSummary_NeverNilArrays(t *testing.T) {
	p := &fakeProvider{out: `{"one_liner": "Fine candidate overall."}`}

	res := GenerateSummary(context.Background(), p, summaryInput())

	require.Equal(t, models.SummaryGenerated, res.Source)
	assert.NotNil(t, res.Summary.Strengths)
	assert.NotNil(t, res.Summary.Risks)
	assert.NotNil(t, res.Summary.StrengthChips)
}

func TestGenerateSummary_FallbackChipsFromSkills(t *testing.T) {
	in := summaryInput()
	in.Resume.Skills = []string{"Go", "Postgres", "Kafka", "Redis", "GCS", "Gin", "GORM"}
	p := &fakeProvider{err: errors.New("boom")}

	res := GenerateSummary(context.Background(), p, in)

	assert.Len(t, res.Summary.StrengthChips, 6)
	assert.Equal(t, []string{"Skills listed: Go, Postgres, Kafka, Redis, GCS, Gin"}, res.Summary.Strengths)
}

func TestCandidateName_Priority(t *testing.T) {
	// Name answer wins over the resume.
	assert.Equal(t, "Dana Velez", candidateName(summaryInput()))

	// Resume name when no name question was asked.
	in := summaryInput()
	in.Answers = []models.QA{{Question: "Biggest system?", Answer: "Scheduler"}}
	assert.Equal(t, "Dana Velez", candidateName(in))
	in.Resume.Name = "Sam Ortiz"
	assert.Equal(t, "Sam Ortiz", candidateName(in))

	// Placeholder when nothing is known.
	assert.Equal(t, "Candidate", candidateName(SummaryInput{}))

	// Blank name answers are skipped.
	in2 := SummaryInput{Answers: []models.QA{{Question: "Your name?", Answer: "   "}}}
	assert.Equal(t, "Candidate", candidateName(in2))
}
