package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/hireform/hireform/internal/models"
	"github.com/hireform/hireform/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const goodSummaryJSON = `{
  "candidate_name": "Dana Velez",
  "one_liner": "Backend engineer with latency work at Acme Robotics.",
  "strengths": ["Shipped the fleet scheduler"],
  "risks": [],
  "recommended_next_step": "Schedule a systems screen.",
  "strength_chips": ["Go", "Kafka"]
}`

func newResponseService(t *testing.T, provider *fakeLLM) (ResponseService, *fakeResponseRepo, *fakeAILogRepo) {
	t.Helper()
	responses := newFakeResponseRepo()
	logs := &fakeAILogRepo{}
	forms := NewFormService(newFakeFormRepo(storedForm()), newFakeCache())
	svc := NewResponseService(responses, forms, provider, logs, deadRedis(), testLogger())
	return svc, responses, logs
}

func fullHistory() []models.QA {
	return []models.QA{
		{Question: "What's your name?", Answer: "Dana Velez"},
		{Question: "At Acme Robotics, what broke first under load?", Answer: "The scheduler queue"},
	}
}

func TestResponseService_Submit(t *testing.T) {
	svc, responses, logs := newResponseService(t, &fakeLLM{out: goodSummaryJSON})

	row, err := svc.Submit(context.Background(), accessFixture(ModePublic), fullHistory(), resumeFixture())
	require.NoError(t, err)

	assert.NotEmpty(t, row.ID)
	assert.Equal(t, "form-1", row.FormID)
	assert.Equal(t, models.SummaryGenerated, row.SummaryStatus)

	var summary models.Summary
	require.NoError(t, json.Unmarshal(row.Summary, &summary))
	assert.Equal(t, "Dana Velez", summary.CandidateName)

	stored, err := responses.GetByID(context.Background(), row.ID)
	require.NoError(t, err)
	assert.Equal(t, row.SummaryStatus, stored.SummaryStatus)

	require.Len(t, logs.logs, 1)
	assert.Equal(t, models.AILogSummary, logs.logs[0].Kind)
	assert.Equal(t, models.SummaryGenerated, logs.logs[0].Status)
}

func TestResponseService_Submit_MissingAnswers(t *testing.T) {
	svc, _, _ := newResponseService(t, &fakeLLM{out: goodSummaryJSON})

	_, err := svc.Submit(context.Background(), accessFixture(ModePublic), nil, resumeFixture())
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))
	assert.Contains(t, err.Error(), "Missing answers")
}

func TestResponseService_Submit_MissingResume(t *testing.T) {
	svc, _, _ := newResponseService(t, &fakeLLM{out: goodSummaryJSON})

	_, err := svc.Submit(context.Background(), accessFixture(ModePublic), fullHistory(), nil)
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))
	assert.Contains(t, err.Error(), "Resume required")
}

func TestResponseService_Submit_SummaryFailureStillSaves(t *testing.T) {
	svc, responses, logs := newResponseService(t, &fakeLLM{err: errors.New("provider down")})

	row, err := svc.Submit(context.Background(), accessFixture(ModePublic), fullHistory(), resumeFixture())
	require.NoError(t, err, "summary failure must never block submission")
	assert.Equal(t, models.SummaryFailed, row.SummaryStatus)

	var summary models.Summary
	require.NoError(t, json.Unmarshal(row.Summary, &summary))
	assert.Equal(t, "Dana Velez applied for Backend Engineer.", summary.OneLiner)

	_, err = responses.GetByID(context.Background(), row.ID)
	require.NoError(t, err)

	require.Len(t, logs.logs, 1)
	assert.Equal(t, models.SummaryFailed, logs.logs[0].Status)
	assert.Contains(t, logs.logs[0].Error, "provider down")
}

func TestResponseService_Submit_DatastoreFailureIsFatal(t *testing.T) {
	responses := newFakeResponseRepo()
	responses.insertErr = errors.New("disk full")
	forms := NewFormService(newFakeFormRepo(storedForm()), newFakeCache())
	svc := NewResponseService(responses, forms, &fakeLLM{out: goodSummaryJSON}, &fakeAILogRepo{}, deadRedis(), testLogger())

	_, err := svc.Submit(context.Background(), accessFixture(ModePublic), fullHistory(), resumeFixture())
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeInternal))
}

func TestResponseService_Results(t *testing.T) {
	svc, _, _ := newResponseService(t, &fakeLLM{out: goodSummaryJSON})

	_, err := svc.Submit(context.Background(), accessFixture(ModePublic), fullHistory(), resumeFixture())
	require.NoError(t, err)

	form, rows, err := svc.Results(context.Background(), "owner-1", "form-1")
	require.NoError(t, err)
	assert.Equal(t, "form-1", form.ID)
	assert.Len(t, rows, 1)

	_, _, err = svc.Results(context.Background(), "someone-else", "form-1")
	assert.True(t, utils.IsCode(err, utils.CodeForbidden))
}

func TestResponseService_Detail(t *testing.T) {
	svc, _, _ := newResponseService(t, &fakeLLM{out: goodSummaryJSON})

	row, err := svc.Submit(context.Background(), accessFixture(ModePublic), fullHistory(), resumeFixture())
	require.NoError(t, err)

	resp, form, err := svc.Detail(context.Background(), "owner-1", row.ID)
	require.NoError(t, err)
	assert.Equal(t, row.ID, resp.ID)
	assert.Equal(t, "Backend Engineer", form.Name)

	_, _, err = svc.Detail(context.Background(), "owner-1", "missing")
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))
	assert.Contains(t, err.Error(), "Response not found")

	_, _, err = svc.Detail(context.Background(), "someone-else", row.ID)
	assert.True(t, utils.IsCode(err, utils.CodeForbidden))
}

func TestResponseService_RegenerateSummary(t *testing.T) {
	provider := &fakeLLM{err: errors.New("provider down")}
	svc, responses, _ := newResponseService(t, provider)

	row, err := svc.Submit(context.Background(), accessFixture(ModePublic), fullHistory(), resumeFixture())
	require.NoError(t, err)
	require.Equal(t, models.SummaryFailed, row.SummaryStatus)

	// Provider recovers; the owner retries.
	provider.err = nil
	provider.out = goodSummaryJSON

	updated, err := svc.RegenerateSummary(context.Background(), "owner-1", row.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SummaryGenerated, updated.SummaryStatus)

	var summary models.Summary
	require.NoError(t, json.Unmarshal(updated.Summary, &summary))
	assert.Equal(t, "Schedule a systems screen.", summary.RecommendedNextStep)

	stored, err := responses.GetByID(context.Background(), row.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SummaryGenerated, stored.SummaryStatus)

	// Answers and resume stay frozen across regeneration.
	assert.Equal(t, row.Answers, stored.Answers)
	assert.Equal(t, row.ResumeProfile, stored.ResumeProfile)
}

func TestResponseService_RegenerateSummary_OwnershipEnforced(t *testing.T) {
	svc, _, _ := newResponseService(t, &fakeLLM{out: goodSummaryJSON})

	row, err := svc.Submit(context.Background(), accessFixture(ModePublic), fullHistory(), resumeFixture())
	require.NoError(t, err)

	_, err = svc.RegenerateSummary(context.Background(), "someone-else", row.ID)
	assert.True(t, utils.IsCode(err, utils.CodeForbidden))
}

func TestResponsesChannel(t *testing.T) {
	assert.Equal(t, "form:form-1:responses", ResponsesChannel("form-1"))
}
