package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/hireform/hireform/internal/interview"
	"github.com/hireform/hireform/internal/models"
	"github.com/hireform/hireform/internal/providers/llm"
	mongorepo "github.com/hireform/hireform/internal/repositories/mongo"
	pgrepo "github.com/hireform/hireform/internal/repositories/postgres"
	"github.com/hireform/hireform/internal/utils"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

// ResponsesChannel is the Redis pub/sub channel that carries newly submitted
// response ids for one form; the owner results websocket subscribes to it.
func ResponsesChannel(formID string) string {
	return "form:" + formID + ":responses"
}

type ResponseService interface {
	Submit(ctx context.Context, access *AccessContext, answers []models.QA, resume *models.ResumeProfile) (*models.Response, error)
	Results(ctx context.Context, ownerID, formID string) (*models.Form, []models.Response, error)
	Detail(ctx context.Context, ownerID, responseID string) (*models.Response, *models.Form, error)
	RegenerateSummary(ctx context.Context, ownerID, responseID string) (*models.Response, error)
}

type responseService struct {
	responses pgrepo.ResponseRepository
	forms     FormService
	llm       llm.Provider
	aiLogs    mongorepo.AILogRepository
	rdb       *redis.Client
	log       *logrus.Logger
}

func NewResponseService(
	responses pgrepo.ResponseRepository,
	forms FormService,
	provider llm.Provider,
	aiLogs mongorepo.AILogRepository,
	rdb *redis.Client,
	log *logrus.Logger,
) ResponseService {
	return &responseService{
		responses: responses,
		forms:     forms,
		llm:       provider,
		aiLogs:    aiLogs,
		rdb:       rdb,
		log:       log,
	}
}

// Submit persists the finished conversation exactly once. The summary is
// generated best-effort first: its failure is recorded, never fatal. A
// datastore failure means the response is not saved, regardless of how the
// summary turned out.
func (s *responseService) Submit(ctx context.Context, access *AccessContext, answers []models.QA, resume *models.ResumeProfile) (*models.Response, error) {
	const op = "ResponseService.Submit"

	if len(answers) == 0 {
		return nil, utils.E(utils.CodeInvalidArgument, op, "Missing answers", nil)
	}
	if resume == nil {
		return nil, utils.E(utils.CodeInvalidArgument, op, "Resume required", nil)
	}

	form := access.Form

	result := s.generateSummary(ctx, form, access.Mode, answers, resume)

	answersJSON, err := json.Marshal(answers)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to encode answers", err)
	}
	resumeJSON, err := json.Marshal(resume)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to encode resume profile", err)
	}
	summaryJSON, err := json.Marshal(result.Summary)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to encode summary", err)
	}

	row := &models.Response{
		ID:            uuid.NewString(),
		FormID:        form.ID,
		Answers:       datatypes.JSON(answersJSON),
		ResumeProfile: datatypes.JSON(resumeJSON),
		Summary:       datatypes.JSON(summaryJSON),
		SummaryStatus: result.Source,
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.responses.Insert(ctx, row); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to save response", err)
	}

	s.publish(ctx, row)

	return row, nil
}

func (s *responseService) Results(ctx context.Context, ownerID, formID string) (*models.Form, []models.Response, error) {
	const op = "ResponseService.Results"

	form, err := s.forms.GetOwned(ctx, ownerID, formID)
	if err != nil {
		return nil, nil, err
	}

	rows, err := s.responses.ListByForm(ctx, formID)
	if err != nil {
		return nil, nil, utils.E(utils.CodeInternal, op, "failed to list responses", err)
	}
	return form, rows, nil
}

func (s *responseService) Detail(ctx context.Context, ownerID, responseID string) (*models.Response, *models.Form, error) {
	const op = "ResponseService.Detail"

	resp, err := s.responses.GetByID(ctx, responseID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, nil, utils.E(utils.CodeNotFound, op, "Response not found", err)
		}
		return nil, nil, utils.E(utils.CodeInternal, op, "failed to get response", err)
	}

	// Authorization goes through the parent form's owner.
	form, err := s.forms.GetOwned(ctx, ownerID, resp.FormID)
	if err != nil {
		return nil, nil, err
	}
	return resp, form, nil
}

// RegenerateSummary reruns the summary generator against the frozen response
// and overwrites the stored summary. The response itself stays immutable.
func (s *responseService) RegenerateSummary(ctx context.Context, ownerID, responseID string) (*models.Response, error) {
	const op = "ResponseService.RegenerateSummary"

	resp, form, err := s.Detail(ctx, ownerID, responseID)
	if err != nil {
		return nil, err
	}

	var answers []models.QA
	if err := json.Unmarshal(resp.Answers, &answers); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to decode stored answers", err)
	}
	var resume models.ResumeProfile
	if len(resp.ResumeProfile) > 0 {
		if err := json.Unmarshal(resp.ResumeProfile, &resume); err != nil {
			return nil, utils.E(utils.CodeInternal, op, "failed to decode stored resume profile", err)
		}
	}

	result := s.generateSummary(ctx, form, ModeOwner, answers, &resume)

	summaryJSON, err := json.Marshal(result.Summary)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to encode summary", err)
	}

	if err := s.responses.UpdateSummary(ctx, responseID, datatypes.JSON(summaryJSON), result.Source); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to update summary", err)
	}

	resp.Summary = datatypes.JSON(summaryJSON)
	resp.SummaryStatus = result.Source
	return resp, nil
}

func (s *responseService) generateSummary(ctx context.Context, form *models.Form, mode string, answers []models.QA, resume *models.ResumeProfile) interview.SummaryResult {
	in := interview.SummaryInput{
		FormName:    form.Name,
		FormSummary: form.Summary,
		Answers:     answers,
		Resume:      resume,
	}

	start := time.Now()
	result := interview.GenerateSummary(ctx, s.llm, in)

	l := &models.AILog{
		FormID:    form.ID,
		Mode:      mode,
		Kind:      models.AILogSummary,
		Status:    result.Source,
		LatencyMS: time.Since(start).Milliseconds(),
	}
	if result.Err != nil {
		l.Error = result.Err.Error()
		s.log.WithError(result.Err).WithField("form_id", form.ID).Warn("summary generation degraded to fallback")
	}
	if err := s.aiLogs.Insert(ctx, l); err != nil {
		s.log.WithError(err).WithField("form_id", form.ID).Warn("failed to write ai audit log")
	}

	return result
}

func (s *responseService) publish(ctx context.Context, row *models.Response) {
	payload, err := json.Marshal(map[string]any{
		"type":        "response_submitted",
		"response_id": row.ID,
		"form_id":     row.FormID,
		"created_at":  row.CreatedAt,
	})
	if err != nil {
		return
	}
	if err := s.rdb.Publish(ctx, ResponsesChannel(row.FormID), payload).Err(); err != nil {
		s.log.WithError(err).WithField("form_id", row.FormID).Warn("failed to publish response event")
	}
}
