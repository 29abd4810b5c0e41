package services

import (
	"context"
	"errors"
	"time"

	"github.com/hireform/hireform/internal/interview"
	"github.com/hireform/hireform/internal/models"
	"github.com/hireform/hireform/internal/providers/llm"
	mongorepo "github.com/hireform/hireform/internal/repositories/mongo"
	"github.com/hireform/hireform/internal/utils"
	"github.com/sirupsen/logrus"
)

type NextQuestionInput struct {
	// Owner surface may override the stored role summary and base questions
	// (it edits them live in the builder UI); the public surface always uses
	// the stored form values.
	Summary       *string
	BaseQuestions []string

	History []models.QA
	Resume  *models.ResumeProfile
}

// NextQuestionResult is the single "next question or completion" signal.
type NextQuestionResult struct {
	Question string `json:"nextQuestion,omitempty"`
	Done     bool   `json:"done,omitempty"`
}

type FollowupService interface {
	NextQuestion(ctx context.Context, access *AccessContext, in NextQuestionInput) (*NextQuestionResult, error)

	// AuditTrail lists recent provider invocations recorded for a form,
	// newest first. Owner surface only.
	AuditTrail(ctx context.Context, access *AccessContext, limit int64) ([]models.AILog, error)
}

type followupService struct {
	llm    llm.Provider
	aiLogs mongorepo.AILogRepository
	log    *logrus.Logger
}

func NewFollowupService(provider llm.Provider, aiLogs mongorepo.AILogRepository, log *logrus.Logger) FollowupService {
	return &followupService{llm: provider, aiLogs: aiLogs, log: log}
}

// NextQuestion runs one request_next transition of the follow-up controller.
// The controller is rebuilt from the replayed history on every call; both
// the owner and public surfaces go through this exact code path.
func (s *followupService) NextQuestion(ctx context.Context, access *AccessContext, in NextQuestionInput) (*NextQuestionResult, error) {
	const op = "FollowupService.NextQuestion"

	form := access.Form

	// Resolve the effective role summary and base questions first: the owner
	// surface may preview with a draft list whose length differs from the
	// stored one, and the replayed history counts against what was actually
	// asked, not what is stored.
	roleSummary := form.Summary
	base := []string(form.BaseQuestions)
	if access.Mode == ModeOwner {
		if in.Summary != nil {
			roleSummary = *in.Summary
		}
		if in.BaseQuestions != nil {
			base = in.BaseQuestions
		}
	}

	ctrl := interview.NewController(form, base, in.History)
	if err := ctrl.RequestNext(); err != nil {
		switch {
		case errors.Is(err, interview.ErrExhausted):
			// Budget spent: the only valid next action is submission.
			return &NextQuestionResult{Done: true}, nil
		case errors.Is(err, interview.ErrDisabled):
			return nil, utils.E(utils.CodeInvalidArgument, op, "AI follow-ups disabled for this form.", nil)
		default:
			return nil, err
		}
	}

	genIn := interview.FollowupInput{
		Mode:          access.Mode,
		RoleSummary:   roleSummary,
		BaseQuestions: base,
		History:       in.History,
		Resume:        in.Resume,
	}

	start := time.Now()
	question, err := interview.GenerateFollowup(ctx, s.llm, genIn)

	// The resume gate fails before any provider call; everything else is a
	// real invocation worth auditing.
	if !utils.IsCode(err, utils.CodeInvalidArgument) {
		s.audit(ctx, form.ID, access.Mode, models.AILogFollowup, question, time.Since(start), genIn, err)
	}

	if err != nil {
		return nil, err
	}
	return &NextQuestionResult{Question: question}, nil
}

// Bounds on the audit view page size.
const (
	defaultAuditLimit = 50
	maxAuditLimit     = 200
)

func (s *followupService) AuditTrail(ctx context.Context, access *AccessContext, limit int64) ([]models.AILog, error) {
	const op = "FollowupService.AuditTrail"

	if access.Mode != ModeOwner {
		return nil, utils.E(utils.CodeForbidden, op, "Forbidden", nil)
	}

	if limit <= 0 {
		limit = defaultAuditLimit
	}
	if limit > maxAuditLimit {
		limit = maxAuditLimit
	}

	logs, err := s.aiLogs.ListByForm(ctx, access.Form.ID, limit)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list ai logs", err)
	}
	if logs == nil {
		logs = []models.AILog{}
	}
	return logs, nil
}

func (s *followupService) audit(ctx context.Context, formID, mode, kind, output string, latency time.Duration, in interview.FollowupInput, genErr error) {
	system, user := interview.FollowupPrompt(in)

	l := &models.AILog{
		FormID:      formID,
		Mode:        mode,
		Kind:        kind,
		Status:      "ok",
		PromptChars: len(system) + len(user),
		OutputChars: len(output),
		LatencyMS:   latency.Milliseconds(),
	}
	if genErr != nil {
		l.Status = "error"
		l.Error = genErr.Error()
	}

	if err := s.aiLogs.Insert(ctx, l); err != nil {
		s.log.WithError(err).WithField("form_id", formID).Warn("failed to write ai audit log")
	}
}
