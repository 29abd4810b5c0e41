package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/hireform/hireform/internal/cache"
	"github.com/hireform/hireform/internal/models"
	pgrepo "github.com/hireform/hireform/internal/repositories/postgres"
	"github.com/hireform/hireform/internal/utils"
	"github.com/lib/pq"
)

// How long a share-token lookup may be served from cache. Short on purpose:
// flipping `public` off must take effect quickly even if invalidation is missed.
const formCacheTTL = 60 * time.Second

// AccessContext is a resolved form plus the surface the caller reached it
// through. Owner and public paths share identical follow-up and submission
// behavior via this one type; only resolution differs.
type AccessContext struct {
	Form *models.Form
	Mode string // "owner" | "public"
}

const (
	ModeOwner  = "owner"
	ModePublic = "public"
)

type CreateFormInput struct {
	Name           string
	Summary        string
	BaseQuestions  []string
	AIEnabled      bool
	MaxAIQuestions *int
	Public         bool
}

type UpdateFormInput struct {
	Name           *string
	Summary        *string
	BaseQuestions  []string
	AIEnabled      *bool
	MaxAIQuestions *int
	Public         *bool
	Archived       *bool
}

func (in UpdateFormInput) empty() bool {
	return in.Name == nil && in.Summary == nil && in.BaseQuestions == nil &&
		in.AIEnabled == nil && in.MaxAIQuestions == nil && in.Public == nil &&
		in.Archived == nil
}

type FormService interface {
	Create(ctx context.Context, ownerID string, in CreateFormInput) (*models.Form, error)
	List(ctx context.Context, ownerID string, includeArchived bool) ([]models.Form, error)
	GetOwned(ctx context.Context, ownerID, formID string) (*models.Form, error)
	Update(ctx context.Context, ownerID, formID string, in UpdateFormInput) (*models.Form, error)

	ResolveOwner(ctx context.Context, ownerID, formID string) (*AccessContext, error)
	ResolvePublic(ctx context.Context, shareToken string) (*AccessContext, error)
}

type formService struct {
	forms pgrepo.FormRepository
	cache cache.Cache
}

func NewFormService(forms pgrepo.FormRepository, c cache.Cache) FormService {
	return &formService{forms: forms, cache: c}
}

func (s *formService) Create(ctx context.Context, ownerID string, in CreateFormInput) (*models.Form, error) {
	const op = "FormService.Create"

	if ownerID == "" {
		return nil, utils.E(utils.CodeUnauthorized, op, "owner is required", nil)
	}

	maxAI := models.DefaultMaxAIQuestions
	if in.MaxAIQuestions != nil {
		if *in.MaxAIQuestions < 0 || *in.MaxAIQuestions > models.MaxAIQuestionsCeiling {
			return nil, utils.E(utils.CodeInvalidArgument, op, "maxAiQuestions must be between 0 and 20", nil)
		}
		maxAI = *in.MaxAIQuestions
	}

	base := in.BaseQuestions
	if base == nil {
		base = []string{}
	}

	token, err := makeShareToken()
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to generate share token", err)
	}

	now := time.Now().UTC()
	form := &models.Form{
		ID:             uuid.NewString(),
		OwnerID:        ownerID,
		Name:           in.Name,
		Summary:        in.Summary,
		BaseQuestions:  pq.StringArray(base),
		AIEnabled:      in.AIEnabled,
		MaxAIQuestions: maxAI,
		Public:         in.Public,
		ShareToken:     token,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.forms.Create(ctx, form); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to create form", err)
	}
	return form, nil
}

func (s *formService) List(ctx context.Context, ownerID string, includeArchived bool) ([]models.Form, error) {
	const op = "FormService.List"

	rows, err := s.forms.ListByOwner(ctx, ownerID, includeArchived)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list forms", err)
	}
	return rows, nil
}

func (s *formService) GetOwned(ctx context.Context, ownerID, formID string) (*models.Form, error) {
	const op = "FormService.GetOwned"

	form, err := s.forms.GetByID(ctx, formID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "Form not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get form", err)
	}
	// Never trust client-supplied form fields for authorization.
	if form.OwnerID != ownerID {
		return nil, utils.E(utils.CodeForbidden, op, "Forbidden", nil)
	}
	return form, nil
}

func (s *formService) Update(ctx context.Context, ownerID, formID string, in UpdateFormInput) (*models.Form, error) {
	const op = "FormService.Update"

	if in.empty() {
		return nil, utils.E(utils.CodeInvalidArgument, op, "No valid fields to update", nil)
	}

	form, err := s.GetOwned(ctx, ownerID, formID)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{"updated_at": time.Now().UTC()}
	if in.Name != nil {
		fields["name"] = *in.Name
	}
	if in.Summary != nil {
		fields["summary"] = *in.Summary
	}
	if in.BaseQuestions != nil {
		fields["base_questions"] = pq.StringArray(in.BaseQuestions)
	}
	if in.AIEnabled != nil {
		fields["ai_enabled"] = *in.AIEnabled
	}
	if in.Public != nil {
		fields["public"] = *in.Public
	}
	if in.Archived != nil {
		fields["archived"] = *in.Archived
	}
	if in.MaxAIQuestions != nil {
		if *in.MaxAIQuestions < 0 || *in.MaxAIQuestions > models.MaxAIQuestionsCeiling {
			return nil, utils.E(utils.CodeInvalidArgument, op, "maxAiQuestions must be between 0 and 20", nil)
		}
		fields["max_ai_questions"] = *in.MaxAIQuestions
	}

	updated, err := s.forms.Updates(ctx, formID, fields)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to update form", err)
	}

	// The public surface may have this form cached by token.
	_ = s.cache.Del(ctx, cache.FormTokenKey(form.ShareToken))

	return updated, nil
}

func (s *formService) ResolveOwner(ctx context.Context, ownerID, formID string) (*AccessContext, error) {
	form, err := s.GetOwned(ctx, ownerID, formID)
	if err != nil {
		return nil, err
	}
	return &AccessContext{Form: form, Mode: ModeOwner}, nil
}

func (s *formService) ResolvePublic(ctx context.Context, shareToken string) (*AccessContext, error) {
	const op = "FormService.ResolvePublic"

	var form models.Form
	hit, _ := s.cache.GetJSON(ctx, cache.FormTokenKey(shareToken), &form)
	if !hit {
		row, err := s.forms.GetByShareToken(ctx, shareToken)
		if err != nil {
			if errors.Is(err, utils.ErrNotFound) {
				return nil, utils.E(utils.CodeNotFound, op, "Form not found", err)
			}
			return nil, utils.E(utils.CodeInternal, op, "failed to get form", err)
		}
		form = *row
		_ = s.cache.SetJSON(ctx, cache.FormTokenKey(shareToken), form, formCacheTTL)
	}

	// Visibility gate applies after caching so a flipped flag is honored on
	// the cached copy too.
	if !form.Public {
		return nil, utils.E(utils.CodeForbidden, op, "Form is not public", nil)
	}

	return &AccessContext{Form: &form, Mode: ModePublic}, nil
}

func makeShareToken() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
