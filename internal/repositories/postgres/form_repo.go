package postgres

import (
	"context"
	"errors"

	"github.com/hireform/hireform/internal/models"
	"github.com/hireform/hireform/internal/utils"
	"gorm.io/gorm"
)

type FormRepository interface {
	Create(ctx context.Context, f *models.Form) error
	GetByID(ctx context.Context, id string) (*models.Form, error)
	GetByShareToken(ctx context.Context, token string) (*models.Form, error)
	ListByOwner(ctx context.Context, ownerID string, includeArchived bool) ([]models.Form, error)
	Updates(ctx context.Context, id string, fields map[string]any) (*models.Form, error)
}

type formRepo struct {
	db *gorm.DB
}

func NewFormRepo(db *gorm.DB) FormRepository {
	return &formRepo{db: db}
}

func (r *formRepo) Create(ctx context.Context, f *models.Form) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *formRepo) GetByID(ctx context.Context, id string) (*models.Form, error) {
	var row models.Form
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &row, err
}

func (r *formRepo) GetByShareToken(ctx context.Context, token string) (*models.Form, error) {
	var row models.Form
	err := r.db.WithContext(ctx).Where("share_token = ?", token).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &row, err
}

func (r *formRepo) ListByOwner(ctx context.Context, ownerID string, includeArchived bool) ([]models.Form, error) {
	q := r.db.WithContext(ctx).Where("owner_id = ?", ownerID)
	if !includeArchived {
		q = q.Where("archived = ?", false)
	}

	var rows []models.Form
	err := q.Order("created_at DESC").Find(&rows).Error
	return rows, err
}

// Updates applies a partial update (only supplied fields change) and
// returns the fresh row.
func (r *formRepo) Updates(ctx context.Context, id string, fields map[string]any) (*models.Form, error) {
	if err := r.db.WithContext(ctx).
		Model(&models.Form{}).
		Where("id = ?", id).
		Updates(fields).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}
