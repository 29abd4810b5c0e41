package postgres

import (
	"context"
	"errors"

	"github.com/hireform/hireform/internal/models"
	"github.com/hireform/hireform/internal/utils"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ResponseRepository interface {
	Insert(ctx context.Context, resp *models.Response) error
	GetByID(ctx context.Context, id string) (*models.Response, error)
	ListByForm(ctx context.Context, formID string) ([]models.Response, error)
	UpdateSummary(ctx context.Context, id string, summary datatypes.JSON, status string) error
}

type responseRepo struct {
	db *gorm.DB
}

func NewResponseRepo(db *gorm.DB) ResponseRepository {
	return &responseRepo{db: db}
}

func (r *responseRepo) Insert(ctx context.Context, resp *models.Response) error {
	return r.db.WithContext(ctx).Create(resp).Error
}

func (r *responseRepo) GetByID(ctx context.Context, id string) (*models.Response, error) {
	var row models.Response
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &row, err
}

func (r *responseRepo) ListByForm(ctx context.Context, formID string) ([]models.Response, error) {
	var rows []models.Response
	err := r.db.WithContext(ctx).
		Where("form_id = ?", formID).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *responseRepo) UpdateSummary(ctx context.Context, id string, summary datatypes.JSON, status string) error {
	return r.db.WithContext(ctx).
		Model(&models.Response{}).
		Where("id = ?", id).
		Updates(map[string]any{"summary": summary, "summary_status": status}).Error
}
