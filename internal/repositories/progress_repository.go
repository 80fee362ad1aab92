package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	errs "sitebid.com/sitebid/internal/errors"
	model "sitebid.com/sitebid/internal/models"
)

// ProgressUpdateRepository persists progress-update rows. Rows carry no
// cross-row invariant, so no version column is needed.
type ProgressUpdateRepository struct {
	db *gorm.DB
}

func NewProgressUpdateRepository(db *gorm.DB) *ProgressUpdateRepository {
	return &ProgressUpdateRepository{db: db}
}

func (r *ProgressUpdateRepository) Create(ctx context.Context, update *model.ProgressUpdate) error {
	return r.db.WithContext(ctx).Create(update).Error
}

func (r *ProgressUpdateRepository) FindByID(ctx context.Context, id string) (*model.ProgressUpdate, error) {
	var update model.ProgressUpdate
	err := r.db.WithContext(ctx).First(&update, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrUpdateNotFound
		}
		return nil, err
	}
	return &update, nil
}

func (r *ProgressUpdateRepository) ListByJob(ctx context.Context, jobID string, limit, offset int) ([]model.ProgressUpdate, error) {
	query := r.db.WithContext(ctx).
		Where("job_id = ?", jobID).
		Order("created_at desc")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var updates []model.ProgressUpdate
	err := query.Find(&updates).Error
	return updates, err
}

func (r *ProgressUpdateRepository) Save(ctx context.Context, update *model.ProgressUpdate) error {
	return r.db.WithContext(ctx).Save(update).Error
}

func (r *ProgressUpdateRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&model.ProgressUpdate{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errs.ErrUpdateNotFound
	}
	return nil
}
