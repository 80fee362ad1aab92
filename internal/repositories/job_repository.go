package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"sitebid.com/sitebid/internal/constants"
	errs "sitebid.com/sitebid/internal/errors"
	model "sitebid.com/sitebid/internal/models"
)

// JobRepository persists Job aggregates. Every mutation goes through a
// load-mutate-Update cycle; Update compares the version column so two
// concurrent writers to the same job cannot interleave.
type JobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) *JobRepository {
	return &JobRepository{db: db}
}

func (r *JobRepository) Create(ctx context.Context, job *model.Job) error {
	return r.db.WithContext(ctx).Create(job).Error
}

func (r *JobRepository) FindByID(ctx context.Context, id string) (*model.Job, error) {
	var job model.Job
	err := r.db.WithContext(ctx).First(&job, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrJobNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (r *JobRepository) List(ctx context.Context, projectID string, status constants.JobStatus, limit, offset int) ([]model.Job, error) {
	query := r.db.WithContext(ctx).Order("created_at desc")
	if projectID != "" {
		query = query.Where("project_id = ?", projectID)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var jobs []model.Job
	err := query.Find(&jobs).Error
	return jobs, err
}

// Update writes the whole aggregate back, guarded by the version the caller
// loaded. Zero rows affected means another writer committed first.
func (r *JobRepository) Update(ctx context.Context, job *model.Job) error {
	loaded := job.Version
	job.Version = loaded + 1

	res := r.db.WithContext(ctx).Model(&model.Job{}).
		Where("id = ? AND version = ?", job.ID, loaded).
		Select("*").Omit("id", "created_at").
		Updates(job)

	if res.Error != nil {
		job.Version = loaded
		return res.Error
	}
	if res.RowsAffected == 0 {
		job.Version = loaded
		return errs.ErrConflict
	}
	return nil
}
