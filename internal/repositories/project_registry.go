package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	errs "sitebid.com/sitebid/internal/errors"
	model "sitebid.com/sitebid/internal/models"
)

// ProjectRegistry is the read/write surface of the project collaborator this
// core depends on: look up a job's owning project, and record the contractor
// once a bid is accepted.
type ProjectRegistry interface {
	Get(ctx context.Context, id string) (*model.Project, error)
	AssignContractor(ctx context.Context, projectID, contractorID string) error
}

// GormProjectRegistry reads the projects table the rest of the platform
// maintains.
type GormProjectRegistry struct {
	db *gorm.DB
}

func NewGormProjectRegistry(db *gorm.DB) *GormProjectRegistry {
	return &GormProjectRegistry{db: db}
}

func (r *GormProjectRegistry) Get(ctx context.Context, id string) (*model.Project, error) {
	var project model.Project
	err := r.db.WithContext(ctx).First(&project, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrProjectNotFound
		}
		return nil, err
	}
	return &project, nil
}

func (r *GormProjectRegistry) AssignContractor(ctx context.Context, projectID, contractorID string) error {
	res := r.db.WithContext(ctx).Model(&model.Project{}).
		Where("id = ?", projectID).
		Update("contractor_id", contractorID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errs.ErrProjectNotFound
	}
	return nil
}

// Seed inserts a project row directly; used by tests and local setup.
func (r *GormProjectRegistry) Seed(ctx context.Context, project *model.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}
