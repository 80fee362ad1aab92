package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"sitebid.com/sitebid/internal/constants"
	errs "sitebid.com/sitebid/internal/errors"
	model "sitebid.com/sitebid/internal/models"
	"sitebid.com/sitebid/internal/notify"
	repository "sitebid.com/sitebid/internal/repositories"
)

// ProgressService is the ledger of contractor status reports. Authorization
// re-reads the job/project assignment on every call instead of trusting
// anything cached in the row.
type ProgressService struct {
	updates    *repository.ProgressUpdateRepository
	jobs       *repository.JobRepository
	projects   repository.ProjectRegistry
	dispatcher *notify.Dispatcher

	editWindow   time.Duration
	deleteWindow time.Duration

	// now is swappable in tests so window expiry needs no sleeping.
	now func() time.Time
}

func NewProgressService(
	updates *repository.ProgressUpdateRepository,
	jobs *repository.JobRepository,
	projects repository.ProjectRegistry,
	dispatcher *notify.Dispatcher,
	editWindow, deleteWindow time.Duration,
) *ProgressService {
	return &ProgressService{
		updates:      updates,
		jobs:         jobs,
		projects:     projects,
		dispatcher:   dispatcher,
		editWindow:   editWindow,
		deleteWindow: deleteWindow,
		now:          time.Now,
	}
}

// CreateUpdateInput carries the contractor-supplied report fields. Exactly
// one of JobID/ProjectID selects the scope: a specific job, or a
// project-wide assignment.
type CreateUpdateInput struct {
	JobID           string
	ProjectID       string
	StageID         string
	Type            constants.UpdateType
	Notes           string
	WorkDone        []string
	Materials       []string
	Issues          []string
	ProgressPercent int
}

func (s *ProgressService) Create(ctx context.Context, contractorID string, in CreateUpdateInput) (*model.ProgressUpdate, error) {
	var (
		projectID string
		notifyTo  string
	)

	if in.JobID != "" {
		job, err := s.jobs.FindByID(ctx, in.JobID)
		if err != nil {
			return nil, err
		}
		if job.AssignedContractorID != contractorID {
			project, err := s.projects.Get(ctx, job.ProjectID)
			if err != nil {
				return nil, err
			}
			if project.ContractorID != contractorID {
				return nil, errs.ErrNotAssignee
			}
		}
		projectID = job.ProjectID
		notifyTo = job.PosterID
	} else {
		project, err := s.projects.Get(ctx, in.ProjectID)
		if err != nil {
			return nil, err
		}
		if project.ContractorID != contractorID {
			return nil, errs.ErrNotAssignee
		}
		projectID = project.ID
		notifyTo = project.OwnerID
	}

	issues := make([]model.Issue, 0, len(in.Issues))
	for _, desc := range in.Issues {
		issues = append(issues, model.Issue{Description: desc})
	}

	update := &model.ProgressUpdate{
		ID:              uuid.NewString(),
		JobID:           in.JobID,
		ProjectID:       projectID,
		ContractorID:    contractorID,
		StageID:         in.StageID,
		Type:            in.Type,
		Notes:           in.Notes,
		WorkDone:        in.WorkDone,
		Materials:       in.Materials,
		Issues:          issues,
		ProgressPercent: in.ProgressPercent,
		CreatedAt:       s.now().UTC(),
	}

	if err := s.updates.Create(ctx, update); err != nil {
		return nil, err
	}

	s.dispatcher.Notify(notifyTo, constants.EventProgressPosted, map[string]any{
		"update_id": update.ID,
		"job_id":    update.JobID,
		"progress":  update.ProgressPercent,
	})
	return update, nil
}

// EditUpdateInput is the author-editable field set. Contractor, project and
// creation time are deliberately absent.
type EditUpdateInput struct {
	StageID         string
	Type            constants.UpdateType
	Notes           string
	WorkDone        []string
	Materials       []string
	ProgressPercent int
}

func (s *ProgressService) Edit(ctx context.Context, updateID, contractorID string, in EditUpdateInput) (*model.ProgressUpdate, error) {
	update, err := s.updates.FindByID(ctx, updateID)
	if err != nil {
		return nil, err
	}
	if update.ContractorID != contractorID {
		return nil, errs.ErrNotAuthor
	}
	if s.now().UTC().Sub(update.CreatedAt) > s.editWindow {
		return nil, errs.ErrEditWindowExpired
	}

	update.StageID = in.StageID
	update.Type = in.Type
	update.Notes = in.Notes
	update.WorkDone = in.WorkDone
	update.Materials = in.Materials
	update.ProgressPercent = in.ProgressPercent

	if err := s.updates.Save(ctx, update); err != nil {
		return nil, err
	}
	return update, nil
}

// Delete destroys the row outright, so its window is shorter than the edit
// window.
func (s *ProgressService) Delete(ctx context.Context, updateID, contractorID string) error {
	update, err := s.updates.FindByID(ctx, updateID)
	if err != nil {
		return err
	}
	if update.ContractorID != contractorID {
		return errs.ErrNotAuthor
	}
	if s.now().UTC().Sub(update.CreatedAt) > s.deleteWindow {
		return errs.ErrDeleteWindowExpired
	}
	return s.updates.Delete(ctx, updateID)
}

// Acknowledge is idempotent and monotonic: a second call is a no-op success
// and the original timestamp stands.
func (s *ProgressService) Acknowledge(ctx context.Context, updateID string, actor model.Actor) (*model.ProgressUpdate, error) {
	update, err := s.updates.FindByID(ctx, updateID)
	if err != nil {
		return nil, err
	}

	project, err := s.projects.Get(ctx, update.ProjectID)
	if err != nil {
		return nil, err
	}
	if project.OwnerID != actor.ID && !actor.Admin() {
		return nil, errs.ErrNotPoster
	}

	if update.CustomerAcknowledged {
		return update, nil
	}

	now := s.now().UTC()
	update.CustomerAcknowledged = true
	update.AcknowledgedAt = &now

	if err := s.updates.Save(ctx, update); err != nil {
		return nil, err
	}

	s.dispatcher.Notify(update.ContractorID, constants.EventProgressAcked, map[string]any{
		"update_id": update.ID,
		"job_id":    update.JobID,
	})
	return update, nil
}

func (s *ProgressService) AddComment(ctx context.Context, updateID string, actor model.Actor, body string) (*model.ProgressUpdate, error) {
	update, err := s.updates.FindByID(ctx, updateID)
	if err != nil {
		return nil, err
	}
	if err := s.checkAccess(ctx, update, actor); err != nil {
		return nil, err
	}

	update.Comments = append(update.Comments, model.Comment{
		ID:        uuid.NewString(),
		AuthorID:  actor.ID,
		Body:      body,
		CreatedAt: s.now().UTC(),
	})

	if err := s.updates.Save(ctx, update); err != nil {
		return nil, err
	}

	if actor.ID != update.ContractorID {
		s.dispatcher.Notify(update.ContractorID, constants.EventCommentAdded, map[string]any{
			"update_id": update.ID,
			"author_id": actor.ID,
		})
	}
	return update, nil
}

// ResolveIssue marks one reported issue resolved. Resolving an already
// resolved issue is a no-op.
func (s *ProgressService) ResolveIssue(ctx context.Context, updateID string, actor model.Actor, index int) (*model.ProgressUpdate, error) {
	update, err := s.updates.FindByID(ctx, updateID)
	if err != nil {
		return nil, err
	}
	if err := s.checkAccess(ctx, update, actor); err != nil {
		return nil, err
	}
	if index < 0 || index >= len(update.Issues) {
		return nil, errs.ErrIssueNotFound
	}
	if update.Issues[index].Resolved {
		return update, nil
	}

	now := s.now().UTC()
	update.Issues[index].Resolved = true
	update.Issues[index].ResolvedAt = &now
	update.Issues[index].ResolvedBy = actor.ID

	if err := s.updates.Save(ctx, update); err != nil {
		return nil, err
	}
	return update, nil
}

func (s *ProgressService) ListForJob(ctx context.Context, jobID string, actor model.Actor, limit, offset int) ([]model.ProgressUpdate, error) {
	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if actor.ID != job.PosterID && actor.ID != job.AssignedContractorID && !actor.Admin() {
		return nil, errs.ErrForbidden
	}
	return s.updates.ListByJob(ctx, jobID, limit, offset)
}

// checkAccess is the shared read/append predicate: update author, project
// owner, assigned contractor, or admin.
func (s *ProgressService) checkAccess(ctx context.Context, update *model.ProgressUpdate, actor model.Actor) error {
	if actor.Admin() || actor.ID == update.ContractorID {
		return nil
	}

	project, err := s.projects.Get(ctx, update.ProjectID)
	if err != nil {
		return err
	}
	if actor.ID == project.OwnerID || actor.ID == project.ContractorID {
		return nil
	}

	if update.JobID != "" {
		job, err := s.jobs.FindByID(ctx, update.JobID)
		if err != nil {
			return err
		}
		if actor.ID == job.AssignedContractorID {
			return nil
		}
	}
	return errs.ErrForbidden
}
