package services

import (
	"context"
	"log"
	"time"

	"sitebid.com/sitebid/internal/constants"
	errs "sitebid.com/sitebid/internal/errors"
	model "sitebid.com/sitebid/internal/models"
	"sitebid.com/sitebid/internal/notify"
	repository "sitebid.com/sitebid/internal/repositories"
	"sitebid.com/sitebid/internal/workload"
)

// JobService coordinates the job state machine on top of BidService. Every
// mutation is one load-mutate-save cycle against the job aggregate; workload
// counters and notifications run after the write commits and their failures
// are logged, never returned.
type JobService struct {
	repo       *repository.JobRepository
	bids       *BidService
	projects   repository.ProjectRegistry
	ledger     workload.Ledger
	dispatcher *notify.Dispatcher
}

func NewJobService(
	repo *repository.JobRepository,
	bids *BidService,
	projects repository.ProjectRegistry,
	ledger workload.Ledger,
	dispatcher *notify.Dispatcher,
) *JobService {
	return &JobService{
		repo:       repo,
		bids:       bids,
		projects:   projects,
		ledger:     ledger,
		dispatcher: dispatcher,
	}
}

// CreateJobInput carries the poster-supplied job fields.
type CreateJobInput struct {
	ProjectID   string
	Title       string
	Description string
	BudgetMin   float64
	BudgetMax   float64
	Skills      []string
	Location    string
	WorkType    string
	Timeline    string
	Draft       bool
}

func (s *JobService) CreateJob(ctx context.Context, actor model.Actor, in CreateJobInput) (*model.Job, error) {
	project, err := s.projects.Get(ctx, in.ProjectID)
	if err != nil {
		return nil, err
	}
	if project.OwnerID != actor.ID && !actor.Admin() {
		return nil, errs.ErrNotPoster
	}

	job := model.NewJob(in.ProjectID, actor.ID, in.Title, in.Description, in.Draft)
	job.BudgetMin = in.BudgetMin
	job.BudgetMax = in.BudgetMax
	job.Skills = in.Skills
	job.Location = in.Location
	job.WorkType = in.WorkType
	job.Timeline = in.Timeline

	if err := s.repo.Create(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

func (s *JobService) PublishJob(ctx context.Context, jobID string, actor model.Actor) (*model.Job, error) {
	job, err := s.repo.FindByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if err := job.Publish(actor); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

func (s *JobService) GetJob(ctx context.Context, jobID string) (*model.Job, error) {
	return s.repo.FindByID(ctx, jobID)
}

func (s *JobService) ListJobs(ctx context.Context, projectID string, status constants.JobStatus, limit, offset int) ([]model.Job, error) {
	return s.repo.List(ctx, projectID, status, limit, offset)
}

func (s *JobService) SubmitBid(ctx context.Context, jobID, contractorID string, amount float64, proposal string, estimatedDays int) (*model.Job, *model.Bid, error) {
	job, bid, err := s.bids.SubmitBid(ctx, jobID, contractorID, amount, proposal, estimatedDays)
	if err != nil {
		return nil, nil, err
	}

	s.dispatcher.Notify(job.PosterID, constants.EventBidReceived, map[string]any{
		"job_id":        job.ID,
		"bid_id":        bid.ID,
		"contractor_id": contractorID,
		"amount":        bid.Amount,
	})
	return job, bid, nil
}

func (s *JobService) EditBid(ctx context.Context, jobID, bidID, contractorID string, amount float64, proposal string, estimatedDays int) (*model.Job, error) {
	return s.bids.EditBid(ctx, jobID, bidID, contractorID, amount, proposal, estimatedDays)
}

func (s *JobService) WithdrawBid(ctx context.Context, jobID, bidID, contractorID string) (*model.Job, error) {
	return s.bids.WithdrawBid(ctx, jobID, bidID, contractorID)
}

func (s *JobService) RejectBid(ctx context.Context, jobID, bidID string, actor model.Actor, note string) (*model.Job, error) {
	job, err := s.bids.RejectBid(ctx, jobID, bidID, actor, note)
	if err != nil {
		return nil, err
	}

	if bid := findBid(job, bidID); bid != nil {
		s.dispatcher.Notify(bid.ContractorID, constants.EventBidRejected, map[string]any{
			"job_id": job.ID,
			"bid_id": bid.ID,
			"note":   note,
		})
	}
	return job, nil
}

// AcceptBid runs the assignment cascade. The aggregate write is the atomic
// unit; a racing accept observes either ErrConflict from the repository or
// ErrInvalidTransition from the already-assigned job.
func (s *JobService) AcceptBid(ctx context.Context, jobID, bidID string, actor model.Actor, note string) (*model.Job, error) {
	job, err := s.repo.FindByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	losers := job.PendingBids()

	if err := job.AcceptBid(bidID, actor, note, time.Now().UTC()); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, job); err != nil {
		return nil, err
	}

	s.afterAccept(ctx, job, bidID, losers)
	return job, nil
}

func (s *JobService) afterAccept(ctx context.Context, job *model.Job, acceptedBidID string, losers []model.Bid) {
	if err := s.projects.AssignContractor(ctx, job.ProjectID, job.AssignedContractorID); err != nil {
		log.Printf("jobs: failed to record contractor on project %s: %v", job.ProjectID, err)
	}

	if err := s.ledger.JobAssigned(ctx, job.AssignedContractorID); err != nil {
		log.Printf("jobs: failed to bump workload for contractor %s: %v", job.AssignedContractorID, err)
	}

	s.dispatcher.Notify(job.AssignedContractorID, constants.EventBidAccepted, map[string]any{
		"job_id": job.ID,
		"bid_id": acceptedBidID,
	})
	for _, loser := range losers {
		if loser.ID == acceptedBidID {
			continue
		}
		s.dispatcher.Notify(loser.ContractorID, constants.EventBidRejected, map[string]any{
			"job_id": job.ID,
			"bid_id": loser.ID,
			"note":   constants.RejectedByCascadeNote,
		})
	}
}

func (s *JobService) StartJob(ctx context.Context, jobID, contractorID string) (*model.Job, error) {
	job, err := s.repo.FindByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if err := job.Start(contractorID); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, job); err != nil {
		return nil, err
	}

	s.dispatcher.Notify(job.PosterID, constants.EventJobStarted, map[string]any{
		"job_id": job.ID,
	})
	return job, nil
}

func (s *JobService) CompleteJob(ctx context.Context, jobID, contractorID string) (*model.Job, error) {
	job, err := s.repo.FindByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if err := job.Complete(contractorID, time.Now().UTC()); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, job); err != nil {
		return nil, err
	}

	var earnings float64
	if accepted := job.AcceptedBid(); accepted != nil {
		earnings = accepted.Amount
	}
	if err := s.ledger.JobCompleted(ctx, contractorID, earnings); err != nil {
		log.Printf("jobs: failed to settle workload for contractor %s: %v", contractorID, err)
	}

	s.dispatcher.Notify(job.PosterID, constants.EventJobCompleted, map[string]any{
		"job_id":   job.ID,
		"earnings": earnings,
	})
	return job, nil
}

func (s *JobService) CancelJob(ctx context.Context, jobID string, actor model.Actor, reason string) (*model.Job, error) {
	job, err := s.repo.FindByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if err := job.Cancel(actor, reason); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, job); err != nil {
		return nil, err
	}

	for _, bid := range job.PendingBids() {
		s.dispatcher.Notify(bid.ContractorID, constants.EventJobCancelled, map[string]any{
			"job_id": job.ID,
			"reason": reason,
		})
	}
	return job, nil
}

func findBid(job *model.Job, bidID string) *model.Bid {
	for i := range job.Bids {
		if job.Bids[i].ID == bidID {
			return &job.Bids[i]
		}
	}
	return nil
}
