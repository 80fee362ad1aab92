package services

import (
	"context"
	"time"

	model "sitebid.com/sitebid/internal/models"
	repository "sitebid.com/sitebid/internal/repositories"
)

// BidService owns the bid lifecycle rules. It stays side-effect free beyond
// persistence; notifications are fired by JobService so the rules here can
// be exercised in isolation.
type BidService struct {
	repo *repository.JobRepository
}

func NewBidService(repo *repository.JobRepository) *BidService {
	return &BidService{repo: repo}
}

func (s *BidService) SubmitBid(ctx context.Context, jobID, contractorID string, amount float64, proposal string, estimatedDays int) (*model.Job, *model.Bid, error) {
	job, err := s.repo.FindByID(ctx, jobID)
	if err != nil {
		return nil, nil, err
	}

	bid, err := job.SubmitBid(contractorID, amount, proposal, estimatedDays, time.Now().UTC())
	if err != nil {
		return nil, nil, err
	}

	if err := s.repo.Update(ctx, job); err != nil {
		return nil, nil, err
	}

	return job, bid, nil
}

func (s *BidService) EditBid(ctx context.Context, jobID, bidID, contractorID string, amount float64, proposal string, estimatedDays int) (*model.Job, error) {
	job, err := s.repo.FindByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	if err := job.EditBid(bidID, contractorID, amount, proposal, estimatedDays); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, job); err != nil {
		return nil, err
	}

	return job, nil
}

func (s *BidService) WithdrawBid(ctx context.Context, jobID, bidID, contractorID string) (*model.Job, error) {
	job, err := s.repo.FindByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	if err := job.WithdrawBid(bidID, contractorID, time.Now().UTC()); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, job); err != nil {
		return nil, err
	}

	return job, nil
}

func (s *BidService) RejectBid(ctx context.Context, jobID, bidID string, actor model.Actor, note string) (*model.Job, error) {
	job, err := s.repo.FindByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	if err := job.RejectBid(bidID, actor, note, time.Now().UTC()); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, job); err != nil {
		return nil, err
	}

	return job, nil
}
