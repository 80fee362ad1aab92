package model

import (
	"time"

	"github.com/google/uuid"

	"sitebid.com/sitebid/internal/constants"
	errs "sitebid.com/sitebid/internal/errors"
)

// Actor identifies the caller of an operation, as resolved by the upstream
// identity provider.
type Actor struct {
	ID   string
	Role string
}

func (a Actor) Admin() bool {
	return a.Role == constants.RoleAdmin
}

// Bid is owned by its Job and has no independent lifecycle. Rejected and
// withdrawn bids stay in the collection for audit history.
type Bid struct {
	ID            string              `json:"id"`
	ContractorID  string              `json:"contractor_id"`
	Amount        float64             `json:"amount"`
	Proposal      string              `json:"proposal"`
	EstimatedDays int                 `json:"estimated_days"`
	Status        constants.BidStatus `json:"status"`
	SubmittedAt   time.Time           `json:"submitted_at"`
	RespondedAt   *time.Time          `json:"responded_at,omitempty"`
	ResponseNote  string              `json:"response_note,omitempty"`
}

// Job is the aggregate root for the marketplace. Bids travel inside the job
// row so that every mutation, including nested bid mutations, is a single
// optimistic-locked write.
type Job struct {
	ID                   string              `gorm:"primaryKey;size:36" json:"id"`
	ProjectID            string              `gorm:"size:36;index;not null" json:"project_id"`
	PosterID             string              `gorm:"size:36;not null" json:"poster_id"`
	Title                string              `gorm:"not null" json:"title"`
	Description          string              `gorm:"not null" json:"description"`
	BudgetMin            float64             `json:"budget_min"`
	BudgetMax            float64             `json:"budget_max"`
	Skills               []string            `gorm:"serializer:json" json:"skills"`
	Location             string              `json:"location"`
	WorkType             string              `json:"work_type"`
	Timeline             string              `json:"timeline,omitempty"`
	Status               constants.JobStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	Bids                 []Bid               `gorm:"serializer:json" json:"bids"`
	AcceptedBidID        string              `gorm:"size:36" json:"accepted_bid_id,omitempty"`
	AssignedContractorID string              `gorm:"size:36" json:"assigned_contractor_id,omitempty"`
	AssignedAt           *time.Time          `json:"assigned_at,omitempty"`
	CompletedAt          *time.Time          `json:"completed_at,omitempty"`
	CancelReason         string              `json:"cancel_reason,omitempty"`
	Version              uint                `gorm:"not null;default:1" json:"version"`
	CreatedAt            time.Time           `json:"created_at"`
	UpdatedAt            time.Time           `json:"updated_at"`
}

// NewJob builds a job in draft or open status. The poster check against the
// owning project happens in the service layer.
func NewJob(projectID, posterID, title, description string, draft bool) *Job {
	status := constants.JobOpen
	if draft {
		status = constants.JobDraft
	}
	return &Job{
		ID:          uuid.NewString(),
		ProjectID:   projectID,
		PosterID:    posterID,
		Title:       title,
		Description: description,
		Status:      status,
		Version:     1,
		CreatedAt:   time.Now().UTC(),
	}
}

func (j *Job) findBid(bidID string) *Bid {
	for i := range j.Bids {
		if j.Bids[i].ID == bidID {
			return &j.Bids[i]
		}
	}
	return nil
}

// AcceptedBid returns the winning bid, or nil before assignment.
func (j *Job) AcceptedBid() *Bid {
	if j.AcceptedBidID == "" {
		return nil
	}
	return j.findBid(j.AcceptedBidID)
}

func (j *Job) isPoster(actor Actor) bool {
	return actor.ID == j.PosterID || actor.Admin()
}

// Publish moves a draft job onto the open market.
func (j *Job) Publish(actor Actor) error {
	if !j.isPoster(actor) {
		return errs.ErrNotPoster
	}
	if j.Status != constants.JobDraft {
		return errs.ErrInvalidTransition
	}
	j.Status = constants.JobOpen
	return nil
}

// SubmitBid appends a pending bid. A contractor may hold at most one
// non-withdrawn bid per job.
func (j *Job) SubmitBid(contractorID string, amount float64, proposal string, estimatedDays int, now time.Time) (*Bid, error) {
	if j.Status != constants.JobOpen {
		return nil, errs.ErrJobNotOpen
	}
	for i := range j.Bids {
		if j.Bids[i].ContractorID == contractorID && j.Bids[i].Status != constants.BidWithdrawn {
			return nil, errs.ErrDuplicateBid
		}
	}
	bid := Bid{
		ID:            uuid.NewString(),
		ContractorID:  contractorID,
		Amount:        amount,
		Proposal:      proposal,
		EstimatedDays: estimatedDays,
		Status:        constants.BidPending,
		SubmittedAt:   now,
	}
	j.Bids = append(j.Bids, bid)
	return &j.Bids[len(j.Bids)-1], nil
}

// EditBid overwrites the offer fields of the caller's own pending bid.
func (j *Job) EditBid(bidID, contractorID string, amount float64, proposal string, estimatedDays int) error {
	bid := j.findBid(bidID)
	if bid == nil {
		return errs.ErrBidNotFound
	}
	if bid.ContractorID != contractorID {
		return errs.ErrNotOwner
	}
	if bid.Status != constants.BidPending {
		return errs.ErrBidNotPending
	}
	bid.Amount = amount
	bid.Proposal = proposal
	bid.EstimatedDays = estimatedDays
	return nil
}

// WithdrawBid retires the caller's own pending bid. Irreversible; the bid
// record stays for audit history.
func (j *Job) WithdrawBid(bidID, contractorID string, now time.Time) error {
	bid := j.findBid(bidID)
	if bid == nil {
		return errs.ErrBidNotFound
	}
	if bid.ContractorID != contractorID {
		return errs.ErrNotOwner
	}
	if bid.Status != constants.BidPending {
		return errs.ErrBidNotPending
	}
	bid.Status = constants.BidWithdrawn
	bid.RespondedAt = &now
	return nil
}

// RejectBid declines a pending bid on behalf of the poster.
func (j *Job) RejectBid(bidID string, actor Actor, note string, now time.Time) error {
	if !j.isPoster(actor) {
		return errs.ErrNotPoster
	}
	bid := j.findBid(bidID)
	if bid == nil {
		return errs.ErrBidNotFound
	}
	if bid.Status != constants.BidPending {
		return errs.ErrBidNotPending
	}
	bid.Status = constants.BidRejected
	bid.ResponseNote = note
	bid.RespondedAt = &now
	return nil
}

// AcceptBid performs the assignment cascade: the target bid becomes the
// single accepted bid, every other pending bid is rejected, and the job
// moves to assigned. Everything happens in memory so the repository can
// commit it as one write.
func (j *Job) AcceptBid(bidID string, actor Actor, note string, now time.Time) error {
	if !j.isPoster(actor) {
		return errs.ErrForbidden
	}
	if j.Status != constants.JobOpen && j.Status != constants.JobInReview {
		return errs.ErrInvalidTransition
	}
	bid := j.findBid(bidID)
	if bid == nil {
		return errs.ErrBidNotFound
	}
	if bid.Status != constants.BidPending {
		return errs.ErrInvalidTransition
	}

	bid.Status = constants.BidAccepted
	bid.ResponseNote = note
	bid.RespondedAt = &now

	for i := range j.Bids {
		other := &j.Bids[i]
		if other.ID == bid.ID || other.Status != constants.BidPending {
			continue
		}
		other.Status = constants.BidRejected
		other.ResponseNote = constants.RejectedByCascadeNote
		other.RespondedAt = &now
	}

	j.AcceptedBidID = bid.ID
	j.AssignedContractorID = bid.ContractorID
	j.AssignedAt = &now
	j.Status = constants.JobAssigned
	return nil
}

// Start moves an assigned job into progress. Only the assigned contractor
// may call it.
func (j *Job) Start(contractorID string) error {
	if j.AssignedContractorID == "" || j.AssignedContractorID != contractorID {
		return errs.ErrNotAssignee
	}
	if j.Status != constants.JobAssigned {
		return errs.ErrInvalidTransition
	}
	j.Status = constants.JobInProgress
	return nil
}

// Complete finishes an in-progress job.
func (j *Job) Complete(contractorID string, now time.Time) error {
	if j.AssignedContractorID == "" || j.AssignedContractorID != contractorID {
		return errs.ErrNotAssignee
	}
	if j.Status != constants.JobInProgress {
		return errs.ErrInvalidTransition
	}
	j.Status = constants.JobCompleted
	j.CompletedAt = &now
	return nil
}

// Cancel withdraws a job from the market. Only statuses before assignment
// can be cancelled; assigned, in-progress and terminal jobs cannot.
func (j *Job) Cancel(actor Actor, reason string) error {
	if !j.isPoster(actor) {
		return errs.ErrNotPoster
	}
	switch j.Status {
	case constants.JobDraft, constants.JobOpen, constants.JobInReview:
		j.Status = constants.JobCancelled
		j.CancelReason = reason
		return nil
	default:
		return errs.ErrInvalidTransition
	}
}

// PendingBids returns the bids still awaiting a response.
func (j *Job) PendingBids() []Bid {
	var pending []Bid
	for _, b := range j.Bids {
		if b.Status == constants.BidPending {
			pending = append(pending, b)
		}
	}
	return pending
}
