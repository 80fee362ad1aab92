package constants

type JobStatus string

const (
	JobDraft      JobStatus = "draft"
	JobOpen       JobStatus = "open"
	JobInReview   JobStatus = "in_review"
	JobAssigned   JobStatus = "assigned"
	JobInProgress JobStatus = "in_progress"
	JobCompleted  JobStatus = "completed"
	JobCancelled  JobStatus = "cancelled"
)

// Terminal reports whether no further status transition is permitted.
func (s JobStatus) Terminal() bool {
	return s == JobCompleted || s == JobCancelled
}

type BidStatus string

const (
	BidPending   BidStatus = "pending"
	BidAccepted  BidStatus = "accepted"
	BidRejected  BidStatus = "rejected"
	BidWithdrawn BidStatus = "withdrawn"
)

type UpdateType string

const (
	UpdateDaily      UpdateType = "daily"
	UpdateWeekly     UpdateType = "weekly"
	UpdateMilestone  UpdateType = "milestone"
	UpdateIssue      UpdateType = "issue"
	UpdateCompletion UpdateType = "completion"
	UpdateGeneral    UpdateType = "general"
)

const (
	RoleAdmin      = "admin"
	RoleCustomer   = "customer"
	RoleContractor = "contractor"
)

// Notification event types.
const (
	EventBidReceived    = "bid_received"
	EventBidAccepted    = "bid_accepted"
	EventBidRejected    = "bid_rejected"
	EventJobStarted     = "job_started"
	EventJobCompleted   = "job_completed"
	EventJobCancelled   = "job_cancelled"
	EventProgressPosted = "progress_posted"
	EventProgressAcked  = "progress_acknowledged"
	EventCommentAdded   = "comment_added"
)

// RejectedByCascadeNote is recorded on every pending bid closed by an accept.
const RejectedByCascadeNote = "Another bid was accepted"
