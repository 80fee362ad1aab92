package dto

// Request payloads for the marketplace API. Validation runs through the
// echo-registered validator (go-playground struct tags).

type CreateJobRequest struct {
	ProjectID   string   `json:"project_id" validate:"required"`
	Title       string   `json:"title" validate:"required,max=150"`
	Description string   `json:"description" validate:"required,max=2000"`
	BudgetMin   float64  `json:"budget_min" validate:"gte=0"`
	BudgetMax   float64  `json:"budget_max" validate:"gtefield=BudgetMin"`
	Skills      []string `json:"skills" validate:"max=20,dive,max=50"`
	Location    string   `json:"location" validate:"max=200"`
	WorkType    string   `json:"work_type" validate:"max=50"`
	Timeline    string   `json:"timeline" validate:"max=200"`
	Draft       bool     `json:"draft"`
}

type SubmitBidRequest struct {
	Amount        float64 `json:"amount" validate:"required,gt=0"`
	Proposal      string  `json:"proposal" validate:"required,max=2000"`
	EstimatedDays int     `json:"estimated_days" validate:"required,gt=0"`
}

type EditBidRequest struct {
	Amount        float64 `json:"amount" validate:"required,gt=0"`
	Proposal      string  `json:"proposal" validate:"required,max=2000"`
	EstimatedDays int     `json:"estimated_days" validate:"required,gt=0"`
}

type RespondBidRequest struct {
	Note string `json:"note" validate:"max=500"`
}

type CancelJobRequest struct {
	Reason string `json:"reason" validate:"required,max=500"`
}

type CreateUpdateRequest struct {
	JobID           string   `json:"job_id" validate:"required_without=ProjectID"`
	ProjectID       string   `json:"project_id" validate:"required_without=JobID"`
	StageID         string   `json:"stage_id"`
	Type            string   `json:"type" validate:"required,oneof=daily weekly milestone issue completion general"`
	Notes           string   `json:"notes" validate:"max=4000"`
	WorkDone        []string `json:"work_done" validate:"max=50,dive,max=500"`
	Materials       []string `json:"materials" validate:"max=50,dive,max=500"`
	Issues          []string `json:"issues" validate:"max=50,dive,max=500"`
	ProgressPercent int      `json:"progress_percent" validate:"gte=0,lte=100"`
}

type EditUpdateRequest struct {
	StageID         string   `json:"stage_id"`
	Type            string   `json:"type" validate:"required,oneof=daily weekly milestone issue completion general"`
	Notes           string   `json:"notes" validate:"max=4000"`
	WorkDone        []string `json:"work_done" validate:"max=50,dive,max=500"`
	Materials       []string `json:"materials" validate:"max=50,dive,max=500"`
	ProgressPercent int      `json:"progress_percent" validate:"gte=0,lte=100"`
}

type CommentRequest struct {
	Body string `json:"body" validate:"required,max=1000"`
}
