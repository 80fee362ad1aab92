package model

import (
	"time"

	"sitebid.com/sitebid/internal/constants"
)

// Issue is one reported problem inside a progress update.
type Issue struct {
	Description string     `json:"description"`
	Resolved    bool       `json:"resolved"`
	ResolvedAt  *time.Time `json:"resolved_at,omitempty"`
	ResolvedBy  string     `json:"resolved_by,omitempty"`
}

// Comment is one entry in a progress update's discussion thread.
type Comment struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"author_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// ProgressUpdate is a fact record filed by the assigned contractor. It never
// transitions status itself; rows are independent of each other, so plain
// row updates are enough.
type ProgressUpdate struct {
	ID                   string               `gorm:"primaryKey;size:36" json:"id"`
	JobID                string               `gorm:"size:36;index" json:"job_id,omitempty"`
	ProjectID            string               `gorm:"size:36;index;not null" json:"project_id"`
	ContractorID         string               `gorm:"size:36;not null" json:"contractor_id"`
	StageID              string               `gorm:"size:36" json:"stage_id,omitempty"`
	Type                 constants.UpdateType `gorm:"type:varchar(20);not null" json:"type"`
	Notes                string               `json:"notes"`
	WorkDone             []string             `gorm:"serializer:json" json:"work_done"`
	Materials            []string             `gorm:"serializer:json" json:"materials"`
	Issues               []Issue              `gorm:"serializer:json" json:"issues"`
	ProgressPercent      int                  `json:"progress_percent"`
	CustomerAcknowledged bool                 `json:"customer_acknowledged"`
	AcknowledgedAt       *time.Time           `json:"acknowledged_at,omitempty"`
	Comments             []Comment            `gorm:"serializer:json" json:"comments"`
	CreatedAt            time.Time            `json:"created_at"`
	UpdatedAt            time.Time            `json:"updated_at"`
}
