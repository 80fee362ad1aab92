package model

import "time"

// Project mirrors the rows the project registry keeps for the rest of the
// platform. This core reads it for poster checks and project-wide contractor
// assignment, and writes ContractorID back when a bid is accepted.
type Project struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	OwnerID      string    `gorm:"size:36;not null" json:"owner_id"`
	ContractorID string    `gorm:"size:36" json:"contractor_id,omitempty"`
	Title        string    `json:"title"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
