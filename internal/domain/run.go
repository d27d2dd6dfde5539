package domain

import "time"

// RunStatus represents the status of a scrape run.
// Values include RunStatusRunning, RunStatusCompleted, and RunStatusFailed.
type RunStatus string

const (
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

// ScrapeRun records one batch invocation of the scheduler and its
// progress counters, for observability across the historical run.
type ScrapeRun struct {
	ID             string     `gorm:"type:text;primaryKey" json:"id"`
	Status         RunStatus  `gorm:"type:text;default:running" json:"status"`
	TotalItems     int        `gorm:"default:0" json:"total_items"`
	SucceededItems int        `gorm:"default:0" json:"succeeded_items"`
	FailedItems    int        `gorm:"default:0" json:"failed_items"`
	StartedAt      *time.Time `json:"started_at,omitempty"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// TableName returns the database table name for ScrapeRun.
func (ScrapeRun) TableName() string {
	return "scrape_runs"
}
