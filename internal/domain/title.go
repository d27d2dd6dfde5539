package domain

import "time"

// TitleStatus represents the processing status of a catalog title.
// Values include TitleStatusPending, TitleStatusDone, and TitleStatusFailed.
type TitleStatus string

const (
	TitleStatusPending TitleStatus = "pending"
	TitleStatusDone    TitleStatus = "done"
	TitleStatusFailed  TitleStatus = "failed"
)

// Title is one entry of the ordered movie catalog together with its
// durable processing status. SequenceIndex is the 0-based position in
// the input list; resume selects titles not yet marked done, so a
// failed fetch is retried on a later run instead of being skipped.
type Title struct {
	SequenceIndex int         `gorm:"primaryKey;autoIncrement:false" json:"sequence_index"`
	MovieName     string      `gorm:"type:text;not null" json:"movie_name"`
	Link          string      `gorm:"type:text;not null" json:"link"`
	Genre         string      `gorm:"type:text" json:"genre"`
	Status        TitleStatus `gorm:"type:text;index:idx_titles_status;default:pending" json:"status"`
	Attempts      int         `gorm:"default:0" json:"attempts"`
	LastError     string      `gorm:"type:text" json:"last_error,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// TableName returns the database table name for Title.
func (Title) TableName() string {
	return "titles"
}
