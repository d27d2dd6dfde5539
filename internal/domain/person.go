package domain

import "time"

// Person is a cached popularity record for an actor or director,
// keyed by the IMDb person id (e.g. nm0000138). A record is written
// once on the first successful resolution and persists across runs.
type Person struct {
	PersonID   string    `gorm:"type:text;primaryKey" json:"person_id"`
	PersonName string    `gorm:"type:text" json:"person_name"`
	Popularity float64   `json:"popularity"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName returns the database table name for Person.
func (Person) TableName() string {
	return "people"
}
