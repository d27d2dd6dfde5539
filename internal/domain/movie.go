package domain

import "time"

// MovieResult is one enriched catalog row, keyed by movie name.
// Pointer fields are nullable: a nil value means the data was absent on
// the source page or could not be parsed. Column order here matches the
// exported CSV column order.
type MovieResult struct {
	MovieName   string    `gorm:"type:text;primaryKey" json:"movie_name"`
	Budget      *int64    `json:"budget"`
	Gross       *int64    `json:"gross"`
	Genre       string    `gorm:"type:text" json:"genre"`
	Runtime     *int64    `json:"runtime"`
	Rating      *float64  `json:"rating"`
	Vote        *int64    `json:"vote"`
	PopActor1   *float64  `json:"pop_actor1"`
	PopActor2   *float64  `json:"pop_actor2"`
	PopActor3   *float64  `json:"pop_actor3"`
	PopDirector *float64  `json:"pop_director"`
	Link        string    `gorm:"type:text" json:"link"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName returns the database table name for MovieResult.
func (MovieResult) TableName() string {
	return "movie_results"
}
