package models

import "time"

// Title is a reviewable work. Its rating is never stored: it is the average
// of review scores, computed per read by the repository.
type Title struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string    `json:"name" gorm:"size:256;not null;index"`
	Year        int       `json:"year" gorm:"not null;index"`
	Description string    `json:"description" gorm:"type:text"`
	CategoryID  *int64    `json:"-" gorm:"index"`
	CreatedAt   time.Time `json:"created_at"`

	// Associations. Deleting a category keeps the title and clears the
	// reference; genres attach through the explicit join model.
	Category *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL;"`
	Genres   []Genre   `json:"genre,omitempty" gorm:"many2many:genre_titles;"`
}

func (Title) TableName() string {
	return "titles"
}
