package models

import "time"

// Review holds a user's score and text for a title. The composite unique
// index on (author_id, title_id) is the source of truth for the
// one-review-per-author-per-title rule; the service pre-check only exists to
// produce a friendly error before the insert races the constraint.
type Review struct {
	ID       int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Text     string    `json:"text" gorm:"type:text;not null"`
	AuthorID string    `json:"-" gorm:"type:uuid;not null;uniqueIndex:idx_reviews_author_title"`
	TitleID  int64     `json:"-" gorm:"not null;index;uniqueIndex:idx_reviews_author_title"`
	Score    int       `json:"score" gorm:"not null;check:score >= 1 AND score <= 10"`
	PubDate  time.Time `json:"pub_date" gorm:"column:pub_date;autoCreateTime"`

	// Associations
	Author User  `json:"-" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE;"`
	Title  Title `json:"-" gorm:"foreignKey:TitleID;constraint:OnDelete:CASCADE;"`
}

func (Review) TableName() string {
	return "reviews"
}
