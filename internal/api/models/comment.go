package models

import "time"

type Comment struct {
	ID       int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Text     string    `json:"text" gorm:"type:text;not null"`
	AuthorID string    `json:"-" gorm:"type:uuid;not null;index"`
	ReviewID int64     `json:"-" gorm:"not null;index"`
	PubDate  time.Time `json:"pub_date" gorm:"column:pub_date;autoCreateTime"`

	// Associations
	Author User   `json:"-" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE;"`
	Review Review `json:"-" gorm:"foreignKey:ReviewID;constraint:OnDelete:CASCADE;"`
}

func (Comment) TableName() string {
	return "comments"
}
