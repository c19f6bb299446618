package models

import "regexp"

var slugRe = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

// Category groups titles (book, film, music...). The slug is the external
// identifier; numeric ids never leave the database layer.
type Category struct {
	ID   int64  `json:"-" gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"size:256;not null"`
	Slug string `json:"slug" gorm:"uniqueIndex;size:50;not null"`
}

func (Category) TableName() string {
	return "categories"
}

// ValidSlug reports whether s is an acceptable category or genre slug.
func ValidSlug(s string) bool {
	return s != "" && len(s) <= 50 && slugRe.MatchString(s)
}
