package models

// explicit join model so the pair carries its own uniqueness constraint
type GenreTitle struct {
	ID      int64 `json:"id" gorm:"primaryKey;autoIncrement"`
	TitleID int64 `json:"title_id" gorm:"not null;uniqueIndex:idx_genre_titles_title_genre"`
	GenreID int64 `json:"genre_id" gorm:"not null;uniqueIndex:idx_genre_titles_title_genre"`
}

func (GenreTitle) TableName() string {
	return "genre_titles"
}
