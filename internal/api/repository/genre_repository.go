package repository

import (
	"context"

	"reviewhub/internal/api/models"

	"gorm.io/gorm"
)

type GenreRepository interface {
	Create(ctx context.Context, genre *models.Genre) error
	DeleteBySlug(ctx context.Context, slug string) error
	GetBySlug(ctx context.Context, slug string) (*models.Genre, error)
	List(ctx context.Context, search string, page, pageSize int) ([]models.Genre, int64, error)
}

type genreRepository struct {
	db *gorm.DB
}

func NewGenreRepository(db *gorm.DB) GenreRepository {
	return &genreRepository{db: db}
}

func (r *genreRepository) Create(ctx context.Context, genre *models.Genre) error {
	return r.db.WithContext(ctx).Create(genre).Error
}

// DeleteBySlug removes the genre and, through it, its association rows only.
func (r *genreRepository) DeleteBySlug(ctx context.Context, slug string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var genre models.Genre
		if err := tx.Where("slug = ?", slug).First(&genre).Error; err != nil {
			return err
		}
		if err := tx.Where("genre_id = ?", genre.ID).Delete(&models.GenreTitle{}).Error; err != nil {
			return err
		}
		return tx.Delete(&genre).Error
	})
}

func (r *genreRepository) GetBySlug(ctx context.Context, slug string) (*models.Genre, error) {
	var genre models.Genre
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&genre).Error; err != nil {
		return nil, err
	}
	return &genre, nil
}

func (r *genreRepository) List(ctx context.Context, search string, page, pageSize int) ([]models.Genre, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Genre{})
	if search != "" {
		q = q.Where("name ILIKE ?", "%"+search+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var genres []models.Genre
	offset := (page - 1) * pageSize
	err := q.Order("slug").Limit(pageSize).Offset(offset).Find(&genres).Error
	if err != nil {
		return nil, 0, err
	}

	return genres, total, nil
}
