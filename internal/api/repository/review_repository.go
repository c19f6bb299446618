package repository

import (
	"context"

	"reviewhub/internal/api/models"

	"gorm.io/gorm"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	Update(ctx context.Context, review *models.Review) error
	Delete(ctx context.Context, id int64) error
	// GetByID resolves a review within its title; a review id under the
	// wrong title is a not-found, not a leak of another title's review.
	GetByID(ctx context.Context, titleID, reviewID int64) (*models.Review, error)
	GetByAuthorAndTitle(ctx context.Context, authorID string, titleID int64) (*models.Review, error)
	ListByTitle(ctx context.Context, titleID int64, page, pageSize int) ([]models.Review, int64, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

// Create inserts the review. A duplicate (author, title) pair surfaces as
// gorm.ErrDuplicatedKey from the unique index; callers map it to their
// validation error.
func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *reviewRepository) Update(ctx context.Context, review *models.Review) error {
	return r.db.WithContext(ctx).Save(review).Error
}

func (r *reviewRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("review_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Review{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *reviewRepository) GetByID(ctx context.Context, titleID, reviewID int64) (*models.Review, error) {
	var review models.Review
	err := r.db.WithContext(ctx).
		Where("id = ? AND title_id = ?", reviewID, titleID).
		Preload("Author").
		First(&review).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) GetByAuthorAndTitle(ctx context.Context, authorID string, titleID int64) (*models.Review, error) {
	var review models.Review
	err := r.db.WithContext(ctx).
		Where("author_id = ? AND title_id = ?", authorID, titleID).
		First(&review).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) ListByTitle(ctx context.Context, titleID int64, page, pageSize int) ([]models.Review, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Review{}).Where("title_id = ?", titleID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reviews []models.Review
	offset := (page - 1) * pageSize
	err := r.db.WithContext(ctx).
		Where("title_id = ?", titleID).
		Preload("Author").
		Order("pub_date DESC").
		Limit(pageSize).
		Offset(offset).
		Find(&reviews).Error
	if err != nil {
		return nil, 0, err
	}

	return reviews, total, nil
}
