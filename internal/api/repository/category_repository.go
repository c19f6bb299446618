package repository

import (
	"context"

	"reviewhub/internal/api/models"

	"gorm.io/gorm"
)

type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	DeleteBySlug(ctx context.Context, slug string) error
	GetBySlug(ctx context.Context, slug string) (*models.Category, error)
	List(ctx context.Context, search string, page, pageSize int) ([]models.Category, int64, error)
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, category *models.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

// DeleteBySlug removes the category only. Titles referencing it survive with
// their category reference cleared by the FK's SET NULL rule.
func (r *categoryRepository) DeleteBySlug(ctx context.Context, slug string) error {
	result := r.db.WithContext(ctx).Where("slug = ?", slug).Delete(&models.Category{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *categoryRepository) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) List(ctx context.Context, search string, page, pageSize int) ([]models.Category, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Category{})
	if search != "" {
		q = q.Where("name ILIKE ?", "%"+search+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var categories []models.Category
	offset := (page - 1) * pageSize
	err := q.Order("slug").Limit(pageSize).Offset(offset).Find(&categories).Error
	if err != nil {
		return nil, 0, err
	}

	return categories, total, nil
}
