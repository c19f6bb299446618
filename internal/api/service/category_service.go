package service

import (
	"context"
	"errors"

	"reviewhub/internal/api/models"
	"reviewhub/internal/api/repository"

	"gorm.io/gorm"
)

type CategoryService interface {
	List(ctx context.Context, search string, page, pageSize int) ([]models.Category, int64, error)
	Create(ctx context.Context, name, slug string) (*models.Category, error)
	Delete(ctx context.Context, slug string) error
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
}

func NewCategoryService(categoryRepo repository.CategoryRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo}
}

func (s *categoryService) List(ctx context.Context, search string, page, pageSize int) ([]models.Category, int64, error) {
	return s.categoryRepo.List(ctx, search, page, pageSize)
}

func (s *categoryService) Create(ctx context.Context, name, slug string) (*models.Category, error) {
	if !models.ValidSlug(slug) {
		return nil, ErrInvalidSlug
	}

	category := &models.Category{Name: name, Slug: slug}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSlugTaken
		}
		return nil, err
	}
	return category, nil
}

func (s *categoryService) Delete(ctx context.Context, slug string) error {
	err := s.categoryRepo.DeleteBySlug(ctx, slug)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrCategoryNotFound
	}
	return err
}
