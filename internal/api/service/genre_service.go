package service

import (
	"context"
	"errors"

	"reviewhub/internal/api/models"
	"reviewhub/internal/api/repository"

	"gorm.io/gorm"
)

type GenreService interface {
	List(ctx context.Context, search string, page, pageSize int) ([]models.Genre, int64, error)
	Create(ctx context.Context, name, slug string) (*models.Genre, error)
	Delete(ctx context.Context, slug string) error
}

type genreService struct {
	genreRepo repository.GenreRepository
}

func NewGenreService(genreRepo repository.GenreRepository) GenreService {
	return &genreService{genreRepo: genreRepo}
}

func (s *genreService) List(ctx context.Context, search string, page, pageSize int) ([]models.Genre, int64, error) {
	return s.genreRepo.List(ctx, search, page, pageSize)
}

func (s *genreService) Create(ctx context.Context, name, slug string) (*models.Genre, error) {
	if !models.ValidSlug(slug) {
		return nil, ErrInvalidSlug
	}

	genre := &models.Genre{Name: name, Slug: slug}
	if err := s.genreRepo.Create(ctx, genre); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSlugTaken
		}
		return nil, err
	}
	return genre, nil
}

func (s *genreService) Delete(ctx context.Context, slug string) error {
	err := s.genreRepo.DeleteBySlug(ctx, slug)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrGenreNotFound
	}
	return err
}
