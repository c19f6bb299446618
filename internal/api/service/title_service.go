package service

import (
	"context"
	"errors"
	"time"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/models"
	"reviewhub/internal/api/repository"

	"gorm.io/gorm"
)

type TitleService interface {
	List(ctx context.Context, filters repository.TitleFilters, page, pageSize int) ([]repository.TitleWithRating, int64, error)
	Get(ctx context.Context, id int64) (*repository.TitleWithRating, error)
	Create(ctx context.Context, req dto.CreateTitleRequest) (*repository.TitleWithRating, error)
	Update(ctx context.Context, id int64, req dto.UpdateTitleRequest) (*repository.TitleWithRating, error)
	Delete(ctx context.Context, id int64) error
}

type titleService struct {
	titleRepo    repository.TitleRepository
	categoryRepo repository.CategoryRepository
	genreRepo    repository.GenreRepository
}

func NewTitleService(
	titleRepo repository.TitleRepository,
	categoryRepo repository.CategoryRepository,
	genreRepo repository.GenreRepository,
) TitleService {
	return &titleService{
		titleRepo:    titleRepo,
		categoryRepo: categoryRepo,
		genreRepo:    genreRepo,
	}
}

func (s *titleService) List(ctx context.Context, filters repository.TitleFilters, page, pageSize int) ([]repository.TitleWithRating, int64, error) {
	return s.titleRepo.List(ctx, filters, page, pageSize)
}

func (s *titleService) Get(ctx context.Context, id int64) (*repository.TitleWithRating, error) {
	tw, err := s.titleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTitleNotFound
		}
		return nil, err
	}
	return tw, nil
}

func (s *titleService) Create(ctx context.Context, req dto.CreateTitleRequest) (*repository.TitleWithRating, error) {
	if err := validateYear(req.Year); err != nil {
		return nil, err
	}

	title := &models.Title{
		Name:        req.Name,
		Year:        req.Year,
		Description: req.Description,
	}

	if req.Category != "" {
		category, err := s.resolveCategory(ctx, req.Category)
		if err != nil {
			return nil, err
		}
		title.CategoryID = &category.ID
	}

	genreIDs, err := s.resolveGenres(ctx, req.Genre)
	if err != nil {
		return nil, err
	}

	if err := s.titleRepo.Create(ctx, title, genreIDs); err != nil {
		return nil, err
	}
	return s.Get(ctx, title.ID)
}

func (s *titleService) Update(ctx context.Context, id int64, req dto.UpdateTitleRequest) (*repository.TitleWithRating, error) {
	tw, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	title := tw.Title

	if req.Name != nil {
		title.Name = *req.Name
	}
	if req.Year != nil {
		if err := validateYear(*req.Year); err != nil {
			return nil, err
		}
		title.Year = *req.Year
	}
	if req.Description != nil {
		title.Description = *req.Description
	}
	if req.Category != nil {
		if *req.Category == "" {
			title.CategoryID = nil
		} else {
			category, err := s.resolveCategory(ctx, *req.Category)
			if err != nil {
				return nil, err
			}
			title.CategoryID = &category.ID
		}
	}

	var genreIDs []int64
	if req.Genre != nil {
		genreIDs, err = s.resolveGenres(ctx, *req.Genre)
		if err != nil {
			return nil, err
		}
		if genreIDs == nil {
			genreIDs = []int64{}
		}
	}

	if err := s.titleRepo.Update(ctx, &title, genreIDs); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *titleService) Delete(ctx context.Context, id int64) error {
	err := s.titleRepo.Delete(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrTitleNotFound
	}
	return err
}

func (s *titleService) resolveCategory(ctx context.Context, slug string) (*models.Category, error) {
	category, err := s.categoryRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownCategory
		}
		return nil, err
	}
	return category, nil
}

func (s *titleService) resolveGenres(ctx context.Context, slugs []string) ([]int64, error) {
	if len(slugs) == 0 {
		return nil, nil
	}
	ids := make([]int64, 0, len(slugs))
	for _, slug := range slugs {
		genre, err := s.genreRepo.GetBySlug(ctx, slug)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrUnknownGenre
			}
			return nil, err
		}
		ids = append(ids, genre.ID)
	}
	return ids, nil
}

func validateYear(year int) error {
	if year > time.Now().Year() {
		return ErrYearInFuture
	}
	return nil
}
