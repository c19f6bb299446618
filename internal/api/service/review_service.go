package service

import (
	"context"
	"errors"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/models"
	"reviewhub/internal/api/repository"

	"gorm.io/gorm"
)

type ReviewService interface {
	ListByTitle(ctx context.Context, titleID int64, page, pageSize int) ([]models.Review, int64, error)
	Get(ctx context.Context, titleID, reviewID int64) (*models.Review, error)
	Create(ctx context.Context, author *models.User, titleID int64, req dto.CreateReviewRequest) (*models.Review, error)
	Update(ctx context.Context, actor *models.User, titleID, reviewID int64, req dto.UpdateReviewRequest) (*models.Review, error)
	Delete(ctx context.Context, actor *models.User, titleID, reviewID int64) error
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
	titleRepo  repository.TitleRepository
}

func NewReviewService(reviewRepo repository.ReviewRepository, titleRepo repository.TitleRepository) ReviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		titleRepo:  titleRepo,
	}
}

func (s *reviewService) ListByTitle(ctx context.Context, titleID int64, page, pageSize int) ([]models.Review, int64, error) {
	if err := s.requireTitle(ctx, titleID); err != nil {
		return nil, 0, err
	}
	return s.reviewRepo.ListByTitle(ctx, titleID, page, pageSize)
}

func (s *reviewService) Get(ctx context.Context, titleID, reviewID int64) (*models.Review, error) {
	review, err := s.reviewRepo.GetByID(ctx, titleID, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return review, nil
}

// Create attaches author and title server-side; the payload carries only text
// and score. The duplicate pre-check gives the friendly error, the unique
// index catches the race the pre-check cannot.
func (s *reviewService) Create(ctx context.Context, author *models.User, titleID int64, req dto.CreateReviewRequest) (*models.Review, error) {
	if err := validateScore(req.Score); err != nil {
		return nil, err
	}
	if err := s.requireTitle(ctx, titleID); err != nil {
		return nil, err
	}

	_, err := s.reviewRepo.GetByAuthorAndTitle(ctx, author.ID, titleID)
	if err == nil {
		return nil, ErrReviewExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	review := &models.Review{
		Text:     req.Text,
		AuthorID: author.ID,
		TitleID:  titleID,
		Score:    req.Score,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost the race between pre-check and insert; same answer.
			return nil, ErrReviewExists
		}
		return nil, err
	}

	return s.Get(ctx, titleID, review.ID)
}

func (s *reviewService) Update(ctx context.Context, actor *models.User, titleID, reviewID int64, req dto.UpdateReviewRequest) (*models.Review, error) {
	review, err := s.Get(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}
	if !actor.CanModify(review.AuthorID) {
		return nil, ErrForbidden
	}

	if req.Text != nil {
		review.Text = *req.Text
	}
	if req.Score != nil {
		if err := validateScore(*req.Score); err != nil {
			return nil, err
		}
		review.Score = *req.Score
	}

	if err := s.reviewRepo.Update(ctx, review); err != nil {
		return nil, err
	}
	return s.Get(ctx, titleID, reviewID)
}

func (s *reviewService) Delete(ctx context.Context, actor *models.User, titleID, reviewID int64) error {
	review, err := s.Get(ctx, titleID, reviewID)
	if err != nil {
		return err
	}
	if !actor.CanModify(review.AuthorID) {
		return ErrForbidden
	}
	return s.reviewRepo.Delete(ctx, review.ID)
}

func (s *reviewService) requireTitle(ctx context.Context, titleID int64) error {
	if _, err := s.titleRepo.GetByID(ctx, titleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTitleNotFound
		}
		return err
	}
	return nil
}

// validateScore checks the closed interval [1,10], naming the violated bound.
func validateScore(score int) error {
	if score < 1 {
		return ErrScoreTooLow
	}
	if score > 10 {
		return ErrScoreTooHigh
	}
	return nil
}
