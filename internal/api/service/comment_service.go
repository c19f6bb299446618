package service

import (
	"context"
	"errors"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/models"
	"reviewhub/internal/api/repository"

	"gorm.io/gorm"
)

type CommentService interface {
	ListByReview(ctx context.Context, titleID, reviewID int64, page, pageSize int) ([]models.Comment, int64, error)
	Get(ctx context.Context, titleID, reviewID, commentID int64) (*models.Comment, error)
	Create(ctx context.Context, author *models.User, titleID, reviewID int64, req dto.CreateCommentRequest) (*models.Comment, error)
	Update(ctx context.Context, actor *models.User, titleID, reviewID, commentID int64, req dto.UpdateCommentRequest) (*models.Comment, error)
	Delete(ctx context.Context, actor *models.User, titleID, reviewID, commentID int64) error
}

type commentService struct {
	commentRepo repository.CommentRepository
	reviewRepo  repository.ReviewRepository
}

func NewCommentService(commentRepo repository.CommentRepository, reviewRepo repository.ReviewRepository) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		reviewRepo:  reviewRepo,
	}
}

func (s *commentService) ListByReview(ctx context.Context, titleID, reviewID int64, page, pageSize int) ([]models.Comment, int64, error) {
	if _, err := s.requireReview(ctx, titleID, reviewID); err != nil {
		return nil, 0, err
	}
	return s.commentRepo.ListByReview(ctx, reviewID, page, pageSize)
}

func (s *commentService) Get(ctx context.Context, titleID, reviewID, commentID int64) (*models.Comment, error) {
	if _, err := s.requireReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}

	comment, err := s.commentRepo.GetByID(ctx, reviewID, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return comment, nil
}

func (s *commentService) Create(ctx context.Context, author *models.User, titleID, reviewID int64, req dto.CreateCommentRequest) (*models.Comment, error) {
	review, err := s.requireReview(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Text:     req.Text,
		AuthorID: author.ID,
		ReviewID: review.ID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	return s.Get(ctx, titleID, reviewID, comment.ID)
}

func (s *commentService) Update(ctx context.Context, actor *models.User, titleID, reviewID, commentID int64, req dto.UpdateCommentRequest) (*models.Comment, error) {
	comment, err := s.Get(ctx, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}
	if !actor.CanModify(comment.AuthorID) {
		return nil, ErrForbidden
	}

	if req.Text != nil {
		comment.Text = *req.Text
	}

	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}
	return s.Get(ctx, titleID, reviewID, commentID)
}

func (s *commentService) Delete(ctx context.Context, actor *models.User, titleID, reviewID, commentID int64) error {
	comment, err := s.Get(ctx, titleID, reviewID, commentID)
	if err != nil {
		return err
	}
	if !actor.CanModify(comment.AuthorID) {
		return ErrForbidden
	}
	return s.commentRepo.Delete(ctx, comment.ID)
}

// requireReview resolves the (title, review) pair from the path; a review id
// under a different title is a not-found.
func (s *commentService) requireReview(ctx context.Context, titleID, reviewID int64) (*models.Review, error) {
	review, err := s.reviewRepo.GetByID(ctx, titleID, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return review, nil
}
