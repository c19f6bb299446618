package dto

import (
	"time"

	"reviewhub/internal/api/models"
)

// CreateReviewRequest: author and title come from the request context and the
// path, never from the payload.
type CreateReviewRequest struct {
	Text  string `json:"text" binding:"required"`
	Score int    `json:"score" binding:"required"`
}

type UpdateReviewRequest struct {
	Text  *string `json:"text"`
	Score *int    `json:"score"`
}

type ReviewResponse struct {
	ID      int64     `json:"id"`
	Text    string    `json:"text"`
	Author  string    `json:"author"`
	Score   int       `json:"score"`
	PubDate time.Time `json:"pub_date"`
}

func FromReview(r *models.Review) ReviewResponse {
	return ReviewResponse{
		ID:      r.ID,
		Text:    r.Text,
		Author:  r.Author.Username,
		Score:   r.Score,
		PubDate: r.PubDate,
	}
}
