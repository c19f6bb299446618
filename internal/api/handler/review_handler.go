package handler

import (
	"net/http"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/middleware"
	"reviewhub/internal/api/service"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	reviewService service.ReviewService
}

func NewReviewHandler(reviewService service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// List handles GET /titles/:title_id/reviews (public).
func (h *ReviewHandler) List(c *gin.Context) {
	titleID, ok := pathID(c, "title_id")
	if !ok {
		return
	}
	page, pageSize := pagination(c)

	reviews, total, err := h.reviewService.ListByTitle(c.Request.Context(), titleID, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]dto.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		resp = append(resp, dto.FromReview(&reviews[i]))
	}
	c.JSON(http.StatusOK, dto.NewPaginated(resp, total, page, pageSize))
}

// Get handles GET /titles/:title_id/reviews/:review_id (public).
func (h *ReviewHandler) Get(c *gin.Context) {
	titleID, ok := pathID(c, "title_id")
	if !ok {
		return
	}
	reviewID, ok := pathID(c, "review_id")
	if !ok {
		return
	}

	review, err := h.reviewService.Get(c.Request.Context(), titleID, reviewID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromReview(review))
}

// Create handles POST /titles/:title_id/reviews. The author is the caller;
// the payload cannot name one.
func (h *ReviewHandler) Create(c *gin.Context) {
	titleID, ok := pathID(c, "title_id")
	if !ok {
		return
	}

	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var req dto.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	review, err := h.reviewService.Create(c.Request.Context(), user, titleID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromReview(review))
}

// Update handles PATCH /titles/:title_id/reviews/:review_id.
func (h *ReviewHandler) Update(c *gin.Context) {
	titleID, ok := pathID(c, "title_id")
	if !ok {
		return
	}
	reviewID, ok := pathID(c, "review_id")
	if !ok {
		return
	}

	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var req dto.UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	review, err := h.reviewService.Update(c.Request.Context(), user, titleID, reviewID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromReview(review))
}

// Delete handles DELETE /titles/:title_id/reviews/:review_id.
func (h *ReviewHandler) Delete(c *gin.Context) {
	titleID, ok := pathID(c, "title_id")
	if !ok {
		return
	}
	reviewID, ok := pathID(c, "review_id")
	if !ok {
		return
	}

	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	if err := h.reviewService.Delete(c.Request.Context(), user, titleID, reviewID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
