package handler

import (
	"net/http"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/middleware"
	"reviewhub/internal/api/service"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentService service.CommentService
}

func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// List handles GET /titles/:title_id/reviews/:review_id/comments (public).
func (h *CommentHandler) List(c *gin.Context) {
	titleID, ok := pathID(c, "title_id")
	if !ok {
		return
	}
	reviewID, ok := pathID(c, "review_id")
	if !ok {
		return
	}
	page, pageSize := pagination(c)

	comments, total, err := h.commentService.ListByReview(c.Request.Context(), titleID, reviewID, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		resp = append(resp, dto.FromComment(&comments[i]))
	}
	c.JSON(http.StatusOK, dto.NewPaginated(resp, total, page, pageSize))
}

// Get handles GET .../comments/:comment_id (public).
func (h *CommentHandler) Get(c *gin.Context) {
	titleID, ok := pathID(c, "title_id")
	if !ok {
		return
	}
	reviewID, ok := pathID(c, "review_id")
	if !ok {
		return
	}
	commentID, ok := pathID(c, "comment_id")
	if !ok {
		return
	}

	comment, err := h.commentService.Get(c.Request.Context(), titleID, reviewID, commentID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromComment(comment))
}

// Create handles POST .../comments.
func (h *CommentHandler) Create(c *gin.Context) {
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

	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.commentService.Create(c.Request.Context(), user, titleID, reviewID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromComment(comment))
}

// Update handles PATCH .../comments/:comment_id.
func (h *CommentHandler) Update(c *gin.Context) {
	titleID, ok := pathID(c, "title_id")
	if !ok {
		return
	}
	reviewID, ok := pathID(c, "review_id")
	if !ok {
		return
	}
	commentID, ok := pathID(c, "comment_id")
	if !ok {
		return
	}

	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var req dto.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.commentService.Update(c.Request.Context(), user, titleID, reviewID, commentID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromComment(comment))
}

// Delete handles DELETE .../comments/:comment_id.
func (h *CommentHandler) Delete(c *gin.Context) {
	titleID, ok := pathID(c, "title_id")
	if !ok {
		return
	}
	reviewID, ok := pathID(c, "review_id")
	if !ok {
		return
	}
	commentID, ok := pathID(c, "comment_id")
	if !ok {
		return
	}

	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	if err := h.commentService.Delete(c.Request.Context(), user, titleID, reviewID, commentID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
