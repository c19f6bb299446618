package handler

import (
	"net/http"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/service"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	categoryService service.CategoryService
}

func NewCategoryHandler(categoryService service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// List handles GET /categories?search= (public).
func (h *CategoryHandler) List(c *gin.Context) {
	page, pageSize := pagination(c)

	categories, total, err := h.categoryService.List(c.Request.Context(), c.Query("search"), page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]dto.CategoryResponse, 0, len(categories))
	for i := range categories {
		resp = append(resp, dto.FromCategory(&categories[i]))
	}
	c.JSON(http.StatusOK, dto.NewPaginated(resp, total, page, pageSize))
}

// Create handles POST /categories (admin).
func (h *CategoryHandler) Create(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := h.categoryService.Create(c.Request.Context(), req.Name, req.Slug)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromCategory(category))
}

// Delete handles DELETE /categories/:slug (admin). Titles referencing the
// category survive with the reference cleared.
func (h *CategoryHandler) Delete(c *gin.Context) {
	if err := h.categoryService.Delete(c.Request.Context(), c.Param("slug")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
