package handler

import (
	"net/http"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/service"

	"github.com/gin-gonic/gin"
)

type GenreHandler struct {
	genreService service.GenreService
}

func NewGenreHandler(genreService service.GenreService) *GenreHandler {
	return &GenreHandler{genreService: genreService}
}

// List handles GET /genres?search= (public).
func (h *GenreHandler) List(c *gin.Context) {
	page, pageSize := pagination(c)

	genres, total, err := h.genreService.List(c.Request.Context(), c.Query("search"), page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]dto.GenreResponse, 0, len(genres))
	for i := range genres {
		resp = append(resp, dto.FromGenre(&genres[i]))
	}
	c.JSON(http.StatusOK, dto.NewPaginated(resp, total, page, pageSize))
}

// Create handles POST /genres (admin).
func (h *GenreHandler) Create(c *gin.Context) {
	var req dto.CreateGenreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	genre, err := h.genreService.Create(c.Request.Context(), req.Name, req.Slug)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromGenre(genre))
}

// Delete handles DELETE /genres/:slug (admin). Only association rows go with
// the genre, never the titles.
func (h *GenreHandler) Delete(c *gin.Context) {
	if err := h.genreService.Delete(c.Request.Context(), c.Param("slug")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
