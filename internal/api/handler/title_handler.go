package handler

import (
	"net/http"
	"strconv"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/repository"
	"reviewhub/internal/api/service"

	"github.com/gin-gonic/gin"
)

type TitleHandler struct {
	titleService service.TitleService
}

func NewTitleHandler(titleService service.TitleService) *TitleHandler {
	return &TitleHandler{titleService: titleService}
}

// List handles GET /titles with category/genre/year/name filters (public).
func (h *TitleHandler) List(c *gin.Context) {
	page, pageSize := pagination(c)

	filters := repository.TitleFilters{
		Category: c.Query("category"),
		Genre:    c.Query("genre"),
		Name:     c.Query("name"),
	}
	if raw := c.Query("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year filter"})
			return
		}
		filters.Year = &year
	}

	titles, total, err := h.titleService.List(c.Request.Context(), filters, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]dto.TitleResponse, 0, len(titles))
	for i := range titles {
		resp = append(resp, dto.FromTitle(&titles[i].Title, titles[i].Rating))
	}
	c.JSON(http.StatusOK, dto.NewPaginated(resp, total, page, pageSize))
}

// Get handles GET /titles/:title_id (public).
func (h *TitleHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "title_id")
	if !ok {
		return
	}

	tw, err := h.titleService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromTitle(&tw.Title, tw.Rating))
}

// Create handles POST /titles (admin).
func (h *TitleHandler) Create(c *gin.Context) {
	var req dto.CreateTitleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tw, err := h.titleService.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromTitle(&tw.Title, tw.Rating))
}

// Update handles PATCH /titles/:title_id (admin).
func (h *TitleHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "title_id")
	if !ok {
		return
	}

	var req dto.UpdateTitleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tw, err := h.titleService.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromTitle(&tw.Title, tw.Rating))
}

// Delete handles DELETE /titles/:title_id (admin). Reviews and their
// comments go with the title.
func (h *TitleHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "title_id")
	if !ok {
		return
	}

	if err := h.titleService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
