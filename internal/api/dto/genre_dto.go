package dto

import "reviewhub/internal/api/models"

type CreateGenreRequest struct {
	Name string `json:"name" binding:"required,max=256"`
	Slug string `json:"slug" binding:"required,max=50"`
}

type GenreResponse struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func FromGenre(g *models.Genre) GenreResponse {
	return GenreResponse{Name: g.Name, Slug: g.Slug}
}
