package dto

import "reviewhub/internal/api/models"

type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required,max=256"`
	Slug string `json:"slug" binding:"required,max=50"`
}

type CategoryResponse struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func FromCategory(c *models.Category) CategoryResponse {
	return CategoryResponse{Name: c.Name, Slug: c.Slug}
}
