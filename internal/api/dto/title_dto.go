package dto

import "reviewhub/internal/api/models"

// CreateTitleRequest: category and genres are referenced by slug, never by id.
type CreateTitleRequest struct {
	Name        string   `json:"name" binding:"required,max=256"`
	Year        int      `json:"year" binding:"required"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Genre       []string `json:"genre"`
}

// UpdateTitleRequest: partial update; nil fields stay untouched. A non-nil
// empty Genre slice clears the title's genres.
type UpdateTitleRequest struct {
	Name        *string   `json:"name" binding:"omitempty,max=256"`
	Year        *int      `json:"year"`
	Description *string   `json:"description"`
	Category    *string   `json:"category"`
	Genre       *[]string `json:"genre"`
}

// TitleResponse carries the derived rating: null when the title has no
// reviews, never zero.
type TitleResponse struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Year        int               `json:"year"`
	Rating      *float64          `json:"rating"`
	Description string            `json:"description"`
	Genre       []GenreResponse   `json:"genre"`
	Category    *CategoryResponse `json:"category"`
}

// FromTitle converts a Title model plus its derived rating to the response
// shape.
func FromTitle(t *models.Title, rating *float64) TitleResponse {
	resp := TitleResponse{
		ID:          t.ID,
		Name:        t.Name,
		Year:        t.Year,
		Rating:      rating,
		Description: t.Description,
		Genre:       make([]GenreResponse, 0, len(t.Genres)),
	}
	for i := range t.Genres {
		resp.Genre = append(resp.Genre, FromGenre(&t.Genres[i]))
	}
	if t.Category != nil {
		c := FromCategory(t.Category)
		resp.Category = &c
	}
	return resp
}
