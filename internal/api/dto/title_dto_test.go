package dto

import (
	"encoding/json"
	"testing"

	"reviewhub/internal/api/models"

	"github.com/stretchr/testify/assert"
)

// A title without reviews serialises rating as JSON null, never zero.
func TestTitleResponse_RatingNull(t *testing.T) {
	title := &models.Title{ID: 7, Name: "Dune", Year: 1965}

	body, err := json.Marshal(FromTitle(title, nil))
	assert.NoError(t, err)
	assert.Contains(t, string(body), `"rating":null`)
}

func TestTitleResponse_RatingValue(t *testing.T) {
	title := &models.Title{ID: 7, Name: "Dune", Year: 1965}
	rating := 8.5

	body, err := json.Marshal(FromTitle(title, &rating))
	assert.NoError(t, err)
	assert.Contains(t, string(body), `"rating":8.5`)
}

func TestTitleResponse_Associations(t *testing.T) {
	title := &models.Title{
		ID:   7,
		Name: "Dune",
		Year: 1965,
		Category: &models.Category{Name: "Books", Slug: "books"},
		Genres: []models.Genre{
			{Name: "Sci-Fi", Slug: "sci-fi"},
		},
	}

	resp := FromTitle(title, nil)

	assert.NotNil(t, resp.Category)
	assert.Equal(t, "books", resp.Category.Slug)
	assert.Len(t, resp.Genre, 1)
	assert.Equal(t, "sci-fi", resp.Genre[0].Slug)
}

func TestTitleResponse_EmptyGenreList(t *testing.T) {
	title := &models.Title{ID: 7, Name: "Dune", Year: 1965}

	body, err := json.Marshal(FromTitle(title, nil))
	assert.NoError(t, err)
	assert.Contains(t, string(body), `"genre":[]`)
}

func TestNewPaginated(t *testing.T) {
	p := NewPaginated([]int{1, 2, 3}, 43, 2, 20)

	assert.Equal(t, 2, p.Page)
	assert.Equal(t, 20, p.PageSize)
	assert.Equal(t, int64(43), p.Total)
	assert.Equal(t, 3, p.TotalPages)
}
