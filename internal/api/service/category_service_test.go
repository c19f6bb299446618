package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"reviewhub/internal/api/models"
)

func TestCreateCategory_Success(t *testing.T) {
	categories := new(MockCategoryRepository)
	svc := NewCategoryService(categories)

	categories.On("Create", mock.Anything, mock.AnythingOfType("*models.Category")).Return(nil)

	category, err := svc.Create(context.Background(), "Books", "books")

	assert.NoError(t, err)
	assert.Equal(t, "books", category.Slug)
}

func TestCreateCategory_InvalidSlug(t *testing.T) {
	categories := new(MockCategoryRepository)
	svc := NewCategoryService(categories)

	_, err := svc.Create(context.Background(), "Books", "bad slug!")

	assert.ErrorIs(t, err, ErrInvalidSlug)
	categories.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateCategory_SlugTaken(t *testing.T) {
	categories := new(MockCategoryRepository)
	svc := NewCategoryService(categories)

	categories.On("Create", mock.Anything, mock.AnythingOfType("*models.Category")).
		Return(gorm.ErrDuplicatedKey)

	_, err := svc.Create(context.Background(), "Books", "books")

	assert.ErrorIs(t, err, ErrSlugTaken)
}

func TestDeleteCategory_NotFound(t *testing.T) {
	categories := new(MockCategoryRepository)
	svc := NewCategoryService(categories)

	categories.On("DeleteBySlug", mock.Anything, "ghost").Return(gorm.ErrRecordNotFound)

	err := svc.Delete(context.Background(), "ghost")

	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestDeleteGenre_NotFound(t *testing.T) {
	genres := new(MockGenreRepository)
	svc := NewGenreService(genres)

	genres.On("DeleteBySlug", mock.Anything, "ghost").Return(gorm.ErrRecordNotFound)

	err := svc.Delete(context.Background(), "ghost")

	assert.ErrorIs(t, err, ErrGenreNotFound)
}

func TestCreateGenre_InvalidSlug(t *testing.T) {
	genres := new(MockGenreRepository)
	svc := NewGenreService(genres)

	_, err := svc.Create(context.Background(), "Sci-Fi", "")

	assert.ErrorIs(t, err, ErrInvalidSlug)
}

func TestListCategories(t *testing.T) {
	categories := new(MockCategoryRepository)
	svc := NewCategoryService(categories)

	stored := []models.Category{{ID: 1, Name: "Books", Slug: "books"}}
	categories.On("List", mock.Anything, "boo", 1, 20).Return(stored, int64(1), nil)

	result, total, err := svc.List(context.Background(), "boo", 1, 20)

	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, result, 1)
}
