package service

import (
	"context"
	"testing"
	"time"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/models"
	"reviewhub/internal/api/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// MockCategoryRepository mocks the CategoryRepository interface
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) Create(ctx context.Context, category *models.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) DeleteBySlug(ctx context.Context, slug string) error {
	args := m.Called(ctx, slug)
	return args.Error(0)
}

func (m *MockCategoryRepository) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCategoryRepository) List(ctx context.Context, search string, page, pageSize int) ([]models.Category, int64, error) {
	args := m.Called(ctx, search, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Category), args.Get(1).(int64), args.Error(2)
}

// MockGenreRepository mocks the GenreRepository interface
type MockGenreRepository struct {
	mock.Mock
}

func (m *MockGenreRepository) Create(ctx context.Context, genre *models.Genre) error {
	args := m.Called(ctx, genre)
	return args.Error(0)
}

func (m *MockGenreRepository) DeleteBySlug(ctx context.Context, slug string) error {
	args := m.Called(ctx, slug)
	return args.Error(0)
}

func (m *MockGenreRepository) GetBySlug(ctx context.Context, slug string) (*models.Genre, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Genre), args.Error(1)
}

func (m *MockGenreRepository) List(ctx context.Context, search string, page, pageSize int) ([]models.Genre, int64, error) {
	args := m.Called(ctx, search, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Genre), args.Get(1).(int64), args.Error(2)
}

func newTestTitleService() (TitleService, *MockTitleRepository, *MockCategoryRepository, *MockGenreRepository) {
	titles := new(MockTitleRepository)
	categories := new(MockCategoryRepository)
	genres := new(MockGenreRepository)
	return NewTitleService(titles, categories, genres), titles, categories, genres
}

func TestCreateTitle_Success(t *testing.T) {
	svc, titles, categories, genres := newTestTitleService()

	categories.On("GetBySlug", mock.Anything, "books").
		Return(&models.Category{ID: 3, Name: "Books", Slug: "books"}, nil)
	genres.On("GetBySlug", mock.Anything, "sci-fi").
		Return(&models.Genre{ID: 5, Name: "Sci-Fi", Slug: "sci-fi"}, nil)
	titles.On("Create", mock.Anything, mock.AnythingOfType("*models.Title"), []int64{5}).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.Title).ID = 7
		}).
		Return(nil)
	titles.On("GetByID", mock.Anything, int64(7)).
		Return(&repository.TitleWithRating{Title: models.Title{ID: 7, Name: "Dune", Year: 1965}}, nil)

	tw, err := svc.Create(context.Background(), dto.CreateTitleRequest{
		Name:     "Dune",
		Year:     1965,
		Category: "books",
		Genre:    []string{"sci-fi"},
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(7), tw.Title.ID)
	assert.Nil(t, tw.Rating)
	titles.AssertExpectations(t)
}

func TestCreateTitle_FutureYear(t *testing.T) {
	svc, titles, _, _ := newTestTitleService()

	_, err := svc.Create(context.Background(), dto.CreateTitleRequest{
		Name: "Tomorrow",
		Year: time.Now().Year() + 1,
	})

	assert.ErrorIs(t, err, ErrYearInFuture)
	titles.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateTitle_CurrentYearAccepted(t *testing.T) {
	svc, titles, _, _ := newTestTitleService()

	titles.On("Create", mock.Anything, mock.AnythingOfType("*models.Title"), mock.Anything).Return(nil)
	titles.On("GetByID", mock.Anything, mock.Anything).
		Return(&repository.TitleWithRating{Title: models.Title{Name: "Now"}}, nil)

	_, err := svc.Create(context.Background(), dto.CreateTitleRequest{
		Name: "Now",
		Year: time.Now().Year(),
	})

	assert.NoError(t, err)
}

func TestCreateTitle_UnknownCategory(t *testing.T) {
	svc, titles, categories, _ := newTestTitleService()

	categories.On("GetBySlug", mock.Anything, "nope").Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Create(context.Background(), dto.CreateTitleRequest{
		Name:     "Dune",
		Year:     1965,
		Category: "nope",
	})

	assert.ErrorIs(t, err, ErrUnknownCategory)
	titles.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateTitle_UnknownGenre(t *testing.T) {
	svc, titles, _, genres := newTestTitleService()

	genres.On("GetBySlug", mock.Anything, "nope").Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Create(context.Background(), dto.CreateTitleRequest{
		Name:  "Dune",
		Year:  1965,
		Genre: []string{"nope"},
	})

	assert.ErrorIs(t, err, ErrUnknownGenre)
	titles.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateTitle_FutureYear(t *testing.T) {
	svc, titles, _, _ := newTestTitleService()

	titles.On("GetByID", mock.Anything, int64(7)).
		Return(&repository.TitleWithRating{Title: models.Title{ID: 7, Name: "Dune", Year: 1965}}, nil)

	year := time.Now().Year() + 1
	_, err := svc.Update(context.Background(), 7, dto.UpdateTitleRequest{Year: &year})

	assert.ErrorIs(t, err, ErrYearInFuture)
	titles.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

// A non-nil empty genre list clears the associations; a nil one leaves them
// alone.
func TestUpdateTitle_ClearGenres(t *testing.T) {
	svc, titles, _, _ := newTestTitleService()

	titles.On("GetByID", mock.Anything, int64(7)).
		Return(&repository.TitleWithRating{Title: models.Title{ID: 7, Name: "Dune", Year: 1965}}, nil)
	titles.On("Update", mock.Anything, mock.AnythingOfType("*models.Title"), []int64{}).Return(nil)

	empty := []string{}
	_, err := svc.Update(context.Background(), 7, dto.UpdateTitleRequest{Genre: &empty})

	assert.NoError(t, err)
	titles.AssertExpectations(t)
}

func TestUpdateTitle_NotFound(t *testing.T) {
	svc, titles, _, _ := newTestTitleService()

	titles.On("GetByID", mock.Anything, int64(99)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Update(context.Background(), 99, dto.UpdateTitleRequest{})

	assert.ErrorIs(t, err, ErrTitleNotFound)
}

func TestDeleteTitle_NotFound(t *testing.T) {
	svc, titles, _, _ := newTestTitleService()

	titles.On("Delete", mock.Anything, int64(99)).Return(gorm.ErrRecordNotFound)

	err := svc.Delete(context.Background(), 99)

	assert.ErrorIs(t, err, ErrTitleNotFound)
}
