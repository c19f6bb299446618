package repository

import (
	"context"
	"testing"

	"reviewhub/internal/api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// The composite unique index is what actually enforces one review per author
// per title; the translated duplicate-key error is the contract callers
// depend on.
func TestReviewCreate_DuplicateAuthorTitle(t *testing.T) {
	db := setupTestDB(t)
	titles := NewTitleRepository(db)
	reviews := NewReviewRepository(db)
	ctx := context.Background()

	title := &models.Title{Name: "Dune", Year: 1965}
	require.NoError(t, titles.Create(ctx, title, nil))
	alice := seedUser(t, db, "alice")

	first := &models.Review{Text: "great", Score: 8, AuthorID: alice.ID, TitleID: title.ID}
	require.NoError(t, reviews.Create(ctx, first))

	second := &models.Review{Text: "changed my mind", Score: 3, AuthorID: alice.ID, TitleID: title.ID}
	err := reviews.Create(ctx, second)

	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestReviewCreate_SameAuthorDifferentTitles(t *testing.T) {
	db := setupTestDB(t)
	titles := NewTitleRepository(db)
	reviews := NewReviewRepository(db)
	ctx := context.Background()

	dune := &models.Title{Name: "Dune", Year: 1965}
	solaris := &models.Title{Name: "Solaris", Year: 1961}
	require.NoError(t, titles.Create(ctx, dune, nil))
	require.NoError(t, titles.Create(ctx, solaris, nil))
	alice := seedUser(t, db, "alice")

	require.NoError(t, reviews.Create(ctx, &models.Review{
		Text: "great", Score: 8, AuthorID: alice.ID, TitleID: dune.ID,
	}))
	err := reviews.Create(ctx, &models.Review{
		Text: "also great", Score: 9, AuthorID: alice.ID, TitleID: solaris.ID,
	})

	assert.NoError(t, err)
}

func TestReviewGetByID_ScopedToTitle(t *testing.T) {
	db := setupTestDB(t)
	titles := NewTitleRepository(db)
	reviews := NewReviewRepository(db)
	ctx := context.Background()

	dune := &models.Title{Name: "Dune", Year: 1965}
	solaris := &models.Title{Name: "Solaris", Year: 1961}
	require.NoError(t, titles.Create(ctx, dune, nil))
	require.NoError(t, titles.Create(ctx, solaris, nil))
	alice := seedUser(t, db, "alice")

	review := &models.Review{Text: "great", Score: 8, AuthorID: alice.ID, TitleID: dune.ID}
	require.NoError(t, reviews.Create(ctx, review))

	found, err := reviews.GetByID(ctx, dune.ID, review.ID)
	assert.NoError(t, err)
	assert.Equal(t, "alice", found.Author.Username)

	// The same review id under another title is a miss.
	_, err = reviews.GetByID(ctx, solaris.ID, review.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestReviewDelete_TakesComments(t *testing.T) {
	db := setupTestDB(t)
	titles := NewTitleRepository(db)
	reviews := NewReviewRepository(db)
	comments := NewCommentRepository(db)
	ctx := context.Background()

	title := &models.Title{Name: "Dune", Year: 1965}
	require.NoError(t, titles.Create(ctx, title, nil))
	alice := seedUser(t, db, "alice")

	review := &models.Review{Text: "great", Score: 8, AuthorID: alice.ID, TitleID: title.ID}
	require.NoError(t, reviews.Create(ctx, review))
	require.NoError(t, comments.Create(ctx, &models.Comment{
		Text: "agreed", AuthorID: alice.ID, ReviewID: review.ID,
	}))

	require.NoError(t, reviews.Delete(ctx, review.ID))

	_, total, err := comments.ListByReview(ctx, review.ID, 1, 20)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), total)
}
