package repository

import (
	"context"

	"reviewhub/internal/api/models"

	"gorm.io/gorm"
)

// TitleFilters narrows a title listing. Category and Genre are slugs, Name is
// a substring match.
type TitleFilters struct {
	Category string
	Genre    string
	Year     *int
	Name     string
}

// TitleWithRating pairs a title with its derived rating: the average review
// score, nil when the title has no reviews.
type TitleWithRating struct {
	Title  models.Title
	Rating *float64
}

type TitleRepository interface {
	Create(ctx context.Context, title *models.Title, genreIDs []int64) error
	Update(ctx context.Context, title *models.Title, genreIDs []int64) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*TitleWithRating, error)
	List(ctx context.Context, filters TitleFilters, page, pageSize int) ([]TitleWithRating, int64, error)
}

type titleRepository struct {
	db *gorm.DB
}

func NewTitleRepository(db *gorm.DB) TitleRepository {
	return &titleRepository{db: db}
}

func (r *titleRepository) Create(ctx context.Context, title *models.Title, genreIDs []int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Genres", "Category").Create(title).Error; err != nil {
			return err
		}
		return createGenreLinks(tx, title.ID, genreIDs)
	})
}

// Update saves scalar fields and, when genreIDs is non-nil, replaces the
// genre associations. An empty non-nil slice clears them.
func (r *titleRepository) Update(ctx context.Context, title *models.Title, genreIDs []int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Genres", "Category").Save(title).Error; err != nil {
			return err
		}
		if genreIDs == nil {
			return nil
		}
		if err := tx.Where("title_id = ?", title.ID).Delete(&models.GenreTitle{}).Error; err != nil {
			return err
		}
		return createGenreLinks(tx, title.ID, genreIDs)
	})
}

func createGenreLinks(tx *gorm.DB, titleID int64, genreIDs []int64) error {
	for _, gid := range genreIDs {
		if err := tx.Create(&models.GenreTitle{TitleID: titleID, GenreID: gid}).Error; err != nil {
			return err
		}
	}
	return nil
}

// Delete cascades: the FK rules take the title's reviews and, through them,
// their comments.
func (r *titleRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.Title{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *titleRepository) GetByID(ctx context.Context, id int64) (*TitleWithRating, error) {
	var title models.Title
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Genres").
		First(&title, id).Error
	if err != nil {
		return nil, err
	}

	ratings, err := r.ratingsFor(ctx, []int64{id})
	if err != nil {
		return nil, err
	}

	tw := TitleWithRating{Title: title}
	if v, ok := ratings[id]; ok {
		tw.Rating = &v
	}
	return &tw, nil
}

func (r *titleRepository) List(ctx context.Context, f TitleFilters, page, pageSize int) ([]TitleWithRating, int64, error) {
	base := r.db.WithContext(ctx).Model(&models.Title{})
	if f.Category != "" {
		base = base.
			Joins("JOIN categories ON categories.id = titles.category_id").
			Where("categories.slug = ?", f.Category)
	}
	if f.Genre != "" {
		base = base.
			Joins("JOIN genre_titles ON genre_titles.title_id = titles.id").
			Joins("JOIN genres ON genres.id = genre_titles.genre_id").
			Where("genres.slug = ?", f.Genre)
	}
	if f.Year != nil {
		base = base.Where("titles.year = ?", *f.Year)
	}
	if f.Name != "" {
		base = base.Where("titles.name ILIKE ?", "%"+f.Name+"%")
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Distinct("titles.id").Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var titles []models.Title
	offset := (page - 1) * pageSize
	err := base.
		Distinct("titles.*").
		Preload("Category").
		Preload("Genres").
		Order("titles.id").
		Limit(pageSize).
		Offset(offset).
		Find(&titles).Error
	if err != nil {
		return nil, 0, err
	}

	ids := make([]int64, 0, len(titles))
	for i := range titles {
		ids = append(ids, titles[i].ID)
	}
	ratings, err := r.ratingsFor(ctx, ids)
	if err != nil {
		return nil, 0, err
	}

	out := make([]TitleWithRating, 0, len(titles))
	for i := range titles {
		tw := TitleWithRating{Title: titles[i]}
		if v, ok := ratings[titles[i].ID]; ok {
			tw.Rating = &v
		}
		out = append(out, tw)
	}
	return out, total, nil
}

// ratingsFor computes the average review score per title. Titles without
// reviews are simply absent from the map.
func (r *titleRepository) ratingsFor(ctx context.Context, ids []int64) (map[int64]float64, error) {
	if len(ids) == 0 {
		return map[int64]float64{}, nil
	}

	type row struct {
		TitleID int64
		Rating  float64
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Select("title_id, AVG(score) AS rating").
		Where("title_id IN ?", ids).
		Group("title_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	ratings := make(map[int64]float64, len(rows))
	for _, rw := range rows {
		ratings[rw.TitleID] = rw.Rating
	}
	return ratings, nil
}
