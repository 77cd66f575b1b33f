package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"inkwell/internal/model"
)

// BlogRepository defines persistence operations for blogs. Author scoping is
// the caller's responsibility except for ListByAuthor and Search, which take
// the author explicitly.
type BlogRepository interface {
	Create(ctx context.Context, blog *model.Blog) error
	FindByID(ctx context.Context, id string) (*model.Blog, error)
	ListByAuthor(ctx context.Context, authorID string) ([]model.Blog, error)
	Save(ctx context.Context, blog *model.Blog) error
	Delete(ctx context.Context, id string) (bool, error)
	Search(ctx context.Context, authorID, query string) ([]model.Blog, error)
}

type blogRepository struct {
	db *gorm.DB
}

// NewBlogRepository builds a GORM-backed repository.
func NewBlogRepository(db *gorm.DB) BlogRepository {
	return &blogRepository{db: db}
}

func (r *blogRepository) Create(ctx context.Context, blog *model.Blog) error {
	return r.db.WithContext(ctx).Create(blog).Error
}

func (r *blogRepository) FindByID(ctx context.Context, id string) (*model.Blog, error) {
	var blog model.Blog
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&blog).Error; err != nil {
		return nil, err
	}
	return &blog, nil
}

func (r *blogRepository) ListByAuthor(ctx context.Context, authorID string) ([]model.Blog, error) {
	var blogs []model.Blog
	if err := r.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("updated_at DESC").
		Find(&blogs).Error; err != nil {
		return nil, err
	}
	return blogs, nil
}

// Save writes all fields of an existing blog. GORM bumps updated_at on every
// save, so an unchanged payload still refreshes the timestamp.
func (r *blogRepository) Save(ctx context.Context, blog *model.Blog) error {
	return r.db.WithContext(ctx).Save(blog).Error
}

func (r *blogRepository) Delete(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Blog{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Search matches the query case-insensitively as a substring of the blog id,
// title, or content, scoped to the author, newest update first.
func (r *blogRepository) Search(ctx context.Context, authorID, query string) ([]model.Blog, error) {
	pattern := "%" + strings.ToLower(query) + "%"
	var blogs []model.Blog
	if err := r.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Where("LOWER(id) LIKE ? OR LOWER(title) LIKE ? OR LOWER(content) LIKE ?", pattern, pattern, pattern).
		Order("updated_at DESC").
		Find(&blogs).Error; err != nil {
		return nil, err
	}
	return blogs, nil
}
