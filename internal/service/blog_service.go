package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"inkwell/internal/cache"
	"inkwell/internal/errors"
	"inkwell/internal/model"
	"inkwell/internal/repository"
)

const blogCacheTTL = 5 * time.Minute

// BlogUpdate carries the optional fields of a partial update. Nil means
// "leave unchanged".
type BlogUpdate struct {
	Title   *string
	Content *string
	Tags    *[]string
	Status  *model.BlogStatus
}

// BlogService handles blog operations, all scoped to the calling author.
// A blog that exists but belongs to someone else is indistinguishable from
// one that does not exist.
type BlogService interface {
	Create(ctx context.Context, authorID, title, content string, tags []string, status model.BlogStatus) (*model.Blog, error)
	Get(ctx context.Context, authorID, id string) (*model.Blog, error)
	List(ctx context.Context, authorID string) ([]model.Blog, error)
	Search(ctx context.Context, authorID, query string) ([]model.Blog, error)
	Update(ctx context.Context, authorID, id string, upd BlogUpdate) (*model.Blog, error)
	Delete(ctx context.Context, authorID, id string) error
}

type blogService struct {
	blogs repository.BlogRepository
	cache *cache.Client
}

// NewBlogService creates a new blog service.
func NewBlogService(blogs repository.BlogRepository, cache *cache.Client) BlogService {
	return &blogService{
		blogs: blogs,
		cache: cache,
	}
}

func (s *blogService) cacheKey(id string) string {
	return fmt.Sprintf("blog:%s", id)
}

// Create stores a new blog owned by the author.
func (s *blogService) Create(ctx context.Context, authorID, title, content string, tags []string, status model.BlogStatus) (*model.Blog, error) {
	if !status.Valid() {
		return nil, errors.ErrInvalidStatus
	}
	if tags == nil {
		tags = []string{}
	}
	blog := &model.Blog{
		Title:    title,
		Content:  content,
		Tags:     tags,
		Status:   status,
		AuthorID: authorID,
	}
	if err := s.blogs.Create(ctx, blog); err != nil {
		return nil, fmt.Errorf("create blog: %w", err)
	}
	return blog, nil
}

// Get retrieves a blog by ID with caching. The ownership check runs after the
// lookup so a cached record is still invisible to non-owners.
func (s *blogService) Get(ctx context.Context, authorID, id string) (*model.Blog, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.Blog
		if err := json.Unmarshal(data, &cached); err == nil {
			if cached.AuthorID != authorID {
				return nil, errors.ErrBlogNotFound
			}
			return &cached, nil
		}
	}

	blog, err := s.blogs.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrBlogNotFound
		}
		return nil, err
	}
	if blog.AuthorID != authorID {
		return nil, errors.ErrBlogNotFound
	}

	if payload, err := json.Marshal(blog); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, blogCacheTTL)
	}
	return blog, nil
}

// List returns the author's blogs, most recently updated first.
func (s *blogService) List(ctx context.Context, authorID string) ([]model.Blog, error) {
	return s.blogs.ListByAuthor(ctx, authorID)
}

// Search returns the author's blogs matching the query. Empty queries are
// rejected by the handler layer, not here.
func (s *blogService) Search(ctx context.Context, authorID, query string) ([]model.Blog, error) {
	return s.blogs.Search(ctx, authorID, query)
}

// Update merges the provided fields into an owned blog. The updated_at
// timestamp is refreshed even when the payload changes nothing.
func (s *blogService) Update(ctx context.Context, authorID, id string, upd BlogUpdate) (*model.Blog, error) {
	if upd.Status != nil && !upd.Status.Valid() {
		return nil, errors.ErrInvalidStatus
	}

	blog, err := s.blogs.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrBlogNotFound
		}
		return nil, err
	}
	if blog.AuthorID != authorID {
		return nil, errors.ErrBlogNotFound
	}

	if upd.Title != nil {
		blog.Title = *upd.Title
	}
	if upd.Content != nil {
		blog.Content = *upd.Content
	}
	if upd.Tags != nil {
		blog.Tags = *upd.Tags
	}
	if upd.Status != nil {
		blog.Status = *upd.Status
	}

	if err := s.blogs.Save(ctx, blog); err != nil {
		return nil, fmt.Errorf("update blog: %w", err)
	}

	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return blog, nil
}

// Delete removes an owned blog.
func (s *blogService) Delete(ctx context.Context, authorID, id string) error {
	blog, err := s.blogs.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrBlogNotFound
		}
		return err
	}
	if blog.AuthorID != authorID {
		return errors.ErrBlogNotFound
	}

	deleted, err := s.blogs.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete blog: %w", err)
	}
	if !deleted {
		return errors.ErrBlogNotFound
	}

	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return nil
}
