package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"inkwell/internal/cache"
	apperrors "inkwell/internal/errors"
	"inkwell/internal/model"
)

// MockBlogRepository is a mock implementation of BlogRepository.
type MockBlogRepository struct {
	mock.Mock
}

func (m *MockBlogRepository) Create(ctx context.Context, blog *model.Blog) error {
	args := m.Called(ctx, blog)
	return args.Error(0)
}

func (m *MockBlogRepository) FindByID(ctx context.Context, id string) (*model.Blog, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Blog), args.Error(1)
}

func (m *MockBlogRepository) ListByAuthor(ctx context.Context, authorID string) ([]model.Blog, error) {
	args := m.Called(ctx, authorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Blog), args.Error(1)
}

func (m *MockBlogRepository) Save(ctx context.Context, blog *model.Blog) error {
	args := m.Called(ctx, blog)
	return args.Error(0)
}

func (m *MockBlogRepository) Delete(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockBlogRepository) Search(ctx context.Context, authorID, query string) ([]model.Blog, error) {
	args := m.Called(ctx, authorID, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Blog), args.Error(1)
}

func newTestBlogService(repo *MockBlogRepository) BlogService {
	return NewBlogService(repo, (*cache.Client)(nil))
}

func ownedBlog() *model.Blog {
	return &model.Blog{
		ID:       "blog-1",
		Title:    "Hi",
		Content:  "Body",
		Tags:     []string{"go"},
		Status:   model.StatusDraft,
		AuthorID: "ann",
	}
}

func TestBlogService_Create(t *testing.T) {
	mockRepo := new(MockBlogRepository)
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Blog")).Return(nil)

	service := newTestBlogService(mockRepo)
	blog, err := service.Create(context.Background(), "ann", "Hi", "Body", nil, model.StatusDraft)

	assert.NoError(t, err)
	assert.Equal(t, "ann", blog.AuthorID)
	assert.Equal(t, model.StatusDraft, blog.Status)
	assert.Equal(t, []string{}, blog.Tags, "nil tags become an empty sequence")
	mockRepo.AssertExpectations(t)
}

func TestBlogService_Create_RejectsUnknownStatus(t *testing.T) {
	mockRepo := new(MockBlogRepository)

	service := newTestBlogService(mockRepo)
	blog, err := service.Create(context.Background(), "ann", "Hi", "Body", nil, model.BlogStatus("archived"))

	assert.Equal(t, apperrors.ErrInvalidStatus, err)
	assert.Nil(t, blog)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestBlogService_Update_RejectsUnknownStatus(t *testing.T) {
	mockRepo := new(MockBlogRepository)
	bad := model.BlogStatus("archived")

	service := newTestBlogService(mockRepo)
	blog, err := service.Update(context.Background(), "ann", "blog-1", BlogUpdate{Status: &bad})

	assert.Equal(t, apperrors.ErrInvalidStatus, err)
	assert.Nil(t, blog)
	mockRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestBlogService_Get_ScopedToOwner(t *testing.T) {
	tests := []struct {
		name          string
		callerID      string
		setupMock     func(*MockBlogRepository)
		expectedError error
	}{
		{
			name:     "owner sees the blog",
			callerID: "ann",
			setupMock: func(m *MockBlogRepository) {
				m.On("FindByID", mock.Anything, "blog-1").Return(ownedBlog(), nil)
			},
			expectedError: nil,
		},
		{
			name:     "another user gets not found",
			callerID: "bob",
			setupMock: func(m *MockBlogRepository) {
				m.On("FindByID", mock.Anything, "blog-1").Return(ownedBlog(), nil)
			},
			expectedError: apperrors.ErrBlogNotFound,
		},
		{
			name:     "absent blog",
			callerID: "ann",
			setupMock: func(m *MockBlogRepository) {
				m.On("FindByID", mock.Anything, "blog-1").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrBlogNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockBlogRepository)
			tt.setupMock(mockRepo)

			service := newTestBlogService(mockRepo)
			blog, err := service.Get(context.Background(), tt.callerID, "blog-1")

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, blog)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "blog-1", blog.ID)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestBlogService_Update(t *testing.T) {
	title := "New title"
	status := model.StatusPublished

	tests := []struct {
		name          string
		callerID      string
		upd           BlogUpdate
		setupMock     func(*MockBlogRepository)
		expectedError error
		check         func(*testing.T, *model.Blog)
	}{
		{
			name:     "merges provided fields",
			callerID: "ann",
			upd:      BlogUpdate{Title: &title, Status: &status},
			setupMock: func(m *MockBlogRepository) {
				m.On("FindByID", mock.Anything, "blog-1").Return(ownedBlog(), nil)
				m.On("Save", mock.Anything, mock.AnythingOfType("*model.Blog")).Return(nil)
			},
			check: func(t *testing.T, blog *model.Blog) {
				assert.Equal(t, "New title", blog.Title)
				assert.Equal(t, model.StatusPublished, blog.Status)
				assert.Equal(t, "Body", blog.Content, "absent fields stay unchanged")
			},
		},
		{
			name:     "unchanged payload still saves",
			callerID: "ann",
			upd:      BlogUpdate{},
			setupMock: func(m *MockBlogRepository) {
				m.On("FindByID", mock.Anything, "blog-1").Return(ownedBlog(), nil)
				// Save must run so updated_at gets bumped even for a no-op
				m.On("Save", mock.Anything, mock.AnythingOfType("*model.Blog")).Return(nil)
			},
			check: func(t *testing.T, blog *model.Blog) {
				assert.Equal(t, "Hi", blog.Title)
				assert.Equal(t, "Body", blog.Content)
				assert.Equal(t, []string{"go"}, blog.Tags)
			},
		},
		{
			name:     "not owner",
			callerID: "bob",
			upd:      BlogUpdate{Title: &title},
			setupMock: func(m *MockBlogRepository) {
				m.On("FindByID", mock.Anything, "blog-1").Return(ownedBlog(), nil)
			},
			expectedError: apperrors.ErrBlogNotFound,
		},
		{
			name:     "absent blog",
			callerID: "ann",
			upd:      BlogUpdate{Title: &title},
			setupMock: func(m *MockBlogRepository) {
				m.On("FindByID", mock.Anything, "blog-1").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrBlogNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockBlogRepository)
			tt.setupMock(mockRepo)

			service := newTestBlogService(mockRepo)
			blog, err := service.Update(context.Background(), tt.callerID, "blog-1", tt.upd)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, blog)
			} else {
				assert.NoError(t, err)
				tt.check(t, blog)
			}
			// the not-owner and absent cases must never reach Save
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestBlogService_Delete(t *testing.T) {
	tests := []struct {
		name          string
		callerID      string
		setupMock     func(*MockBlogRepository)
		expectedError error
	}{
		{
			name:     "owner deletes",
			callerID: "ann",
			setupMock: func(m *MockBlogRepository) {
				m.On("FindByID", mock.Anything, "blog-1").Return(ownedBlog(), nil)
				m.On("Delete", mock.Anything, "blog-1").Return(true, nil)
			},
		},
		{
			name:     "not owner",
			callerID: "bob",
			setupMock: func(m *MockBlogRepository) {
				m.On("FindByID", mock.Anything, "blog-1").Return(ownedBlog(), nil)
			},
			expectedError: apperrors.ErrBlogNotFound,
		},
		{
			name:     "row already gone",
			callerID: "ann",
			setupMock: func(m *MockBlogRepository) {
				m.On("FindByID", mock.Anything, "blog-1").Return(ownedBlog(), nil)
				m.On("Delete", mock.Anything, "blog-1").Return(false, nil)
			},
			expectedError: apperrors.ErrBlogNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockBlogRepository)
			tt.setupMock(mockRepo)

			service := newTestBlogService(mockRepo)
			err := service.Delete(context.Background(), tt.callerID, "blog-1")

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
			} else {
				assert.NoError(t, err)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestBlogService_ListAndSearchScopeToCaller(t *testing.T) {
	now := time.Now()
	annBlogs := []model.Blog{
		{ID: "b2", AuthorID: "ann", UpdatedAt: now},
		{ID: "b1", AuthorID: "ann", UpdatedAt: now.Add(-time.Hour)},
	}

	mockRepo := new(MockBlogRepository)
	mockRepo.On("ListByAuthor", mock.Anything, "ann").Return(annBlogs, nil)
	mockRepo.On("Search", mock.Anything, "ann", "hello").Return(annBlogs, nil)
	mockRepo.On("Search", mock.Anything, "bob", "hello").Return([]model.Blog{}, nil)

	service := newTestBlogService(mockRepo)

	listed, err := service.List(context.Background(), "ann")
	assert.NoError(t, err)
	assert.Len(t, listed, 2)

	found, err := service.Search(context.Background(), "ann", "hello")
	assert.NoError(t, err)
	assert.Len(t, found, 2)

	// the same query as another user hits the store with that user's scope
	other, err := service.Search(context.Background(), "bob", "hello")
	assert.NoError(t, err)
	assert.Empty(t, other)

	mockRepo.AssertExpectations(t)
}
