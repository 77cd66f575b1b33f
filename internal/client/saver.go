package client

import (
	"context"

	"inkwell/internal/autosave"
)

// Saver adapts Client to the autosave controller: creates go to
// /blogs/save-draft, subsequent saves to PUT /blogs/:id.
type Saver struct {
	client *Client
}

// NewSaver creates a Saver backed by the given client.
func NewSaver(c *Client) *Saver {
	return &Saver{client: c}
}

// CreateDraft saves a never-persisted post as a draft and returns its id.
func (s *Saver) CreateDraft(ctx context.Context, draft autosave.Draft) (string, error) {
	blog, err := s.client.SaveDraft(ctx, draft.Title, draft.Content, draft.Tags)
	if err != nil {
		return "", err
	}
	return blog.ID, nil
}

// UpdateBlog writes the draft fields to an existing post.
func (s *Saver) UpdateBlog(ctx context.Context, blogID string, draft autosave.Draft) error {
	title := draft.Title
	content := draft.Content
	tags := draft.Tags
	_, err := s.client.UpdateBlog(ctx, blogID, BlogFields{
		Title:   &title,
		Content: &content,
		Tags:    &tags,
	})
	return err
}
