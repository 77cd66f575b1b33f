// Package client is a Go client for the blog API. It mirrors the HTTP/JSON
// contract served under /api and carries the bearer token on every request.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"inkwell/internal/errors"
	"inkwell/internal/model"
)

// Client talks to the blog API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

// New creates a client for the given base URL, e.g. "http://localhost:8080/api".
func New(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// SetToken stores the bearer token used on authenticated requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

// Token returns the stored bearer token.
func (c *Client) Token() string {
	return c.token
}

// UserProfile is the public view of a user returned by the API.
type UserProfile struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AuthResponse is the body of register and login responses.
type AuthResponse struct {
	Token string      `json:"token"`
	User  UserProfile `json:"user"`
}

// BlogFields carries the optional fields of a partial update. Nil fields are
// omitted from the request body.
type BlogFields struct {
	Title   *string   `json:"title,omitempty"`
	Content *string   `json:"content,omitempty"`
	Tags    *[]string `json:"tags,omitempty"`
	Status  *string   `json:"status,omitempty"`
}

type saveBlogRequest struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

type credentialsRequest struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates a user and stores the issued token on the client.
func (c *Client) Register(ctx context.Context, name, email, password string) (*AuthResponse, error) {
	var resp AuthResponse
	err := c.do(ctx, http.MethodPost, "/auth/register", credentialsRequest{Name: name, Email: email, Password: password}, &resp)
	if err != nil {
		return nil, err
	}
	c.token = resp.Token
	return &resp, nil
}

// Login verifies credentials and stores the issued token on the client.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	var resp AuthResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", credentialsRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return nil, err
	}
	c.token = resp.Token
	return &resp, nil
}

// Me returns the caller's profile.
func (c *Client) Me(ctx context.Context) (*UserProfile, error) {
	var profile UserProfile
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// Blogs lists the caller's blogs, most recently updated first.
func (c *Client) Blogs(ctx context.Context) ([]model.Blog, error) {
	var blogs []model.Blog
	if err := c.do(ctx, http.MethodGet, "/blogs", nil, &blogs); err != nil {
		return nil, err
	}
	return blogs, nil
}

// Blog fetches one blog by id.
func (c *Client) Blog(ctx context.Context, id string) (*model.Blog, error) {
	var blog model.Blog
	if err := c.do(ctx, http.MethodGet, "/blogs/"+url.PathEscape(id), nil, &blog); err != nil {
		return nil, err
	}
	return &blog, nil
}

// SaveDraft creates a blog with status draft.
func (c *Client) SaveDraft(ctx context.Context, title, content string, tags []string) (*model.Blog, error) {
	var blog model.Blog
	if err := c.do(ctx, http.MethodPost, "/blogs/save-draft", saveBlogRequest{Title: title, Content: content, Tags: tags}, &blog); err != nil {
		return nil, err
	}
	return &blog, nil
}

// Publish creates a blog with status published.
func (c *Client) Publish(ctx context.Context, title, content string, tags []string) (*model.Blog, error) {
	var blog model.Blog
	if err := c.do(ctx, http.MethodPost, "/blogs/publish", saveBlogRequest{Title: title, Content: content, Tags: tags}, &blog); err != nil {
		return nil, err
	}
	return &blog, nil
}

// UpdateBlog partially updates a blog.
func (c *Client) UpdateBlog(ctx context.Context, id string, fields BlogFields) (*model.Blog, error) {
	var blog model.Blog
	if err := c.do(ctx, http.MethodPut, "/blogs/"+url.PathEscape(id), fields, &blog); err != nil {
		return nil, err
	}
	return &blog, nil
}

// DeleteBlog deletes a blog.
func (c *Client) DeleteBlog(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/blogs/"+url.PathEscape(id), nil, nil)
}

// SearchBlogs runs a substring search over the caller's blogs.
func (c *Client) SearchBlogs(ctx context.Context, query string) ([]model.Blog, error) {
	var blogs []model.Blog
	path := "/blogs/search?query=" + url.QueryEscape(query)
	if err := c.do(ctx, http.MethodGet, path, nil, &blogs); err != nil {
		return nil, err
	}
	return blogs, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr errors.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err != nil || apiErr.Message == "" {
			return fmt.Errorf("%s %s: unexpected status %d", method, path, resp.StatusCode)
		}
		return fmt.Errorf("%s", apiErr.Message)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
