package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"inkwell/internal/errors"
	"inkwell/internal/model"
	"inkwell/internal/service"
)

// BlogHandler handles blog endpoints. All routes require an authenticated
// caller; every operation is scoped to the caller's own blogs.
type BlogHandler struct {
	blogService service.BlogService
}

// NewBlogHandler creates a new blog handler.
func NewBlogHandler(blogService service.BlogService) *BlogHandler {
	return &BlogHandler{blogService: blogService}
}

// SaveBlogRequest represents the body of save-draft and publish requests.
type SaveBlogRequest struct {
	Title   string   `json:"title" validate:"required"`
	Content string   `json:"content" validate:"required"`
	Tags    []string `json:"tags"`
}

// UpdateBlogRequest represents a partial update. Absent fields are left
// unchanged.
type UpdateBlogRequest struct {
	Title   *string   `json:"title" validate:"omitempty,min=1"`
	Content *string   `json:"content" validate:"omitempty,min=1"`
	Tags    *[]string `json:"tags"`
	Status  *string   `json:"status" validate:"omitempty,oneof=draft published"`
}

// List godoc
// @Summary List the caller's blogs
// @Tags blogs
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Blog
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /blogs [get]
func (h *BlogHandler) List(c echo.Context) error {
	user := currentUser(c)
	if user == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Access token required")
	}

	blogs, err := h.blogService.List(c.Request().Context(), user.ID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.Message)
	}
	return c.JSON(http.StatusOK, blogs)
}

// Search godoc
// @Summary Search the caller's blogs
// @Tags blogs
// @Produce json
// @Security BearerAuth
// @Param query query string true "Substring matched against id, title and content"
// @Success 200 {array} model.Blog
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /blogs/search [get]
func (h *BlogHandler) Search(c echo.Context) error {
	user := currentUser(c)
	if user == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Access token required")
	}

	query := c.QueryParam("query")
	if strings.TrimSpace(query) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Message: "Invalid search query",
			Errors:  []errors.FieldError{{Field: "query", Message: "failed on the 'required' rule"}},
		})
	}

	blogs, err := h.blogService.Search(c.Request().Context(), user.ID, query)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.Message)
	}
	return c.JSON(http.StatusOK, blogs)
}

// Get godoc
// @Summary Fetch one blog by id
// @Tags blogs
// @Produce json
// @Security BearerAuth
// @Param id path string true "Blog ID"
// @Success 200 {object} model.Blog
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /blogs/{id} [get]
func (h *BlogHandler) Get(c echo.Context) error {
	user := currentUser(c)
	if user == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Access token required")
	}

	blog, err := h.blogService.Get(c.Request().Context(), user.ID, c.Param("id"))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.Message)
	}
	return c.JSON(http.StatusOK, blog)
}

// SaveDraft godoc
// @Summary Create a blog with status draft
// @Tags blogs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SaveBlogRequest true "Blog content"
// @Success 200 {object} model.Blog
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /blogs/save-draft [post]
func (h *BlogHandler) SaveDraft(c echo.Context) error {
	return h.create(c, model.StatusDraft)
}

// Publish godoc
// @Summary Create a blog with status published
// @Tags blogs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SaveBlogRequest true "Blog content"
// @Success 200 {object} model.Blog
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /blogs/publish [post]
func (h *BlogHandler) Publish(c echo.Context) error {
	return h.create(c, model.StatusPublished)
}

func (h *BlogHandler) create(c echo.Context, status model.BlogStatus) error {
	user := currentUser(c)
	if user == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Access token required")
	}

	var req SaveBlogRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return validationError("Invalid input", err)
	}

	blog, err := h.blogService.Create(c.Request().Context(), user.ID, req.Title, req.Content, req.Tags, status)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.Message)
	}
	return c.JSON(http.StatusOK, blog)
}

// Update godoc
// @Summary Partially update a blog
// @Tags blogs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Blog ID"
// @Param request body UpdateBlogRequest true "Fields to update"
// @Success 200 {object} model.Blog
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /blogs/{id} [put]
func (h *BlogHandler) Update(c echo.Context) error {
	user := currentUser(c)
	if user == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Access token required")
	}

	var req UpdateBlogRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return validationError("Invalid input", err)
	}

	upd := service.BlogUpdate{
		Title:   req.Title,
		Content: req.Content,
		Tags:    req.Tags,
	}
	if req.Status != nil {
		status := model.BlogStatus(*req.Status)
		upd.Status = &status
	}

	blog, err := h.blogService.Update(c.Request().Context(), user.ID, c.Param("id"), upd)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.Message)
	}
	return c.JSON(http.StatusOK, blog)
}

// Delete godoc
// @Summary Delete a blog
// @Tags blogs
// @Produce json
// @Security BearerAuth
// @Param id path string true "Blog ID"
// @Success 200 {object} map[string]string
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /blogs/{id} [delete]
func (h *BlogHandler) Delete(c echo.Context) error {
	user := currentUser(c)
	if user == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Access token required")
	}

	if err := h.blogService.Delete(c.Request().Context(), user.ID, c.Param("id")); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.Message)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "Blog deleted successfully",
	})
}
