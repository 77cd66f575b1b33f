package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"inkwell/internal/errors"
	"inkwell/internal/model"
)

// currentUser returns the authenticated user placed in the context by the
// auth middleware, or nil outside a secured route.
func currentUser(c echo.Context) *model.User {
	user, _ := c.Get("currentUser").(*model.User)
	return user
}

// validationError turns a validator failure into a 400 response carrying
// per-field errors.
func validationError(message string, err error) *echo.HTTPError {
	resp := errors.ErrorResponse{Message: message}
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			resp.Errors = append(resp.Errors, errors.FieldError{
				Field:   strings.ToLower(fe.Field()),
				Message: fmt.Sprintf("failed on the '%s' rule", fe.Tag()),
			})
		}
	}
	return echo.NewHTTPError(http.StatusBadRequest, resp)
}
