package router

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"inkwell/internal/auth"
	"inkwell/internal/config"
	"inkwell/internal/handler"
	"inkwell/internal/service"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authService service.AuthService,
	authHandler *handler.AuthHandler,
	blogHandler *handler.BlogHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	// Secured routes (require a bearer token resolving to an existing user)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
		ErrorHandler: jwtErrorHandler,
	}), resolveUser(authService))

	secured.GET("/auth/me", authHandler.Me)

	secured.GET("/blogs", blogHandler.List)
	// search must stay registered ahead of /blogs/:id so the literal segment
	// "search" is never captured as an id
	secured.GET("/blogs/search", blogHandler.Search)
	secured.GET("/blogs/:id", blogHandler.Get)
	secured.POST("/blogs/save-draft", blogHandler.SaveDraft)
	secured.POST("/blogs/publish", blogHandler.Publish)
	secured.PUT("/blogs/:id", blogHandler.Update)
	secured.DELETE("/blogs/:id", blogHandler.Delete)
}

// jwtErrorHandler maps token failures: absent token is 401, anything
// presented but unusable is 403.
func jwtErrorHandler(c echo.Context, err error) error {
	if errors.Is(err, echojwt.ErrJWTMissing) {
		return echo.NewHTTPError(http.StatusUnauthorized, "Access token required")
	}
	return echo.NewHTTPError(http.StatusForbidden, "Invalid token")
}

// resolveUser loads the user named by the token claims and stores it in the
// request context. A token whose user no longer exists is rejected.
func resolveUser(authService service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return echo.NewHTTPError(http.StatusForbidden, "Invalid token")
			}
			claims, ok := token.Claims.(*auth.Claims)
			if !ok {
				return echo.NewHTTPError(http.StatusForbidden, "Invalid token")
			}

			user, err := authService.GetUser(c.Request().Context(), claims.UserID)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
			}

			c.Set("currentUser", user)
			return next(c)
		}
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
