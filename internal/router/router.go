package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"blogspace/internal/auth"
	"blogspace/internal/config"
	"blogspace/internal/handler"
	"blogspace/internal/repository"
)

// Register wires routes and middleware. Reads are public; every
// mutating route goes through the session middleware before any record
// is fetched.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	jwtService *auth.JWTService,
	sessions auth.SessionStoreInterface,
	users repository.UserRepository,
	authHandler *handler.AuthHandler,
	postHandler *handler.PostHandler,
	commentHandler *handler.CommentHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowCredentials: true,
	}))

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	requireAuth := []echo.MiddlewareFunc{
		auth.CookieAuth(jwtService),
		auth.LoadUser(sessions, users),
	}

	// Auth routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/logout", authHandler.Logout)
	api.GET("/auth/profile", authHandler.Profile, requireAuth...)

	// Post routes; listing and fetching are public
	api.GET("/posts", postHandler.ListPosts)
	api.GET("/posts/:id", postHandler.GetPost)
	api.POST("/posts", postHandler.CreatePost, requireAuth...)
	api.PUT("/posts/:id", postHandler.UpdatePost, requireAuth...)
	api.DELETE("/posts/:id", postHandler.DeletePost, requireAuth...)
	api.PUT("/posts/:id/like", postHandler.LikePost, requireAuth...)

	// Comment routes; listing is public
	api.GET("/comments/post/:postId", commentHandler.ListByPost)
	api.POST("/comments/post/:postId", commentHandler.CreateComment, requireAuth...)
	api.PUT("/comments/:id", commentHandler.UpdateComment, requireAuth...)
	api.DELETE("/comments/:id", commentHandler.DeleteComment, requireAuth...)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
