package main

import (
	"context"
	"log"
	"net/http"

	"blogspace/docs"

	"github.com/labstack/echo/v4"

	"blogspace/internal/auth"
	"blogspace/internal/cache"
	"blogspace/internal/config"
	"blogspace/internal/db"
	"blogspace/internal/handler"
	"blogspace/internal/model"
	"blogspace/internal/repository"
	"blogspace/internal/router"
	"blogspace/internal/service"
)

// @title Blogspace API
// @version 1.0
// @description Blogging API with posts, comments, likes and cookie-session authentication.
// @host localhost:8080
// @BasePath /api
// @schemes http
func main() {
	cfg := config.Load()
	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	e := echo.New()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Post{},
		&model.PostLike{},
		&model.Comment{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err := cacheClient.Ping(context.Background()); err != nil {
		log.Printf("redis unreachable, sessions will not survive until it is back: %v", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	postRepo := repository.NewPostRepository(gormDB)
	commentRepo := repository.NewCommentRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	sessionStore := auth.NewSessionStore(cacheClient)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, sessionStore)
	postService := service.NewPostService(postRepo)
	commentService := service.NewCommentService(commentRepo, postRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, cfg.CookieSecure)
	postHandler := handler.NewPostHandler(postService)
	commentHandler := handler.NewCommentHandler(commentService)

	// Register routes
	router.Register(
		e,
		cfg,
		jwtService,
		sessionStore,
		userRepo,
		authHandler,
		postHandler,
		commentHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
