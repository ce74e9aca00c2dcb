package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"blogspace/internal/config"
	"blogspace/internal/db"
	"blogspace/internal/model"
	"blogspace/internal/repository"
)

// seedUser describes one demo account with its starter posts.
type seedUser struct {
	Name     string
	Email    string
	Password string
	Role     string
	Posts    []seedPost
}

type seedPost struct {
	Title    string
	Content  string
	Comments []string
}

var seedUsers = []seedUser{
	{
		Name:     "Admin",
		Email:    "admin@blogspace.local",
		Password: "admin123",
		Role:     model.RoleAdmin,
	},
	{
		Name:     "Alice",
		Email:    "alice@blogspace.local",
		Password: "password123",
		Role:     model.RoleMember,
		Posts: []seedPost{
			{
				Title:    "Hello, Blogspace",
				Content:  "First post on a fresh install. Everything below this line is fair game for comments.",
				Comments: []string{"Welcome aboard!", "Looking forward to more."},
			},
		},
	},
	{
		Name:     "Bob",
		Email:    "bob@blogspace.local",
		Password: "password123",
		Role:     model.RoleMember,
		Posts: []seedPost{
			{
				Title:   "On writing short posts",
				Content: "Short posts get read. Long posts get skimmed. This one is short on purpose.",
			},
		},
	},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Post{},
		&model.PostLike{},
		&model.Comment{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	userRepo := repository.NewUserRepository(gormDB)
	postRepo := repository.NewPostRepository(gormDB)
	commentRepo := repository.NewCommentRepository(gormDB)
	ctx := context.Background()

	users, posts, comments, err := seed(ctx, userRepo, postRepo, commentRepo)
	if err != nil {
		log.Fatalf("Failed to seed: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - Users created: %d", users)
	log.Printf("  - Posts created: %d", posts)
	log.Printf("  - Comments created: %d", comments)
}

// seed creates demo users with posts and comments, skipping users that
// already exist so the script stays re-runnable.
func seed(
	ctx context.Context,
	userRepo repository.UserRepository,
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
) (users, posts, comments int, err error) {
	// Comments land on the previous user's posts so the demo data shows
	// cross-user activity.
	var lastUser *model.User

	for _, su := range seedUsers {
		existing, err := userRepo.FindByEmail(ctx, su.Email)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return users, posts, comments, fmt.Errorf("check user %s: %w", su.Email, err)
		}
		if existing != nil {
			log.Printf("Skipping existing user %s", su.Email)
			lastUser = existing
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(su.Password), bcrypt.DefaultCost)
		if err != nil {
			return users, posts, comments, fmt.Errorf("hash password for %s: %w", su.Email, err)
		}

		user := &model.User{
			Name:         su.Name,
			Email:        su.Email,
			PasswordHash: string(hash),
			Role:         su.Role,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			return users, posts, comments, fmt.Errorf("create user %s: %w", su.Email, err)
		}
		users++

		for _, sp := range su.Posts {
			post := &model.Post{
				Title:    sp.Title,
				Content:  sp.Content,
				AuthorID: user.ID,
			}
			if err := postRepo.Create(ctx, post); err != nil {
				return users, posts, comments, fmt.Errorf("create post %q: %w", sp.Title, err)
			}
			posts++

			commenter := lastUser
			if commenter == nil {
				commenter = user
			}
			for _, content := range sp.Comments {
				comment := &model.Comment{
					Content:  content,
					AuthorID: commenter.ID,
					PostID:   post.ID,
				}
				if err := commentRepo.Create(ctx, comment); err != nil {
					return users, posts, comments, fmt.Errorf("create comment on %q: %w", sp.Title, err)
				}
				comments++
			}
		}

		lastUser = user
	}

	return users, posts, comments, nil
}
