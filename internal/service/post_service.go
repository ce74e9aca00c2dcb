package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"blogspace/internal/authz"
	apperrors "blogspace/internal/errors"
	"blogspace/internal/model"
	"blogspace/internal/repository"
)

// PostService exposes post operations. Reads are open to anyone;
// mutations take the acting user and enforce the ownership rule, except
// the like-toggle which any authenticated user may perform.
type PostService interface {
	ListPosts(ctx context.Context) ([]model.Post, error)
	GetPost(ctx context.Context, id uuid.UUID) (*model.Post, error)
	CreatePost(ctx context.Context, actor *model.User, title, content string) (*model.Post, error)
	UpdatePost(ctx context.Context, actor *model.User, id uuid.UUID, title, content string) (*model.Post, error)
	DeletePost(ctx context.Context, actor *model.User, id uuid.UUID) error
	ToggleLike(ctx context.Context, actor *model.User, id uuid.UUID) (*model.Post, error)
}

type postService struct {
	postRepo repository.PostRepository
}

// NewPostService builds a PostService.
func NewPostService(postRepo repository.PostRepository) PostService {
	return &postService{postRepo: postRepo}
}

// ListPosts returns all posts newest first with authors and like ids.
func (s *postService) ListPosts(ctx context.Context) ([]model.Post, error) {
	posts, err := s.postRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range posts {
		likes, err := s.postRepo.ListLikerIDs(ctx, posts[i].ID)
		if err != nil {
			return nil, err
		}
		posts[i].Likes = likes
	}
	return posts, nil
}

// GetPost returns one post with the author and likers joined.
func (s *postService) GetPost(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	post, err := s.loadPost(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.attachLikers(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// CreatePost creates a post authored by the acting user. Any
// client-supplied author is ignored; the caller is always the owner.
// Title and content must be non-empty after trimming.
func (s *postService) CreatePost(ctx context.Context, actor *model.User, title, content string) (*model.Post, error) {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	if title == "" {
		return nil, apperrors.NewFieldError("title", "title is required")
	}
	if content == "" {
		return nil, apperrors.NewFieldError("content", "content is required")
	}

	post := &model.Post{
		Title:    title,
		Content:  content,
		AuthorID: actor.ID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	post.Author = &model.User{ID: actor.ID, Name: actor.Name, Email: actor.Email}
	post.Likes = []uuid.UUID{}
	return post, nil
}

// UpdatePost applies a partial update: an empty title or content leaves
// the stored field unchanged. Only the owner or an admin may update.
func (s *postService) UpdatePost(ctx context.Context, actor *model.User, id uuid.UUID, title, content string) (*model.Post, error) {
	post, err := s.loadPost(ctx, id)
	if err != nil {
		return nil, err
	}

	if !authz.CanMutate(actor.ID, actor.Role, post.AuthorID) {
		return nil, apperrors.ErrForbidden
	}

	if t := strings.TrimSpace(title); t != "" {
		post.Title = t
	}
	if c := strings.TrimSpace(content); c != "" {
		post.Content = c
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}

	likes, err := s.postRepo.ListLikerIDs(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	post.Likes = likes
	return post, nil
}

// DeletePost removes the post together with its comments and likes.
// Only the owner or an admin may delete.
func (s *postService) DeletePost(ctx context.Context, actor *model.User, id uuid.UUID) error {
	post, err := s.loadPost(ctx, id)
	if err != nil {
		return err
	}

	if !authz.CanMutate(actor.ID, actor.Role, post.AuthorID) {
		return apperrors.ErrForbidden
	}

	if err := s.postRepo.DeleteWithComments(ctx, id); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}

// ToggleLike flips the acting user's membership in the post's like set.
// Not gated by the ownership rule: liking expresses the caller's own
// opinion. Two toggles in a row restore the original set.
func (s *postService) ToggleLike(ctx context.Context, actor *model.User, id uuid.UUID) (*model.Post, error) {
	post, err := s.loadPost(ctx, id)
	if err != nil {
		return nil, err
	}

	liked, err := s.postRepo.HasLike(ctx, id, actor.ID)
	if err != nil {
		return nil, err
	}
	if liked {
		err = s.postRepo.RemoveLike(ctx, id, actor.ID)
	} else {
		err = s.postRepo.AddLike(ctx, id, actor.ID)
	}
	if err != nil {
		return nil, fmt.Errorf("toggle like: %w", err)
	}

	if err := s.attachLikers(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *postService) loadPost(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, err
	}
	return post, nil
}

func (s *postService) attachLikers(ctx context.Context, post *model.Post) error {
	likers, err := s.postRepo.ListLikers(ctx, post.ID)
	if err != nil {
		return err
	}
	post.Likes = make([]uuid.UUID, 0, len(likers))
	post.Likers = make([]model.UserRef, 0, len(likers))
	for i := range likers {
		post.Likes = append(post.Likes, likers[i].ID)
		post.Likers = append(post.Likers, likers[i].Ref())
	}
	return nil
}
