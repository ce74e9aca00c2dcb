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

// CommentService exposes comment operations scoped to a post.
type CommentService interface {
	ListByPost(ctx context.Context, postID uuid.UUID) ([]model.Comment, error)
	CreateComment(ctx context.Context, actor *model.User, postID uuid.UUID, content string) (*model.Comment, error)
	UpdateComment(ctx context.Context, actor *model.User, id uuid.UUID, content string) (*model.Comment, error)
	DeleteComment(ctx context.Context, actor *model.User, id uuid.UUID) error
}

type commentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
}

// NewCommentService builds a CommentService.
func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository) CommentService {
	return &commentService{commentRepo: commentRepo, postRepo: postRepo}
}

// ListByPost returns a post's comments newest first. Listing against an
// unknown post id yields an empty list, not an error.
func (s *commentService) ListByPost(ctx context.Context, postID uuid.UUID) ([]model.Comment, error) {
	return s.commentRepo.ListByPost(ctx, postID)
}

// CreateComment creates a comment authored by the acting user. The
// content must be non-empty after trimming and the referenced post must
// exist; nothing is persisted otherwise.
func (s *commentService) CreateComment(ctx context.Context, actor *model.User, postID uuid.UUID, content string) (*model.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.NewFieldError("content", "content is required")
	}

	if _, err := s.postRepo.FindByID(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, err
	}

	comment := &model.Comment{
		Content:  content,
		AuthorID: actor.ID,
		PostID:   postID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}

	comment.Author = &model.User{ID: actor.ID, Name: actor.Name, Email: actor.Email}
	return comment, nil
}

// UpdateComment applies a partial update of the content. Only the owner
// or an admin may update.
func (s *commentService) UpdateComment(ctx context.Context, actor *model.User, id uuid.UUID, content string) (*model.Comment, error) {
	comment, err := s.loadComment(ctx, id)
	if err != nil {
		return nil, err
	}

	if !authz.CanMutate(actor.ID, actor.Role, comment.AuthorID) {
		return nil, apperrors.ErrForbidden
	}

	if c := strings.TrimSpace(content); c != "" {
		comment.Content = c
	}

	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, fmt.Errorf("update comment: %w", err)
	}
	return comment, nil
}

// DeleteComment removes a comment. Only the owner or an admin may delete.
func (s *commentService) DeleteComment(ctx context.Context, actor *model.User, id uuid.UUID) error {
	comment, err := s.loadComment(ctx, id)
	if err != nil {
		return err
	}

	if !authz.CanMutate(actor.ID, actor.Role, comment.AuthorID) {
		return apperrors.ErrForbidden
	}

	if err := s.commentRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	return nil
}

func (s *commentService) loadComment(ctx context.Context, id uuid.UUID) (*model.Comment, error) {
	comment, err := s.commentRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCommentNotFound
		}
		return nil, err
	}
	return comment, nil
}
