package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "blogspace/internal/errors"
	"blogspace/internal/model"
)

// MockCommentRepository is a mock implementation of CommentRepository.
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *model.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Comment), args.Error(1)
}

func (m *MockCommentRepository) ListByPost(ctx context.Context, postID uuid.UUID) ([]model.Comment, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Comment), args.Error(1)
}

func (m *MockCommentRepository) Update(ctx context.Context, comment *model.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestCommentService_CreateComment(t *testing.T) {
	actor := memberUser("alice")
	postID := uuid.New()

	t.Run("creates when the post exists", func(t *testing.T) {
		comments := new(MockCommentRepository)
		posts := new(MockPostRepository)
		posts.On("FindByID", mock.Anything, postID).Return(&model.Post{ID: postID}, nil)
		comments.On("Create", mock.Anything, mock.AnythingOfType("*model.Comment")).Return(nil)

		svc := NewCommentService(comments, posts)
		comment, err := svc.CreateComment(context.Background(), actor, postID, "  Nice post  ")

		assert.NoError(t, err)
		assert.Equal(t, "Nice post", comment.Content)
		assert.Equal(t, actor.ID, comment.AuthorID)
		assert.Equal(t, postID, comment.PostID)
		comments.AssertExpectations(t)
		posts.AssertExpectations(t)
	})

	t.Run("whitespace-only content is rejected before the post lookup", func(t *testing.T) {
		comments := new(MockCommentRepository)
		posts := new(MockPostRepository)

		svc := NewCommentService(comments, posts)
		comment, err := svc.CreateComment(context.Background(), actor, postID, " \t ")

		var httpErr *apperrors.HTTPError
		if assert.ErrorAs(t, err, &httpErr) {
			assert.Equal(t, http.StatusBadRequest, httpErr.StatusCode)
			assert.Equal(t, "VALIDATION_ERROR", httpErr.Code)
			if assert.Len(t, httpErr.Fields, 1) {
				assert.Equal(t, "content", httpErr.Fields[0].Field)
			}
		}
		assert.Nil(t, comment)
		posts.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
		comments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("missing post yields not found and persists nothing", func(t *testing.T) {
		comments := new(MockCommentRepository)
		posts := new(MockPostRepository)
		posts.On("FindByID", mock.Anything, postID).Return(nil, gorm.ErrRecordNotFound)

		svc := NewCommentService(comments, posts)
		comment, err := svc.CreateComment(context.Background(), actor, postID, "orphan")

		assert.ErrorIs(t, err, apperrors.ErrPostNotFound)
		assert.Nil(t, comment)
		comments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestCommentService_UpdateComment(t *testing.T) {
	owner := memberUser("owner")
	admin := &model.User{ID: uuid.New(), Name: "admin", Email: "admin@example.com", Role: model.RoleAdmin}
	stranger := memberUser("stranger")
	commentID := uuid.New()

	storedComment := func() *model.Comment {
		return &model.Comment{ID: commentID, Content: "Original", AuthorID: owner.ID, PostID: uuid.New()}
	}

	tests := []struct {
		name            string
		actor           *model.User
		content         string
		expectedError   error
		expectedContent string
	}{
		{name: "owner updates content", actor: owner, content: "Edited", expectedContent: "Edited"},
		{name: "empty content leaves stored value unchanged", actor: owner, expectedContent: "Original"},
		{name: "admin may update another user's comment", actor: admin, content: "Moderated", expectedContent: "Moderated"},
		{name: "non-owner member is forbidden", actor: stranger, content: "Hijacked", expectedError: apperrors.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			comments := new(MockCommentRepository)
			posts := new(MockPostRepository)
			comments.On("FindByID", mock.Anything, commentID).Return(storedComment(), nil)
			if tt.expectedError == nil {
				comments.On("Update", mock.Anything, mock.AnythingOfType("*model.Comment")).Return(nil)
			}

			svc := NewCommentService(comments, posts)
			comment, err := svc.UpdateComment(context.Background(), tt.actor, commentID, tt.content)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				comments.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedContent, comment.Content)
			}
			comments.AssertExpectations(t)
		})
	}
}

func TestCommentService_DeleteComment(t *testing.T) {
	owner := memberUser("owner")
	stranger := memberUser("stranger")
	commentID := uuid.New()
	stored := &model.Comment{ID: commentID, Content: "c", AuthorID: owner.ID, PostID: uuid.New()}

	t.Run("owner deletes", func(t *testing.T) {
		comments := new(MockCommentRepository)
		posts := new(MockPostRepository)
		comments.On("FindByID", mock.Anything, commentID).Return(stored, nil)
		comments.On("Delete", mock.Anything, commentID).Return(nil)

		svc := NewCommentService(comments, posts)
		assert.NoError(t, svc.DeleteComment(context.Background(), owner, commentID))
		comments.AssertExpectations(t)
	})

	t.Run("non-owner member is forbidden", func(t *testing.T) {
		comments := new(MockCommentRepository)
		posts := new(MockPostRepository)
		comments.On("FindByID", mock.Anything, commentID).Return(stored, nil)

		svc := NewCommentService(comments, posts)
		assert.ErrorIs(t, svc.DeleteComment(context.Background(), stranger, commentID), apperrors.ErrForbidden)
		comments.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("missing comment yields not found", func(t *testing.T) {
		comments := new(MockCommentRepository)
		posts := new(MockPostRepository)
		comments.On("FindByID", mock.Anything, commentID).Return(nil, gorm.ErrRecordNotFound)

		svc := NewCommentService(comments, posts)
		assert.ErrorIs(t, svc.DeleteComment(context.Background(), owner, commentID), apperrors.ErrCommentNotFound)
	})
}
