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

// MockPostRepository is a mock implementation of PostRepository.
type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(ctx context.Context, post *model.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *MockPostRepository) List(ctx context.Context) ([]model.Post, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Post), args.Error(1)
}

func (m *MockPostRepository) Update(ctx context.Context, post *model.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) DeleteWithComments(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPostRepository) ListLikerIDs(ctx context.Context, postID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockPostRepository) ListLikers(ctx context.Context, postID uuid.UUID) ([]model.User, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockPostRepository) HasLike(ctx context.Context, postID, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, postID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPostRepository) AddLike(ctx context.Context, postID, userID uuid.UUID) error {
	args := m.Called(ctx, postID, userID)
	return args.Error(0)
}

func (m *MockPostRepository) RemoveLike(ctx context.Context, postID, userID uuid.UUID) error {
	args := m.Called(ctx, postID, userID)
	return args.Error(0)
}

func memberUser(name string) *model.User {
	return &model.User{ID: uuid.New(), Name: name, Email: name + "@example.com", Role: model.RoleMember}
}

func TestPostService_CreatePost(t *testing.T) {
	actor := memberUser("alice")
	repo := new(MockPostRepository)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*model.Post")).Return(nil)

	svc := NewPostService(repo)
	post, err := svc.CreatePost(context.Background(), actor, "  Hi  ", "  World  ")

	assert.NoError(t, err)
	assert.Equal(t, "Hi", post.Title)
	assert.Equal(t, "World", post.Content)
	assert.Equal(t, actor.ID, post.AuthorID)
	assert.NotNil(t, post.Author)
	assert.Empty(t, post.Likes)
	repo.AssertExpectations(t)
}

func TestPostService_CreatePost_WhitespaceOnly(t *testing.T) {
	actor := memberUser("alice")

	tests := []struct {
		name    string
		title   string
		content string
		field   string
	}{
		{name: "whitespace-only title", title: "   ", content: "World", field: "title"},
		{name: "whitespace-only content", title: "Hi", content: " \t ", field: "content"},
		{name: "both whitespace-only reports title first", title: " ", content: " ", field: "title"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockPostRepository)

			svc := NewPostService(repo)
			post, err := svc.CreatePost(context.Background(), actor, tt.title, tt.content)

			var httpErr *apperrors.HTTPError
			if assert.ErrorAs(t, err, &httpErr) {
				assert.Equal(t, http.StatusBadRequest, httpErr.StatusCode)
				assert.Equal(t, "VALIDATION_ERROR", httpErr.Code)
				if assert.Len(t, httpErr.Fields, 1) {
					assert.Equal(t, tt.field, httpErr.Fields[0].Field)
				}
			}
			assert.Nil(t, post)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestPostService_UpdatePost(t *testing.T) {
	owner := memberUser("owner")
	admin := &model.User{ID: uuid.New(), Name: "admin", Email: "admin@example.com", Role: model.RoleAdmin}
	stranger := memberUser("stranger")
	postID := uuid.New()

	storedPost := func() *model.Post {
		return &model.Post{ID: postID, Title: "Original title", Content: "Original content", AuthorID: owner.ID}
	}

	tests := []struct {
		name            string
		actor           *model.User
		title           string
		content         string
		expectedError   error
		expectedTitle   string
		expectedContent string
	}{
		{
			name:            "owner updates content only, title unchanged",
			actor:           owner,
			content:         "New content",
			expectedTitle:   "Original title",
			expectedContent: "New content",
		},
		{
			name:            "owner updates title only, content unchanged",
			actor:           owner,
			title:           "New title",
			expectedTitle:   "New title",
			expectedContent: "Original content",
		},
		{
			name:            "empty update leaves both unchanged",
			actor:           owner,
			expectedTitle:   "Original title",
			expectedContent: "Original content",
		},
		{
			name:            "admin may update another user's post",
			actor:           admin,
			title:           "Admin title",
			expectedTitle:   "Admin title",
			expectedContent: "Original content",
		},
		{
			name:          "non-owner member is forbidden",
			actor:         stranger,
			title:         "Hijacked",
			expectedError: apperrors.ErrForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockPostRepository)
			repo.On("FindByID", mock.Anything, postID).Return(storedPost(), nil)
			if tt.expectedError == nil {
				repo.On("Update", mock.Anything, mock.AnythingOfType("*model.Post")).Return(nil)
				repo.On("ListLikerIDs", mock.Anything, postID).Return([]uuid.UUID{}, nil)
			}

			svc := NewPostService(repo)
			post, err := svc.UpdatePost(context.Background(), tt.actor, postID, tt.title, tt.content)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedTitle, post.Title)
				assert.Equal(t, tt.expectedContent, post.Content)
				assert.Equal(t, owner.ID, post.AuthorID)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestPostService_UpdatePost_NotFound(t *testing.T) {
	repo := new(MockPostRepository)
	postID := uuid.New()
	repo.On("FindByID", mock.Anything, postID).Return(nil, gorm.ErrRecordNotFound)

	svc := NewPostService(repo)
	_, err := svc.UpdatePost(context.Background(), memberUser("alice"), postID, "t", "c")

	assert.ErrorIs(t, err, apperrors.ErrPostNotFound)
}

func TestPostService_DeletePost(t *testing.T) {
	owner := memberUser("owner")
	admin := &model.User{ID: uuid.New(), Name: "admin", Email: "admin@example.com", Role: model.RoleAdmin}
	stranger := memberUser("stranger")
	postID := uuid.New()
	stored := &model.Post{ID: postID, Title: "t", Content: "c", AuthorID: owner.ID}

	tests := []struct {
		name          string
		actor         *model.User
		expectedError error
	}{
		{name: "owner deletes", actor: owner},
		{name: "admin deletes another user's post", actor: admin},
		{name: "non-owner member is forbidden", actor: stranger, expectedError: apperrors.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockPostRepository)
			repo.On("FindByID", mock.Anything, postID).Return(stored, nil)
			if tt.expectedError == nil {
				repo.On("DeleteWithComments", mock.Anything, postID).Return(nil)
			}

			svc := NewPostService(repo)
			err := svc.DeletePost(context.Background(), tt.actor, postID)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				repo.AssertNotCalled(t, "DeleteWithComments", mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestPostService_ToggleLike_Pair(t *testing.T) {
	author := memberUser("author")
	liker := memberUser("liker")
	postID := uuid.New()
	stored := &model.Post{ID: postID, Title: "t", Content: "c", AuthorID: author.ID}

	repo := new(MockPostRepository)
	repo.On("FindByID", mock.Anything, postID).Return(stored, nil)

	// First toggle adds the like.
	repo.On("HasLike", mock.Anything, postID, liker.ID).Return(false, nil).Once()
	repo.On("AddLike", mock.Anything, postID, liker.ID).Return(nil).Once()
	repo.On("ListLikers", mock.Anything, postID).Return([]model.User{{ID: liker.ID, Name: liker.Name, Email: liker.Email}}, nil).Once()

	// Second toggle removes it again, returning the set to its original
	// empty state.
	repo.On("HasLike", mock.Anything, postID, liker.ID).Return(true, nil).Once()
	repo.On("RemoveLike", mock.Anything, postID, liker.ID).Return(nil).Once()
	repo.On("ListLikers", mock.Anything, postID).Return([]model.User{}, nil).Once()

	svc := NewPostService(repo)

	post, err := svc.ToggleLike(context.Background(), liker, postID)
	assert.NoError(t, err)
	assert.Equal(t, []uuid.UUID{liker.ID}, post.Likes)
	assert.Len(t, post.Likers, 1)
	assert.Equal(t, liker.Name, post.Likers[0].Name)

	post, err = svc.ToggleLike(context.Background(), liker, postID)
	assert.NoError(t, err)
	assert.Empty(t, post.Likes)
	assert.Empty(t, post.Likers)

	repo.AssertExpectations(t)
}

func TestPostService_ToggleLike_ByAuthorAllowed(t *testing.T) {
	// Liking is not gated by the ownership rule; the author liking their
	// own post is fine, and so is any other authenticated user.
	author := memberUser("author")
	postID := uuid.New()
	stored := &model.Post{ID: postID, Title: "t", Content: "c", AuthorID: author.ID}

	repo := new(MockPostRepository)
	repo.On("FindByID", mock.Anything, postID).Return(stored, nil)
	repo.On("HasLike", mock.Anything, postID, author.ID).Return(false, nil)
	repo.On("AddLike", mock.Anything, postID, author.ID).Return(nil)
	repo.On("ListLikers", mock.Anything, postID).Return([]model.User{{ID: author.ID, Name: author.Name, Email: author.Email}}, nil)

	svc := NewPostService(repo)
	post, err := svc.ToggleLike(context.Background(), author, postID)

	assert.NoError(t, err)
	assert.Equal(t, []uuid.UUID{author.ID}, post.Likes)
	repo.AssertExpectations(t)
}

func TestPostService_GetPost_NotFound(t *testing.T) {
	repo := new(MockPostRepository)
	postID := uuid.New()
	repo.On("FindByID", mock.Anything, postID).Return(nil, gorm.ErrRecordNotFound)

	svc := NewPostService(repo)
	_, err := svc.GetPost(context.Background(), postID)

	assert.ErrorIs(t, err, apperrors.ErrPostNotFound)
}
