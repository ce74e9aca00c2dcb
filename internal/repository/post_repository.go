package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"blogspace/internal/model"
)

// PostRepository defines post persistence operations, including the
// like set stored as post_likes rows.
type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error)
	List(ctx context.Context) ([]model.Post, error)
	Update(ctx context.Context, post *model.Post) error
	// DeleteWithComments removes the post's comments, its likes and the
	// post itself in a single transaction.
	DeleteWithComments(ctx context.Context, id uuid.UUID) error

	ListLikerIDs(ctx context.Context, postID uuid.UUID) ([]uuid.UUID, error)
	ListLikers(ctx context.Context, postID uuid.UUID) ([]model.User, error)
	HasLike(ctx context.Context, postID, userID uuid.UUID) (bool, error)
	AddLike(ctx context.Context, postID, userID uuid.UUID) error
	RemoveLike(ctx context.Context, postID, userID uuid.UUID) error
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// authorColumns mirrors populate('author', 'name email'): the join never
// selects the credential hash or role.
func authorColumns(db *gorm.DB) *gorm.DB {
	return db.Select("id", "name", "email")
}

func (r *postRepository) Create(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	var post model.Post
	if err := r.db.WithContext(ctx).Preload("Author", authorColumns).
		Where("id = ?", id).First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// List returns all posts newest first with the author joined.
func (r *postRepository) List(ctx context.Context) ([]model.Post, error) {
	var posts []model.Post
	if err := r.db.WithContext(ctx).Preload("Author", authorColumns).
		Order("created_at DESC").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) Update(ctx context.Context, post *model.Post) error {
	// Omit the preloaded author so Save never writes the users table.
	return r.db.WithContext(ctx).Omit("Author").Save(post).Error
}

func (r *postRepository) DeleteWithComments(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&model.PostLike{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&model.Post{}).Error
	})
}

// ListLikerIDs returns the ids of users who liked the post in insertion order.
func (r *postRepository) ListLikerIDs(ctx context.Context, postID uuid.UUID) ([]uuid.UUID, error) {
	// Non-nil so the likes field always serializes as an array.
	ids := make([]uuid.UUID, 0)
	if err := r.db.WithContext(ctx).Model(&model.PostLike{}).
		Where("post_id = ?", postID).Order("id").
		Pluck("user_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// ListLikers returns the liking users (public columns only) in insertion order.
func (r *postRepository) ListLikers(ctx context.Context, postID uuid.UUID) ([]model.User, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).Model(&model.User{}).
		Select("users.id", "users.name", "users.email").
		Joins("JOIN post_likes ON post_likes.user_id = users.id").
		Where("post_likes.post_id = ?", postID).
		Order("post_likes.id").
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *postRepository) HasLike(ctx context.Context, postID, userID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.PostLike{}).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *postRepository) AddLike(ctx context.Context, postID, userID uuid.UUID) error {
	like := &model.PostLike{PostID: postID, UserID: userID}
	return r.db.WithContext(ctx).Create(like).Error
}

func (r *postRepository) RemoveLike(ctx context.Context, postID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Delete(&model.PostLike{}).Error
}
