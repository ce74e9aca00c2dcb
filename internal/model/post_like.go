package model

import (
	"time"

	"github.com/google/uuid"
)

// PostLike records one user liking one post. The auto-increment id
// preserves insertion order; the composite unique index keeps the like
// set free of duplicates.
type PostLike struct {
	ID        uint      `gorm:"primaryKey"`
	PostID    uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:idx_post_user"`
	UserID    uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:idx_post_user"`
	CreatedAt time.Time
}
