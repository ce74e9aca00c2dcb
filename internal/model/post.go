package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Post is an authored article. The author is fixed at creation time and
// only the author or an admin may update or delete it.
type Post struct {
	ID       uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Title    string    `json:"title" gorm:"size:255;not null"`
	Content  string    `json:"content" gorm:"type:text;not null"`
	AuthorID uuid.UUID `json:"author_id" gorm:"type:char(36);not null;index"`
	Author   *User     `json:"author,omitempty" gorm:"foreignKey:AuthorID"`

	// Likes holds the ids of users who liked the post, oldest first.
	// Likers carries the joined user projections on detail and like
	// responses. Both are filled from post_likes rows, not columns.
	Likes  []uuid.UUID `json:"likes" gorm:"-"`
	Likers []UserRef   `json:"likers,omitempty" gorm:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
