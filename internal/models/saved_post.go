package models

import (
	"time"

	"github.com/google/uuid"
)

// SavedPost is a user's bookmark of a post. Same uniqueness rule as Like,
// tracked independently of it.
type SavedPost struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID    uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_saved_posts_user_post" json:"user_id"`
	PostID    uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_saved_posts_user_post;index" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (SavedPost) TableName() string {
	return "saved_posts"
}
