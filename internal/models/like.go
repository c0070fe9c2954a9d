package models

import (
	"time"

	"github.com/google/uuid"
)

// Like represents a user's like on a post. The (user_id, post_id) pair is
// unique; that constraint is the only concurrency guard for toggling.
type Like struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID    uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_likes_user_post" json:"user_id"`
	PostID    uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_likes_user_post;index" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (Like) TableName() string {
	return "likes"
}
