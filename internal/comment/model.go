package comment

import (
	"time"

	"microblog/internal/post"
	"microblog/internal/user"
)

type Comment struct {
	ID       uint      `gorm:"primaryKey"`
	PostID   uint      `gorm:"index;not null"`
	Post     post.Post `gorm:"constraint:OnDelete:CASCADE"`
	AuthorID uint      `gorm:"index;not null"`
	Author   user.User
	Text     string `gorm:"not null"`
	Created  time.Time
}
