package migrate

import (
	"gorm.io/gorm"

	"microblog/internal/comment"
	"microblog/internal/follow"
	"microblog/internal/group"
	"microblog/internal/post"
	"microblog/internal/user"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		&user.User{},
		&group.Group{},
		&post.Post{},
		&comment.Comment{},
		&follow.Follow{},
	)
}
