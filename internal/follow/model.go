package follow

import (
	"time"

	"microblog/internal/user"
)

// Follow is a directed subscription edge: UserID follows AuthorID.
// The unique pair index resolves concurrent duplicate follows at the
// store, not in application code.
type Follow struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"index;uniqueIndex:idx_user_author;not null"`
	User      user.User `gorm:"foreignKey:UserID"`
	AuthorID  uint      `gorm:"index;uniqueIndex:idx_user_author;not null"`
	Author    user.User `gorm:"foreignKey:AuthorID"`
	CreatedAt time.Time
}
