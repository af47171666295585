package post

import (
	"time"

	"microblog/internal/group"
	"microblog/internal/user"
)

type Post struct {
	ID       uint         `gorm:"primaryKey" json:"id"`
	Text     string       `gorm:"not null" json:"text"`
	AuthorID uint         `gorm:"index;not null" json:"author_id"`
	Author   user.User    `json:"-"`
	GroupID  *uint        `gorm:"index" json:"group_id,omitempty"`
	Group    *group.Group `json:"-"`
	Image    string       `gorm:"size:512" json:"image,omitempty"`
	PubDate  time.Time    `gorm:"index" json:"pub_date"`
}
