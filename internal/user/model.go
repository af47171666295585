package user

import "time"

type User struct {
	ID       uint   `gorm:"primaryKey"`
	Username string `gorm:"uniqueIndex;size:150;not null"`
	Email    string `gorm:"uniqueIndex;size:254;not null"`
	PassHash string `gorm:"size:128;not null"`
	Joined   time.Time
}
