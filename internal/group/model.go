package group

type Group struct {
	ID          uint   `gorm:"primaryKey"`
	Title       string `gorm:"size:200;not null"`
	Slug        string `gorm:"uniqueIndex;size:100;not null"`
	Description string
}
