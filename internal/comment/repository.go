package comment

import "gorm.io/gorm"

type Repository interface {
	Create(c *Comment) error
	ListByPost(postID uint) ([]Comment, error)
	CountByPost(postID uint) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(c *Comment) error {
	return r.db.Create(c).Error
}

func (r *repository) ListByPost(postID uint) ([]Comment, error) {
	var comments []Comment
	err := r.db.Preload("Author").
		Where("post_id = ?", postID).
		Order("created ASC, id ASC").
		Find(&comments).Error
	return comments, err
}

func (r *repository) CountByPost(postID uint) (int64, error) {
	var n int64
	err := r.db.Model(&Comment{}).Where("post_id = ?", postID).Count(&n).Error
	return n, err
}
