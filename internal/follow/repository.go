package follow

import "gorm.io/gorm"

type Repository interface {
	Create(f *Follow) error
	Delete(userID, authorID uint) error
	Exists(userID, authorID uint) (bool, error)
	CountFollowers(authorID uint) (int64, error)
	CountFollowing(userID uint) (int64, error)
	AuthorIDs(userID uint) ([]uint, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(f *Follow) error {
	return r.db.Create(f).Error
}

func (r *repository) Delete(userID, authorID uint) error {
	return r.db.Where("user_id = ? AND author_id = ?", userID, authorID).
		Delete(&Follow{}).Error
}

// Exists is an explicit boolean query, never an attribute check on a
// result set.
func (r *repository) Exists(userID, authorID uint) (bool, error) {
	var n int64
	err := r.db.Model(&Follow{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&n).Error
	return n > 0, err
}

func (r *repository) CountFollowers(authorID uint) (int64, error) {
	var n int64
	err := r.db.Model(&Follow{}).Where("author_id = ?", authorID).Count(&n).Error
	return n, err
}

func (r *repository) CountFollowing(userID uint) (int64, error) {
	var n int64
	err := r.db.Model(&Follow{}).Where("user_id = ?", userID).Count(&n).Error
	return n, err
}

// AuthorIDs lists the authors a user subscribes to, for the follow feed.
func (r *repository) AuthorIDs(userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&Follow{}).
		Where("user_id = ?", userID).
		Pluck("author_id", &ids).Error
	return ids, err
}
