package post

import "gorm.io/gorm"

type Repository interface {
	Create(p *Post) error
	Update(p *Post) error
	GetByID(id uint) (*Post, error)
	GetByAuthorAndID(username string, id uint) (*Post, error)
	ListPage(offset, limit int) ([]Post, error)
	CountAll() (int64, error)
	ListByGroupPage(groupID uint, offset, limit int) ([]Post, error)
	CountByGroup(groupID uint) (int64, error)
	ListByAuthorPage(authorID uint, offset, limit int) ([]Post, error)
	CountByAuthor(authorID uint) (int64, error)
	ListByAuthorsPage(authorIDs []uint, offset, limit int) ([]Post, error)
	CountByAuthors(authorIDs []uint) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

const feedOrder = "pub_date DESC, id DESC"

func (r *repository) feedQuery() *gorm.DB {
	return r.db.Preload("Author").Preload("Group").Order(feedOrder)
}

func (r *repository) Create(p *Post) error {
	return r.db.Create(p).Error
}

func (r *repository) Update(p *Post) error {
	return r.db.Save(p).Error
}

func (r *repository) GetByID(id uint) (*Post, error) {
	var p Post
	if err := r.db.Preload("Author").Preload("Group").First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// GetByAuthorAndID resolves a post addressed by (username, id), the way
// post pages are addressed in URLs.
func (r *repository) GetByAuthorAndID(username string, id uint) (*Post, error) {
	var p Post
	err := r.db.Preload("Author").Preload("Group").
		Joins("JOIN users ON users.id = posts.author_id").
		Where("posts.id = ? AND users.username = ?", id, username).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) ListPage(offset, limit int) ([]Post, error) {
	var posts []Post
	err := r.feedQuery().Offset(offset).Limit(limit).Find(&posts).Error
	return posts, err
}

func (r *repository) CountAll() (int64, error) {
	var n int64
	err := r.db.Model(&Post{}).Count(&n).Error
	return n, err
}

func (r *repository) ListByGroupPage(groupID uint, offset, limit int) ([]Post, error) {
	var posts []Post
	err := r.feedQuery().Where("group_id = ?", groupID).
		Offset(offset).Limit(limit).Find(&posts).Error
	return posts, err
}

func (r *repository) CountByGroup(groupID uint) (int64, error) {
	var n int64
	err := r.db.Model(&Post{}).Where("group_id = ?", groupID).Count(&n).Error
	return n, err
}

func (r *repository) ListByAuthorPage(authorID uint, offset, limit int) ([]Post, error) {
	var posts []Post
	err := r.feedQuery().Where("author_id = ?", authorID).
		Offset(offset).Limit(limit).Find(&posts).Error
	return posts, err
}

func (r *repository) CountByAuthor(authorID uint) (int64, error) {
	var n int64
	err := r.db.Model(&Post{}).Where("author_id = ?", authorID).Count(&n).Error
	return n, err
}

func (r *repository) ListByAuthorsPage(authorIDs []uint, offset, limit int) ([]Post, error) {
	if len(authorIDs) == 0 {
		return nil, nil
	}
	var posts []Post
	err := r.feedQuery().Where("author_id IN ?", authorIDs).
		Offset(offset).Limit(limit).Find(&posts).Error
	return posts, err
}

func (r *repository) CountByAuthors(authorIDs []uint) (int64, error) {
	if len(authorIDs) == 0 {
		return 0, nil
	}
	var n int64
	err := r.db.Model(&Post{}).Where("author_id IN ?", authorIDs).Count(&n).Error
	return n, err
}
