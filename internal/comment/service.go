package comment

import "time"

type Service interface {
	Add(authorID, postID uint, text string) (*Comment, error)
	ListByPost(postID uint) ([]Comment, error)
}

type service struct {
	repo Repository
}

func NewService(r Repository) Service {
	return &service{repo: r}
}

func (s *service) Add(authorID, postID uint, text string) (*Comment, error) {
	c := &Comment{
		PostID:   postID,
		AuthorID: authorID,
		Text:     text,
		Created:  time.Now(),
	}
	if err := s.repo.Create(c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) ListByPost(postID uint) ([]Comment, error) {
	return s.repo.ListByPost(postID)
}
