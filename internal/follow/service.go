package follow

import (
	"errors"

	"gorm.io/gorm"

	"microblog/internal/user"
)

type Service interface {
	// Follow subscribes a user to an author. Following yourself or an
	// author you already follow is a no-op, not an error.
	Follow(userID uint, authorUsername string) error
	// Unfollow is idempotent: removing a missing subscription is a no-op.
	Unfollow(userID uint, authorUsername string) error
	IsFollowing(userID uint, authorUsername string) (bool, error)
	Stats(authorID uint) (followers, following int64, err error)
	AuthorIDs(userID uint) ([]uint, error)
}

type service struct {
	repo  Repository
	users user.Repository
}

func NewService(r Repository, users user.Repository) Service {
	return &service{repo: r, users: users}
}

func (s *service) Follow(userID uint, authorUsername string) error {
	author, err := s.users.GetByUsername(authorUsername)
	if err != nil {
		return err
	}
	if author.ID == userID {
		return nil
	}
	exists, err := s.repo.Exists(userID, author.ID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	err = s.repo.Create(&Follow{UserID: userID, AuthorID: author.ID})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// A concurrent request won the race; same outcome.
		return nil
	}
	return err
}

func (s *service) Unfollow(userID uint, authorUsername string) error {
	author, err := s.users.GetByUsername(authorUsername)
	if err != nil {
		return err
	}
	return s.repo.Delete(userID, author.ID)
}

func (s *service) IsFollowing(userID uint, authorUsername string) (bool, error) {
	if userID == 0 {
		return false, nil
	}
	author, err := s.users.GetByUsername(authorUsername)
	if err != nil {
		return false, err
	}
	return s.repo.Exists(userID, author.ID)
}

func (s *service) Stats(authorID uint) (int64, int64, error) {
	followers, err := s.repo.CountFollowers(authorID)
	if err != nil {
		return 0, 0, err
	}
	following, err := s.repo.CountFollowing(authorID)
	if err != nil {
		return 0, 0, err
	}
	return followers, following, nil
}

func (s *service) AuthorIDs(userID uint) ([]uint, error) {
	return s.repo.AuthorIDs(userID)
}
