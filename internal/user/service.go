package user

import (
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var ErrWrongCredentials = errors.New("wrong credentials")
var ErrUserExists = errors.New("user exists")

type Service interface {
	Register(username, email, password string) (*User, error)
	Login(username, password string) (*User, error)
	GetByUsername(username string) (*User, error)
}

type service struct {
	repo Repository
}

func NewService(r Repository) Service {
	return &service{repo: r}
}

func (s *service) Register(username, email, password string) (*User, error) {
	if exist, _ := s.repo.GetByUsername(username); exist != nil {
		return nil, ErrUserExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.New("hash fail")
	}
	u := &User{
		Username: username,
		Email:    email,
		PassHash: string(hash),
		Joined:   time.Now(),
	}
	if err := s.repo.Create(u); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserExists
		}
		return nil, err
	}
	return u, nil
}

func (s *service) Login(username, password string) (*User, error) {
	u, err := s.repo.GetByUsername(username)
	if err != nil {
		return nil, ErrWrongCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PassHash), []byte(password)) != nil {
		return nil, ErrWrongCredentials
	}
	return u, nil
}

func (s *service) GetByUsername(username string) (*User, error) {
	return s.repo.GetByUsername(username)
}
