package post

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"microblog/internal/group"
	"microblog/internal/media"
	"microblog/internal/shared/cache"
)

var ErrUnknownGroup = errors.New("unknown group")

// EventPublisher receives a post-created event for downstream consumers.
type EventPublisher interface {
	Publish(ctx context.Context, key string, message []byte) error
}

// Event is the message published whenever a post is created.
type Event struct {
	ID       uint      `json:"id"`
	AuthorID uint      `json:"author_id"`
	GroupID  *uint     `json:"group_id,omitempty"`
	Text     string    `json:"text"`
	PubDate  time.Time `json:"pub_date"`
}

type Service interface {
	Create(ctx context.Context, authorID uint, form Form, img *Upload) (*Post, error)
	Update(ctx context.Context, p *Post, form Form, img *Upload) error
}

type service struct {
	repo   Repository
	groups group.Repository
	images media.Store
	cache  cache.Cache
	events EventPublisher
}

// NewService wires post mutations to image storage, the feed cache and
// the event stream. events may be nil when no broker is configured.
func NewService(repo Repository, groups group.Repository, images media.Store, c cache.Cache, events EventPublisher) Service {
	return &service{repo: repo, groups: groups, images: images, cache: c, events: events}
}

func (s *service) Create(ctx context.Context, authorID uint, form Form, img *Upload) (*Post, error) {
	if err := s.checkGroup(form.GroupID); err != nil {
		return nil, err
	}
	p := &Post{
		Text:     form.Text,
		AuthorID: authorID,
		GroupID:  form.GroupID,
		PubDate:  time.Now(),
	}
	if img != nil {
		key, err := s.storeImage(ctx, img)
		if err != nil {
			return nil, err
		}
		p.Image = key
	}
	if err := s.repo.Create(p); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, "index")
	s.publish(ctx, p)
	return p, nil
}

func (s *service) Update(ctx context.Context, p *Post, form Form, img *Upload) error {
	if err := s.checkGroup(form.GroupID); err != nil {
		return err
	}
	p.Text = form.Text
	p.GroupID = form.GroupID
	if img != nil {
		key, err := s.storeImage(ctx, img)
		if err != nil {
			return err
		}
		p.Image = key
	}
	if err := s.repo.Update(p); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, "index")
	return nil
}

func (s *service) checkGroup(groupID *uint) error {
	if groupID == nil {
		return nil
	}
	if _, err := s.groups.GetByID(*groupID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUnknownGroup
		}
		return err
	}
	return nil
}

func (s *service) storeImage(ctx context.Context, img *Upload) (string, error) {
	key := uuid.NewString() + filepath.Ext(img.Filename)
	if err := s.images.Put(ctx, key, img.ContentType, img.Data); err != nil {
		return "", err
	}
	return key, nil
}

func (s *service) publish(ctx context.Context, p *Post) {
	if s.events == nil {
		return
	}
	b, _ := json.Marshal(Event{
		ID:       p.ID,
		AuthorID: p.AuthorID,
		GroupID:  p.GroupID,
		Text:     p.Text,
		PubDate:  p.PubDate,
	})
	if err := s.events.Publish(ctx, uuid.NewString(), b); err != nil {
		log.Printf("post event publish error: %v", err)
	}
}
