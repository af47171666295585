package feed

import (
	"context"
	"encoding/json"
	"log"

	"microblog/internal/follow"
	"microblog/internal/group"
	"microblog/internal/post"
	"microblog/internal/shared/cache"
	"microblog/internal/user"
)

const indexView = "index"

type Service interface {
	Global(ctx context.Context, page int) (*Page, error)
	Group(ctx context.Context, slug string, page int) (*group.Group, *Page, error)
	Profile(ctx context.Context, username string, viewerID uint, page int) (*user.User, *AuthorStats, *Page, error)
	Subscriptions(ctx context.Context, viewerID uint, page int) (*Page, error)
	AuthorCard(ctx context.Context, username string, viewerID uint) (*user.User, *AuthorStats, error)
}

type service struct {
	posts    post.Repository
	groups   group.Repository
	users    user.Repository
	follows  follow.Service
	cache    cache.Cache
	pageSize int
}

func NewService(posts post.Repository, groups group.Repository, users user.Repository,
	follows follow.Service, c cache.Cache, pageSize int) Service {
	return &service{
		posts:    posts,
		groups:   groups,
		users:    users,
		follows:  follows,
		cache:    c,
		pageSize: pageSize,
	}
}

// Global is the only cached feed: every visitor sees the same pages, and
// post creation invalidates them.
func (s *service) Global(ctx context.Context, page int) (*Page, error) {
	page = clampPage(page)

	if b, ok := s.cache.GetPage(ctx, indexView, page); ok {
		var p Page
		if err := json.Unmarshal(b, &p); err == nil {
			return &p, nil
		}
		log.Printf("feed cache decode error, refetching page %d", page)
	}

	total, err := s.posts.CountAll()
	if err != nil {
		return nil, err
	}
	items, err := s.posts.ListPage((page-1)*s.pageSize, s.pageSize)
	if err != nil {
		return nil, err
	}
	p := newPage(items, page, s.pageSize, total)

	if b, err := json.Marshal(p); err == nil {
		s.cache.SetPage(ctx, indexView, page, b)
	}
	return p, nil
}

func (s *service) Group(ctx context.Context, slug string, page int) (*group.Group, *Page, error) {
	g, err := s.groups.GetBySlug(slug)
	if err != nil {
		return nil, nil, err
	}
	page = clampPage(page)
	total, err := s.posts.CountByGroup(g.ID)
	if err != nil {
		return nil, nil, err
	}
	items, err := s.posts.ListByGroupPage(g.ID, (page-1)*s.pageSize, s.pageSize)
	if err != nil {
		return nil, nil, err
	}
	return g, newPage(items, page, s.pageSize, total), nil
}

func (s *service) Profile(ctx context.Context, username string, viewerID uint, page int) (*user.User, *AuthorStats, *Page, error) {
	author, stats, err := s.AuthorCard(ctx, username, viewerID)
	if err != nil {
		return nil, nil, nil, err
	}
	page = clampPage(page)
	items, err := s.posts.ListByAuthorPage(author.ID, (page-1)*s.pageSize, s.pageSize)
	if err != nil {
		return nil, nil, nil, err
	}
	return author, stats, newPage(items, page, s.pageSize, stats.Posts), nil
}

func (s *service) Subscriptions(ctx context.Context, viewerID uint, page int) (*Page, error) {
	authorIDs, err := s.follows.AuthorIDs(viewerID)
	if err != nil {
		return nil, err
	}
	page = clampPage(page)
	total, err := s.posts.CountByAuthors(authorIDs)
	if err != nil {
		return nil, err
	}
	items, err := s.posts.ListByAuthorsPage(authorIDs, (page-1)*s.pageSize, s.pageSize)
	if err != nil {
		return nil, err
	}
	return newPage(items, page, s.pageSize, total), nil
}

// AuthorCard loads the profile header data shared by the profile page
// and the post page.
func (s *service) AuthorCard(ctx context.Context, username string, viewerID uint) (*user.User, *AuthorStats, error) {
	author, err := s.users.GetByUsername(username)
	if err != nil {
		return nil, nil, err
	}
	postCount, err := s.posts.CountByAuthor(author.ID)
	if err != nil {
		return nil, nil, err
	}
	followers, following, err := s.follows.Stats(author.ID)
	if err != nil {
		return nil, nil, err
	}
	stats := &AuthorStats{Posts: postCount, Followers: followers, Following: following}
	if viewerID != 0 {
		stats.ViewerFollows, err = s.follows.IsFollowing(viewerID, username)
		if err != nil {
			return nil, nil, err
		}
	}
	return author, stats, nil
}
