// Package web is the controller layer: it matches routes, runs the
// authorization checks and form handling for each view, and hands the
// result to the renderer.
package web

import (
	"net/http"

	"microblog/internal/comment"
	"microblog/internal/feed"
	"microblog/internal/follow"
	"microblog/internal/group"
	"microblog/internal/media"
	"microblog/internal/post"
	"microblog/internal/render"
	"microblog/internal/shared/httpx"
	"microblog/internal/user"
)

type Handlers struct {
	render       render.Renderer
	feeds        feed.Service
	posts        post.Repository
	postSvc      post.Service
	groups       group.Repository
	comments     comment.Service
	follows      follow.Service
	users        user.Service
	images       media.Store
	maxImageSize int64
}

type Deps struct {
	Render       render.Renderer
	Feeds        feed.Service
	Posts        post.Repository
	PostSvc      post.Service
	Groups       group.Repository
	Comments     comment.Service
	Follows      follow.Service
	Users        user.Service
	Images       media.Store
	MaxImageSize int64
}

func NewHandlers(d Deps) *Handlers {
	return &Handlers{
		render:       d.Render,
		feeds:        d.Feeds,
		posts:        d.Posts,
		postSvc:      d.PostSvc,
		groups:       d.Groups,
		comments:     d.Comments,
		follows:      d.Follows,
		users:        d.Users,
		images:       d.Images,
		maxImageSize: d.MaxImageSize,
	}
}

// currentUser exposes the optional identity to templates; zero value
// means anonymous.
func currentUser(r *http.Request) httpx.Identity {
	id, _ := httpx.UserFromCtx(r)
	return id
}

func (h *Handlers) notFound(w http.ResponseWriter, r *http.Request) {
	render.NotFound(h.render, w, r.URL.Path)
}
