package web

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"microblog/internal/shared/httpx"
)

// Router builds the full route table. Protected routes redirect
// anonymous requesters to the login page with a next parameter.
func (h *Handlers) Router() http.Handler {
	mux := http.NewServeMux()

	mux.Handle("GET /metrics", promhttp.Handler())

	mux.Handle("GET /{$}", httpx.Wrap(h.index))
	mux.Handle("GET /group/{slug}/{$}", httpx.Wrap(h.groupPosts))
	mux.Handle("GET /about/author/{$}", httpx.Wrap(h.aboutAuthor))
	mux.Handle("GET /about/tech/{$}", httpx.Wrap(h.aboutTech))
	mux.Handle("GET /media/{key}", httpx.Wrap(h.serveImage))

	mux.Handle("GET /auth/signup/{$}", httpx.Wrap(h.signupPage))
	mux.Handle("POST /auth/signup/{$}", httpx.Wrap(h.signup))
	mux.Handle("GET /auth/login/{$}", httpx.Wrap(h.loginPage))
	mux.Handle("POST /auth/login/{$}", httpx.Wrap(h.login))
	mux.Handle("GET /auth/logout/{$}", httpx.Wrap(h.logout))

	mux.Handle("GET /{username}/{$}", httpx.Wrap(h.profile))
	mux.Handle("GET /{username}/{postID}/{$}", httpx.Wrap(h.postView))

	protect := func(pattern string, fn httpx.HandlerFunc) {
		mux.Handle(pattern, httpx.RequireUser(httpx.Wrap(fn)))
	}

	protect("GET /new/{$}", h.newPostForm)
	protect("POST /new/{$}", h.createPost)
	protect("GET /follow/{$}", h.followIndex)
	protect("POST /{username}/{postID}/{$}", h.postComment)
	protect("GET /{username}/{postID}/edit/{$}", h.editPostForm)
	protect("POST /{username}/{postID}/edit/{$}", h.updatePost)
	protect("POST /{username}/{postID}/comment", h.postComment)
	protect("GET /{username}/follow/{$}", h.followAuthor)
	protect("GET /{username}/unfollow/{$}", h.unfollowAuthor)

	return withMetrics(mux, httpx.WithUser(mux))
}
