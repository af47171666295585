package web

import (
	"errors"
	"net/http"

	"gorm.io/gorm"

	"microblog/internal/render"
	"microblog/internal/shared/httpx"
)

func (h *Handlers) index(w http.ResponseWriter, r *http.Request) error {
	page, err := h.feeds.Global(r.Context(), httpx.QueryInt(r, "page", 1))
	if err != nil {
		return err
	}
	h.render.HTML(w, http.StatusOK, "index.html", render.Context{
		"Page": page,
		"User": currentUser(r),
	})
	return nil
}

func (h *Handlers) groupPosts(w http.ResponseWriter, r *http.Request) error {
	g, page, err := h.feeds.Group(r.Context(), r.PathValue("slug"), httpx.QueryInt(r, "page", 1))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			h.notFound(w, r)
			return nil
		}
		return err
	}
	h.render.HTML(w, http.StatusOK, "group.html", render.Context{
		"Group": g,
		"Page":  page,
		"User":  currentUser(r),
	})
	return nil
}

func (h *Handlers) profile(w http.ResponseWriter, r *http.Request) error {
	viewer := currentUser(r)
	author, stats, page, err := h.feeds.Profile(
		r.Context(), r.PathValue("username"), viewer.ID, httpx.QueryInt(r, "page", 1))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			h.notFound(w, r)
			return nil
		}
		return err
	}
	h.render.HTML(w, http.StatusOK, "profile.html", render.Context{
		"Author": author,
		"Stats":  stats,
		"Page":   page,
		"User":   viewer,
	})
	return nil
}

func (h *Handlers) followIndex(w http.ResponseWriter, r *http.Request) error {
	viewer, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	page, err := h.feeds.Subscriptions(r.Context(), viewer.ID, httpx.QueryInt(r, "page", 1))
	if err != nil {
		return err
	}
	h.render.HTML(w, http.StatusOK, "follow.html", render.Context{
		"Page": page,
		"User": viewer,
	})
	return nil
}
