package web

import (
	"errors"
	"net/http"

	"gorm.io/gorm"

	"microblog/internal/shared/httpx"
)

func (h *Handlers) followAuthor(w http.ResponseWriter, r *http.Request) error {
	ident, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	username := r.PathValue("username")
	if err := h.follows.Follow(ident.ID, username); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			h.notFound(w, r)
			return nil
		}
		return err
	}
	httpx.RedirectBack(w, r, "/"+username+"/")
	return nil
}

func (h *Handlers) unfollowAuthor(w http.ResponseWriter, r *http.Request) error {
	ident, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	username := r.PathValue("username")
	if err := h.follows.Unfollow(ident.ID, username); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			h.notFound(w, r)
			return nil
		}
		return err
	}
	httpx.RedirectBack(w, r, "/"+username+"/")
	return nil
}
