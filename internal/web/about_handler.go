package web

import (
	"net/http"

	"microblog/internal/render"
)

func (h *Handlers) aboutAuthor(w http.ResponseWriter, r *http.Request) error {
	h.render.HTML(w, http.StatusOK, "about_author.html", render.Context{"User": currentUser(r)})
	return nil
}

func (h *Handlers) aboutTech(w http.ResponseWriter, r *http.Request) error {
	h.render.HTML(w, http.StatusOK, "about_tech.html", render.Context{"User": currentUser(r)})
	return nil
}
