package web

import (
	"errors"
	"io"
	"net/http"

	"microblog/internal/media"
)

// serveImage streams a stored post image.
func (h *Handlers) serveImage(w http.ResponseWriter, r *http.Request) error {
	obj, contentType, err := h.images.Get(r.Context(), r.PathValue("key"))
	if err != nil {
		if errors.Is(err, media.ErrNotFound) {
			h.notFound(w, r)
			return nil
		}
		return err
	}
	defer obj.Close()

	w.Header().Set("Content-Type", contentType)
	_, err = io.Copy(w, obj)
	return err
}
