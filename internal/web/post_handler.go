package web

import (
	"errors"
	"net/http"
	"strconv"

	"gorm.io/gorm"

	"microblog/internal/comment"
	"microblog/internal/post"
	"microblog/internal/render"
	"microblog/internal/shared/httpx"
	"microblog/internal/shared/validate"
)

// loadPost resolves the post addressed by the {username}/{post_id} URL
// pair. ok=false means the caller should render 404 and stop.
func (h *Handlers) loadPost(w http.ResponseWriter, r *http.Request) (*post.Post, bool, error) {
	id, err := strconv.ParseUint(r.PathValue("postID"), 10, 32)
	if err != nil {
		h.notFound(w, r)
		return nil, false, nil
	}
	p, err := h.posts.GetByAuthorAndID(r.PathValue("username"), uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			h.notFound(w, r)
			return nil, false, nil
		}
		return nil, false, err
	}
	return p, true, nil
}

func postURL(p *post.Post) string {
	return "/" + p.Author.Username + "/" + strconv.FormatUint(uint64(p.ID), 10) + "/"
}

func (h *Handlers) newPostForm(w http.ResponseWriter, r *http.Request) error {
	return h.renderPostForm(w, r, post.Form{}, nil, false, "")
}

func (h *Handlers) createPost(w http.ResponseWriter, r *http.Request) error {
	ident, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	form, img, err := post.ParseForm(r, h.maxImageSize)
	if err != nil {
		return h.renderPostForm(w, r, form, validate.FieldErrors{"Form": err.Error()}, false, "")
	}
	if fieldErrs := form.Validate(); fieldErrs != nil {
		return h.renderPostForm(w, r, form, fieldErrs, false, "")
	}
	if _, err := h.postSvc.Create(r.Context(), ident.ID, form, img); err != nil {
		if errors.Is(err, post.ErrUnknownGroup) {
			return h.renderPostForm(w, r, form, validate.FieldErrors{"Group": "unknown group"}, false, "")
		}
		return err
	}
	http.Redirect(w, r, "/", http.StatusFound)
	return nil
}

func (h *Handlers) editPostForm(w http.ResponseWriter, r *http.Request) error {
	p, ok, err := h.loadPost(w, r)
	if !ok || err != nil {
		return err
	}
	ident, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	// Editing another author's post is denied silently, by policy.
	if p.AuthorID != ident.ID {
		http.Redirect(w, r, postURL(p), http.StatusFound)
		return nil
	}
	form := post.Form{Text: p.Text, GroupID: p.GroupID}
	return h.renderPostForm(w, r, form, nil, true, postURL(p))
}

func (h *Handlers) updatePost(w http.ResponseWriter, r *http.Request) error {
	p, ok, err := h.loadPost(w, r)
	if !ok || err != nil {
		return err
	}
	ident, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	if p.AuthorID != ident.ID {
		http.Redirect(w, r, postURL(p), http.StatusFound)
		return nil
	}
	form, img, err := post.ParseForm(r, h.maxImageSize)
	if err != nil {
		return h.renderPostForm(w, r, form, validate.FieldErrors{"Form": err.Error()}, true, postURL(p))
	}
	if fieldErrs := form.Validate(); fieldErrs != nil {
		return h.renderPostForm(w, r, form, fieldErrs, true, postURL(p))
	}
	if err := h.postSvc.Update(r.Context(), p, form, img); err != nil {
		if errors.Is(err, post.ErrUnknownGroup) {
			return h.renderPostForm(w, r, form, validate.FieldErrors{"Group": "unknown group"}, true, postURL(p))
		}
		return err
	}
	http.Redirect(w, r, postURL(p), http.StatusFound)
	return nil
}

func (h *Handlers) renderPostForm(w http.ResponseWriter, r *http.Request, form post.Form,
	fieldErrs validate.FieldErrors, editing bool, action string) error {
	groups, err := h.groups.ListAll()
	if err != nil {
		return err
	}
	h.render.HTML(w, http.StatusOK, "post_form.html", render.Context{
		"Form":    form,
		"Errors":  fieldErrs,
		"Groups":  groups,
		"Editing": editing,
		"Action":  action,
		"User":    currentUser(r),
	})
	return nil
}

func (h *Handlers) postView(w http.ResponseWriter, r *http.Request) error {
	p, ok, err := h.loadPost(w, r)
	if !ok || err != nil {
		return err
	}
	return h.renderPostPage(w, r, p, comment.Form{}, nil)
}

// postComment handles the inline comment form on the post page.
func (h *Handlers) postComment(w http.ResponseWriter, r *http.Request) error {
	p, ok, err := h.loadPost(w, r)
	if !ok || err != nil {
		return err
	}
	ident, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	form, err := comment.ParseForm(r)
	if err != nil {
		return err
	}
	if fieldErrs := form.Validate(); fieldErrs != nil {
		return h.renderPostPage(w, r, p, form, fieldErrs)
	}
	if _, err := h.comments.Add(ident.ID, p.ID, form.Text); err != nil {
		return err
	}
	http.Redirect(w, r, postURL(p), http.StatusFound)
	return nil
}

func (h *Handlers) renderPostPage(w http.ResponseWriter, r *http.Request, p *post.Post,
	form comment.Form, fieldErrs validate.FieldErrors) error {
	comments, err := h.comments.ListByPost(p.ID)
	if err != nil {
		return err
	}
	viewer := currentUser(r)
	author, stats, err := h.feeds.AuthorCard(r.Context(), p.Author.Username, viewer.ID)
	if err != nil {
		return err
	}
	h.render.HTML(w, http.StatusOK, "post.html", render.Context{
		"Post":     p,
		"Author":   author,
		"Stats":    stats,
		"Comments": comments,
		"Form":     form,
		"Errors":   fieldErrs,
		"User":     viewer,
	})
	return nil
}
