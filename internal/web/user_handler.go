package web

import (
	"errors"
	"net/http"

	"microblog/internal/render"
	"microblog/internal/shared/httpx"
	"microblog/internal/shared/jwt"
	"microblog/internal/shared/validate"
	"microblog/internal/user"
)

type signupForm struct {
	Username string `validate:"required,max=150"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

func (h *Handlers) signupPage(w http.ResponseWriter, r *http.Request) error {
	h.render.HTML(w, http.StatusOK, "signup.html", render.Context{"Form": signupForm{}, "User": currentUser(r)})
	return nil
}

func (h *Handlers) signup(w http.ResponseWriter, r *http.Request) error {
	if err := r.ParseForm(); err != nil {
		return err
	}
	form := signupForm{
		Username: r.PostFormValue("username"),
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	}
	if fieldErrs := validate.Struct(form); fieldErrs != nil {
		h.render.HTML(w, http.StatusOK, "signup.html", render.Context{
			"Form": form, "Errors": fieldErrs, "User": currentUser(r),
		})
		return nil
	}
	u, err := h.users.Register(form.Username, form.Email, form.Password)
	if err != nil {
		if errors.Is(err, user.ErrUserExists) {
			h.render.HTML(w, http.StatusOK, "signup.html", render.Context{
				"Form":   form,
				"Errors": validate.FieldErrors{"Username": "username or email already taken"},
				"User":   currentUser(r),
			})
			return nil
		}
		return err
	}
	return h.startSession(w, r, u)
}

func (h *Handlers) loginPage(w http.ResponseWriter, r *http.Request) error {
	h.render.HTML(w, http.StatusOK, "login.html", render.Context{
		"Next": r.URL.Query().Get("next"),
		"User": currentUser(r),
	})
	return nil
}

func (h *Handlers) login(w http.ResponseWriter, r *http.Request) error {
	if err := r.ParseForm(); err != nil {
		return err
	}
	u, err := h.users.Login(r.PostFormValue("username"), r.PostFormValue("password"))
	if err != nil {
		h.render.HTML(w, http.StatusOK, "login.html", render.Context{
			"Errors": validate.FieldErrors{"Username": "wrong username or password"},
			"Next":   r.PostFormValue("next"),
			"User":   currentUser(r),
		})
		return nil
	}
	return h.startSession(w, r, u)
}

func (h *Handlers) startSession(w http.ResponseWriter, r *http.Request, u *user.User) error {
	token, err := jwt.Make(u.ID, u.Username)
	if err != nil {
		return err
	}
	httpx.SetSession(w, token)
	next := r.PostFormValue("next")
	if next == "" || next[0] != '/' {
		next = "/"
	}
	http.Redirect(w, r, next, http.StatusFound)
	return nil
}

func (h *Handlers) logout(w http.ResponseWriter, r *http.Request) error {
	httpx.ClearSession(w)
	http.Redirect(w, r, "/", http.StatusFound)
	return nil
}
