package httpx

import (
	"context"
	"errors"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"microblog/internal/shared/jwt"
)

const (
	sessionCookie = "session"
	loginPath     = "/auth/login/"
)

type ctxKey string

const identityKey ctxKey = "httpx.identity"

// Identity is the authenticated requester, taken from the session cookie.
type Identity struct {
	ID       uint
	Username string
}

var ErrUnauthorized = errors.New("unauthorized")

type HandlerFunc func(http.ResponseWriter, *http.Request) error

// Wrap converts a handler returning an error into an http.Handler.
// Unauthorized errors become a login redirect carrying the intended
// destination; anything else is a 500.
func Wrap(fn HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			if errors.Is(err, ErrUnauthorized) {
				RedirectToLogin(w, r)
				return
			}
			log.Printf("%s %s: %v", r.Method, r.URL.Path, err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
	})
}

// SetSession stores a session token in the response cookie.
func SetSession(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func ClearSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

// WithUser attaches the requester's identity to the context when a valid
// session cookie is present. It never rejects the request.
func WithUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie(sessionCookie)
		if err == nil && c.Value != "" {
			if id, username, perr := jwt.Parse(c.Value); perr == nil {
				ctx := context.WithValue(r.Context(), identityKey, Identity{ID: id, Username: username})
				r = r.WithContext(ctx)
			}
		}
		next.ServeHTTP(w, r)
	})
}

// RequireUser guards a protected route: anonymous requests are redirected
// to the login page with a next continuation parameter.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := UserFromCtx(r); err != nil {
			RedirectToLogin(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func UserFromCtx(r *http.Request) (Identity, error) {
	id, ok := r.Context().Value(identityKey).(Identity)
	if !ok || id.Username == "" {
		return Identity{}, ErrUnauthorized
	}
	return id, nil
}

func RedirectToLogin(w http.ResponseWriter, r *http.Request) {
	next := url.Values{"next": {r.URL.RequestURI()}}
	http.Redirect(w, r, loginPath+"?"+next.Encode(), http.StatusFound)
}

// RedirectBack sends the requester to the referring page, or to fallback
// when the request carries no referer.
func RedirectBack(w http.ResponseWriter, r *http.Request, fallback string) {
	target := r.Referer()
	if target == "" {
		target = fallback
	}
	http.Redirect(w, r, target, http.StatusFound)
}

// QueryInt reads an integer query parameter with a fallback default.
func QueryInt(r *http.Request, key string, def int) int {
	s := r.URL.Query().Get(key)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
