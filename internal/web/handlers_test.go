package web_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"microblog/internal/comment"
	"microblog/internal/feed"
	"microblog/internal/follow"
	"microblog/internal/group"
	"microblog/internal/media"
	"microblog/internal/migrate"
	"microblog/internal/post"
	"microblog/internal/render"
	"microblog/internal/shared/cache"
	"microblog/internal/shared/jwt"
	"microblog/internal/user"
	"microblog/internal/web"
)

// fakeRenderer records what the controller asked to render.
type fakeRenderer struct {
	status int
	view   string
	data   render.Context
}

func (f *fakeRenderer) HTML(w http.ResponseWriter, status int, view string, data render.Context) {
	f.status = status
	f.view = view
	f.data = data
	w.WriteHeader(status)
}

type app struct {
	handler  http.Handler
	renderer *fakeRenderer
	db       *gorm.DB
	posts    post.Repository
	comments comment.Repository
	follows  follow.Repository
	users    user.Repository
	groups   group.Repository
}

func newApp(t *testing.T) *app {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, migrate.AutoMigrateAll(db))

	userRepo := user.NewRepository(db)
	groupRepo := group.NewRepository(db)
	postRepo := post.NewRepository(db)
	commentRepo := comment.NewRepository(db)
	followRepo := follow.NewRepository(db)

	followSvc := follow.NewService(followRepo, userRepo)
	pageCache := cache.NewMemory()
	images := media.NewMemory()
	postSvc := post.NewService(postRepo, groupRepo, images, pageCache, nil)
	feedSvc := feed.NewService(postRepo, groupRepo, userRepo, followSvc, pageCache, 10)

	renderer := &fakeRenderer{}
	handlers := web.NewHandlers(web.Deps{
		Render:       renderer,
		Feeds:        feedSvc,
		Posts:        postRepo,
		PostSvc:      postSvc,
		Groups:       groupRepo,
		Comments:     comment.NewService(commentRepo),
		Follows:      followSvc,
		Users:        user.NewService(userRepo),
		Images:       images,
		MaxImageSize: 1 << 20,
	})

	return &app{
		handler:  handlers.Router(),
		renderer: renderer,
		db:       db,
		posts:    postRepo,
		comments: commentRepo,
		follows:  followRepo,
		users:    userRepo,
		groups:   groupRepo,
	}
}

func (a *app) newUser(t *testing.T, username string) *user.User {
	t.Helper()
	u := &user.User{Username: username, Email: username + "@example.com", PassHash: "x", Joined: time.Now()}
	require.NoError(t, a.users.Create(u))
	return u
}

func (a *app) newPost(t *testing.T, authorID uint, text string) *post.Post {
	t.Helper()
	p := &post.Post{Text: text, AuthorID: authorID, PubDate: time.Now()}
	require.NoError(t, a.posts.Create(p))
	return p
}

func (a *app) get(t *testing.T, path string, as *user.User) *httptest.ResponseRecorder {
	t.Helper()
	return a.do(t, http.MethodGet, path, nil, as)
}

func (a *app) postForm(t *testing.T, path string, form url.Values, as *user.User) *httptest.ResponseRecorder {
	t.Helper()
	return a.do(t, http.MethodPost, path, form, as)
}

func (a *app) do(t *testing.T, method, path string, form url.Values, as *user.User) *httptest.ResponseRecorder {
	t.Helper()
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if as != nil {
		token, err := jwt.Make(as.ID, as.Username)
		require.NoError(t, err)
		req.AddCookie(&http.Cookie{Name: "session", Value: token})
	}
	w := httptest.NewRecorder()
	a.handler.ServeHTTP(w, req)
	return w
}

func TestIndexRendersGlobalFeed(t *testing.T) {
	a := newApp(t)
	leo := a.newUser(t, "leo")
	a.newPost(t, leo.ID, "hello")

	w := a.get(t, "/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "index.html", a.renderer.view)
	page := a.renderer.data["Page"].(*feed.Page)
	require.Len(t, page.Items, 1)
}

func TestUnknownGroupIs404(t *testing.T) {
	a := newApp(t)
	w := a.get(t, "/group/missing/", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "error.html", a.renderer.view)
}

func TestProtectedRouteRedirectsToLogin(t *testing.T) {
	a := newApp(t)
	w := a.get(t, "/new/", nil)
	require.Equal(t, http.StatusFound, w.Code)
	loc, err := url.Parse(w.Header().Get("Location"))
	require.NoError(t, err)
	require.Equal(t, "/auth/login/", loc.Path)
	require.Equal(t, "/new/", loc.Query().Get("next"))
}

func TestCreatePost(t *testing.T) {
	a := newApp(t)
	leo := a.newUser(t, "leo")

	w := a.postForm(t, "/new/", url.Values{"text": {"my first post"}}, leo)
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/", w.Header().Get("Location"))

	n, err := a.posts.CountAll()
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	posts, err := a.posts.ListByAuthorPage(leo.ID, 0, 10)
	require.NoError(t, err)
	require.Equal(t, "my first post", posts[0].Text)
}

func TestCreatePostValidation(t *testing.T) {
	a := newApp(t)
	leo := a.newUser(t, "leo")

	w := a.postForm(t, "/new/", url.Values{"text": {""}}, leo)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "post_form.html", a.renderer.view)
	require.NotEmpty(t, a.renderer.data["Errors"])

	n, err := a.posts.CountAll()
	require.NoError(t, err)
	require.Zero(t, n, "invalid submissions persist nothing")
}

func TestEditByNonOwnerIsSilentlyRedirected(t *testing.T) {
	a := newApp(t)
	leo := a.newUser(t, "leo")
	anna := a.newUser(t, "anna")
	p := a.newPost(t, leo.ID, "original")

	path := fmt.Sprintf("/leo/%d/edit/", p.ID)
	w := a.postForm(t, path, url.Values{"text": {"hijacked"}}, anna)
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, fmt.Sprintf("/leo/%d/", p.ID), w.Header().Get("Location"))

	got, err := a.posts.GetByID(p.ID)
	require.NoError(t, err)
	require.Equal(t, "original", got.Text, "non-owner edits must not change the post")
}

func TestEditByOwner(t *testing.T) {
	a := newApp(t)
	leo := a.newUser(t, "leo")
	p := a.newPost(t, leo.ID, "original")

	path := fmt.Sprintf("/leo/%d/edit/", p.ID)
	w := a.postForm(t, path, url.Values{"text": {"edited"}}, leo)
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, fmt.Sprintf("/leo/%d/", p.ID), w.Header().Get("Location"))

	got, err := a.posts.GetByID(p.ID)
	require.NoError(t, err)
	require.Equal(t, "edited", got.Text)
}

func TestAnonymousCommentDoesNotPersist(t *testing.T) {
	a := newApp(t)
	leo := a.newUser(t, "leo")
	p := a.newPost(t, leo.ID, "post")

	path := fmt.Sprintf("/leo/%d/comment", p.ID)
	w := a.postForm(t, path, url.Values{"text": {"anon comment"}}, nil)
	require.Equal(t, http.StatusFound, w.Code)
	require.Contains(t, w.Header().Get("Location"), "/auth/login/")

	n, err := a.comments.CountByPost(p.ID)
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestAuthenticatedComment(t *testing.T) {
	a := newApp(t)
	leo := a.newUser(t, "leo")
	anna := a.newUser(t, "anna")
	p := a.newPost(t, leo.ID, "post")

	path := fmt.Sprintf("/leo/%d/comment", p.ID)
	w := a.postForm(t, path, url.Values{"text": {"nice one"}}, anna)
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, fmt.Sprintf("/leo/%d/", p.ID), w.Header().Get("Location"))

	n, err := a.comments.CountByPost(p.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)
}

func TestInvalidCommentRerendersPostPage(t *testing.T) {
	a := newApp(t)
	leo := a.newUser(t, "leo")
	p := a.newPost(t, leo.ID, "post")

	path := fmt.Sprintf("/leo/%d/comment", p.ID)
	w := a.postForm(t, path, url.Values{"text": {""}}, leo)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "post.html", a.renderer.view)
	require.NotEmpty(t, a.renderer.data["Errors"])
}

func TestFollowAndUnfollowRoutes(t *testing.T) {
	a := newApp(t)
	leo := a.newUser(t, "leo")
	anna := a.newUser(t, "anna")

	w := a.get(t, "/leo/follow/", anna)
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/leo/", w.Header().Get("Location"))

	ok, err := a.follows.Exists(anna.ID, leo.ID)
	require.NoError(t, err)
	require.True(t, ok)

	// Following again stays a single record.
	a.get(t, "/leo/follow/", anna)
	followers, err := a.follows.CountFollowers(leo.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, followers)

	w = a.get(t, "/leo/unfollow/", anna)
	require.Equal(t, http.StatusFound, w.Code)
	ok, err = a.follows.Exists(anna.ID, leo.ID)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestPostViewShowsComments(t *testing.T) {
	a := newApp(t)
	leo := a.newUser(t, "leo")
	p := a.newPost(t, leo.ID, "post")
	require.NoError(t, a.comments.Create(&comment.Comment{PostID: p.ID, AuthorID: leo.ID, Text: "hi", Created: time.Now()}))

	w := a.get(t, fmt.Sprintf("/leo/%d/", p.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "post.html", a.renderer.view)
	comments := a.renderer.data["Comments"].([]comment.Comment)
	require.Len(t, comments, 1)
}

func TestUnknownPostIs404(t *testing.T) {
	a := newApp(t)
	a.newUser(t, "leo")

	w := a.get(t, "/leo/999/", nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = a.get(t, "/leo/not-a-number/", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestSubscriptionFeedRoute(t *testing.T) {
	a := newApp(t)
	leo := a.newUser(t, "leo")
	anna := a.newUser(t, "anna")
	a.newPost(t, leo.ID, "followed post")
	require.NoError(t, a.follows.Create(&follow.Follow{UserID: anna.ID, AuthorID: leo.ID}))

	w := a.get(t, "/follow/", anna)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "follow.html", a.renderer.view)
	page := a.renderer.data["Page"].(*feed.Page)
	require.Len(t, page.Items, 1)
}

func TestSignupLoginLogout(t *testing.T) {
	a := newApp(t)

	w := a.postForm(t, "/auth/signup/", url.Values{
		"username": {"leo"}, "email": {"leo@example.com"}, "password": {"secret123"},
	}, nil)
	require.Equal(t, http.StatusFound, w.Code)
	require.NotEmpty(t, w.Result().Cookies(), "signup starts a session")

	w = a.postForm(t, "/auth/login/", url.Values{
		"username": {"leo"}, "password": {"secret123"}, "next": {"/new/"},
	}, nil)
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/new/", w.Header().Get("Location"))

	w = a.postForm(t, "/auth/login/", url.Values{
		"username": {"leo"}, "password": {"wrong"},
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "login.html", a.renderer.view)

	leo, err := a.users.GetByUsername("leo")
	require.NoError(t, err)
	w = a.get(t, "/auth/logout/", leo)
	require.Equal(t, http.StatusFound, w.Code)
}

func TestProfileRoute(t *testing.T) {
	a := newApp(t)
	leo := a.newUser(t, "leo")
	a.newPost(t, leo.ID, "post")

	w := a.get(t, "/leo/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "profile.html", a.renderer.view)
	stats := a.renderer.data["Stats"].(*feed.AuthorStats)
	require.EqualValues(t, 1, stats.Posts)

	w = a.get(t, "/nobody/", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}
