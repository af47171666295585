package follow_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"microblog/internal/follow"
	"microblog/internal/migrate"
	"microblog/internal/user"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, migrate.AutoMigrateAll(db))
	return db
}

func newUser(t *testing.T, db *gorm.DB, username string) *user.User {
	t.Helper()
	u := &user.User{Username: username, Email: username + "@example.com", PassHash: "x", Joined: time.Now()}
	require.NoError(t, user.NewRepository(db).Create(u))
	return u
}

func TestFollowUnfollowLifecycle(t *testing.T) {
	db := newTestDB(t)
	repo := follow.NewRepository(db)
	svc := follow.NewService(repo, user.NewRepository(db))

	a := newUser(t, db, "a")
	newUser(t, db, "b")

	following, err := svc.IsFollowing(a.ID, "b")
	require.NoError(t, err)
	require.False(t, following)

	require.NoError(t, svc.Follow(a.ID, "b"))
	following, err = svc.IsFollowing(a.ID, "b")
	require.NoError(t, err)
	require.True(t, following)

	require.NoError(t, svc.Unfollow(a.ID, "b"))
	following, err = svc.IsFollowing(a.ID, "b")
	require.NoError(t, err)
	require.False(t, following)
}

func TestFollowIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	repo := follow.NewRepository(db)
	svc := follow.NewService(repo, user.NewRepository(db))

	a := newUser(t, db, "a")
	b := newUser(t, db, "b")

	require.NoError(t, svc.Follow(a.ID, "b"))
	require.NoError(t, svc.Follow(a.ID, "b"))

	followers, err := repo.CountFollowers(b.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, followers, "following twice yields exactly one record")
}

func TestUnfollowWhenNotFollowing(t *testing.T) {
	db := newTestDB(t)
	svc := follow.NewService(follow.NewRepository(db), user.NewRepository(db))

	a := newUser(t, db, "a")
	newUser(t, db, "b")

	require.NoError(t, svc.Unfollow(a.ID, "b"), "unfollowing a stranger is a no-op")
}

func TestSelfFollowIsNoOp(t *testing.T) {
	db := newTestDB(t)
	repo := follow.NewRepository(db)
	svc := follow.NewService(repo, user.NewRepository(db))

	a := newUser(t, db, "a")
	require.NoError(t, svc.Follow(a.ID, "a"))

	followers, err := repo.CountFollowers(a.ID)
	require.NoError(t, err)
	require.Zero(t, followers)
}

func TestDuplicateCreateResolvedByUniqueIndex(t *testing.T) {
	db := newTestDB(t)
	repo := follow.NewRepository(db)

	a := newUser(t, db, "a")
	b := newUser(t, db, "b")

	require.NoError(t, repo.Create(&follow.Follow{UserID: a.ID, AuthorID: b.ID}))
	err := repo.Create(&follow.Follow{UserID: a.ID, AuthorID: b.ID})
	require.ErrorIs(t, err, gorm.ErrDuplicatedKey,
		"the store rejects the losing writer of a duplicate-follow race")
}

func TestStatsAndAuthorIDs(t *testing.T) {
	db := newTestDB(t)
	repo := follow.NewRepository(db)
	svc := follow.NewService(repo, user.NewRepository(db))

	a := newUser(t, db, "a")
	b := newUser(t, db, "b")
	c := newUser(t, db, "c")

	require.NoError(t, svc.Follow(a.ID, "b"))
	require.NoError(t, svc.Follow(a.ID, "c"))
	require.NoError(t, svc.Follow(c.ID, "b"))

	followers, following, err := svc.Stats(b.ID)
	require.NoError(t, err)
	require.EqualValues(t, 2, followers)
	require.EqualValues(t, 0, following)

	ids, err := svc.AuthorIDs(a.ID)
	require.NoError(t, err)
	require.ElementsMatch(t, []uint{b.ID, c.ID}, ids)
}
