// Seeder fills the database with demo groups, users, posts, comments
// and follows. Groups have no in-app creation surface, so this is also
// the administrative path for creating them.
package main

import (
	"flag"
	"log"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"

	"microblog/configs"
	"microblog/internal/comment"
	"microblog/internal/follow"
	"microblog/internal/group"
	"microblog/internal/migrate"
	"microblog/internal/post"
	"microblog/internal/user"
	"microblog/pkg/db"
)

func main() {
	users := flag.Int("users", 10, "number of users to create")
	groups := flag.Int("groups", 5, "number of groups to create")
	posts := flag.Int("posts", 50, "number of posts to create")
	flag.Parse()

	gofakeit.Seed(time.Now().UnixNano())

	cfg := configs.LoadConfig()
	store := db.NewDb(cfg)
	if err := migrate.AutoMigrateAll(store.DB); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	userRepo := user.NewRepository(store.DB)
	groupRepo := group.NewRepository(store.DB)
	postRepo := post.NewRepository(store.DB)
	commentRepo := comment.NewRepository(store.DB)
	followRepo := follow.NewRepository(store.DB)

	hash, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)

	var userIDs []uint
	for i := 0; i < *users; i++ {
		u := &user.User{
			Username: gofakeit.Username(),
			Email:    gofakeit.Email(),
			PassHash: string(hash),
			Joined:   time.Now(),
		}
		if err := userRepo.Create(u); err != nil {
			log.Printf("user %s: %v", u.Username, err)
			continue
		}
		userIDs = append(userIDs, u.ID)
	}

	var groupIDs []uint
	for i := 0; i < *groups; i++ {
		g := &group.Group{
			Title:       gofakeit.BookTitle(),
			Slug:        gofakeit.Noun() + "-" + gofakeit.DigitN(4),
			Description: gofakeit.Sentence(8),
		}
		if err := groupRepo.Create(g); err != nil {
			log.Printf("group %s: %v", g.Slug, err)
			continue
		}
		groupIDs = append(groupIDs, g.ID)
	}

	if len(userIDs) == 0 {
		log.Fatal("no users created, aborting")
	}

	var postIDs []uint
	for i := 0; i < *posts; i++ {
		p := &post.Post{
			Text:     gofakeit.Paragraph(1, 3, 10, " "),
			AuthorID: pick(userIDs),
			PubDate:  gofakeit.DateRange(time.Now().AddDate(0, -6, 0), time.Now()),
		}
		if len(groupIDs) > 0 && gofakeit.Bool() {
			gid := pick(groupIDs)
			p.GroupID = &gid
		}
		if err := postRepo.Create(p); err != nil {
			log.Printf("post: %v", err)
			continue
		}
		postIDs = append(postIDs, p.ID)
	}

	for _, pid := range postIDs {
		for i := 0; i < gofakeit.Number(0, 3); i++ {
			c := &comment.Comment{
				PostID:   pid,
				AuthorID: pick(userIDs),
				Text:     gofakeit.Sentence(12),
				Created:  time.Now(),
			}
			if err := commentRepo.Create(c); err != nil {
				log.Printf("comment: %v", err)
			}
		}
	}

	follows := 0
	for _, uid := range userIDs {
		for i := 0; i < gofakeit.Number(0, 3); i++ {
			author := pick(userIDs)
			if author == uid {
				continue
			}
			if err := followRepo.Create(&follow.Follow{UserID: uid, AuthorID: author}); err == nil {
				follows++
			}
		}
	}

	log.Printf("seeded %d users, %d groups, %d posts, %d follows",
		len(userIDs), len(groupIDs), len(postIDs), follows)
}

func pick(ids []uint) uint {
	return ids[gofakeit.Number(0, len(ids)-1)]
}
