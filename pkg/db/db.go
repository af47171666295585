package db

import (
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"microblog/configs"
)

type Db struct {
	DB *gorm.DB
}

func NewDb(cfg *configs.Config) *Db {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Could not connect to Postgres: %v", err)
	}
	return &Db{DB: db}
}
