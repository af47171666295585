package redis

import (
	"github.com/redis/go-redis/v9"

	"microblog/configs"
)

func NewClient(cfg *configs.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.RedisPass,
		DB:       0,
	})
}
