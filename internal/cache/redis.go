package cache

import (
	"github.com/go-redis/redis/v8"

	"github.com/BruksfildServices01/business-manager/internal/config"
)

func NewRedisClient(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
}
