package redis

import (
	"salesboard/config"

	"github.com/redis/go-redis/v9"
)

var Rdb *redis.Client

func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	Rdb = redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return Rdb
}
