package utils

import (
	"context"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"plume/config"
)

var (
	redisClient *redis.Client
	redisMu     sync.Mutex
)

// GetRedis returns a singleton Redis client based on loaded config.
func GetRedis() *redis.Client {
	redisMu.Lock()
	defer redisMu.Unlock()
	if redisClient == nil {
		cfg := config.Get()
		redisClient = redis.NewClient(&redis.Options{
			Addr:         net.JoinHostPort(cfg.RedisHost, strconv.Itoa(cfg.RedisPort)),
			Password:     cfg.RedisPassword,
			DB:           cfg.RedisDB,
			DialTimeout:  3 * time.Second,
			ReadTimeout:  2 * time.Second,
			WriteTimeout: 2 * time.Second,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = redisClient.Ping(ctx).Err()
	}
	return redisClient
}

// SetRedisClient replaces the singleton client. Used by tests to point the
// session and cache layers at an in-memory server.
func SetRedisClient(c *redis.Client) {
	redisMu.Lock()
	defer redisMu.Unlock()
	redisClient = c
}
