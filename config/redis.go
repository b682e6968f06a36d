package config

import (
	"context"
	"log"

	"github.com/go-redis/redis/v8"
)

var RDB *redis.Client

// ConnectRedis wires the shared redis client used for short-link click
// counters and the service-status cache. The app stays usable without
// redis; callers treat it as best effort.
func ConnectRedis() {
	cfg := App.Redis
	if cfg.Addr == "" {
		log.Println("REDIS_ADDR not set, continuing without cache")
		return
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Printf("Redis not reachable at %s: %v (continuing without cache)", cfg.Addr, err)
		return
	}

	RDB = client
}
