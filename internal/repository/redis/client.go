package redis

import (
	"fmt"

	"github.com/go-redis/redis/v7"
)

// NewClient creates a Redis client from a redis:// URL
func NewClient(url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	return redis.NewClient(opts), nil
}
