package redis

import (
	"context"
	"errors"
	"strconv"

	"locationbot/internal/repository"

	"github.com/go-redis/redis/v7"
)

// ListRepo implements repository.ListRepository on top of Redis lists
type ListRepo struct {
	client *redis.Client
	prefix string
}

// NewListRepo creates a new Redis list repository.
// Keys are prefix followed by the user id.
func NewListRepo(client *redis.Client, prefix string) *ListRepo {
	return &ListRepo{client: client, prefix: prefix}
}

func (r *ListRepo) key(userID int64) string {
	return r.prefix + strconv.FormatInt(userID, 10)
}

// PushFront inserts value at the head of user's list
func (r *ListRepo) PushFront(ctx context.Context, userID int64, value string) error {
	return r.client.WithContext(ctx).LPush(r.key(userID), value).Err()
}

// PopFront removes and returns the head of user's list
func (r *ListRepo) PopFront(ctx context.Context, userID int64) (string, error) {
	value, err := r.client.WithContext(ctx).LPop(r.key(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", repository.ErrEmptyList
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// Range returns up to count entries starting at start, newest first
func (r *ListRepo) Range(ctx context.Context, userID int64, start, count int) ([]string, error) {
	if count <= 0 || start < 0 {
		return []string{}, nil
	}
	stop := int64(start + count - 1)
	return r.client.WithContext(ctx).LRange(r.key(userID), int64(start), stop).Result()
}

// Length returns the number of entries in user's list
func (r *ListRepo) Length(ctx context.Context, userID int64) (int, error) {
	n, err := r.client.WithContext(ctx).LLen(r.key(userID)).Result()
	return int(n), err
}

// Delete removes user's list entirely
func (r *ListRepo) Delete(ctx context.Context, userID int64) error {
	return r.client.WithContext(ctx).Del(r.key(userID)).Err()
}

// Ping checks connection to Redis
func (r *ListRepo) Ping(ctx context.Context) error {
	return r.client.WithContext(ctx).Ping().Err()
}
