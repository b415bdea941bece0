package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"locationbot/internal/domain"

	"github.com/go-redis/redis/v7"
)

// StateRepo keeps conversation state as JSON strings in Redis
type StateRepo struct {
	client *redis.Client
	prefix string
}

// NewStateRepo creates a new Redis state repository
func NewStateRepo(client *redis.Client, prefix string) *StateRepo {
	return &StateRepo{client: client, prefix: prefix}
}

func (r *StateRepo) key(userID int64) string {
	return r.prefix + "state:" + strconv.FormatInt(userID, 10)
}

// GetState returns stored state. The bool is false when user has no state yet.
func (r *StateRepo) GetState(ctx context.Context, userID int64) (*domain.StateData, bool, error) {
	raw, err := r.client.WithContext(ctx).Get(r.key(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var state domain.StateData
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, false, fmt.Errorf("failed to decode state: %w", err)
	}
	return &state, true, nil
}

// SetState stores user's state without expiration
func (r *StateRepo) SetState(ctx context.Context, userID int64, state *domain.StateData) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}
	return r.client.WithContext(ctx).Set(r.key(userID), raw, 0).Err()
}
