package repository

import (
	"context"
	"errors"

	"locationbot/internal/domain"
)

// ErrEmptyList is returned by PopFront when user has no entries
var ErrEmptyList = errors.New("list is empty")

// ListRepository stores an ordered list of entries per user, newest first
type ListRepository interface {
	PushFront(ctx context.Context, userID int64, value string) error
	PopFront(ctx context.Context, userID int64) (string, error)
	Range(ctx context.Context, userID int64, start, count int) ([]string, error)
	Length(ctx context.Context, userID int64) (int, error)
	Delete(ctx context.Context, userID int64) error
	Ping(ctx context.Context) error
}

// StateRepository stores conversation state per user
type StateRepository interface {
	GetState(ctx context.Context, userID int64) (*domain.StateData, bool, error)
	SetState(ctx context.Context, userID int64, state *domain.StateData) error
}
