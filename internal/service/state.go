package service

import (
	"context"
	"sync"
	"time"

	"locationbot/internal/domain"
	"locationbot/internal/repository"
)

// InitialState is assigned to users the bot has not seen yet
const InitialState = domain.StateAwaitingStart

// StateTracker keeps conversation state per user
type StateTracker struct {
	repo repository.StateRepository
	now  func() time.Time
}

// NewStateTracker creates a new state tracker over the given store
func NewStateTracker(repo repository.StateRepository) *StateTracker {
	return &StateTracker{
		repo: repo,
		now:  time.Now,
	}
}

// Get returns user's current state
func (t *StateTracker) Get(ctx context.Context, userID int64) (domain.State, error) {
	data, found, err := t.repo.GetState(ctx, userID)
	if err != nil {
		return InitialState, err
	}
	if !found || data == nil {
		return InitialState, nil
	}
	return data.State, nil
}

// Set sets user's state
func (t *StateTracker) Set(ctx context.Context, userID int64, state domain.State) error {
	return t.repo.SetState(ctx, userID, &domain.StateData{State: state, UpdatedAt: t.now()})
}

// Advance moves user to the next state and returns it
func (t *StateTracker) Advance(ctx context.Context, userID int64) (domain.State, error) {
	current, err := t.Get(ctx, userID)
	if err != nil {
		return current, err
	}
	next := current.Next()
	return next, t.Set(ctx, userID, next)
}

// Reset returns user to StateAwaitingStart
func (t *StateTracker) Reset(ctx context.Context, userID int64) error {
	return t.Set(ctx, userID, domain.StateAwaitingStart)
}

// MemoryStateRepo is an in-process repository.StateRepository.
// States are lost when the process stops.
type MemoryStateRepo struct {
	states map[int64]domain.StateData
	mu     sync.RWMutex
}

// NewMemoryStateRepo creates an empty in-memory state store
func NewMemoryStateRepo() *MemoryStateRepo {
	return &MemoryStateRepo{states: make(map[int64]domain.StateData)}
}

// GetState returns user's state if present
func (r *MemoryStateRepo) GetState(_ context.Context, userID int64) (*domain.StateData, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	state, exists := r.states[userID]
	if !exists {
		return nil, false, nil
	}
	return &state, true, nil
}

// SetState sets user's state
func (r *MemoryStateRepo) SetState(_ context.Context, userID int64, state *domain.StateData) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states[userID] = *state
	return nil
}
