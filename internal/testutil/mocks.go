package testutil

import (
	"context"
	"sync"

	"locationbot/internal/domain"
	"locationbot/internal/repository"

	"github.com/stretchr/testify/mock"
)

// MockListRepository is a mock for ListRepository
type MockListRepository struct {
	mock.Mock
}

func (m *MockListRepository) PushFront(ctx context.Context, userID int64, value string) error {
	args := m.Called(ctx, userID, value)
	return args.Error(0)
}

func (m *MockListRepository) PopFront(ctx context.Context, userID int64) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

func (m *MockListRepository) Range(ctx context.Context, userID int64, start, count int) ([]string, error) {
	args := m.Called(ctx, userID, start, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockListRepository) Length(ctx context.Context, userID int64) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockListRepository) Delete(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockListRepository) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockStateRepository is a mock for StateRepository
type MockStateRepository struct {
	mock.Mock
}

func (m *MockStateRepository) GetState(ctx context.Context, userID int64) (*domain.StateData, bool, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*domain.StateData), args.Bool(1), args.Error(2)
}

func (m *MockStateRepository) SetState(ctx context.Context, userID int64, state *domain.StateData) error {
	args := m.Called(ctx, userID, state)
	return args.Error(0)
}

// MemoryListRepository is a working in-memory ListRepository for handler tests
type MemoryListRepository struct {
	lists map[int64][]string
	mu    sync.Mutex
	Err   error // returned by every call when set
}

// NewMemoryListRepository creates an empty in-memory list store
func NewMemoryListRepository() *MemoryListRepository {
	return &MemoryListRepository{lists: make(map[int64][]string)}
}

func (m *MemoryListRepository) PushFront(_ context.Context, userID int64, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.lists[userID] = append([]string{value}, m.lists[userID]...)
	return nil
}

func (m *MemoryListRepository) PopFront(_ context.Context, userID int64) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return "", m.Err
	}
	list := m.lists[userID]
	if len(list) == 0 {
		return "", repository.ErrEmptyList
	}
	m.lists[userID] = list[1:]
	return list[0], nil
}

func (m *MemoryListRepository) Range(_ context.Context, userID int64, start, count int) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	list := m.lists[userID]
	if start >= len(list) || count <= 0 {
		return []string{}, nil
	}
	end := start + count
	if end > len(list) {
		end = len(list)
	}
	out := make([]string, end-start)
	copy(out, list[start:end])
	return out, nil
}

func (m *MemoryListRepository) Length(_ context.Context, userID int64) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return 0, m.Err
	}
	return len(m.lists[userID]), nil
}

func (m *MemoryListRepository) Delete(_ context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	delete(m.lists, userID)
	return nil
}

func (m *MemoryListRepository) Ping(_ context.Context) error {
	return m.Err
}

// Entries returns a copy of the user's list
func (m *MemoryListRepository) Entries(userID int64) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string{}, m.lists[userID]...)
}
