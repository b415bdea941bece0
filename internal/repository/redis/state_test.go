package redis

import (
	"context"
	"testing"

	"locationbot/internal/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStateRepo(t *testing.T) (*StateRepo, *miniredis.Miniredis) {
	t.Helper()

	srv := miniredis.RunT(t)
	client, err := NewClient("redis://" + srv.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	return NewStateRepo(client, "bot:"), srv
}

func TestStateRepo_GetStateMissing(t *testing.T) {
	repo, _ := newTestStateRepo(t)

	state, found, err := repo.GetState(context.Background(), 123)

	assert.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, state)
}

func TestStateRepo_SetGet(t *testing.T) {
	repo, srv := newTestStateRepo(t)
	ctx := context.Background()

	err := repo.SetState(ctx, 123, &domain.StateData{State: domain.StateAwaitingAddress})
	require.NoError(t, err)

	raw, err := srv.Get("bot:state:123")
	require.NoError(t, err)
	assert.Contains(t, raw, "awaiting_address")

	state, found, err := repo.GetState(ctx, 123)
	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, domain.StateAwaitingAddress, state.State)
}

func TestStateRepo_GetStateCorrupted(t *testing.T) {
	repo, srv := newTestStateRepo(t)

	require.NoError(t, srv.Set("bot:state:1", "not json"))

	_, _, err := repo.GetState(context.Background(), 1)

	assert.Error(t, err)
}
