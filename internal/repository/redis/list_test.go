package redis

import (
	"context"
	"fmt"
	"testing"

	"locationbot/internal/repository"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestListRepo(t *testing.T, prefix string) (*ListRepo, *miniredis.Miniredis) {
	t.Helper()

	srv := miniredis.RunT(t)
	client, err := NewClient("redis://" + srv.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	return NewListRepo(client, prefix), srv
}

func TestListRepo_PushPop(t *testing.T) {
	repo, srv := newTestListRepo(t, "")
	ctx := context.Background()

	require.NoError(t, repo.PushFront(ctx, 123, "first"))
	require.NoError(t, repo.PushFront(ctx, 123, "second"))

	stored, err := srv.List("123")
	require.NoError(t, err)
	assert.Equal(t, []string{"second", "first"}, stored)

	value, err := repo.PopFront(ctx, 123)
	assert.NoError(t, err)
	assert.Equal(t, "second", value)

	n, err := repo.Length(ctx, 123)
	assert.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestListRepo_PopFrontEmpty(t *testing.T) {
	repo, _ := newTestListRepo(t, "")

	_, err := repo.PopFront(context.Background(), 456)

	assert.ErrorIs(t, err, repository.ErrEmptyList)
}

func TestListRepo_Range(t *testing.T) {
	repo, _ := newTestListRepo(t, "")
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		require.NoError(t, repo.PushFront(ctx, 1, fmt.Sprintf("entry-%d", i)))
	}

	tests := []struct {
		name     string
		start    int
		count    int
		expected []string
	}{
		{
			name:     "first three",
			start:    0,
			count:    3,
			expected: []string{"entry-5", "entry-4", "entry-3"},
		},
		{
			name:     "more than available",
			start:    0,
			count:    10,
			expected: []string{"entry-5", "entry-4", "entry-3", "entry-2", "entry-1"},
		},
		{
			name:     "with offset",
			start:    3,
			count:    5,
			expected: []string{"entry-2", "entry-1"},
		},
		{
			name:     "zero count",
			start:    0,
			count:    0,
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := repo.Range(ctx, 1, tt.start, tt.count)
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, entries)
		})
	}
}

func TestListRepo_RangeUnknownUser(t *testing.T) {
	repo, _ := newTestListRepo(t, "")

	entries, err := repo.Range(context.Background(), 999, 0, 10)

	assert.NoError(t, err)
	assert.Empty(t, entries)
}

func TestListRepo_Delete(t *testing.T) {
	repo, srv := newTestListRepo(t, "places:")
	ctx := context.Background()

	require.NoError(t, repo.PushFront(ctx, 7, "entry"))
	assert.True(t, srv.Exists("places:7"))

	require.NoError(t, repo.Delete(ctx, 7))
	assert.False(t, srv.Exists("places:7"))

	// deleting again is a no-op
	assert.NoError(t, repo.Delete(ctx, 7))
}

func TestListRepo_Ping(t *testing.T) {
	repo, _ := newTestListRepo(t, "")

	assert.NoError(t, repo.Ping(context.Background()))
}

func TestNewClient_InvalidURL(t *testing.T) {
	_, err := NewClient("http://localhost:6379")
	assert.Error(t, err)
}
