package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLifecycle(t *testing.T) {
	store := NewMemory(time.Hour)
	ctx := context.Background()

	token, err := store.Create(ctx, "alice")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	sess, err := store.Get(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "alice", sess.Username)
	assert.False(t, sess.CreatedAt.IsZero())

	require.NoError(t, store.Destroy(ctx, token))
	_, err = store.Get(ctx, token)
	assert.Equal(t, ErrNotFound, err)
	assert.Equal(t, ErrNotFound, store.Destroy(ctx, token))
}

func TestMemoryUnknownToken(t *testing.T) {
	store := NewMemory(time.Hour)
	_, err := store.Get(context.Background(), "never-issued")
	assert.Equal(t, ErrNotFound, err)
}

func TestMemoryIdleExpiry(t *testing.T) {
	store := NewMemory(10 * time.Millisecond)
	ctx := context.Background()
	token, err := store.Create(ctx, "alice")
	require.NoError(t, err)

	time.Sleep(25 * time.Millisecond)
	_, err = store.Get(ctx, token)
	assert.Equal(t, ErrNotFound, err)
}

func TestMemoryGetReArmsTimeout(t *testing.T) {
	store := NewMemory(40 * time.Millisecond)
	ctx := context.Background()
	token, err := store.Create(ctx, "alice")
	require.NoError(t, err)

	// Touch the session before each deadline; it must stay alive past the
	// original TTL.
	for i := 0; i < 4; i++ {
		time.Sleep(20 * time.Millisecond)
		_, err = store.Get(ctx, token)
		require.NoError(t, err)
	}
}

func TestMemorySessionsAreIndependent(t *testing.T) {
	store := NewMemory(time.Hour)
	ctx := context.Background()
	t1, err := store.Create(ctx, "alice")
	require.NoError(t, err)
	t2, err := store.Create(ctx, "alice")
	require.NoError(t, err)
	require.NotEqual(t, t1, t2)

	require.NoError(t, store.Destroy(ctx, t1))
	sess, err := store.Get(ctx, t2)
	require.NoError(t, err)
	assert.Equal(t, "alice", sess.Username)
}
