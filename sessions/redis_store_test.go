package sessions

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client), mr
}

func TestRedisStore_CreateGetDelete(t *testing.T) {
	ctx := context.Background()
	store, mr := newRedisStore(t)

	session, err := store.Create(ctx, 42, time.Hour)
	require.NoError(t, err)
	assert.True(t, mr.Exists("session:"+session.ID))

	got, err := store.Get(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, uint(42), got.UserID)

	require.NoError(t, store.Delete(ctx, session.ID))
	_, err = store.Get(ctx, session.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRedisStore_KeyExpires(t *testing.T) {
	ctx := context.Background()
	store, mr := newRedisStore(t)

	session, err := store.Create(ctx, 1, time.Minute)
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)

	_, err = store.Get(ctx, session.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
