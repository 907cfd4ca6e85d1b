package sessions

import (
	"context"
	"testing"
	"time"

	"github.com/CUknot/forum_backend/database/dbtest"
	"github.com/CUknot/forum_backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDBStore_CreateGetDelete(t *testing.T) {
	ctx := context.Background()
	store := NewDBStore(dbtest.Open(t))

	session, err := store.Create(ctx, 7, time.Hour)
	require.NoError(t, err)
	assert.NotEmpty(t, session.ID)
	assert.Equal(t, uint(7), session.UserID)

	got, err := store.Get(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, uint(7), got.UserID)

	require.NoError(t, store.Delete(ctx, session.ID))
	_, err = store.Get(ctx, session.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	// Deleting twice is harmless.
	assert.NoError(t, store.Delete(ctx, session.ID))
}

func TestDBStore_GetUnknown(t *testing.T) {
	store := NewDBStore(dbtest.Open(t))

	_, err := store.Get(context.Background(), "does-not-exist")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestDBStore_ExpiredSession(t *testing.T) {
	ctx := context.Background()
	db := dbtest.Open(t)
	store := NewDBStore(db)

	expired := &models.Session{ID: "old", UserID: 1, ExpiresAt: time.Now().Add(-time.Minute)}
	require.NoError(t, db.Create(expired).Error)

	_, err := store.Get(ctx, "old")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	var count int64
	require.NoError(t, db.Model(&models.Session{}).Where("id = ?", "old").Count(&count).Error)
	assert.Zero(t, count, "expired session should be removed on read")
}

func TestDBStore_PurgeExpired(t *testing.T) {
	ctx := context.Background()
	db := dbtest.Open(t)
	store := NewDBStore(db)

	now := time.Now()
	require.NoError(t, db.Create(&models.Session{ID: "a", UserID: 1, ExpiresAt: now.Add(-time.Hour)}).Error)
	require.NoError(t, db.Create(&models.Session{ID: "b", UserID: 1, ExpiresAt: now.Add(-time.Second)}).Error)
	live, err := store.Create(ctx, 1, time.Hour)
	require.NoError(t, err)

	n, err := store.PurgeExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	_, err = store.Get(ctx, live.ID)
	assert.NoError(t, err)
}

type countingPurger struct {
	calls chan time.Time
}

func (p *countingPurger) PurgeExpired(_ context.Context, now time.Time) (int64, error) {
	p.calls <- now
	return 0, nil
}

func TestRunJanitor(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := &countingPurger{calls: make(chan time.Time, 4)}

	done := make(chan struct{})
	go func() {
		RunJanitor(ctx, p, 10*time.Millisecond)
		close(done)
	}()

	select {
	case <-p.calls:
	case <-time.After(time.Second):
		t.Fatal("janitor never ran")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("janitor did not stop after cancel")
	}
}
