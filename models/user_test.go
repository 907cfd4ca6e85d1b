package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserBeforeCreateHashesPassword(t *testing.T) {
	u := &User{Username: "alice", Password: "correct horse"}
	require.NoError(t, u.BeforeCreate(nil))

	assert.NotEqual(t, "correct horse", u.Password)
	assert.NoError(t, u.ValidatePassword("correct horse"))
	assert.Error(t, u.ValidatePassword("wrong horse"))
}

func TestUserBeforeCreateEmptyPassword(t *testing.T) {
	u := &User{Username: "alice"}
	require.NoError(t, u.BeforeCreate(nil))
	assert.Empty(t, u.Password)
}

func TestSessionExpired(t *testing.T) {
	now := time.Now()
	assert.False(t, Session{ExpiresAt: now.Add(time.Minute)}.Expired(now))
	assert.True(t, Session{ExpiresAt: now}.Expired(now))
	assert.True(t, Session{ExpiresAt: now.Add(-time.Minute)}.Expired(now))
}
