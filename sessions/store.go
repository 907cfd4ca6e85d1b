// Package sessions keeps server-side login sessions. The browser cookie only
// carries a signed session ID; the record itself lives in the database or in
// Redis, so logging out invalidates the session everywhere.
package sessions

import (
	"context"
	"errors"
	"time"

	"github.com/CUknot/forum_backend/models"
	"github.com/google/uuid"
)

// ErrSessionNotFound is returned for unknown or expired sessions.
var ErrSessionNotFound = errors.New("session not found")

// Store persists sessions.
type Store interface {
	Create(ctx context.Context, userID uint, ttl time.Duration) (*models.Session, error)
	Get(ctx context.Context, id string) (*models.Session, error)
	Delete(ctx context.Context, id string) error
}

func newSession(userID uint, ttl time.Duration) *models.Session {
	now := time.Now()
	return &models.Session{
		ID:        uuid.New().String(),
		UserID:    userID,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}
}
