package sessions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/CUknot/forum_backend/models"
	"gorm.io/gorm"
)

// DBStore keeps sessions in the sessions table.
type DBStore struct {
	db *gorm.DB
}

// NewDBStore creates a database-backed session store.
func NewDBStore(db *gorm.DB) *DBStore {
	return &DBStore{db: db}
}

// Create starts a session for userID lasting ttl.
func (s *DBStore) Create(ctx context.Context, userID uint, ttl time.Duration) (*models.Session, error) {
	session := newSession(userID, ttl)
	if err := s.db.WithContext(ctx).Create(session).Error; err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return session, nil
}

// Get returns a live session. Expired rows are removed on sight.
func (s *DBStore) Get(ctx context.Context, id string) (*models.Session, error) {
	var session models.Session
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if session.Expired(time.Now()) {
		_ = s.Delete(ctx, id)
		return nil, ErrSessionNotFound
	}
	return &session, nil
}

// Delete ends a session. Deleting an unknown session is not an error.
func (s *DBStore) Delete(ctx context.Context, id string) error {
	if err := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Session{}).Error; err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// PurgeExpired removes every session that expired before now.
func (s *DBStore) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	result := s.db.WithContext(ctx).Where("expires_at <= ?", now).Delete(&models.Session{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to purge sessions: %w", result.Error)
	}
	return result.RowsAffected, nil
}
