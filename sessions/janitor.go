package sessions

import (
	"context"
	"log"
	"time"
)

// Purger removes expired sessions.
type Purger interface {
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}

// RunJanitor purges expired sessions every interval until ctx is cancelled.
// Redis expires keys on its own, so only the database store needs this.
func RunJanitor(ctx context.Context, p Purger, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			n, err := p.PurgeExpired(ctx, now)
			if err != nil {
				log.Printf("Session cleanup failed: %v", err)
				continue
			}
			if n > 0 {
				log.Printf("Purged %d expired sessions", n)
			}
		}
	}
}
