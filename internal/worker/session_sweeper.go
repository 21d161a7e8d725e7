package worker

import (
	"context"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/example/debtdesk/internal/models"
)

// SessionSweeper periodically deletes expired session rows so the table
// does not grow without bound. It should be launched in its own goroutine.
type SessionSweeper struct {
	db       *gorm.DB
	interval time.Duration
}

// NewSessionSweeper creates the sweeper.
func NewSessionSweeper(db *gorm.DB, interval time.Duration) *SessionSweeper {
	return &SessionSweeper{db: db, interval: interval}
}

// Run starts the sweep loop and returns when ctx is cancelled.
func (w *SessionSweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("session sweeper shutting down")
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *SessionSweeper) sweep(ctx context.Context) {
	res := w.db.WithContext(ctx).
		Where("expires_at <= ?", time.Now().UTC()).
		Delete(&models.Session{})
	if res.Error != nil {
		log.Printf("sweep sessions: %v", res.Error)
		return
	}
	if res.RowsAffected > 0 {
		log.Printf("swept %d expired sessions", res.RowsAffected)
	}
}
