package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/example/debtdesk/internal/models"
)

// MessageRepository provides persistence access for case chat messages.
type MessageRepository struct {
	db *gorm.DB
}

// NewMessageRepository constructs a repository using the provided gorm DB.
func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// Create persists the message.
func (r *MessageRepository) Create(ctx context.Context, msg *models.CaseMessage) error {
	return errors.WithStack(r.db.WithContext(ctx).Create(msg).Error)
}

// ListByCase returns the case's messages in chronological order.
func (r *MessageRepository) ListByCase(ctx context.Context, caseID uuid.UUID, limit int) ([]models.CaseMessage, error) {
	if limit <= 0 {
		limit = caseMessageCap
	}
	var msgs []models.CaseMessage
	err := r.db.WithContext(ctx).
		Where("case_id = ?", caseID).
		Order("created_at asc").
		Limit(limit).
		Find(&msgs).Error
	return msgs, errors.WithStack(err)
}

// MarkRead stamps read-at on every unread message in the thread that was
// sent by the other party. Calling it again is a no-op.
func (r *MessageRepository) MarkRead(ctx context.Context, caseID uuid.UUID, readerRole models.Role, at time.Time) error {
	err := r.db.WithContext(ctx).Model(&models.CaseMessage{}).
		Where("case_id = ? AND sender_role <> ? AND read_at IS NULL", caseID, readerRole).
		Update("read_at", at).Error
	return errors.WithStack(err)
}
