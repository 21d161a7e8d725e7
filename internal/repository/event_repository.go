package repository

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/example/debtdesk/internal/models"
)

// EventRepository appends case audit events. The trail is append-only;
// there is no update or single-row delete.
type EventRepository struct {
	db *gorm.DB
}

// NewEventRepository constructs a repository using the provided gorm DB.
func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

// Append persists a new audit event.
func (r *EventRepository) Append(ctx context.Context, event *models.CaseEvent) error {
	return errors.WithStack(r.db.WithContext(ctx).Create(event).Error)
}
