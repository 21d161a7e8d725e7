package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EventType tags an audit event with the kind of change it records.
type EventType string

const (
	EventStageChange  EventType = "STAGE_CHANGE"
	EventStatusChange EventType = "STATUS_CHANGE"
	EventDocument     EventType = "DOCUMENT"
	EventInfo         EventType = "INFO"
)

// CaseEvent is one append-only audit trail entry on a case. Events are
// never mutated or deleted individually; they only cascade with the case.
type CaseEvent struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CaseID uuid.UUID `gorm:"type:uuid;not null;index" json:"caseId"`

	Type        EventType  `gorm:"not null" json:"type"`
	Message     string     `gorm:"type:text;not null" json:"message"`
	CreatedByID *uuid.UUID `gorm:"type:uuid" json:"createdById,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// BeforeCreate is a GORM hook that populates the primary key.
func (e *CaseEvent) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
