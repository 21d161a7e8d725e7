package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CaseMessage is one entry in a case's chat thread. SenderRole snapshots
// the sender's role at the time of sending so later role changes do not
// rewrite history.
type CaseMessage struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CaseID uuid.UUID `gorm:"type:uuid;not null;index" json:"caseId"`

	SenderID   uuid.UUID `gorm:"type:uuid;not null" json:"senderId"`
	SenderRole Role      `gorm:"not null" json:"senderRole"`
	Content    string    `gorm:"type:text;not null" json:"content"`

	ReadAt    *time.Time `json:"readAt"`
	CreatedAt time.Time  `json:"createdAt"`
}

// BeforeCreate is a GORM hook that populates the primary key.
func (m *CaseMessage) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
