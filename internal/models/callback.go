package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CallbackStatus tracks how far an admin has taken a callback request.
type CallbackStatus string

const (
	CallbackStatusPending   CallbackStatus = "PENDING"
	CallbackStatusContacted CallbackStatus = "CONTACTED"
	CallbackStatusClosed    CallbackStatus = "CLOSED"
)

// ValidCallbackStatus reports whether s is a known callback status.
func ValidCallbackStatus(s CallbackStatus) bool {
	switch s {
	case CallbackStatusPending, CallbackStatusContacted, CallbackStatusClosed:
		return true
	}
	return false
}

// CallbackRequest is a public "call me back" submission from the
// marketing site, worked through by administrators.
type CallbackRequest struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string         `gorm:"not null" json:"name"`
	Phone     string         `gorm:"not null" json:"phone"`
	Topic     string         `json:"topic"`
	Status    CallbackStatus `gorm:"not null;default:PENDING;index" json:"status"`
	Note      string         `gorm:"type:text" json:"note"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// BeforeCreate is a GORM hook that populates the primary key.
func (c *CallbackRequest) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.Status == "" {
		c.Status = CallbackStatusPending
	}
	return nil
}
