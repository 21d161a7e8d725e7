package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LeadStatus tracks an emergency-payment lead through admin follow-up.
type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "NEW"
	LeadStatusContacted LeadStatus = "CONTACTED"
	LeadStatusConverted LeadStatus = "CONVERTED"
	LeadStatusDropped   LeadStatus = "DROPPED"
)

// ValidLeadStatus reports whether s is a known lead status.
func ValidLeadStatus(s LeadStatus) bool {
	switch s {
	case LeadStatusNew, LeadStatusContacted, LeadStatusConverted, LeadStatusDropped:
		return true
	}
	return false
}

// PaymentLead is an emergency-payment enquiry captured from the marketing
// site popup: someone with a payment due soon who wants help negotiating.
type PaymentLead struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string     `gorm:"not null" json:"name"`
	Phone     string     `gorm:"not null" json:"phone"`
	AmountDue *float64   `json:"amountDue"`
	DueDate   *time.Time `json:"dueDate"`
	Status    LeadStatus `gorm:"not null;default:NEW;index" json:"status"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// BeforeCreate is a GORM hook that populates the primary key.
func (l *PaymentLead) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	if l.Status == "" {
		l.Status = LeadStatusNew
	}
	return nil
}

// ContactMessage is a public contact-form submission.
type ContactMessage struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"not null" json:"email"`
	Phone     string    `json:"phone"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// BeforeCreate is a GORM hook that populates the primary key.
func (c *ContactMessage) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
