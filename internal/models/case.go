package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/debtdesk/internal/lifecycle"
)

// CaseStatus describes the administrative state of a case, orthogonal to
// its lifecycle stage.
type CaseStatus string

const (
	CaseStatusOpen      CaseStatus = "OPEN"
	CaseStatusOnHold    CaseStatus = "ON_HOLD"
	CaseStatusCompleted CaseStatus = "COMPLETED"
	CaseStatusCancelled CaseStatus = "CANCELLED"
)

// ValidCaseStatus reports whether s is one of the four known statuses.
func ValidCaseStatus(s CaseStatus) bool {
	switch s {
	case CaseStatusOpen, CaseStatusOnHold, CaseStatusCompleted, CaseStatusCancelled:
		return true
	}
	return false
}

// Case is a single client's debt-resolution engagement. It owns its
// documents, chat messages and audit events exclusively; deleting a case
// cascades to all three.
type Case struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"userId"`
	User   *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`

	LoanType   string   `gorm:"not null" json:"loanType"`
	LenderName string   `json:"lenderName"`
	LoanAmount *float64 `json:"loanAmount"`

	Stage          lifecycle.Stage `gorm:"not null;default:ASSESSMENT;index" json:"stage"`
	StagePercent   int             `gorm:"not null;default:0" json:"stagePercent"`
	OverallPercent int             `gorm:"not null;default:0" json:"overallPercent"`
	Status         CaseStatus      `gorm:"not null;default:OPEN;index" json:"status"`

	SettledAmount *float64   `json:"settledAmount"`
	SettledAt     *time.Time `json:"settledAt"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Documents []CaseDocument `gorm:"foreignKey:CaseID;constraint:OnDelete:CASCADE" json:"documents,omitempty"`
	Messages  []CaseMessage  `gorm:"foreignKey:CaseID;constraint:OnDelete:CASCADE" json:"messages,omitempty"`
	Events    []CaseEvent    `gorm:"foreignKey:CaseID;constraint:OnDelete:CASCADE" json:"events,omitempty"`
}

// BeforeCreate is a GORM hook that populates the primary key and the
// initial lifecycle position.
func (c *Case) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.Stage == "" {
		c.Stage = lifecycle.StageAssessment
	}
	if c.Status == "" {
		c.Status = CaseStatusOpen
	}
	return nil
}
